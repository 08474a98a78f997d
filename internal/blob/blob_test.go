package blob

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectName(t *testing.T) {
	now := time.UnixMilli(1700000000123)
	id := uuid.MustParse("0b6c1f0e-8d4a-4a3e-9f57-2d1c3b4a5e6f")
	prefix := "U1700000000123_0b6c1f0e8d4a4a3e9f572d1c3b4a5e6f"

	tests := []struct {
		original string
		want     string
	}{
		{"cat.jpg", prefix + "_cat.jpg"},
		{"../../etc/passwd", prefix + "_passwd"},
		{`C:\Users\me\dog.png`, prefix + "_dog.png"},
		{"", prefix},
	}
	for _, tt := range tests {
		t.Run(tt.original, func(t *testing.T) {
			assert.Equal(t, tt.want, ObjectName(now, id, tt.original))
		})
	}
}

func TestObjectName_SameNameSameInstantDiffers(t *testing.T) {
	now := time.UnixMilli(1700000000123)
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		name := ObjectName(now, uuid.New(), "cat.jpg")
		assert.False(t, seen[name], name)
		seen[name] = true
	}
}

func TestFSStore_Put(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "images")
	store, err := NewFSStore(dir)
	require.NoError(t, err)

	require.NoError(t, store.Put(context.Background(), "U1a.jpg", strings.NewReader("bytes"), 5, "image/jpeg"))

	data, err := os.ReadFile(filepath.Join(dir, "U1a.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "bytes", string(data))

	err = store.Put(context.Background(), "U1a.jpg", strings.NewReader("again"), 5, "image/jpeg")
	assert.Error(t, err)
}

func TestFSStore_Delete(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFSStore(dir)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "U1b.jpg", strings.NewReader("bytes"), 5, "image/jpeg"))
	require.NoError(t, store.Delete(ctx, "U1b.jpg"))

	_, err = os.Stat(filepath.Join(dir, "U1b.jpg"))
	assert.True(t, os.IsNotExist(err))

	// Deleting again is a no-op.
	assert.NoError(t, store.Delete(ctx, "U1b.jpg"))
}
