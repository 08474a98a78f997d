package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "photoshare/internal/errors"
	"photoshare/internal/model"
)

func newPhoto(t *testing.T, repo *PhotoRepository, owner uuid.UUID, name string) *model.Photo {
	t.Helper()
	p := &model.Photo{UserID: owner, FileName: name, DateTime: time.Now()}
	require.NoError(t, repo.Create(context.Background(), p))
	return p
}

func TestPhotoRepository_ConcurrentAppendsKeepEveryComment(t *testing.T) {
	repo := NewPhotoRepository()
	photo := newPhoto(t, repo, uuid.New(), "a.jpg")

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := repo.AppendComment(context.Background(), photo.ID, &model.Comment{
				Comment:  "hi",
				DateTime: time.Now(),
				UserID:   uuid.New(),
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, err := repo.FindByID(context.Background(), photo.ID)
	require.NoError(t, err)
	assert.Len(t, got.Comments, n)
}

func TestPhotoRepository_AppendToMissingPhoto(t *testing.T) {
	repo := NewPhotoRepository()
	err := repo.AppendComment(context.Background(), uuid.New(), &model.Comment{Comment: "x"})
	assert.ErrorIs(t, err, apperrors.ErrPhotoNotFound)
}

func TestPhotoRepository_ReadsAreCopies(t *testing.T) {
	repo := NewPhotoRepository()
	photo := newPhoto(t, repo, uuid.New(), "a.jpg")

	got, err := repo.FindByID(context.Background(), photo.ID)
	require.NoError(t, err)
	got.Comments = append(got.Comments, model.Comment{Comment: "sneaky"})

	again, err := repo.FindByID(context.Background(), photo.ID)
	require.NoError(t, err)
	assert.Empty(t, again.Comments)
}

func TestPhotoRepository_ListByOwnerAndCounts(t *testing.T) {
	ctx := context.Background()
	repo := NewPhotoRepository()
	alice, bob := uuid.New(), uuid.New()

	p1 := newPhoto(t, repo, alice, "1.jpg")
	newPhoto(t, repo, bob, "2.jpg")
	p3 := newPhoto(t, repo, alice, "3.jpg")

	require.NoError(t, repo.AppendComment(ctx, p1.ID, &model.Comment{Comment: "a", UserID: bob}))
	require.NoError(t, repo.AppendComment(ctx, p3.ID, &model.Comment{Comment: "b", UserID: bob}))
	require.NoError(t, repo.AppendComment(ctx, p3.ID, &model.Comment{Comment: "c", UserID: alice}))

	photos, err := repo.ListByOwner(ctx, alice)
	require.NoError(t, err)
	require.Len(t, photos, 2)
	assert.Equal(t, "1.jpg", photos[0].FileName)
	assert.Equal(t, "3.jpg", photos[1].FileName)

	none, err := repo.ListByOwner(ctx, uuid.New())
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)

	photoCounts, err := repo.CountByOwner(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []model.OwnerCount{{UserID: alice, Count: 2}, {UserID: bob, Count: 1}}, photoCounts)

	commentCounts, err := repo.CountCommentsByAuthor(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []model.OwnerCount{{UserID: bob, Count: 2}, {UserID: alice, Count: 1}}, commentCounts)

	commented, err := repo.ListCommentedBy(ctx, bob)
	require.NoError(t, err)
	require.Len(t, commented, 2)
	for _, p := range commented {
		require.Len(t, p.Comments, 1)
		assert.Equal(t, bob, p.Comments[0].UserID)
	}
}
