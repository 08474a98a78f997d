// Package blob persists uploaded image bytes under generated object names.
package blob

import (
	"context"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Store writes uploaded images. Delete of a missing object is not an error.
type Store interface {
	Put(ctx context.Context, name string, r io.Reader, size int64, contentType string) error
	Delete(ctx context.Context, name string) error
}

// ObjectName builds the storage name for an upload: "U", the upload time in
// milliseconds, the id of the photo being created, then the client's base
// file name. The id keeps same-name uploads within one millisecond apart.
func ObjectName(now time.Time, id uuid.UUID, originalName string) string {
	name := "U" + strconv.FormatInt(now.UnixMilli(), 10) + "_" + strings.ReplaceAll(id.String(), "-", "")
	base := filepath.Base(strings.ReplaceAll(originalName, "\\", "/"))
	if base == "." || base == "/" || base == "" {
		return name
	}
	return name + "_" + base
}
