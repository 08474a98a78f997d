// Package memory provides mutex-guarded in-process implementations of the
// repository interfaces. Each call is atomic with respect to the others.
package memory

import "photoshare/internal/repository"

// NewSet returns an empty in-memory repository set.
func NewSet() *repository.Set {
	return &repository.Set{
		Users:      NewUserRepository(),
		Photos:     NewPhotoRepository(),
		SchemaInfo: NewSchemaInfoRepository(),
	}
}
