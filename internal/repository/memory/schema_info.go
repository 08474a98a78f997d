package memory

import (
	"context"
	"sync"

	apperrors "photoshare/internal/errors"
	"photoshare/internal/model"
	"photoshare/internal/repository"
)

// SchemaInfoRepository holds loaded dataset versions.
type SchemaInfoRepository struct {
	mu    sync.RWMutex
	infos []model.SchemaInfo
}

var _ repository.SchemaInfoRepository = (*SchemaInfoRepository)(nil)

// NewSchemaInfoRepository creates an empty repository.
func NewSchemaInfoRepository() *SchemaInfoRepository {
	return &SchemaInfoRepository{}
}

func (r *SchemaInfoRepository) Create(_ context.Context, info *model.SchemaInfo) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	info.ID = uint(len(r.infos) + 1)
	r.infos = append(r.infos, *info)
	return nil
}

func (r *SchemaInfoRepository) First(_ context.Context) (*model.SchemaInfo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.infos) == 0 {
		return nil, apperrors.ErrMissingSchemaInfo
	}
	info := r.infos[0]
	return &info, nil
}

func (r *SchemaInfoRepository) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return int64(len(r.infos)), nil
}

func (r *SchemaInfoRepository) DeleteAll(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.infos = nil
	return nil
}
