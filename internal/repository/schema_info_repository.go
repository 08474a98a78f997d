package repository

import (
	"context"

	"gorm.io/gorm"

	apperrors "photoshare/internal/errors"
	"photoshare/internal/model"
)

// SchemaInfoRepository persists the loaded dataset version.
type SchemaInfoRepository interface {
	Create(ctx context.Context, info *model.SchemaInfo) error
	First(ctx context.Context) (*model.SchemaInfo, error)
	Count(ctx context.Context) (int64, error)
	DeleteAll(ctx context.Context) error
}

type schemaInfoRepository struct {
	db *gorm.DB
}

// NewSchemaInfoRepository creates a new schema info repository.
func NewSchemaInfoRepository(db *gorm.DB) SchemaInfoRepository {
	return &schemaInfoRepository{db: db}
}

func (r *schemaInfoRepository) Create(ctx context.Context, info *model.SchemaInfo) error {
	return r.db.WithContext(ctx).Create(info).Error
}

func (r *schemaInfoRepository) First(ctx context.Context) (*model.SchemaInfo, error) {
	var info model.SchemaInfo
	if err := r.db.WithContext(ctx).Order("id ASC").First(&info).Error; err != nil {
		return nil, translate(err, apperrors.ErrMissingSchemaInfo)
	}
	return &info, nil
}

func (r *schemaInfoRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.SchemaInfo{}).Count(&n).Error
	return n, err
}

func (r *schemaInfoRepository) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&model.SchemaInfo{}).Error
}
