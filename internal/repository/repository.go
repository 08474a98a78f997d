package repository

import "gorm.io/gorm"

// Set bundles the repositories the services depend on.
type Set struct {
	Users      UserRepository
	Photos     PhotoRepository
	SchemaInfo SchemaInfoRepository
}

// NewGormSet builds every repository on top of db.
func NewGormSet(db *gorm.DB) *Set {
	return &Set{
		Users:      NewUserRepository(db),
		Photos:     NewPhotoRepository(db),
		SchemaInfo: NewSchemaInfoRepository(db),
	}
}
