package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "photoshare/internal/errors"
	"photoshare/internal/model"
)

// PhotoRepository defines photo and embedded comment persistence operations.
type PhotoRepository interface {
	Create(ctx context.Context, photo *model.Photo) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Photo, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Photo, error)
	AppendComment(ctx context.Context, photoID uuid.UUID, comment *model.Comment) error
	ListCommentedBy(ctx context.Context, authorID uuid.UUID) ([]model.Photo, error)
	CountByOwner(ctx context.Context) ([]model.OwnerCount, error)
	CountCommentsByAuthor(ctx context.Context) ([]model.OwnerCount, error)
	Count(ctx context.Context) (int64, error)
	DeleteAll(ctx context.Context) error
}

type photoRepository struct {
	db *gorm.DB
}

// NewPhotoRepository creates a new photo repository.
func NewPhotoRepository(db *gorm.DB) PhotoRepository {
	return &photoRepository{db: db}
}

// byTime orders rows by date_time with id breaking ties, so rows sharing a
// timestamp come back in the same order on every call.
const byTime = "date_time ASC, id ASC"

func commentsInOrder(db *gorm.DB) *gorm.DB {
	return db.Order(byTime)
}

// Create inserts a photo together with any comments already attached to it.
func (r *photoRepository) Create(ctx context.Context, photo *model.Photo) error {
	return r.db.WithContext(ctx).Create(photo).Error
}

// FindByID finds a photo by ID with its comments in insertion order.
func (r *photoRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Photo, error) {
	var photo model.Photo
	if err := r.db.WithContext(ctx).Preload("Comments", commentsInOrder).
		Where("id = ?", id).First(&photo).Error; err != nil {
		return nil, translate(err, apperrors.ErrPhotoNotFound)
	}
	return &photo, nil
}

// ListByOwner returns the owner's photos in upload order. No photos is not an error.
func (r *photoRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Photo, error) {
	photos := []model.Photo{}
	if err := r.db.WithContext(ctx).Preload("Comments", commentsInOrder).
		Where("user_id = ?", ownerID).Order(byTime).Find(&photos).Error; err != nil {
		return nil, err
	}
	return photos, nil
}

// AppendComment adds comment to the photo. The existence check and the insert
// run in one transaction; concurrent appends each insert their own row.
func (r *photoRepository) AppendComment(ctx context.Context, photoID uuid.UUID, comment *model.Comment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&model.Photo{}).Where("id = ?", photoID).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return apperrors.ErrPhotoNotFound
		}
		comment.PhotoID = photoID
		return tx.Create(comment).Error
	})
}

// ListCommentedBy returns every photo carrying a comment by authorID, with
// only that author's comments loaded.
func (r *photoRepository) ListCommentedBy(ctx context.Context, authorID uuid.UUID) ([]model.Photo, error) {
	photos := []model.Photo{}
	tx := r.db.WithContext(ctx)
	commented := tx.Model(&model.Comment{}).Select("photo_id").Where("user_id = ?", authorID)
	err := tx.
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return commentsInOrder(db.Where("user_id = ?", authorID))
		}).
		Where("id IN (?)", commented).
		Order(byTime).
		Find(&photos).Error
	if err != nil {
		return nil, err
	}
	return photos, nil
}

type countRow struct {
	UserID string
	Count  int64
}

func toOwnerCounts(rows []countRow) ([]model.OwnerCount, error) {
	counts := make([]model.OwnerCount, 0, len(rows))
	for _, row := range rows {
		id, err := uuid.Parse(row.UserID)
		if err != nil {
			return nil, err
		}
		counts = append(counts, model.OwnerCount{UserID: id, Count: row.Count})
	}
	return counts, nil
}

// CountByOwner groups photos by owner.
func (r *photoRepository) CountByOwner(ctx context.Context) ([]model.OwnerCount, error) {
	var rows []countRow
	if err := r.db.WithContext(ctx).Model(&model.Photo{}).
		Select("user_id, COUNT(*) AS count").Group("user_id").Scan(&rows).Error; err != nil {
		return nil, err
	}
	return toOwnerCounts(rows)
}

// CountCommentsByAuthor groups comments across all photos by author.
func (r *photoRepository) CountCommentsByAuthor(ctx context.Context) ([]model.OwnerCount, error) {
	var rows []countRow
	if err := r.db.WithContext(ctx).Model(&model.Comment{}).
		Select("user_id, COUNT(*) AS count").Group("user_id").Scan(&rows).Error; err != nil {
		return nil, err
	}
	return toOwnerCounts(rows)
}

func (r *photoRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Photo{}).Count(&n).Error
	return n, err
}

// DeleteAll removes every photo and comment.
func (r *photoRepository) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		all := tx.Session(&gorm.Session{AllowGlobalUpdate: true})
		if err := all.Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		return all.Delete(&model.Photo{}).Error
	})
}
