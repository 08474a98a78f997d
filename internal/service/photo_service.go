package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"photoshare/internal/blob"
	apperrors "photoshare/internal/errors"
	"photoshare/internal/model"
	"photoshare/internal/repository"
)

// Upload is an image received from a client.
type Upload struct {
	FileName    string
	ContentType string
	Size        int64
	Content     io.Reader
}

// PhotoService owns photos and their comments.
type PhotoService interface {
	Upload(ctx context.Context, ownerID uuid.UUID, upload Upload) (*model.Photo, error)
	CreatePhoto(ctx context.Context, ownerID uuid.UUID, storageKey string) (*model.Photo, error)
	AppendComment(ctx context.Context, photoID, authorID uuid.UUID, text string) (*model.Comment, error)
	ListPhotosByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Photo, error)
	GetPhoto(ctx context.Context, photoID uuid.UUID) (*model.Photo, error)
}

type photoService struct {
	repo  repository.PhotoRepository
	blobs blob.Store
	now   func() time.Time
}

// NewPhotoService creates a new photo service.
func NewPhotoService(repo repository.PhotoRepository, blobs blob.Store) PhotoService {
	return &photoService{repo: repo, blobs: blobs, now: time.Now}
}

// Upload stores the image bytes under a generated name and records the photo.
// The stored image is removed again when the record cannot be written.
func (s *photoService) Upload(ctx context.Context, ownerID uuid.UUID, upload Upload) (*model.Photo, error) {
	if upload.Content == nil {
		return nil, apperrors.NewValidationError("uploadedphoto", "Error uploading file")
	}

	now := s.now()
	photoID := uuid.New()
	name := blob.ObjectName(now, photoID, upload.FileName)
	if err := s.blobs.Put(ctx, name, upload.Content, upload.Size, upload.ContentType); err != nil {
		return nil, fmt.Errorf("store image: %w", err)
	}

	photo, err := s.create(ctx, photoID, ownerID, name, now)
	if err != nil {
		if delErr := s.blobs.Delete(ctx, name); delErr != nil {
			return nil, errors.Join(err, fmt.Errorf("remove orphaned image: %w", delErr))
		}
		return nil, err
	}
	return photo, nil
}

// CreatePhoto records a photo for an already stored image.
func (s *photoService) CreatePhoto(ctx context.Context, ownerID uuid.UUID, storageKey string) (*model.Photo, error) {
	return s.create(ctx, uuid.New(), ownerID, storageKey, s.now())
}

func (s *photoService) create(ctx context.Context, id, ownerID uuid.UUID, storageKey string, at time.Time) (*model.Photo, error) {
	photo := &model.Photo{
		ID:       id,
		UserID:   ownerID,
		FileName: storageKey,
		DateTime: at,
		Comments: []model.Comment{},
	}
	if err := s.repo.Create(ctx, photo); err != nil {
		return nil, fmt.Errorf("create photo: %w", err)
	}
	return photo, nil
}

// AppendComment adds a comment authored by authorID. Blank text is rejected
// before the store is touched.
func (s *photoService) AppendComment(ctx context.Context, photoID, authorID uuid.UUID, text string) (*model.Comment, error) {
	if strings.TrimSpace(text) == "" {
		return nil, apperrors.NewValidationError("comment", "Comment cannot be empty.")
	}

	comment := &model.Comment{
		ID:       uuid.New(),
		Comment:  text,
		DateTime: s.now(),
		UserID:   authorID,
	}
	if err := s.repo.AppendComment(ctx, photoID, comment); err != nil {
		if errors.Is(err, apperrors.ErrPhotoNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("append comment: %w", err)
	}
	return comment, nil
}

func (s *photoService) ListPhotosByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Photo, error) {
	photos, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list photos: %w", err)
	}
	return photos, nil
}

func (s *photoService) GetPhoto(ctx context.Context, photoID uuid.UUID) (*model.Photo, error) {
	return s.repo.FindByID(ctx, photoID)
}
