package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	apperrors "photoshare/internal/errors"
	"photoshare/internal/model"
	"photoshare/internal/repository"
)

// PhotoRepository keeps photos in insertion order with their comments
// embedded.
type PhotoRepository struct {
	mu     sync.RWMutex
	photos []*model.Photo
	byID   map[uuid.UUID]*model.Photo
}

var _ repository.PhotoRepository = (*PhotoRepository)(nil)

// NewPhotoRepository creates an empty repository.
func NewPhotoRepository() *PhotoRepository {
	return &PhotoRepository{byID: make(map[uuid.UUID]*model.Photo)}
}

func clonePhoto(p *model.Photo) model.Photo {
	out := *p
	out.Comments = append([]model.Comment{}, p.Comments...)
	return out
}

func (r *PhotoRepository) Create(_ context.Context, photo *model.Photo) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if photo.ID == uuid.Nil {
		photo.ID = uuid.New()
	}
	for i := range photo.Comments {
		if photo.Comments[i].ID == uuid.Nil {
			photo.Comments[i].ID = uuid.New()
		}
		photo.Comments[i].PhotoID = photo.ID
	}
	stored := clonePhoto(photo)
	r.photos = append(r.photos, &stored)
	r.byID[stored.ID] = &stored
	return nil
}

func (r *PhotoRepository) FindByID(_ context.Context, id uuid.UUID) (*model.Photo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok {
		return nil, apperrors.ErrPhotoNotFound
	}
	out := clonePhoto(p)
	return &out, nil
}

func (r *PhotoRepository) ListByOwner(_ context.Context, ownerID uuid.UUID) ([]model.Photo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	photos := []model.Photo{}
	for _, p := range r.photos {
		if p.UserID == ownerID {
			photos = append(photos, clonePhoto(p))
		}
	}
	return photos, nil
}

func (r *PhotoRepository) AppendComment(_ context.Context, photoID uuid.UUID, comment *model.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.byID[photoID]
	if !ok {
		return apperrors.ErrPhotoNotFound
	}
	if comment.ID == uuid.Nil {
		comment.ID = uuid.New()
	}
	comment.PhotoID = photoID
	p.Comments = append(p.Comments, *comment)
	return nil
}

func (r *PhotoRepository) ListCommentedBy(_ context.Context, authorID uuid.UUID) ([]model.Photo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	photos := []model.Photo{}
	for _, p := range r.photos {
		var mine []model.Comment
		for _, c := range p.Comments {
			if c.UserID == authorID {
				mine = append(mine, c)
			}
		}
		if len(mine) == 0 {
			continue
		}
		out := *p
		out.Comments = mine
		photos = append(photos, out)
	}
	return photos, nil
}

func (r *PhotoRepository) CountByOwner(_ context.Context) ([]model.OwnerCount, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return groupCounts(len(r.photos), func(yield func(uuid.UUID)) {
		for _, p := range r.photos {
			yield(p.UserID)
		}
	}), nil
}

func (r *PhotoRepository) CountCommentsByAuthor(_ context.Context) ([]model.OwnerCount, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return groupCounts(len(r.photos), func(yield func(uuid.UUID)) {
		for _, p := range r.photos {
			for _, c := range p.Comments {
				yield(c.UserID)
			}
		}
	}), nil
}

// groupCounts tallies the ids produced by each, preserving first-seen order.
func groupCounts(hint int, each func(yield func(uuid.UUID))) []model.OwnerCount {
	index := make(map[uuid.UUID]int, hint)
	var counts []model.OwnerCount
	each(func(id uuid.UUID) {
		i, ok := index[id]
		if !ok {
			i = len(counts)
			index[id] = i
			counts = append(counts, model.OwnerCount{UserID: id})
		}
		counts[i].Count++
	})
	return counts
}

func (r *PhotoRepository) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return int64(len(r.photos)), nil
}

func (r *PhotoRepository) DeleteAll(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.photos = nil
	r.byID = make(map[uuid.UUID]*model.Photo)
	return nil
}
