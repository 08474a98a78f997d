package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"photoshare/internal/model"
	"photoshare/internal/repository"
)

// AggregationService computes derived views across users, photos and comments.
type AggregationService interface {
	PhotoCountsByUser(ctx context.Context) (map[string]int64, error)
	CommentCountsByUser(ctx context.Context) (map[string]int64, error)
	CommentsByUser(ctx context.Context, userID uuid.UUID) ([]model.UserComment, error)
	ResolveCommentAuthors(ctx context.Context, photo *model.Photo) (*model.PhotoDetail, error)
	ResolvePhotos(ctx context.Context, photos []model.Photo) ([]model.PhotoDetail, error)
}

type aggregationService struct {
	users  repository.UserRepository
	photos repository.PhotoRepository
}

// NewAggregationService creates a new aggregation service.
func NewAggregationService(users repository.UserRepository, photos repository.PhotoRepository) AggregationService {
	return &aggregationService{users: users, photos: photos}
}

// sparse keeps only positive counts.
func sparse(rows []model.OwnerCount) map[string]int64 {
	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		if row.Count > 0 {
			out[row.UserID.String()] += row.Count
		}
	}
	return out
}

// PhotoCountsByUser maps user id to the number of photos owned. Users without
// photos are absent.
func (s *aggregationService) PhotoCountsByUser(ctx context.Context) (map[string]int64, error) {
	rows, err := s.photos.CountByOwner(ctx)
	if err != nil {
		return nil, fmt.Errorf("count photos: %w", err)
	}
	return sparse(rows), nil
}

// CommentCountsByUser maps user id to the number of comments authored.
func (s *aggregationService) CommentCountsByUser(ctx context.Context) (map[string]int64, error) {
	rows, err := s.photos.CountCommentsByAuthor(ctx)
	if err != nil {
		return nil, fmt.Errorf("count comments: %w", err)
	}
	return sparse(rows), nil
}

// CommentsByUser flattens every comment by userID, in photo order then
// comment order.
func (s *aggregationService) CommentsByUser(ctx context.Context, userID uuid.UUID) ([]model.UserComment, error) {
	photos, err := s.photos.ListCommentedBy(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list commented photos: %w", err)
	}

	out := []model.UserComment{}
	for _, p := range photos {
		summary := model.PhotoSummary{ID: p.ID, FileName: p.FileName, UserID: p.UserID}
		for _, c := range p.Comments {
			if c.UserID != userID {
				continue
			}
			out = append(out, model.UserComment{
				ID:       c.ID,
				Text:     c.Comment,
				DateTime: c.DateTime,
				Photo:    summary,
			})
		}
	}
	return out, nil
}

// ResolveCommentAuthors joins each comment of photo with its author.
func (s *aggregationService) ResolveCommentAuthors(ctx context.Context, photo *model.Photo) (*model.PhotoDetail, error) {
	details, err := s.ResolvePhotos(ctx, []model.Photo{*photo})
	if err != nil {
		return nil, err
	}
	return &details[0], nil
}

// ResolvePhotos joins the comments of every photo with their authors using a
// single user lookup. Authors that do not resolve get the placeholder.
func (s *aggregationService) ResolvePhotos(ctx context.Context, photos []model.Photo) ([]model.PhotoDetail, error) {
	seen := make(map[uuid.UUID]struct{})
	var ids []uuid.UUID
	for _, p := range photos {
		for _, c := range p.Comments {
			if _, ok := seen[c.UserID]; !ok {
				seen[c.UserID] = struct{}{}
				ids = append(ids, c.UserID)
			}
		}
	}

	authors := make(map[uuid.UUID]model.CommentAuthor, len(ids))
	if len(ids) > 0 {
		users, err := s.users.FindByIDs(ctx, ids)
		if err != nil {
			return nil, fmt.Errorf("find comment authors: %w", err)
		}
		for i := range users {
			authors[users[i].ID] = model.AuthorOf(&users[i])
		}
	}

	out := make([]model.PhotoDetail, 0, len(photos))
	for _, p := range photos {
		detail := model.PhotoDetail{
			ID:       p.ID,
			UserID:   p.UserID,
			FileName: p.FileName,
			DateTime: p.DateTime,
			Comments: make([]model.CommentDetail, 0, len(p.Comments)),
		}
		for _, c := range p.Comments {
			author, ok := authors[c.UserID]
			if !ok {
				author = model.UnknownAuthor()
			}
			detail.Comments = append(detail.Comments, model.CommentDetail{
				ID:       c.ID,
				Comment:  c.Comment,
				DateTime: c.DateTime,
				UserID:   c.UserID,
				User:     author,
			})
		}
		out = append(out, detail)
	}
	return out, nil
}
