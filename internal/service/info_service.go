package service

import (
	"context"
	"fmt"
	"time"

	"photoshare/internal/model"
	"photoshare/internal/repository"
)

// SchemaVersion is the dataset version written by the loader.
const SchemaVersion = "1.0"

// InfoService reports what is loaded in the store.
type InfoService interface {
	SchemaInfo(ctx context.Context) (*model.SchemaInfo, error)
	RecordSchema(ctx context.Context, version string) (*model.SchemaInfo, error)
	Counts(ctx context.Context) (map[string]int64, error)
}

type infoService struct {
	repos *repository.Set
}

// NewInfoService creates a new info service.
func NewInfoService(repos *repository.Set) InfoService {
	return &infoService{repos: repos}
}

func (s *infoService) SchemaInfo(ctx context.Context) (*model.SchemaInfo, error) {
	return s.repos.SchemaInfo.First(ctx)
}

func (s *infoService) RecordSchema(ctx context.Context, version string) (*model.SchemaInfo, error) {
	info := &model.SchemaInfo{Version: version, LoadDateTime: time.Now()}
	if err := s.repos.SchemaInfo.Create(ctx, info); err != nil {
		return nil, fmt.Errorf("create schema info: %w", err)
	}
	return info, nil
}

// Counts returns the population of each collection.
func (s *infoService) Counts(ctx context.Context) (map[string]int64, error) {
	counters := []struct {
		name  string
		count func(context.Context) (int64, error)
	}{
		{"user", s.repos.Users.Count},
		{"photo", s.repos.Photos.Count},
		{"schemaInfo", s.repos.SchemaInfo.Count},
	}

	out := make(map[string]int64, len(counters))
	for _, c := range counters {
		n, err := c.count(ctx)
		if err != nil {
			return nil, fmt.Errorf("count %s: %w", c.name, err)
		}
		out[c.name] = n
	}
	return out, nil
}
