package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"photoshare/internal/auth"
	"photoshare/internal/cache"
	apperrors "photoshare/internal/errors"
	"photoshare/internal/model"
	"photoshare/internal/repository"
)

const userCacheTTL = 5 * time.Minute

// RegisterInput carries the registration fields. Optional profile fields may
// be empty.
type RegisterInput struct {
	LoginName   string
	Password    string
	FirstName   string
	LastName    string
	Location    string
	Description string
	Occupation  string
}

// Validate checks the required fields in order and reports the first blank one.
func (in RegisterInput) Validate() error {
	for _, f := range []struct{ name, value string }{
		{"login_name", in.LoginName},
		{"password", in.Password},
		{"first_name", in.FirstName},
		{"last_name", in.LastName},
	} {
		if strings.TrimSpace(f.value) == "" {
			return apperrors.Required(f.name)
		}
	}
	return nil
}

// UserService is the credential store plus user lookups.
type UserService interface {
	Register(ctx context.Context, in RegisterInput) (*model.User, error)
	Verify(ctx context.Context, loginName, password string) (*model.User, error)
	GetUser(ctx context.Context, id uuid.UUID) (*model.User, error)
	ListUsers(ctx context.Context) ([]model.UserSummary, error)
}

type userService struct {
	repo  repository.UserRepository
	cache *cache.Client
	// decoy is verified against when the login name is unknown so both
	// failure paths do the same work.
	decoyDigest string
	decoySalt   string
}

// NewUserService builds a UserService with repository and cache. cache may be nil.
func NewUserService(repo repository.UserRepository, cache *cache.Client) UserService {
	s := &userService{repo: repo, cache: cache}
	s.decoyDigest, s.decoySalt, _ = auth.HashPassword(uuid.NewString())
	return s
}

func (s *userService) cacheKey(id uuid.UUID) string {
	return fmt.Sprintf("user:%s", id.String())
}

// Register creates a user with a salted password digest.
func (s *userService) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByLoginName(ctx, in.LoginName)
	if err == nil && existing != nil {
		return nil, apperrors.ErrDuplicateLogin
	}
	if err != nil && !errors.Is(err, apperrors.ErrUserNotFound) {
		return nil, fmt.Errorf("check login name: %w", err)
	}

	digest, salt, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		ID:             uuid.New(),
		LoginName:      in.LoginName,
		PasswordDigest: digest,
		Salt:           salt,
		FirstName:      in.FirstName,
		LastName:       in.LastName,
		Location:       in.Location,
		Description:    in.Description,
		Occupation:     in.Occupation,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrDuplicateLogin) {
			return nil, err
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// Verify returns the user when password matches. Unknown login names and
// wrong passwords both yield ErrInvalidCredentials.
func (s *userService) Verify(ctx context.Context, loginName, password string) (*model.User, error) {
	user, err := s.repo.FindByLoginName(ctx, loginName)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			auth.VerifyPassword(password, s.decoyDigest, s.decoySalt)
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	if !auth.VerifyPassword(password, user.PasswordDigest, user.Salt) {
		return nil, apperrors.ErrInvalidCredentials
	}
	return user, nil
}

// GetUser reads through the cache. Cache failures behave as misses.
func (s *userService) GetUser(ctx context.Context, id uuid.UUID) (*model.User, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(id)); data != nil {
		var cached model.UserProfile
		if err := json.Unmarshal(data, &cached); err == nil {
			return &model.User{
				ID:          cached.ID,
				FirstName:   cached.FirstName,
				LastName:    cached.LastName,
				Location:    cached.Location,
				Description: cached.Description,
				Occupation:  cached.Occupation,
			}, nil
		}
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Only the public profile is cached.
	if payload, err := json.Marshal(user.Profile()); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(id), payload, userCacheTTL)
	}
	return user, nil
}

func (s *userService) ListUsers(ctx context.Context) ([]model.UserSummary, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	out := make([]model.UserSummary, 0, len(users))
	for i := range users {
		out = append(out, users[i].Summary())
	}
	return out, nil
}
