package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	apperrors "photoshare/internal/errors"
	"photoshare/internal/model"
	"photoshare/internal/repository"
)

// UserRepository keeps users in insertion order.
type UserRepository struct {
	mu      sync.RWMutex
	users   []model.User
	byID    map[uuid.UUID]int
	byLogin map[string]int
}

var _ repository.UserRepository = (*UserRepository)(nil)

// NewUserRepository creates an empty repository.
func NewUserRepository() *UserRepository {
	return &UserRepository{
		byID:    make(map[uuid.UUID]int),
		byLogin: make(map[string]int),
	}
}

func (r *UserRepository) Create(_ context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byLogin[user.LoginName]; ok {
		return apperrors.ErrDuplicateLogin
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	r.byID[user.ID] = len(r.users)
	r.byLogin[user.LoginName] = len(r.users)
	r.users = append(r.users, *user)
	return nil
}

func (r *UserRepository) FindByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.byID[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	u := r.users[i]
	return &u, nil
}

func (r *UserRepository) FindByLoginName(_ context.Context, loginName string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.byLogin[loginName]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	u := r.users[i]
	return &u, nil
}

func (r *UserRepository) FindByIDs(_ context.Context, ids []uuid.UUID) ([]model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]model.User, 0, len(ids))
	for _, id := range ids {
		if i, ok := r.byID[id]; ok {
			users = append(users, r.users[i])
		}
	}
	return users, nil
}

func (r *UserRepository) List(_ context.Context) ([]model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]model.User(nil), r.users...), nil
}

func (r *UserRepository) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return int64(len(r.users)), nil
}

func (r *UserRepository) DeleteAll(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.users = nil
	r.byID = make(map[uuid.UUID]int)
	r.byLogin = make(map[string]int)
	return nil
}
