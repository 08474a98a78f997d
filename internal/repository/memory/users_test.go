package memory

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "photoshare/internal/errors"
	"photoshare/internal/model"
)

func TestUserRepository_CreateAndFind(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()

	u := &model.User{LoginName: "alice", FirstName: "Alice", LastName: "A"}
	require.NoError(t, repo.Create(ctx, u))
	assert.NotEqual(t, uuid.Nil, u.ID)

	byID, err := repo.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", byID.LoginName)

	byLogin, err := repo.FindByLoginName(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byLogin.ID)

	_, err = repo.FindByLoginName(ctx, "nobody")
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestUserRepository_DuplicateLoginLeavesFirstUntouched(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()

	first := &model.User{LoginName: "alice", FirstName: "Alice"}
	require.NoError(t, repo.Create(ctx, first))

	err := repo.Create(ctx, &model.User{LoginName: "alice", FirstName: "Mallory"})
	assert.ErrorIs(t, err, apperrors.ErrDuplicateLogin)

	got, err := repo.FindByLoginName(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ID)
	assert.Equal(t, "Alice", got.FirstName)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestUserRepository_FindByIDsSkipsMissing(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()
	u := &model.User{LoginName: "alice"}
	require.NoError(t, repo.Create(ctx, u))

	users, err := repo.FindByIDs(ctx, []uuid.UUID{u.ID, uuid.New()})
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, u.ID, users[0].ID)
}
