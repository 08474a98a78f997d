package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"photoshare/internal/model"
)

func TestAggregationService_PhotoCountsAreSparse(t *testing.T) {
	alice, bob, carol := uuid.New(), uuid.New(), uuid.New()
	photos := new(MockPhotoRepository)
	photos.On("CountByOwner", mock.Anything).Return([]model.OwnerCount{
		{UserID: alice, Count: 3},
		{UserID: bob, Count: 1},
		{UserID: carol, Count: 0},
	}, nil)

	counts, err := NewAggregationService(new(MockUserRepository), photos).PhotoCountsByUser(context.Background())

	require.NoError(t, err)
	assert.Equal(t, map[string]int64{alice.String(): 3, bob.String(): 1}, counts)
	_, present := counts[carol.String()]
	assert.False(t, present)

	var total int64
	for _, n := range counts {
		total += n
	}
	assert.EqualValues(t, 4, total)
}

func TestAggregationService_CommentCounts(t *testing.T) {
	alice := uuid.New()
	photos := new(MockPhotoRepository)
	photos.On("CountCommentsByAuthor", mock.Anything).Return([]model.OwnerCount{{UserID: alice, Count: 2}}, nil)

	counts, err := NewAggregationService(new(MockUserRepository), photos).CommentCountsByUser(context.Background())

	require.NoError(t, err)
	assert.Equal(t, map[string]int64{alice.String(): 2}, counts)
}

func TestAggregationService_CountsStorageError(t *testing.T) {
	photos := new(MockPhotoRepository)
	photos.On("CountByOwner", mock.Anything).Return(nil, errors.New("db down"))

	_, err := NewAggregationService(new(MockUserRepository), photos).PhotoCountsByUser(context.Background())
	assert.Error(t, err)
}

func TestAggregationService_CommentsByUser(t *testing.T) {
	alice, bob := uuid.New(), uuid.New()
	p1 := model.Photo{ID: uuid.New(), UserID: bob, FileName: "a.jpg", Comments: []model.Comment{
		{ID: uuid.New(), Comment: "first", UserID: alice},
		{ID: uuid.New(), Comment: "second", UserID: alice},
	}}
	p2 := model.Photo{ID: uuid.New(), UserID: alice, FileName: "b.jpg", Comments: []model.Comment{
		{ID: uuid.New(), Comment: "third", UserID: alice},
	}}
	photos := new(MockPhotoRepository)
	photos.On("ListCommentedBy", mock.Anything, alice).Return([]model.Photo{p1, p2}, nil)

	comments, err := NewAggregationService(new(MockUserRepository), photos).CommentsByUser(context.Background(), alice)

	require.NoError(t, err)
	require.Len(t, comments, 3)
	assert.Equal(t, "first", comments[0].Text)
	assert.Equal(t, "second", comments[1].Text)
	assert.Equal(t, "third", comments[2].Text)
	assert.Equal(t, model.PhotoSummary{ID: p1.ID, FileName: "a.jpg", UserID: bob}, comments[0].Photo)
	assert.Equal(t, p2.ID, comments[2].Photo.ID)
}

func TestAggregationService_CommentsByUserNone(t *testing.T) {
	id := uuid.New()
	photos := new(MockPhotoRepository)
	photos.On("ListCommentedBy", mock.Anything, id).Return([]model.Photo{}, nil)

	comments, err := NewAggregationService(new(MockUserRepository), photos).CommentsByUser(context.Background(), id)

	require.NoError(t, err)
	assert.NotNil(t, comments)
	assert.Empty(t, comments)
}

func TestAggregationService_ResolveCommentAuthors(t *testing.T) {
	alice, ghost := uuid.New(), uuid.New()
	now := time.Now()
	photo := &model.Photo{ID: uuid.New(), UserID: alice, FileName: "a.jpg", DateTime: now, Comments: []model.Comment{
		{ID: uuid.New(), Comment: "nice!", UserID: alice, DateTime: now},
		{ID: uuid.New(), Comment: "boo", UserID: ghost, DateTime: now},
		{ID: uuid.New(), Comment: "again", UserID: alice, DateTime: now},
	}}

	users := new(MockUserRepository)
	users.On("FindByIDs", mock.Anything, []uuid.UUID{alice, ghost}).Return([]model.User{
		{ID: alice, FirstName: "Alice", LastName: "A", PasswordDigest: "secret"},
	}, nil)

	detail, err := NewAggregationService(users, new(MockPhotoRepository)).ResolveCommentAuthors(context.Background(), photo)

	require.NoError(t, err)
	assert.Equal(t, photo.ID, detail.ID)
	require.Len(t, detail.Comments, 3)

	first := detail.Comments[0].User
	require.NotNil(t, first.ID)
	assert.Equal(t, alice, *first.ID)
	assert.Equal(t, "Alice", first.FirstName)
	assert.Equal(t, "A", first.LastName)

	assert.Equal(t, model.UnknownAuthor(), detail.Comments[1].User)
	assert.Nil(t, detail.Comments[1].User.ID)
	assert.Equal(t, ghost, detail.Comments[1].UserID)

	assert.Equal(t, "Alice", detail.Comments[2].User.FirstName)
	users.AssertExpectations(t)
}

func TestAggregationService_ResolvePhotosWithoutComments(t *testing.T) {
	users := new(MockUserRepository)
	photos := []model.Photo{{ID: uuid.New()}, {ID: uuid.New()}}

	details, err := NewAggregationService(users, new(MockPhotoRepository)).ResolvePhotos(context.Background(), photos)

	require.NoError(t, err)
	require.Len(t, details, 2)
	assert.NotNil(t, details[0].Comments)
	users.AssertNotCalled(t, "FindByIDs", mock.Anything, mock.Anything)
}

func TestAggregationService_ResolveLookupFailure(t *testing.T) {
	users := new(MockUserRepository)
	users.On("FindByIDs", mock.Anything, mock.Anything).Return(nil, errors.New("timeout"))
	photo := &model.Photo{Comments: []model.Comment{{UserID: uuid.New()}}}

	_, err := NewAggregationService(users, new(MockPhotoRepository)).ResolveCommentAuthors(context.Background(), photo)
	assert.Error(t, err)
}
