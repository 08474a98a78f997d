package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"photoshare/internal/auth"
	apperrors "photoshare/internal/errors"
	"photoshare/internal/model"
)

func validInput() RegisterInput {
	return RegisterInput{LoginName: "alice", Password: "secret123", FirstName: "Alice", LastName: "A"}
}

func TestUserService_Register(t *testing.T) {
	tests := []struct {
		name          string
		input         RegisterInput
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:  "successful registration",
			input: validInput(),
			setupMock: func(m *MockUserRepository) {
				m.On("FindByLoginName", mock.Anything, "alice").Return(nil, apperrors.ErrUserNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
		},
		{
			name:  "login name already exists",
			input: validInput(),
			setupMock: func(m *MockUserRepository) {
				m.On("FindByLoginName", mock.Anything, "alice").Return(&model.User{LoginName: "alice"}, nil)
			},
			expectedError: apperrors.ErrDuplicateLogin,
		},
		{
			name:  "duplicate detected by unique index",
			input: validInput(),
			setupMock: func(m *MockUserRepository) {
				m.On("FindByLoginName", mock.Anything, "alice").Return(nil, apperrors.ErrUserNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(apperrors.ErrDuplicateLogin)
			},
			expectedError: apperrors.ErrDuplicateLogin,
		},
		{
			name:          "blank login name",
			input:         RegisterInput{LoginName: "   ", Password: "x", FirstName: "A", LastName: "B"},
			setupMock:     func(m *MockUserRepository) {},
			expectedError: apperrors.ErrValidation,
		},
		{
			name:          "whitespace password",
			input:         RegisterInput{LoginName: "a", Password: " \t", FirstName: "A", LastName: "B"},
			setupMock:     func(m *MockUserRepository) {},
			expectedError: apperrors.ErrValidation,
		},
		{
			name:          "missing last name",
			input:         RegisterInput{LoginName: "a", Password: "x", FirstName: "A"},
			setupMock:     func(m *MockUserRepository) {},
			expectedError: apperrors.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			service := NewUserService(mockRepo, nil)
			user, err := service.Register(context.Background(), tt.input)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, user)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.input.LoginName, user.LoginName)
				assert.NotEqual(t, uuid.Nil, user.ID)
				assert.NotEmpty(t, user.PasswordDigest)
				assert.NotEmpty(t, user.Salt)
				assert.NotEqual(t, tt.input.Password, user.PasswordDigest)
				assert.True(t, auth.VerifyPassword(tt.input.Password, user.PasswordDigest, user.Salt))
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestUserService_RegisterReportsFirstBlankField(t *testing.T) {
	service := NewUserService(new(MockUserRepository), nil)

	_, err := service.Register(context.Background(), RegisterInput{LoginName: "a", Password: "x"})

	var verr *apperrors.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "first_name", verr.Field)
}

func TestUserService_Verify(t *testing.T) {
	digest, salt, err := auth.HashPassword("secret123")
	require.NoError(t, err)
	stored := &model.User{ID: uuid.New(), LoginName: "alice", PasswordDigest: digest, Salt: salt}

	tests := []struct {
		name          string
		loginName     string
		password      string
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:      "correct password",
			loginName: "alice",
			password:  "secret123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByLoginName", mock.Anything, "alice").Return(stored, nil)
			},
		},
		{
			name:      "wrong password",
			loginName: "alice",
			password:  "wrong",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByLoginName", mock.Anything, "alice").Return(stored, nil)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
		{
			name:      "unknown login name",
			loginName: "bob",
			password:  "secret123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByLoginName", mock.Anything, "bob").Return(nil, apperrors.ErrUserNotFound)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			service := NewUserService(mockRepo, nil)
			user, err := service.Verify(context.Background(), tt.loginName, tt.password)

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, user)
			} else {
				require.NoError(t, err)
				assert.Equal(t, stored.ID, user.ID)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestUserService_VerifyStorageFailureIsNotCredentialError(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockRepo.On("FindByLoginName", mock.Anything, "alice").Return(nil, errors.New("connection reset"))

	_, err := NewUserService(mockRepo, nil).Verify(context.Background(), "alice", "x")

	assert.Error(t, err)
	assert.NotErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestUserService_ListUsers(t *testing.T) {
	mockRepo := new(MockUserRepository)
	a, b := uuid.New(), uuid.New()
	mockRepo.On("List", mock.Anything).Return([]model.User{
		{ID: a, FirstName: "Alice", LastName: "A", PasswordDigest: "x"},
		{ID: b, FirstName: "Bob", LastName: "B", PasswordDigest: "y"},
	}, nil)

	users, err := NewUserService(mockRepo, nil).ListUsers(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []model.UserSummary{
		{ID: a, FirstName: "Alice", LastName: "A"},
		{ID: b, FirstName: "Bob", LastName: "B"},
	}, users)
}

func TestUserService_GetUser(t *testing.T) {
	id := uuid.New()
	mockRepo := new(MockUserRepository)
	mockRepo.On("FindByID", mock.Anything, id).Return(&model.User{ID: id, FirstName: "Alice"}, nil)
	missing := uuid.New()
	mockRepo.On("FindByID", mock.Anything, missing).Return(nil, apperrors.ErrUserNotFound)

	service := NewUserService(mockRepo, nil)

	user, err := service.GetUser(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Alice", user.FirstName)

	_, err = service.GetUser(context.Background(), missing)
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}
