package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/boumebar/swim/internal/auth"
	"github.com/boumebar/swim/internal/errors"
	"github.com/boumebar/swim/internal/model"
)

func TestUserService_AdminOnlyAccess(t *testing.T) {
	tests := []struct {
		name          string
		principal     auth.Principal
		expectedError error
	}{
		{"anonymous is unauthenticated", auth.Anonymous, errors.ErrUnauthenticated},
		{"regular user is forbidden", userPrincipal(5), errors.ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			service := NewUserService(mockRepo)

			_, err := service.ListUsers(context.Background(), tt.principal)
			assert.ErrorIs(t, err, tt.expectedError)

			_, err = service.GetUser(context.Background(), tt.principal, 1)
			assert.ErrorIs(t, err, tt.expectedError)

			_, err = service.CreateUser(context.Background(), tt.principal, UserInput{Email: "a@b.c", Username: "ab", Password: "pw"})
			assert.ErrorIs(t, err, tt.expectedError)

			err = service.DeleteUser(context.Background(), tt.principal, 1)
			assert.ErrorIs(t, err, tt.expectedError)

			// The repository is never touched when access is denied.
			mockRepo.AssertNotCalled(t, "List", mock.Anything)
			mockRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
		})
	}
}

func TestUserService_GetUser_NotFound(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockRepo.On("FindByID", mock.Anything, uint(22221)).Return(nil, gorm.ErrRecordNotFound)

	service := NewUserService(mockRepo)
	user, err := service.GetUser(context.Background(), adminPrincipal(), 22221)

	assert.Nil(t, user)
	assert.ErrorIs(t, err, errors.ErrUserNotFound)
}

func TestUserService_CreateUser(t *testing.T) {
	t.Run("hashes password and defaults roles", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByEmail", mock.Anything, "new@example.com").Return(nil, gorm.ErrRecordNotFound)
		mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)

		service := NewUserService(mockRepo)
		user, err := service.CreateUser(context.Background(), adminPrincipal(), UserInput{
			Email:    "new@example.com",
			Username: "newbie",
			Password: "secret",
		})

		assert.NoError(t, err)
		assert.Equal(t, model.RoleList{model.RoleUser}, user.Roles)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret")))
		mockRepo.AssertExpectations(t)
	})

	t.Run("admin may assign elevated roles", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByEmail", mock.Anything, "boss@example.com").Return(nil, gorm.ErrRecordNotFound)
		mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)

		service := NewUserService(mockRepo)
		user, err := service.CreateUser(context.Background(), adminPrincipal(), UserInput{
			Email:    "boss@example.com",
			Username: "boss",
			Password: "secret",
			Roles:    []string{model.RoleAdmin},
		})

		assert.NoError(t, err)
		assert.Equal(t, model.RoleList{model.RoleAdmin}, user.Roles)
	})

	t.Run("duplicate email", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByEmail", mock.Anything, "taken@example.com").Return(&model.User{ID: 4, Email: "taken@example.com"}, nil)

		service := NewUserService(mockRepo)
		user, err := service.CreateUser(context.Background(), adminPrincipal(), UserInput{
			Email:    "taken@example.com",
			Username: "dup",
			Password: "secret",
		})

		assert.Nil(t, user)
		assert.ErrorIs(t, err, errors.ErrEmailTaken)
		mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestUserService_UpdateUser(t *testing.T) {
	stored := func() *model.User {
		return &model.User{ID: 7, Email: "old@example.com", Username: "old", Roles: model.RoleList{model.RoleUser}}
	}

	t.Run("keeping own email is not a conflict", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByID", mock.Anything, uint(7)).Return(stored(), nil)
		mockRepo.On("FindByEmail", mock.Anything, "old@example.com").Return(stored(), nil)
		mockRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)

		service := NewUserService(mockRepo)
		email := "old@example.com"
		user, err := service.UpdateUser(context.Background(), adminPrincipal(), 7, UserPatch{Email: &email})

		assert.NoError(t, err)
		assert.Equal(t, "old@example.com", user.Email)
		mockRepo.AssertExpectations(t)
	})

	t.Run("email held by another user is rejected", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByID", mock.Anything, uint(7)).Return(stored(), nil)
		mockRepo.On("FindByEmail", mock.Anything, "taken@example.com").Return(&model.User{ID: 9, Email: "taken@example.com"}, nil)

		service := NewUserService(mockRepo)
		email := "taken@example.com"
		user, err := service.UpdateUser(context.Background(), adminPrincipal(), 7, UserPatch{Email: &email})

		assert.Nil(t, user)
		assert.ErrorIs(t, err, errors.ErrEmailTaken)
		mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("password patch is rehashed", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByID", mock.Anything, uint(7)).Return(stored(), nil)
		mockRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)

		service := NewUserService(mockRepo)
		password := "fresh-secret"
		user, err := service.UpdateUser(context.Background(), adminPrincipal(), 7, UserPatch{Password: &password})

		assert.NoError(t, err)
		assert.NotEqual(t, password, user.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)))
	})
}

func TestUserService_DeleteUser(t *testing.T) {
	t.Run("admin may delete", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByID", mock.Anything, uint(7)).Return(&model.User{ID: 7}, nil)
		mockRepo.On("Delete", mock.Anything, uint(7)).Return(nil)

		service := NewUserService(mockRepo)
		assert.NoError(t, service.DeleteUser(context.Background(), adminPrincipal(), 7))
		mockRepo.AssertExpectations(t)
	})

	t.Run("missing user yields not found", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByID", mock.Anything, uint(22221)).Return(nil, gorm.ErrRecordNotFound)

		service := NewUserService(mockRepo)
		err := service.DeleteUser(context.Background(), adminPrincipal(), 22221)

		assert.ErrorIs(t, err, errors.ErrUserNotFound)
		mockRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

func TestUserService_Me(t *testing.T) {
	t.Run("authenticated caller gets own record", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByID", mock.Anything, uint(5)).Return(&model.User{ID: 5, Email: "user@example.com"}, nil)

		service := NewUserService(mockRepo)
		user, err := service.Me(context.Background(), userPrincipal(5))

		assert.NoError(t, err)
		assert.Equal(t, uint(5), user.ID)
	})

	t.Run("anonymous caller gets nil without error", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		service := NewUserService(mockRepo)

		user, err := service.Me(context.Background(), auth.Anonymous)

		assert.NoError(t, err)
		assert.Nil(t, user)
		mockRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})

	t.Run("stale token for deleted user gets nil", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByID", mock.Anything, uint(5)).Return(nil, gorm.ErrRecordNotFound)

		service := NewUserService(mockRepo)
		user, err := service.Me(context.Background(), userPrincipal(5))

		assert.NoError(t, err)
		assert.Nil(t, user)
	})
}
