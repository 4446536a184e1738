package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"github.com/boumebar/swim/internal/auth"
	"github.com/boumebar/swim/internal/errors"
	"github.com/boumebar/swim/internal/model"
)

func userPrincipal(id uint) auth.Principal {
	return auth.Principal{UserID: id, Email: "user@example.com", Roles: []string{model.RoleUser}}
}

func adminPrincipal() auth.Principal {
	return auth.Principal{UserID: 99, Email: "admin@example.com", Roles: []string{model.RoleUser, model.RoleAdmin}}
}

func validPoolInput() PoolInput {
	return PoolInput{
		Name:        "Blue Lagoon",
		Description: "Heated outdoor pool",
		PricePerDay: decimal.NewFromInt(120),
		Location:    "Marseille",
	}
}

func TestPoolService_CreatePool_StampsOwner(t *testing.T) {
	mockRepo := new(MockPoolRepository)
	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Pool")).Return(nil)

	service := NewPoolService(mockRepo, new(MockUserRepository), nil)

	// The client-supplied owner reference must be ignored for non-admins.
	in := validPoolInput()
	in.Owner = "/api/users/42"

	pool, err := service.CreatePool(context.Background(), userPrincipal(5), in)

	assert.NoError(t, err)
	assert.Equal(t, uint(5), pool.OwnerID)
	mockRepo.AssertExpectations(t)
}

func TestPoolService_CreatePool_AdminMayAssignOwner(t *testing.T) {
	mockRepo := new(MockPoolRepository)
	mockUserRepo := new(MockUserRepository)
	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Pool")).Return(nil)
	mockUserRepo.On("FindByID", mock.Anything, uint(42)).Return(&model.User{ID: 42}, nil)

	service := NewPoolService(mockRepo, mockUserRepo, nil)

	in := validPoolInput()
	in.Owner = "/api/users/42"

	pool, err := service.CreatePool(context.Background(), adminPrincipal(), in)

	assert.NoError(t, err)
	assert.Equal(t, uint(42), pool.OwnerID)
	mockRepo.AssertExpectations(t)
	mockUserRepo.AssertExpectations(t)
}

func TestPoolService_CreatePool_PriceBounds(t *testing.T) {
	tests := []struct {
		name  string
		price decimal.Decimal
	}{
		{"zero price", decimal.Zero},
		{"negative price", decimal.NewFromInt(-10)},
		{"price at upper bound", decimal.NewFromInt(1_000_000)},
		{"price above upper bound", decimal.NewFromInt(2_000_000)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := NewPoolService(new(MockPoolRepository), new(MockUserRepository), nil)

			in := validPoolInput()
			in.PricePerDay = tt.price

			pool, err := service.CreatePool(context.Background(), userPrincipal(5), in)

			assert.Nil(t, pool)
			var vErr *errors.ValidationError
			assert.ErrorAs(t, err, &vErr)
			assert.Contains(t, vErr.Fields, "price_per_day")
		})
	}
}

func TestPoolService_UpdatePool_OwnerOrAdminOnly(t *testing.T) {
	stored := func() *model.Pool {
		return &model.Pool{
			ID:          3,
			Name:        "Blue Lagoon",
			Description: "Heated outdoor pool",
			PricePerDay: decimal.NewFromInt(120),
			Location:    "Marseille",
			OwnerID:     5,
		}
	}
	newName := "Green Lagoon"

	t.Run("owner may update", func(t *testing.T) {
		mockRepo := new(MockPoolRepository)
		mockRepo.On("FindByID", mock.Anything, uint(3)).Return(stored(), nil)
		mockRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.Pool")).Return(nil)

		service := NewPoolService(mockRepo, new(MockUserRepository), nil)
		pool, err := service.UpdatePool(context.Background(), userPrincipal(5), 3, PoolPatch{Name: &newName})

		assert.NoError(t, err)
		assert.Equal(t, "Green Lagoon", pool.Name)
		mockRepo.AssertExpectations(t)
	})

	t.Run("admin may update", func(t *testing.T) {
		mockRepo := new(MockPoolRepository)
		mockRepo.On("FindByID", mock.Anything, uint(3)).Return(stored(), nil)
		mockRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.Pool")).Return(nil)

		service := NewPoolService(mockRepo, new(MockUserRepository), nil)
		_, err := service.UpdatePool(context.Background(), adminPrincipal(), 3, PoolPatch{Name: &newName})

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("other user is forbidden", func(t *testing.T) {
		mockRepo := new(MockPoolRepository)
		mockRepo.On("FindByID", mock.Anything, uint(3)).Return(stored(), nil)

		service := NewPoolService(mockRepo, new(MockUserRepository), nil)
		pool, err := service.UpdatePool(context.Background(), userPrincipal(8), 3, PoolPatch{Name: &newName})

		assert.Nil(t, pool)
		assert.ErrorIs(t, err, errors.ErrForbidden)
		mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestPoolService_UpdatePool_RefreshesUpdatedAtOnly(t *testing.T) {
	createdAt := time.Date(2024, 9, 12, 17, 55, 13, 0, time.UTC)
	stored := &model.Pool{
		ID:          3,
		Name:        "Blue Lagoon",
		Description: "Heated outdoor pool",
		PricePerDay: decimal.NewFromInt(120),
		Location:    "Marseille",
		OwnerID:     5,
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}

	mockRepo := new(MockPoolRepository)
	mockRepo.On("FindByID", mock.Anything, uint(3)).Return(stored, nil)
	mockRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.Pool")).Return(nil)

	service := NewPoolService(mockRepo, new(MockUserRepository), nil)
	newLocation := "Nice"
	pool, err := service.UpdatePool(context.Background(), userPrincipal(5), 3, PoolPatch{Location: &newLocation})

	assert.NoError(t, err)
	assert.Equal(t, createdAt, pool.CreatedAt)
	assert.True(t, pool.UpdatedAt.After(createdAt))
}

func TestPoolService_GetPool(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		mockRepo := new(MockPoolRepository)
		mockRepo.On("FindByID", mock.Anything, uint(1111)).Return(nil, gorm.ErrRecordNotFound)

		service := NewPoolService(mockRepo, new(MockUserRepository), nil)
		pool, err := service.GetPool(context.Background(), userPrincipal(5), 1111)

		assert.Nil(t, pool)
		assert.ErrorIs(t, err, errors.ErrPoolNotFound)
	})

	t.Run("unauthenticated", func(t *testing.T) {
		service := NewPoolService(new(MockPoolRepository), new(MockUserRepository), nil)
		pool, err := service.GetPool(context.Background(), auth.Anonymous, 1)

		assert.Nil(t, pool)
		assert.ErrorIs(t, err, errors.ErrUnauthenticated)
	})
}

func TestPoolService_ListPools_RequiresAuthentication(t *testing.T) {
	service := NewPoolService(new(MockPoolRepository), new(MockUserRepository), nil)
	pools, err := service.ListPools(context.Background(), auth.Anonymous)

	assert.Nil(t, pools)
	assert.ErrorIs(t, err, errors.ErrUnauthenticated)
}

func TestPoolService_DeletePool(t *testing.T) {
	stored := &model.Pool{ID: 3, OwnerID: 5}

	t.Run("owner may delete", func(t *testing.T) {
		mockRepo := new(MockPoolRepository)
		mockRepo.On("FindByID", mock.Anything, uint(3)).Return(stored, nil)
		mockRepo.On("Delete", mock.Anything, uint(3)).Return(nil)

		service := NewPoolService(mockRepo, new(MockUserRepository), nil)
		assert.NoError(t, service.DeletePool(context.Background(), userPrincipal(5), 3))
		mockRepo.AssertExpectations(t)
	})

	t.Run("other user is forbidden", func(t *testing.T) {
		mockRepo := new(MockPoolRepository)
		mockRepo.On("FindByID", mock.Anything, uint(3)).Return(stored, nil)

		service := NewPoolService(mockRepo, new(MockUserRepository), nil)
		err := service.DeletePool(context.Background(), userPrincipal(8), 3)

		assert.ErrorIs(t, err, errors.ErrForbidden)
		mockRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}
