package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/boumebar/swim/internal/model"
)

// PoolRepository defines pool persistence operations.
type PoolRepository interface {
	Create(ctx context.Context, pool *model.Pool) error
	Update(ctx context.Context, pool *model.Pool) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*model.Pool, error)
	List(ctx context.Context) ([]model.Pool, error)
}

type poolRepository struct {
	db *gorm.DB
}

// NewPoolRepository builds a GORM-backed repository.
func NewPoolRepository(db *gorm.DB) PoolRepository {
	return &poolRepository{db: db}
}

func (r *poolRepository) Create(ctx context.Context, pool *model.Pool) error {
	return r.db.WithContext(ctx).Create(pool).Error
}

func (r *poolRepository) Update(ctx context.Context, pool *model.Pool) error {
	return r.db.WithContext(ctx).Save(pool).Error
}

// Delete removes the pool and, through the foreign key cascade, its
// reservations.
func (r *poolRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Pool{}, id).Error
}

func (r *poolRepository) FindByID(ctx context.Context, id uint) (*model.Pool, error) {
	var pool model.Pool
	if err := r.db.WithContext(ctx).First(&pool, id).Error; err != nil {
		return nil, err
	}
	return &pool, nil
}

func (r *poolRepository) List(ctx context.Context) ([]model.Pool, error) {
	var pools []model.Pool
	if err := r.db.WithContext(ctx).Find(&pools).Error; err != nil {
		return nil, err
	}
	return pools, nil
}
