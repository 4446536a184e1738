package service

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/boumebar/swim/internal/auth"
	"github.com/boumebar/swim/internal/cache"
	"github.com/boumebar/swim/internal/errors"
	"github.com/boumebar/swim/internal/iri"
	"github.com/boumebar/swim/internal/model"
	"github.com/boumebar/swim/internal/repository"
)

const poolCacheTTL = 5 * time.Minute

// maxPricePerDay is the exclusive upper bound for a daily price.
var maxPricePerDay = decimal.NewFromInt(1_000_000)

// PoolInput carries the writable pool fields for create and full replace.
// Owner is a user resource path and only honored for admin callers.
type PoolInput struct {
	Name        string
	Description string
	PricePerDay decimal.Decimal
	Location    string
	Owner       string
}

// PoolPatch carries optional pool fields for partial update.
type PoolPatch struct {
	Name        *string
	Description *string
	PricePerDay *decimal.Decimal
	Location    *string
	Owner       *string
}

// PoolService handles the pool resource.
type PoolService interface {
	ListPools(ctx context.Context, p auth.Principal) ([]model.Pool, error)
	GetPool(ctx context.Context, p auth.Principal, id uint) (*model.Pool, error)
	CreatePool(ctx context.Context, p auth.Principal, in PoolInput) (*model.Pool, error)
	ReplacePool(ctx context.Context, p auth.Principal, id uint, in PoolInput) (*model.Pool, error)
	UpdatePool(ctx context.Context, p auth.Principal, id uint, patch PoolPatch) (*model.Pool, error)
	DeletePool(ctx context.Context, p auth.Principal, id uint) error
}

type poolService struct {
	repo     repository.PoolRepository
	userRepo repository.UserRepository
	cache    *cache.Client
}

// NewPoolService creates a new pool service.
func NewPoolService(repo repository.PoolRepository, userRepo repository.UserRepository, cache *cache.Client) PoolService {
	return &poolService{
		repo:     repo,
		userRepo: userRepo,
		cache:    cache,
	}
}

func (s *poolService) cacheKey(id uint) string {
	return fmt.Sprintf("pool:%d", id)
}

// ListPools lists all pools. Any authenticated principal may read.
func (s *poolService) ListPools(ctx context.Context, p auth.Principal) ([]model.Pool, error) {
	if !p.Authenticated() {
		return nil, errors.ErrUnauthenticated
	}
	return s.repo.List(ctx)
}

// GetPool reads one pool with caching. Any authenticated principal may read.
func (s *poolService) GetPool(ctx context.Context, p auth.Principal, id uint) (*model.Pool, error) {
	if !p.Authenticated() {
		return nil, errors.ErrUnauthenticated
	}

	if data, _ := s.cache.Get(ctx, s.cacheKey(id)); data != nil {
		var cached model.Pool
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	pool, err := s.findPool(ctx, id)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(pool); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(id), payload, poolCacheTTL)
	}

	return pool, nil
}

// CreatePool creates a pool owned by the caller. The owner is stamped from
// the principal; a client-supplied owner reference is only honored for
// admins.
func (s *poolService) CreatePool(ctx context.Context, p auth.Principal, in PoolInput) (*model.Pool, error) {
	if !p.Authenticated() {
		return nil, errors.ErrUnauthenticated
	}

	if err := validatePrice(in.PricePerDay); err != nil {
		return nil, err
	}

	ownerID, err := s.resolveOwner(ctx, p, in.Owner)
	if err != nil {
		return nil, err
	}

	pool := &model.Pool{
		Name:        in.Name,
		Description: in.Description,
		PricePerDay: in.PricePerDay,
		Location:    in.Location,
		OwnerID:     ownerID,
	}

	if err := s.repo.Create(ctx, pool); err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}
	return pool, nil
}

// ReplacePool overwrites every writable field. Admin or current owner only.
func (s *poolService) ReplacePool(ctx context.Context, p auth.Principal, id uint, in PoolInput) (*model.Pool, error) {
	pool, err := s.findPool(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := allowOwnerOrAdmin(p, pool.OwnerID); err != nil {
		return nil, err
	}
	if err := validatePrice(in.PricePerDay); err != nil {
		return nil, err
	}

	ownerID, err := s.resolveOwner(ctx, p, in.Owner)
	if err != nil {
		return nil, err
	}

	pool.Name = in.Name
	pool.Description = in.Description
	pool.PricePerDay = in.PricePerDay
	pool.Location = in.Location
	pool.OwnerID = ownerID

	return s.savePool(ctx, pool)
}

// UpdatePool applies a partial update. Admin or current owner only.
func (s *poolService) UpdatePool(ctx context.Context, p auth.Principal, id uint, patch PoolPatch) (*model.Pool, error) {
	pool, err := s.findPool(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := allowOwnerOrAdmin(p, pool.OwnerID); err != nil {
		return nil, err
	}

	if patch.Name != nil {
		pool.Name = *patch.Name
	}
	if patch.Description != nil {
		pool.Description = *patch.Description
	}
	if patch.PricePerDay != nil {
		if err := validatePrice(*patch.PricePerDay); err != nil {
			return nil, err
		}
		pool.PricePerDay = *patch.PricePerDay
	}
	if patch.Location != nil {
		pool.Location = *patch.Location
	}
	if patch.Owner != nil {
		ownerID, err := s.resolveOwner(ctx, p, *patch.Owner)
		if err != nil {
			return nil, err
		}
		pool.OwnerID = ownerID
	}

	return s.savePool(ctx, pool)
}

// DeletePool removes a pool and, by cascade, its reservations. Admin or
// current owner only.
func (s *poolService) DeletePool(ctx context.Context, p auth.Principal, id uint) error {
	pool, err := s.findPool(ctx, id)
	if err != nil {
		return err
	}
	if err := allowOwnerOrAdmin(p, pool.OwnerID); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete pool: %w", err)
	}
	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return nil
}

// savePool refreshes the update timestamp, persists and invalidates the
// cache entry. CreatedAt is never reassigned.
func (s *poolService) savePool(ctx context.Context, pool *model.Pool) (*model.Pool, error) {
	pool.UpdatedAt = time.Now()
	if err := s.repo.Update(ctx, pool); err != nil {
		return nil, fmt.Errorf("update pool: %w", err)
	}
	_ = s.cache.Delete(ctx, s.cacheKey(pool.ID))
	return pool, nil
}

func (s *poolService) findPool(ctx context.Context, id uint) (*model.Pool, error) {
	pool, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrPoolNotFound
		}
		return nil, err
	}
	return pool, nil
}

// resolveOwner returns the owner id for a write. A client-supplied owner
// reference is ignored unless the caller is admin; everyone else always
// owns what they write.
func (s *poolService) resolveOwner(ctx context.Context, p auth.Principal, ownerRef string) (uint, error) {
	if ownerRef == "" || !p.IsAdmin() {
		return p.UserID, nil
	}
	ownerID, err := iri.ParseID(iri.Users, ownerRef)
	if err != nil {
		return 0, errors.NewValidationError("owner", "owner must be a user resource path")
	}
	if _, err := s.userRepo.FindByID(ctx, ownerID); err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return 0, errors.NewValidationError("owner", "owner does not exist")
		}
		return 0, fmt.Errorf("resolve owner: %w", err)
	}
	return ownerID, nil
}

// validatePrice enforces the positive, bounded daily price.
func validatePrice(price decimal.Decimal) error {
	if price.LessThanOrEqual(decimal.Zero) {
		return errors.NewValidationError("price_per_day", "price per day must be positive")
	}
	if price.GreaterThanOrEqual(maxPricePerDay) {
		return errors.NewValidationError("price_per_day", "price per day must be less than 1000000")
	}
	return nil
}

// allowOwnerOrAdmin is the access rule for pool mutations.
func allowOwnerOrAdmin(p auth.Principal, ownerID uint) error {
	if !p.Authenticated() {
		return errors.ErrUnauthenticated
	}
	if p.IsAdmin() || p.Owns(ownerID) {
		return nil
	}
	return errors.ErrForbidden
}
