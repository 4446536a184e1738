package service

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/boumebar/swim/internal/auth"
	"github.com/boumebar/swim/internal/errors"
	"github.com/boumebar/swim/internal/iri"
	"github.com/boumebar/swim/internal/model"
	"github.com/boumebar/swim/internal/repository"
)

// ReservationInput carries the writable reservation fields for create and
// full replace. Pool is a pool resource path. No ordering between the two
// dates is enforced; the source system accepts endDate before startDate.
type ReservationInput struct {
	StartDate time.Time
	EndDate   time.Time
	Pool      string
	Approved  bool
}

// ReservationPatch carries optional reservation fields for partial update.
type ReservationPatch struct {
	StartDate *time.Time
	EndDate   *time.Time
	Pool      *string
	Approved  *bool
}

// ReservationService handles the reservation resource.
type ReservationService interface {
	ListReservations(ctx context.Context, p auth.Principal) ([]model.Reservation, error)
	GetReservation(ctx context.Context, p auth.Principal, id uint) (*model.Reservation, error)
	CreateReservation(ctx context.Context, p auth.Principal, in ReservationInput) (*model.Reservation, error)
	ReplaceReservation(ctx context.Context, p auth.Principal, id uint, in ReservationInput) (*model.Reservation, error)
	UpdateReservation(ctx context.Context, p auth.Principal, id uint, patch ReservationPatch) (*model.Reservation, error)
	DeleteReservation(ctx context.Context, p auth.Principal, id uint) error
}

type reservationService struct {
	repo     repository.ReservationRepository
	poolRepo repository.PoolRepository
}

// NewReservationService creates a new reservation service.
func NewReservationService(repo repository.ReservationRepository, poolRepo repository.PoolRepository) ReservationService {
	return &reservationService{
		repo:     repo,
		poolRepo: poolRepo,
	}
}

// ListReservations lists every reservation. Admin only.
func (s *reservationService) ListReservations(ctx context.Context, p auth.Principal) ([]model.Reservation, error) {
	if !p.Authenticated() {
		return nil, errors.ErrUnauthenticated
	}
	if !p.IsAdmin() {
		return nil, errors.ErrForbidden
	}
	return s.repo.List(ctx)
}

// GetReservation reads one reservation. Admin or the renter only.
func (s *reservationService) GetReservation(ctx context.Context, p auth.Principal, id uint) (*model.Reservation, error) {
	reservation, err := s.findReservation(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := allowRenterOrAdmin(p, reservation.RenterID); err != nil {
		return nil, err
	}
	return reservation, nil
}

// CreateReservation books a pool for the caller. The renter is always the
// authenticated principal regardless of the request body, and approval
// starts out false on every creation path.
func (s *reservationService) CreateReservation(ctx context.Context, p auth.Principal, in ReservationInput) (*model.Reservation, error) {
	if !p.Authenticated() {
		return nil, errors.ErrUnauthenticated
	}

	poolID, err := s.resolvePool(ctx, in.Pool)
	if err != nil {
		return nil, err
	}

	reservation := &model.Reservation{
		StartDate: in.StartDate,
		EndDate:   in.EndDate,
		RenterID:  p.UserID,
		PoolID:    poolID,
		Approved:  false,
	}

	if err := s.repo.Create(ctx, reservation); err != nil {
		return nil, fmt.Errorf("create reservation: %w", err)
	}
	return reservation, nil
}

// ReplaceReservation overwrites every writable field. Admin or the renter
// only. The renter stays pinned to its stored value.
func (s *reservationService) ReplaceReservation(ctx context.Context, p auth.Principal, id uint, in ReservationInput) (*model.Reservation, error) {
	reservation, err := s.findReservation(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := allowRenterOrAdmin(p, reservation.RenterID); err != nil {
		return nil, err
	}

	poolID, err := s.resolvePool(ctx, in.Pool)
	if err != nil {
		return nil, err
	}

	reservation.StartDate = in.StartDate
	reservation.EndDate = in.EndDate
	reservation.PoolID = poolID
	reservation.Approved = in.Approved

	if err := s.repo.Update(ctx, reservation); err != nil {
		return nil, fmt.Errorf("update reservation: %w", err)
	}
	return reservation, nil
}

// UpdateReservation applies a partial update. Admin or the renter only.
func (s *reservationService) UpdateReservation(ctx context.Context, p auth.Principal, id uint, patch ReservationPatch) (*model.Reservation, error) {
	reservation, err := s.findReservation(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := allowRenterOrAdmin(p, reservation.RenterID); err != nil {
		return nil, err
	}

	if patch.StartDate != nil {
		reservation.StartDate = *patch.StartDate
	}
	if patch.EndDate != nil {
		reservation.EndDate = *patch.EndDate
	}
	if patch.Pool != nil {
		poolID, err := s.resolvePool(ctx, *patch.Pool)
		if err != nil {
			return nil, err
		}
		reservation.PoolID = poolID
	}
	if patch.Approved != nil {
		reservation.Approved = *patch.Approved
	}

	if err := s.repo.Update(ctx, reservation); err != nil {
		return nil, fmt.Errorf("update reservation: %w", err)
	}
	return reservation, nil
}

// DeleteReservation removes a reservation. Admin or the renter only.
func (s *reservationService) DeleteReservation(ctx context.Context, p auth.Principal, id uint) error {
	reservation, err := s.findReservation(ctx, id)
	if err != nil {
		return err
	}
	if err := allowRenterOrAdmin(p, reservation.RenterID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *reservationService) findReservation(ctx context.Context, id uint) (*model.Reservation, error) {
	reservation, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrReservationNotFound
		}
		return nil, err
	}
	return reservation, nil
}

// resolvePool turns a pool resource path into an existing pool id.
func (s *reservationService) resolvePool(ctx context.Context, poolRef string) (uint, error) {
	poolID, err := iri.ParseID(iri.Pools, poolRef)
	if err != nil {
		return 0, errors.NewValidationError("pool", "pool must be a pool resource path")
	}
	if _, err := s.poolRepo.FindByID(ctx, poolID); err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return 0, errors.NewValidationError("pool", "pool does not exist")
		}
		return 0, fmt.Errorf("resolve pool: %w", err)
	}
	return poolID, nil
}

// allowRenterOrAdmin is the access rule for reservation reads and mutations.
func allowRenterOrAdmin(p auth.Principal, renterID uint) error {
	if !p.Authenticated() {
		return errors.ErrUnauthenticated
	}
	if p.IsAdmin() || p.Owns(renterID) {
		return nil
	}
	return errors.ErrForbidden
}
