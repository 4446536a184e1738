package service

import (
	"context"
	stderrors "errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/boumebar/swim/internal/auth"
	"github.com/boumebar/swim/internal/errors"
	"github.com/boumebar/swim/internal/model"
	"github.com/boumebar/swim/internal/repository"
)

// UserInput carries the writable user fields for create and full replace.
type UserInput struct {
	Email    string
	Username string
	Password string
	Roles    []string
}

// UserPatch carries optional user fields for partial update.
type UserPatch struct {
	Email    *string
	Username *string
	Password *string
	Roles    *[]string
}

// UserService handles the admin-only user resource plus the "whoami" read.
type UserService interface {
	ListUsers(ctx context.Context, p auth.Principal) ([]model.User, error)
	GetUser(ctx context.Context, p auth.Principal, id uint) (*model.User, error)
	CreateUser(ctx context.Context, p auth.Principal, in UserInput) (*model.User, error)
	ReplaceUser(ctx context.Context, p auth.Principal, id uint, in UserInput) (*model.User, error)
	UpdateUser(ctx context.Context, p auth.Principal, id uint, patch UserPatch) (*model.User, error)
	DeleteUser(ctx context.Context, p auth.Principal, id uint) error
	// Me returns the caller's own record, or nil for an anonymous caller.
	Me(ctx context.Context, p auth.Principal) (*model.User, error)
}

type userService struct {
	repo repository.UserRepository
}

// NewUserService creates a new user service.
func NewUserService(repo repository.UserRepository) UserService {
	return &userService{repo: repo}
}

// ListUsers lists all users. Admin only.
func (s *userService) ListUsers(ctx context.Context, p auth.Principal) ([]model.User, error) {
	if err := requireAdmin(p); err != nil {
		return nil, err
	}
	return s.repo.List(ctx)
}

// GetUser reads one user. Admin only.
func (s *userService) GetUser(ctx context.Context, p auth.Principal, id uint) (*model.User, error) {
	if err := requireAdmin(p); err != nil {
		return nil, err
	}
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// CreateUser creates a user with explicit roles. Admin only; unlike
// self-registration, elevated roles may be assigned here.
func (s *userService) CreateUser(ctx context.Context, p auth.Principal, in UserInput) (*model.User, error) {
	if err := requireAdmin(p); err != nil {
		return nil, err
	}

	if err := s.checkEmailFree(ctx, in.Email, 0); err != nil {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	roles := in.Roles
	if len(roles) == 0 {
		roles = []string{model.RoleUser}
	}

	user := &model.User{
		Email:        in.Email,
		Username:     in.Username,
		PasswordHash: string(hashedPassword),
		Roles:        model.RoleList(roles),
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// ReplaceUser overwrites every writable field. Admin only. CreatedAt is
// kept from the stored record.
func (s *userService) ReplaceUser(ctx context.Context, p auth.Principal, id uint, in UserInput) (*model.User, error) {
	user, err := s.GetUser(ctx, p, id)
	if err != nil {
		return nil, err
	}

	if err := s.checkEmailFree(ctx, in.Email, user.ID); err != nil {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user.Email = in.Email
	user.Username = in.Username
	user.PasswordHash = string(hashedPassword)
	user.Roles = model.RoleList(in.Roles)

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}

// UpdateUser applies a partial update. Admin only.
func (s *userService) UpdateUser(ctx context.Context, p auth.Principal, id uint, patch UserPatch) (*model.User, error) {
	user, err := s.GetUser(ctx, p, id)
	if err != nil {
		return nil, err
	}

	if patch.Email != nil {
		if err := s.checkEmailFree(ctx, *patch.Email, user.ID); err != nil {
			return nil, err
		}
		user.Email = *patch.Email
	}
	if patch.Username != nil {
		user.Username = *patch.Username
	}
	if patch.Password != nil {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(*patch.Password), bcryptCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = string(hashedPassword)
	}
	if patch.Roles != nil {
		user.Roles = model.RoleList(*patch.Roles)
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}

// DeleteUser removes a user together with their pools and reservations.
// Admin only.
func (s *userService) DeleteUser(ctx context.Context, p auth.Principal, id uint) error {
	if _, err := s.GetUser(ctx, p, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// Me returns the caller's record. An anonymous caller yields nil rather
// than an error.
func (s *userService) Me(ctx context.Context, p auth.Principal) (*model.User, error) {
	if !p.Authenticated() {
		return nil, nil
	}
	user, err := s.repo.FindByID(ctx, p.UserID)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

// checkEmailFree rejects an email already held by a different user.
func (s *userService) checkEmailFree(ctx context.Context, email string, selfID uint) error {
	existing, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return fmt.Errorf("check email uniqueness: %w", err)
	}
	if existing.ID != selfID {
		return errors.ErrEmailTaken
	}
	return nil
}

// requireAdmin is the access rule for the user resource.
func requireAdmin(p auth.Principal) error {
	if !p.Authenticated() {
		return errors.ErrUnauthenticated
	}
	if !p.IsAdmin() {
		return errors.ErrForbidden
	}
	return nil
}
