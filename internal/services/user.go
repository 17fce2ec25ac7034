package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/msgsystec/backoffice/internal/auth"
	"github.com/msgsystec/backoffice/internal/store"
	"github.com/msgsystec/backoffice/types"
)

// ErrNoFields is returned when an update request carries nothing to change.
var ErrNoFields = errors.New("no fields to update")

// UserRepository defines persistence operations for users.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (types.User, error)
	GetByEmail(ctx context.Context, email string) (types.User, error)
	List(ctx context.Context) ([]types.User, error)
	Create(ctx context.Context, user types.User) (types.User, error)
	Update(ctx context.Context, user types.User) (types.User, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	Delete(ctx context.Context, id string) error
}

// CreateUserInput carries the fields an administrator supplies when
// creating an account. Role defaults to the standard role.
type CreateUserInput struct {
	Email    string
	Password string
	Name     string
	Role     string
}

// UpdateUserInput carries a partial profile update. Nil means unchanged.
type UpdateUserInput struct {
	Name *string
	Role *string
}

// UserService encapsulates user use-cases.
type UserService struct {
	repo   UserRepository
	policy auth.PasswordPolicy
}

func NewUserService(repo UserRepository) *UserService {
	return &UserService{
		repo:   repo,
		policy: auth.DefaultPasswordPolicy(),
	}
}

func (s *UserService) GetByID(ctx context.Context, id string) (types.User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *UserService) GetByEmail(ctx context.Context, email string) (types.User, error) {
	return s.repo.GetByEmail(ctx, email)
}

func (s *UserService) List(ctx context.Context) ([]types.User, error) {
	return s.repo.List(ctx)
}

// Create validates the password policy, hashes the password, and inserts
// the user. A taken email surfaces as store.ErrConflict; the unique
// index backs the pre-check so concurrent creates cannot slip through.
func (s *UserService) Create(ctx context.Context, input CreateUserInput) (types.User, error) {
	if err := s.policy.Validate(input.Password); err != nil {
		return types.User{}, err
	}

	role := input.Role
	if role == "" {
		role = types.RoleUser
	}

	if _, err := s.repo.GetByEmail(ctx, input.Email); err == nil {
		return types.User{}, store.ErrConflict
	} else if !errors.Is(err, store.ErrNotFound) {
		return types.User{}, err
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return types.User{}, err
	}

	return s.repo.Create(ctx, types.User{
		ID:           uuid.NewString(),
		Email:        input.Email,
		Name:         input.Name,
		Role:         role,
		PasswordHash: hash,
	})
}

// Update applies a partial profile update and returns the stored user.
func (s *UserService) Update(ctx context.Context, id string, input UpdateUserInput) (types.User, error) {
	if input.Name == nil && input.Role == nil {
		return types.User{}, ErrNoFields
	}

	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return types.User{}, err
	}

	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Role != nil {
		user.Role = *input.Role
	}

	return s.repo.Update(ctx, user)
}

// ChangePassword validates and rehashes the new password.
func (s *UserService) ChangePassword(ctx context.Context, id, newPassword string) error {
	if err := s.policy.Validate(newPassword); err != nil {
		return err
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}

	return s.repo.UpdatePassword(ctx, id, hash)
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
