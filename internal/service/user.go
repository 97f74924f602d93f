package service

import (
	"context"
	"fmt"

	"github.com/avolkova/reviewhub/internal/domain"
	"github.com/avolkova/reviewhub/internal/validate"
)

// UserService handles admin-managed user records and the self-service
// profile.
type UserService struct {
	users domain.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(users domain.UserRepository) *UserService {
	return &UserService{users: users}
}

// UserInput is the payload for admin user creation.
type UserInput struct {
	Username  string `validate:"required,max=150,username"`
	Email     string `validate:"required,max=254,email"`
	FirstName string `validate:"max=150"`
	LastName  string `validate:"max=150"`
	Bio       string
	Role      domain.Role `validate:"omitempty,oneof=user moderator admin"`
}

// UserPatch is a partial update; nil fields are left unchanged.
type UserPatch struct {
	Username  *string      `validate:"omitempty,max=150,username"`
	Email     *string      `validate:"omitempty,max=254,email"`
	FirstName *string      `validate:"omitempty,max=150"`
	LastName  *string      `validate:"omitempty,max=150"`
	Bio       *string      `validate:"omitempty"`
	Role      *domain.Role `validate:"omitempty,oneof=user moderator admin"`
}

// List returns all users.
func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

// Get returns one user by username.
func (s *UserService) Get(ctx context.Context, username string) (*domain.User, error) {
	return s.users.GetByUsername(ctx, username)
}

// Create adds a user with an explicit role (admin operation).
func (s *UserService) Create(ctx context.Context, in UserInput) (*domain.User, error) {
	if err := validate.Struct(in); err != nil {
		return nil, err
	}
	if in.Username == reservedUsername {
		return nil, domain.ErrReservedName
	}
	user := &domain.User{
		Username:  in.Username,
		Email:     in.Email,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Bio:       in.Bio,
		Role:      in.Role,
	}
	if user.Role == "" {
		user.Role = domain.RoleUser
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Update applies a partial update to the named user (admin operation), role
// changes included.
func (s *UserService) Update(ctx context.Context, username string, patch UserPatch) (*domain.User, error) {
	return s.update(ctx, username, patch, false)
}

// UpdateSelf applies a partial update to the requester's own profile. The
// role is force-reset to user no matter what the patch carries, so this path
// can never escalate privileges.
func (s *UserService) UpdateSelf(ctx context.Context, username string, patch UserPatch) (*domain.User, error) {
	return s.update(ctx, username, patch, true)
}

// Delete removes the named user; their reviews and comments go with them.
func (s *UserService) Delete(ctx context.Context, username string) error {
	return s.users.Delete(ctx, username)
}

func (s *UserService) update(ctx context.Context, username string, patch UserPatch, self bool) (*domain.User, error) {
	if err := validate.Struct(patch); err != nil {
		return nil, err
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	if patch.Username != nil {
		if *patch.Username == reservedUsername {
			return nil, domain.ErrReservedName
		}
		user.Username = *patch.Username
	}
	if patch.Email != nil {
		user.Email = *patch.Email
	}
	if patch.FirstName != nil {
		user.FirstName = *patch.FirstName
	}
	if patch.LastName != nil {
		user.LastName = *patch.LastName
	}
	if patch.Bio != nil {
		user.Bio = *patch.Bio
	}
	if self {
		user.Role = domain.RoleUser
	} else if patch.Role != nil {
		user.Role = *patch.Role
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user %s: %w", username, err)
	}
	return user, nil
}
