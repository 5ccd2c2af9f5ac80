package services

import (
	"context"
	"errors"

	"smartspend/internal/adapters/persistence/models"
	"smartspend/internal/adapters/persistence/repositories"
	"smartspend/internal/core/domain"
	"smartspend/internal/pkg/password"

	"gorm.io/gorm"
)

// User service errors
var (
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrOldPasswordWrong   = errors.New("old password is incorrect")
)

// UserService handles profile management
type UserService struct {
	userRepo repositories.UserRepository
	hasher   password.Hasher
}

// NewUserService creates a new user service
func NewUserService(userRepo repositories.UserRepository, hasher password.Hasher) *UserService {
	return &UserService{userRepo: userRepo, hasher: hasher}
}

// UpdateProfileInput represents update profile input
type UpdateProfileInput struct {
	Email *string `json:"email"`
}

// ChangePasswordInput represents change password input
type ChangePasswordInput struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// GetProfile returns the actor's own profile.
func (s *UserService) GetProfile(ctx context.Context, userID string) (*models.UserResponse, error) {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user.ToResponse(), nil
}

// UpdateProfile updates the actor's own profile fields.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, input *UpdateProfileInput) (*models.UserResponse, error) {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.Email != nil && *input.Email != user.Email {
		exists, err := s.userRepo.ExistsByEmail(ctx, *input.Email)
		if err != nil {
			return nil, domain.Transient(err)
		}
		if exists {
			return nil, ErrEmailAlreadyExists
		}
		user.Email = *input.Email
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, domain.Transient(err)
	}

	return user.ToResponse(), nil
}

// ChangePassword replaces the actor's credential after verifying the old one.
func (s *UserService) ChangePassword(ctx context.Context, userID string, input *ChangePasswordInput) error {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return err
	}

	if !s.hasher.Verify(input.OldPassword, user.PasswordHash) {
		return ErrOldPasswordWrong
	}

	hash, err := s.hasher.Hash(input.NewPassword)
	if err != nil {
		return err
	}

	user.PasswordHash = hash
	if err := s.userRepo.Update(ctx, user); err != nil {
		return domain.Transient(err)
	}

	return nil
}

func (s *UserService) getUser(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, domain.Transient(err)
	}
	return user, nil
}
