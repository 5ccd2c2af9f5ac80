package services

import (
	"context"
	"errors"
	"log"

	"smartspend/internal/adapters/persistence/models"
	"smartspend/internal/adapters/persistence/repositories"
	"smartspend/internal/config"
	"smartspend/internal/core/domain"
	"smartspend/internal/pkg/jwt"
	"smartspend/internal/pkg/password"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Auth errors
var (
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrUserAlreadyExists   = errors.New("user already exists")
	ErrInvalidRefreshToken = errors.New("invalid or expired refresh token")
)

// AuthService orchestrates the session lifecycle: credential verification,
// access-token issuance and single-slot refresh-token rotation.
type AuthService struct {
	userRepo repositories.UserRepository
	hasher   password.Hasher
	cfg      *config.Config
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repositories.UserRepository, hasher password.Hasher, cfg *config.Config) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		hasher:   hasher,
		cfg:      cfg,
	}
}

// RegisterInput represents registration input
type RegisterInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenPair represents access and refresh tokens
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// AuthResponse represents authentication response
type AuthResponse struct {
	User         *models.UserResponse `json:"user"`
	AccessToken  string               `json:"access_token"`
	RefreshToken string               `json:"refresh_token"`
}

// Register creates a new account. It does not log the account in; the
// client follows up with Login. An empty username falls back to the email,
// matching the long-standing registration behavior.
func (s *AuthService) Register(ctx context.Context, input *RegisterInput) (*models.UserResponse, error) {
	username := input.Username
	if username == "" {
		username = input.Email
	}

	exists, err := s.userRepo.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, domain.Transient(err)
	}
	if exists {
		return nil, ErrUserAlreadyExists
	}

	exists, err = s.userRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, domain.Transient(err)
	}
	if exists {
		return nil, ErrUserAlreadyExists
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:           uuid.New().String(),
		Username:     username,
		Email:        input.Email,
		PasswordHash: hash,
		Role:         domain.RoleUser,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, domain.Transient(err)
	}

	log.Printf("✅ User registered: %s", user.Username)
	return user.ToResponse(), nil
}

// Login verifies the credentials and opens a session: a signed access token
// plus a fresh refresh token stored in the account's single slot. A missing
// account and a wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, username, plainPassword string) (*AuthResponse, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, domain.Transient(err)
	}

	if !s.hasher.Verify(plainPassword, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	tokens, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	log.Printf("✅ User logged in: %s", user.Username)

	return &AuthResponse{
		User:         user.ToResponse(),
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	}, nil
}

// Refresh rotates the refresh token and issues a new access token. The
// presented token is single-use: the slot swap happens before anything is
// returned, so a concurrent refresh with the same token loses and gets
// ErrInvalidRefreshToken. The role is re-read from the account, not cached
// from the original login.
func (s *AuthService) Refresh(ctx context.Context, presented string) (*TokenPair, error) {
	next, err := jwt.NewRefreshToken()
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.RotateRefreshToken(ctx, presented, next, jwt.RefreshTokenExpiry(s.cfg.JWT.RefreshTokenDays))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidRefreshToken
		}
		return nil, domain.Transient(err)
	}

	accessToken, err := s.generateAccessToken(user)
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Token refreshed for user: %s", user.Username)

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: next,
	}, nil
}

// Logout empties the account's refresh-token slot. The caller is already
// authenticated at the boundary; no credential check happens here. Logging
// out twice is harmless.
func (s *AuthService) Logout(ctx context.Context, userID string) error {
	if err := s.userRepo.ClearRefreshToken(ctx, userID); err != nil {
		return domain.Transient(err)
	}

	log.Printf("✅ User logged out: %s", userID)
	return nil
}

// ValidateAccessToken validates an access token
func (s *AuthService) ValidateAccessToken(accessToken string) (*jwt.Claims, error) {
	return jwt.ValidateAccessToken(accessToken, s.cfg.JWT.Secret, s.cfg.JWT.Issuer, s.cfg.JWT.Audience)
}

// GetUserByID gets a user by ID
func (s *AuthService) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, domain.Transient(err)
	}
	return user, nil
}

// issueTokens generates the access token and stores a fresh refresh token
// in the account slot, replacing whatever was there.
func (s *AuthService) issueTokens(ctx context.Context, user *models.User) (*TokenPair, error) {
	accessToken, err := s.generateAccessToken(user)
	if err != nil {
		return nil, err
	}

	refreshToken, err := jwt.NewRefreshToken()
	if err != nil {
		return nil, err
	}

	expiry := jwt.RefreshTokenExpiry(s.cfg.JWT.RefreshTokenDays)
	if err := s.userRepo.StoreRefreshToken(ctx, user.ID, refreshToken, expiry); err != nil {
		return nil, domain.Transient(err)
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (s *AuthService) generateAccessToken(user *models.User) (string, error) {
	return jwt.GenerateAccessToken(
		user.ID,
		user.Username,
		roleOrDefault(user),
		s.cfg.JWT.Secret,
		s.cfg.JWT.Issuer,
		s.cfg.JWT.Audience,
		s.cfg.JWT.AccessTokenMins,
	)
}

// roleOrDefault falls back to the USER role for accounts that carry none.
// Explicit fallback, not an error.
func roleOrDefault(user *models.User) string {
	if user.Role == "" {
		return domain.RoleUser
	}
	return user.Role
}
