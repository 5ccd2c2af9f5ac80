package repositories

import (
	"context"
	"time"

	"smartspend/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// userRepository implements UserRepository interface
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Create creates a new user
func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// GetByID gets a user by ID
func (r *userRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByUsername gets a user by username
func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByEmail gets a user by email
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Update updates a user
func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

// ExistsByUsername checks if username exists
func (r *userRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Where("username = ?", username).Count(&count).Error
	return count > 0, err
}

// ExistsByEmail checks if email exists
func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

// StoreRefreshToken writes the refresh-token slot of an account.
func (r *userRepository) StoreRefreshToken(ctx context.Context, userID, token string, expiresAt time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"refresh_token":        token,
			"refresh_token_expiry": expiresAt,
		}).Error
}

// RotateRefreshToken replaces the slot holding the presented token with the
// next one. The conditional update is the compare-and-swap: two concurrent
// rotations with the same stale token cannot both match, the loser sees zero
// rows affected.
func (r *userRepository) RotateRefreshToken(ctx context.Context, presented, next string, expiresAt time.Time) (*models.User, error) {
	res := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("refresh_token = ?", presented).
		Where("refresh_token_expiry > ?", time.Now()).
		Updates(map[string]interface{}{
			"refresh_token":        next,
			"refresh_token_expiry": expiresAt,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	var user models.User
	if err := r.db.WithContext(ctx).Where("refresh_token = ?", next).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// ClearRefreshToken empties the slot. Clearing an already empty slot is a no-op.
func (r *userRepository) ClearRefreshToken(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"refresh_token":        nil,
			"refresh_token_expiry": nil,
		}).Error
}

// ClearExpiredRefreshTokens empties every slot past its expiry (cleanup job).
func (r *userRepository) ClearExpiredRefreshTokens(ctx context.Context) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("refresh_token IS NOT NULL").
		Where("refresh_token_expiry < ?", time.Now()).
		Updates(map[string]interface{}{
			"refresh_token":        nil,
			"refresh_token_expiry": nil,
		})
	return res.RowsAffected, res.Error
}
