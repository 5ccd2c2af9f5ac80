package repositories

import (
	"context"
	"time"

	"smartspend/internal/adapters/persistence/models"
)

// UserRepository defines user repository interface. The refresh-token slot
// operations live here because the slot is part of the account row.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// StoreRefreshToken writes the account's single refresh-token slot.
	StoreRefreshToken(ctx context.Context, userID, token string, expiresAt time.Time) error
	// RotateRefreshToken atomically replaces the slot whose current value is
	// presented and not expired, then returns the owning account. Returns
	// gorm.ErrRecordNotFound when no live slot matches, including when a
	// concurrent rotation won the race.
	RotateRefreshToken(ctx context.Context, presented, next string, expiresAt time.Time) (*models.User, error)
	// ClearRefreshToken empties the slot. Idempotent.
	ClearRefreshToken(ctx context.Context, userID string) error
	// ClearExpiredRefreshTokens empties every slot past its expiry and
	// returns the number of rows touched.
	ClearExpiredRefreshTokens(ctx context.Context) (int64, error)
}

// CategoryRepository defines category repository interface
type CategoryRepository interface {
	Create(ctx context.Context, category *models.Category) error
	GetByID(ctx context.Context, id string) (*models.Category, error)
	Update(ctx context.Context, category *models.Category) error
	Delete(ctx context.Context, id string) error
	// ListVisible returns categories the user may see: shared defaults plus
	// the user's own, paginated.
	ListVisible(ctx context.Context, userID string, offset, limit int) ([]*models.Category, int64, error)
	ListAll(ctx context.Context, offset, limit int) ([]*models.Category, int64, error)
}

// TransactionRepository defines transaction repository interface
type TransactionRepository interface {
	Create(ctx context.Context, tx *models.Transaction) error
	GetByID(ctx context.Context, id string) (*models.Transaction, error)
	Update(ctx context.Context, tx *models.Transaction) error
	Delete(ctx context.Context, id string) error
	ListByUser(ctx context.Context, userID string, offset, limit int) ([]*models.Transaction, int64, error)
	ListAll(ctx context.Context, offset, limit int) ([]*models.Transaction, int64, error)
}
