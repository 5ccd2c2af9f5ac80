package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"smartspend/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// In-memory repository fakes. The user fake reproduces the storage-level
// compare-and-swap the real rotation relies on.

var errStorageDown = errors.New("storage down")

type fakeUserRepo struct {
	mu      sync.Mutex
	users   map[string]*models.User
	failing bool
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*models.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failing {
		return errStorageDown
	}
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failing {
		return nil, errStorageDown
	}
	user, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *user
	return &cp, nil
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failing {
		return nil, errStorageDown
	}
	for _, user := range r.users {
		if user.Username == username {
			cp := *user
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			cp := *user
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) Update(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failing {
		return errStorageDown
	}
	if _, ok := r.users[user.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) ExistsByUsername(_ context.Context, username string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failing {
		return false, errStorageDown
	}
	for _, user := range r.users {
		if user.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failing {
		return false, errStorageDown
	}
	for _, user := range r.users {
		if user.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUserRepo) StoreRefreshToken(_ context.Context, userID, token string, expiresAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failing {
		return errStorageDown
	}
	user, ok := r.users[userID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	user.RefreshToken = &token
	user.RefreshTokenExpiry = &expiresAt
	return nil
}

func (r *fakeUserRepo) RotateRefreshToken(_ context.Context, presented, next string, expiresAt time.Time) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failing {
		return nil, errStorageDown
	}
	for _, user := range r.users {
		if user.RefreshToken != nil && *user.RefreshToken == presented &&
			user.RefreshTokenExpiry != nil && time.Now().Before(*user.RefreshTokenExpiry) {
			user.RefreshToken = &next
			user.RefreshTokenExpiry = &expiresAt
			cp := *user
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) ClearRefreshToken(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failing {
		return errStorageDown
	}
	user, ok := r.users[userID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	user.RefreshToken = nil
	user.RefreshTokenExpiry = nil
	return nil
}

func (r *fakeUserRepo) ClearExpiredRefreshTokens(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var cleared int64
	for _, user := range r.users {
		if user.RefreshToken != nil && user.RefreshTokenExpiry != nil && time.Now().After(*user.RefreshTokenExpiry) {
			user.RefreshToken = nil
			user.RefreshTokenExpiry = nil
			cleared++
		}
	}
	return cleared, nil
}

// setRefreshSlot force-writes a user's slot, bypassing the service. Used to
// simulate tokens issued in the past.
func (r *fakeUserRepo) setRefreshSlot(userID, token string, expiresAt time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user := r.users[userID]
	user.RefreshToken = &token
	user.RefreshTokenExpiry = &expiresAt
}

func (r *fakeUserRepo) refreshSlot(userID string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user := r.users[userID]
	if user == nil || user.RefreshToken == nil {
		return "", false
	}
	return *user.RefreshToken, true
}

type fakeCategoryRepo struct {
	mu         sync.Mutex
	categories map[string]*models.Category
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{categories: make(map[string]*models.Category)}
}

func (r *fakeCategoryRepo) Create(_ context.Context, category *models.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *category
	r.categories[category.ID] = &cp
	return nil
}

func (r *fakeCategoryRepo) GetByID(_ context.Context, id string) (*models.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	category, ok := r.categories[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *category
	return &cp, nil
}

func (r *fakeCategoryRepo) Update(_ context.Context, category *models.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.categories[category.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *category
	r.categories[category.ID] = &cp
	return nil
}

func (r *fakeCategoryRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.categories, id)
	return nil
}

func (r *fakeCategoryRepo) ListVisible(_ context.Context, userID string, offset, limit int) ([]*models.Category, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var visible []*models.Category
	for _, category := range r.categories {
		if category.IsDefault || category.CreatedBy == userID {
			cp := *category
			visible = append(visible, &cp)
		}
	}
	return paginate(visible, offset, limit), int64(len(visible)), nil
}

func (r *fakeCategoryRepo) ListAll(_ context.Context, offset, limit int) ([]*models.Category, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var all []*models.Category
	for _, category := range r.categories {
		cp := *category
		all = append(all, &cp)
	}
	return paginate(all, offset, limit), int64(len(all)), nil
}

type fakeTransactionRepo struct {
	mu  sync.Mutex
	txs map[string]*models.Transaction
}

func newFakeTransactionRepo() *fakeTransactionRepo {
	return &fakeTransactionRepo{txs: make(map[string]*models.Transaction)}
}

func (r *fakeTransactionRepo) Create(_ context.Context, tx *models.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *tx
	r.txs[tx.ID] = &cp
	return nil
}

func (r *fakeTransactionRepo) GetByID(_ context.Context, id string) (*models.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	tx, ok := r.txs[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *tx
	return &cp, nil
}

func (r *fakeTransactionRepo) Update(_ context.Context, tx *models.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.txs[tx.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *tx
	r.txs[tx.ID] = &cp
	return nil
}

func (r *fakeTransactionRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.txs, id)
	return nil
}

func (r *fakeTransactionRepo) ListByUser(_ context.Context, userID string, offset, limit int) ([]*models.Transaction, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var owned []*models.Transaction
	for _, tx := range r.txs {
		if tx.UserID == userID {
			cp := *tx
			owned = append(owned, &cp)
		}
	}
	return paginate(owned, offset, limit), int64(len(owned)), nil
}

func (r *fakeTransactionRepo) ListAll(_ context.Context, offset, limit int) ([]*models.Transaction, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var all []*models.Transaction
	for _, tx := range r.txs {
		cp := *tx
		all = append(all, &cp)
	}
	return paginate(all, offset, limit), int64(len(all)), nil
}

func paginate[T any](items []T, offset, limit int) []T {
	if offset >= len(items) {
		return nil
	}
	end := offset + limit
	if limit <= 0 || end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}
