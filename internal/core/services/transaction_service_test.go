package services

import (
	"context"
	"testing"
	"time"

	"smartspend/internal/adapters/persistence/models"
	"smartspend/internal/core/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type txFixture struct {
	svc          *TransactionService
	categoryRepo *fakeCategoryRepo
	defaultCatID string
	aliceCatID   string
	bobCatID     string
}

func newTxFixture(t *testing.T) *txFixture {
	t.Helper()
	categoryRepo := newFakeCategoryRepo()
	f := &txFixture{
		svc:          NewTransactionService(newFakeTransactionRepo(), categoryRepo),
		categoryRepo: categoryRepo,
		defaultCatID: uuid.New().String(),
		aliceCatID:   uuid.New().String(),
		bobCatID:     uuid.New().String(),
	}

	ctx := context.Background()
	require.NoError(t, categoryRepo.Create(ctx, &models.Category{
		ID: f.defaultCatID, Name: "Groceries", TransactionType: models.TypeExpense,
		IsDefault: true, CreatedBy: admin.ID,
	}))
	require.NoError(t, categoryRepo.Create(ctx, &models.Category{
		ID: f.aliceCatID, Name: "Coffee", TransactionType: models.TypeExpense,
		CreatedBy: alice.ID,
	}))
	require.NoError(t, categoryRepo.Create(ctx, &models.Category{
		ID: f.bobCatID, Name: "Games", TransactionType: models.TypeExpense,
		CreatedBy: bob.ID,
	}))
	return f
}

func (f *txFixture) input(categoryID string, amount float64) *TransactionInput {
	return &TransactionInput{
		CategoryID:      categoryID,
		TransactionType: models.TypeExpense,
		Amount:          amount,
		Description:     "weekly shop",
		TransactionDate: time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC),
	}
}

func TestTransactionCreate_CategoryVisibility(t *testing.T) {
	f := newTxFixture(t)
	ctx := context.Background()

	// shared default and own category are fine
	created, err := f.svc.Create(ctx, alice, f.input(f.defaultCatID, 42.50))
	require.NoError(t, err)
	assert.Equal(t, alice.ID, created.UserID)
	assert.Equal(t, 42.50, created.Amount)

	_, err = f.svc.Create(ctx, alice, f.input(f.aliceCatID, 3.20))
	assert.NoError(t, err)

	// another user's personal category is out of reach
	_, err = f.svc.Create(ctx, alice, f.input(f.bobCatID, 10))
	assert.ErrorIs(t, err, ErrCategoryNotVisible)

	// unknown category looks the same as an invisible one
	_, err = f.svc.Create(ctx, alice, f.input("no-such-category", 10))
	assert.ErrorIs(t, err, ErrCategoryNotVisible)
}

func TestTransactionGetByID_OwnerOrAdmin(t *testing.T) {
	f := newTxFixture(t)
	ctx := context.Background()

	created, err := f.svc.Create(ctx, alice, f.input(f.defaultCatID, 42.50))
	require.NoError(t, err)

	_, err = f.svc.GetByID(ctx, bob, created.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.svc.GetByID(ctx, alice, created.ID)
	assert.NoError(t, err)

	_, err = f.svc.GetByID(ctx, admin, created.ID)
	assert.NoError(t, err)
}

func TestTransactionUpdate_OwnerOnly(t *testing.T) {
	f := newTxFixture(t)
	ctx := context.Background()

	created, err := f.svc.Create(ctx, alice, f.input(f.defaultCatID, 42.50))
	require.NoError(t, err)

	_, err = f.svc.Update(ctx, bob, created.ID, f.input(f.defaultCatID, 1))
	assert.ErrorIs(t, err, domain.ErrForbidden)

	// admins read everything but do not mutate other users' records
	_, err = f.svc.Update(ctx, admin, created.ID, f.input(f.defaultCatID, 1))
	assert.ErrorIs(t, err, domain.ErrForbidden)

	updated, err := f.svc.Update(ctx, alice, created.ID, f.input(f.aliceCatID, 99.99))
	require.NoError(t, err)
	assert.Equal(t, 99.99, updated.Amount)
	assert.Equal(t, f.aliceCatID, updated.CategoryID)
}

func TestTransactionUpdate_NewCategoryMustBeVisible(t *testing.T) {
	f := newTxFixture(t)
	ctx := context.Background()

	created, err := f.svc.Create(ctx, alice, f.input(f.defaultCatID, 42.50))
	require.NoError(t, err)

	_, err = f.svc.Update(ctx, alice, created.ID, f.input(f.bobCatID, 42.50))
	assert.ErrorIs(t, err, ErrCategoryNotVisible)
}

func TestTransactionDelete_OwnerOnly(t *testing.T) {
	f := newTxFixture(t)
	ctx := context.Background()

	created, err := f.svc.Create(ctx, alice, f.input(f.defaultCatID, 42.50))
	require.NoError(t, err)

	assert.ErrorIs(t, f.svc.Delete(ctx, bob, created.ID), domain.ErrForbidden)
	assert.NoError(t, f.svc.Delete(ctx, alice, created.ID))

	_, err = f.svc.GetByID(ctx, alice, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTransactionList_Scoping(t *testing.T) {
	f := newTxFixture(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, alice, f.input(f.defaultCatID, 10))
	require.NoError(t, err)
	_, err = f.svc.Create(ctx, alice, f.input(f.aliceCatID, 20))
	require.NoError(t, err)
	_, err = f.svc.Create(ctx, bob, f.input(f.bobCatID, 30))
	require.NoError(t, err)

	out, err := f.svc.List(ctx, alice, 0, 50)
	require.NoError(t, err)
	assert.Equal(t, int64(2), out.Total)
	for _, tx := range out.Transactions {
		assert.Equal(t, alice.ID, tx.UserID)
	}

	out, err = f.svc.List(ctx, admin, 0, 50)
	require.NoError(t, err)
	assert.Equal(t, int64(3), out.Total)
}
