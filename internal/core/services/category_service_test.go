package services

import (
	"context"
	"testing"

	"smartspend/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	admin = domain.Actor{ID: "admin-1", Role: domain.RoleAdmin}
	alice = domain.Actor{ID: "alice-1", Role: domain.RoleUser}
	bob   = domain.Actor{ID: "bob-1", Role: domain.RoleUser}
)

func newTestCategoryService() (*CategoryService, *fakeCategoryRepo) {
	repo := newFakeCategoryRepo()
	return NewCategoryService(repo), repo
}

func createCategory(t *testing.T, svc *CategoryService, actor domain.Actor, name string) string {
	t.Helper()
	created, err := svc.Create(context.Background(), actor, &CategoryInput{
		Name:            name,
		TransactionType: "EXPENSE",
	})
	require.NoError(t, err)
	return created.ID
}

func TestCategoryCreate_DefaultFlagForcedFromRole(t *testing.T) {
	svc, _ := newTestCategoryService()
	ctx := context.Background()

	// a regular user asking for a shared category still gets a personal one
	created, err := svc.Create(ctx, alice, &CategoryInput{
		Name:            "Coffee",
		TransactionType: "EXPENSE",
		IsDefault:       true,
	})
	require.NoError(t, err)
	assert.False(t, created.IsDefault)
	assert.Equal(t, alice.ID, created.CreatedBy)

	// an admin's categories are always shared, even without asking
	created, err = svc.Create(ctx, admin, &CategoryInput{
		Name:            "Taxes",
		TransactionType: "EXPENSE",
	})
	require.NoError(t, err)
	assert.True(t, created.IsDefault)
}

func TestCategoryUpdate_DefaultIsAdminOnly(t *testing.T) {
	svc, _ := newTestCategoryService()
	ctx := context.Background()

	defaultID := createCategory(t, svc, admin, "Groceries")

	_, err := svc.Update(ctx, alice, defaultID, &CategoryInput{Name: "Food", TransactionType: "EXPENSE"})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	updated, err := svc.Update(ctx, admin, defaultID, &CategoryInput{Name: "Food", TransactionType: "EXPENSE"})
	require.NoError(t, err)
	assert.Equal(t, "Food", updated.Name)
	assert.True(t, updated.IsDefault, "updating keeps the shared flag")
}

func TestCategoryUpdate_PersonalIsCreatorOnly(t *testing.T) {
	svc, _ := newTestCategoryService()
	ctx := context.Background()

	ownID := createCategory(t, svc, alice, "Coffee")

	_, err := svc.Update(ctx, bob, ownID, &CategoryInput{Name: "Tea", TransactionType: "EXPENSE"})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	// even an admin cannot touch another user's personal category
	_, err = svc.Update(ctx, admin, ownID, &CategoryInput{Name: "Tea", TransactionType: "EXPENSE"})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	updated, err := svc.Update(ctx, alice, ownID, &CategoryInput{Name: "Tea", TransactionType: "EXPENSE"})
	require.NoError(t, err)
	assert.Equal(t, "Tea", updated.Name)
}

func TestCategoryDelete_OwnershipRules(t *testing.T) {
	svc, _ := newTestCategoryService()
	ctx := context.Background()

	defaultID := createCategory(t, svc, admin, "Groceries")
	ownID := createCategory(t, svc, alice, "Coffee")

	assert.ErrorIs(t, svc.Delete(ctx, alice, defaultID), domain.ErrForbidden)
	assert.ErrorIs(t, svc.Delete(ctx, bob, ownID), domain.ErrForbidden)

	assert.NoError(t, svc.Delete(ctx, alice, ownID))
	assert.NoError(t, svc.Delete(ctx, admin, defaultID))

	_, err := svc.GetByID(ctx, ownID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCategoryList_Visibility(t *testing.T) {
	svc, _ := newTestCategoryService()
	ctx := context.Background()

	createCategory(t, svc, admin, "Groceries")
	createCategory(t, svc, alice, "Coffee")
	createCategory(t, svc, bob, "Games")

	out, err := svc.List(ctx, alice, 0, 50)
	require.NoError(t, err)
	require.Equal(t, int64(2), out.Total)

	names := make(map[string]bool)
	for _, c := range out.Categories {
		names[c.Name] = true
	}
	assert.True(t, names["Groceries"], "shared default is visible")
	assert.True(t, names["Coffee"], "own category is visible")
	assert.False(t, names["Games"], "another user's personal category is hidden")

	// admins see everything
	out, err = svc.List(ctx, admin, 0, 50)
	require.NoError(t, err)
	assert.Equal(t, int64(3), out.Total)
}

func TestCategoryGetByID_Unknown(t *testing.T) {
	svc, _ := newTestCategoryService()

	_, err := svc.GetByID(context.Background(), "no-such-id")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
