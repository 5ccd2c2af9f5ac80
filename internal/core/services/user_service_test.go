package services

import (
	"context"
	"testing"

	"smartspend/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestUserService(t *testing.T) (*UserService, *AuthService, string) {
	t.Helper()
	repo := newFakeUserRepo()
	hasher := testHasher()
	authSvc := NewAuthService(repo, hasher, testConfig())
	userID := registerUser(t, authSvc, "alice", "alice@x.com", "Secret1!")
	return NewUserService(repo, hasher), authSvc, userID
}

func TestGetProfile(t *testing.T) {
	svc, _, userID := newTestUserService(t)

	profile, err := svc.GetProfile(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, "alice", profile.Username)
	assert.Equal(t, "alice@x.com", profile.Email)

	_, err = svc.GetProfile(context.Background(), "no-such-user")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateProfile_Email(t *testing.T) {
	svc, authSvc, userID := newTestUserService(t)
	ctx := context.Background()

	registerUser(t, authSvc, "bob", "bob@x.com", "Secret1!")

	taken := "bob@x.com"
	_, err := svc.UpdateProfile(ctx, userID, &UpdateProfileInput{Email: &taken})
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)

	fresh := "alice@new.com"
	updated, err := svc.UpdateProfile(ctx, userID, &UpdateProfileInput{Email: &fresh})
	require.NoError(t, err)
	assert.Equal(t, fresh, updated.Email)

	// re-submitting the current email is a no-op, not a conflict
	updated, err = svc.UpdateProfile(ctx, userID, &UpdateProfileInput{Email: &fresh})
	require.NoError(t, err)
	assert.Equal(t, fresh, updated.Email)
}

func TestChangePassword(t *testing.T) {
	svc, authSvc, userID := newTestUserService(t)
	ctx := context.Background()

	err := svc.ChangePassword(ctx, userID, &ChangePasswordInput{
		OldPassword: "wrong",
		NewPassword: "NewSecret1!",
	})
	assert.ErrorIs(t, err, ErrOldPasswordWrong)

	err = svc.ChangePassword(ctx, userID, &ChangePasswordInput{
		OldPassword: "Secret1!",
		NewPassword: "NewSecret1!",
	})
	require.NoError(t, err)

	_, err = authSvc.Login(ctx, "alice", "Secret1!")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = authSvc.Login(ctx, "alice", "NewSecret1!")
	assert.NoError(t, err)
}
