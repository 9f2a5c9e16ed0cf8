package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"vehicle-rental/internal/models"
	"vehicle-rental/internal/repositories/memory"
	"vehicle-rental/internal/utils"
)

func newAuthService(t *testing.T) (AuthService, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	svc := NewAuthService(store.Users(), AuthOptions{
		Tokens:     utils.TokenSettings{Secret: "test-secret", AccessTTL: time.Hour},
		BcryptCost: bcrypt.MinCost,
	}, nopLogger())
	return svc, store
}

func TestRegisterAndLogin(t *testing.T) {
	svc, store := newAuthService(t)
	ctx := context.Background()

	resp, err := svc.Register(ctx, &RegisterRequest{
		Username: " alice ",
		Password: "secret123",
		Role:     models.UserRoleProvider,
		City:     "Pune",
	})
	require.NoError(t, err)
	assert.Equal(t, "alice", resp.User.Username)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)

	stored, err := store.Users().GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", stored.Password)

	login, err := svc.Login(ctx, "alice", "secret123")
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, login.User.ID)

	principal, err := svc.ValidateToken(ctx, login.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, principal.UserID)
	assert.True(t, principal.IsProvider())

	_, err = svc.Login(ctx, "alice", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Login(ctx, "nobody", "secret123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegisterRejections(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, &RegisterRequest{Username: "bob", Password: "secret123", Role: models.UserRoleCustomer})
	require.NoError(t, err)

	_, err = svc.Register(ctx, &RegisterRequest{Username: "bob", Password: "secret456", Role: models.UserRoleCustomer})
	assert.ErrorIs(t, err, ErrUsernameTaken)

	_, err = svc.Register(ctx, &RegisterRequest{Username: "carol", Password: "secret123", Role: "admin"})
	assert.ErrorIs(t, err, ErrInvalidRole)

	_, err = svc.Register(ctx, &RegisterRequest{Username: "dave", Password: "123", Role: models.UserRoleCustomer})
	assert.ErrorIs(t, err, ErrWeakPassword)
}

func TestRefreshAndValidateTokens(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	resp, err := svc.Register(ctx, &RegisterRequest{Username: "erin", Password: "secret123", Role: models.UserRoleCustomer})
	require.NoError(t, err)

	refreshed, err := svc.RefreshToken(ctx, resp.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, refreshed.User.ID)

	_, err = svc.RefreshToken(ctx, resp.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.ValidateToken(ctx, resp.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.ValidateToken(ctx, "not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestProfileAndPassword(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	resp, err := svc.Register(ctx, &RegisterRequest{Username: "frank", Password: "secret123", Role: models.UserRoleCustomer})
	require.NoError(t, err)
	id := resp.User.ID

	user, err := svc.UpdateProfile(ctx, id, "  Goa ")
	require.NoError(t, err)
	assert.Equal(t, "Goa", user.City)

	assert.ErrorIs(t, svc.ChangePassword(ctx, id, "wrong", "newsecret"), ErrInvalidCredentials)
	assert.ErrorIs(t, svc.ChangePassword(ctx, id, "secret123", "abc"), ErrWeakPassword)
	require.NoError(t, svc.ChangePassword(ctx, id, "secret123", "newsecret"))

	_, err = svc.Login(ctx, "frank", "secret123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Login(ctx, "frank", "newsecret")
	assert.NoError(t, err)

	_, err = svc.GetUser(ctx, 999)
	assert.ErrorIs(t, err, ErrNotFound)
}
