package services

import (
	"context"
	"testing"
	"time"

	"enquirycrm/internal/domain"
	"enquirycrm/internal/util"
	apperrors "enquirycrm/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (f *fixture) authService() *AuthService {
	return NewAuthService(f.users, util.NewTokenManager("test-secret", time.Hour), WithClock(f.clock.Now))
}

func TestAuthService_CreateUserAndLogin(t *testing.T) {
	f := newFixture(t)
	svc := f.authService()
	ctx := context.Background()

	u, err := svc.CreateUser(ctx, NewUser{Username: " admin ", Password: "s3cret-pass", Email: ptr("admin@example.com"), Role: domain.RoleSuperAdmin})
	require.NoError(t, err)
	assert.Equal(t, "admin", u.Username)
	assert.True(t, u.IsActive)
	assert.NotEqual(t, "s3cret-pass", u.HashedPassword)

	res, err := svc.Login(ctx, "admin", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, "bearer", res.TokenType)
	assert.NotEmpty(t, res.AccessToken)
	require.NotNil(t, res.User.LastLogin)
	assert.True(t, res.User.LastLogin.Equal(f.clock.Now()))

	claims, err := util.NewTokenManager("test-secret", time.Hour).ValidateToken(res.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)
	assert.True(t, claims.IsAdmin())

	me, err := svc.Me(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, u.ID, me.ID)
}

func TestAuthService_DefaultsAndConflicts(t *testing.T) {
	f := newFixture(t)
	svc := f.authService()
	ctx := context.Background()

	u, err := svc.CreateUser(ctx, NewUser{Username: "rep", Password: "password1"})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleSales, u.Role)

	_, err = svc.CreateUser(ctx, NewUser{Username: "rep", Password: "password2"})
	assert.True(t, apperrors.IsConflict(err), "got %v", err)

	_, err = svc.CreateUser(ctx, NewUser{Username: "short", Password: "1234"})
	assert.True(t, apperrors.IsValidation(err))

	_, err = svc.CreateUser(ctx, NewUser{Username: "x", Password: "password1", Role: "ROOT"})
	assert.True(t, apperrors.IsValidation(err))
}

func TestAuthService_LoginFailures(t *testing.T) {
	f := newFixture(t)
	svc := f.authService()
	ctx := context.Background()

	u, err := svc.CreateUser(ctx, NewUser{Username: "sam", Password: "password1"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, "sam", "wrong-password")
	assert.True(t, apperrors.IsUnauthorized(err))
	_, err = svc.Login(ctx, "nobody", "password1")
	assert.True(t, apperrors.IsUnauthorized(err))
	assert.Equal(t, "incorrect username or password", apperrors.MessageOf(err))

	u.IsActive = false
	require.NoError(t, f.users.Save(ctx, u))
	_, err = svc.Login(ctx, "sam", "password1")
	assert.True(t, apperrors.IsUnauthorized(err))
	_, err = svc.Me(ctx, "sam")
	assert.True(t, apperrors.IsUnauthorized(err))
}

func TestHealthService(t *testing.T) {
	res, ok := NewHealthService("crm", "1.0", func(context.Context) error { return nil }).Check(context.Background())
	assert.True(t, ok)
	assert.Equal(t, "healthy", res.Status)

	res, ok = NewHealthService("crm", "1.0", func(context.Context) error { return assert.AnError }).Check(context.Background())
	assert.False(t, ok)
	assert.Equal(t, "down", res.Database)
}
