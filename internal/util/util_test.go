package util

import (
	"testing"
	"time"

	"enquirycrm/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret!")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret!", hash)
	assert.True(t, CheckPasswordHash("s3cret!", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
}

func TestTokenManager(t *testing.T) {
	m := NewTokenManager("test-secret", time.Hour)
	user := &domain.User{ID: 9, Username: "priya", Role: domain.RoleCRMAdmin}

	token, err := m.GenerateToken(user)
	require.NoError(t, err)

	claims, err := m.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "priya", claims.Username)
	assert.Equal(t, uint(9), claims.UserID)
	assert.True(t, claims.IsAdmin())

	other := NewTokenManager("other-secret", time.Hour)
	_, err = other.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManagerExpiry(t *testing.T) {
	m := NewTokenManager("test-secret", time.Minute)
	issued := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return issued }

	token, err := m.GenerateToken(&domain.User{Username: "sales1", Role: domain.RoleSales})
	require.NoError(t, err)

	m.now = func() time.Time { return issued.Add(2 * time.Minute) }
	_, err = m.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}
