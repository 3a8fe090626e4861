package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTManager_RoundTrip(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)
	userID := uuid.New()

	token, err := m.GenerateAccessToken(userID, "finance@example.com", []string{"admin"}, []string{"view-reports"})
	require.NoError(t, err)

	claims, err := m.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.True(t, claims.HasPermission("view-reports"))
	assert.False(t, claims.HasPermission("manage-settings"))
}

func TestJWTManager_Rejects(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)

	other := NewJWTManager("other-secret", time.Hour)
	foreign, err := other.GenerateAccessToken(uuid.New(), "x@example.com", nil, nil)
	require.NoError(t, err)
	_, err = m.ValidateAccessToken(foreign)
	assert.Error(t, err)

	expired := NewJWTManager("test-secret", -time.Minute)
	old, err := expired.GenerateAccessToken(uuid.New(), "x@example.com", nil, nil)
	require.NoError(t, err)
	_, err = m.ValidateAccessToken(old)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}
