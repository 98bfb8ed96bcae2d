package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prodtrack/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTService(expiration time.Duration) *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:                "test-secret-0123456789abcdef0123456789",
		AccessTokenExpiration: expiration,
		Issuer:                "prodtrack-test",
	})
}

func TestGenerateAndValidateToken(t *testing.T) {
	service := newTestJWTService(time.Hour)
	userID := uuid.New()

	token, err := service.GenerateToken(GenerateTokenInput{
		UserID:   userID,
		Username: "operator",
		Role:     "admin",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, token.AccessToken)
	assert.Equal(t, "Bearer", token.TokenType)

	claims, err := service.ValidateToken(token.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.UserID)
	assert.Equal(t, "operator", claims.Username)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, "prodtrack-test", claims.Issuer)

	parsed, err := claims.ParseUserID()
	require.NoError(t, err)
	assert.Equal(t, userID, parsed)
}

func TestValidateToken_Expired(t *testing.T) {
	service := newTestJWTService(-time.Minute)

	token, err := service.GenerateToken(GenerateTokenInput{UserID: uuid.New(), Username: "u"})
	require.NoError(t, err)

	_, err = service.ValidateToken(token.AccessToken)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	service := newTestJWTService(time.Hour)
	other := NewJWTService(config.JWTConfig{
		Secret:                "another-secret-entirely-0123456789ab",
		AccessTokenExpiration: time.Hour,
		Issuer:                "prodtrack-test",
	})

	token, err := service.GenerateToken(GenerateTokenInput{UserID: uuid.New(), Username: "u"})
	require.NoError(t, err)

	_, err = other.ValidateToken(token.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateToken_Garbage(t *testing.T) {
	service := newTestJWTService(time.Hour)

	_, err := service.ValidateToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestClaims_RemainingTTL(t *testing.T) {
	service := newTestJWTService(time.Hour)

	token, err := service.GenerateToken(GenerateTokenInput{UserID: uuid.New(), Username: "u"})
	require.NoError(t, err)

	claims, err := service.ValidateToken(token.AccessToken)
	require.NoError(t, err)

	ttl := claims.RemainingTTL()
	assert.Greater(t, ttl, 55*time.Minute)
	assert.LessOrEqual(t, ttl, time.Hour)
}
