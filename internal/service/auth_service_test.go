package service

import (
	"testing"
	"time"

	"github.com/Malay-Max/QuizWhiz-sub001/internal/config"
	"github.com/Malay-Max/QuizWhiz-sub001/internal/domain"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "test-secret"

func newTestAuthService(t *testing.T) AuthService {
	t.Helper()
	svc, err := NewAuthService(&config.Config{Auth: config.AuthConfig{JWTSecret: testJWTSecret}})
	require.NoError(t, err)
	return svc
}

func TestNewAuthService(t *testing.T) {
	_, err := NewAuthService(&config.Config{})
	assert.Error(t, err)
}

func TestValidateToken(t *testing.T) {
	svc := newTestAuthService(t)

	t.Run("accepts a valid access token", func(t *testing.T) {
		token, err := IssueToken(testJWTSecret, "user-1", time.Hour)
		require.NoError(t, err)

		claims, err := svc.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, "user-1", claims.UserID)
		assert.Equal(t, AccessTokenType, claims.TokenType)
	})

	t.Run("rejects an expired token", func(t *testing.T) {
		token, err := IssueToken(testJWTSecret, "user-1", -time.Hour)
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		require.Error(t, err)
		var domainErr *domain.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, domain.CodeUnauthorized, domainErr.Code)
		assert.Contains(t, domainErr.Message, "expired")
	})

	t.Run("rejects a token signed with another secret", func(t *testing.T) {
		token, err := IssueToken("other-secret", "user-1", time.Hour)
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		assert.Error(t, err)
	})

	t.Run("rejects a token with the wrong type claim", func(t *testing.T) {
		claims := AuthClaims{
			UserID:    "user-1",
			TokenType: "refresh",
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testJWTSecret))
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		require.Error(t, err)
		var domainErr *domain.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, domain.CodeUnauthorized, domainErr.Code)
	})

	t.Run("rejects a token without a user id", func(t *testing.T) {
		token, err := IssueToken(testJWTSecret, "", time.Hour)
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		assert.Error(t, err)
	})

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := svc.ValidateToken("not.a.token")
		assert.Error(t, err)
	})

	t.Run("rejects an unsigned token", func(t *testing.T) {
		claims := AuthClaims{UserID: "user-1", TokenType: AccessTokenType}
		token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		assert.Error(t, err)
	})
}
