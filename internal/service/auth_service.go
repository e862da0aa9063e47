package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/Malay-Max/QuizWhiz-sub001/internal/config"
	"github.com/Malay-Max/QuizWhiz-sub001/internal/domain"

	"github.com/golang-jwt/jwt/v5"
)

// AccessTokenType is the expected token_type claim of an access token.
const AccessTokenType = "access"

// AuthClaims are the claims carried by a QuizWhiz access token.
type AuthClaims struct {
	UserID    string `json:"user_id"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// AuthService verifies bearer credentials. Issuing tokens is the concern
// of an external identity provider; this gate only validates them.
type AuthService interface {
	ValidateToken(tokenString string) (*AuthClaims, error)
}

type authService struct {
	secret []byte
}

// NewAuthService creates an AuthService validating HS256 access tokens.
func NewAuthService(cfg *config.Config) (AuthService, error) {
	if cfg.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("jwt secret must be configured")
	}
	return &authService{secret: []byte(cfg.Auth.JWTSecret)}, nil
}

// ValidateToken parses and verifies an access token and returns its
// claims.
func (s *authService) ValidateToken(tokenString string) (*AuthClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AuthClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.NewUnauthorizedError("token has expired")
		}
		return nil, domain.NewUnauthorizedError("invalid token")
	}

	claims, ok := token.Claims.(*AuthClaims)
	if !ok || !token.Valid {
		return nil, domain.NewUnauthorizedError("invalid token claims")
	}
	if claims.TokenType != AccessTokenType {
		return nil, domain.NewUnauthorizedError(fmt.Sprintf("invalid token type: expected access, got %s", claims.TokenType))
	}
	if claims.UserID == "" {
		return nil, domain.NewUnauthorizedError("token carries no user identity")
	}
	return claims, nil
}

// IssueToken signs an access token for userID. Exposed for local tooling
// and tests; production tokens come from the identity provider.
func IssueToken(secret, userID string, ttl time.Duration) (string, error) {
	claims := AuthClaims{
		UserID:    userID,
		TokenType: AccessTokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
