// Package security provides authentication primitives: JWT issuance and
// validation for the HTTP layer.
package security

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TokenType represents different types of JWT tokens
type TokenType string

const (
	AccessToken  TokenType = "access"
	RefreshToken TokenType = "refresh"
)

// Claims represents JWT claims structure
type Claims struct {
	UserID    string    `json:"user_id"`
	Email     string    `json:"email,omitempty"`
	TokenType TokenType `json:"token_type"`
	jwt.RegisteredClaims
}

// TokenService issues and validates JWT tokens
type TokenService struct {
	secret            []byte
	accessExpiration  time.Duration
	refreshExpiration time.Duration
	logger            *zap.Logger
}

// NewTokenService creates a new token service
func NewTokenService(secret string, accessExpiration, refreshExpiration time.Duration, logger *zap.Logger) *TokenService {
	return &TokenService{
		secret:            []byte(secret),
		accessExpiration:  accessExpiration,
		refreshExpiration: refreshExpiration,
		logger:            logger.Named("token-service"),
	}
}

// GenerateAccessToken creates a signed access token. Returns the token and
// its lifetime in seconds.
func (t *TokenService) GenerateAccessToken(userID uuid.UUID, email string) (string, int, error) {
	token, err := t.sign(Claims{
		UserID:    userID.String(),
		Email:     email,
		TokenType: AccessToken,
	}, t.accessExpiration)
	if err != nil {
		return "", 0, err
	}
	return token, int(t.accessExpiration / time.Second), nil
}

// GenerateRefreshToken creates a signed refresh token
func (t *TokenService) GenerateRefreshToken(userID uuid.UUID) (string, error) {
	return t.sign(Claims{
		UserID:    userID.String(),
		TokenType: RefreshToken,
	}, t.refreshExpiration)
}

// ValidateToken parses and validates a token of the expected type
func (t *TokenService) ValidateToken(tokenString string, expectedType TokenType) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	if claims.TokenType != expectedType {
		return nil, fmt.Errorf("unexpected token type %q", claims.TokenType)
	}
	return claims, nil
}

// sign builds and signs a token with the given claims and lifetime
func (t *TokenService) sign(claims Claims, lifetime time.Duration) (string, error) {
	now := time.Now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		ID:        uuid.New().String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(lifetime)),
		NotBefore: jwt.NewNumericDate(now),
		Issuer:    "tasteai",
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}
