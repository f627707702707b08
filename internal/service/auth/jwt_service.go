package auth

import (
	"context"
	"time"
)

// TokenLifetime is how long an issued access token stays valid.
const TokenLifetime = time.Hour

// MinSecretLength is the minimum accepted HMAC signing secret length.
const MinSecretLength = 32

// JWTService defines operations for managing JWT authentication tokens.
type JWTService interface {
	// GenerateToken creates a signed JWT access token identifying the user.
	// Returns the token string or an error if token generation fails.
	GenerateToken(ctx context.Context, userID, username string) (string, error)

	// ValidateToken validates the provided token string and extracts the claims.
	// Returns ErrExpiredToken, ErrTokenNotYetValid or ErrInvalidToken when
	// validation fails.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims is the identity carried by a validated token.
type Claims struct {
	// UserID is the store identifier of the user the token was issued for.
	UserID string `json:"uid,omitempty"`

	// Username is the user's login name at issue time.
	Username string `json:"username,omitempty"`

	// Standard registered JWT claims
	Subject   string    `json:"sub,omitempty"`
	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
	ID        string    `json:"jti,omitempty"`
}
