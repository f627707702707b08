package auth

import "errors"

// Common authentication service errors
var (
	// ErrInvalidToken indicates the token format is invalid or signature doesn't match
	ErrInvalidToken = errors.New("invalid authentication token")

	// ErrExpiredToken indicates the token has expired
	ErrExpiredToken = errors.New("authentication token has expired")

	// ErrTokenNotYetValid indicates the token is not yet valid (nbf/iat in the future)
	ErrTokenNotYetValid = errors.New("authentication token not yet valid")

	// ErrMissingToken indicates a token was expected but not provided
	ErrMissingToken = errors.New("authentication token is missing")

	// ErrWeakSecret indicates the signing secret is shorter than MinSecretLength
	ErrWeakSecret = errors.New("jwt secret must be at least 32 characters")

	// ErrBcryptCost indicates a bcrypt cost outside [MinBcryptCost, bcrypt.MaxCost]
	ErrBcryptCost = errors.New("bcrypt cost out of range")

	// ErrPasswordTooLong indicates a password bcrypt cannot hash (over 72 bytes)
	ErrPasswordTooLong = errors.New("password exceeds 72 bytes")
)
