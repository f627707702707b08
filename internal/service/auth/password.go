package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// MinBcryptCost is the lowest work factor accepted for new hashes.
const MinBcryptCost = 12

// PasswordHasher hashes and verifies passwords.
type PasswordHasher interface {
	// Hash returns a salted one-way hash of password.
	Hash(password string) (string, error)

	// Verify reports whether password matches hashedPassword. A malformed
	// hash yields false.
	Verify(hashedPassword, password string) bool
}

// BcryptHasher implements PasswordHasher using bcrypt.
type BcryptHasher struct {
	cost int
}

var _ PasswordHasher = (*BcryptHasher)(nil)

// NewBcryptHasher creates a BcryptHasher. cost must lie between
// MinBcryptCost and bcrypt.MaxCost.
func NewBcryptHasher(cost int) (*BcryptHasher, error) {
	if cost < MinBcryptCost || cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("%w: %d not in [%d, %d]", ErrBcryptCost, cost, MinBcryptCost, bcrypt.MaxCost)
	}
	return &BcryptHasher{cost: cost}, nil
}

// Cost returns the configured work factor.
func (h *BcryptHasher) Cost() int {
	return h.cost
}

// Hash implements PasswordHasher.
func (h *BcryptHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", ErrPasswordTooLong
		}
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// Verify implements PasswordHasher. bcrypt compares in constant time.
func (h *BcryptHasher) Verify(hashedPassword, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)) == nil
}
