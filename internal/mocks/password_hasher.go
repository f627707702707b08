package mocks

import (
	"strings"

	"github.com/phrazzld/employee-api/internal/service/auth"
)

// MockPasswordHasher implements auth.PasswordHasher for testing without
// paying bcrypt's cost. By default Hash prefixes the password with
// "hashed:" and Verify checks that relationship.
type MockPasswordHasher struct {
	HashFn   func(password string) (string, error)
	VerifyFn func(hashedPassword, password string) bool

	// VerifyCallCount tracks how many times Verify was called
	VerifyCallCount int
}

var _ auth.PasswordHasher = (*MockPasswordHasher)(nil)

// Hash implements auth.PasswordHasher
func (m *MockPasswordHasher) Hash(password string) (string, error) {
	if m.HashFn != nil {
		return m.HashFn(password)
	}
	return "hashed:" + password, nil
}

// Verify implements auth.PasswordHasher
func (m *MockPasswordHasher) Verify(hashedPassword, password string) bool {
	m.VerifyCallCount++
	if m.VerifyFn != nil {
		return m.VerifyFn(hashedPassword, password)
	}
	return strings.TrimPrefix(hashedPassword, "hashed:") == password &&
		strings.HasPrefix(hashedPassword, "hashed:")
}
