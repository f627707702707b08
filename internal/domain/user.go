package domain

import (
	"errors"
	"strings"
	"time"
)

// Common validation errors
var (
	ErrEmptyUsername       = errors.New("username cannot be empty")
	ErrEmptyEmail          = errors.New("email cannot be empty")
	ErrEmptyPassword       = errors.New("password cannot be empty")
	ErrEmptyHashedPassword = errors.New("hashed password cannot be empty")
)

// User represents a registered user of the directory.
// Users are created on signup and never modified afterwards.
type User struct {
	ID             string    `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	HashedPassword string    `json:"-"` // Never expose password hash in JSON
	CreatedAt      time.Time `json:"created_at"`
}

// NewUser creates a User ready for insertion. The ID is assigned by the store.
//
// NOTE: hashedPassword must already be the output of the credential hasher.
func NewUser(username, email, hashedPassword string) (*User, error) {
	user := &User{
		Username:       strings.TrimSpace(username),
		Email:          strings.TrimSpace(email),
		HashedPassword: hashedPassword,
		CreatedAt:      time.Now().UTC(),
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has the fields the store requires.
func (u *User) Validate() error {
	if u.Username == "" {
		return ErrEmptyUsername
	}
	if u.Email == "" {
		return ErrEmptyEmail
	}
	if u.HashedPassword == "" {
		return ErrEmptyHashedPassword
	}
	return nil
}

// Public returns a copy of the user with the password hash cleared.
func (u *User) Public() *User {
	cp := *u
	cp.HashedPassword = ""
	return &cp
}
