package store

import (
	"context"

	"github.com/phrazzld/employee-api/internal/domain"
)

// UserStore defines the interface for user data persistence.
// Implementations must enforce uniqueness of both username and email.
type UserStore interface {
	// Create inserts a new user and sets user.ID to the store-assigned identifier.
	// Returns ErrUsernameExists or ErrEmailExists when a uniqueness constraint
	// rejects the insert.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their identifier.
	// Returns ErrInvalidID if id is not a valid store identifier and
	// ErrUserNotFound if no such user exists.
	GetByID(ctx context.Context, id string) (*domain.User, error)

	// GetByUsername retrieves a user by exact username.
	// Returns ErrUserNotFound if the user does not exist.
	GetByUsername(ctx context.Context, username string) (*domain.User, error)

	// FindByUsernameOrEmail returns any one user whose username or email
	// matches. Returns ErrUserNotFound if neither matches.
	FindByUsernameOrEmail(ctx context.Context, username, email string) (*domain.User, error)
}
