package store

import (
	"context"

	"github.com/phrazzld/employee-api/internal/domain"
)

// EmployeeStore defines the interface for employee document persistence.
//
// Every method taking an id returns ErrInvalidID for identifiers that are
// not valid for the backing store, and ErrEmployeeNotFound when the id is
// well formed but no document exists.
type EmployeeStore interface {
	// Create inserts the employee and sets employee.ID.
	Create(ctx context.Context, employee *domain.Employee) error

	// GetByID retrieves a single employee.
	GetByID(ctx context.Context, id string) (*domain.Employee, error)

	// Find returns every employee matching the filter; an empty filter
	// returns all employees. Results are ordered by id so repeated reads
	// without intervening writes are stable.
	Find(ctx context.Context, filter domain.EmployeeFilter) ([]*domain.Employee, error)

	// Update applies the merge patch and returns the updated document.
	Update(ctx context.Context, id string, patch domain.EmployeePatch) (*domain.Employee, error)

	// Delete removes the employee and returns the document as it was.
	Delete(ctx context.Context, id string) (*domain.Employee, error)
}

// Pinger is implemented by stores that can report backend liveness.
type Pinger interface {
	Ping(ctx context.Context) error
}
