package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/phrazzld/employee-api/internal/domain"
	"github.com/phrazzld/employee-api/internal/store"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Store holds users and employees in memory. It satisfies both
// store.UserStore (via Users) and store.EmployeeStore (via Employees).
type Store struct {
	mu        sync.RWMutex
	users     map[primitive.ObjectID]*domain.User
	employees map[primitive.ObjectID]*domain.Employee
	now       func() time.Time
}

// New creates an empty Store.
func New() *Store {
	return &Store{
		users:     make(map[primitive.ObjectID]*domain.User),
		employees: make(map[primitive.ObjectID]*domain.Employee),
		now:       time.Now,
	}
}

// Users returns the user store view.
func (s *Store) Users() *UserStore { return &UserStore{s: s} }

// Employees returns the employee store view.
func (s *Store) Employees() *EmployeeStore { return &EmployeeStore{s: s} }

// Ping always succeeds.
func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

// Close is a no-op kept for parity with the other backends.
func (s *Store) Close() error {
	return nil
}

func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return primitive.NilObjectID, store.ErrInvalidID
	}
	return oid, nil
}

// UserStore implements store.UserStore.
type UserStore struct {
	s *Store
}

var _ store.UserStore = (*UserStore)(nil)

// Create implements store.UserStore.
func (u *UserStore) Create(ctx context.Context, user *domain.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := user.Validate(); err != nil {
		return store.NewStoreError(
			"user",
			"create",
			"validation failed",
			fmt.Errorf("%w: %w", store.ErrInvalidEntity, err),
		)
	}

	u.s.mu.Lock()
	defer u.s.mu.Unlock()

	for _, existing := range u.s.users {
		if existing.Username == user.Username {
			return store.ErrUsernameExists
		}
		if existing.Email == user.Email {
			return store.ErrEmailExists
		}
	}

	oid := primitive.NewObjectID()
	user.ID = oid.Hex()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = u.s.now().UTC()
	}
	cp := *user
	u.s.users[oid] = &cp
	return nil
}

// GetByID implements store.UserStore.
func (u *UserStore) GetByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	u.s.mu.RLock()
	defer u.s.mu.RUnlock()

	user, ok := u.s.users[oid]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	cp := *user
	return &cp, nil
}

// GetByUsername implements store.UserStore.
func (u *UserStore) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	u.s.mu.RLock()
	defer u.s.mu.RUnlock()

	for _, user := range u.s.users {
		if user.Username == username {
			cp := *user
			return &cp, nil
		}
	}
	return nil, store.ErrUserNotFound
}

// FindByUsernameOrEmail implements store.UserStore.
func (u *UserStore) FindByUsernameOrEmail(
	ctx context.Context,
	username, email string,
) (*domain.User, error) {
	u.s.mu.RLock()
	defer u.s.mu.RUnlock()

	for _, user := range u.s.users {
		if user.Username == username || user.Email == email {
			cp := *user
			return &cp, nil
		}
	}
	return nil, store.ErrUserNotFound
}

// EmployeeStore implements store.EmployeeStore.
type EmployeeStore struct {
	s *Store
}

var _ store.EmployeeStore = (*EmployeeStore)(nil)

// Create implements store.EmployeeStore.
func (e *EmployeeStore) Create(ctx context.Context, employee *domain.Employee) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	e.s.mu.Lock()
	defer e.s.mu.Unlock()

	oid := primitive.NewObjectID()
	employee.ID = oid.Hex()
	e.s.employees[oid] = employee.Clone()
	return nil
}

// GetByID implements store.EmployeeStore.
func (e *EmployeeStore) GetByID(ctx context.Context, id string) (*domain.Employee, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	e.s.mu.RLock()
	defer e.s.mu.RUnlock()

	emp, ok := e.s.employees[oid]
	if !ok {
		return nil, store.ErrEmployeeNotFound
	}
	return emp.Clone(), nil
}

// Find implements store.EmployeeStore. ObjectIDs sort by creation time,
// so the result is in insertion order.
func (e *EmployeeStore) Find(
	ctx context.Context,
	filter domain.EmployeeFilter,
) ([]*domain.Employee, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	e.s.mu.RLock()
	defer e.s.mu.RUnlock()

	ids := make([]primitive.ObjectID, 0, len(e.s.employees))
	for oid, emp := range e.s.employees {
		if filter.Matches(emp) {
			ids = append(ids, oid)
		}
	}
	sort.Slice(ids, func(i, j int) bool {
		return ids[i].Hex() < ids[j].Hex()
	})

	out := make([]*domain.Employee, 0, len(ids))
	for _, oid := range ids {
		out = append(out, e.s.employees[oid].Clone())
	}
	return out, nil
}

// Update implements store.EmployeeStore.
func (e *EmployeeStore) Update(
	ctx context.Context,
	id string,
	patch domain.EmployeePatch,
) (*domain.Employee, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	e.s.mu.Lock()
	defer e.s.mu.Unlock()

	emp, ok := e.s.employees[oid]
	if !ok {
		return nil, store.ErrEmployeeNotFound
	}
	updated := emp.Clone()
	updated.Apply(patch)
	e.s.employees[oid] = updated
	return updated.Clone(), nil
}

// Delete implements store.EmployeeStore.
func (e *EmployeeStore) Delete(ctx context.Context, id string) (*domain.Employee, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	e.s.mu.Lock()
	defer e.s.mu.Unlock()

	emp, ok := e.s.employees[oid]
	if !ok {
		return nil, store.ErrEmployeeNotFound
	}
	delete(e.s.employees, oid)
	return emp, nil
}
