//go:build integration

package mongo

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/phrazzld/employee-api/internal/config"
	"github.com/phrazzld/employee-api/internal/domain"
	"github.com/phrazzld/employee-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// connectTestStore connects to EMPLOYEE_TEST_MONGO_URI using a throwaway
// database that is dropped when the test ends.
func connectTestStore(t *testing.T) *Store {
	t.Helper()

	uri := os.Getenv("EMPLOYEE_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("EMPLOYEE_TEST_MONGO_URI not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	s, err := Connect(ctx, config.DatabaseConfig{
		Driver:                config.DriverMongo,
		URL:                   uri,
		Name:                  fmt.Sprintf("employee_test_%d", time.Now().UnixNano()),
		ConnectTimeoutSeconds: 5,
	}, nil)
	require.NoError(t, err)
	require.NoError(t, s.EnsureIndexes(ctx))

	t.Cleanup(func() {
		_ = s.db.Drop(context.Background())
		_ = s.Close()
	})
	return s
}

func TestUserStore_Integration(t *testing.T) {
	s := connectTestStore(t)
	users := s.Users()
	ctx := context.Background()

	u, err := domain.NewUser("alice", "alice@example.com", "$2a$12$hash")
	require.NoError(t, err)
	require.NoError(t, users.Create(ctx, u))
	require.NotEmpty(t, u.ID)

	got, err := users.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)
	assert.Equal(t, "$2a$12$hash", got.HashedPassword)

	dupName, _ := domain.NewUser("alice", "other@example.com", "h")
	assert.ErrorIs(t, users.Create(ctx, dupName), store.ErrUsernameExists)

	dupEmail, _ := domain.NewUser("bob", "alice@example.com", "h")
	assert.ErrorIs(t, users.Create(ctx, dupEmail), store.ErrEmailExists)

	found, err := users.FindByUsernameOrEmail(ctx, "nobody", "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, found.ID)

	_, err = users.GetByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, store.ErrUserNotFound)

	_, err = users.GetByID(ctx, "bad-id")
	assert.ErrorIs(t, err, store.ErrInvalidID)
}

func TestUserStore_ConcurrentSignup_Integration(t *testing.T) {
	s := connectTestStore(t)
	users := s.Users()

	const workers = 8
	var wg sync.WaitGroup
	results := make([]error, workers)
	for i := 0; i < workers; i++ {
		u, err := domain.NewUser("racer", "racer@example.com", "h")
		require.NoError(t, err)
		wg.Add(1)
		go func(i int, u *domain.User) {
			defer wg.Done()
			results[i] = users.Create(context.Background(), u)
		}(i, u)
	}
	wg.Wait()

	ok := 0
	for _, err := range results {
		if err == nil {
			ok++
		} else {
			assert.True(t, store.IsDuplicateError(err), "unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, ok)
}

func TestEmployeeStore_Integration(t *testing.T) {
	s := connectTestStore(t)
	employees := s.Employees()
	ctx := context.Background()

	e := &domain.Employee{
		FirstName:   "Ann",
		LastName:    "Lee",
		Designation: "Engineer",
		Extra:       map[string]any{"age": 30.0, "address": map[string]any{"city": "Oslo"}},
	}
	require.NoError(t, employees.Create(ctx, e))
	other := &domain.Employee{FirstName: "Bo", LastName: "Ng", Designation: "Manager", Department: "Ops"}
	require.NoError(t, employees.Create(ctx, other))

	got, err := employees.GetByID(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, 30.0, got.Extra["age"])
	assert.Equal(t, map[string]interface{}{"city": "Oslo"}, got.Extra["address"])

	all, err := employees.Find(ctx, domain.EmployeeFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, e.ID, all[0].ID)

	engineers, err := employees.Find(ctx, domain.EmployeeFilter{Designation: "Engineer"})
	require.NoError(t, err)
	require.Len(t, engineers, 1)

	dept := "R&D"
	updated, err := employees.Update(ctx, e.ID, domain.EmployeePatch{Department: &dept})
	require.NoError(t, err)
	assert.Equal(t, "R&D", updated.Department)
	assert.Equal(t, "Engineer", updated.Designation)
	assert.Equal(t, 30.0, updated.Extra["age"])

	unchanged, err := employees.Update(ctx, e.ID, domain.EmployeePatch{})
	require.NoError(t, err)
	assert.Equal(t, updated, unchanged)

	deleted, err := employees.Delete(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, e.ID, deleted.ID)

	_, err = employees.GetByID(ctx, e.ID)
	assert.ErrorIs(t, err, store.ErrEmployeeNotFound)
	_, err = employees.Delete(ctx, e.ID)
	assert.ErrorIs(t, err, store.ErrEmployeeNotFound)
	_, err = employees.Update(ctx, e.ID, domain.EmployeePatch{Department: &dept})
	assert.ErrorIs(t, err, store.ErrEmployeeNotFound)

	require.NoError(t, s.Ping(ctx))
}
