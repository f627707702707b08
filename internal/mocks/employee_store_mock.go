package mocks

import (
	"context"

	"github.com/phrazzld/employee-api/internal/domain"
	"github.com/phrazzld/employee-api/internal/store"
	"github.com/stretchr/testify/mock"
)

// TestifyMockEmployeeStore is a mock of store.EmployeeStore for use with testify/mock
type TestifyMockEmployeeStore struct {
	mock.Mock
}

var _ store.EmployeeStore = (*TestifyMockEmployeeStore)(nil)

// Create is a mock implementation of store.EmployeeStore.Create
func (m *TestifyMockEmployeeStore) Create(ctx context.Context, employee *domain.Employee) error {
	args := m.Called(ctx, employee)
	return args.Error(0)
}

// GetByID is a mock implementation of store.EmployeeStore.GetByID
func (m *TestifyMockEmployeeStore) GetByID(ctx context.Context, id string) (*domain.Employee, error) {
	args := m.Called(ctx, id)
	if e, ok := args.Get(0).(*domain.Employee); ok {
		return e, args.Error(1)
	}
	return nil, args.Error(1)
}

// Find is a mock implementation of store.EmployeeStore.Find
func (m *TestifyMockEmployeeStore) Find(
	ctx context.Context,
	filter domain.EmployeeFilter,
) ([]*domain.Employee, error) {
	args := m.Called(ctx, filter)
	if es, ok := args.Get(0).([]*domain.Employee); ok {
		return es, args.Error(1)
	}
	return nil, args.Error(1)
}

// Update is a mock implementation of store.EmployeeStore.Update
func (m *TestifyMockEmployeeStore) Update(
	ctx context.Context,
	id string,
	patch domain.EmployeePatch,
) (*domain.Employee, error) {
	args := m.Called(ctx, id, patch)
	if e, ok := args.Get(0).(*domain.Employee); ok {
		return e, args.Error(1)
	}
	return nil, args.Error(1)
}

// Delete is a mock implementation of store.EmployeeStore.Delete
func (m *TestifyMockEmployeeStore) Delete(ctx context.Context, id string) (*domain.Employee, error) {
	args := m.Called(ctx, id)
	if e, ok := args.Get(0).(*domain.Employee); ok {
		return e, args.Error(1)
	}
	return nil, args.Error(1)
}
