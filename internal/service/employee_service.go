package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/phrazzld/employee-api/internal/domain"
	"github.com/phrazzld/employee-api/internal/platform/logger"
	"github.com/phrazzld/employee-api/internal/redact"
	"github.com/phrazzld/employee-api/internal/store"
)

// SearchInput selects employees by exact designation and/or department.
type SearchInput struct {
	Designation string `json:"designation" validate:"required_without=Department"`
	Department  string `json:"department"`
}

// EmployeeService implements the employee directory operations.
type EmployeeService interface {
	// GetAllEmployees returns every employee ordered by id.
	GetAllEmployees(ctx context.Context) ([]*domain.Employee, error)

	// GetEmployeeByID returns one employee.
	GetEmployeeByID(ctx context.Context, id string) (*domain.Employee, error)

	// SearchEmployees returns employees matching every supplied filter.
	// At least one filter is required.
	SearchEmployees(ctx context.Context, in SearchInput) ([]*domain.Employee, error)

	// AddEmployee stores a new employee and returns it with its id.
	AddEmployee(ctx context.Context, fields map[string]any) (*domain.Employee, error)

	// UpdateEmployeeByID merges fields into the stored employee.
	UpdateEmployeeByID(ctx context.Context, id string, fields map[string]any) (*domain.Employee, error)

	// DeleteEmployeeByID removes an employee.
	DeleteEmployeeByID(ctx context.Context, id string) (*domain.DeleteResult, error)
}

type employeeServiceImpl struct {
	employees store.EmployeeStore
	logger    *slog.Logger
}

var _ EmployeeService = (*employeeServiceImpl)(nil)

// NewEmployeeService creates an EmployeeService.
func NewEmployeeService(employees store.EmployeeStore, log *slog.Logger) (EmployeeService, error) {
	if employees == nil {
		return nil, errors.New("employee store cannot be nil")
	}
	return &employeeServiceImpl{
		employees: employees,
		logger:    logger.Component(log, "employee_service"),
	}, nil
}

func (s *employeeServiceImpl) log(ctx context.Context) *slog.Logger {
	return logger.FromContextOrDefault(ctx, s.logger)
}

// classify turns a store error into the caller-facing taxonomy.
func (s *employeeServiceImpl) classify(ctx context.Context, op string, err error) error {
	switch {
	case errors.Is(err, store.ErrInvalidID):
		return domain.NewInvalidInputError(MsgInvalidEmployeeID)
	case store.IsNotFoundError(err):
		return domain.NewNotFoundError(MsgEmployeeNotFound, err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		s.log(ctx).Warn("employee operation abandoned", "operation", op, redact.ErrAttr(err))
		return domain.NewInternalError(MsgInternal, err)
	default:
		s.log(ctx).Error("employee store failure", "operation", op, redact.ErrAttr(err))
		return domain.NewInternalError(MsgInternal, err)
	}
}

func requireID(id string) (string, error) {
	id = strings.TrimSpace(id)
	if err := validate.Var(id, "required"); err != nil {
		return "", domain.NewInvalidInputError("id is required")
	}
	return id, nil
}

// GetAllEmployees implements EmployeeService.
func (s *employeeServiceImpl) GetAllEmployees(ctx context.Context) ([]*domain.Employee, error) {
	employees, err := s.employees.Find(ctx, domain.EmployeeFilter{})
	if err != nil {
		return nil, s.classify(ctx, "get_all", err)
	}
	return employees, nil
}

// GetEmployeeByID implements EmployeeService.
func (s *employeeServiceImpl) GetEmployeeByID(ctx context.Context, id string) (*domain.Employee, error) {
	id, err := requireID(id)
	if err != nil {
		return nil, err
	}

	employee, err := s.employees.GetByID(ctx, id)
	if err != nil {
		return nil, s.classify(ctx, "get_by_id", err)
	}
	return employee, nil
}

// SearchEmployees implements EmployeeService.
func (s *employeeServiceImpl) SearchEmployees(
	ctx context.Context,
	in SearchInput,
) ([]*domain.Employee, error) {
	in.Designation = strings.TrimSpace(in.Designation)
	in.Department = strings.TrimSpace(in.Department)

	if err := validate.Struct(in); err != nil {
		return nil, domain.NewInvalidInputError(validationMessage(err))
	}

	employees, err := s.employees.Find(ctx, domain.EmployeeFilter{
		Designation: in.Designation,
		Department:  in.Department,
	})
	if err != nil {
		return nil, s.classify(ctx, "search", err)
	}
	return employees, nil
}

// AddEmployee implements EmployeeService.
func (s *employeeServiceImpl) AddEmployee(
	ctx context.Context,
	fields map[string]any,
) (*domain.Employee, error) {
	employee, err := domain.EmployeeFromFields(fields)
	if err != nil {
		return nil, domain.NewInvalidInputError(fieldMessage(err))
	}
	if err := employee.Validate(); err != nil {
		return nil, domain.NewInvalidInputError(fieldMessage(err))
	}

	if err := s.employees.Create(ctx, employee); err != nil {
		return nil, s.classify(ctx, "add", err)
	}

	s.log(ctx).Info("employee added", "employee_id", employee.ID)
	return employee, nil
}

// UpdateEmployeeByID implements EmployeeService.
func (s *employeeServiceImpl) UpdateEmployeeByID(
	ctx context.Context,
	id string,
	fields map[string]any,
) (*domain.Employee, error) {
	id, err := requireID(id)
	if err != nil {
		return nil, err
	}

	patch, err := domain.NewEmployeePatch(fields)
	if err != nil {
		return nil, domain.NewInvalidInputError(fieldMessage(err))
	}
	if err := patch.Validate(); err != nil {
		return nil, domain.NewInvalidInputError(fieldMessage(err))
	}

	employee, err := s.employees.Update(ctx, id, patch)
	if err != nil {
		return nil, s.classify(ctx, "update", err)
	}

	s.log(ctx).Info("employee updated", "employee_id", employee.ID)
	return employee, nil
}

// DeleteEmployeeByID implements EmployeeService.
func (s *employeeServiceImpl) DeleteEmployeeByID(
	ctx context.Context,
	id string,
) (*domain.DeleteResult, error) {
	id, err := requireID(id)
	if err != nil {
		return nil, err
	}

	if _, err := s.employees.Delete(ctx, id); err != nil {
		return nil, s.classify(ctx, "delete", err)
	}

	s.log(ctx).Info("employee deleted", "employee_id", id)
	return &domain.DeleteResult{
		Success: true,
		Message: MsgEmployeeDeleted,
		ID:      id,
	}, nil
}

// fieldMessage strips the generic validation prefix from domain errors so
// "validation failed: first_name is required" reads "first_name is required".
func fieldMessage(err error) string {
	return strings.TrimPrefix(err.Error(), domain.ErrValidation.Error()+": ")
}
