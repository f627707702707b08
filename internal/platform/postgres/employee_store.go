package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/employee-api/internal/domain"
	"github.com/phrazzld/employee-api/internal/platform/logger"
	"github.com/phrazzld/employee-api/internal/redact"
	"github.com/phrazzld/employee-api/internal/store"
)

// EmployeeStore implements store.EmployeeStore on the employees table.
type EmployeeStore struct {
	db     DBTX
	logger *slog.Logger
}

var _ store.EmployeeStore = (*EmployeeStore)(nil)

// NewEmployeeStore creates a new PostgreSQL implementation of the EmployeeStore interface.
func NewEmployeeStore(db DBTX, log *slog.Logger) *EmployeeStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &EmployeeStore{
		db:     db,
		logger: log.With(slog.String("table", "employees")),
	}
}

const employeeColumns = `id, first_name, last_name, designation, department, extra`

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanEmployee(row rowScanner) (*domain.Employee, error) {
	var (
		e     domain.Employee
		id    uuid.UUID
		extra []byte
	)
	if err := row.Scan(&id, &e.FirstName, &e.LastName, &e.Designation, &e.Department, &extra); err != nil {
		return nil, err
	}
	e.ID = id.String()

	if len(extra) > 0 {
		var fields map[string]any
		if err := json.Unmarshal(extra, &fields); err != nil {
			return nil, fmt.Errorf("failed to decode extra attributes: %w", err)
		}
		if len(fields) > 0 {
			e.Extra = fields
		}
	}
	return &e, nil
}

func encodeExtra(extra map[string]any) (string, error) {
	if len(extra) == 0 {
		return "{}", nil
	}
	b, err := json.Marshal(extra)
	if err != nil {
		return "", fmt.Errorf("%w: extra attributes are not JSON encodable: %v", store.ErrInvalidEntity, err)
	}
	return string(b), nil
}

// Create implements store.EmployeeStore.Create.
func (s *EmployeeStore) Create(ctx context.Context, employee *domain.Employee) error {
	extra, err := encodeExtra(employee.Extra)
	if err != nil {
		return err
	}

	id := uuid.New()
	query := `
		INSERT INTO employees (id, first_name, last_name, designation, department, extra)
		VALUES ($1, $2, $3, $4, $5, $6::jsonb)
	`
	_, err = s.db.ExecContext(ctx, query,
		id,
		employee.FirstName,
		employee.LastName,
		employee.Designation,
		employee.Department,
		extra,
	)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).
			Error("failed to insert employee", redact.ErrAttr(err))
		return MapError(err, "employee")
	}

	employee.ID = id.String()
	return nil
}

// GetByID implements store.EmployeeStore.GetByID.
func (s *EmployeeStore) GetByID(ctx context.Context, id string) (*domain.Employee, error) {
	parsed, err := parseUUID(id)
	if err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `SELECT `+employeeColumns+` FROM employees WHERE id = $1`, parsed)
	e, err := scanEmployee(row)
	if err != nil {
		return nil, MapError(err, "employee")
	}
	return e, nil
}

// Find implements store.EmployeeStore.Find. Rows come back in insertion order.
func (s *EmployeeStore) Find(
	ctx context.Context,
	filter domain.EmployeeFilter,
) ([]*domain.Employee, error) {
	query := `
		SELECT ` + employeeColumns + `
		FROM employees
		WHERE ($1::text = '' OR designation = $1)
		  AND ($2::text = '' OR department = $2)
		ORDER BY created_at, id
	`
	rows, err := s.db.QueryContext(ctx, query, filter.Designation, filter.Department)
	if err != nil {
		return nil, MapError(err, "employee")
	}
	defer func() { _ = rows.Close() }()

	employees := make([]*domain.Employee, 0)
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, MapError(err, "employee")
		}
		employees = append(employees, e)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err, "employee")
	}
	return employees, nil
}

// Update implements store.EmployeeStore.Update as a single statement: named
// columns are replaced when present and extra attributes are merged.
func (s *EmployeeStore) Update(
	ctx context.Context,
	id string,
	patch domain.EmployeePatch,
) (*domain.Employee, error) {
	parsed, err := parseUUID(id)
	if err != nil {
		return nil, err
	}

	extra, err := encodeExtra(patch.Extra)
	if err != nil {
		return nil, err
	}

	query := `
		UPDATE employees SET
			first_name  = COALESCE($2, first_name),
			last_name   = COALESCE($3, last_name),
			designation = COALESCE($4, designation),
			department  = COALESCE($5, department),
			extra       = extra || $6::jsonb
		WHERE id = $1
		RETURNING ` + employeeColumns

	row := s.db.QueryRowContext(ctx, query,
		parsed,
		nullString(patch.FirstName),
		nullString(patch.LastName),
		nullString(patch.Designation),
		nullString(patch.Department),
		extra,
	)
	e, err := scanEmployee(row)
	if err != nil {
		return nil, MapError(err, "employee")
	}
	return e, nil
}

// Delete implements store.EmployeeStore.Delete and returns the removed row.
func (s *EmployeeStore) Delete(ctx context.Context, id string) (*domain.Employee, error) {
	parsed, err := parseUUID(id)
	if err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx,
		`DELETE FROM employees WHERE id = $1 RETURNING `+employeeColumns, parsed)
	e, err := scanEmployee(row)
	if err != nil {
		return nil, MapError(err, "employee")
	}
	return e, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
