package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver
	"github.com/phrazzld/employee-api/internal/config"
	"github.com/phrazzld/employee-api/internal/platform/logger"
	"github.com/phrazzld/employee-api/internal/redact"
)

// DBTX is satisfied by *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// Store owns the connection pool and hands out per-table stores.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// Open connects to PostgreSQL and verifies the server answers within
// cfg.ConnectTimeout.
func Open(ctx context.Context, cfg config.DatabaseConfig, log *slog.Logger) (*Store, error) {
	log = logger.Component(log, "postgres_store")

	db, err := sql.Open("pgx", cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %s", redact.Error(err))
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout())
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to reach database: %s", redact.Error(err))
	}

	log.Info("connected to postgres")
	return &Store{db: db, logger: log}, nil
}

// NewStore wraps an existing pool.
func NewStore(db *sql.DB, log *slog.Logger) *Store {
	return &Store{db: db, logger: logger.Component(log, "postgres_store")}
}

// DB exposes the pool for migrations and tests.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Users returns the user store.
func (s *Store) Users() *UserStore {
	return NewUserStore(s.db, s.logger)
}

// Employees returns the employee store.
func (s *Store) Employees() *EmployeeStore {
	return NewEmployeeStore(s.db, s.logger)
}

// Ping checks the server is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the pool.
func (s *Store) Close() error {
	return s.db.Close()
}
