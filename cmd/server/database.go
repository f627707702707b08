package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/employee-api/internal/config"
	"github.com/phrazzld/employee-api/internal/platform/memory"
	"github.com/phrazzld/employee-api/internal/platform/mongo"
	"github.com/phrazzld/employee-api/internal/platform/postgres"
	"github.com/phrazzld/employee-api/internal/store"
)

// storage is the backend selected by database.driver.
type storage struct {
	users     store.UserStore
	employees store.EmployeeStore
	pinger    store.Pinger
	close     func() error
}

// openStorage connects the configured backend and prepares its schema:
// unique indexes for mongo, migrations for postgres.
func openStorage(ctx context.Context, cfg config.DatabaseConfig, log *slog.Logger) (*storage, error) {
	switch cfg.Driver {
	case config.DriverMemory:
		log.Warn("using in-memory store; data is lost on restart")
		st := memory.New()
		return &storage{users: st.Users(), employees: st.Employees(), pinger: st, close: st.Close}, nil

	case config.DriverMongo:
		st, err := mongo.Connect(ctx, cfg, log)
		if err != nil {
			return nil, err
		}
		if err := st.EnsureIndexes(ctx); err != nil {
			_ = st.Close()
			return nil, fmt.Errorf("failed to ensure indexes: %w", err)
		}
		return &storage{users: st.Users(), employees: st.Employees(), pinger: st, close: st.Close}, nil

	case config.DriverPostgres:
		st, err := postgres.Open(ctx, cfg, log)
		if err != nil {
			return nil, err
		}
		if err := postgres.Migrate(ctx, st.DB(), log); err != nil {
			_ = st.Close()
			return nil, err
		}
		return &storage{users: st.Users(), employees: st.Employees(), pinger: st, close: st.Close}, nil

	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}
