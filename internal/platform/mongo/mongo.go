package mongo

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/employee-api/internal/config"
	"github.com/phrazzld/employee-api/internal/platform/logger"
	"github.com/phrazzld/employee-api/internal/redact"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Collection and index names.
const (
	UsersCollection     = "users"
	EmployeesCollection = "employees"

	usernameIndex = "username_1"
	emailIndex    = "email_1"
)

// Store owns the client connection and hands out per-collection stores.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
	logger *slog.Logger
}

// Connect dials MongoDB and verifies the primary is reachable within
// cfg.ConnectTimeout. Writes are retried once on transient failures.
func Connect(ctx context.Context, cfg config.DatabaseConfig, log *slog.Logger) (*Store, error) {
	log = logger.Component(log, "mongo_store")

	opts := options.Client().
		ApplyURI(cfg.URL).
		SetServerSelectionTimeout(cfg.ConnectTimeout()).
		SetConnectTimeout(cfg.ConnectTimeout()).
		SetRetryWrites(true)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create mongo client: %s", redact.Error(err))
	}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout())
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to reach mongo: %s", redact.Error(err))
	}

	log.Info("connected to mongo", slog.String("database", cfg.Name))
	return &Store{
		client: client,
		db:     client.Database(cfg.Name),
		logger: log,
	}, nil
}

// Users returns the user store.
func (s *Store) Users() *UserStore {
	return NewUserStore(s.db.Collection(UsersCollection), s.logger)
}

// Employees returns the employee store.
func (s *Store) Employees() *EmployeeStore {
	return NewEmployeeStore(s.db.Collection(EmployeesCollection), s.logger)
}

// Ping checks that the primary is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

// Close disconnects the client, waiting at most five seconds.
func (s *Store) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

// EnsureIndexes creates the unique user indexes and the employee search
// indexes. It is idempotent.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.db.Collection(UsersCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true).SetName(usernameIndex)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true).SetName(emailIndex)},
	})
	if err != nil {
		return fmt.Errorf("failed to create user indexes: %w", err)
	}

	_, err = s.db.Collection(EmployeesCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "designation", Value: 1}}},
		{Keys: bson.D{{Key: "department", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("failed to create employee indexes: %w", err)
	}

	s.logger.Debug("mongo indexes ensured")
	return nil
}
