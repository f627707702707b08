package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/employee-api/internal/domain"
	"github.com/phrazzld/employee-api/internal/platform/logger"
	"github.com/phrazzld/employee-api/internal/redact"
	"github.com/phrazzld/employee-api/internal/store"
)

// UserStore implements the store.UserStore interface
// using a PostgreSQL database as the storage backend.
type UserStore struct {
	db     DBTX
	logger *slog.Logger
}

// Ensure UserStore implements store.UserStore interface
var _ store.UserStore = (*UserStore)(nil)

// NewUserStore creates a new PostgreSQL implementation of the UserStore interface.
// If logger is nil, a default logger will be used.
func NewUserStore(db DBTX, log *slog.Logger) *UserStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &UserStore{
		db:     db,
		logger: log.With(slog.String("table", "users")),
	}
}

// parseUUID returns store.ErrInvalidID for anything that is not a UUID.
func parseUUID(id string) (uuid.UUID, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, store.ErrInvalidID
	}
	return parsed, nil
}

const userColumns = `id, username, email, password_hash, created_at`

// Create implements store.UserStore.Create.
func (s *UserStore) Create(ctx context.Context, user *domain.User) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := user.Validate(); err != nil {
		return store.NewStoreError(
			"user",
			"create",
			"validation failed",
			fmt.Errorf("%w: %w", store.ErrInvalidEntity, err),
		)
	}

	id := uuid.New()
	createdAt := user.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	query := `
		INSERT INTO users (id, username, email, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := s.db.ExecContext(ctx, query, id, user.Username, user.Email, user.HashedPassword, createdAt)
	if err != nil {
		mapped := MapError(err, "user")
		if !store.IsDuplicateError(mapped) {
			log.Error("failed to insert user", redact.ErrAttr(err))
		}
		return mapped
	}

	user.ID = id.String()
	user.CreatedAt = createdAt
	return nil
}

// GetByID implements store.UserStore.GetByID.
func (s *UserStore) GetByID(ctx context.Context, id string) (*domain.User, error) {
	parsed, err := parseUUID(id)
	if err != nil {
		return nil, err
	}
	return s.queryOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, parsed)
}

// GetByUsername implements store.UserStore.GetByUsername.
func (s *UserStore) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.queryOne(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username)
}

// FindByUsernameOrEmail implements store.UserStore.FindByUsernameOrEmail.
func (s *UserStore) FindByUsernameOrEmail(
	ctx context.Context,
	username, email string,
) (*domain.User, error) {
	return s.queryOne(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = $1 OR email = $2 LIMIT 1`,
		username, email)
}

func (s *UserStore) queryOne(ctx context.Context, query string, args ...interface{}) (*domain.User, error) {
	var (
		user domain.User
		id   uuid.UUID
	)
	err := s.db.QueryRowContext(ctx, query, args...).Scan(
		&id,
		&user.Username,
		&user.Email,
		&user.HashedPassword,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, MapError(err, "user")
	}
	user.ID = id.String()
	return &user, nil
}
