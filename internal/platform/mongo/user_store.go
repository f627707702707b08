package mongo

import (
	"context"
	"log/slog"
	"time"

	"github.com/phrazzld/employee-api/internal/domain"
	"github.com/phrazzld/employee-api/internal/platform/logger"
	"github.com/phrazzld/employee-api/internal/redact"
	"github.com/phrazzld/employee-api/internal/store"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// userDocument is the stored shape of a user.
type userDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Username  string             `bson:"username"`
	Email     string             `bson:"email"`
	Password  string             `bson:"password"`
	CreatedAt time.Time          `bson:"created_at"`
}

func (d *userDocument) toDomain() *domain.User {
	return &domain.User{
		ID:             d.ID.Hex(),
		Username:       d.Username,
		Email:          d.Email,
		HashedPassword: d.Password,
		CreatedAt:      d.CreatedAt,
	}
}

// UserStore implements store.UserStore on the users collection.
type UserStore struct {
	col    *mongo.Collection
	logger *slog.Logger
}

var _ store.UserStore = (*UserStore)(nil)

// NewUserStore creates a UserStore over col.
func NewUserStore(col *mongo.Collection, log *slog.Logger) *UserStore {
	if log == nil {
		log = slog.Default()
	}
	return &UserStore{col: col, logger: log.With(slog.String("collection", UsersCollection))}
}

// Create implements store.UserStore.Create.
func (s *UserStore) Create(ctx context.Context, user *domain.User) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := user.Validate(); err != nil {
		return store.NewStoreError("user", "create", "validation failed", err)
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	doc := userDocument{
		Username:  user.Username,
		Email:     user.Email,
		Password:  user.HashedPassword,
		CreatedAt: user.CreatedAt,
	}
	res, err := s.col.InsertOne(ctx, doc)
	if err != nil {
		mapped := MapError(err, "user")
		if !store.IsDuplicateError(mapped) {
			log.Error("failed to insert user", redact.ErrAttr(err))
		}
		return mapped
	}

	user.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return nil
}

// GetByID implements store.UserStore.GetByID.
func (s *UserStore) GetByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}
	return s.findOne(ctx, bson.M{"_id": oid})
}

// GetByUsername implements store.UserStore.GetByUsername.
func (s *UserStore) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.findOne(ctx, bson.M{"username": username})
}

// FindByUsernameOrEmail implements store.UserStore.FindByUsernameOrEmail.
func (s *UserStore) FindByUsernameOrEmail(
	ctx context.Context,
	username, email string,
) (*domain.User, error) {
	return s.findOne(ctx, bson.M{"$or": bson.A{
		bson.M{"username": username},
		bson.M{"email": email},
	}})
}

func (s *UserStore) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	var doc userDocument
	if err := s.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		return nil, MapError(err, "user")
	}
	return doc.toDomain(), nil
}
