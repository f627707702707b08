package mongo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/phrazzld/employee-api/internal/store"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// MapError maps a driver error to the store's sentinel errors. entity is
// used to pick the entity-specific not-found error.
func MapError(err error, entity string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, mongo.ErrNoDocuments) {
		switch entity {
		case "user":
			return store.ErrUserNotFound
		case "employee":
			return store.ErrEmployeeNotFound
		default:
			return store.ErrNotFound
		}
	}

	if mongo.IsDuplicateKeyError(err) {
		return mapDuplicateKey(err)
	}

	// Keep context errors recognisable to callers.
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	if mongo.IsTimeout(err) {
		return fmt.Errorf("%w: %v", context.DeadlineExceeded, err)
	}

	return err
}

// mapDuplicateKey picks the field-specific duplicate error from the index
// named in the server message, e.g. "E11000 ... index: email_1 dup key".
func mapDuplicateKey(err error) error {
	msg := err.Error()
	switch {
	case strings.Contains(msg, usernameIndex):
		return fmt.Errorf("%w: %v", store.ErrUsernameExists, err)
	case strings.Contains(msg, emailIndex):
		return fmt.Errorf("%w: %v", store.ErrEmailExists, err)
	default:
		return fmt.Errorf("%w: %v", store.ErrDuplicate, err)
	}
}

// parseObjectID converts a hex id into an ObjectID, returning
// store.ErrInvalidID for anything that is not 24 hex characters.
func parseObjectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return primitive.NilObjectID, store.ErrInvalidID
	}
	return oid, nil
}
