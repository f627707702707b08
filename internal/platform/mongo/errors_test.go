package mongo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/phrazzld/employee-api/internal/domain"
	"github.com/phrazzld/employee-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func duplicateKeyError(index string) error {
	return mongo.WriteException{
		WriteErrors: []mongo.WriteError{{
			Code:    11000,
			Message: "E11000 duplicate key error collection: employee_directory.users index: " + index + " dup key: { : \"x\" }",
		}},
	}
}

func TestMapError(t *testing.T) {
	generic := errors.New("connection reset by peer")

	tests := []struct {
		name   string
		err    error
		entity string
		want   error
	}{
		{"nil", nil, "user", nil},
		{"no documents user", mongo.ErrNoDocuments, "user", store.ErrUserNotFound},
		{"no documents employee", mongo.ErrNoDocuments, "employee", store.ErrEmployeeNotFound},
		{"no documents other", mongo.ErrNoDocuments, "", store.ErrNotFound},
		{"duplicate username", duplicateKeyError(usernameIndex), "user", store.ErrUsernameExists},
		{"duplicate email", duplicateKeyError(emailIndex), "user", store.ErrEmailExists},
		{"duplicate unknown index", duplicateKeyError("other_1"), "user", store.ErrDuplicate},
		{"context canceled", context.Canceled, "employee", context.Canceled},
		{"generic passthrough", generic, "employee", generic},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapError(tt.err, tt.entity)
			if tt.want == nil {
				assert.NoError(t, got)
				return
			}
			assert.ErrorIs(t, got, tt.want)
		})
	}
}

func TestMapError_DuplicateEmailIsNotUsername(t *testing.T) {
	got := MapError(duplicateKeyError(emailIndex), "user")
	assert.False(t, errors.Is(got, store.ErrUsernameExists))
	assert.True(t, store.IsDuplicateError(got))
}

func TestParseObjectID(t *testing.T) {
	oid := primitive.NewObjectID()

	got, err := parseObjectID(oid.Hex())
	require.NoError(t, err)
	assert.Equal(t, oid, got)

	got, err = parseObjectID(" " + oid.Hex() + " ")
	require.NoError(t, err)
	assert.Equal(t, oid, got)

	for _, bad := range []string{"", "123", "zzzzzzzzzzzzzzzzzzzzzzzz", oid.Hex() + "00"} {
		_, err := parseObjectID(bad)
		assert.ErrorIs(t, err, store.ErrInvalidID, "id %q", bad)
	}
}

func TestEmployeeDocumentRoundTrip(t *testing.T) {
	oid := primitive.NewObjectID()
	when := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	doc := employeeDocument{
		ID:          oid,
		FirstName:   "Ann",
		LastName:    "Lee",
		Designation: "Engineer",
		Extra: map[string]interface{}{
			"__v":     int32(0),
			"address": primitive.D{{Key: "city", Value: "Oslo"}},
			"skills":  primitive.A{"go", primitive.M{"level": int32(3)}},
			"manager": oid,
			"hired":   primitive.NewDateTimeFromTime(when),
			"age":     30.0,
		},
	}

	e := doc.toDomain()
	assert.Equal(t, oid.Hex(), e.ID)
	assert.Equal(t, "Ann", e.FirstName)
	assert.Equal(t, "Engineer", e.Designation)
	assert.Empty(t, e.Department)
	assert.NotContains(t, e.Extra, "__v")
	assert.Equal(t, map[string]interface{}{"city": "Oslo"}, e.Extra["address"])
	assert.Equal(t, []interface{}{"go", map[string]interface{}{"level": int32(3)}}, e.Extra["skills"])
	assert.Equal(t, oid.Hex(), e.Extra["manager"])
	assert.Equal(t, when, e.Extra["hired"])
	assert.Equal(t, 30.0, e.Extra["age"])

	back := newEmployeeDocument(&domain.Employee{
		ID:        oid.Hex(),
		FirstName: "Ann",
		LastName:  "Lee",
		Extra:     map[string]any{"age": 30.0},
	})
	assert.True(t, back.ID.IsZero(), "insert documents let the server assign _id")
	assert.Equal(t, "Ann", back.FirstName)
	assert.Equal(t, 30.0, back.Extra["age"])
}
