package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	user, err := NewUser("  ann  ", "ann@example.com", "$2a$12$hash")
	require.NoError(t, err)

	assert.Equal(t, "ann", user.Username, "username should be trimmed")
	assert.Equal(t, "ann@example.com", user.Email)
	assert.Equal(t, "$2a$12$hash", user.HashedPassword)
	assert.Empty(t, user.ID, "ID is assigned by the store")
	assert.False(t, user.CreatedAt.IsZero())
}

func TestNewUserValidation(t *testing.T) {
	tests := []struct {
		name     string
		username string
		email    string
		hash     string
		wantErr  error
	}{
		{"empty username", "", "a@b.co", "h", ErrEmptyUsername},
		{"whitespace username", "   ", "a@b.co", "h", ErrEmptyUsername},
		{"empty email", "ann", "", "h", ErrEmptyEmail},
		{"empty hash", "ann", "a@b.co", "", ErrEmptyHashedPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := NewUser(tt.username, tt.email, tt.hash)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, user)
		})
	}
}

func TestUserJSONNeverExposesHash(t *testing.T) {
	user := &User{ID: "1", Username: "ann", Email: "ann@example.com", HashedPassword: "secret-hash"}

	data, err := json.Marshal(user)
	require.NoError(t, err)

	assert.NotContains(t, string(data), "secret-hash")
	assert.NotContains(t, string(data), "password")
}

func TestUserPublic(t *testing.T) {
	user := &User{ID: "1", Username: "ann", HashedPassword: "secret-hash"}

	public := user.Public()

	assert.Empty(t, public.HashedPassword)
	assert.Equal(t, "secret-hash", user.HashedPassword, "original must be untouched")
	assert.Equal(t, user.Username, public.Username)
}
