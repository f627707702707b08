package testutils

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTestSlogHandler(t *testing.T) {
	log, h := NewTestLogger()

	log.With(slog.String("component", "auth_service")).
		Warn("login failed", slog.String("reason", "unknown_user"))
	log.Info("plain")

	entries := h.Entries()
	require.Len(t, entries, 2)

	entry, ok := h.Find("login failed")
	require.True(t, ok)
	assert.Equal(t, "WARN", entry["level"])
	assert.Equal(t, "auth_service", entry["component"])
	assert.Equal(t, "unknown_user", entry["reason"])

	plain, ok := h.Find("plain")
	require.True(t, ok)
	assert.NotContains(t, plain, "component")

	assert.True(t, h.Contains("unknown_"))
	assert.False(t, h.Contains("password"))

	h.Clear()
	assert.Empty(t, h.Entries())
}
