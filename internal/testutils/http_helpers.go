package testutils

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/employee-api/internal/api/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// CreateTestServer creates a httptest server with the given handler.
// Automatically registers cleanup via t.Cleanup() so callers don't need to manually close the server.
func CreateTestServer(t *testing.T, handler http.Handler) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server
}

// PostOperation sends an operation to baseURL/api/operations and returns
// the decoded envelope. A non-empty token is sent as a bearer credential.
func PostOperation(
	t *testing.T,
	baseURL string,
	operation string,
	variables map[string]interface{},
	token string,
) (int, Envelope) {
	t.Helper()

	payload, err := json.Marshal(map[string]interface{}{
		"operation": operation,
		"variables": variables,
	})
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPost, baseURL+"/api/operations", bytes.NewReader(payload))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer func() {
		if err := resp.Body.Close(); err != nil {
			t.Logf("Warning: failed to close response body: %v", err)
		}
	}()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "Failed to read response body")

	var env Envelope
	require.NoError(t, json.Unmarshal(body, &env), "Failed to unmarshal response: %s", string(body))
	assert.NotEmpty(t, resp.Header.Get(shared.TraceIDHeader), "missing trace header")
	return resp.StatusCode, env
}

// Envelope mirrors shared.Envelope with data left undecoded.
type Envelope struct {
	Data   map[string]json.RawMessage `json:"data"`
	Errors []shared.ErrorBody         `json:"errors"`
}

// DecodeData unmarshals data.<operation> into out.
func (e Envelope) DecodeData(t *testing.T, operation string, out interface{}) {
	t.Helper()
	raw, ok := e.Data[operation]
	require.True(t, ok, "no data for %s; errors: %v", operation, e.Errors)
	require.NoError(t, json.Unmarshal(raw, out))
}

// AssertErrorCode checks the response is a single error with the expected
// status and wire code.
func AssertErrorCode(t *testing.T, status int, env Envelope, expectedStatus int, expectedCode string) {
	t.Helper()
	assert.Equal(t, expectedStatus, status, "unexpected status; errors: %v", env.Errors)
	require.Len(t, env.Errors, 1)
	assert.Equal(t, expectedCode, env.Errors[0].Code)
	assert.NotEmpty(t, env.Errors[0].TraceID)
	assert.Nil(t, env.Data)
}
