// Package testutils holds helpers shared by tests across packages: an
// in-memory slog handler for asserting on log output, and HTTP helpers for
// driving the operations endpoint.
package testutils
