// Package store defines the persistence interfaces for users and employees
// and the sentinel errors every backend maps its failures onto. Backends
// live under internal/platform (mongo, postgres, memory).
package store
