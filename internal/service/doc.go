// Package service contains the application use cases: signing users up and
// in, and the employee directory operations. Each operation validates its
// input before touching the store, performs a single store call (signup
// performs two), and classifies every failure as a *domain.Error so the
// transport layer never has to inspect store or driver errors.
//
// Services receive their stores and collaborators through constructor
// injection and never depend on a concrete backend.
package service
