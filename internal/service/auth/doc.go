// Package auth issues and verifies HS256 bearer tokens and hashes
// passwords with bcrypt.
package auth
