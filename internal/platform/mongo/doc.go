// Package mongo implements the store interfaces on MongoDB using the
// official driver. Users and employees live in the "users" and "employees"
// collections; identifiers are ObjectID hex strings.
//
// Uniqueness of usernames and emails is enforced by unique indexes created
// in EnsureIndexes, so concurrent signups cannot both succeed.
package mongo
