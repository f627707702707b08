// Package memory provides mutex-guarded in-process implementations of the
// store interfaces. Identifiers are Mongo ObjectID hex strings so that id
// validation behaves exactly like the mongo backend.
//
// Used by the "memory" database driver and by service and API tests.
package memory
