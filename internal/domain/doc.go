// Package domain contains the core entities of the employee directory
// (users and employees), the merge-patch and filter value objects used to
// change and query them, and the classified error type every operation
// returns. It is independent of any store or transport.
package domain
