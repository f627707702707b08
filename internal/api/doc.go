// Package api is the HTTP transport. Every operation goes through
// POST /api/operations with a body of {"operation", "variables"}; results
// come back under data.<operation> and failures as an errors array whose
// codes follow the domain error kinds.
package api
