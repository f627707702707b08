// Package config handles configuration loading, parsing, and validation
// from a .env file, an optional config.yaml and environment variables
// prefixed with EMPLOYEE_. Unprefixed PORT, MONGO_URI, JWT_SECRET and
// LOG_LEVEL are honoured as fallbacks.
package config
