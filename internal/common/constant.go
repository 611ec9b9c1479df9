// Package common contains shared constants and errors used across
// worktime components.
package common

// RequestIDHeaderName is the HTTP header carrying the per-request identifier
// that is echoed back to the caller and attached to log lines.
const RequestIDHeaderName = "X-Request-ID"

// DefaultDatabaseDSN is the SQLite file used when no DSN is configured.
const DefaultDatabaseDSN = "./data/worktime.db"
