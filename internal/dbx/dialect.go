package dbx

import (
	"database/sql"
	"strconv"
	"strings"
)

// Dialect identifies the SQL flavour behind a handle. Repositories write
// their queries with '?' placeholders and rebind them through the dialect.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

// DialectFromDSN picks the dialect from the connection string: postgres URLs
// select PostgreSQL, anything else is treated as a SQLite path or URI.
func DialectFromDSN(dsn string) Dialect {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return DialectPostgres
	}
	return DialectSQLite
}

// DriverName returns the database/sql driver registered for the dialect.
func (d Dialect) DriverName() string {
	if d == DialectPostgres {
		return "pgx"
	}
	return "sqlite"
}

// GooseDialect returns the goose dialect name used to run migrations.
func (d Dialect) GooseDialect() string {
	if d == DialectPostgres {
		return "postgres"
	}
	return "sqlite3"
}

// Rebind rewrites '?' placeholders into the dialect's native form.
// Queries must not contain literal question marks.
func (d Dialect) Rebind(query string) string {
	if d != DialectPostgres {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// SnapshotTxOptions returns the options for a transaction that must observe
// a single point in time across several reads. SQLite runs on one connection,
// so a plain transaction already excludes concurrent writers.
func (d Dialect) SnapshotTxOptions() *sql.TxOptions {
	if d == DialectPostgres {
		return &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}
	}
	return nil
}
