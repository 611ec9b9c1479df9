package dbx

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/worktime/internal/filex"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// sqlitePragmas are applied right after the single SQLite connection opens.
var sqlitePragmas = []string{
	"PRAGMA busy_timeout = 5000",
	"PRAGMA foreign_keys = ON",
}

// Open opens and pings the database behind dsn and reports its dialect.
//
// SQLite handles are limited to a single open connection so that the store
// is accessed through one logical connection and transactions serialize.
// For file databases the parent directory is created and WAL is enabled.
func Open(ctx context.Context, dsn string) (*sql.DB, Dialect, error) {
	dialect := DialectFromDSN(dsn)

	if dialect == DialectSQLite {
		if path := sqliteFilePath(dsn); path != "" {
			if _, err := filex.EnsureDir(filepath.Dir(path)); err != nil {
				return nil, "", err
			}
		}
	}

	db, err := sql.Open(dialect.DriverName(), dsn)
	if err != nil {
		return nil, "", fmt.Errorf("db open error: %w", err)
	}

	if dialect == DialectSQLite {
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(5)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, "", fmt.Errorf("db ping error: %w", err)
	}

	if dialect == DialectSQLite {
		pragmas := sqlitePragmas
		if sqliteFilePath(dsn) != "" {
			pragmas = append(pragmas[:len(pragmas):len(pragmas)], "PRAGMA journal_mode = WAL")
		}
		for _, p := range pragmas {
			if _, err := db.ExecContext(ctx, p); err != nil {
				_ = db.Close()
				return nil, "", fmt.Errorf("sqlite %q: %w", p, err)
			}
		}
	}

	return db, dialect, nil
}

// sqliteFilePath returns the on-disk path of a SQLite DSN, or "" for
// in-memory databases.
func sqliteFilePath(dsn string) string {
	if dsn == "" || strings.Contains(dsn, ":memory:") || strings.Contains(dsn, "mode=memory") {
		return ""
	}
	path := strings.TrimPrefix(dsn, "file:")
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	return path
}
