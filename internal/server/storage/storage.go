// Package storage owns the database handle: it opens the engine behind a
// DSN, applies the schema and hands out repositories bound to the handle.
package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/worktime/internal/dbx"
	"github.com/dmitrijs2005/worktime/internal/logging"
	"github.com/dmitrijs2005/worktime/internal/server/repositories/repomanager"
)

type Storage struct {
	DB      *sql.DB
	Dialect dbx.Dialect
	Repos   repomanager.RepositoryManager
}

// Open connects to dsn and runs pending migrations. The caller must Close
// the returned Storage.
func Open(ctx context.Context, dsn string, logger logging.Logger) (*Storage, error) {
	db, dialect, err := dbx.Open(ctx, dsn)
	if err != nil {
		return nil, err
	}

	repos := repomanager.NewSQLRepositoryManager(dialect, logger)
	if err := repos.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}

	logger.Info(ctx, "storage ready", "dialect", string(dialect))

	return &Storage{DB: db, Dialect: dialect, Repos: repos}, nil
}

func (s *Storage) Close() error {
	return s.DB.Close()
}
