// Package repomanager provides a RepositoryManager for the SQL dialects in
// dbx, wiring together repository constructors and goose migrations.
package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/worktime/internal/dbx"
	"github.com/dmitrijs2005/worktime/internal/logging"
	"github.com/dmitrijs2005/worktime/internal/server/migrations"
	"github.com/dmitrijs2005/worktime/internal/server/repositories/entries"
	"github.com/dmitrijs2005/worktime/internal/server/repositories/settings"
	"github.com/pressly/goose/v3"
)

// SQLRepositoryManager vends repositories for one dialect and applies the
// matching embedded migrations.
type SQLRepositoryManager struct {
	dialect dbx.Dialect
	logger  logging.Logger
}

// Entries returns an entries.Repository bound to the provided DBTX.
func (m *SQLRepositoryManager) Entries(db dbx.DBTX) entries.Repository {
	return entries.NewSQLRepository(db, m.dialect)
}

// Settings returns a settings.Repository bound to the provided DBTX.
func (m *SQLRepositoryManager) Settings(db dbx.DBTX) settings.Repository {
	return settings.NewSQLRepository(db, m.dialect)
}

func (m *SQLRepositoryManager) Dialect() dbx.Dialect {
	return m.dialect
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations points goose at the embedded migrations of the manager's
// dialect and brings the schema up to date.
func (m *SQLRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	goose.SetLogger(&gooseLogger{ctx: ctx, l: m.logger})
	if err := goose.SetDialect(m.dialect.GooseDialect()); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	if err := gooseUpContext(ctx, db, string(m.dialect)); err != nil {
		return err
	}
	return nil
}

// NewSQLRepositoryManager constructs a RepositoryManager for dialect.
func NewSQLRepositoryManager(dialect dbx.Dialect, logger logging.Logger) RepositoryManager {
	return &SQLRepositoryManager{dialect: dialect, logger: logger}
}
