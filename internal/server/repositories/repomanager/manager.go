package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/worktime/internal/dbx"
	"github.com/dmitrijs2005/worktime/internal/server/repositories/entries"
	"github.com/dmitrijs2005/worktime/internal/server/repositories/settings"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Entries(db dbx.DBTX) entries.Repository
	Settings(db dbx.DBTX) settings.Repository
	Dialect() dbx.Dialect
}
