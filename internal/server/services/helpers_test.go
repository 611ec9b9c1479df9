package services

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/worktime/internal/dbx"
	"github.com/dmitrijs2005/worktime/internal/logging"
	"github.com/dmitrijs2005/worktime/internal/models"
	"github.com/dmitrijs2005/worktime/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/worktime/internal/server/storage"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Debug(context.Context, string, ...any) {}
func (nopLogger) Info(context.Context, string, ...any)  {}
func (nopLogger) Warn(context.Context, string, ...any)  {}
func (nopLogger) Error(context.Context, string, ...any) {}
func (l nopLogger) With(...any) logging.Logger          { return l }

func newStorage(t *testing.T) *storage.Storage {
	t.Helper()
	st, err := storage.Open(context.Background(), ":memory:", nopLogger{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock, repomanager.RepositoryManager) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock, repomanager.NewSQLRepositoryManager(dbx.DialectSQLite, nopLogger{})
}

func ptr[T any](v T) *T { return &v }

func entryIn(date string, hours float64, category string) models.EntryInput {
	return models.EntryInput{Date: date, Hours: ptr(hours), Category: category}
}
