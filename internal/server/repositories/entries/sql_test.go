package entries

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/worktime/internal/common"
	"github.com/dmitrijs2005/worktime/internal/dbx"
	"github.com/dmitrijs2005/worktime/internal/models"
	"github.com/dmitrijs2005/worktime/internal/server/migrations"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSQLiteRepo(t *testing.T) *SQLRepository {
	t.Helper()
	ctx := context.Background()

	db, dialect, err := dbx.Open(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	goose.SetBaseFS(migrations.Migrations)
	require.NoError(t, goose.SetDialect(dialect.GooseDialect()))
	require.NoError(t, goose.UpContext(ctx, db, "sqlite"))

	return NewSQLRepository(db, dialect)
}

func newMockRepo(t *testing.T) (*SQLRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewSQLRepository(db, dbx.DialectPostgres), mock
}

func ptr[T any](v T) *T { return &v }

func input(date string, hours float64, category string) models.EntryInput {
	return models.EntryInput{Date: date, Hours: ptr(hours), Category: category}
}

var entryRowColumns = []string{"id", "date", "hours", "category", "note", "startTime", "endTime", "created_at"}

func TestSQLRepository_CreateAndList_Ordering(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()
	now := time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)

	_, err := repo.Create(ctx, input("2024-01-02", 1, "a"), now)
	require.NoError(t, err)
	_, err = repo.Create(ctx, input("2024-01-01", 2, "b"), now)
	require.NoError(t, err)
	_, err = repo.Create(ctx, input("2024-01-02", 3, "c"), now)
	require.NoError(t, err)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)

	assert.Equal(t, "b", list[0].Category)
	assert.Equal(t, "a", list[1].Category)
	assert.Equal(t, "c", list[2].Category)
	assert.Less(t, list[1].ID, list[2].ID)
}

func TestSQLRepository_Create_ReturnsStoredRow(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()
	now := time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)

	in := input("2024-03-10", 7.5, "dev")
	in.Note = ptr("planning")
	in.StartTime = ptr("09:00")

	e, err := repo.Create(ctx, in, now)
	require.NoError(t, err)

	assert.Positive(t, e.ID)
	assert.Equal(t, "2024-03-10", e.Date)
	assert.Equal(t, 7.5, e.Hours)
	assert.Equal(t, "dev", e.Category)
	require.NotNil(t, e.Note)
	assert.Equal(t, "planning", *e.Note)
	require.NotNil(t, e.StartTime)
	assert.Equal(t, "09:00", *e.StartTime)
	assert.Nil(t, e.EndTime)
	assert.True(t, now.Equal(e.CreatedAt), "created_at = %v", e.CreatedAt)

	got, err := repo.GetByID(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, e, got)
}

func TestSQLRepository_Create_NilHoursIsStorageError(t *testing.T) {
	repo := newSQLiteRepo(t)

	_, err := repo.Create(context.Background(), models.EntryInput{Date: "2024-01-01", Category: "x"}, time.Now())
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrStorage)
}

func TestSQLRepository_Update(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	in := input("2024-01-01", 1, "a")
	in.Note = ptr("old")
	e, err := repo.Create(ctx, in, created)
	require.NoError(t, err)

	upd, err := repo.Update(ctx, e.ID, input("2024-02-02", 4, "b"))
	require.NoError(t, err)

	assert.Equal(t, e.ID, upd.ID)
	assert.Equal(t, "2024-02-02", upd.Date)
	assert.Equal(t, 4.0, upd.Hours)
	assert.Equal(t, "b", upd.Category)
	assert.Nil(t, upd.Note)
	assert.True(t, created.Equal(upd.CreatedAt))
}

func TestSQLRepository_Update_AbsentIsNotFound(t *testing.T) {
	repo := newSQLiteRepo(t)

	_, err := repo.Update(context.Background(), 999, input("2024-01-01", 1, "a"))
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestSQLRepository_GetByID_AbsentIsNotFound(t *testing.T) {
	repo := newSQLiteRepo(t)

	_, err := repo.GetByID(context.Background(), 42)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestSQLRepository_Delete_Idempotent(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()

	e, err := repo.Create(ctx, input("2024-01-01", 1, "a"), time.Now())
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, e.ID))
	require.NoError(t, repo.Delete(ctx, e.ID))
	require.NoError(t, repo.Delete(ctx, 12345))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.NotNil(t, list)
}

func TestSQLRepository_IDsAreNotReused(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()

	first, err := repo.Create(ctx, input("2024-01-01", 1, "a"), time.Now())
	require.NoError(t, err)
	require.NoError(t, repo.Delete(ctx, first.ID))

	second, err := repo.Create(ctx, input("2024-01-01", 1, "a"), time.Now())
	require.NoError(t, err)
	assert.Greater(t, second.ID, first.ID)
}

func TestSQLRepository_DeleteAll(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := repo.Create(ctx, input("2024-01-01", 1, "a"), time.Now())
		require.NoError(t, err)
	}

	n, err := repo.DeleteAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestSQLRepository_Postgres_UsesNumberedPlaceholders(t *testing.T) {
	repo, mock := newMockRepo(t)
	created := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(`VALUES ($1, $2, $3, $4, $5, $6, $7)`)).
		WithArgs("2024-01-01", 2.5, "dev", nil, nil, nil, created).
		WillReturnRows(sqlmock.NewRows(entryRowColumns).
			AddRow(int64(1), "2024-01-01", 2.5, "dev", nil, nil, nil, created))

	e, err := repo.Create(context.Background(), input("2024-01-01", 2.5, "dev"), created)
	require.NoError(t, err)
	assert.Equal(t, int64(1), e.ID)
	assert.True(t, created.Equal(e.CreatedAt))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLRepository_Update_NoRowsOnPostgres(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`UPDATE entries .* WHERE id = \$7`).
		WithArgs("2024-01-01", 1.0, "a", nil, nil, nil, int64(5)).
		WillReturnRows(sqlmock.NewRows(entryRowColumns))

	_, err := repo.Update(context.Background(), 5, input("2024-01-01", 1, "a"))
	assert.ErrorIs(t, err, common.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLRepository_DriverErrorsAreStorageErrors(t *testing.T) {
	boom := errors.New("connection reset")
	ctx := context.Background()

	tests := []struct {
		name   string
		expect func(sqlmock.Sqlmock)
		call   func(*SQLRepository) error
	}{
		{
			name:   "list",
			expect: func(m sqlmock.Sqlmock) { m.ExpectQuery(`SELECT .* FROM entries ORDER BY`).WillReturnError(boom) },
			call: func(r *SQLRepository) error {
				_, err := r.List(ctx)
				return err
			},
		},
		{
			name:   "create",
			expect: func(m sqlmock.Sqlmock) { m.ExpectQuery(`INSERT INTO entries`).WillReturnError(boom) },
			call: func(r *SQLRepository) error {
				_, err := r.Create(ctx, input("2024-01-01", 1, "a"), time.Now())
				return err
			},
		},
		{
			name:   "update",
			expect: func(m sqlmock.Sqlmock) { m.ExpectQuery(`UPDATE entries`).WillReturnError(boom) },
			call: func(r *SQLRepository) error {
				_, err := r.Update(ctx, 1, input("2024-01-01", 1, "a"))
				return err
			},
		},
		{
			name:   "delete",
			expect: func(m sqlmock.Sqlmock) { m.ExpectExec(`DELETE FROM entries WHERE id = \$1`).WillReturnError(boom) },
			call:   func(r *SQLRepository) error { return r.Delete(ctx, 1) },
		},
		{
			name:   "delete all",
			expect: func(m sqlmock.Sqlmock) { m.ExpectExec(`DELETE FROM entries`).WillReturnError(boom) },
			call: func(r *SQLRepository) error {
				_, err := r.DeleteAll(ctx)
				return err
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newMockRepo(t)
			tt.expect(mock)

			err := tt.call(repo)
			require.Error(t, err)
			assert.ErrorIs(t, err, common.ErrStorage)
			assert.ErrorIs(t, err, boom)

			var se *common.StorageError
			require.True(t, errors.As(err, &se))
			assert.NotEmpty(t, se.Op)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestSQLRepository_List_ScanError(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT .* FROM entries`).
		WillReturnRows(sqlmock.NewRows(entryRowColumns).
			AddRow("not-a-number", "2024-01-01", 1.0, "a", nil, nil, nil, time.Now()))

	_, err := repo.List(context.Background())
	assert.ErrorIs(t, err, common.ErrStorage)
	assert.False(t, errors.Is(err, sql.ErrNoRows))
}
