// Package entries provides the SQL-backed repository for work entries. The
// same queries serve SQLite and PostgreSQL; placeholders are rebound through
// the dbx.Dialect the repository was built with.
package entries

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/worktime/internal/common"
	"github.com/dmitrijs2005/worktime/internal/dbx"
	"github.com/dmitrijs2005/worktime/internal/models"
)

const entryColumns = `id, date, hours, category, note, startTime, endTime, created_at`

// SQLRepository implements Repository over a DBTX (either *sql.DB or *sql.Tx).
type SQLRepository struct {
	db      dbx.DBTX
	dialect dbx.Dialect
}

// NewSQLRepository returns a repository bound to the given DBTX.
func NewSQLRepository(db dbx.DBTX, dialect dbx.Dialect) *SQLRepository {
	return &SQLRepository{db: db, dialect: dialect}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (*models.Entry, error) {
	var (
		e         models.Entry
		note      sql.NullString
		startTime sql.NullString
		endTime   sql.NullString
		createdAt dbx.Timestamp
	)
	if err := row.Scan(&e.ID, &e.Date, &e.Hours, &e.Category, &note, &startTime, &endTime, &createdAt); err != nil {
		return nil, err
	}
	e.Note = stringPtr(note)
	e.StartTime = stringPtr(startTime)
	e.EndTime = stringPtr(endTime)
	e.CreatedAt = createdAt.Time
	return &e, nil
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

// List returns all entries ordered by date ascending, then id ascending.
// The result is never nil.
func (r *SQLRepository) List(ctx context.Context) ([]models.Entry, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+entryColumns+` FROM entries ORDER BY date ASC, id ASC`)
	if err != nil {
		return nil, common.NewStorageError("select entries", err)
	}
	defer rows.Close()

	result := make([]models.Entry, 0)
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, common.NewStorageError("scan entry", err)
		}
		result = append(result, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, common.NewStorageError("select entries", err)
	}
	return result, nil
}

func (r *SQLRepository) GetByID(ctx context.Context, id int64) (*models.Entry, error) {
	query := r.dialect.Rebind(`SELECT ` + entryColumns + ` FROM entries WHERE id = ?`)

	e, err := scanEntry(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("entry %d: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, common.NewStorageError("select entry", err)
	}
	return e, nil
}

// Create inserts an entry as given. Nothing is checked here: a nil Hours
// reaches the NOT NULL constraint and comes back as a StorageError.
func (r *SQLRepository) Create(ctx context.Context, in models.EntryInput, createdAt time.Time) (*models.Entry, error) {
	query := r.dialect.Rebind(`
		INSERT INTO entries (date, hours, category, note, startTime, endTime, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		RETURNING ` + entryColumns)

	e, err := scanEntry(r.db.QueryRowContext(ctx, query,
		in.Date, in.Hours, in.Category, in.Note, in.StartTime, in.EndTime, createdAt.UTC()))
	if err != nil {
		return nil, common.NewStorageError("insert entry", err)
	}
	return e, nil
}

// Update overwrites date, hours, category, note, startTime and endTime of
// entry id. created_at is never touched.
func (r *SQLRepository) Update(ctx context.Context, id int64, in models.EntryInput) (*models.Entry, error) {
	query := r.dialect.Rebind(`
		UPDATE entries
		SET date = ?, hours = ?, category = ?, note = ?, startTime = ?, endTime = ?
		WHERE id = ?
		RETURNING ` + entryColumns)

	e, err := scanEntry(r.db.QueryRowContext(ctx, query,
		in.Date, in.Hours, in.Category, in.Note, in.StartTime, in.EndTime, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("entry %d: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, common.NewStorageError("update entry", err)
	}
	return e, nil
}

func (r *SQLRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, r.dialect.Rebind(`DELETE FROM entries WHERE id = ?`), id); err != nil {
		return common.NewStorageError("delete entry", err)
	}
	return nil
}

func (r *SQLRepository) DeleteAll(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM entries`)
	if err != nil {
		return 0, common.NewStorageError("delete entries", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, common.NewStorageError("delete entries", err)
	}
	return n, nil
}
