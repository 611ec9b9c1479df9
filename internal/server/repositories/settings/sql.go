// Package settings provides the SQL-backed settings repository.
package settings

import (
	"context"

	"github.com/dmitrijs2005/worktime/internal/common"
	"github.com/dmitrijs2005/worktime/internal/dbx"
)

type SQLRepository struct {
	db      dbx.DBTX
	dialect dbx.Dialect
}

func NewSQLRepository(db dbx.DBTX, dialect dbx.Dialect) *SQLRepository {
	return &SQLRepository{db: db, dialect: dialect}
}

func (r *SQLRepository) GetAll(ctx context.Context) (map[string]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT key, value FROM settings`)
	if err != nil {
		return nil, common.NewStorageError("select settings", err)
	}
	defer rows.Close()

	result := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, common.NewStorageError("scan setting", err)
		}
		result[k] = v
	}
	if err := rows.Err(); err != nil {
		return nil, common.NewStorageError("select settings", err)
	}
	return result, nil
}

func (r *SQLRepository) Upsert(ctx context.Context, key, value string) error {
	query := r.dialect.Rebind(`
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`)

	if _, err := r.db.ExecContext(ctx, query, key, value); err != nil {
		return common.NewStorageError("upsert setting", err)
	}
	return nil
}
