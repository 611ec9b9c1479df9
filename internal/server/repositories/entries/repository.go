package entries

import (
	"context"
	"time"

	"github.com/dmitrijs2005/worktime/internal/models"
)

// Repository describes persistence of work entries.
type Repository interface {
	// List returns every entry ordered by date, then id.
	List(ctx context.Context) ([]models.Entry, error)

	// GetByID returns one entry or common.ErrNotFound.
	GetByID(ctx context.Context, id int64) (*models.Entry, error)

	// Create inserts an entry and returns it with its assigned id.
	Create(ctx context.Context, in models.EntryInput, createdAt time.Time) (*models.Entry, error)

	// Update replaces the caller-controlled fields of entry id. It returns
	// common.ErrNotFound when no such entry exists.
	Update(ctx context.Context, id int64, in models.EntryInput) (*models.Entry, error)

	// Delete removes entry id. Deleting an absent id is not an error.
	Delete(ctx context.Context, id int64) error

	// DeleteAll removes every entry and reports how many were removed.
	DeleteAll(ctx context.Context) (int64, error)
}
