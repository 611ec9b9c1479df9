package services

import (
	"context"
	"database/sql"
	"time"

	"github.com/dmitrijs2005/worktime/internal/logging"
	"github.com/dmitrijs2005/worktime/internal/models"
	"github.com/dmitrijs2005/worktime/internal/server/repositories/repomanager"
)

// EntryService implements single-entry operations. Each one is a single
// statement, so no explicit transaction is opened.
type EntryService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
	now         func() time.Time
}

func NewEntryService(db *sql.DB, m repomanager.RepositoryManager, logger logging.Logger) *EntryService {
	return &EntryService{
		db:          db,
		repomanager: m,
		logger:      logger,
		now:         time.Now,
	}
}

// List returns every entry ordered by date, then id.
func (s *EntryService) List(ctx context.Context) ([]models.Entry, error) {
	return s.repomanager.Entries(s.db).List(ctx)
}

// Create validates in and stores it with a fresh id and created_at.
func (s *EntryService) Create(ctx context.Context, in models.EntryInput) (*models.Entry, error) {
	if err := models.ValidateEntry("", in); err != nil {
		return nil, err
	}

	e, err := s.repomanager.Entries(s.db).Create(ctx, in.Normalized(), s.now())
	if err != nil {
		return nil, err
	}
	s.logger.Debug(ctx, "entry created", "id", e.ID, "date", e.Date)
	return e, nil
}

// Update replaces entry id with in. It returns common.ErrNotFound when the
// entry does not exist.
func (s *EntryService) Update(ctx context.Context, id int64, in models.EntryInput) (*models.Entry, error) {
	if err := models.ValidateEntry("", in); err != nil {
		return nil, err
	}
	return s.repomanager.Entries(s.db).Update(ctx, id, in.Normalized())
}

// Delete removes entry id; an absent id is not an error.
func (s *EntryService) Delete(ctx context.Context, id int64) error {
	return s.repomanager.Entries(s.db).Delete(ctx, id)
}
