package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/worktime/internal/common"
	"github.com/dmitrijs2005/worktime/internal/dbx"
	"github.com/dmitrijs2005/worktime/internal/logging"
	"github.com/dmitrijs2005/worktime/internal/models"
	"github.com/dmitrijs2005/worktime/internal/server/repositories/repomanager"
)

// TransferService moves whole datasets in and out of the store. Both
// directions run in a single transaction.
type TransferService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
	now         func() time.Time
}

func NewTransferService(db *sql.DB, m repomanager.RepositoryManager, logger logging.Logger) *TransferService {
	return &TransferService{
		db:          db,
		repomanager: m,
		logger:      logger,
		now:         time.Now,
	}
}

// Export reads all entries and all settings from one consistent snapshot.
func (s *TransferService) Export(ctx context.Context) (*models.Snapshot, error) {
	var snap models.Snapshot

	err := dbx.WithTx(ctx, s.db, s.repomanager.Dialect().SnapshotTxOptions(), func(ctx context.Context, tx dbx.DBTX) error {
		list, err := s.repomanager.Entries(tx).List(ctx)
		if err != nil {
			return err
		}
		raw, err := s.repomanager.Settings(tx).GetAll(ctx)
		if err != nil {
			return err
		}
		snap.Entries = list
		snap.Settings = models.DecodeSettings(raw)
		return nil
	})
	if err != nil {
		return nil, common.AsStorageError("export", err)
	}

	s.logger.Info(ctx, "export finished", "entries", len(snap.Entries), "settings", len(snap.Settings))
	return &snap, nil
}

// Import replaces every entry with req.Entries and, when req.Settings is
// non-nil, merges those settings in. Input is validated up front; nothing is
// written unless all of it succeeds. The returned list is read inside the
// same transaction.
func (s *TransferService) Import(ctx context.Context, req models.ImportRequest) ([]models.Entry, error) {
	if req.Entries == nil {
		return nil, common.NewValidationError("entries", "is required")
	}

	inputs := make([]models.EntryInput, len(req.Entries))
	for i, in := range req.Entries {
		if err := models.ValidateEntry(fmt.Sprintf("entries[%d]", i), in); err != nil {
			return nil, err
		}
		inputs[i] = in.Normalized()
	}

	var encoded map[string]string
	if req.Settings != nil {
		var err error
		if encoded, err = encodeSettings(req.Settings); err != nil {
			return nil, err
		}
	}

	return s.replaceAll(ctx, inputs, encoded)
}

// replaceAll performs the transactional part of Import on already checked
// input.
func (s *TransferService) replaceAll(ctx context.Context, inputs []models.EntryInput, encoded map[string]string) ([]models.Entry, error) {
	var result []models.Entry

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		entries := s.repomanager.Entries(tx)

		deleted, err := entries.DeleteAll(ctx)
		if err != nil {
			return err
		}

		for _, in := range inputs {
			if _, err := entries.Create(ctx, in, s.now()); err != nil {
				return err
			}
		}

		if encoded != nil {
			if err := upsertSettings(ctx, s.repomanager.Settings(tx), encoded); err != nil {
				return err
			}
		}

		result, err = entries.List(ctx)
		if err != nil {
			return err
		}

		s.logger.Debug(ctx, "import applied", "deleted", deleted, "inserted", len(inputs))
		return nil
	})
	if err != nil {
		s.logger.Warn(ctx, "import rolled back", "error", err)
		return nil, common.AsStorageError("import", err)
	}

	s.logger.Info(ctx, "import finished", "entries", len(result), "settings", len(encoded))
	return result, nil
}
