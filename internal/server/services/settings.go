package services

import (
	"context"
	"database/sql"
	"slices"

	"github.com/dmitrijs2005/worktime/internal/common"
	"github.com/dmitrijs2005/worktime/internal/dbx"
	"github.com/dmitrijs2005/worktime/internal/logging"
	"github.com/dmitrijs2005/worktime/internal/models"
	"github.com/dmitrijs2005/worktime/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/worktime/internal/server/repositories/settings"
)

type SettingsService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
}

func NewSettingsService(db *sql.DB, m repomanager.RepositoryManager, logger logging.Logger) *SettingsService {
	return &SettingsService{db: db, repomanager: m, logger: logger}
}

// GetAll returns every setting with its value decoded. An empty store yields
// an empty map.
func (s *SettingsService) GetAll(ctx context.Context) (map[string]any, error) {
	raw, err := s.repomanager.Settings(s.db).GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return models.DecodeSettings(raw), nil
}

// Save upserts every key of values in one transaction. Keys not present in
// values keep their stored value.
func (s *SettingsService) Save(ctx context.Context, values map[string]any) error {
	encoded, err := encodeSettings(values)
	if err != nil {
		return err
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return upsertSettings(ctx, s.repomanager.Settings(tx), encoded)
	})
	if err != nil {
		return common.AsStorageError("save settings", err)
	}

	s.logger.Debug(ctx, "settings saved", "count", len(encoded))
	return nil
}

func encodeSettings(values map[string]any) (map[string]string, error) {
	encoded := make(map[string]string, len(values))
	for k, v := range values {
		text, err := models.EncodeSettingValue(v)
		if err != nil {
			return nil, common.NewValidationError("settings."+k, err.Error())
		}
		encoded[k] = text
	}
	return encoded, nil
}

// upsertSettings writes keys in sorted order so that concurrent batches
// touch rows in the same sequence.
func upsertSettings(ctx context.Context, repo settings.Repository, encoded map[string]string) error {
	keys := make([]string, 0, len(encoded))
	for k := range encoded {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	for _, k := range keys {
		if err := repo.Upsert(ctx, k, encoded[k]); err != nil {
			return err
		}
	}
	return nil
}
