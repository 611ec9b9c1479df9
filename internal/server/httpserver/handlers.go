package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/dmitrijs2005/worktime/internal/common"
	"github.com/dmitrijs2005/worktime/internal/logging"
	"github.com/dmitrijs2005/worktime/internal/metrics"
	"github.com/dmitrijs2005/worktime/internal/models"
)

type EntryService interface {
	List(ctx context.Context) ([]models.Entry, error)
	Create(ctx context.Context, in models.EntryInput) (*models.Entry, error)
	Update(ctx context.Context, id int64, in models.EntryInput) (*models.Entry, error)
	Delete(ctx context.Context, id int64) error
}

type SettingsService interface {
	GetAll(ctx context.Context) (map[string]any, error)
	Save(ctx context.Context, values map[string]any) error
}

type TransferService interface {
	Export(ctx context.Context) (*models.Snapshot, error)
	Import(ctx context.Context, req models.ImportRequest) ([]models.Entry, error)
}

// healthTimeLayout is ISO-8601 in UTC with millisecond precision.
const healthTimeLayout = "2006-01-02T15:04:05.000Z07:00"

type handlers struct {
	entries  EntryService
	settings SettingsService
	transfer TransferService
	metrics  *metrics.Metrics
	logger   logging.Logger
	now      func() time.Time
}

// fail writes err as {"error": msg} with the status of its kind. Server-side
// failures are logged.
func (h *handlers) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error(r.Context(), "request failed", "error", err, "path", r.URL.Path)
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		return 0, common.NewValidationError("id", "must be an integer")
	}
	return id, nil
}

func (h *handlers) listEntries(w http.ResponseWriter, r *http.Request) {
	list, err := h.entries.List(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *handlers) createEntry(w http.ResponseWriter, r *http.Request) {
	var in models.EntryInput
	if err := decodeBody(w, r, &in); err != nil {
		h.fail(w, r, err)
		return
	}

	e, err := h.entries.Create(r.Context(), in)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

// updateEntry answers 200 with a JSON null when the id does not exist.
func (h *handlers) updateEntry(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	var in models.EntryInput
	if err := decodeBody(w, r, &in); err != nil {
		h.fail(w, r, err)
		return
	}

	e, err := h.entries.Update(r.Context(), id, in)
	if errors.Is(err, common.ErrNotFound) {
		writeJSON(w, http.StatusOK, nil)
		return
	}
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (h *handlers) deleteEntry(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	if err := h.entries.Delete(r.Context(), id); err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, successResponse{Success: true})
}

func (h *handlers) getSettings(w http.ResponseWriter, r *http.Request) {
	s, err := h.settings.GetAll(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

func (h *handlers) saveSettings(w http.ResponseWriter, r *http.Request) {
	var body map[string]json.RawMessage
	if err := decodeBody(w, r, &body); err != nil {
		h.fail(w, r, err)
		return
	}
	if body == nil {
		h.fail(w, r, common.NewValidationError("body", "must be a JSON object"))
		return
	}

	if err := h.settings.Save(r.Context(), rawSettings(body)); err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, successResponse{Success: true})
}

// rawSettings keeps each value as raw JSON so that the stored text form is
// derived from exactly what the client sent.
func rawSettings(body map[string]json.RawMessage) map[string]any {
	if body == nil {
		return nil
	}
	out := make(map[string]any, len(body))
	for k, v := range body {
		out[k] = v
	}
	return out
}

type importBody struct {
	Entries  []models.EntryInput        `json:"entries"`
	Settings map[string]json.RawMessage `json:"settings"`
}

type importResponse struct {
	Entries []models.Entry `json:"entries"`
	Success bool           `json:"success"`
}

func (h *handlers) importData(w http.ResponseWriter, r *http.Request) {
	var body importBody
	if err := decodeBody(w, r, &body); err != nil {
		h.fail(w, r, err)
		return
	}

	list, err := h.transfer.Import(r.Context(), models.ImportRequest{
		Entries:  body.Entries,
		Settings: rawSettings(body.Settings),
	})
	h.metrics.ObserveTransfer("import", len(list), err)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, importResponse{Entries: list, Success: true})
}

func (h *handlers) exportData(w http.ResponseWriter, r *http.Request) {
	snap, err := h.transfer.Export(r.Context())
	if err != nil {
		h.metrics.ObserveTransfer("export", 0, err)
		h.fail(w, r, err)
		return
	}
	h.metrics.ObserveTransfer("export", len(snap.Entries), nil)
	writeJSON(w, http.StatusOK, snap)
}

type healthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

func (h *handlers) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:    "ok",
		Timestamp: h.now().UTC().Format(healthTimeLayout),
	})
}

func (h *handlers) apiNotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, errorResponse{Error: "no route for " + r.Method + " " + r.URL.Path})
}
