package httpserver

import (
	"errors"
	"io/fs"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/dmitrijs2005/worktime/internal/logging"
	"github.com/dmitrijs2005/worktime/internal/metrics"
)

// Options wires the router. Metrics may be nil; an empty StaticDir disables
// frontend serving.
type Options struct {
	Entries   EntryService
	Settings  SettingsService
	Transfer  TransferService
	Metrics   *metrics.Metrics
	Logger    logging.Logger
	StaticDir string
}

// NewRouter returns the complete HTTP handler: API routes, /metrics, the
// optional frontend and the middleware chain.
func NewRouter(o Options) http.Handler {
	h := &handlers{
		entries:  o.Entries,
		settings: o.Settings,
		transfer: o.Transfer,
		metrics:  o.Metrics,
		logger:   o.Logger,
		now:      time.Now,
	}
	return h.routes(o)
}

func (h *handlers) routes(o Options) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/entries", h.listEntries)
	mux.HandleFunc("POST /api/entries", h.createEntry)
	mux.HandleFunc("PUT /api/entries/{id}", h.updateEntry)
	mux.HandleFunc("DELETE /api/entries/{id}", h.deleteEntry)

	mux.HandleFunc("GET /api/settings", h.getSettings)
	mux.HandleFunc("POST /api/settings", h.saveSettings)

	mux.HandleFunc("POST /api/import", h.importData)
	mux.HandleFunc("GET /api/export", h.exportData)

	mux.HandleFunc("GET /api/health", h.health)
	mux.HandleFunc("GET /api/", h.apiNotFound)

	mux.Handle("GET /metrics", o.Metrics.Handler())

	if o.StaticDir != "" {
		mux.Handle("GET /", spaHandler(o.StaticDir))
	}

	var handler http.Handler = mux
	handler = withMetrics(o.Metrics, handler)
	handler = withCORS(handler)
	handler = withLogging(o.Logger, handler)
	handler = withRequestID(handler)
	handler = withRecover(o.Logger, handler)
	return handler
}

// spaHandler serves files from dir and falls back to dir/index.html for any
// path that does not name a regular file, so client-side routes resolve.
func spaHandler(dir string) http.Handler {
	files := http.FileServer(http.Dir(dir))
	index := filepath.Join(dir, "index.html")

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := filepath.Join(dir, filepath.FromSlash(path.Clean("/"+r.URL.Path)))
		fi, err := os.Stat(name)
		if err == nil && !fi.IsDir() {
			files.ServeHTTP(w, r)
			return
		}
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		http.ServeFile(w, r, index)
	})
}
