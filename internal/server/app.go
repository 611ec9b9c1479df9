// Package server wires the worktime server together: logger, storage,
// services and the HTTP and gRPC listeners, with graceful shutdown on
// SIGINT/SIGTERM.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/worktime/internal/logging"
	"github.com/dmitrijs2005/worktime/internal/metrics"
	"github.com/dmitrijs2005/worktime/internal/server/config"
	"github.com/dmitrijs2005/worktime/internal/server/httpserver"
	"github.com/dmitrijs2005/worktime/internal/server/services"
	"github.com/dmitrijs2005/worktime/internal/server/storage"

	gs "github.com/dmitrijs2005/worktime/internal/server/grpc"
)

type App struct {
	config   *config.Config
	logger   logging.Logger
	closeLog func() error
	storage  *storage.Storage
	metrics  *metrics.Metrics

	entryService    *services.EntryService
	settingsService *services.SettingsService
	transferService *services.TransferService
}

// NewApp opens the logger and the database (applying migrations) and builds
// the services. The App owns both and releases them when Run returns.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger, closeLog, err := logging.New(logging.Options{
		Backend: c.LogBackend,
		Level:   c.LogLevel,
		File:    c.LogFile,
	})
	if err != nil {
		return nil, fmt.Errorf("logger init error: %w", err)
	}

	st, err := storage.Open(ctx, c.DatabaseDSN, logger)
	if err != nil {
		_ = closeLog()
		return nil, fmt.Errorf("db init error: %w", err)
	}

	return &App{
		config:          c,
		logger:          logger,
		closeLog:        closeLog,
		storage:         st,
		metrics:         metrics.New(),
		entryService:    services.NewEntryService(st.DB, st.Repos, logger),
		settingsService: services.NewSettingsService(st.DB, st.Repos, logger),
		transferService: services.NewTransferService(st.DB, st.Repos, logger),
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	router := httpserver.NewRouter(httpserver.Options{
		Entries:   app.entryService,
		Settings:  app.settingsService,
		Transfer:  app.transferService,
		Metrics:   app.metrics,
		Logger:    app.logger,
		StaticDir: app.config.StaticDir,
	})

	s := httpserver.NewHTTPServer(app.config.HTTPAddr, router, app.logger, app.config.ShutdownTimeout)
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := gs.NewGRPCServer(app.config.GRPCAddr, app.storage.DB, app.logger)
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run blocks until ctx is cancelled, a signal arrives or a listener fails.
// All listeners are stopped before the database is closed.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	if app.config.GRPCAddr != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			app.startGRPCServer(ctx, cancelFunc)
		}()
	}

	wg.Wait()

	if err := app.storage.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err)
	}
	app.logger.Info(ctx, "App stopped")
	_ = app.closeLog()
}
