// Package server wires the Student Companion backend together: config,
// logging, database and migrations, object storage, the quote source, the
// service layer, and the HTTP API, plus graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/aleksivanovs/studentcompanion/internal/logging"
	"github.com/aleksivanovs/studentcompanion/internal/server/config"
	"github.com/aleksivanovs/studentcompanion/internal/server/filestore"
	"github.com/aleksivanovs/studentcompanion/internal/server/httpapi"
	"github.com/aleksivanovs/studentcompanion/internal/server/quoteapi"
	"github.com/aleksivanovs/studentcompanion/internal/server/repositories/repomanager"
	"github.com/aleksivanovs/studentcompanion/internal/server/services"
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	db      *sql.DB
	manager repomanager.RepositoryManager
	server  *httpapi.Server
}

func NewApp(cfg *config.Config) (*App, error) {
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	manager, err := repomanager.NewPostgresRepositoryManager(db)
	if err != nil {
		return nil, fmt.Errorf("repository manager init error: %w", err)
	}

	files := filestore.NewS3Store(cfg)
	quotes := quoteapi.NewClient(cfg.QuoteAPIBaseURL, cfg.QuoteFetchTimeout)

	svcs := httpapi.Services{
		Users:     services.NewUserService(db, manager, cfg),
		Subjects:  services.NewSubjectService(db, manager),
		Tasks:     services.NewTaskService(db, manager),
		Expenses:  services.NewExpenseService(db, manager),
		Notes:     services.NewNoteService(db, manager, files),
		Quotes:    services.NewQuoteService(db, manager, quotes, cfg.QuoteAPITags),
		Dashboard: services.NewDashboardService(db, manager),
	}

	return &App{
		config:  cfg,
		logger:  logger,
		db:      db,
		manager: manager,
		server:  httpapi.NewServer(cfg, logger, svcs),
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "starting app")

	app.initSignalHandler(cancelFunc)

	if err := app.manager.RunMigrations(ctx, app.db); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	defer func() {
		if err := app.db.Close(); err != nil {
			app.logger.Error(ctx, "error closing db", "error", err.Error())
		}
	}()

	if err := app.server.Run(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	app.logger.Info(ctx, "app stopped")
	return nil
}
