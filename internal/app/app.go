// Package app initializes and runs the sync daemon. It opens the database,
// applies migrations, assembles the engine from its parts and keeps it
// running until an OS signal or context cancellation stops it.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/disasterpulse/datasync/internal/attachments"
	"github.com/disasterpulse/datasync/internal/config"
	"github.com/disasterpulse/datasync/internal/engine"
	"github.com/disasterpulse/datasync/internal/enrichment"
	"github.com/disasterpulse/datasync/internal/logging"
	"github.com/disasterpulse/datasync/internal/reliefweb"
	"github.com/disasterpulse/datasync/internal/repositories/repomanager"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	engine *engine.Engine
}

func NewApp(c *config.Config) (*App, error) {

	slogger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(slogger)

	db, err := sql.Open("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	repos := repomanager.NewPostgresManager()
	if err := repos.RunMigrations(context.Background(), db); err != nil {
		return nil, fmt.Errorf("db migration error: %w", err)
	}

	source := reliefweb.NewClient(c.ReliefWebAPIURL, c.ReliefWebAppName, c.RequestTimeout)
	policy := engine.NewConstantPolicy(c.StatusErrorDelay)

	reconciler := engine.NewReconciler(db, repos, source, policy, logger,
		[]int64{c.ContentFormatSituationReport, c.ContentFormatMap}, c.ReportLimit)
	sweeper := engine.NewSweeper(db, repos, c.RetentionPeriod, logger)

	var dispatcher engine.Dispatcher = engine.NopDispatcher{}
	if c.EnrichmentEnabled {
		ec := enrichment.NewClient(c.APIBaseURL, c.EnrichmentTimeout)
		dispatcher = engine.NewEnrichmentDispatcher(ec, c.AnalysisKinds, c.AnalysisLanguages, logger)
	}

	var mirror engine.Mirror = engine.NopMirror{}
	if c.MirrorEnabled {
		m, err := attachments.NewMirror(c, logger)
		if err != nil {
			return nil, fmt.Errorf("mirror init error: %w", err)
		}
		mirror = m
	}

	eng := engine.NewEngine(source, reconciler, sweeper, dispatcher, mirror,
		policy, logger, c.DisasterLimit, c.SyncInterval)

	return &App{config: c, logger: logger, db: db, engine: eng}, nil
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

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting sync daemon...")

	app.initSignalHandler(cancelFunc)

	if err := app.engine.Run(ctx); err != nil {
		app.logger.Info(ctx, "sync daemon stopped", "reason", err.Error())
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err.Error())
	}
}
