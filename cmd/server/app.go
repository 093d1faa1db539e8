package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	apiMiddleware "github.com/phrazzld/task-api/internal/api/middleware"
	"github.com/phrazzld/task-api/internal/config"
	"github.com/phrazzld/task-api/internal/platform/memory"
	"github.com/phrazzld/task-api/internal/platform/postgres"
	"github.com/phrazzld/task-api/internal/service"
	"github.com/phrazzld/task-api/internal/store"
)

// application holds the shared application dependencies and owns their cleanup.
type application struct {
	config *config.Config
	logger *slog.Logger

	// db is nil when the memory driver is configured
	db *sql.DB

	taskStore   store.TaskStore
	taskService service.TaskService
	metrics     *apiMiddleware.Metrics
}

// newApplication wires the store selected by cfg.Database.Driver into the
// task service. For postgres it connects and, if enabled, applies pending
// migrations first.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	app := &application{
		config:  cfg,
		logger:  logger,
		metrics: apiMiddleware.NewMetrics(),
	}

	switch cfg.Database.Driver {
	case config.DriverMemory:
		logger.Warn("using in-memory task store; data is lost on restart and search is substring-based")
		app.taskStore = memory.NewTaskStore(logger)

	case config.DriverPostgres:
		db, err := setupAppDatabase(ctx, cfg.Database, logger)
		if err != nil {
			return nil, err
		}
		app.db = db

		if cfg.Database.AutoMigrate {
			if err := postgres.Migrate(ctx, db, logger, "up"); err != nil {
				app.cleanup()
				return nil, fmt.Errorf("failed to apply migrations: %w", err)
			}
		}
		app.taskStore = postgres.NewPostgresTaskStore(db, logger)

	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}

	taskService, err := service.NewTaskService(app.taskStore, logger)
	if err != nil {
		app.cleanup()
		return nil, fmt.Errorf("failed to create task service: %w", err)
	}
	app.taskService = taskService

	logger.Info("application initialized",
		"driver", cfg.Database.Driver,
		"port", cfg.Server.Port)
	return app, nil
}

// Run serves HTTP until ctx is canceled, then shuts down gracefully.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", "error", err)
		}
	}

	app.logger.Info("application shutdown completed")
}
