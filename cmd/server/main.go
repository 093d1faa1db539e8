// Package main implements the entry point for the task API server, which
// serves task CRUD and full-text search over HTTP.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/phrazzld/task-api/internal/config"
	"github.com/phrazzld/task-api/internal/platform/logger"
	"github.com/phrazzld/task-api/internal/platform/postgres"
)

// Migration commands accepted by the -migrate flag.
var migrationCommands = map[string]bool{
	"up":      true,
	"down":    true,
	"status":  true,
	"version": true,
	"redo":    true,
	"reset":   true,
}

// options are the command-line flags.
type options struct {
	envFile    string
	migrateCmd string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stderr); err != nil {
		slog.Error("task API exited with error", "error", err)
		os.Exit(1)
	}
}

// run parses flags, loads configuration and either executes a migration
// command or serves HTTP until ctx is canceled.
func run(ctx context.Context, args []string, stderr io.Writer) error {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	cfg, err := loadAppConfig(opts.envFile)
	if err != nil {
		return err
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	if opts.migrateCmd != "" {
		return runMigrationCommand(ctx, cfg, log, opts.migrateCmd)
	}

	app, err := newApplication(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	return app.Run(ctx)
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options

	fs := flag.NewFlagSet("task-api", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.envFile, "env-file", config.DefaultEnvFile, "dotenv file loaded before reading the environment")
	fs.StringVar(&opts.migrateCmd, "migrate", "", "run a migration command (up, down, status, version, redo, reset) and exit")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if opts.migrateCmd != "" && !migrationCommands[opts.migrateCmd] {
		return options{}, fmt.Errorf("unknown migration command %q", opts.migrateCmd)
	}
	return opts, nil
}

func loadAppConfig(envFile string) (*config.Config, error) {
	cfg, err := config.LoadWithEnvFile(envFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

// runMigrationCommand opens the configured database and applies command.
func runMigrationCommand(ctx context.Context, cfg *config.Config, log *slog.Logger, command string) error {
	if cfg.Database.Driver != config.DriverPostgres {
		return errors.New("migrations require the postgres driver")
	}

	db, err := setupAppDatabase(ctx, cfg.Database, log)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			log.Error("failed to close database connection", "error", closeErr)
		}
	}()

	log.Info("executing migration command", "command", command)
	return postgres.Migrate(ctx, db, log, command)
}
