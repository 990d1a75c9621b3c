package main

import (
	"database/sql"
	"fmt"
	"os"
	"strings"

	"github.com/Dan9191/customer360/internal/config"
	"github.com/Dan9191/customer360/internal/integrations/feed"
	"github.com/Dan9191/customer360/internal/repository"
	"github.com/Dan9191/customer360/internal/service"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	root := serveCmd()
	root.Use = "customer360"
	root.Short = "Customer 360 communication analytics API"
	root.AddCommand(serveCmd())
	root.AddCommand(reportCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// setup loads configuration and builds the JSON logger
func setup() (*config.Config, *logrus.Logger, error) {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := config.NewConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	logLevel, err := logrus.ParseLevel(strings.ToLower(cfg.LogLevel))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)
	return cfg, logger, nil
}

// openDB connects to postgres and makes sure the schema exists
func openDB(cmd *cobra.Command, cfg *config.Config) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.DBConn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.PingContext(cmd.Context()); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	if err := repository.EnsureSchema(cmd.Context(), db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// recordStore picks the configured source of events, loans, payments and customers
func recordStore(cfg *config.Config, db *sql.DB, logger *logrus.Logger) (service.RecordStore, error) {
	if cfg.RecordSource == config.SourcePostgres {
		return repository.NewPostgresStore(db, cfg, logger)
	}

	store, err := repository.NewFileStore(cfg, logger)
	if err != nil {
		return nil, err
	}
	if cfg.EventsFeedURL != "" {
		store = store.WithFeed(feed.NewClient(cfg, logger))
	}
	return store, nil
}
