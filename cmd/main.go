// cmd/main.go is the application entry point.
// It wires together all layers behind a cobra command tree; running the
// binary with no subcommand starts the HTTP server.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/Shivanand-hulikatti/pitchside-boards/internal/clock"
	"github.com/Shivanand-hulikatti/pitchside-boards/internal/config"
	"github.com/Shivanand-hulikatti/pitchside-boards/internal/database"
	"github.com/Shivanand-hulikatti/pitchside-boards/internal/model"
	"github.com/Shivanand-hulikatti/pitchside-boards/internal/repository"
	"github.com/Shivanand-hulikatti/pitchside-boards/internal/service"
	"github.com/Shivanand-hulikatti/pitchside-boards/migrations"
	"github.com/spf13/cobra"
)

var (
	cfg    config.Config
	logger = log.Default()
)

var rootCmd = &cobra.Command{
	Use:           "pitchside",
	Short:         "Pitch-side advertising board registry",
	Long:          "Tracks the advertising boards around the ground, their sponsors and contracts.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("config: %w", err)
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// openService connects the configured store, applies migrations, seeds the
// catalogue into an empty store and returns the board service. The returned
// func releases the store.
func openService(ctx context.Context) (*service.BoardService, func(), error) {
	var (
		repo    service.BoardRepository
		cleanup = func() {}
	)

	switch cfg.Store {
	case config.StorePostgres:
		pool, err := database.NewPool(ctx, cfg.DB, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("database: %w", err)
		}
		if err := migrations.Apply(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("migrations: %w", err)
		}
		repo, cleanup = repository.NewBoardRepository(pool), pool.Close
		logger.Println("✓ Connected to PostgreSQL")

	case config.StoreSQLite:
		db, err := database.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("sqlite: %w", err)
		}
		repo, cleanup = repository.NewSQLiteBoardRepository(db), func() { db.Close() }
		logger.Printf("✓ Opened SQLite store at %s", cfg.SQLitePath)

	default:
		repo = repository.NewMemoryBoardRepository()
		logger.Println("✓ Using in-memory store")
	}

	svc := service.NewBoardService(repo, clock.NewSystem(),
		service.WithRenewalWindow(cfg.RenewalWindowDuration()),
		service.WithLogger(logger),
	)
	if _, err := svc.Seed(ctx, model.DefaultCatalogue()); err != nil {
		cleanup()
		return nil, nil, err
	}
	return svc, cleanup, nil
}

// openPersistentService is openService for the one-shot commands. They exit
// as soon as they finish, so an in-memory store would only ever show the
// freshly seeded catalogue.
func openPersistentService(ctx context.Context) (*service.BoardService, func(), error) {
	if cfg.Store == config.StoreMemory {
		return nil, nil, fmt.Errorf("this command needs a persistent store; set BOARDS_STORE=%s or %s",
			config.StoreSQLite, config.StorePostgres)
	}
	return openService(ctx)
}
