package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/Shivanand-hulikatti/pitchside-boards/internal/handler"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API and the renewal sweeper",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}
	// Cancelled on SIGINT or SIGTERM.
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ── 1. Open the store and seed the catalogue ─────────────────────────
	svc, closeStore, err := openService(ctx)
	if err != nil {
		return err
	}
	defer closeStore()

	// ── 2. Background renewal sweep ──────────────────────────────────────
	sweepDone := make(chan struct{})
	go func() {
		defer close(sweepDone)
		svc.RunRenewalSweeper(ctx, cfg.SweepInterval)
	}()

	// ── 3. Build the router ──────────────────────────────────────────────
	if cfg.StaffToken == "" {
		logger.Println("WARN: STAFF_TOKEN is empty; staff routes are open")
	}
	router := handler.NewRouter(handler.NewBoardHandler(svc, logger), handler.RouterConfig{
		CORSOrigins: cfg.CORSOrigins,
		StaffToken:  cfg.StaffToken,
		Logger:      logger,
	})

	// ── 4. Start server with graceful shutdown ───────────────────────────
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Printf("✓ Server listening on http://localhost:%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			stop()
			<-sweepDone
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
	}

	logger.Println("shutting down server…")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	<-sweepDone
	logger.Println("server stopped")
	return nil
}
