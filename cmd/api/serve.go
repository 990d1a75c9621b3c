package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/Dan9191/customer360/internal/digest"
	"github.com/Dan9191/customer360/internal/handler"
	"github.com/Dan9191/customer360/internal/repository"
	"github.com/Dan9191/customer360/internal/service"
	"github.com/Dan9191/customer360/internal/utils/email"
	"github.com/spf13/cobra"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}

			db, err := openDB(cmd, cfg)
			if err != nil {
				logger.Errorf("Database unavailable: %v", err)
				return err
			}
			defer db.Close()

			// Initialize layers
			records, err := recordStore(cfg, db, logger)
			if err != nil {
				return err
			}
			svc, err := service.NewService(records, repository.NewRepository(db), logger, cfg)
			if err != nil {
				return err
			}
			r := handler.NewRouter(handler.NewHandler(svc, logger), cfg, logger)

			scheduler, err := digest.NewScheduler(cfg, svc, email.NewSender(cfg, logger), logger)
			switch {
			case errors.Is(err, digest.ErrDisabled):
				logger.Info("Daily digest disabled")
			case err != nil:
				return err
			default:
				scheduler.Start()
				defer scheduler.Stop()
			}

			// Start server
			addr := fmt.Sprintf(":%s", cfg.Port)
			server := &http.Server{
				Addr:         addr,
				Handler:      r,
				ReadTimeout:  10 * time.Second,
				WriteTimeout: 10 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			errCh := make(chan error, 1)
			go func() {
				logger.Infof("Starting server on %s (records: %s)", addr, cfg.RecordSource)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			select {
			case err := <-errCh:
				if err != nil {
					logger.Errorf("Server failed: %v", err)
					return err
				}
				return nil
			case <-ctx.Done():
			}

			logger.Info("Shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	}
}
