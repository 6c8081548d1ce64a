package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fekuna/omnipos-inventory/internal/app"
	"github.com/fekuna/omnipos-inventory/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the HTTP API and, when Kafka is configured, consume purchase requests",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		appLogger := app.NewLogger(cfg)
		defer appLogger.Sync()

		a, err := app.New(cfg, appLogger)
		if err != nil {
			return err
		}
		defer a.Close()
		appLogger.Info("Connected to database", zap.String("driver", cfg.Database.Driver))

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if !a.StartListener(ctx) {
			appLogger.Info("Kafka not configured, purchase listener disabled")
		}

		srv := server.NewServer(a.Handler(), &server.Config{
			Port:         cfg.Server.HTTPPort,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
		})

		errCh := make(chan error, 1)
		go func() {
			appLogger.Info("Starting HTTP server", zap.String("addr", srv.Addr()))
			if err := srv.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
		}()

		var runErr error
		select {
		case runErr = <-errCh:
			appLogger.Error("HTTP server failed", zap.Error(runErr))
		case <-ctx.Done():
			appLogger.Info("Shutting down server...")
		}
		stop()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Stop(shutdownCtx); err != nil {
			appLogger.Error("HTTP server shutdown error", zap.Error(err))
		}
		appLogger.Info("Server stopped")
		return runErr
	},
}
