package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/homewise/affordability/internal/api"
	"github.com/homewise/affordability/internal/calculation"
	"github.com/homewise/affordability/internal/config"
	"github.com/homewise/affordability/internal/domain"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServeCmd(a *app) *cobra.Command {
	var envFiles []string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadServerConfig(a.logger, envFiles...)
			logger := a.logger
			if !cmd.Flags().Changed("log-level") {
				l, err := newLogger(cfg.LogLevel)
				if err != nil {
					return err
				}
				logger = l
				defer logger.Sync()
			}
			return serve(cmd.Context(), cfg, logger)
		},
	}
	cmd.Flags().StringSliceVar(&envFiles, "env-file", nil, "dotenv files to load (default .env)")
	return cmd
}

func serve(ctx context.Context, cfg config.ServerConfig, logger *zap.Logger) error {
	rules := domain.DefaultLendingRules()
	engine := calculation.NewCalculationEngine(rules, nil, logger.Sugar())

	rates := newRateStack(cfg, logger)
	defer rates.Close()

	metrics := api.NewMetrics()
	handler := api.NewHandler(engine, rates.resolver, cfg, logger, metrics)
	if rates.redis != nil {
		handler.AddReadinessCheck("redis", rates.ping)
	}
	server := api.NewServer(cfg, api.NewRouter(handler, cfg, logger, metrics))

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("api listening", zap.String("addr", server.Addr), zap.String("environment", cfg.Environment))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-serverErr:
		return fmt.Errorf("error starting server: %w", err)
	case <-quit:
		logger.Info("shutting down server")
	case <-ctx.Done():
		logger.Info("context cancelled, shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("error during server shutdown: %w", err)
	}
	logger.Info("server exited")
	return nil
}
