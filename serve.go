package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/muhammadolammi/cvmatch/internal/analysis"
	"github.com/muhammadolammi/cvmatch/internal/logging"
	"github.com/muhammadolammi/cvmatch/internal/web"
)

func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the upload form and the analysis API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if err := cfg.requireAPIKey(); err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Addr = addr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address (overrides ADDR)")
	return cmd
}

func serve(ctx context.Context, cfg Config) error {
	logger := logging.Default()

	analyzer, err := analysis.NewAgentAnalyzer(ctx, cfg.GoogleAPIKey, cfg.Model)
	if err != nil {
		return err
	}

	opts, cleanup, err := sideChannels(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	logger.Infof("Starting %d analysis workers", cfg.Workers)
	pool := analysis.StartPool(analyzer, cfg.Workers)
	defer pool.Close()

	svc := analysis.NewService(pool, opts...)
	srv := web.New(svc, cfg.policy()).HTTPServer(cfg.Addr)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", cfg.Addr, "model", cfg.Model)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
