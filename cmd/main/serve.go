package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

func newServeCmd(opts *cliOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve <window-length> <corpus>",
		Short: "Train on a corpus and serve the model over HTTP",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := LoadConfig(opts.configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				config.ServerAddr = opts.addr
			}
			model, err := loadModel(args[0], args[1], config)
			if err != nil {
				return err
			}

			logger := newLogger(config)
			mux := http.NewServeMux()
			NewModelAPI(model, config.Generation, logger).RegisterRoutes(mux)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, &http.Server{Addr: config.ServerAddr, Handler: mux}, logger)
		},
	}
	cmd.Flags().StringVar(&opts.addr, "addr", "", "listen address (overrides server_addr)")
	return cmd
}

// serve runs srv until ctx is done, then shuts it down gracefully.
func serve(ctx context.Context, srv *http.Server, logger *slog.Logger) error {
	errChan := make(chan error, 1)
	go func() {
		logger.Info("Starting charchain api server", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
		close(errChan)
	}()

	select {
	case err, ok := <-errChan:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Stopping server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Api server shutdown failed", "error", err)
		return err
	}
	logger.Info("HTTP server stopped.")
	return nil
}
