// Command gramcheck-server provides the HTTP API.
//
// Usage:
//
//	gramcheck-server --addr :8080 --backend nara
//	GRAMCHECK_BACKEND=openai OPENAI_API_KEY=... gramcheck-server
//	gramcheck-server --config gramcheck.yaml --corpus corpus.txt
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Alfex4936/gramcheck/internal/app"
	"github.com/Alfex4936/gramcheck/internal/config"
	"github.com/Alfex4936/gramcheck/internal/logging"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		configPath string
		addr       string
		backend    string
		corpus     string
		verbose    bool
	)
	cmd := &cobra.Command{
		Use:          "gramcheck-server",
		Short:        "HTTP API for correction, diff and grammar checks",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}
			if backend != "" {
				cfg.Backend.Name = backend
			}
			if corpus != "" {
				cfg.NGram.CorpusPath = corpus
			}
			level := cfg.Logging.Level
			if verbose {
				level = "debug"
			}
			logger, err := logging.New(level, cfg.Logging.Development)
			if err != nil {
				return err
			}
			defer logger.Sync()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg, logger)
		},
	}
	f := cmd.Flags()
	f.StringVar(&configPath, "config", config.DefaultPath, "config file (YAML)")
	f.StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	f.StringVar(&backend, "backend", "", "correction backend")
	f.StringVar(&corpus, "corpus", "", "reference corpus for /v1/check-grammar")
	f.BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	return cmd
}

// serve runs the API until ctx is canceled, then drains open requests.
func serve(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("startup failed", zap.Error(err))
		return err
	}
	defer a.Close()

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           a.Server().Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info("gramcheck server listening",
			zap.String("addr", cfg.Server.Addr),
			zap.String("backend", cfg.Backend.Name),
			zap.String("policy", string(a.Policy)),
			zap.Duration("request_timeout", cfg.GetRequestTimeout()),
		)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
