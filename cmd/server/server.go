package main

import (
	"context"
	"io"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/thanhnp/tron-block-api/internal/api"
	"github.com/thanhnp/tron-block-api/internal/apperr"
	"github.com/thanhnp/tron-block-api/internal/config"
	"github.com/thanhnp/tron-block-api/internal/logger"
	"github.com/thanhnp/tron-block-api/internal/metrics"
	"github.com/thanhnp/tron-block-api/internal/processor"
	"github.com/thanhnp/tron-block-api/internal/rpc/tron"
	"github.com/thanhnp/tron-block-api/pkg/semver"
)

const shutdownTimeout = 30 * time.Second

// run wires the service from cfg and serves until ctx is cancelled or
// SIGINT/SIGTERM is received.
func run(ctx context.Context, cfg *config.Config, out io.Writer) error {
	log, err := logger.New(logger.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Writer: out,
	})
	if err != nil {
		return apperr.Wrap(apperr.ConfigError, "invalid log configuration", err)
	}

	ver, err := semver.Parse(Version)
	if err != nil {
		return apperr.Wrap(apperr.ConfigError, "invalid build version", err)
	}
	if !ver.IsRelease() {
		log.Warn("Running a prerelease build", "version", ver.String())
	}

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New()
	}

	client := tron.NewClient(tron.ClientConfig{
		BaseURL:     cfg.Node.URL,
		Endpoint:    cfg.Node.Endpoint,
		Timeout:     cfg.Node.Timeout(),
		MaxRetries:  cfg.Node.MaxRetries,
		BackoffUnit: cfg.Node.Backoff(),
		APIKey:      cfg.Node.APIKey,
		Headers:     cfg.Node.Headers,
	}, log, tron.WithMetrics(m))

	router := api.NewRouter(api.Dependencies{
		Client:    client,
		Processor: processor.New(log, processor.WithBase58Addresses(cfg.Format.Base58Addresses)),
		Logger:    log,
		Metrics:   m,
		Version:   ver.String(),
	})

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router.Engine(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: worstCaseLatency(cfg.Node) + 10*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("HTTP server listening", "addr", server.Addr, "node", client.URL(), "version", ver.String())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "http server")
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("Shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	err = g.Wait()
	log.Info("Server stopped")
	return err
}

// worstCaseLatency is the longest a single node fetch can take: every attempt
// timing out plus the linear backoff between them.
func worstCaseLatency(node config.NodeConfig) time.Duration {
	retries := time.Duration(node.MaxRetries)
	return node.Timeout()*(retries+1) + node.Backoff()*retries*(retries+1)/2
}
