package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/samber/do"
	"golang.org/x/sync/errgroup"

	"github.com/zhouzirui/campaign-concierge/backend/internal/config"
	"github.com/zhouzirui/campaign-concierge/backend/internal/logging"
	"github.com/zhouzirui/campaign-concierge/backend/internal/service/delivery"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logging.Preinit()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file loaded, continuing with system environment variables", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logCloser, err := logging.Setup(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		slog.Error("failed to set up logging", "error", err)
		os.Exit(1)
	}
	defer logCloser.Close()

	di := newContainer(ctx, cfg)
	defer func() {
		if err := di.Shutdown(); err != nil {
			slog.Warn("container shutdown failed", "error", err)
		}
	}()

	router, err := do.Invoke[http.Handler](di)
	if err != nil {
		slog.Error("failed to wire services", "error", err)
		os.Exit(1)
	}

	if err := startServer(ctx, cfg.Server, router); err != nil {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}

	do.MustInvoke[*delivery.Scheduler](di).Wait()
	slog.Info("campaign concierge stopped")
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) error {
	srv := &http.Server{
		Addr:              serverCfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("campaign concierge listening", "addr", serverCfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
