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
	"golang.org/x/sync/errgroup"

	"github.com/backyonatan-alt/atlas/backend/internal/cache"
	"github.com/backyonatan-alt/atlas/backend/internal/fetcher"
	"github.com/backyonatan-alt/atlas/backend/internal/pipeline"
	"github.com/backyonatan-alt/atlas/backend/internal/scheduler"
	"github.com/backyonatan-alt/atlas/backend/internal/server"
	"github.com/backyonatan-alt/atlas/backend/internal/service"
	"github.com/backyonatan-alt/atlas/backend/internal/store"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context())
		},
	}
}

func serve(parent context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := store.Open(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		return err
	}

	catalog := cache.New()
	p := pipeline.New(fetcher.New(cfg), catalog)

	// Run the catalog refresh once on startup. A failed fetch still leaves
	// the fallback catalog installed.
	slog.Info("running initial catalog refresh")
	if err := p.Run(ctx); err != nil {
		slog.Error("initial catalog refresh failed", "error", err)
	}

	sched := scheduler.New("catalog", p, cfg.Catalog.RefreshInterval.Duration)

	srv := server.New(cfg, catalog, db,
		service.NewCounter(db),
		service.NewSaves(db),
		service.NewProfiles(db),
	)
	httpServer := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      srv.Router(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("server starting", "port", cfg.Server.Port, "driver", db.Dialect())
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		sched.Start(gctx)
		return nil
	})

	// Graceful shutdown
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down")

		sched.Stop()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown error", "error", err)
			return err
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	slog.Info("shutdown complete")
	return nil
}
