package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/gyaneshwarpardhi/opsdash/internal/action"
	"github.com/gyaneshwarpardhi/opsdash/internal/api"
	"github.com/gyaneshwarpardhi/opsdash/internal/config"
	"github.com/gyaneshwarpardhi/opsdash/internal/engine"
	"github.com/gyaneshwarpardhi/opsdash/internal/fixtures"
	"github.com/gyaneshwarpardhi/opsdash/internal/hierarchy"
	"github.com/gyaneshwarpardhi/opsdash/internal/layout"
	"github.com/gyaneshwarpardhi/opsdash/internal/store"
)

func newServeCmd(cfgPath *string) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			loader, err := loadConfig(*cfgPath)
			if err != nil {
				return err
			}
			return serve(cmd.Context(), loader, addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "HTTP listen address (overrides server.addr)")
	return cmd
}

// openStore seeds a store from the configured fixtures.
func openStore(cfg *config.Config) (*store.Store, error) {
	seed, err := fixtures.Load(cfg.FixturesPath)
	if err != nil {
		return nil, err
	}
	if err := fixtures.Validate(seed, cfg.Layout.OnDanglingParent); err != nil {
		return nil, err
	}
	slog.Info("store seeded",
		"records", len(seed.Records),
		"tasks", len(seed.Tasks),
		"columns", len(seed.Kanban),
		"forms", len(seed.Forms),
		"emails", len(seed.Emails),
		"conversations", len(seed.Chat.Conversations),
	)
	return store.New(seed), nil
}

func serve(parent context.Context, loader *config.Loader, addr string) error {
	cfg := loader.Config()
	if addr == "" {
		addr = cfg.Server.Addr
	}

	s, err := openStore(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ── Engine ────────────────────────────────────────────────────────────────
	workCtx, cancel := context.WithCancel(context.Background())
	defer cancel()
	layouts := layout.NewEngine(cfg.Layout.Settings())
	reg := action.Builtin(action.WithDanglingPolicy(func() hierarchy.DanglingPolicy {
		return layouts.Settings().OnDanglingParent
	}))
	eng := engine.New(workCtx, s, reg, cfg.Engine)
	slog.Info("engine started", "kinds", len(reg.Kinds()), "queue_depth", cfg.Engine.QueueDepth)

	// ── Hot-reload watcher ────────────────────────────────────────────────────
	loader.OnChange(func(c *config.Config) {
		layouts.Swap(c.Layout.Settings())
		setupLogger(c)
		slog.Info("config hot-reloaded", "on_dangling_parent", c.Layout.OnDanglingParent, "profiles", len(c.Layout.Profiles))
	})
	if loader.Path() != "" {
		stopWatch, err := loader.Watch()
		if err != nil {
			slog.Warn("config watcher unavailable (hot-reload disabled)", "err", err)
		} else {
			defer stopWatch()
		}
	}

	// ── HTTP server ───────────────────────────────────────────────────────────
	srv := &http.Server{
		Addr:         addr,
		Handler:      api.New(eng, layouts, loader),
		ReadTimeout:  cfg.Server.ReadTimeout(),
		WriteTimeout: cfg.Server.WriteTimeout(),
		IdleTimeout:  60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("server starting", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down…")
		shutCtx, shutCancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer shutCancel()
		return srv.Shutdown(shutCtx)
	})
	err = g.Wait()

	eng.Shutdown()
	slog.Info("goodbye")
	return err
}
