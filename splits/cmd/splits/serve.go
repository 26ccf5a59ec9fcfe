package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/subsplits/subsplits/splits/internal/api"
	"github.com/subsplits/subsplits/splits/internal/auth"
	"github.com/subsplits/subsplits/splits/internal/ws"
)

func newServeCmd(f *rootFlags) *cobra.Command {
	var runFile string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the board and serve frames over HTTP and websocket",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := loadApp(f.configPath, runFile)
			if err != nil {
				return err
			}
			defer a.src.Close()
			return serve(cmd.Context(), a, f.configPath)
		},
	}
	cmd.Flags().StringVar(&runFile, "run", "", "YAML run document to serve instead of the configured source")
	return cmd
}

func serve(parent context.Context, a *app, configPath string) error {
	cfg := a.cfg
	slog.Info("splits server starting",
		"source", cfg.Source.Type,
		"http_port", cfg.Server.HTTPPort,
		"auth_mode", cfg.Server.Auth.Mode,
		"frame_ttl", cfg.Server.FrameTTL,
	)

	ctx, cancel := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Frame store with background TTL eviction.
	go a.store.Run(ctx)

	hub := ws.New(a.store, cfg.Server.BroadcastInterval)
	go hub.Run(ctx)
	if err := a.rec.TrackClients(hub.Count); err != nil {
		return err
	}
	a.board.OnTick(hub.Notify)

	a.watchConfig(ctx, configPath)
	go a.board.Run(ctx, cfg.RefreshInterval)

	protect := auth.APIKey(cfg.Server.Auth.Mode, cfg.Server.Auth.Header, cfg.Server.Auth.Key())
	mux := http.NewServeMux()
	mux.Handle("/api/", protect(api.New(a.store, a.board.Status)))
	mux.Handle("/ws/frames", protect(hub))
	mux.Handle("/metrics", a.rec.Handler())

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.HTTPPort),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "port", cfg.Server.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errc <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-errc:
		return fmt.Errorf("http server: %w", err)
	}
	slog.Info("splits server shutting down")
	shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
	defer done()
	return srv.Shutdown(shutdownCtx)
}
