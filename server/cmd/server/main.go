package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/buildhealth/buildhealth/server/internal/alerts"
	"github.com/buildhealth/buildhealth/server/internal/api"
	"github.com/buildhealth/buildhealth/server/internal/auth"
	"github.com/buildhealth/buildhealth/server/internal/config"
	"github.com/buildhealth/buildhealth/server/internal/metrics"
	"github.com/buildhealth/buildhealth/server/internal/receiver"
	"github.com/buildhealth/buildhealth/server/internal/store"
	"github.com/buildhealth/buildhealth/server/internal/ws"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	uiDir := flag.String("ui-dir", "", "serve dashboard static files from this directory; leave empty to disable")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	slog.Info("buildhealth-server starting", "config", *configPath)

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}

	slog.Info("config loaded",
		"http_port", cfg.Server.HTTPPort,
		"auth_mode", cfg.Server.Auth.Mode,
		"summary_ttl", cfg.Server.Summary.TTL,
	)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Summary store with background TTL eviction.
	st := store.New(cfg.Server.Summary.TTL)
	go st.Run(ctx)

	// Alert engine, evaluates rules on every incoming summary.
	alertEngine := alerts.New(cfg.Server.Alerts)

	// /api/v1/summaries is both the ingest path (POST, receiver) and a
	// read path (GET, api handler); dispatch on the method.
	apiHandler := api.New(st, alertEngine)
	ingest := receiver.New(st, alertEngine)
	apiDispatch := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/v1/summaries" && r.Method == http.MethodPost {
			ingest.ServeHTTP(w, r)
			return
		}
		apiHandler.ServeHTTP(w, r)
	})

	withAuth := auth.APIKeyMiddleware(
		cfg.Server.Auth.Mode,
		cfg.Server.Auth.EffectiveHeader(),
		cfg.Server.Auth.Key(),
	)

	// WebSocket hub, broadcasts dashboard state to UI clients every 5s.
	hub := ws.New(st, 5*time.Second)
	go hub.Run(ctx)

	httpMux := http.NewServeMux()
	httpMux.Handle("/api/", withAuth(apiDispatch))
	httpMux.Handle("/ws/stream", hub)
	httpMux.Handle("/metrics", metrics.New(st))

	// Optional: serve a pre-built dashboard UI from a local directory.
	// The "/" catch-all serves index.html for any unknown path (SPA routing).
	if *uiDir != "" {
		fs := http.FileServer(http.Dir(*uiDir))
		httpMux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
			path := *uiDir + r.URL.Path
			if _, err := os.Stat(path); os.IsNotExist(err) {
				http.ServeFile(w, r, *uiDir+"/index.html")
				return
			}
			fs.ServeHTTP(w, r)
		})
		slog.Info("serving UI static files", "dir", *uiDir)
	}

	httpSrv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.HTTPPort),
		Handler: httpMux,
	}
	go func() {
		slog.Info("HTTP server listening", "port", cfg.Server.HTTPPort)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server stopped", "err", err)
		}
	}()

	<-ctx.Done()
	slog.Info("buildhealth-server shutting down")
	httpSrv.Shutdown(context.Background()) //nolint:errcheck
}
