package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/wws/adminconsole/internal/adminclient"
	"github.com/wws/adminconsole/internal/api"
	"github.com/wws/adminconsole/internal/config"
	"github.com/wws/adminconsole/internal/console"
	"github.com/wws/adminconsole/internal/health"
	"github.com/wws/adminconsole/internal/metrics"
)

const shutdownTimeout = 15 * time.Second

func main() {
	configPath := flag.String("config", "", "path to configuration file (optional; WWS_* environment variables apply either way)")
	flag.Parse()

	slog.Info("wws admin console starting...")

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}
	slog.Info("configuration loaded", "path", *configPath, "api", cfg.API.Redacted())
	if cfg.API.Token == config.DefaultToken {
		slog.Warn("using the development API token, set WWS_API_TOKEN for real deployments")
	}

	// Initialize components
	m := metrics.New()
	client := adminclient.New(&cfg.API, adminclient.WithRecorder(m))
	features := client.Features()
	slog.Info("admin client configured", "devices_feature", features.Devices, "limits_feature", features.Limits)
	hc := health.NewChecker(client, m, cfg.HealthCheck)

	ctrl := console.New(client,
		console.WithActionRecorder(m),
		console.WithStatsHook(func(st *adminclient.AdminStats) {
			m.UpdateTenantUsage(tenantUsage(st))
		}),
	)

	// First stats load runs in the background; the dashboard shows a
	// skeleton until it finishes.
	go ctrl.LoadStats(context.Background())

	// Start console server
	apiServer := api.NewServer(ctrl, hc, m, cfg.Listen, cfg.Display)
	if err := apiServer.Start(); err != nil {
		slog.Error("failed to start console server", "err", err)
		os.Exit(1)
	}

	// Set up config hot-reload of display settings
	var configWatcher *config.Watcher
	if *configPath != "" {
		configWatcher, err = config.NewWatcher(*configPath, func(newCfg *config.Config) {
			slog.Info("reloading display settings...")
			apiServer.SetDisplay(newCfg.Display)
		})
		if err != nil {
			slog.Warn("config hot-reload not available", "err", err)
		}
	}

	slog.Info("wws admin console ready", "bind", cfg.Listen.Bind, "port", cfg.Listen.Port)

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	slog.Info("received signal, shutting down...", "signal", sig)

	// Graceful shutdown with timeout
	done := make(chan struct{})
	go func() {
		if configWatcher != nil {
			configWatcher.Stop()
		}
		apiServer.Stop()
		close(done)
	}()

	select {
	case <-done:
		slog.Info("wws admin console stopped")
	case <-time.After(shutdownTimeout):
		slog.Error("shutdown timed out, forcing exit", "timeout", shutdownTimeout)
		os.Exit(1)
	}
}

func tenantUsage(st *adminclient.AdminStats) []metrics.TenantUsage {
	usage := make([]metrics.TenantUsage, 0, len(st.Tenants))
	for _, t := range st.Tenants {
		usage = append(usage, metrics.TenantUsage{
			TenantID:    t.ID,
			Slug:        t.Slug,
			UserCount:   t.UserCount,
			DeviceCount: t.DeviceCount,
		})
	}
	return usage
}
