// Package main provides the entry point for gridmatch-server.
//
// gridmatch-server is the lobby and matchmaking service for GridMatch,
// a two-player turn-based grid game backend.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/yndnr/gridmatch-go/internal/core/service"
	"github.com/yndnr/gridmatch-go/internal/infra/buildinfo"
	"github.com/yndnr/gridmatch-go/internal/infra/confloader"
	"github.com/yndnr/gridmatch-go/internal/infra/shutdown"
	"github.com/yndnr/gridmatch-go/internal/infra/tlsroots"
	"github.com/yndnr/gridmatch-go/internal/server/config"
	"github.com/yndnr/gridmatch-go/internal/server/httpserver"
	"github.com/yndnr/gridmatch-go/internal/server/localserver"
	"github.com/yndnr/gridmatch-go/internal/storage/memory"
	"github.com/yndnr/gridmatch-go/internal/telemetry/logger"
	"github.com/yndnr/gridmatch-go/internal/telemetry/metric"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Parse command line flags
	var (
		configFile  = flag.String("config", "", "Path to configuration file")
		showVersion = flag.Bool("version", false, "Show version information")
	)
	flag.Parse()

	// Show version and exit
	if *showVersion {
		fmt.Printf("gridmatch-server %s\n", buildinfo.String())
		return nil
	}

	// Load configuration
	cfg, err := loadConfig(*configFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// Initialize logger
	log, err := initLogger(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	log.Info("starting gridmatch-server",
		"version", buildinfo.Version,
		"commit", buildinfo.Commit,
		"config", *configFile)

	// Metrics registry
	metrics := metric.New()

	// Lobby registry
	store := memory.New()
	metrics.RegisterStats(store)

	// Domain services
	tokens, err := service.NewTokenService(&service.TokenServiceConfig{
		Secret: cfg.Auth.TokenSecret,
		Issuer: cfg.Auth.Issuer,
		TTL:    cfg.Auth.TokenTTL,
	})
	if err != nil {
		return fmt.Errorf("init token service: %w", err)
	}

	lobbies := service.NewLobbyService(store, tokens, metrics, &service.LobbyServiceConfig{
		CodeLength:  cfg.Lobby.CodeLength,
		CodeRetries: cfg.Lobby.CodeRetries,
		Grace:       cfg.Lobby.Grace,
	})

	router := service.NewRouter(store, tokens, lobbies, log, metrics, &service.RouterConfig{
		BufferSize: cfg.Limits.EventBuffer,
		EventRate:  cfg.Limits.EventRate,
		EventBurst: cfg.Limits.EventBurst,
	})

	lifecycle := service.NewLifecycle(store, router, log, metrics, &service.LifecycleConfig{
		Interval:  cfg.Lobby.SweepInterval,
		Retention: cfg.Lobby.Retention,
		Idle:      cfg.Lobby.Idle,
	})

	// Lifecycle sweeper
	sweepCtx, stopSweeper := context.WithCancel(context.Background())
	go lifecycle.Run(sweepCtx)

	// HTTP control plane
	httpRouter, httpHandler := httpserver.NewRouter(&httpserver.RouterConfig{
		Lobbies:     lobbies,
		Stats:       store,
		Conns:       router,
		Logger:      log,
		Metrics:     metrics,
		RateLimit:   cfg.Limits.HTTPRate,
		RateBurst:   cfg.Limits.HTTPBurst,
		EnableAudit: true,
	})
	httpServer := httpserver.New(cfg.Server.HTTP.Addr, httpRouter)

	// Local management plane
	localHandler := localserver.NewHandler(store, store, lifecycle, httpHandler.Drain)
	localServer := localserver.New(cfg.Server.Local.Path, localHandler, log)

	// Config hot reload: adjust log level at runtime
	stopWatcher, err := watchConfig(*configFile, log)
	if err != nil {
		log.Warn("config watcher disabled", "error", err)
	}

	// Setup graceful shutdown
	shutdownHandler := shutdown.NewHandler(30 * time.Second)

	shutdownHandler.OnShutdown(func(ctx context.Context) error {
		log.Info("shutting down HTTP server")
		return httpServer.Shutdown(ctx)
	})

	shutdownHandler.OnShutdown(func(ctx context.Context) error {
		log.Info("shutting down local server")
		return localServer.Shutdown(ctx)
	})

	shutdownHandler.OnShutdown(func(_ context.Context) error {
		log.Info("stopping lifecycle sweeper")
		stopSweeper()
		if stopWatcher != nil {
			stopWatcher()
		}
		return nil
	})

	// TLS certificates reload on change when configured.
	var certWatcher *tlsroots.Watcher
	if cfg.Server.HTTP.TLSCertFile != "" && cfg.Server.HTTP.TLSKeyFile != "" {
		certWatcher, err = tlsroots.NewWatcher(
			cfg.Server.HTTP.TLSCertFile,
			cfg.Server.HTTP.TLSKeyFile,
			tlsroots.WithLogger(slog.Default()),
		)
		if err != nil {
			return fmt.Errorf("load TLS certificate: %w", err)
		}
		certWatcher.StartAsync()

		shutdownHandler.OnShutdown(func(_ context.Context) error {
			certWatcher.Stop()
			return nil
		})
	}

	// Start servers
	go func() {
		log.Info("HTTP server listening", "addr", cfg.Server.HTTP.Addr, "tls", certWatcher != nil)

		var err error
		if certWatcher != nil {
			err = httpServer.ListenAndServeTLSDynamic(certWatcher.GetCertificate)
		} else {
			err = httpServer.ListenAndServe()
		}

		if err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error", "error", err)
		}
	}()

	go func() {
		log.Info("local management server listening", "path", cfg.Server.Local.Path)
		if err := localServer.ListenAndServe(); err != nil {
			log.Error("local server error", "error", err)
		}
	}()

	// Wait for shutdown signal
	log.Info("server started, press Ctrl+C to stop")
	if err := shutdownHandler.Wait(); err != nil {
		log.Error("shutdown error", "error", err)
		return err
	}

	log.Info("server stopped gracefully")
	return nil
}

// loadConfig loads configuration from file and environment.
func loadConfig(configFile string) (*config.ServerConfig, error) {
	// Start with defaults
	cfg := config.Default()

	// Create loader with optional config file
	opts := []confloader.Option{}
	if configFile != "" {
		opts = append(opts, confloader.WithConfigFile(configFile))
	}

	loader := confloader.NewLoader(opts...)

	// Load and unmarshal
	if err := loader.Load(cfg); err != nil {
		return nil, err
	}

	// Validate configuration
	if err := config.Verify(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// initLogger initializes the structured logger.
func initLogger(cfg *config.ServerConfig) (logger.Logger, error) {
	log, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: os.Stdout,
	})
	if err != nil {
		return nil, err
	}

	logger.SetDefault(log)
	return log, nil
}

// watchConfig reloads the config file on change and applies the log
// level. Other settings require a restart. Returns a stop function, or
// nil when no config file is in use.
func watchConfig(configFile string, log logger.Logger) (func(), error) {
	if configFile == "" {
		return nil, nil
	}

	watcher, err := confloader.NewWatcher(confloader.WithWatcherLogger(slog.Default()))
	if err != nil {
		return nil, err
	}
	if err := watcher.Watch(configFile); err != nil {
		watcher.Stop()
		return nil, err
	}

	watcher.OnChange(func(path string) {
		cfg := config.Default()
		loader := confloader.NewLoader(confloader.WithConfigFile(path))
		if err := loader.Load(cfg); err != nil {
			log.Warn("config reload failed", "error", err)
			return
		}
		if err := config.Verify(cfg); err != nil {
			log.Warn("config reload rejected", "error", err)
			return
		}

		logger.SetLevel(cfg.Log.Level)
		log.Info("configuration reloaded", "log_level", cfg.Log.Level)
	})
	watcher.StartAsync()

	return func() { watcher.Stop() }, nil
}
