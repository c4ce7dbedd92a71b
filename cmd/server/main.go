package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/hytaletravelers/playerstats/internal/api"
	"github.com/hytaletravelers/playerstats/internal/config"
	"github.com/hytaletravelers/playerstats/internal/factory"
)

const configPath = "config.json"

func main() {
	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// .env is optional; the environment still overrides config.json without it
	_ = godotenv.Load()

	cfg := config.Load(configPath, logger)

	app, err := factory.New(cfg, logger)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := app.Start(ctx); err != nil {
		logger.Error("failed to start application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Handle graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutdown signal received")
		cancel()
	}()

	errCh := make(chan error, 1)

	var server *api.Server
	if cfg.WebEnabled {
		router := api.NewRouter(api.RouterConfig{
			Logger:      logger,
			Store:       app.Store,
			Persistence: app.Persistence,
			Publisher:   app.Bus,
			Clock:       app.Clock,
			Metrics:     app.Metrics.Handler(),
		})

		serverConfig := api.DefaultServerConfig()
		serverConfig.Host = cfg.WebBindAddress
		serverConfig.Port = cfg.WebPort
		server = api.NewServer(router, serverConfig, logger)

		go func() {
			errCh <- server.Start()
		}()

		logger.Info("server started", slog.String("addr", server.Addr()))
	} else {
		logger.Info("web API disabled, running dispatch only")
	}

	// Wait for shutdown or error
	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	case <-ctx.Done():
		if server != nil {
			if err := server.Shutdown(context.Background()); err != nil {
				logger.Error("shutdown error", slog.String("error", err.Error()))
			}
		}
	}

	if err := app.Shutdown(context.Background()); err != nil {
		logger.Error("shutdown error", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("server stopped")
}
