package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ZiggyLiu/clinical-study-visual/internal/api"
	"github.com/ZiggyLiu/clinical-study-visual/internal/config"
	"github.com/ZiggyLiu/clinical-study-visual/internal/registry"
	"github.com/ZiggyLiu/clinical-study-visual/internal/trials"
	"github.com/ZiggyLiu/clinical-study-visual/pkg/logger"
)

func main() {
	configPath := flag.String("config", "config.toml", "Path to the TOML configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	log.Info("Starting clinical study server",
		logger.String("version", api.Version),
		logger.String("config", *configPath),
		logger.String("registry_url", cfg.Registry.BaseURL),
	)

	client := registry.NewClient(
		cfg.Registry.BaseURL,
		time.Duration(cfg.Registry.RequestTimeoutSeconds)*time.Second,
		log,
	)
	cache := trials.NewCache(time.Duration(cfg.Cache.TTLMinutes) * time.Minute)
	service := trials.NewService(
		client,
		cache,
		cfg.Registry.PageSize,
		time.Duration(cfg.Registry.PageDelayMS)*time.Millisecond,
		log,
	)
	router := api.NewRouter(service, cfg, log)

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.Routes(),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSeconds) * time.Second,
	}

	go func() {
		log.Info("HTTP server listening", logger.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server failed", logger.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server shutdown error", logger.Error(err))
	}

	log.Info("Server stopped")
}
