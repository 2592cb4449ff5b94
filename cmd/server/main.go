// Package main provides the news gateway HTTP server.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"newsgate/internal/config"
	"newsgate/internal/logger"
	"newsgate/internal/newsapi"
	"newsgate/internal/pipeline"
	"newsgate/internal/server"
)

func main() {
	configFile := flag.String("config", "", "Path to YAML configuration file (defaults plus environment when empty)")
	flag.Parse()

	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format, os.Stderr)

	log.Info("🚀 Starting news gateway")
	log.Info(fmt.Sprintf("⚙️  %s", cfg))

	client, err := newsapi.NewClient(cfg.Provider, log)
	if err != nil {
		log.Error(fmt.Sprintf("❌ Provider client unavailable: %v", err), "env", config.EnvAPIKey)
		os.Exit(1)
	}

	svc := pipeline.NewService(client, pipeline.WithLogger(log))
	srv := server.NewServer(cfg.Server, svc, log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.Run(ctx); err != nil {
		log.Error(fmt.Sprintf("❌ Server error: %v", err))
		os.Exit(1)
	}

	log.Info("✅ Server stopped")
}
