package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/avelin/scoop/internal/config"
	"github.com/avelin/scoop/internal/dashboard"
	"github.com/avelin/scoop/internal/logging"
)

func main() {
	// Local .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()
	logging.Init(false, logging.ParseLevel(cfg.LogLevel))

	srv := dashboard.NewServer(cfg.Dashboard.Addr, cfg.Store.Path, cfg.Dashboard.WindowDays)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		slog.Info("shutting down dashboard")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Stop(ctx); err != nil {
			slog.Error("shutdown failed", "error", err)
		}
	}()

	if err := srv.Start(); err != nil {
		log.Fatalf("dashboard error: %v", err)
	}
}
