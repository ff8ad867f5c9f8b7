package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/avelin/scoop/internal/config"
	"github.com/avelin/scoop/internal/connector"
	"github.com/avelin/scoop/internal/engine"
	"github.com/avelin/scoop/internal/logging"
	"github.com/avelin/scoop/internal/notify"
	"github.com/avelin/scoop/internal/notify/email"
	"github.com/avelin/scoop/internal/notify/multi"
	"github.com/avelin/scoop/internal/notify/slack"
	"github.com/avelin/scoop/internal/notify/stdout"
	"github.com/avelin/scoop/internal/pipeline"
	"github.com/avelin/scoop/internal/store"

	// Register connector implementations.
	_ "github.com/avelin/scoop/internal/connector/litterrobot"
)

func main() {
	day := flag.String("day", "yesterday", "which day to process: \"yesterday\" (closed day) or \"today\" (partial)")
	flag.Parse()

	// Local .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()
	logging.Init(false, logging.ParseLevel(cfg.LogLevel))

	eng, err := engine.New(cfg.Thresholds)
	if err != nil {
		log.Fatalf("configuration error: %v", err)
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		log.Fatalf("configuration error: unknown timezone %q: %v", cfg.Timezone, err)
	}

	recordLog, err := store.Open(cfg.Store.Path)
	if err != nil {
		log.Fatalf("failed to open record log: %v", err)
	}

	notifier, err := buildNotifier(cfg.Notify)
	if err != nil {
		log.Fatalf("configuration error: %v", err)
	}

	ctor, err := connector.Get(cfg.Connector.Provider)
	if err != nil {
		log.Fatalf("failed to get connector: %v", err)
	}
	conn := ctor()

	p := pipeline.New(conn, eng, recordLog, notifier)
	defer p.Close()

	// Set up graceful shutdown.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	daysBack := 1
	if *day == "today" {
		daysBack = 0
	}
	start, end := pipeline.DayWindow(time.Now(), daysBack, loc)

	connCfg := connector.ConnectorConfig{
		Provider: cfg.Connector.Provider,
		Username: cfg.Connector.Username,
		APIKey:   cfg.Connector.APIKey,
		Endpoint: cfg.Connector.Endpoint,
		RobotID:  cfg.Connector.RobotID,
	}
	params := connector.HistoryParams{
		Start: start,
		End:   end,
		Limit: cfg.Connector.HistoryLimit,
	}

	if err := p.Run(ctx, connCfg, params); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("pipeline error: %v", err)
	}
}

// buildNotifier assembles the configured delivery channels into a single
// notifier. More than one channel fans out through multi.
func buildNotifier(cfg config.NotifyConfig) (notify.Notifier, error) {
	var notifiers []notify.Notifier
	for _, name := range strings.Split(cfg.Channels, ",") {
		switch strings.TrimSpace(name) {
		case "", "stdout":
			notifiers = append(notifiers, stdout.New())
		case "email":
			notifiers = append(notifiers, email.New(cfg.Email))
		case "slack":
			notifiers = append(notifiers, slack.New(cfg.Slack.Endpoint, cfg.Slack.Token, cfg.Slack.Email))
		default:
			return nil, fmt.Errorf("unknown notify channel %q", name)
		}
	}
	if len(notifiers) == 1 {
		return notifiers[0], nil
	}
	return multi.New(notifiers...), nil
}
