// Package pipeline wires the connector, engine, store, and notifier into
// the daily batch run.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/avelin/scoop/internal/connector"
	"github.com/avelin/scoop/internal/engine"
	"github.com/avelin/scoop/internal/notify"
	"github.com/avelin/scoop/internal/store"
)

const (
	alertSubject   = "Litter Box Daily Alerts"
	warningSubject = "Litter Box Data Warning"
)

// Pipeline connects a connector, engine, store, and notifier into the
// daily processing run.
type Pipeline struct {
	connector connector.Connector
	engine    *engine.Engine
	log       *store.Log
	notifier  notify.Notifier
}

// New creates a Pipeline from the given components.
func New(conn connector.Connector, eng *engine.Engine, log *store.Log, notifier notify.Notifier) *Pipeline {
	return &Pipeline{
		connector: conn,
		engine:    eng,
		log:       log,
		notifier:  notifier,
	}
}

// Run processes one closed day: fetch, normalize, persist, analyze, alert.
// A fetch failure is itself reported through the notifier before the run
// aborts — the operator should hear about a silent appliance, not discover
// it weeks later.
func (p *Pipeline) Run(ctx context.Context, cfg connector.ConnectorConfig, params connector.HistoryParams) error {
	raws, err := p.connector.History(ctx, cfg, params)
	if err != nil {
		p.warn(ctx, fmt.Sprintf("Appliance API returned an error: %v", err))
		return fmt.Errorf("pipeline fetch: %w", err)
	}

	// No drawer reading is non-fatal: the waste check is simply skipped.
	var waste *float64
	if level, err := p.connector.DrawerLevel(ctx, cfg); err != nil {
		slog.Warn("drawer level unavailable, skipping waste check", "error", err)
	} else {
		waste = &level
	}

	report, records := p.engine.Process(raws, waste)

	if err := p.log.Append(records); err != nil {
		return fmt.Errorf("pipeline persist: %w", err)
	}

	slog.Info("day analyzed",
		"date", report.Stats.Date.Format("2006-01-02"),
		"records", len(records),
		"usage", report.Stats.UsageCount,
		"weight_samples", len(report.Stats.WeightSamples),
		"alerts", len(report.Alerts),
	)

	if len(report.Alerts) > 0 {
		if err := p.notifier.Send(ctx, alertSubject, report.Alerts); err != nil {
			return fmt.Errorf("pipeline notify: %w", err)
		}
	}
	return nil
}

// Close shuts down the store and the notifier.
func (p *Pipeline) Close() error {
	return errors.Join(p.log.Close(), p.notifier.Close())
}

// warn delivers a data warning, best-effort.
func (p *Pipeline) warn(ctx context.Context, msg string) {
	if err := p.notifier.Send(ctx, warningSubject, []string{msg}); err != nil {
		slog.Warn("failed to deliver data warning", "error", err)
	}
}

// DayWindow returns the closed calendar-day window ending daysBack days
// before now in the given location. daysBack=1 is yesterday, the usual run.
func DayWindow(now time.Time, daysBack int, loc *time.Location) (start, end time.Time) {
	local := now.In(loc)
	day := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	start = day.AddDate(0, 0, -daysBack)
	return start, start.AddDate(0, 0, 1)
}
