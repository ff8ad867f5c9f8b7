// Package engine orchestrates the parse → aggregate → detect → compose
// pipeline for one calendar day of appliance events.
package engine

import (
	"fmt"

	"github.com/avelin/scoop/internal/config"
	"github.com/avelin/scoop/internal/engine/aggregator"
	"github.com/avelin/scoop/internal/engine/composer"
	"github.com/avelin/scoop/internal/engine/detector"
	"github.com/avelin/scoop/internal/engine/parser"
	"github.com/avelin/scoop/internal/model"
)

// Report is the outcome of analyzing one day: the aggregate statistics,
// the anomaly flags in evaluation order, and the composed alert strings in
// the same order.
type Report struct {
	Stats  model.DailyStats
	Flags  []model.AlertFlag
	Alerts []string
}

// Engine runs the daily analysis with a fixed threshold set. The threshold
// value is never mutated, so one Engine may be reused across runs.
type Engine struct {
	thresholds config.Thresholds
}

// New creates an Engine, rejecting malformed thresholds up front so a
// config mistake surfaces at startup rather than as a bad alert.
func New(th config.Thresholds) (*Engine, error) {
	if err := th.Validate(); err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}
	return &Engine{thresholds: th}, nil
}

// Process normalizes one day's raw events and analyzes them. waste is the
// external drawer reading, nil when unavailable.
func (e *Engine) Process(raws []model.RawEvent, waste *float64) (Report, []model.Record) {
	records := parser.ParseAll(raws)
	return e.Analyze(records, waste), records
}

// Analyze runs aggregation, detection, and composition over already
// normalized records. Pure: identical input always yields an identical
// Report.
func (e *Engine) Analyze(records []model.Record, waste *float64) Report {
	stats := aggregator.Aggregate(records, waste, e.thresholds)
	flags := detector.Detect(stats, e.thresholds)
	return Report{
		Stats:  stats,
		Flags:  flags,
		Alerts: composer.Compose(flags),
	}
}
