package scoop

import (
	"fmt"
	"time"

	"github.com/avelin/scoop/internal/engine"
	"github.com/avelin/scoop/internal/model"
)

// Scoop analyzes one calendar day of appliance events at a time.
// Thresholds are fixed at construction; create once, reuse across runs.
type Scoop struct {
	engine *engine.Engine
}

// New creates a Scoop instance. Threshold options are validated here — a
// malformed combination (e.g. an inverted weight range) is a construction
// error, never a bad alert later.
func New(opts ...Option) (*Scoop, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	eng, err := engine.New(o.thresholds)
	if err != nil {
		return nil, fmt.Errorf("scoop: %w", err)
	}
	return &Scoop{engine: eng}, nil
}

// Analyze normalizes and analyzes one day's events. wastePercent is the
// drawer fill reading, nil when unavailable (the waste check is then
// skipped, not treated as zero).
func (s *Scoop) Analyze(events []Event, wastePercent *float64) Report {
	raws := make([]model.RawEvent, len(events))
	for i, e := range events {
		raws[i] = model.RawEvent{Timestamp: e.Timestamp, Text: e.Text}
	}
	report, records := s.engine.Process(raws, wastePercent)
	return publicReport(report, records)
}

// AnalyzeDay is the string-slice convenience form of Analyze, for callers
// that have bare event texts without timestamps. Duration-based checks see
// zero elapsed time between events.
func (s *Scoop) AnalyzeDay(texts []string, wastePercent *float64) Report {
	events := make([]Event, len(texts))
	for i, text := range texts {
		events[i] = Event{Text: text}
	}
	return s.Analyze(events, wastePercent)
}

func publicReport(r engine.Report, records []model.Record) Report {
	out := Report{
		Date:       r.Stats.Date,
		UsageCount: r.Stats.UsageCount,
		Alerts:     append([]string(nil), r.Alerts...),
	}
	if r.Stats.AverageWeight != nil {
		v := *r.Stats.AverageWeight
		out.AverageWeight = &v
	}
	out.WeightSamples = append([]float64(nil), r.Stats.WeightSamples...)
	for _, f := range r.Flags {
		out.Flags = append(out.Flags, Flag{
			Kind:     string(f.Kind),
			Severity: string(f.Severity),
			Observed: f.Observed,
		})
	}
	for _, rec := range records {
		pr := Record{Timestamp: rec.Timestamp, Activity: rec.Activity, Raw: rec.Raw}
		if rec.HasValue() {
			v := *rec.Value
			pr.Value = &v
		}
		out.Records = append(out.Records, pr)
	}
	return out
}

// Event is one raw appliance occurrence to analyze.
type Event struct {
	Timestamp time.Time
	Text      string
}

// Record is a normalized event. This is the stable public type — internal
// representations may evolve independently without breaking consumers.
type Record struct {
	Timestamp time.Time `json:"timestamp"`
	Activity  string    `json:"activity"`
	Value     *float64  `json:"value,omitempty"`
	Raw       string    `json:"raw,omitempty"`
}

// Flag is one fired anomaly check.
type Flag struct {
	Kind     string  `json:"kind"`
	Severity string  `json:"severity"`
	Observed float64 `json:"observed"`
}

// Report is the outcome of analyzing one day.
type Report struct {
	Date          time.Time `json:"date"`
	UsageCount    int       `json:"usage_count"`
	WeightSamples []float64 `json:"weight_samples,omitempty"`
	AverageWeight *float64  `json:"average_weight,omitempty"`
	Records       []Record  `json:"records,omitempty"`
	Flags         []Flag    `json:"flags,omitempty"`
	Alerts        []string  `json:"alerts,omitempty"`
}
