// Package store persists normalized records as a flat CSV log.
//
// The schema is a compatibility contract: columns DateTime, Activity, Value,
// one row per record, appended chronologically, Value blank when absent.
// The dashboard (and anything else that greps the file) keys on the exact
// Activity label strings.
package store

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/avelin/scoop/internal/model"
)

// timeLayout matches the historical log rows: local time with UTC offset.
const timeLayout = "2006-01-02 15:04:05-07:00"

// Log is an append-only CSV record log.
type Log struct {
	mu   sync.Mutex
	f    *os.File
	w    *csv.Writer
	path string
}

// Open opens (or creates) the log at path for appending.
func Open(path string) (*Log, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", path, err)
	}
	return &Log{f: f, w: csv.NewWriter(f), path: path}, nil
}

// Append writes one row per record, in the order given.
func (l *Log) Append(records []model.Record) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, rec := range records {
		value := ""
		if rec.HasValue() {
			value = strconv.FormatFloat(*rec.Value, 'f', -1, 64)
		}
		row := []string{rec.Timestamp.Format(timeLayout), rec.Activity, value}
		if err := l.w.Write(row); err != nil {
			return fmt.Errorf("store: write row: %w", err)
		}
	}
	l.w.Flush()
	if err := l.w.Error(); err != nil {
		return fmt.Errorf("store: flush: %w", err)
	}
	return nil
}

// Close flushes and closes the underlying file.
func (l *Log) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.w.Flush()
	if err := l.w.Error(); err != nil {
		l.f.Close()
		return fmt.Errorf("store: flush: %w", err)
	}
	return l.f.Close()
}

// ReadAll loads every row from the log at path. Malformed rows are skipped
// with a warning rather than failing the whole read — the log is append-only
// and a single truncated line must not take the dashboard down.
func ReadAll(path string) ([]model.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	var records []model.Record
	skipped := 0
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				// A hand-edited row must not hide everything after it.
				skipped++
				continue
			}
			break
		}
		if len(row) < 2 {
			skipped++
			continue
		}
		ts, err := time.Parse(timeLayout, row[0])
		if err != nil {
			skipped++
			continue
		}
		rec := model.Record{Timestamp: ts, Activity: row[1]}
		if len(row) > 2 && row[2] != "" {
			if v, err := strconv.ParseFloat(row[2], 64); err == nil {
				rec.Value = &v
			}
		}
		records = append(records, rec)
	}
	if skipped > 0 {
		slog.Warn("store: skipped malformed rows", "path", path, "count", skipped)
	}
	return records, nil
}

// FilterWindow returns records with the given activity label whose
// timestamp falls within the trailing window ending at now. Input order is
// preserved.
func FilterWindow(records []model.Record, activity string, now time.Time, days int) []model.Record {
	since := now.AddDate(0, 0, -days)
	var out []model.Record
	for _, rec := range records {
		if rec.Activity != activity {
			continue
		}
		if rec.Timestamp.Before(since) || rec.Timestamp.After(now) {
			continue
		}
		out = append(out, rec)
	}
	return out
}

// UsageByDay counts Clean Cycle In Progress rows per calendar day within
// the trailing window, keyed by YYYY-MM-DD in the record's own zone.
func UsageByDay(records []model.Record, now time.Time, days int) map[string]int {
	counts := make(map[string]int)
	for _, rec := range FilterWindow(records, model.ActivityCycleInProgress, now, days) {
		counts[rec.Timestamp.Format("2006-01-02")]++
	}
	return counts
}
