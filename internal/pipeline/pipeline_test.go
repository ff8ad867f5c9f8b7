package pipeline

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/avelin/scoop/internal/config"
	"github.com/avelin/scoop/internal/connector"
	"github.com/avelin/scoop/internal/engine"
	"github.com/avelin/scoop/internal/model"
	"github.com/avelin/scoop/internal/store"
)

type fakeConnector struct {
	events     []model.RawEvent
	historyErr error
	drawer     float64
	drawerErr  error
}

func (f *fakeConnector) History(_ context.Context, _ connector.ConnectorConfig, _ connector.HistoryParams) ([]model.RawEvent, error) {
	return f.events, f.historyErr
}

func (f *fakeConnector) DrawerLevel(_ context.Context, _ connector.ConnectorConfig) (float64, error) {
	return f.drawer, f.drawerErr
}

type recordingNotifier struct {
	subjects []string
	batches  [][]string
}

func (r *recordingNotifier) Send(_ context.Context, subject string, lines []string) error {
	r.subjects = append(r.subjects, subject)
	r.batches = append(r.batches, lines)
	return nil
}

func (r *recordingNotifier) Close() error { return nil }

func testEngine(t *testing.T) *engine.Engine {
	t.Helper()
	eng, err := engine.New(config.Thresholds{
		WasteAlertPercent:     75,
		UsageHigh:             9,
		UsageLow:              4,
		WeightMin:             8.5,
		WeightMax:             9.1,
		WeightValidMin:        7.5,
		WeightValidMax:        9.5,
		ConsecutiveWeighLimit: 2,
		ExtendedSession:       10 * time.Minute,
	})
	if err != nil {
		t.Fatalf("engine.New error: %v", err)
	}
	return eng
}

func testLog(t *testing.T) *store.Log {
	t.Helper()
	l, err := store.Open(filepath.Join(t.TempDir(), "log.csv"))
	if err != nil {
		t.Fatalf("store.Open error: %v", err)
	}
	return l
}

func dayEvents() []model.RawEvent {
	base := time.Date(2026, 3, 13, 8, 0, 0, 0, time.UTC)
	texts := []string{
		"Cat Detected",
		"Pet Weight Recorded: 8.8 lbs",
		"Clean Cycle In Progress",
		"Clean Cycle Complete",
	}
	raws := make([]model.RawEvent, len(texts))
	for i, text := range texts {
		raws[i] = model.RawEvent{Timestamp: base.Add(time.Duration(i) * time.Minute), Text: text}
	}
	return raws
}

func TestRun_PersistsAndAlerts(t *testing.T) {
	conn := &fakeConnector{events: dayEvents(), drawer: 82}
	notifier := &recordingNotifier{}
	l := testLog(t)
	p := New(conn, testEngine(t), l, notifier)

	if err := p.Run(context.Background(), connector.ConnectorConfig{}, connector.HistoryParams{}); err != nil {
		t.Fatalf("Run error: %v", err)
	}
	p.Close()

	// One visit (< 4) plus a full drawer: waste first, then low usage.
	if len(notifier.batches) != 1 {
		t.Fatalf("got %d notifications, want 1", len(notifier.batches))
	}
	alerts := notifier.batches[0]
	if len(alerts) != 2 {
		t.Fatalf("got %d alerts, want 2: %v", len(alerts), alerts)
	}
	if !strings.Contains(alerts[0], "82% full") {
		t.Fatalf("first alert = %q, want waste alert first", alerts[0])
	}
	if !strings.Contains(alerts[1], "only 1 times") {
		t.Fatalf("second alert = %q, want low-usage alert", alerts[1])
	}
}

func TestRun_QuietDaySendsNothing(t *testing.T) {
	events := dayEvents()
	// Pad to five visits so usage lands inside the healthy band.
	base := time.Date(2026, 3, 13, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 4; i++ {
		events = append(events, model.RawEvent{
			Timestamp: base.Add(time.Duration(i) * time.Hour),
			Text:      "Clean Cycle In Progress",
		})
	}
	conn := &fakeConnector{events: events, drawer: 40}
	notifier := &recordingNotifier{}
	p := New(conn, testEngine(t), testLog(t), notifier)

	if err := p.Run(context.Background(), connector.ConnectorConfig{}, connector.HistoryParams{}); err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if len(notifier.batches) != 0 {
		t.Fatalf("got notifications on a healthy day: %v", notifier.batches)
	}
}

func TestRun_FetchFailureSendsDataWarning(t *testing.T) {
	conn := &fakeConnector{historyErr: errors.New("cloud API down")}
	notifier := &recordingNotifier{}
	p := New(conn, testEngine(t), testLog(t), notifier)

	err := p.Run(context.Background(), connector.ConnectorConfig{}, connector.HistoryParams{})
	if err == nil {
		t.Fatal("expected fetch error to propagate")
	}
	if len(notifier.subjects) != 1 || notifier.subjects[0] != warningSubject {
		t.Fatalf("subjects = %v, want one data warning", notifier.subjects)
	}
}

func TestRun_CancellationSurvivesWrapping(t *testing.T) {
	conn := &fakeConnector{historyErr: context.Canceled}
	p := New(conn, testEngine(t), testLog(t), &recordingNotifier{})

	err := p.Run(context.Background(), connector.ConnectorConfig{}, connector.HistoryParams{})
	// Callers distinguish a cancelled run from a failed one with errors.Is;
	// the fetch prefix must not break that.
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("errors.Is(err, context.Canceled) = false for %v", err)
	}
}

func TestRun_DrawerFailureSkipsWasteCheck(t *testing.T) {
	conn := &fakeConnector{events: dayEvents(), drawerErr: errors.New("sensor offline")}
	notifier := &recordingNotifier{}
	p := New(conn, testEngine(t), testLog(t), notifier)

	if err := p.Run(context.Background(), connector.ConnectorConfig{}, connector.HistoryParams{}); err != nil {
		t.Fatalf("Run error: %v", err)
	}
	for _, batch := range notifier.batches {
		for _, line := range batch {
			if strings.Contains(line, "Waste drawer") {
				t.Fatalf("waste alert fired without a reading: %q", line)
			}
		}
	}
}

func TestDayWindow(t *testing.T) {
	loc := time.FixedZone("EDT", -4*3600)
	now := time.Date(2026, 3, 14, 6, 30, 0, 0, loc)

	start, end := DayWindow(now, 1, loc)

	wantStart := time.Date(2026, 3, 13, 0, 0, 0, 0, loc)
	if !start.Equal(wantStart) {
		t.Fatalf("start = %v, want %v", start, wantStart)
	}
	if !end.Equal(wantStart.AddDate(0, 0, 1)) {
		t.Fatalf("end = %v, want start of today", end)
	}
}
