package parser

import (
	"testing"
	"time"

	"github.com/avelin/scoop/internal/model"
)

func rawAt(text string) model.RawEvent {
	return model.RawEvent{
		Timestamp: time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
		Text:      text,
	}
}

func TestParse_CanonicalForms(t *testing.T) {
	tests := []struct {
		text      string
		wantLabel string
		wantValue *float64
	}{
		{"Pet Weight Recorded: 8.2 lbs", model.ActivityWeightRecorded, ptr(8.2)},
		{"Pet Weight Recorded: 9 lbs", model.ActivityWeightRecorded, ptr(9)},
		{"Cat Detected", model.ActivityCatDetected, nil},
		{"Clean Cycle In Progress", model.ActivityCycleInProgress, nil},
		{"Clean Cycle Complete", model.ActivityCycleComplete, nil},
		{"Cycle Interrupted", model.ActivityCycleInterrupted, nil},
		{"Clean Cycles: 17", model.ActivityCleanCycles, ptr(17)},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			rec := Parse(rawAt(tt.text))
			if rec.Activity != tt.wantLabel {
				t.Fatalf("label = %q, want %q", rec.Activity, tt.wantLabel)
			}
			assertValue(t, rec, tt.wantValue)
		})
	}
}

func TestParse_VendorEnumForms(t *testing.T) {
	tests := []struct {
		text      string
		wantLabel string
	}{
		{"LitterBoxStatus.CAT_SENSOR_INTERRUPTED", model.ActivityCycleInterrupted},
		{"LitterBoxStatus.CAT_DETECTED", model.ActivityCatDetected},
		{"LitterBoxStatus.CLEAN_CYCLE", model.ActivityCycleInProgress},
		{"LitterBoxStatus.CLEAN_CYCLE_COMPLETE", model.ActivityCycleComplete},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			rec := Parse(rawAt(tt.text))
			if rec.Activity != tt.wantLabel {
				t.Fatalf("label = %q, want %q", rec.Activity, tt.wantLabel)
			}
		})
	}
}

// Firmware revisions disagree on casing and punctuation; classification
// must not depend on either.
func TestParse_ToleratesCaseAndPunctuation(t *testing.T) {
	tests := []struct {
		text      string
		wantLabel string
	}{
		{"CLEAN CYCLE IN PROGRESS", model.ActivityCycleInProgress},
		{"clean-cycle complete!", model.ActivityCycleComplete},
		{"  Cat   Detected.  ", model.ActivityCatDetected},
		{"pet weight recorded - 8.2 LBS", model.ActivityWeightRecorded},
		{"cycle_interrupted", model.ActivityCycleInterrupted},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			rec := Parse(rawAt(tt.text))
			if rec.Activity != tt.wantLabel {
				t.Fatalf("label = %q, want %q", rec.Activity, tt.wantLabel)
			}
		})
	}
}

func TestParse_UnrecognizedKeepsOriginalText(t *testing.T) {
	rec := Parse(rawAt("Firmware self-test OK"))
	if rec.Activity != model.ActivityUnrecognized {
		t.Fatalf("label = %q, want %q", rec.Activity, model.ActivityUnrecognized)
	}
	if rec.Raw != "Firmware self-test OK" {
		t.Fatalf("raw = %q, want original text preserved", rec.Raw)
	}
	if rec.HasValue() {
		t.Fatal("unrecognized record must not carry a value")
	}
}

func TestParse_ExtractionFailureDowngradesValue(t *testing.T) {
	rec := Parse(rawAt("Pet Weight Recorded: unknown lbs"))
	if rec.Activity != model.ActivityWeightRecorded {
		t.Fatalf("label = %q, want %q", rec.Activity, model.ActivityWeightRecorded)
	}
	if rec.HasValue() {
		t.Fatalf("value = %v, want absent after extraction failure", *rec.Value)
	}
}

func TestParse_WeightValueIgnoresStrayDigitsAfterUnit(t *testing.T) {
	rec := Parse(rawAt("2nd reading: Pet Weight Recorded: 8.7 lbs"))
	if !rec.HasValue() || *rec.Value != 8.7 {
		t.Fatalf("value = %v, want 8.7 (token adjacent to unit marker)", rec.Value)
	}
}

func TestParseAll_PreservesOrder(t *testing.T) {
	raws := []model.RawEvent{
		rawAt("Cat Detected"),
		rawAt("Pet Weight Recorded: 8.2 lbs"),
		rawAt("Clean Cycle In Progress"),
	}
	records := ParseAll(raws)
	if len(records) != 3 {
		t.Fatalf("got %d records, want 3", len(records))
	}
	want := []string{
		model.ActivityCatDetected,
		model.ActivityWeightRecorded,
		model.ActivityCycleInProgress,
	}
	for i, label := range want {
		if records[i].Activity != label {
			t.Errorf("record %d: label = %q, want %q", i, records[i].Activity, label)
		}
	}
}

func assertValue(t *testing.T, rec model.Record, want *float64) {
	t.Helper()
	if want == nil {
		if rec.HasValue() {
			t.Fatalf("value = %v, want absent", *rec.Value)
		}
		return
	}
	if !rec.HasValue() {
		t.Fatalf("value absent, want %v", *want)
	}
	if *rec.Value != *want {
		t.Fatalf("value = %v, want %v", *rec.Value, *want)
	}
}

func ptr(v float64) *float64 { return &v }
