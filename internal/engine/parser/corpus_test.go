package parser

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/avelin/scoop/internal/model"
)

// corpusEntry is one labeled vendor string captured from real firmware
// output. The corpus is rule-independent: it validates the table as a
// whole against text the appliance has actually emitted.
type corpusEntry struct {
	Raw           string   `json:"raw"`
	ExpectedLabel string   `json:"expected_label"`
	ExpectedValue *float64 `json:"expected_value"`
	Description   string   `json:"description"`
}

func loadCorpus(t *testing.T) []corpusEntry {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", "corpus.json"))
	if err != nil {
		t.Fatalf("read corpus: %v", err)
	}
	var entries []corpusEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		t.Fatalf("parse corpus: %v", err)
	}
	if len(entries) == 0 {
		t.Fatal("corpus is empty")
	}
	return entries
}

func TestParse_Corpus(t *testing.T) {
	ts := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	for _, e := range loadCorpus(t) {
		t.Run(e.Description, func(t *testing.T) {
			rec := Parse(model.RawEvent{Timestamp: ts, Text: e.Raw})
			if rec.Activity != e.ExpectedLabel {
				t.Fatalf("Parse(%q) label = %q, want %q", e.Raw, rec.Activity, e.ExpectedLabel)
			}
			if e.ExpectedValue == nil {
				return
			}
			if !rec.HasValue() {
				t.Fatalf("Parse(%q) value absent, want %v", e.Raw, *e.ExpectedValue)
			}
			if *rec.Value != *e.ExpectedValue {
				t.Fatalf("Parse(%q) value = %v, want %v", e.Raw, *rec.Value, *e.ExpectedValue)
			}
		})
	}
}
