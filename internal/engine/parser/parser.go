// Package parser normalizes raw appliance event text into Records.
//
// Classification is a declarative rule table tried in priority order: the
// first rule whose predicate matches the normalized text wins. Parsing is
// total — text no rule recognizes becomes an Unrecognized record carrying
// the original string, never an error.
package parser

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/cases"

	"github.com/avelin/scoop/internal/model"
)

// extractor pulls a numeric value out of the original (unnormalized) text.
// A false return downgrades the record to value-absent; it never fails the
// parse.
type extractor func(text string) (float64, bool)

type rule struct {
	match   func(normalized string) bool
	label   string
	extract extractor // nil for kinds that carry no value
}

// rules is tried in order; more specific phrases come before their prefixes
// ("clean cycle complete" and "clean cycles" before "clean cycle").
// Predicates run against normalized text, so the table also covers raw
// vendor enum forms like "LitterBoxStatus.CAT_SENSOR_INTERRUPTED".
var rules = []rule{
	{contains("weight recorded"), model.ActivityWeightRecorded, extractWeight},
	{contains("cat sensor interrupted"), model.ActivityCycleInterrupted, nil},
	{contains("cycle interrupted"), model.ActivityCycleInterrupted, nil},
	{contains("cat detected"), model.ActivityCatDetected, nil},
	{contains("clean cycle complete"), model.ActivityCycleComplete, nil},
	{contains("clean cycles"), model.ActivityCleanCycles, extractCount},
	{contains("clean cycle"), model.ActivityCycleInProgress, nil},
}

// Parse normalizes one raw event. Total: unrecognized text yields an
// Unrecognized record, not an error.
func Parse(raw model.RawEvent) model.Record {
	normalized := normalize(raw.Text)
	for _, r := range rules {
		if !r.match(normalized) {
			continue
		}
		rec := model.Record{
			Timestamp: raw.Timestamp,
			Activity:  r.label,
			Raw:       raw.Text,
		}
		if r.extract != nil {
			if v, ok := r.extract(raw.Text); ok {
				rec.Value = &v
			}
		}
		return rec
	}
	return model.Record{
		Timestamp: raw.Timestamp,
		Activity:  model.ActivityUnrecognized,
		Raw:       raw.Text,
	}
}

// ParseAll normalizes a batch, preserving input order.
func ParseAll(raws []model.RawEvent) []model.Record {
	records := make([]model.Record, 0, len(raws))
	for _, raw := range raws {
		records = append(records, Parse(raw))
	}
	return records
}

var foldCaser = cases.Fold()

// normalize case-folds the text and collapses every non-alphanumeric run
// into a single space. Vendor text is inconsistent across firmware
// revisions ("Clean Cycle In Progress", "CLEAN_CYCLE", "clean-cycle..."),
// so rule predicates only ever see this canonical form.
func normalize(s string) string {
	folded := foldCaser.String(s)
	var b strings.Builder
	b.Grow(len(folded))
	pendingSpace := false
	for _, r := range folded {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingSpace && b.Len() > 0 {
				b.WriteByte(' ')
			}
			pendingSpace = false
			b.WriteRune(r)
		} else {
			pendingSpace = true
		}
	}
	return b.String()
}

func contains(phrase string) func(string) bool {
	return func(normalized string) bool {
		return strings.Contains(normalized, phrase)
	}
}

var (
	weightRe = regexp.MustCompile(`(?i)(\d+\.?\d*)\s*lbs`)
	numberRe = regexp.MustCompile(`\d+\.?\d*`)
	countRe  = regexp.MustCompile(`\d+`)
)

// extractWeight returns the float token attached to the lbs unit marker,
// falling back to the first number in the text.
func extractWeight(text string) (float64, bool) {
	token := ""
	if m := weightRe.FindStringSubmatch(text); m != nil {
		token = m[1]
	} else {
		token = numberRe.FindString(text)
	}
	if token == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// extractCount returns the first integer in the text (the appliance's
// lifetime clean-cycle odometer).
func extractCount(text string) (float64, bool) {
	token := countRe.FindString(text)
	if token == "" {
		return 0, false
	}
	n, err := strconv.Atoi(token)
	if err != nil {
		return 0, false
	}
	return float64(n), true
}
