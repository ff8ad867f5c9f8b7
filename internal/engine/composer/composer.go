// Package composer renders alert flags into the final message strings.
package composer

import (
	"fmt"

	"github.com/avelin/scoop/internal/model"
)

// templates maps each flag kind to its message format. The verb at the end
// tells the operator what to do, not just what happened.
var templates = map[model.FlagKind]string{
	model.FlagWasteFull:            "Waste drawer is %.0f%% full. Please change ASAP.",
	model.FlagUsageHigh:            ":poop: Cats used the bathroom %.0f times yesterday. Please monitor.",
	model.FlagUsageLow:             ":poop: Cats used the bathroom only %.0f times yesterday. Please monitor.",
	model.FlagWeightLow:            "Avg weight yesterday = %.1f lbs, below the healthy range. Please investigate.",
	model.FlagWeightHigh:           "Avg weight yesterday = %.1f lbs, above the healthy range. Please investigate.",
	model.FlagConsecutiveWeighings: "%.0f weigh-ins in a row with no clean cycle between them. Please check the scale.",
	model.FlagExtendedSession:      "A bathroom visit lasted %.0f seconds without completing. Please check on the cats.",
}

// Compose renders one message per flag, preserving input order exactly.
// No re-sorting and no de-duplication: a kind appearing twice is emitted
// twice.
func Compose(flags []model.AlertFlag) []string {
	msgs := make([]string, 0, len(flags))
	for _, f := range flags {
		tmpl, ok := templates[f.Kind]
		if !ok {
			msgs = append(msgs, fmt.Sprintf("Unknown alert %q (observed %.2f).", f.Kind, f.Observed))
			continue
		}
		msgs = append(msgs, fmt.Sprintf(tmpl, f.Observed))
	}
	return msgs
}
