// Package detector compares daily statistics against configured thresholds.
package detector

import (
	"github.com/avelin/scoop/internal/config"
	"github.com/avelin/scoop/internal/model"
)

// Detect evaluates every anomaly check against the day's stats. Checks are
// independent and side-effect-free; any subset may fire. The returned slice
// is in fixed evaluation order — the composer and the notifier both rely on
// it, so the order below must not be rearranged.
//
// Boundary policy: waste uses >= (the drawer at exactly the limit needs a
// change); health ranges use strict comparisons (a weight exactly on the
// boundary is still in range).
func Detect(stats model.DailyStats, th config.Thresholds) []model.AlertFlag {
	var flags []model.AlertFlag

	if stats.WastePercent != nil && *stats.WastePercent >= th.WasteAlertPercent {
		flags = append(flags, model.AlertFlag{
			Kind:     model.FlagWasteFull,
			Severity: model.SeverityWarning,
			Observed: *stats.WastePercent,
		})
	}
	if stats.UsageCount > th.UsageHigh {
		flags = append(flags, model.AlertFlag{
			Kind:     model.FlagUsageHigh,
			Severity: model.SeverityWarning,
			Observed: float64(stats.UsageCount),
		})
	}
	// A zero-usage day is itself clinically notable, so no lower guard here.
	if stats.UsageCount < th.UsageLow {
		flags = append(flags, model.AlertFlag{
			Kind:     model.FlagUsageLow,
			Severity: model.SeverityWarning,
			Observed: float64(stats.UsageCount),
		})
	}
	if stats.AverageWeight != nil && *stats.AverageWeight < th.WeightMin {
		flags = append(flags, model.AlertFlag{
			Kind:     model.FlagWeightLow,
			Severity: model.SeverityCritical,
			Observed: *stats.AverageWeight,
		})
	}
	if stats.AverageWeight != nil && *stats.AverageWeight > th.WeightMax {
		flags = append(flags, model.AlertFlag{
			Kind:     model.FlagWeightHigh,
			Severity: model.SeverityCritical,
			Observed: *stats.AverageWeight,
		})
	}
	if stats.HasConsecutiveWeighings {
		flags = append(flags, model.AlertFlag{
			Kind:     model.FlagConsecutiveWeighings,
			Severity: model.SeverityWarning,
			Observed: float64(stats.LongestWeighStreak),
		})
	}
	if stats.HasExtendedSession {
		flags = append(flags, model.AlertFlag{
			Kind:     model.FlagExtendedSession,
			Severity: model.SeverityWarning,
			Observed: stats.LongestSessionSecs,
		})
	}

	return flags
}
