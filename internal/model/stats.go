package model

import "time"

// DailyStats aggregates one calendar day of normalized records.
// Derived per run from the day's record sequence — never persisted.
type DailyStats struct {
	Date          time.Time
	UsageCount    int       // Clean Cycle In Progress records
	WeightSamples []float64 // ordered, valid-band weigh-in values
	AverageWeight *float64  // nil when WeightSamples is empty
	WastePercent  *float64  // external drawer reading, nil when unavailable

	// Sticky for the day once set.
	HasConsecutiveWeighings bool
	HasExtendedSession      bool

	// Observed extremes, used for alert interpolation.
	LongestWeighStreak int
	LongestSessionSecs float64
}
