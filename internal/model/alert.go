package model

// FlagKind identifies one anomaly check.
type FlagKind string

const (
	FlagWasteFull            FlagKind = "waste_full"
	FlagUsageHigh            FlagKind = "usage_high"
	FlagUsageLow             FlagKind = "usage_low"
	FlagWeightLow            FlagKind = "weight_low"
	FlagWeightHigh           FlagKind = "weight_high"
	FlagConsecutiveWeighings FlagKind = "consecutive_weighings"
	FlagExtendedSession      FlagKind = "extended_session"
)

// Severity is the normalized alert severity.
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// AlertFlag is one fired anomaly check. Flags appear in the detector's
// fixed evaluation order, which the composer preserves.
type AlertFlag struct {
	Kind     FlagKind
	Severity Severity
	Observed float64
}
