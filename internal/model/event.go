package model

import "time"

// Activity labels form the persisted-log contract: the CSV written by the
// store and the dashboard that reads it both key on these exact strings.
// Renaming one is a breaking schema change.
const (
	ActivityCatDetected      = "Cat Detected"
	ActivityWeightRecorded   = "Weight Recorded"
	ActivityCycleInProgress  = "Clean Cycle In Progress"
	ActivityCycleComplete    = "Clean Cycle Complete"
	ActivityCycleInterrupted = "Cycle Interrupted"
	ActivityCleanCycles      = "Clean Cycles"
	ActivityUnrecognized     = "Unrecognized"
)

// Record is scoop's normalized event type — one classified appliance
// occurrence. Value is nil for kinds that carry no number.
type Record struct {
	Timestamp time.Time
	Activity  string   // one of the Activity* labels
	Value     *float64 // weight in lbs, or cycle odometer count
	Raw       string   // original vendor text (retained for audit)
}

// HasValue reports whether the record carries a numeric value.
func (r Record) HasValue() bool {
	return r.Value != nil
}

// IsCycleActivity reports whether the label marks a cleaning-cycle record.
// Cycle records reset the weigh-in streak tracked by the aggregator.
func IsCycleActivity(label string) bool {
	switch label {
	case ActivityCycleInProgress, ActivityCycleComplete, ActivityCycleInterrupted:
		return true
	}
	return false
}
