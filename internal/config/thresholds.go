package config

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidThresholds marks a configuration error, as opposed to a
// data-processing error: the pipeline refuses to start rather than
// producing alerts against a nonsensical config.
var ErrInvalidThresholds = errors.New("invalid thresholds")

// Thresholds is the immutable set of anomaly limits consumed by the
// aggregator and detector. Shared by reference across runs; never mutated.
type Thresholds struct {
	WasteAlertPercent float64 // drawer fill level that warrants a change

	UsageHigh int // visits strictly above this fire UsageHigh
	UsageLow  int // visits strictly below this fire UsageLow

	WeightMin float64 // healthy-range floor, lbs
	WeightMax float64 // healthy-range ceiling, lbs

	// Samples outside the valid band are discarded as sensor glitches
	// before averaging.
	WeightValidMin float64
	WeightValidMax float64

	ConsecutiveWeighLimit int           // weigh-ins per streak before flagging
	ExtendedSession       time.Duration // visit duration before flagging
}

// LoadThresholds reads threshold overrides from environment variables.
// Defaults match the household the monitor was built for.
func LoadThresholds() Thresholds {
	return Thresholds{
		WasteAlertPercent:     getenvFloat("SCOOP_WASTE_ALERT_PERCENT", 75),
		UsageHigh:             getenvInt("SCOOP_USAGE_HIGH", 9),
		UsageLow:              getenvInt("SCOOP_USAGE_LOW", 4),
		WeightMin:             getenvFloat("SCOOP_WEIGHT_MIN", 8.5),
		WeightMax:             getenvFloat("SCOOP_WEIGHT_MAX", 9.1),
		WeightValidMin:        getenvFloat("SCOOP_WEIGHT_VALID_MIN", 7.5),
		WeightValidMax:        getenvFloat("SCOOP_WEIGHT_VALID_MAX", 9.5),
		ConsecutiveWeighLimit: getenvInt("SCOOP_CONSECUTIVE_WEIGH_LIMIT", 2),
		ExtendedSession:       time.Duration(getenvInt("SCOOP_EXTENDED_SESSION_SECS", 600)) * time.Second,
	}
}

// Validate rejects malformed threshold combinations. Returns an error
// wrapping ErrInvalidThresholds, or nil.
func (t Thresholds) Validate() error {
	if t.WasteAlertPercent <= 0 || t.WasteAlertPercent > 100 {
		return fmt.Errorf("%w: waste alert percent %.1f outside (0, 100]", ErrInvalidThresholds, t.WasteAlertPercent)
	}
	if t.UsageLow < 0 || t.UsageHigh < 0 {
		return fmt.Errorf("%w: usage bounds must be non-negative", ErrInvalidThresholds)
	}
	if t.UsageLow > t.UsageHigh {
		return fmt.Errorf("%w: usage low %d exceeds usage high %d", ErrInvalidThresholds, t.UsageLow, t.UsageHigh)
	}
	if t.WeightMin >= t.WeightMax {
		return fmt.Errorf("%w: weight min %.2f not below weight max %.2f", ErrInvalidThresholds, t.WeightMin, t.WeightMax)
	}
	if t.WeightValidMin >= t.WeightValidMax {
		return fmt.Errorf("%w: valid weight band %.2f..%.2f is empty", ErrInvalidThresholds, t.WeightValidMin, t.WeightValidMax)
	}
	if t.ConsecutiveWeighLimit < 0 {
		return fmt.Errorf("%w: consecutive weigh limit must be non-negative", ErrInvalidThresholds)
	}
	if t.ExtendedSession <= 0 {
		return fmt.Errorf("%w: extended session duration must be positive", ErrInvalidThresholds)
	}
	return nil
}
