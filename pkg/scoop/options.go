package scoop

import (
	"time"

	"github.com/avelin/scoop/internal/config"
)

type options struct {
	thresholds config.Thresholds
}

// Option configures a Scoop instance.
type Option func(*options)

// WithUsageBounds sets the healthy visits-per-day band. Strictly fewer
// than low or strictly more than high fires an alert. Defaults: 4 and 9.
func WithUsageBounds(low, high int) Option {
	return func(o *options) {
		o.thresholds.UsageLow = low
		o.thresholds.UsageHigh = high
	}
}

// WithWeightRange sets the healthy average-weight band in lbs. An average
// strictly outside the band fires an alert; the boundaries themselves are
// in range. Defaults: 8.5 and 9.1.
func WithWeightRange(min, max float64) Option {
	return func(o *options) {
		o.thresholds.WeightMin = min
		o.thresholds.WeightMax = max
	}
}

// WithValidWeightBand sets the plausibility band for individual weigh-ins.
// Readings outside it are discarded as sensor glitches before averaging.
// Defaults: 7.5 and 9.5.
func WithValidWeightBand(min, max float64) Option {
	return func(o *options) {
		o.thresholds.WeightValidMin = min
		o.thresholds.WeightValidMax = max
	}
}

// WithWasteAlertPercent sets the drawer fill level (percent) at or above
// which the waste alert fires. Default: 75.
func WithWasteAlertPercent(p float64) Option {
	return func(o *options) {
		o.thresholds.WasteAlertPercent = p
	}
}

// WithStreakLimit sets how many weigh-ins may occur in a row, with no
// cleaning cycle between them, before the streak alert fires. Default: 2.
func WithStreakLimit(n int) Option {
	return func(o *options) {
		o.thresholds.ConsecutiveWeighLimit = n
	}
}

// WithSessionLimit sets the visit duration beyond which the
// extended-session alert fires. Default: 10 minutes.
func WithSessionLimit(d time.Duration) Option {
	return func(o *options) {
		o.thresholds.ExtendedSession = d
	}
}

func defaultOptions() options {
	return options{thresholds: config.Thresholds{
		WasteAlertPercent:     75,
		UsageHigh:             9,
		UsageLow:              4,
		WeightMin:             8.5,
		WeightMax:             9.1,
		WeightValidMin:        7.5,
		WeightValidMax:        9.5,
		ConsecutiveWeighLimit: 2,
		ExtendedSession:       10 * time.Minute,
	}}
}
