// Package aggregator folds one calendar day of normalized records into
// DailyStats. Records are processed strictly in the order given — the
// connector delivers them chronologically and the fold never re-sorts.
package aggregator

import (
	"time"

	"github.com/avelin/scoop/internal/config"
	"github.com/avelin/scoop/internal/model"
)

// Aggregate computes the day's statistics. waste is the externally supplied
// drawer reading, passed through unchanged (nil = no reading today).
// Safe on empty and single-record inputs.
func Aggregate(records []model.Record, waste *float64, th config.Thresholds) model.DailyStats {
	stats := model.DailyStats{WastePercent: waste}
	if len(records) > 0 {
		stats.Date = day(records[0].Timestamp)
	}

	streak := weighStreak{limit: th.ConsecutiveWeighLimit}
	clock := sessionClock{limit: th.ExtendedSession}

	var sum float64
	for _, rec := range records {
		if rec.Activity == model.ActivityCycleInProgress {
			stats.UsageCount++
		}
		if rec.Activity == model.ActivityWeightRecorded && rec.HasValue() {
			// Readings outside the valid band are sensor glitches
			// (a paw on the rim, a half-entered cat) and are kept
			// out of the average.
			if v := *rec.Value; v >= th.WeightValidMin && v <= th.WeightValidMax {
				stats.WeightSamples = append(stats.WeightSamples, v)
				sum += v
			}
		}
		streak.observe(rec.Activity)
		clock.observe(rec)
	}

	if n := len(stats.WeightSamples); n > 0 {
		avg := sum / float64(n)
		stats.AverageWeight = &avg
	}

	stats.HasConsecutiveWeighings = streak.tripped
	stats.LongestWeighStreak = streak.longest
	stats.HasExtendedSession = clock.tripped
	stats.LongestSessionSecs = clock.longest.Seconds()
	return stats
}

// weighStreak counts weigh-ins seen since the last cycle record. Any cycle
// record resets the streak; exceeding the limit trips the sticky flag,
// which never clears within the day.
type weighStreak struct {
	limit   int
	count   int
	longest int
	tripped bool
}

func (s *weighStreak) observe(label string) {
	switch {
	case label == model.ActivityWeightRecorded:
		s.count++
		if s.count > s.longest {
			s.longest = s.count
		}
		if s.count > s.limit {
			s.tripped = true
		}
	case model.IsCycleActivity(label):
		s.count = 0
	}
}

// sessionClock measures a visit: started by the first weigh-in or cat
// detection while idle, closed by the completing clean cycle. An
// interrupted cycle abandons the visit without measuring it. A clean cycle
// starting does not close the visit — the cycle that follows the exit is
// part of it.
type sessionClock struct {
	limit   time.Duration
	start   time.Time
	active  bool
	longest time.Duration
	tripped bool
}

func (c *sessionClock) observe(rec model.Record) {
	switch rec.Activity {
	case model.ActivityWeightRecorded, model.ActivityCatDetected:
		if !c.active {
			c.active = true
			c.start = rec.Timestamp
		}
	case model.ActivityCycleComplete:
		if !c.active {
			return
		}
		gap := rec.Timestamp.Sub(c.start)
		if gap > c.longest {
			c.longest = gap
		}
		if gap > c.limit {
			c.tripped = true
		}
		c.active = false
	case model.ActivityCycleInterrupted:
		c.active = false
	}
}

func day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
