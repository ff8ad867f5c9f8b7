package model

import "time"

// RawEvent is the intermediate type produced by connectors and consumed by
// the parser: one device-reported occurrence, text exactly as the vendor
// API returned it.
type RawEvent struct {
	Timestamp time.Time
	Text      string
}
