package connector

import (
	"context"
	"time"

	"github.com/avelin/scoop/internal/model"
)

// Connector defines the interface all appliance-API connectors must
// implement. A connector only fetches; parsing and analysis happen
// downstream.
type Connector interface {
	// History fetches the raw activity events matching the given window,
	// oldest first.
	History(ctx context.Context, cfg ConnectorConfig, params HistoryParams) ([]model.RawEvent, error)

	// DrawerLevel fetches the current waste drawer fill level (percent).
	// This reading lives in the robot state, not the event stream.
	DrawerLevel(ctx context.Context, cfg ConnectorConfig) (float64, error)
}

// ConnectorConfig holds provider-specific connection settings.
type ConnectorConfig struct {
	Provider string
	Username string
	APIKey   string
	Endpoint string
	RobotID  string
}

// HistoryParams defines the window for an activity-history fetch.
type HistoryParams struct {
	Start time.Time
	End   time.Time
	Limit int
}
