package litterrobot

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/avelin/scoop/internal/connector"
	"github.com/avelin/scoop/internal/connector/httpclient"
	"github.com/avelin/scoop/internal/model"
)

const defaultEndpoint = "https://lr4.iothings.site"

func init() {
	connector.Register("litterrobot", func() connector.Connector {
		return &Connector{}
	})
}

// Connector implements the connector.Connector interface for the Litter
// Robot cloud API.
type Connector struct{}

// Response types (unexported).

type activityResponse struct {
	Activities []activityEntry `json:"activities"`
	NextCursor string          `json:"nextCursor"`
}

type activityEntry struct {
	Timestamp string `json:"timestamp"` // RFC 3339
	Action    string `json:"action"`
}

type robotResponse struct {
	RobotID          string  `json:"robotId"`
	Name             string  `json:"name"`
	WasteDrawerLevel float64 `json:"wasteDrawerLevel"` // percent full
}

func toRawEvent(e activityEntry) model.RawEvent {
	ts, _ := time.Parse(time.RFC3339Nano, e.Timestamp)
	return model.RawEvent{
		Timestamp: ts,
		Text:      e.Action,
	}
}

// History fetches activity events for the given window, oldest first. The
// API pages newest-first with an opaque cursor; results are reversed before
// returning so downstream stages see chronological order.
func (c *Connector) History(ctx context.Context, cfg connector.ConnectorConfig, params connector.HistoryParams) ([]model.RawEvent, error) {
	client, path, err := c.endpoint(cfg, "/activities")
	if err != nil {
		return nil, err
	}

	var newestFirst []model.RawEvent
	cursor := ""

	for {
		q := url.Values{}
		if params.Limit > 0 {
			q.Set("limit", strconv.Itoa(params.Limit))
		}
		if cursor != "" {
			q.Set("cursor", cursor)
		}

		var resp activityResponse
		if err := client.GetJSON(ctx, path, q, &resp); err != nil {
			return nil, fmt.Errorf("litterrobot connector: %w", err)
		}

		done := false
		for _, entry := range resp.Activities {
			raw := toRawEvent(entry)

			// The API has no server-side time range; filter here.
			// Pages are newest-first, so anything before Start means
			// the rest of the feed is older still.
			if !params.Start.IsZero() && raw.Timestamp.Before(params.Start) {
				done = true
				break
			}
			if !params.End.IsZero() && !raw.Timestamp.Before(params.End) {
				continue
			}

			newestFirst = append(newestFirst, raw)
			if params.Limit > 0 && len(newestFirst) >= params.Limit {
				done = true
				break
			}
		}

		cursor = resp.NextCursor
		if done || cursor == "" {
			break
		}
	}

	// Reverse to chronological order.
	for i, j := 0, len(newestFirst)-1; i < j; i, j = i+1, j-1 {
		newestFirst[i], newestFirst[j] = newestFirst[j], newestFirst[i]
	}
	return newestFirst, nil
}

// DrawerLevel fetches the waste drawer fill percentage from robot state.
func (c *Connector) DrawerLevel(ctx context.Context, cfg connector.ConnectorConfig) (float64, error) {
	client, path, err := c.endpoint(cfg, "")
	if err != nil {
		return 0, err
	}

	var resp robotResponse
	if err := client.GetJSON(ctx, path, nil, &resp); err != nil {
		return 0, fmt.Errorf("litterrobot connector: %w", err)
	}
	return resp.WasteDrawerLevel, nil
}

// endpoint builds the HTTP client and robot-scoped path suffix.
func (c *Connector) endpoint(cfg connector.ConnectorConfig, suffix string) (*httpclient.Client, string, error) {
	if cfg.RobotID == "" {
		return nil, "", fmt.Errorf("litterrobot connector: missing robot ID in config")
	}
	baseURL := cfg.Endpoint
	if baseURL == "" {
		baseURL = defaultEndpoint
	}
	return httpclient.New(baseURL, cfg.APIKey), "/v1/robots/" + cfg.RobotID + suffix, nil
}
