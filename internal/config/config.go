package config

import (
	"os"
	"strconv"
)

// Config holds all scoop configuration.
type Config struct {
	Connector  ConnectorConfig
	Thresholds Thresholds
	Store      StoreConfig
	Notify     NotifyConfig
	Dashboard  DashboardConfig
	Timezone   string
	LogLevel   string
}

// ConnectorConfig holds appliance-API connection settings.
type ConnectorConfig struct {
	Provider     string
	Username     string
	APIKey       string
	Endpoint     string
	RobotID      string
	HistoryLimit int
}

// StoreConfig holds persisted-log settings.
type StoreConfig struct {
	Path string
}

// NotifyConfig holds alert delivery settings.
type NotifyConfig struct {
	Channels string // comma-separated: "stdout", "email", "slack"
	Email    EmailConfig
	Slack    SlackConfig
}

// EmailConfig holds SMTP delivery settings. From doubles as the recipient:
// the household operator mails themselves.
type EmailConfig struct {
	SMTPHost string
	SMTPPort int
	From     string
	Password string
}

// SlackConfig holds Slack Web API settings. The bot resolves the DM channel
// from the operator's workspace email.
type SlackConfig struct {
	Token    string
	Email    string
	Endpoint string
}

// DashboardConfig holds history-chart server settings.
type DashboardConfig struct {
	Addr       string
	WindowDays int
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		Connector: ConnectorConfig{
			Provider:     getenv("SCOOP_CONNECTOR", "litterrobot"),
			Username:     os.Getenv("SCOOP_USERNAME"),
			APIKey:       os.Getenv("SCOOP_API_KEY"),
			Endpoint:     os.Getenv("SCOOP_ENDPOINT"),
			RobotID:      os.Getenv("SCOOP_ROBOT_ID"),
			HistoryLimit: getenvInt("SCOOP_HISTORY_LIMIT", 300),
		},
		Thresholds: LoadThresholds(),
		Store: StoreConfig{
			Path: getenv("SCOOP_LOG_PATH", "activity_log.csv"),
		},
		Notify: NotifyConfig{
			Channels: getenv("SCOOP_NOTIFY", "stdout"),
			Email: EmailConfig{
				SMTPHost: getenv("SCOOP_SMTP_HOST", "smtp.gmail.com"),
				SMTPPort: getenvInt("SCOOP_SMTP_PORT", 587),
				From:     os.Getenv("SCOOP_EMAIL_FROM"),
				Password: os.Getenv("SCOOP_EMAIL_PASSWORD"),
			},
			Slack: SlackConfig{
				Token:    os.Getenv("SCOOP_SLACK_TOKEN"),
				Email:    os.Getenv("SCOOP_SLACK_EMAIL"),
				Endpoint: getenv("SCOOP_SLACK_ENDPOINT", "https://slack.com/api"),
			},
		},
		Dashboard: DashboardConfig{
			Addr:       getenv("SCOOP_DASHBOARD_ADDR", ":8077"),
			WindowDays: getenvInt("SCOOP_DASHBOARD_WINDOW_DAYS", 30),
		},
		Timezone: getenv("SCOOP_TIMEZONE", "America/New_York"),
		LogLevel: getenv("SCOOP_LOG_LEVEL", "info"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getenvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}
