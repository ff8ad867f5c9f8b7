package stdout

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
)

// Notifier prints alerts to stdout. The default channel: useful for cron
// mails and for dry runs before wiring up email or Slack.
type Notifier struct {
	w io.Writer
}

// New creates a stdout Notifier.
func New() *Notifier {
	return &Notifier{w: os.Stdout}
}

func (n *Notifier) Send(_ context.Context, subject string, lines []string) error {
	if _, err := fmt.Fprintf(n.w, "%s\n%s\n", subject, strings.Join(lines, "\n")); err != nil {
		return fmt.Errorf("stdout notifier: %w", err)
	}
	return nil
}

func (n *Notifier) Close() error {
	return nil
}
