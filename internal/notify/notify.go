package notify

import "context"

// Notifier defines the interface for alert delivery channels. lines arrive
// in detector order and must be delivered in that order.
type Notifier interface {
	Send(ctx context.Context, subject string, lines []string) error
	Close() error
}
