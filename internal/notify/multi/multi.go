package multi

import (
	"context"
	"errors"

	"github.com/avelin/scoop/internal/notify"
)

// Multi fans out alerts to multiple notify.Notifier implementations.
// Each Send call delivers the batch to every wrapped notifier sequentially.
// If one channel fails, the remaining channels still receive the alerts.
type Multi struct {
	notifiers []notify.Notifier
}

// New creates a Multi that fans out to the given notifiers.
func New(notifiers ...notify.Notifier) *Multi {
	return &Multi{notifiers: notifiers}
}

// Send delivers the alert batch to every wrapped notifier. Errors are
// collected but do not prevent delivery to subsequent channels.
func (m *Multi) Send(ctx context.Context, subject string, lines []string) error {
	var errs []error
	for _, n := range m.notifiers {
		if err := n.Send(ctx, subject, lines); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Close calls Close on every wrapped notifier, collecting errors.
func (m *Multi) Close() error {
	var errs []error
	for _, n := range m.notifiers {
		if err := n.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
