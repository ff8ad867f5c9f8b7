package multi

import (
	"context"
	"errors"
	"testing"
)

type recorder struct {
	sent    [][]string
	sendErr error
	closed  bool
}

func (r *recorder) Send(_ context.Context, _ string, lines []string) error {
	r.sent = append(r.sent, lines)
	return r.sendErr
}

func (r *recorder) Close() error {
	r.closed = true
	return nil
}

func TestSend_FansOutToAll(t *testing.T) {
	a, b := &recorder{}, &recorder{}
	m := New(a, b)

	lines := []string{"alert one", "alert two"}
	if err := m.Send(context.Background(), "subject", lines); err != nil {
		t.Fatalf("Send error: %v", err)
	}
	if len(a.sent) != 1 || len(b.sent) != 1 {
		t.Fatalf("deliveries = %d/%d, want 1/1", len(a.sent), len(b.sent))
	}
}

func TestSend_FailureDoesNotBlockOtherChannels(t *testing.T) {
	bad := &recorder{sendErr: errors.New("smtp down")}
	good := &recorder{}
	m := New(bad, good)

	err := m.Send(context.Background(), "subject", []string{"alert"})
	if err == nil {
		t.Fatal("expected joined error from failing channel")
	}
	if len(good.sent) != 1 {
		t.Fatal("healthy channel must still receive the alerts")
	}
}

func TestClose_ClosesAll(t *testing.T) {
	a, b := &recorder{}, &recorder{}
	m := New(a, b)
	if err := m.Close(); err != nil {
		t.Fatalf("Close error: %v", err)
	}
	if !a.closed || !b.closed {
		t.Fatal("expected all wrapped notifiers closed")
	}
}
