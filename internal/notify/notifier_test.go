package notify

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSender struct {
	name   string
	titles []string
	err    error
}

func (r *recordingSender) Send(ctx context.Context, title, message string) error {
	if r.err != nil {
		return r.err
	}
	r.titles = append(r.titles, title)
	return nil
}

func (r *recordingSender) Name() string { return r.name }

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNotifierFiltersByEvent(t *testing.T) {
	s := &recordingSender{name: "rec"}
	n := NewNotifier([]Sender{s}, []string{"arb_detected"}, testLogger())

	require.NoError(t, n.Notify(context.Background(), "arb_detected", "spread found", "details"))
	require.NoError(t, n.Notify(context.Background(), "scan_complete", "ignored", "details"))

	assert.Equal(t, []string{"spread found"}, s.titles)
}

func TestNotifierEmptyFilterAllowsEverything(t *testing.T) {
	s := &recordingSender{name: "rec"}
	n := NewNotifier([]Sender{s}, nil, testLogger())

	require.NoError(t, n.Notify(context.Background(), "anything", "a", "b"))
	assert.Len(t, s.titles, 1)
}

func TestNotifierOneFailureDoesNotBlockOthers(t *testing.T) {
	bad := &recordingSender{name: "bad", err: errors.New("rate limited")}
	good := &recordingSender{name: "good"}
	n := NewNotifier([]Sender{bad, good}, nil, testLogger())

	err := n.Notify(context.Background(), "arb_detected", "t", "m")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad: rate limited")
	assert.Len(t, good.titles, 1, "delivery continues past a failed sender")
}

func TestNotifierNoSendersIsANoOp(t *testing.T) {
	n := NewNotifier(nil, nil, testLogger())
	assert.NoError(t, n.Notify(context.Background(), "arb_detected", "t", "m"))
}
