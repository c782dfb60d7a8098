package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDispatcher_PublishInvokesSubscribers(t *testing.T) {
	t.Parallel()

	d := NewInMemoryDispatcher()

	var got []string
	d.Subscribe(EventLoginFailed, func(_ context.Context, e Event) error {
		got = append(got, e.Subject)
		return nil
	})
	d.Subscribe(EventLoginFailed, func(_ context.Context, e Event) error {
		got = append(got, e.Subject+"-second")
		return nil
	})

	err := d.Publish(context.Background(), Event{
		ID:        "e-1",
		Type:      EventLoginFailed,
		Subject:   "a@x.com",
		Timestamp: time.Now(),
	})
	require.NoError(t, err)
	require.Equal(t, []string{"a@x.com", "a@x.com-second"}, got)
}

func TestDispatcher_FailingHandlerDoesNotBlockOthers(t *testing.T) {
	t.Parallel()

	d := NewInMemoryDispatcher()

	var reached bool
	d.Subscribe(EventUserRegistered, func(context.Context, Event) error {
		return errors.New("handler failure")
	})
	d.Subscribe(EventUserRegistered, func(context.Context, Event) error {
		reached = true
		return nil
	})

	require.NoError(t, d.Publish(context.Background(), Event{Type: EventUserRegistered}))
	require.True(t, reached)
}

func TestDispatcher_IgnoresUnsubscribedTypes(t *testing.T) {
	t.Parallel()

	d := NewInMemoryDispatcher()
	require.NoError(t, d.Publish(context.Background(), Event{Type: EventSaleRecorded}))
}
