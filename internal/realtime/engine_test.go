package realtime

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngine_PublishReachesAllSubscribers(t *testing.T) {
	engine := NewEngine()
	defer engine.Close()

	ch1, unsub1 := engine.Subscribe(DesignRequestsChannel, "account-page", 2)
	defer unsub1()
	ch2, unsub2 := engine.Subscribe(DesignRequestsChannel, "admin-dashboard", 2)
	defer unsub2()

	err := engine.Publish(context.Background(), DesignRequestsChannel, DesignRequestUpdatedEvent, map[string]string{
		"id":     "abc123",
		"status": "In Progress",
	})
	require.NoError(t, err)

	for _, ch := range []<-chan Event{ch1, ch2} {
		select {
		case got := <-ch:
			assert.Equal(t, DesignRequestsChannel, got.Channel)
			assert.Equal(t, DesignRequestUpdatedEvent, got.Name)
		case <-time.After(time.Second):
			t.Fatal("subscriber did not receive the event")
		}
	}
}

func TestEngine_PublishDoesNotCrossChannels(t *testing.T) {
	engine := NewEngine()
	defer engine.Close()

	ordersCh, unsub := engine.Subscribe(OrdersChannel, "account-page", 1)
	defer unsub()

	err := engine.Publish(context.Background(), DesignRequestsChannel, DesignRequestUpdatedEvent, nil)
	require.NoError(t, err)

	select {
	case got := <-ordersCh:
		t.Fatalf("unexpected event on orders channel: %+v", got)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestEngine_FullSubscriberIsSkipped(t *testing.T) {
	engine := NewEngine()
	defer engine.Close()

	ch, unsub := engine.Subscribe(OrdersChannel, "slow-client", 1)
	defer unsub()

	ctx := context.Background()
	require.NoError(t, engine.Publish(ctx, OrdersChannel, OrderUpdatedEvent, 1))
	// buffer is full now; the second publish must not block or error
	require.NoError(t, engine.Publish(ctx, OrdersChannel, OrderUpdatedEvent, 2))

	got := <-ch
	assert.Equal(t, 1, got.Payload)

	select {
	case extra := <-ch:
		t.Fatalf("dropped event was delivered: %+v", extra)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestEngine_UnsubscribeClosesStream(t *testing.T) {
	engine := NewEngine()
	defer engine.Close()

	ch, unsub := engine.Subscribe(OrdersChannel, "account-page", 1)
	unsub()

	_, open := <-ch
	assert.False(t, open)

	// publishing to a channel with no subscribers is fine
	require.NoError(t, engine.Publish(context.Background(), OrdersChannel, OrderUpdatedEvent, nil))
}
