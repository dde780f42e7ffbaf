package realtime

import "context"

// Channel and event names mirror what the storefront clients already
// subscribe to.
const (
	OrdersChannel         = "orders-channel"
	DesignRequestsChannel = "designrequest-channel"

	OrderUpdatedEvent         = "order-updated"
	DesignRequestUpdatedEvent = "designrequest-updated"
)

// Event is a named payload pushed to every subscriber of a channel.
type Event struct {
	Channel string `json:"channel"`
	Name    string `json:"event"`
	Payload any    `json:"payload"`
}

// Publisher fans an event out to whoever is currently listening on a
// channel. Delivery is at-most-once: subscribers that are offline or slow at
// publish time miss the event and catch up on their next full fetch.
type Publisher interface {
	Publish(ctx context.Context, channel, name string, payload any) error
}
