package realtime

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"
)

// Engine is the in-process broker: one buffered channel per subscriber,
// grouped by channel name. It backs single-node deployments and tests; the
// Redis relay replaces it when a relay address is configured.
type Engine struct {
	mu     sync.Mutex
	closed bool
	subs   map[string][]*subscription
}

type subscription struct {
	name string
	ch   chan Event
}

func NewEngine() *Engine {
	return &Engine{
		subs: make(map[string][]*subscription),
	}
}

// Subscribe registers a listener on the channel and returns its event stream
// plus an unsubscribe func. The stream is closed on unsubscribe or engine
// shutdown.
func (e *Engine) Subscribe(channel, subscriberName string, buffer int) (<-chan Event, func()) {
	if buffer <= 0 {
		buffer = 10
	}

	sub := &subscription{
		name: subscriberName,
		ch:   make(chan Event, buffer),
	}

	e.mu.Lock()
	e.subs[channel] = append(e.subs[channel], sub)
	e.mu.Unlock()

	unsubscribe := func() {
		e.mu.Lock()
		defer e.mu.Unlock()

		subs := e.subs[channel]
		for i, s := range subs {
			if s == sub {
				e.subs[channel] = append(subs[:i], subs[i+1:]...)
				close(s.ch)
				return
			}
		}
	}

	return sub.ch, unsubscribe
}

// Publish delivers the event to every current subscriber without blocking.
// A subscriber whose buffer is full is skipped; that keeps delivery
// at-most-once rather than letting one stuck client stall the caller.
func (e *Engine) Publish(_ context.Context, channel, name string, payload any) error {
	event := Event{
		Channel: channel,
		Name:    name,
		Payload: payload,
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return nil
	}

	for _, sub := range e.subs[channel] {
		select {
		case sub.ch <- event:
		default:
			logrus.WithFields(logrus.Fields{
				"channel":    channel,
				"event":      name,
				"subscriber": sub.name,
			}).Warn("subscriber buffer full, event dropped")
		}
	}

	return nil
}

// Close shuts every subscriber stream down. Publishes after Close are no-ops.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return
	}
	e.closed = true

	for channel, subs := range e.subs {
		for _, sub := range subs {
			close(sub.ch)
		}
		delete(e.subs, channel)
	}
}
