package realtime

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

// RedisRelay publishes events over Redis PUB/SUB so every storefront node's
// websocket bridge sees them. Redis PUBLISH is fire-and-forget, which is
// exactly the at-most-once contract the storefront expects.
type RedisRelay struct {
	client *redis.Client
}

func NewRedisRelay(client *redis.Client) *RedisRelay {
	return &RedisRelay{
		client: client,
	}
}

func (r *RedisRelay) Publish(ctx context.Context, channel, name string, payload any) error {
	body, err := json.Marshal(Event{
		Channel: channel,
		Name:    name,
		Payload: payload,
	})
	if err != nil {
		return errors.Wrap(err, "failed to marshal realtime event")
	}

	if err := r.client.Publish(ctx, channel, body).Err(); err != nil {
		return errors.Wrapf(err, "failed to publish realtime event to %q", channel)
	}

	return nil
}
