package events

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// redisDispatcher publishes change notifications through a redis pub/sub
// channel so every process sees writes made by any of them.
type redisDispatcher struct {
	client  *redis.Client
	channel string
	logger  *zap.Logger
}

// NewRedisDispatcher builds a dispatcher over the given redis client.
func NewRedisDispatcher(client *redis.Client, channel string, logger *zap.Logger) Dispatcher {
	return &redisDispatcher{client: client, channel: channel, logger: logger}
}

func (d *redisDispatcher) Publish(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return d.client.Publish(ctx, d.channel, payload).Err()
}

func (d *redisDispatcher) Subscribe(ctx context.Context) (<-chan Event, func(), error) {
	sub := d.client.Subscribe(ctx, d.channel)
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, nil, err
	}

	out := make(chan Event, 16)
	done := make(chan struct{})

	go func() {
		defer close(out)
		msgs := sub.Channel()
		for {
			select {
			case <-done:
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				var event Event
				if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
					d.logger.Warn("malformed change event", zap.Error(err))
					continue
				}
				select {
				case out <- event:
				case <-done:
					return
				}
			}
		}
	}()

	cancel := func() {
		close(done)
		_ = sub.Close()
	}
	return out, cancel, nil
}
