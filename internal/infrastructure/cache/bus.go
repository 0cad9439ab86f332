package cache

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/elitemotors/detailing-api/pkg/logger"
	"github.com/redis/go-redis/v9"
)

// InvalidationChannel is the Redis channel carrying cache invalidations
const InvalidationChannel = "cache:invalidate"

// Message is one invalidation broadcast
type Message struct {
	Origin   string   `json:"origin"`
	Entities []string `json:"entities,omitempty"`
	All      bool     `json:"all,omitempty"`
}

// InvalidationBus carries invalidations between API instances
type InvalidationBus interface {
	Publish(ctx context.Context, msg Message) error
	Subscribe(ctx context.Context) (<-chan Message, func(), error)
}

// NopBus is used when the API runs as a single instance
type NopBus struct{}

func (NopBus) Publish(context.Context, Message) error { return nil }

func (NopBus) Subscribe(context.Context) (<-chan Message, func(), error) {
	ch := make(chan Message)
	close(ch)
	return ch, func() {}, nil
}

// RedisBus publishes invalidations over Redis pub/sub
type RedisBus struct {
	client  *redis.Client
	channel string
}

// NewRedisBus connects to Redis and verifies the connection
func NewRedisBus(ctx context.Context, addr, password string, db int) (*RedisBus, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("cache.NewRedisBus: ping: %w", err)
	}

	return &RedisBus{client: client, channel: InvalidationChannel}, nil
}

func (b *RedisBus) Close() error {
	if err := b.client.Close(); err != nil {
		return fmt.Errorf("cache.RedisBus.Close: %w", err)
	}
	return nil
}

func (b *RedisBus) Publish(ctx context.Context, msg Message) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("cache.RedisBus.Publish: marshal: %w", err)
	}
	if err := b.client.Publish(ctx, b.channel, payload).Err(); err != nil {
		return fmt.Errorf("cache.RedisBus.Publish: %w", err)
	}
	return nil
}

func (b *RedisBus) Subscribe(ctx context.Context) (<-chan Message, func(), error) {
	sub := b.client.Subscribe(ctx, b.channel)

	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, nil, fmt.Errorf("cache.RedisBus.Subscribe: receive confirmation: %w", err)
	}

	out := make(chan Message, 64)
	redisCh := sub.Channel()
	log := logger.WithComponent("cache.bus")

	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case raw, ok := <-redisCh:
				if !ok {
					return
				}
				var msg Message
				if err := json.Unmarshal([]byte(raw.Payload), &msg); err != nil {
					log.WithError(err).Warn("dropping malformed invalidation")
					continue
				}
				select {
				case out <- msg:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	cleanup := func() {
		_ = sub.Close()
	}

	return out, cleanup, nil
}
