package notify

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/ledgersync/internal/logging"
	"github.com/redis/go-redis/v9"
)

const DefaultRedisChannel = "ledgersync:changes"

const closeTimeout = 5 * time.Second

// Redis bridges a local Hub across server instances over Redis Pub/Sub.
// Publish goes to Redis only; every instance, the publisher included,
// receives it back in Run and notifies its local subscribers.
type Redis struct {
	client     *redis.Client
	ownsClient bool
	channel    string
	hub        *Hub
	logger     logging.Logger

	mu       sync.Mutex
	cancelFn context.CancelFunc
	doneCh   chan struct{}
}

var _ Notifier = (*Redis)(nil)

type RedisOption func(*Redis)

func WithRedisChannel(channel string) RedisOption {
	return func(r *Redis) {
		if channel != "" {
			r.channel = channel
		}
	}
}

func WithRedisLogger(l logging.Logger) RedisOption {
	return func(r *Redis) { r.logger = l }
}

// NewRedis connects to addr and verifies the connection.
func NewRedis(ctx context.Context, addr string, opts ...RedisOption) (*Redis, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	r := NewRedisWithClient(client, opts...)
	r.ownsClient = true
	return r, nil
}

// NewRedisWithClient uses an existing client; the caller keeps ownership.
func NewRedisWithClient(client *redis.Client, opts ...RedisOption) *Redis {
	r := &Redis{
		client:  client,
		channel: DefaultRedisChannel,
		hub:     NewHub(),
		logger:  logging.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = r.logger.With("module", "notify_redis", "channel", r.channel)
	return r
}

func (r *Redis) Publish(ctx context.Context, topic string) error {
	if err := r.client.Publish(ctx, r.channel, topic).Err(); err != nil {
		r.logger.Error(ctx, "publish failed", "topic", topic, "error", err)
		return fmt.Errorf("failed to publish change: %w", err)
	}
	return nil
}

func (r *Redis) Subscribe(topic string) (<-chan struct{}, func()) {
	return r.hub.Subscribe(topic)
}

// ErrRunning is returned by Run while another Run is active.
var ErrRunning = errors.New("redis notifier already running")

// Run forwards Redis messages to local subscribers until ctx is done or
// Close is called. It blocks. Run may be called again once it has returned.
func (r *Redis) Run(ctx context.Context) error {
	subCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	r.mu.Lock()
	if r.cancelFn != nil {
		r.mu.Unlock()
		cancel()
		return ErrRunning
	}
	r.cancelFn, r.doneCh = cancel, done
	r.mu.Unlock()

	defer func() {
		r.mu.Lock()
		r.cancelFn, r.doneCh = nil, nil
		r.mu.Unlock()
		close(done)
	}()
	defer cancel()

	pubsub := r.client.Subscribe(subCtx, r.channel)
	defer pubsub.Close()

	if _, err := pubsub.Receive(subCtx); err != nil {
		return fmt.Errorf("failed to subscribe to channel: %w", err)
	}
	r.logger.Info(subCtx, "subscribed")

	ch := pubsub.Channel()
	for {
		select {
		case <-subCtx.Done():
			r.logger.Info(subCtx, "subscription stopped")
			return nil
		case msg, ok := <-ch:
			if !ok {
				r.logger.Warn(subCtx, "subscription channel closed")
				return nil
			}
			r.handle(msg)
		}
	}
}

func (r *Redis) handle(msg *redis.Message) {
	if msg == nil || msg.Payload == "" {
		return
	}
	r.hub.Notify(msg.Payload)
}

// Close stops Run and releases the client if NewRedis created it.
func (r *Redis) Close() error {
	r.mu.Lock()
	cancelFn, done := r.cancelFn, r.doneCh
	r.mu.Unlock()

	if cancelFn != nil {
		cancelFn()
		select {
		case <-done:
		case <-time.After(closeTimeout):
			r.logger.Warn(context.Background(), "timeout waiting for subscription to stop")
		}
	}
	if r.ownsClient {
		return r.client.Close()
	}
	return nil
}
