package notify

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func received(ch <-chan struct{}) bool {
	select {
	case <-ch:
		return true
	case <-time.After(200 * time.Millisecond):
		return false
	}
}

func TestHub_PublishWakesOnlyTopicSubscribers(t *testing.T) {
	h := NewHub()
	a, cancelA := h.Subscribe(Topic("u1", "accounts"))
	defer cancelA()
	b, cancelB := h.Subscribe(Topic("u2", "accounts"))
	defer cancelB()

	require.NoError(t, h.Publish(context.Background(), Topic("u1", "accounts")))
	assert.True(t, received(a))
	assert.False(t, received(b))
}

func TestHub_CoalescesBurst(t *testing.T) {
	h := NewHub()
	ch, cancel := h.Subscribe("t")
	defer cancel()

	for i := 0; i < 10; i++ {
		h.Notify("t")
	}
	assert.True(t, received(ch))
	assert.False(t, received(ch))
}

func TestHub_UnsubscribeIsIdempotent(t *testing.T) {
	h := NewHub()
	_, cancel := h.Subscribe("t")
	assert.Equal(t, 1, h.Subscribers("t"))
	cancel()
	cancel()
	assert.Equal(t, 0, h.Subscribers("t"))
}

func TestRedis_HandleForwardsToLocalSubscribers(t *testing.T) {
	r := NewRedisWithClient(redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"}))
	ch, cancel := r.Subscribe("u1/accounts")
	defer cancel()

	r.handle(&redis.Message{Channel: DefaultRedisChannel, Payload: "u1/accounts"})
	assert.True(t, received(ch))

	r.handle(&redis.Message{Channel: DefaultRedisChannel, Payload: ""})
	r.handle(nil)
	assert.False(t, received(ch))
}

func TestRedis_WithChannelIgnoresEmpty(t *testing.T) {
	r := NewRedisWithClient(redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"}), WithRedisChannel(""))
	assert.Equal(t, DefaultRedisChannel, r.channel)
	r = NewRedisWithClient(redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"}), WithRedisChannel("x"))
	assert.Equal(t, "x", r.channel)
}

func TestRedis_RunCanBeCalledAgain(t *testing.T) {
	r := NewRedisWithClient(redis.NewClient(&redis.Options{Addr: "127.0.0.1:0", MaxRetries: -1}))
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	require.Error(t, r.Run(ctx))
	require.Error(t, r.Run(ctx))
	assert.NoError(t, r.Close())
}

func TestRedis_RunRejectsConcurrentRun(t *testing.T) {
	r := NewRedisWithClient(redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"}))
	r.cancelFn = func() {}

	assert.ErrorIs(t, r.Run(context.Background()), ErrRunning)
}

// Runs against a real Redis when LEDGERSYNC_TEST_REDIS is set, e.g.
// LEDGERSYNC_TEST_REDIS=127.0.0.1:6379.
func TestRedis_RoundTrip(t *testing.T) {
	addr := os.Getenv("LEDGERSYNC_TEST_REDIS")
	if addr == "" {
		t.Skip("LEDGERSYNC_TEST_REDIS not set")
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	r, err := NewRedis(ctx, addr, WithRedisChannel("ledgersync:test"))
	require.NoError(t, err)
	defer r.Close()
	go func() { _ = r.Run(ctx) }()

	ch, unsubscribe := r.Subscribe("u1/accounts")
	defer unsubscribe()

	assert.Eventually(t, func() bool {
		_ = r.Publish(ctx, "u1/accounts")
		return received(ch)
	}, 3*time.Second, 50*time.Millisecond)
}
