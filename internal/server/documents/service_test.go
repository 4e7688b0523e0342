package documents

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/ledgersync/internal/common"
	"github.com/dmitrijs2005/ledgersync/internal/server/notify"
	"github.com/dmitrijs2005/ledgersync/internal/wire"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() (*Service, *notify.Hub) {
	hub := notify.NewHub()
	return NewService(NewMemoryRepository(), hub, nil), hub
}

func TestService_SetListDelete(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestService()

	require.NoError(t, s.Set(ctx, "u1", "accounts", "b", wire.Fields{"id": "b", "x": "2"}))
	require.NoError(t, s.Set(ctx, "u1", "accounts", "a", wire.Fields{"id": "a", "x": "1"}))
	require.NoError(t, s.Set(ctx, "u2", "accounts", "c", wire.Fields{"id": "c"}))

	docs, err := s.List(ctx, "u1", "accounts")
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "a", docs[0].ID)
	assert.Equal(t, "b", docs[1].ID)
	assert.False(t, docs[0].UpdatedAt.IsZero())

	require.NoError(t, s.Delete(ctx, "u1", "accounts", "a"))
	require.NoError(t, s.Delete(ctx, "u1", "accounts", "a"))
	docs, err = s.List(ctx, "u1", "accounts")
	require.NoError(t, err)
	assert.Len(t, docs, 1)
}

func TestService_SetReplacesWholeDocument(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestService()

	require.NoError(t, s.Set(ctx, "u1", "accounts", "a", wire.Fields{"id": "a", "x": "1", "y": "1"}))
	require.NoError(t, s.Set(ctx, "u1", "accounts", "a", wire.Fields{"id": "a", "x": "2"}))

	docs, err := s.List(ctx, "u1", "accounts")
	require.NoError(t, err)
	assert.Equal(t, wire.Fields{"id": "a", "x": "2"}, docs[0].Fields)
}

func TestService_RejectsBadInput(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestService()

	assert.ErrorIs(t, s.Set(ctx, "u1", "", "a", nil), common.ErrInvalidDocument)
	assert.ErrorIs(t, s.Set(ctx, "u1", "accounts", " ", nil), common.ErrInvalidDocument)
	assert.ErrorIs(t, s.Set(ctx, "u1", "acc/x", "a", nil), common.ErrInvalidDocument)
	assert.ErrorIs(t, s.Set(ctx, "u1", "accounts", "a", wire.Fields{"n": map[string]any{}}), common.ErrInvalidDocument)
	assert.ErrorIs(t, s.Delete(ctx, "u1", "accounts", ""), common.ErrInvalidDocument)
	_, err := s.List(ctx, "u1", "")
	assert.ErrorIs(t, err, common.ErrInvalidDocument)
}

func TestService_ListenSendsInitialThenChanges(t *testing.T) {
	s, hub := newTestService()
	ctx, cancel := context.WithCancel(context.Background())

	snaps := make(chan []Document, 8)
	done := make(chan error, 1)
	go func() {
		done <- s.Listen(ctx, "u1", "accounts", func(d []Document) error {
			snaps <- d
			return nil
		})
	}()

	first := <-snaps
	assert.Empty(t, first)
	assert.Eventually(t, func() bool { return hub.Subscribers(notify.Topic("u1", "accounts")) == 1 }, time.Second, 5*time.Millisecond)

	require.NoError(t, s.Set(context.Background(), "u2", "accounts", "other", wire.Fields{"id": "other"}))
	require.NoError(t, s.Set(context.Background(), "u1", "accounts", "a", wire.Fields{"id": "a"}))

	select {
	case second := <-snaps:
		require.Len(t, second, 1)
		assert.Equal(t, "a", second[0].ID)
	case <-time.After(2 * time.Second):
		t.Fatal("no snapshot after change")
	}

	cancel()
	require.NoError(t, <-done)
	assert.Equal(t, 0, hub.Subscribers(notify.Topic("u1", "accounts")))
}

func TestService_ListenStopsOnSendError(t *testing.T) {
	s, _ := newTestService()
	boom := errors.New("client gone")
	err := s.Listen(context.Background(), "u1", "accounts", func([]Document) error { return boom })
	assert.ErrorIs(t, err, boom)
}

type failingNotifier struct{ *notify.Hub }

func (failingNotifier) Publish(context.Context, string) error { return errors.New("redis down") }

func TestService_PublishFailureDoesNotFailWrite(t *testing.T) {
	s := NewService(NewMemoryRepository(), failingNotifier{notify.NewHub()}, nil)
	require.NoError(t, s.Set(context.Background(), "u1", "accounts", "a", wire.Fields{"id": "a"}))
	docs, err := s.List(context.Background(), "u1", "accounts")
	require.NoError(t, err)
	assert.Len(t, docs, 1)
}
