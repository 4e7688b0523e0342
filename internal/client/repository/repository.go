package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/ledgersync/internal/client/localstore"
	"github.com/dmitrijs2005/ledgersync/internal/client/syncclient"
	"github.com/dmitrijs2005/ledgersync/internal/logging"
	"github.com/dmitrijs2005/ledgersync/internal/models"
	"github.com/dmitrijs2005/ledgersync/internal/wire"
)

// Repository is one synced entity table.
type Repository[E models.Entity] struct {
	local  localstore.Store[E]
	remote *syncclient.Client[E]
	codec  wire.Codec[E]
	opts   options
	logger logging.Logger
	stats  counters

	pullOnce sync.Once
	pullDone chan struct{}
	// seen is the last applied remote snapshot by id. Only the pull
	// goroutine touches it.
	seen map[string]E

	mu     sync.Mutex
	closed bool
	pushes sync.WaitGroup
}

func New[E models.Entity](local localstore.Store[E], remote *syncclient.Client[E], codec wire.Codec[E], opts ...Option) *Repository[E] {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return &Repository[E]{
		local:    local,
		remote:   remote,
		codec:    codec,
		opts:     o,
		logger:   o.logger.With("module", "repository", "collection", remote.Collection()),
		pullDone: make(chan struct{}),
		seen:     make(map[string]E),
	}
}

func (r *Repository[E]) Collection() string { return r.remote.Collection() }

// Write stores e locally and, for LocalOrigin, pushes it. Only the local
// failure is returned.
func (r *Repository[E]) Write(ctx context.Context, e E, origin Origin) error {
	if err := r.local.Upsert(ctx, e); err != nil {
		return fmt.Errorf("local write %s: %w", e.EntityID(), err)
	}
	r.stats.localWrites.Add(1)

	if origin == RemoteOrigin {
		return nil
	}

	id, fields := e.EntityID(), r.codec.ToWire(e)
	r.push(ctx, func(ctx context.Context) error {
		return r.remote.Upsert(ctx, id, fields)
	})
	return nil
}

// Delete removes e locally and, for LocalOrigin, remotely.
func (r *Repository[E]) Delete(ctx context.Context, e E, origin Origin) error {
	if err := r.local.Delete(ctx, e); err != nil {
		return fmt.Errorf("local delete %s: %w", e.EntityID(), err)
	}
	r.stats.localDeletes.Add(1)

	if origin == RemoteOrigin {
		return nil
	}

	id := e.EntityID()
	r.push(ctx, func(ctx context.Context) error {
		return r.remote.Delete(ctx, id)
	})
	return nil
}

func (r *Repository[E]) Get(ctx context.Context, id string) (E, error) {
	return r.local.Get(ctx, id)
}

func (r *Repository[E]) GetAll(ctx context.Context) ([]E, error) {
	return r.local.GetAll(ctx)
}

func (r *Repository[E]) Observe(ctx context.Context) <-chan []E {
	return r.local.ObserveAll(ctx)
}

// Stats returns the current counters.
func (r *Repository[E]) Stats() Stats {
	return r.stats.snapshot()
}

// Close waits for in-flight async pushes. Pushes issued after Close run
// synchronously.
func (r *Repository[E]) Close() {
	r.mu.Lock()
	r.closed = true
	r.mu.Unlock()
	r.pushes.Wait()
}

func (r *Repository[E]) push(ctx context.Context, fn func(context.Context) error) {
	if r.opts.async {
		r.mu.Lock()
		if !r.closed {
			r.pushes.Add(1)
			r.mu.Unlock()
			go func() {
				defer r.pushes.Done()
				r.runPush(context.WithoutCancel(ctx), fn)
			}()
			return
		}
		r.mu.Unlock()
	}
	r.runPush(ctx, fn)
}

// runPush runs one remote call. Its error was already logged by the client
// and is counted, never returned.
func (r *Repository[E]) runPush(ctx context.Context, fn func(context.Context) error) {
	r.stats.pushesAttempted.Add(1)
	if err := fn(ctx); err != nil {
		r.stats.pushesFailed.Add(1)
	}
}
