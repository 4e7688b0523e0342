package repository

import (
	"context"
	"time"
)

// StartPull subscribes to the remote collection and applies every snapshot
// locally until ctx is done. When the remote stream ends or fails it
// resubscribes after a backoff; the backoff restarts once a subscription
// delivers a snapshot. Only the first call starts anything; every call
// returns the same channel, closed when the pull has stopped.
func (r *Repository[E]) StartPull(ctx context.Context) <-chan struct{} {
	r.pullOnce.Do(func() {
		go func() {
			defer close(r.pullDone)
			r.logger.Info(ctx, "pull started")
			r.pull(ctx)
			r.logger.Info(ctx, "pull stopped")
		}()
	})
	return r.pullDone
}

func (r *Repository[E]) pull(ctx context.Context) {
	backoff := r.opts.newBackoff()
	for {
		delivered := r.subscribe(ctx)
		if ctx.Err() != nil {
			return
		}
		if delivered {
			backoff = r.opts.newBackoff()
		}

		wait, stop := backoff.Next()
		if stop {
			r.logger.Error(ctx, "pull given up")
			return
		}
		r.logger.Warn(ctx, "remote stream ended, resubscribing", "after", wait)

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}
		r.stats.resubscribes.Add(1)
	}
}

// subscribe applies snapshots from one remote subscription until it ends.
// seen survives across subscriptions: every snapshot is the full
// collection, so the first one after a gap still prunes what was deleted
// during it.
func (r *Repository[E]) subscribe(ctx context.Context) bool {
	delivered := false
	for items := range r.remote.Listen(ctx) {
		delivered = true
		r.apply(ctx, items)
	}
	return delivered
}

func (r *Repository[E]) apply(ctx context.Context, items []E) {
	if len(items) == 0 && r.opts.skipEmpty {
		r.stats.snapshotsSkipped.Add(1)
		r.logger.Debug(ctx, "empty snapshot skipped")
		return
	}

	current := make(map[string]E, len(items))
	for _, e := range items {
		current[e.EntityID()] = e
		if err := r.Write(ctx, e, RemoteOrigin); err != nil {
			r.logger.Error(ctx, "apply remote write failed", "id", e.EntityID(), "error", err)
		}
	}

	if r.opts.prune {
		for id, e := range r.seen {
			if _, ok := current[id]; ok {
				continue
			}
			if err := r.Delete(ctx, e, RemoteOrigin); err != nil {
				r.logger.Error(ctx, "apply remote delete failed", "id", id, "error", err)
				continue
			}
			r.stats.remoteDeletesApplied.Add(1)
		}
	}

	r.seen = current
	r.stats.snapshotsApplied.Add(1)
	r.logger.Debug(ctx, "snapshot applied", "documents", len(items))
}

// Refresh fetches the remote collection once and writes every document
// locally. It never prunes: a failed fetch looks like an empty collection.
func (r *Repository[E]) Refresh(ctx context.Context) int {
	items := r.remote.FetchAllOnce(ctx)
	applied := 0
	for _, e := range items {
		if err := r.Write(ctx, e, RemoteOrigin); err != nil {
			r.logger.Error(ctx, "refresh write failed", "id", e.EntityID(), "error", err)
			continue
		}
		applied++
	}
	r.logger.Debug(ctx, "refreshed", "documents", applied)
	return applied
}
