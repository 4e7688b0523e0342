package repository

import (
	"time"

	"github.com/dmitrijs2005/ledgersync/internal/logging"
	"github.com/sethvargo/go-retry"
)

const (
	defaultBackoffBase = 500 * time.Millisecond
	defaultBackoffMax  = 30 * time.Second
)

type options struct {
	skipEmpty   bool
	prune       bool
	async       bool
	logger      logging.Logger
	backoffBase time.Duration
	backoffMax  time.Duration
}

func defaultOptions() options {
	return options{
		logger:      logging.Nop(),
		backoffBase: defaultBackoffBase,
		backoffMax:  defaultBackoffMax,
	}
}

// newBackoff is exponential from backoffBase, with 10% jitter, capped at
// backoffMax.
func (o options) newBackoff() retry.Backoff {
	b := retry.NewExponential(o.backoffBase)
	b = retry.WithJitterPercent(10, b)
	return retry.WithCappedDuration(o.backoffMax, b)
}

type Option func(*options)

// WithSkipEmptySnapshots ignores snapshots that contain no documents.
// Useful for collections that are never legitimately emptied, where an empty
// snapshot more likely means a cold or partial remote than a mass delete.
func WithSkipEmptySnapshots() Option {
	return func(o *options) { o.skipEmpty = true }
}

// WithPruneRemoteDeletes deletes local records that disappeared from the
// remote collection between two applied snapshots. Records never seen
// remotely are left alone.
func WithPruneRemoteDeletes() Option {
	return func(o *options) { o.prune = true }
}

// WithAsyncPush returns from Write as soon as the local upsert is done and
// pushes in the background, detached from the caller's cancellation.
func WithAsyncPush() Option {
	return func(o *options) { o.async = true }
}

func WithLogger(l logging.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithReconnectBackoff sets the delay before the first resubscribe after the
// remote stream ends and the cap the delay grows to. Non-positive values
// keep the defaults.
func WithReconnectBackoff(base, ceiling time.Duration) Option {
	return func(o *options) {
		if base > 0 {
			o.backoffBase = base
		}
		if ceiling > 0 {
			o.backoffMax = ceiling
		}
	}
}
