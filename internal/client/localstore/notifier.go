package localstore

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/ledgersync/internal/logging"
)

// notifier wakes subscribers after a change. Each subscriber has a single
// slot, so a slow reader sees one pending wake-up, not a backlog.
type notifier struct {
	mu   sync.Mutex
	next int
	subs map[int]chan struct{}
}

func newNotifier() *notifier {
	return &notifier{subs: make(map[int]chan struct{})}
}

func (n *notifier) subscribe() (<-chan struct{}, func()) {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.next
	n.next++
	ch := make(chan struct{}, 1)
	n.subs[id] = ch

	return ch, func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		delete(n.subs, id)
	}
}

func (n *notifier) notify() {
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, ch := range n.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// observe runs the ObserveAll loop shared by Table and Memory.
func observe[E any](ctx context.Context, n *notifier, logger logging.Logger, load func(context.Context) ([]E, error)) <-chan []E {
	out := make(chan []E)
	changes, unsubscribe := n.subscribe()

	go func() {
		defer close(out)
		defer unsubscribe()

		for {
			items, err := load(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				logger.Error(ctx, "observe: reload failed", "error", err)
			} else {
				select {
				case out <- items:
				case <-ctx.Done():
					return
				}
			}

			select {
			case <-changes:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out
}
