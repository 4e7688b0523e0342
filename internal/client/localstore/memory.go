package localstore

import (
	"context"
	"sort"
	"sync"

	"github.com/dmitrijs2005/ledgersync/internal/common"
	"github.com/dmitrijs2005/ledgersync/internal/logging"
	"github.com/dmitrijs2005/ledgersync/internal/models"
)

// Memory is a map-backed Store. It is safe for concurrent use.
type Memory[E models.Entity] struct {
	mu    sync.RWMutex
	items map[string]E
	n     *notifier
}

var _ Store[models.Account] = (*Memory[models.Account])(nil)

func NewMemory[E models.Entity]() *Memory[E] {
	return &Memory[E]{items: make(map[string]E), n: newNotifier()}
}

func (m *Memory[E]) Get(_ context.Context, id string) (E, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.items[id]
	if !ok {
		var zero E
		return zero, common.ErrNotFound
	}
	return e, nil
}

func (m *Memory[E]) GetAll(_ context.Context) ([]E, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]E, 0, len(m.items))
	for _, e := range m.items {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EntityID() < out[j].EntityID() })
	return out, nil
}

func (m *Memory[E]) Upsert(_ context.Context, e E) error {
	m.mu.Lock()
	m.items[e.EntityID()] = e
	m.mu.Unlock()
	m.n.notify()
	return nil
}

func (m *Memory[E]) Delete(_ context.Context, e E) error {
	m.mu.Lock()
	delete(m.items, e.EntityID())
	m.mu.Unlock()
	m.n.notify()
	return nil
}

func (m *Memory[E]) ObserveAll(ctx context.Context) <-chan []E {
	return observe(ctx, m.n, logging.Nop(), m.GetAll)
}
