package documents

import (
	"context"
	"sort"
	"sync"

	"github.com/dmitrijs2005/ledgersync/internal/wire"
)

type MemoryRepository struct {
	mu   sync.RWMutex
	data map[string]map[string]Document
}

var _ Repository = (*MemoryRepository)(nil)

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{data: make(map[string]map[string]Document)}
}

func memoryKey(owner, collection string) string {
	return owner + "\x00" + collection
}

func (r *MemoryRepository) Put(_ context.Context, owner, collection string, doc Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := memoryKey(owner, collection)
	if r.data[k] == nil {
		r.data[k] = make(map[string]Document)
	}
	doc.Fields = wire.Clone(doc.Fields)
	r.data[k][doc.ID] = doc
	return nil
}

func (r *MemoryRepository) Delete(_ context.Context, owner, collection, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.data[memoryKey(owner, collection)], id)
	return nil
}

func (r *MemoryRepository) List(_ context.Context, owner, collection string) ([]Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	docs := make([]Document, 0, len(r.data[memoryKey(owner, collection)]))
	for _, d := range r.data[memoryKey(owner, collection)] {
		d.Fields = wire.Clone(d.Fields)
		docs = append(docs, d)
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].ID < docs[j].ID })
	return docs, nil
}
