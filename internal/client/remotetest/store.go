// Package remotetest provides an in-memory syncclient.RemoteStore with
// failure injection and call counters.
package remotetest

import (
	"context"
	"sort"
	"sync"

	"github.com/dmitrijs2005/ledgersync/internal/client/syncclient"
	"github.com/dmitrijs2005/ledgersync/internal/common"
	"github.com/dmitrijs2005/ledgersync/internal/wire"
)

type Calls struct {
	Sets    int
	Deletes int
	Gets    int
	Listens int
}

type listener struct {
	wake   chan struct{}
	inject chan []syncclient.Document
	done   chan struct{}
}

// Store is safe for concurrent use by any number of clients.
type Store struct {
	mu        sync.Mutex
	docs      map[string]map[string]wire.Fields
	listeners map[string]map[*listener]struct{}
	calls     Calls

	offline bool
	dropped chan struct{}

	failSet    error
	failDelete error
	failGet    error
	failListen error
}

var _ syncclient.RemoteStore = (*Store)(nil)

func New() *Store {
	return &Store{
		docs:      make(map[string]map[string]wire.Fields),
		listeners: make(map[string]map[*listener]struct{}),
		dropped:   make(chan struct{}),
	}
}

// SetOffline makes every operation fail with common.ErrUnavailable and ends
// active listeners. Going back online does not resubscribe them.
func (s *Store) SetOffline(offline bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if offline && !s.offline {
		close(s.dropped)
	}
	if !offline && s.offline {
		s.dropped = make(chan struct{})
	}
	s.offline = offline
}

func (s *Store) FailSet(err error)    { s.setFail(&s.failSet, err) }
func (s *Store) FailDelete(err error) { s.setFail(&s.failDelete, err) }
func (s *Store) FailGet(err error)    { s.setFail(&s.failGet, err) }
func (s *Store) FailListen(err error) { s.setFail(&s.failListen, err) }

func (s *Store) setFail(dst *error, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	*dst = err
}

func (s *Store) Calls() Calls {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// ActiveListeners reports open ListenCollection subscriptions on collection.
func (s *Store) ActiveListeners(collection string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.listeners[collection])
}

// Doc returns a copy of collection/id as stored.
func (s *Store) Doc(collection, id string) (wire.Fields, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.docs[collection][id]
	if !ok {
		return nil, false
	}
	return wire.Clone(f), true
}

// Put writes a document as if another device had pushed it. It is not
// counted and ignores failure injection.
func (s *Store) Put(collection, id string, fields wire.Fields) {
	s.mu.Lock()
	s.put(collection, id, fields)
	s.mu.Unlock()
	s.changed(collection)
}

// Remove deletes a document as if another device had deleted it.
func (s *Store) Remove(collection, id string) {
	s.mu.Lock()
	delete(s.docs[collection], id)
	s.mu.Unlock()
	s.changed(collection)
}

// Emit delivers docs verbatim to every listener of collection regardless
// of stored state.
func (s *Store) Emit(collection string, docs []syncclient.Document) {
	s.mu.Lock()
	ls := make([]*listener, 0, len(s.listeners[collection]))
	for l := range s.listeners[collection] {
		ls = append(ls, l)
	}
	s.mu.Unlock()

	for _, l := range ls {
		select {
		case l.inject <- docs:
		case <-l.done:
		}
	}
}

func (s *Store) SetDocument(_ context.Context, collection, id string, fields wire.Fields) error {
	s.mu.Lock()
	s.calls.Sets++
	if err := s.failure(s.failSet); err != nil {
		s.mu.Unlock()
		return err
	}
	s.put(collection, id, fields)
	s.mu.Unlock()

	s.changed(collection)
	return nil
}

func (s *Store) DeleteDocument(_ context.Context, collection, id string) error {
	s.mu.Lock()
	s.calls.Deletes++
	if err := s.failure(s.failDelete); err != nil {
		s.mu.Unlock()
		return err
	}
	delete(s.docs[collection], id)
	s.mu.Unlock()

	s.changed(collection)
	return nil
}

func (s *Store) GetCollectionOnce(_ context.Context, collection string) ([]syncclient.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls.Gets++
	if err := s.failure(s.failGet); err != nil {
		return nil, err
	}
	return s.snapshot(collection), nil
}

func (s *Store) ListenCollection(ctx context.Context, collection string, fn func([]syncclient.Document)) error {
	s.mu.Lock()
	s.calls.Listens++
	if err := s.failure(s.failListen); err != nil {
		s.mu.Unlock()
		return err
	}
	l := &listener{
		wake:   make(chan struct{}, 1),
		inject: make(chan []syncclient.Document),
		done:   make(chan struct{}),
	}
	if s.listeners[collection] == nil {
		s.listeners[collection] = make(map[*listener]struct{})
	}
	s.listeners[collection][l] = struct{}{}
	dropped := s.dropped
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.listeners[collection], l)
		s.mu.Unlock()
		close(l.done)
	}()

	l.wake <- struct{}{}
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-dropped:
			return common.ErrUnavailable
		case docs := <-l.inject:
			fn(docs)
		case <-l.wake:
			s.mu.Lock()
			docs := s.snapshot(collection)
			s.mu.Unlock()
			fn(docs)
		}
	}
}

func (s *Store) failure(injected error) error {
	if s.offline {
		return common.ErrUnavailable
	}
	return injected
}

func (s *Store) put(collection, id string, fields wire.Fields) {
	if s.docs[collection] == nil {
		s.docs[collection] = make(map[string]wire.Fields)
	}
	s.docs[collection][id] = wire.Clone(fields)
}

func (s *Store) changed(collection string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for l := range s.listeners[collection] {
		select {
		case l.wake <- struct{}{}:
		default:
		}
	}
}

func (s *Store) snapshot(collection string) []syncclient.Document {
	docs := make([]syncclient.Document, 0, len(s.docs[collection]))
	for id, f := range s.docs[collection] {
		docs = append(docs, syncclient.Document{ID: id, Fields: wire.Clone(f)})
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].ID < docs[j].ID })
	return docs
}
