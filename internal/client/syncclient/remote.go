package syncclient

import (
	"context"

	"github.com/dmitrijs2005/ledgersync/internal/wire"
)

// Document is one remote record: its key and its flat field map.
type Document struct {
	ID     string
	Fields wire.Fields
}

// RemoteStore is a collection-partitioned document store.
type RemoteStore interface {
	// SetDocument replaces the whole document collection/id with fields.
	SetDocument(ctx context.Context, collection, id string, fields wire.Fields) error

	// DeleteDocument removes collection/id. Deleting an absent document is
	// not an error.
	DeleteDocument(ctx context.Context, collection, id string) error

	// GetCollectionOnce returns the current contents of collection.
	GetCollectionOnce(ctx context.Context, collection string) ([]Document, error)

	// ListenCollection calls fn with the full contents of collection, first
	// immediately and then after every change, until ctx is done or the
	// stream fails. It blocks for the lifetime of the subscription.
	ListenCollection(ctx context.Context, collection string, fn func([]Document)) error
}
