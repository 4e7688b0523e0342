package syncclient

import (
	"context"

	"github.com/dmitrijs2005/ledgersync/internal/logging"
	"github.com/dmitrijs2005/ledgersync/internal/wire"
)

const (
	OpUpsert = "upsert"
	OpDelete = "delete"
)

// Client is a RemoteStore bound to one collection and one entity codec.
type Client[E any] struct {
	remote     RemoteStore
	collection string
	codec      wire.Codec[E]
	logger     logging.Logger
}

func New[E any](remote RemoteStore, collection string, codec wire.Codec[E], logger logging.Logger) *Client[E] {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Client[E]{
		remote:     remote,
		collection: collection,
		codec:      codec,
		logger:     logger.With("module", "syncclient", "collection", collection),
	}
}

func (c *Client[E]) Collection() string { return c.collection }

// Upsert replaces the remote document id with fields. Nil values are not
// sent.
func (c *Client[E]) Upsert(ctx context.Context, id string, fields wire.Fields) error {
	if err := c.remote.SetDocument(ctx, c.collection, id, wire.Sanitize(fields)); err != nil {
		c.logger.Error(ctx, "push failed", "id", id, "error", err)
		return &SyncError{Op: OpUpsert, Collection: c.collection, ID: id, Err: err}
	}
	return nil
}

// Delete removes the remote document id.
func (c *Client[E]) Delete(ctx context.Context, id string) error {
	if err := c.remote.DeleteDocument(ctx, c.collection, id); err != nil {
		c.logger.Error(ctx, "remote delete failed", "id", id, "error", err)
		return &SyncError{Op: OpDelete, Collection: c.collection, ID: id, Err: err}
	}
	return nil
}

// FetchAllOnce returns the decoded collection, or an empty slice when the
// remote read fails.
func (c *Client[E]) FetchAllOnce(ctx context.Context) []E {
	docs, err := c.remote.GetCollectionOnce(ctx, c.collection)
	if err != nil {
		c.logger.Error(ctx, "fetch failed", "error", err)
		return []E{}
	}
	return c.decode(docs)
}

// Listen streams decoded snapshots in delivery order. The channel closes
// when ctx is done or the remote stream ends.
func (c *Client[E]) Listen(ctx context.Context) <-chan []E {
	out := make(chan []E)

	go func() {
		defer close(out)

		err := c.remote.ListenCollection(ctx, c.collection, func(docs []Document) {
			items := c.decode(docs)
			select {
			case out <- items:
			case <-ctx.Done():
			}
		})

		if err != nil && ctx.Err() == nil {
			c.logger.Error(ctx, "listener failed", "error", err)
			return
		}
		c.logger.Debug(ctx, "listener stopped")
	}()

	return out
}

func (c *Client[E]) decode(docs []Document) []E {
	items := make([]E, 0, len(docs))
	for _, d := range docs {
		items = append(items, c.codec.FromWire(withKeyAsID(d)))
	}
	return items
}

// withKeyAsID fills a missing or blank id field from the document key so
// that a decoded entity keeps the identity it is stored under remotely.
func withKeyAsID(d Document) wire.Fields {
	if wire.HasID(d.Fields) || d.ID == "" {
		return d.Fields
	}
	f := wire.Clone(d.Fields)
	f[wire.IDKey] = d.ID
	return f
}
