package localstore

import (
	"context"

	"github.com/dmitrijs2005/ledgersync/internal/models"
)

// Store is a keyed table of one entity type.
type Store[E models.Entity] interface {
	// Get returns the entity with the given id or common.ErrNotFound.
	Get(ctx context.Context, id string) (E, error)

	// GetAll returns every stored entity ordered by id.
	GetAll(ctx context.Context) ([]E, error)

	// Upsert inserts e or replaces the stored record with the same id.
	Upsert(ctx context.Context, e E) error

	// Delete removes e by id. Deleting an absent entity is not an error.
	Delete(ctx context.Context, e E) error

	// ObserveAll streams the table contents until ctx is done, then closes
	// the channel.
	ObserveAll(ctx context.Context) <-chan []E
}
