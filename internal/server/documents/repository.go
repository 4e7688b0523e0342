package documents

import (
	"context"
	"time"

	"github.com/dmitrijs2005/ledgersync/internal/wire"
)

type Document struct {
	ID        string
	Fields    wire.Fields
	UpdatedAt time.Time
}

// Repository stores whole documents. Put replaces; Delete of an absent
// document is not an error; List is ordered by id.
type Repository interface {
	Put(ctx context.Context, owner, collection string, doc Document) error
	Delete(ctx context.Context, owner, collection, id string) error
	List(ctx context.Context, owner, collection string) ([]Document, error)
}
