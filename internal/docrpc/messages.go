package docrpc

import "github.com/dmitrijs2005/ledgersync/internal/wire"

type Empty struct{}

type Document struct {
	ID     string
	Fields wire.Fields
}

type SetDocumentRequest struct {
	Collection string
	ID         string
	Fields     wire.Fields
}

type DeleteDocumentRequest struct {
	Collection string
	ID         string
}

type GetCollectionRequest struct {
	Collection string
}

type GetCollectionResponse struct {
	Documents []Document
}

type ListenCollectionRequest struct {
	Collection string
}

// Snapshot is the full contents of a collection. Seq grows by one per
// snapshot sent on a stream.
type Snapshot struct {
	Collection string
	Documents  []Document
	Seq        uint64
}

type PingRequest struct{}

type PingResponse struct {
	Status     string
	ServerTime int64
}
