package client

import (
	"context"

	"github.com/dmitrijs2005/ledgersync/internal/client/syncclient"
)

// Client is a RemoteStore with connection management.
type Client interface {
	syncclient.RemoteStore
	Ping(ctx context.Context) error
	SetAccessToken(token string)
	Close() error
}

var _ Client = (*GRPCClient)(nil)
