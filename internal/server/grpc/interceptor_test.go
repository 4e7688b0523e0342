package grpc

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/ledgersync/internal/common"
	"github.com/dmitrijs2005/ledgersync/internal/docrpc"
	"github.com/dmitrijs2005/ledgersync/internal/logging"
	"github.com/dmitrijs2005/ledgersync/internal/server/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

func newTestServer(secret string) *GRPCServer {
	return &GRPCServer{
		logger:    logging.Nop(),
		jwtSecret: []byte(secret),
		docs:      newDocs(),
	}
}

func incoming(token string) context.Context {
	return metadata.NewIncomingContext(context.Background(), metadata.Pairs(common.AccessTokenHeaderName, token))
}

func TestInterceptor_PingAllowedWithoutToken(t *testing.T) {
	s := newTestServer("secret")
	info := &grpc.UnaryServerInfo{FullMethod: docrpc.PingMethod}
	called := false

	resp, err := s.accessTokenInterceptor(context.Background(), nil, info, func(ctx context.Context, req any) (any, error) {
		called = true
		return "ok", nil
	})
	require.NoError(t, err)
	assert.True(t, called)
	assert.Equal(t, "ok", resp)
}

func TestInterceptor_MissingToken(t *testing.T) {
	s := newTestServer("secret")
	info := &grpc.UnaryServerInfo{FullMethod: docrpc.SetDocumentMethod}

	_, err := s.accessTokenInterceptor(context.Background(), nil, info, func(ctx context.Context, req any) (any, error) {
		t.Fatal("handler should not be called when token missing")
		return nil, nil
	})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
}

func TestInterceptor_InvalidAndExpiredToken(t *testing.T) {
	s := newTestServer("secret")
	info := &grpc.UnaryServerInfo{FullMethod: docrpc.GetCollectionMethod}
	h := func(ctx context.Context, req any) (any, error) {
		t.Fatal("handler should not be called")
		return nil, nil
	}

	_, err := s.accessTokenInterceptor(incoming("garbage"), nil, info, h)
	assert.Equal(t, codes.Unauthenticated, status.Code(err))

	expired, err := auth.GenerateToken("u1", []byte("secret"), -time.Second)
	require.NoError(t, err)
	_, err = s.accessTokenInterceptor(incoming(expired), nil, info, h)
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
	assert.Equal(t, common.ErrTokenExpired.Error(), status.Convert(err).Message())
}

func TestInterceptor_ValidTokenSetsOwner(t *testing.T) {
	s := newTestServer("secret")
	tok, err := auth.GenerateToken("owner-1", []byte("secret"), time.Minute)
	require.NoError(t, err)

	info := &grpc.UnaryServerInfo{FullMethod: docrpc.SetDocumentMethod}
	_, err = s.accessTokenInterceptor(incoming(tok), nil, info, func(ctx context.Context, req any) (any, error) {
		owner, ok := ownerFromContext(ctx)
		assert.True(t, ok)
		assert.Equal(t, "owner-1", owner)
		return nil, nil
	})
	require.NoError(t, err)
}

type fakeServerStream struct {
	grpc.ServerStream
	ctx context.Context
}

func (f *fakeServerStream) Context() context.Context { return f.ctx }

func TestStreamInterceptor(t *testing.T) {
	s := newTestServer("secret")
	info := &grpc.StreamServerInfo{FullMethod: docrpc.ListenCollectionMethod, IsServerStream: true}

	err := s.streamAccessTokenInterceptor(nil, &fakeServerStream{ctx: context.Background()}, info,
		func(srv any, ss grpc.ServerStream) error {
			t.Fatal("handler should not be called without token")
			return nil
		})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))

	tok, err := auth.GenerateToken("owner-2", []byte("secret"), time.Minute)
	require.NoError(t, err)
	err = s.streamAccessTokenInterceptor(nil, &fakeServerStream{ctx: incoming(tok)}, info,
		func(srv any, ss grpc.ServerStream) error {
			owner, ok := ownerFromContext(ss.Context())
			assert.True(t, ok)
			assert.Equal(t, "owner-2", owner)
			return nil
		})
	require.NoError(t, err)
}
