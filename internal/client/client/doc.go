// Package client is the gRPC transport of the sync engine.
//
// # Overview
//
// GRPCClient implements syncclient.RemoteStore against the DocumentStore
// service (see package docrpc). It owns one connection, attaches the device
// access token to every unary and streaming call through interceptors, and
// maps gRPC status codes to the sentinel errors in package common:
//
//   - Unauthenticated, PermissionDenied: common.ErrUnauthorized
//   - Unavailable, DeadlineExceeded:     common.ErrUnavailable
//   - NotFound:                          common.ErrNotFound
//   - InvalidArgument:                   common.ErrInvalidDocument
//
// Unary calls are bounded by a per-call timeout; ListenCollection lives as
// long as its context.
//
// GRPCClient is safe for concurrent use.
package client
