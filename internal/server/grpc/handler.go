package grpc

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/ledgersync/internal/common"
	"github.com/dmitrijs2005/ledgersync/internal/docrpc"
	"github.com/dmitrijs2005/ledgersync/internal/server/documents"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func (s *GRPCServer) owner(ctx context.Context) (string, error) {
	owner, ok := ownerFromContext(ctx)
	if !ok {
		return "", status.Error(codes.Unauthenticated, "unauthorized")
	}
	return owner, nil
}

func (s *GRPCServer) mapError(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, common.ErrInvalidDocument):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, common.ErrNotFound):
		return status.Error(codes.NotFound, "not found")
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, "canceled")
	default:
		s.logger.Error(ctx, err.Error())
		return status.Error(codes.Internal, "internal error")
	}
}

func (s *GRPCServer) SetDocument(ctx context.Context, req *docrpc.SetDocumentRequest) (*docrpc.Empty, error) {
	owner, err := s.owner(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.docs.Set(ctx, owner, req.Collection, req.ID, req.Fields); err != nil {
		return nil, s.mapError(ctx, err)
	}

	s.logger.Debug(ctx, "document set", "collection", req.Collection, "id", req.ID)
	return &docrpc.Empty{}, nil
}

func (s *GRPCServer) DeleteDocument(ctx context.Context, req *docrpc.DeleteDocumentRequest) (*docrpc.Empty, error) {
	owner, err := s.owner(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.docs.Delete(ctx, owner, req.Collection, req.ID); err != nil {
		return nil, s.mapError(ctx, err)
	}

	s.logger.Debug(ctx, "document deleted", "collection", req.Collection, "id", req.ID)
	return &docrpc.Empty{}, nil
}

func (s *GRPCServer) GetCollection(ctx context.Context, req *docrpc.GetCollectionRequest) (*docrpc.GetCollectionResponse, error) {
	owner, err := s.owner(ctx)
	if err != nil {
		return nil, err
	}

	docs, err := s.docs.List(ctx, owner, req.Collection)
	if err != nil {
		return nil, s.mapError(ctx, err)
	}
	return &docrpc.GetCollectionResponse{Documents: toWire(docs)}, nil
}

func (s *GRPCServer) ListenCollection(req *docrpc.ListenCollectionRequest, stream grpc.ServerStreamingServer[docrpc.Snapshot]) error {
	ctx := stream.Context()
	owner, err := s.owner(ctx)
	if err != nil {
		return err
	}

	s.logger.Info(ctx, "listener attached", "collection", req.Collection)
	defer s.logger.Info(ctx, "listener detached", "collection", req.Collection)

	var seq uint64
	err = s.docs.Listen(ctx, owner, req.Collection, func(docs []documents.Document) error {
		seq++
		return stream.Send(&docrpc.Snapshot{
			Collection: req.Collection,
			Documents:  toWire(docs),
			Seq:        seq,
		})
	})
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		if _, ok := status.FromError(err); ok {
			return err
		}
		return s.mapError(ctx, err)
	}
	return nil
}

func (s *GRPCServer) Ping(ctx context.Context, req *docrpc.PingRequest) (*docrpc.PingResponse, error) {
	return &docrpc.PingResponse{Status: "OK", ServerTime: time.Now().UnixMilli()}, nil
}

func toWire(docs []documents.Document) []docrpc.Document {
	out := make([]docrpc.Document, 0, len(docs))
	for _, d := range docs {
		out = append(out, docrpc.Document{ID: d.ID, Fields: d.Fields})
	}
	return out
}
