package docrpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

// DocumentStoreClient is the client stub.
type DocumentStoreClient interface {
	SetDocument(ctx context.Context, in *SetDocumentRequest, opts ...grpc.CallOption) (*Empty, error)
	DeleteDocument(ctx context.Context, in *DeleteDocumentRequest, opts ...grpc.CallOption) (*Empty, error)
	GetCollection(ctx context.Context, in *GetCollectionRequest, opts ...grpc.CallOption) (*GetCollectionResponse, error)
	ListenCollection(ctx context.Context, in *ListenCollectionRequest, opts ...grpc.CallOption) (grpc.ServerStreamingClient[Snapshot], error)
	Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error)
}

type documentStoreClient struct {
	cc grpc.ClientConnInterface
}

func NewDocumentStoreClient(cc grpc.ClientConnInterface) DocumentStoreClient {
	return &documentStoreClient{cc: cc}
}

func (c *documentStoreClient) SetDocument(ctx context.Context, in *SetDocumentRequest, opts ...grpc.CallOption) (*Empty, error) {
	req, err := in.toProto()
	if err != nil {
		return nil, err
	}
	if err := c.cc.Invoke(ctx, SetDocumentMethod, req, new(emptypb.Empty), opts...); err != nil {
		return nil, err
	}
	return &Empty{}, nil
}

func (c *documentStoreClient) DeleteDocument(ctx context.Context, in *DeleteDocumentRequest, opts ...grpc.CallOption) (*Empty, error) {
	if err := c.cc.Invoke(ctx, DeleteDocumentMethod, in.toProto(), new(emptypb.Empty), opts...); err != nil {
		return nil, err
	}
	return &Empty{}, nil
}

func (c *documentStoreClient) GetCollection(ctx context.Context, in *GetCollectionRequest, opts ...grpc.CallOption) (*GetCollectionResponse, error) {
	out := new(structpb.ListValue)
	if err := c.cc.Invoke(ctx, GetCollectionMethod, collectionToProto(in.Collection), out, opts...); err != nil {
		return nil, err
	}
	return &GetCollectionResponse{Documents: documentsFromProto(out)}, nil
}

func (c *documentStoreClient) ListenCollection(ctx context.Context, in *ListenCollectionRequest, opts ...grpc.CallOption) (grpc.ServerStreamingClient[Snapshot], error) {
	stream, err := c.cc.NewStream(ctx, &DocumentStore_ServiceDesc.Streams[0], ListenCollectionMethod, opts...)
	if err != nil {
		return nil, err
	}
	if err := stream.SendMsg(collectionToProto(in.Collection)); err != nil {
		return nil, err
	}
	if err := stream.CloseSend(); err != nil {
		return nil, err
	}
	return &snapshotClientStream{ClientStream: stream}, nil
}

func (c *documentStoreClient) Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, PingMethod, new(emptypb.Empty), out, opts...); err != nil {
		return nil, err
	}
	return pingResponseFromProto(out), nil
}

// snapshotClientStream decodes every received structpb.Struct into a
// Snapshot.
type snapshotClientStream struct {
	grpc.ClientStream
}

func (s *snapshotClientStream) Recv() (*Snapshot, error) {
	m := new(structpb.Struct)
	if err := s.ClientStream.RecvMsg(m); err != nil {
		return nil, err
	}
	return snapshotFromProto(m), nil
}
