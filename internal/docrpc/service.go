package docrpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const ServiceName = "ledgersync.docstore.v1.DocumentStore"

const (
	SetDocumentMethod      = "/" + ServiceName + "/SetDocument"
	DeleteDocumentMethod   = "/" + ServiceName + "/DeleteDocument"
	GetCollectionMethod    = "/" + ServiceName + "/GetCollection"
	ListenCollectionMethod = "/" + ServiceName + "/ListenCollection"
	PingMethod             = "/" + ServiceName + "/Ping"
)

// DocumentStoreServer is implemented by the document server.
type DocumentStoreServer interface {
	SetDocument(context.Context, *SetDocumentRequest) (*Empty, error)
	DeleteDocument(context.Context, *DeleteDocumentRequest) (*Empty, error)
	GetCollection(context.Context, *GetCollectionRequest) (*GetCollectionResponse, error)
	ListenCollection(*ListenCollectionRequest, grpc.ServerStreamingServer[Snapshot]) error
	Ping(context.Context, *PingRequest) (*PingResponse, error)
}

// UnimplementedDocumentStoreServer answers every call with codes.Unimplemented.
type UnimplementedDocumentStoreServer struct{}

func (UnimplementedDocumentStoreServer) SetDocument(context.Context, *SetDocumentRequest) (*Empty, error) {
	return nil, status.Error(codes.Unimplemented, "method SetDocument not implemented")
}
func (UnimplementedDocumentStoreServer) DeleteDocument(context.Context, *DeleteDocumentRequest) (*Empty, error) {
	return nil, status.Error(codes.Unimplemented, "method DeleteDocument not implemented")
}
func (UnimplementedDocumentStoreServer) GetCollection(context.Context, *GetCollectionRequest) (*GetCollectionResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetCollection not implemented")
}
func (UnimplementedDocumentStoreServer) ListenCollection(*ListenCollectionRequest, grpc.ServerStreamingServer[Snapshot]) error {
	return status.Error(codes.Unimplemented, "method ListenCollection not implemented")
}
func (UnimplementedDocumentStoreServer) Ping(context.Context, *PingRequest) (*PingResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Ping not implemented")
}

func RegisterDocumentStoreServer(s grpc.ServiceRegistrar, srv DocumentStoreServer) {
	s.RegisterService(&DocumentStore_ServiceDesc, srv)
}

// unaryHandler decodes the wire message with decode, runs the typed call
// through the interceptor and returns the wire reply built by call.
func unaryHandler[Req any](method string, decode func(dec func(any) error) (*Req, error), call func(DocumentStoreServer, context.Context, *Req) (any, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in, err := decode(dec)
		if err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(DocumentStoreServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: method}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(DocumentStoreServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

func decodeSetDocument(dec func(any) error) (*SetDocumentRequest, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	return setDocumentFromProto(in), nil
}

func decodeDeleteDocument(dec func(any) error) (*DeleteDocumentRequest, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	return deleteDocumentFromProto(in), nil
}

func decodeGetCollection(dec func(any) error) (*GetCollectionRequest, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	return &GetCollectionRequest{Collection: in.GetValue()}, nil
}

func decodePing(dec func(any) error) (*PingRequest, error) {
	if err := dec(new(emptypb.Empty)); err != nil {
		return nil, err
	}
	return &PingRequest{}, nil
}

func listenCollectionHandler(srv any, stream grpc.ServerStream) error {
	in := new(wrapperspb.StringValue)
	if err := stream.RecvMsg(in); err != nil {
		return err
	}
	req := &ListenCollectionRequest{Collection: in.GetValue()}
	return srv.(DocumentStoreServer).ListenCollection(req, &snapshotServerStream{ServerStream: stream})
}

// snapshotServerStream encodes every sent Snapshot as a structpb.Struct.
type snapshotServerStream struct {
	grpc.ServerStream
}

func (s *snapshotServerStream) Send(m *Snapshot) error {
	out, err := m.toProto()
	if err != nil {
		return err
	}
	return s.ServerStream.SendMsg(out)
}

var DocumentStore_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*DocumentStoreServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "SetDocument",
			Handler: unaryHandler(SetDocumentMethod, decodeSetDocument, func(s DocumentStoreServer, ctx context.Context, in *SetDocumentRequest) (any, error) {
				if _, err := s.SetDocument(ctx, in); err != nil {
					return nil, err
				}
				return &emptypb.Empty{}, nil
			}),
		},
		{
			MethodName: "DeleteDocument",
			Handler: unaryHandler(DeleteDocumentMethod, decodeDeleteDocument, func(s DocumentStoreServer, ctx context.Context, in *DeleteDocumentRequest) (any, error) {
				if _, err := s.DeleteDocument(ctx, in); err != nil {
					return nil, err
				}
				return &emptypb.Empty{}, nil
			}),
		},
		{
			MethodName: "GetCollection",
			Handler: unaryHandler(GetCollectionMethod, decodeGetCollection, func(s DocumentStoreServer, ctx context.Context, in *GetCollectionRequest) (any, error) {
				resp, err := s.GetCollection(ctx, in)
				if err != nil {
					return nil, err
				}
				return documentsToProto(resp.Documents)
			}),
		},
		{
			MethodName: "Ping",
			Handler: unaryHandler(PingMethod, decodePing, func(s DocumentStoreServer, ctx context.Context, in *PingRequest) (any, error) {
				resp, err := s.Ping(ctx, in)
				if err != nil {
					return nil, err
				}
				return resp.toProto(), nil
			}),
		},
	},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "ListenCollection",
			Handler:       listenCollectionHandler,
			ServerStreams: true,
		},
	},
	Metadata: "docrpc",
}
