// Package docrpc defines the DocumentStore gRPC service shared by the sync
// client and the document server.
//
// On the wire every message is a protobuf well-known type carried by the
// default proto codec: requests and snapshots are structpb.Struct,
// document lists are structpb.ListValue, single names are
// wrapperspb.StringValue and empty replies are emptypb.Empty. The stub and
// the service descriptor convert them to and from the typed messages in
// this package, so callers never see the wire shape.
//
// Document fields must be primitives or map to structpb values; numbers
// travel as float64, which is exact for millisecond timestamps.
package docrpc
