package docrpc

import (
	"github.com/dmitrijs2005/ledgersync/internal/wire"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const (
	keyCollection = "collection"
	keyID         = "id"
	keyFields     = "fields"
	keyDocuments  = "documents"
	keySeq        = "seq"
	keyStatus     = "status"
	keyServerTime = "server_time"
)

func getString(s *structpb.Struct, key string) string {
	return s.GetFields()[key].GetStringValue()
}

func getNumber(s *structpb.Struct, key string) float64 {
	return s.GetFields()[key].GetNumberValue()
}

// fieldsToProto fails with codes.InvalidArgument for values structpb cannot
// represent.
func fieldsToProto(f wire.Fields) (*structpb.Struct, error) {
	s, err := structpb.NewStruct(f)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "document fields: %v", err)
	}
	return s, nil
}

func fieldsFromProto(s *structpb.Struct) wire.Fields {
	return wire.Fields(s.AsMap())
}

func documentsToProto(docs []Document) (*structpb.ListValue, error) {
	list := &structpb.ListValue{Values: make([]*structpb.Value, 0, len(docs))}
	for _, d := range docs {
		fields, err := fieldsToProto(d.Fields)
		if err != nil {
			return nil, err
		}
		list.Values = append(list.Values, structpb.NewStructValue(&structpb.Struct{Fields: map[string]*structpb.Value{
			keyID:     structpb.NewStringValue(d.ID),
			keyFields: structpb.NewStructValue(fields),
		}}))
	}
	return list, nil
}

func documentsFromProto(list *structpb.ListValue) []Document {
	docs := make([]Document, 0, len(list.GetValues()))
	for _, v := range list.GetValues() {
		s := v.GetStructValue()
		docs = append(docs, Document{
			ID:     getString(s, keyID),
			Fields: fieldsFromProto(s.GetFields()[keyFields].GetStructValue()),
		})
	}
	return docs
}

func (m *SetDocumentRequest) toProto() (*structpb.Struct, error) {
	fields, err := fieldsToProto(m.Fields)
	if err != nil {
		return nil, err
	}
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		keyCollection: structpb.NewStringValue(m.Collection),
		keyID:         structpb.NewStringValue(m.ID),
		keyFields:     structpb.NewStructValue(fields),
	}}, nil
}

func setDocumentFromProto(s *structpb.Struct) *SetDocumentRequest {
	return &SetDocumentRequest{
		Collection: getString(s, keyCollection),
		ID:         getString(s, keyID),
		Fields:     fieldsFromProto(s.GetFields()[keyFields].GetStructValue()),
	}
}

func (m *DeleteDocumentRequest) toProto() *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		keyCollection: structpb.NewStringValue(m.Collection),
		keyID:         structpb.NewStringValue(m.ID),
	}}
}

func deleteDocumentFromProto(s *structpb.Struct) *DeleteDocumentRequest {
	return &DeleteDocumentRequest{
		Collection: getString(s, keyCollection),
		ID:         getString(s, keyID),
	}
}

func (m *Snapshot) toProto() (*structpb.Struct, error) {
	docs, err := documentsToProto(m.Documents)
	if err != nil {
		return nil, err
	}
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		keyCollection: structpb.NewStringValue(m.Collection),
		keyDocuments:  structpb.NewListValue(docs),
		keySeq:        structpb.NewNumberValue(float64(m.Seq)),
	}}, nil
}

func snapshotFromProto(s *structpb.Struct) *Snapshot {
	return &Snapshot{
		Collection: getString(s, keyCollection),
		Documents:  documentsFromProto(s.GetFields()[keyDocuments].GetListValue()),
		Seq:        uint64(getNumber(s, keySeq)),
	}
}

func (m *PingResponse) toProto() *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		keyStatus:     structpb.NewStringValue(m.Status),
		keyServerTime: structpb.NewNumberValue(float64(m.ServerTime)),
	}}
}

func pingResponseFromProto(s *structpb.Struct) *PingResponse {
	return &PingResponse{
		Status:     getString(s, keyStatus),
		ServerTime: int64(getNumber(s, keyServerTime)),
	}
}

func collectionToProto(collection string) *wrapperspb.StringValue {
	return wrapperspb.String(collection)
}
