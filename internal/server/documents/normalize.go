package documents

import (
	"fmt"
	"sort"

	"github.com/dmitrijs2005/ledgersync/internal/common"
	"github.com/dmitrijs2005/ledgersync/internal/wire"
	"google.golang.org/protobuf/types/known/structpb"
)

// Normalize converts incoming fields to a structpb document. Values must
// be strings, numbers or booleans; nulls are dropped; nested objects and
// lists are rejected with common.ErrInvalidDocument.
func Normalize(fields wire.Fields) (*structpb.Struct, error) {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := &structpb.Struct{Fields: make(map[string]*structpb.Value, len(fields))}
	for _, k := range keys {
		v, err := structpb.NewValue(fields[k])
		if err != nil {
			return nil, fmt.Errorf("%w: field %q: %v", common.ErrInvalidDocument, k, err)
		}
		switch v.GetKind().(type) {
		case *structpb.Value_NullValue:
			continue
		case *structpb.Value_StructValue, *structpb.Value_ListValue:
			return nil, fmt.Errorf("%w: field %q is not a primitive", common.ErrInvalidDocument, k)
		}
		out.Fields[k] = v
	}
	return out, nil
}

// NormalizeFields is Normalize followed by conversion back to a plain map.
func NormalizeFields(fields wire.Fields) (wire.Fields, error) {
	s, err := Normalize(fields)
	if err != nil {
		return nil, err
	}
	return s.AsMap(), nil
}
