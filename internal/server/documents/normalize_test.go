package documents

import (
	"encoding/json"
	"testing"

	"github.com/dmitrijs2005/ledgersync/internal/common"
	"github.com/dmitrijs2005/ledgersync/internal/wire"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeFields_PrimitivesKept(t *testing.T) {
	got, err := NormalizeFields(wire.Fields{
		"id":        "a1",
		"balance":   "100.5",
		"opened_at": json.Number("1767225600123"),
		"term":      int64(12),
		"auto":      true,
		"gone":      nil,
	})
	require.NoError(t, err)
	assert.Equal(t, wire.Fields{
		"id":        "a1",
		"balance":   "100.5",
		"opened_at": float64(1767225600123),
		"term":      float64(12),
		"auto":      true,
	}, got)
}

func TestNormalizeFields_RejectsNested(t *testing.T) {
	cases := map[string]wire.Fields{
		"object": {"id": "a1", "meta": map[string]any{"x": 1}},
		"list":   {"id": "a1", "tags": []any{"a"}},
		"type":   {"id": "a1", "fn": struct{}{}},
	}
	for name, f := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := NormalizeFields(f)
			assert.ErrorIs(t, err, common.ErrInvalidDocument)
		})
	}
}

func TestNormalize_EmptyIsValid(t *testing.T) {
	s, err := Normalize(nil)
	require.NoError(t, err)
	assert.Empty(t, s.GetFields())
}
