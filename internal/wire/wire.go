// Package wire defines the flat record exchanged with the remote document
// store, and the cast-or-default readers every mapper decodes it with.
//
// Decoding never fails: a value of the wrong type, a malformed string or a
// missing key yields the zero value (or the caller's default) for that field
// only, so one corrupt document can not stop a whole snapshot.
package wire

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/ledgersync/internal/common"
	"github.com/shopspring/decimal"
)

// IDKey is the field holding the entity identifier in every record.
const IDKey = "id"

// Fields is one wire record: field name to string, number or bool.
type Fields map[string]any

// Codec maps an entity to and from its wire record.
// Both directions are total; FromWire degrades bad fields to defaults.
type Codec[E any] interface {
	ToWire(e E) Fields
	FromWire(f Fields) E
}

// Sanitize returns a copy of f without nil values.
func Sanitize(f Fields) Fields {
	out := make(Fields, len(f))
	for k, v := range f {
		if v == nil {
			continue
		}
		out[k] = v
	}
	return out
}

// Clone returns a shallow copy of f.
func Clone(f Fields) Fields {
	out := make(Fields, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

// ID returns the record's identifier, or a freshly generated one when the
// field is missing, empty or not a string.
func ID(f Fields) string {
	if s, ok := f[IDKey].(string); ok && strings.TrimSpace(s) != "" {
		return s
	}
	return common.NewID()
}

// HasID reports whether f carries a usable identifier.
func HasID(f Fields) bool {
	s, ok := f[IDKey].(string)
	return ok && strings.TrimSpace(s) != ""
}

func String(f Fields, key string) string {
	return StringOr(f, key, "")
}

func StringOr(f Fields, key, def string) string {
	if s, ok := f[key].(string); ok {
		return s
	}
	return def
}

func Bool(f Fields, key string) bool {
	switch v := f[key].(type) {
	case bool:
		return v
	case string:
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return false
}

func Int(f Fields, key string) int {
	n, ok := number(f[key])
	if !ok || n > math.MaxInt32 || n < math.MinInt32 {
		return 0
	}
	return int(n)
}

func Int64(f Fields, key string) int64 {
	n, _ := number(f[key])
	return n
}

// Decimal accepts decimal strings and any numeric type.
func Decimal(f Fields, key string) decimal.Decimal {
	switch v := f[key].(type) {
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(v))
		if err == nil {
			return d
		}
	case json.Number:
		d, err := decimal.NewFromString(v.String())
		if err == nil {
			return d
		}
	case float64:
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			return decimal.NewFromFloat(v)
		}
	case float32:
		f64 := float64(v)
		if !math.IsNaN(f64) && !math.IsInf(f64, 0) {
			return decimal.NewFromFloat32(v)
		}
	default:
		if n, ok := number(v); ok {
			return decimal.NewFromInt(n)
		}
	}
	return decimal.Zero
}

// Time accepts Unix milliseconds (any numeric type) or an RFC 3339 string.
// Anything else decodes to the zero time.
func Time(f Fields, key string) time.Time {
	t, _ := timeValue(f[key])
	return t
}

// OptionalTime is Time for nullable fields: nil when absent or invalid.
func OptionalTime(f Fields, key string) *time.Time {
	t, ok := timeValue(f[key])
	if !ok {
		return nil
	}
	return &t
}

// PutDecimal, PutTime and PutOptionalTime write values in the encoding
// conventions the readers above expect.
func PutDecimal(f Fields, key string, d decimal.Decimal) {
	f[key] = d.String()
}

func PutTime(f Fields, key string, t time.Time) {
	if t.IsZero() {
		f[key] = int64(0)
		return
	}
	f[key] = t.UnixMilli()
}

func PutOptionalTime(f Fields, key string, t *time.Time) {
	if t == nil {
		return
	}
	PutTime(f, key, *t)
}

func timeValue(v any) (time.Time, bool) {
	if s, ok := v.(string); ok {
		t, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(s))
		if err != nil {
			return time.Time{}, false
		}
		return t.UTC().Truncate(time.Millisecond), true
	}
	ms, ok := number(v)
	if !ok {
		return time.Time{}, false
	}
	if ms == 0 {
		return time.Time{}, true
	}
	return time.UnixMilli(ms).UTC(), true
}

// number converts every numeric representation a JSON or protobuf decoder
// may produce to int64. Fractional floats are rejected.
func number(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint:
		return int64(n), true
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint64:
		if n > math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	case float32:
		return floatToInt(float64(n))
	case float64:
		return floatToInt(n)
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i, true
		}
		if f, err := n.Float64(); err == nil {
			return floatToInt(f)
		}
	case string:
		if i, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64); err == nil {
			return i, true
		}
	}
	return 0, false
}

func floatToInt(f float64) (int64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	if f >= math.MaxInt64 || f < math.MinInt64 {
		return 0, false
	}
	return int64(f), true
}
