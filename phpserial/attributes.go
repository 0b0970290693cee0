package phpserial

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
)

// ErrNotObject is returned by Attributes when the record is neither an
// object nor a keyed array. It always accompanies ErrMalformed.
var ErrNotObject = errors.New("phpserial: session value is not an object")

// StripPrefix drops session framework metadata: everything up to and
// including the first '|'. Input without '|' is returned unchanged.
func StripPrefix(raw []byte) []byte {
	i := bytes.IndexByte(raw, '|')
	if i < 0 {
		return raw
	}
	return raw[i+1:]
}

// Attributes flattens a decoded session record into name -> native value,
// taking each object attribute's Val. A top-level array is flattened the
// same way with its keys rendered as strings.
func Attributes(v Value) (map[string]any, error) {
	switch v.Kind {
	case KindObject:
		return objectMap(v.Object), nil
	case KindArray:
		return arrayMap(v.Array), nil
	}
	return nil, fmt.Errorf("%w: %w: got %s", ErrMalformed, ErrNotObject, v.Kind)
}

// Native converts v to plain Go values: nil, bool, int64, float64, string,
// []any for list-shaped arrays, map[string]any for keyed arrays and objects.
func Native(v Value) any {
	switch v.Kind {
	case KindBool:
		return v.Bool
	case KindInt:
		return v.Int
	case KindFloat:
		return v.Float
	case KindString:
		return v.Str
	case KindArray:
		if isList(v.Array) {
			out := make([]any, len(v.Array))
			for i, p := range v.Array {
				out[i] = Native(p.Value)
			}
			return out
		}
		return arrayMap(v.Array)
	case KindObject:
		return objectMap(v.Object)
	default:
		return nil
	}
}

func objectMap(o *Object) map[string]any {
	if o == nil {
		return map[string]any{}
	}
	out := make(map[string]any, len(o.Attrs))
	for _, a := range o.Attrs {
		out[a.Name] = Native(a.Val)
	}
	return out
}

func arrayMap(pairs []Pair) map[string]any {
	out := make(map[string]any, len(pairs))
	for _, p := range pairs {
		out[p.Key.keyString()] = Native(p.Value)
	}
	return out
}

// isList reports whether keys are exactly 0..n-1 in order.
func isList(pairs []Pair) bool {
	for i, p := range pairs {
		if p.Key.Kind != KindInt || p.Key.Int != int64(i) {
			return false
		}
	}
	return true
}

// GoString renders v in a compact debug form.
func (v Value) GoString() string {
	switch v.Kind {
	case KindNull:
		return "null"
	case KindBool:
		return strconv.FormatBool(v.Bool)
	case KindInt:
		return strconv.FormatInt(v.Int, 10)
	case KindFloat:
		return strconv.FormatFloat(v.Float, 'g', -1, 64)
	case KindString:
		return strconv.Quote(v.Str)
	case KindArray:
		return fmt.Sprintf("array(%d)", len(v.Array))
	case KindObject:
		if v.Object == nil {
			return "object(nil)"
		}
		return fmt.Sprintf("%s(%d)", v.Object.Class, len(v.Object.Attrs))
	}
	return v.Kind.String()
}

// LogValue renders v with GoString only when a handler emits the record.
func (v Value) LogValue() slog.Value {
	return slog.StringValue(v.GoString())
}
