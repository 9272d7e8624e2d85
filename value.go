package typedbytes

import (
	"bytes"
	"math"
	"reflect"

	"github.com/stewi1014/typedbytes/encio"
)

// Vector is a fixed-order sequence, written with a length prefix (tag 8).
// Elements may be of any encodable type, they are not required to share one.
type Vector []any

// List is a fixed-order sequence, written with an end-marker instead of a length prefix (tag 9).
type List []any

// Pair is a single key/value entry of a Map.
type Pair struct {
	Key   any
	Value any
}

// Map is a key/value mapping (tag 10).
// It keeps insertion order so encoding is deterministic, and allows keys that Go maps can't hold, such as Vectors.
// Keys are unique; Set replaces the value of an existing key.
type Map []Pair

// Len returns the number of pairs in the map.
func (m Map) Len() int { return len(m) }

// Get returns the value stored under key.
func (m Map) Get(key any) (any, bool) {
	if i := m.index(key); i >= 0 {
		return m[i].Value, true
	}
	return nil, false
}

// Set stores value under key, replacing an existing value in place or appending a new pair.
func (m *Map) Set(key, value any) {
	if i := m.index(key); i >= 0 {
		(*m)[i].Value = value
		return
	}
	*m = append(*m, Pair{Key: key, Value: value})
}

func (m Map) index(key any) int {
	for i := range m {
		if Equal(m[i].Key, key) {
			return i
		}
	}
	return -1
}

// EndOfList is the zero-width end-marker (tag 255).
// It terminates lists on the wire and is returned by a decoder when it reads the marker.
// It is a protocol artifact, not data; it can't be nested inside containers.
type EndOfList struct{}

// Application is an opaque application-specific payload.
// Tags 50 to 200 are reserved for applications, and by default carry the same wire shape as a byte sequence.
type Application struct {
	Tag  uint8
	Data []byte
}

// IsApplicationTag reports whether tag is reserved for application-specific payloads.
func IsApplicationTag(tag uint8) bool {
	return tag >= TagApplicationMin && tag <= TagApplicationMax
}

// Equal reports whether a and b are the same typed bytes value.
// Containers are compared element by element, Maps regardless of pair order.
// NaN is never equal to anything, like in Go.
func Equal(a, b any) bool {
	switch a := a.(type) {
	case []byte:
		b, ok := b.([]byte)
		return ok && bytes.Equal(a, b)
	case Vector:
		b, ok := b.(Vector)
		return ok && equalSeq(a, b)
	case List:
		b, ok := b.(List)
		return ok && equalSeq(a, b)
	case Map:
		b, ok := b.(Map)
		if !ok || len(a) != len(b) {
			return false
		}
		for _, p := range a {
			v, ok := b.Get(p.Key)
			if !ok || !Equal(p.Value, v) {
				return false
			}
		}
		return true
	case Application:
		b, ok := b.(Application)
		return ok && a.Tag == b.Tag && bytes.Equal(a.Data, b.Data)
	case nil, EndOfList, int8, bool, int32, int64, float32, float64, string:
		return a == b
	default:
		return reflect.DeepEqual(a, b)
	}
}

func equalSeq(a, b []any) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

// compositeKey identifies a key that Go maps can't hold directly, such as a Vector.
type compositeKey string

// mapKey returns a Go map key for v, such that two keys are the same exactly when Equal reports their values are.
// It returns false for values it has no key for: Maps, anything holding a NaN, and types outside the decoded set.
func mapKey(v any) (any, bool) {
	switch v.(type) {
	case EndOfList, int8, bool, int32, int64, float32, float64, string:
		return v, true
	}

	b, ok := appendKey(nil, v)
	if !ok {
		return nil, false
	}
	return compositeKey(b), true
}

// appendKey appends the canonical form of v to b.
// Each value is written as its tag followed by a fixed width or length-prefixed payload, so no form is a prefix of another.
func appendKey(b []byte, v any) ([]byte, bool) {
	var n [8]byte
	switch v := v.(type) {
	case EndOfList:
		return append(b, TagEndOfList), true
	case []byte:
		return appendKeyBytes(append(b, TagBytes), v), true
	case int8:
		return append(b, TagByte, uint8(v)), true
	case bool:
		if v {
			return append(b, TagBool, 1), true
		}
		return append(b, TagBool, 0), true
	case int32:
		encio.EncodeInt32(n[:4], v)
		return append(append(b, TagInt), n[:4]...), true
	case int64:
		encio.EncodeInt64(n[:], v)
		return append(append(b, TagLong), n[:]...), true
	case float32:
		if math.IsNaN(float64(v)) {
			return nil, false
		}
		if v == 0 {
			v = 0 // -0 == 0
		}
		encio.EncodeFloat32(n[:4], v)
		return append(append(b, TagFloat), n[:4]...), true
	case float64:
		if math.IsNaN(v) {
			return nil, false
		}
		if v == 0 {
			v = 0
		}
		encio.EncodeFloat64(n[:], v)
		return append(append(b, TagDouble), n[:]...), true
	case string:
		return appendKeyBytes(append(b, TagString), []byte(v)), true
	case Vector:
		return appendKeySeq(append(b, TagVector), v)
	case List:
		return appendKeySeq(append(b, TagList), v)
	case Application:
		return appendKeyBytes(append(b, v.Tag), v.Data), true
	}
	return nil, false
}

func appendKeyBytes(b, data []byte) []byte {
	var n [4]byte
	encio.EncodeUint32(n[:], uint32(len(data)))
	return append(append(b, n[:]...), data...)
}

func appendKeySeq(b []byte, elems []any) ([]byte, bool) {
	var n [4]byte
	encio.EncodeUint32(n[:], uint32(len(elems)))
	b = append(b, n[:]...)
	for _, elem := range elems {
		var ok bool
		if b, ok = appendKey(b, elem); !ok {
			return nil, false
		}
	}
	return b, true
}
