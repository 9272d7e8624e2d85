// Package typedbytes implements the Hadoop "typed bytes" binary format: a self-describing stream of values,
// each written as a one byte type tag followed by a tag-specific payload.
//
// The default tags are
//
//	0    byte sequence   int32 size, raw bytes
//	1    byte            signed 8-bit integer
//	2    boolean         one byte, 0 or 1
//	3    int             signed 32-bit integer
//	4    long            signed 64-bit integer
//	5    float           32-bit IEEE 754
//	6    double          64-bit IEEE 754
//	7    string          int32 size, UTF-8 bytes
//	8    vector          int32 count, that many typed values
//	9    list            typed values until the end-marker
//	10   map             int32 pair count, typed keys and values alternating
//	255  end-marker      no payload
//
// Tags 50 to 200 are reserved for applications. Multi-byte fields are big-endian.
//
// Encoding and decoding are driven by a Registry of Definitions.
// A value is encoded with the first definition whose Matcher accepts it, and decoded with the definition registered for the tag read;
// registries can be extended with application types, or to override the default interpretation of a tag.
//
// Decoded values use a small set of Go types:
// []byte, int8, bool, int32, int64, float32, float64, string, Vector, List, Map and Application.
// Other Go integers, floats, []any, map[string]any and map[any]any, as well as types implementing Vectorer, Lister or Mapper,
// can be encoded, and decode to the nearest of those types.
//
// typedbytes/encio provides io and error types used by the codecs.
// typedbytes/cborconv converts values to and from CBOR.
package typedbytes

import (
	"io"

	"github.com/stewi1014/typedbytes/encio"
)

// Encode writes v with its type tag to w and flushes it.
// If reg is nil, DefaultRegistry is used.
func Encode(w io.Writer, v any, reg *Registry) error {
	return NewEncoder(w, &Config{Registry: reg}).Encode(v)
}

// Decode reads exactly one value from r; the end-marker is returned as EndOfList.
// A stream holding no value at all is an error wrapping encio.ErrInsufficientData.
// If reg is nil, DefaultRegistry is used.
func Decode(r io.Reader, reg *Registry) (any, error) {
	v, err := NewDecoder(r, &Config{Registry: reg}).DecodeValue()
	if err == io.EOF {
		return nil, encio.NewIOError(encio.ErrInsufficientData, "stream holds no value")
	}
	return v, err
}

// Marshal returns the encoding of v using DefaultRegistry.
func Marshal(v any) ([]byte, error) {
	return MarshalWith(v, nil)
}

// MarshalWith returns the encoding of v using reg.
func MarshalWith(v any, reg *Registry) ([]byte, error) {
	buff := encio.NewBuffer(nil)
	if err := Encode(buff, v, reg); err != nil {
		return nil, err
	}
	return buff.Bytes(), nil
}

// Unmarshal decodes the first value in b using DefaultRegistry.
// Bytes after the first value are ignored.
func Unmarshal(b []byte) (any, error) {
	return UnmarshalWith(b, nil)
}

// UnmarshalWith decodes the first value in b using reg.
func UnmarshalWith(b []byte, reg *Registry) (any, error) {
	return Decode(encio.NewBuffer(b), reg)
}
