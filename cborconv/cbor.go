// Package cborconv converts typed bytes values to and from CBOR (RFC 8949).
//
// Maps keep their pair order and may have any value as a key, so they are written pair by pair rather than through a Go map.
// Every other item is encoded with Core Deterministic Encoding.
//
// The conversion keeps values, not wire types:
// integers come back as int32 when they fit and int64 otherwise, floats as float64, and vectors and lists both as List.
// Application payloads become CBOR tags of the same number wrapping a byte string.
package cborconv

import (
	"fmt"
	"io"
	"math"
	"sort"

	"github.com/fxamacker/cbor/v2"
	"github.com/stewi1014/typedbytes"
	"github.com/stewi1014/typedbytes/encio"
)

// CBOR major types handled directly.
const (
	majorArray = 4
	majorMap   = 5
	majorTag   = 6

	// additional information value for indefinite-length items.
	indefinite = 31
	breakCode  = 0xff
)

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error

	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("cborconv: CBOR encoder initialization failed: " + err.Error())
	}

	decMode, err = cbor.DecOptions{
		IntDec: cbor.IntDecConvertSigned,
		UTF8:   cbor.UTF8RejectInvalid,
	}.DecMode()
	if err != nil {
		panic("cborconv: CBOR decoder initialization failed: " + err.Error())
	}
}

// Marshal returns the CBOR encoding of a typed bytes value.
func Marshal(v any) ([]byte, error) {
	return appendValue(nil, v, 0)
}

func appendValue(buff []byte, v any, depth int) ([]byte, error) {
	if depth >= typedbytes.DefaultMaxDepth {
		return nil, encio.NewError(fmt.Errorf("%w: %w", encio.ErrBadValue, encio.ErrTooDeep), fmt.Sprintf("limit is %v", typedbytes.DefaultMaxDepth), "")
	}

	if elems, ok := sequence(v); ok {
		buff = appendHead(buff, majorArray, uint64(len(elems)))
		for _, elem := range elems {
			var err error
			if buff, err = appendValue(buff, elem, depth+1); err != nil {
				return nil, err
			}
		}
		return buff, nil
	}

	if pairs, ok := mapping(v); ok {
		buff = appendHead(buff, majorMap, uint64(len(pairs)))
		for _, p := range pairs {
			var err error
			if buff, err = appendValue(buff, p.Key, depth+1); err != nil {
				return nil, err
			}
			if buff, err = appendValue(buff, p.Value, depth+1); err != nil {
				return nil, err
			}
		}
		return buff, nil
	}

	switch v := v.(type) {
	case []byte:
		if v == nil {
			v = []byte{}
		}
		return appendItem(buff, v)
	case typedbytes.EndOfList:
		return nil, encio.NewError(encio.ErrBadValue, "end-marker has no CBOR representation", "")
	case typedbytes.Application:
		return appendItem(buff, cbor.Tag{Number: uint64(v.Tag), Content: v.Data})
	}

	if typedbytes.KindsOf(v) == 0 {
		return nil, encio.NewError(encio.ErrBadType, fmt.Sprintf("%T is not a typed bytes value", v), "")
	}
	return appendItem(buff, v)
}

func appendItem(buff []byte, v any) ([]byte, error) {
	b, err := encMode.Marshal(v)
	if err != nil {
		return nil, encio.NewError(encio.ErrBadValue, err.Error(), "")
	}
	return append(buff, b...), nil
}

func sequence(v any) ([]any, bool) {
	switch v := v.(type) {
	case typedbytes.Vector:
		return v, true
	case typedbytes.List:
		return v, true
	case []any:
		return v, true
	case typedbytes.Vectorer:
		return v.TypedVector(), true
	case typedbytes.Lister:
		return v.TypedList(), true
	}
	return nil, false
}

func mapping(v any) (typedbytes.Map, bool) {
	switch v := v.(type) {
	case typedbytes.Map:
		return v, true
	case typedbytes.Mapper:
		return v.TypedMap(), true
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		m := make(typedbytes.Map, len(keys))
		for i, k := range keys {
			m[i] = typedbytes.Pair{Key: k, Value: v[k]}
		}
		return m, true
	case map[any]any:
		m := make(typedbytes.Map, 0, len(v))
		for k, val := range v {
			m = append(m, typedbytes.Pair{Key: k, Value: val})
		}
		return m, true
	}
	return nil, false
}

// appendHead appends the initial bytes of a data item, using the shortest argument encoding.
func appendHead(buff []byte, major byte, n uint64) []byte {
	switch {
	case n < 24:
		return append(buff, major<<5|byte(n))
	case n <= math.MaxUint8:
		return append(buff, major<<5|24, byte(n))
	case n <= math.MaxUint16:
		return append(buff, major<<5|25, byte(n>>8), byte(n))
	case n <= math.MaxUint32:
		buff = append(buff, major<<5|26, 0, 0, 0, 0)
		encio.EncodeUint32(buff[len(buff)-4:], uint32(n))
		return buff
	default:
		buff = append(buff, major<<5|27, 0, 0, 0, 0, 0, 0, 0, 0)
		encio.EncodeUint64(buff[len(buff)-8:], n)
		return buff
	}
}

// Unmarshal decodes a single CBOR data item into a typed bytes value.
// data must hold exactly one item.
func Unmarshal(data []byte) (any, error) {
	v, rest, err := decodeItem(data, 0)
	if err != nil {
		return nil, err
	}
	if len(rest) != 0 {
		return nil, encio.NewError(encio.ErrMalformed, fmt.Sprintf("%v bytes of extraneous data", len(rest)), "")
	}
	return v, nil
}

func decodeItem(data []byte, depth int) (any, []byte, error) {
	if depth >= typedbytes.DefaultMaxDepth {
		return nil, nil, encio.NewError(fmt.Errorf("%w: %w", encio.ErrMalformed, encio.ErrTooDeep), fmt.Sprintf("limit is %v", typedbytes.DefaultMaxDepth), "")
	}
	if len(data) == 0 {
		return nil, nil, encio.NewIOError(encio.ErrInsufficientData, "no CBOR data item")
	}

	switch data[0] >> 5 {
	case majorArray:
		n, indef, rest, err := readHead(data)
		if err != nil {
			return nil, nil, err
		}

		list := typedbytes.List{}
		for i := uint64(0); indef || i < n; i++ {
			if indef && len(rest) > 0 && rest[0] == breakCode {
				return list, rest[1:], nil
			}
			var elem any
			if elem, rest, err = decodeItem(rest, depth+1); err != nil {
				return nil, nil, err
			}
			list = append(list, elem)
		}
		return list, rest, nil

	case majorMap:
		n, indef, rest, err := readHead(data)
		if err != nil {
			return nil, nil, err
		}

		m := typedbytes.Map{}
		for i := uint64(0); indef || i < n; i++ {
			if indef && len(rest) > 0 && rest[0] == breakCode {
				return m, rest[1:], nil
			}
			var key, value any
			if key, rest, err = decodeItem(rest, depth+1); err != nil {
				return nil, nil, err
			}
			if value, rest, err = decodeItem(rest, depth+1); err != nil {
				return nil, nil, err
			}
			m.Set(key, value)
		}
		return m, rest, nil

	case majorTag:
		number, _, rest, err := readHead(data)
		if err != nil {
			return nil, nil, err
		}
		if number > math.MaxUint8 || !typedbytes.IsApplicationTag(uint8(number)) {
			return nil, nil, encio.NewError(encio.ErrBadType, fmt.Sprintf("CBOR tag %v has no typed bytes representation", number), "")
		}

		var payload []byte
		if rest, err = decMode.UnmarshalFirst(rest, &payload); err != nil {
			return nil, nil, encio.NewError(encio.ErrMalformed, err.Error(), "")
		}
		if payload == nil {
			payload = []byte{}
		}
		return typedbytes.Application{Tag: uint8(number), Data: payload}, rest, nil
	}

	var v any
	rest, err := decMode.UnmarshalFirst(data, &v)
	if err != nil {
		return nil, nil, encio.NewError(encio.ErrMalformed, err.Error(), "")
	}
	v, err = fromScalar(v)
	return v, rest, err
}

// readHead reads the argument of an array, map or tag head.
// Only arrays and maps may have an indefinite length.
func readHead(data []byte) (n uint64, indef bool, rest []byte, err error) {
	major := data[0] >> 5
	info := data[0] & 0x1f
	data = data[1:]

	var width int
	switch {
	case info < 24:
		return uint64(info), false, data, nil
	case info == 24:
		width = 1
	case info == 25:
		width = 2
	case info == 26:
		width = 4
	case info == 27:
		width = 8
	case info == indefinite && (major == majorArray || major == majorMap):
		return 0, true, data, nil
	default:
		return 0, false, nil, encio.NewError(encio.ErrMalformed, fmt.Sprintf("invalid additional information %v", info), "")
	}

	if len(data) < width {
		return 0, false, nil, encio.NewIOError(encio.ErrInsufficientData, fmt.Sprintf("want %v bytes of CBOR head but only got %v", width, len(data)))
	}
	switch width {
	case 1:
		n = uint64(data[0])
	case 2:
		n = uint64(data[0])<<8 | uint64(data[1])
	case 4:
		n = uint64(encio.DecodeUint32(data))
	case 8:
		n = encio.DecodeUint64(data)
	}
	return n, false, data[width:], nil
}

func fromScalar(v any) (any, error) {
	switch v := v.(type) {
	case int64:
		if v >= math.MinInt32 && v <= math.MaxInt32 {
			return int32(v), nil
		}
		return v, nil
	case float64, bool, string, []byte:
		return v, nil
	}
	return nil, encio.NewError(encio.ErrBadType, fmt.Sprintf("CBOR %T has no typed bytes representation", v), "")
}

// Diagnose decodes one typed bytes value from r and returns it in CBOR diagnostic notation.
// If reg is nil, typedbytes.DefaultRegistry is used.
func Diagnose(r io.Reader, reg *typedbytes.Registry) (string, error) {
	v, err := typedbytes.Decode(r, reg)
	if err != nil {
		return "", err
	}
	data, err := Marshal(v)
	if err != nil {
		return "", err
	}
	return cbor.Diagnose(data)
}
