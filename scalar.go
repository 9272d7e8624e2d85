package typedbytes

// Scalar & string definitions.
// Encoders accept every Go type whose kinds their default definition matches,
// and coerce anything else a custom registry might hand them, failing when that would lose information.

import (
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/stewi1014/typedbytes/encio"
)

// EncodeEndOfList writes nothing; the end-marker is just its tag.
func EncodeEndOfList(e *Encoder, v any) error {
	return nil
}

// DecodeEndOfList reads nothing and returns EndOfList.
func DecodeEndOfList(d *Decoder) (any, error) {
	return EndOfList{}, nil
}

// EncodeBytes writes a []byte as a size followed by the raw bytes.
func EncodeBytes(e *Encoder, v any) error {
	b, ok := v.([]byte)
	if !ok {
		return badType(v, "byte sequence")
	}
	if err := e.WriteSize(len(b)); err != nil {
		return err
	}
	return e.WriteRaw(b)
}

// DecodeBytes reads a size followed by that many raw bytes.
func DecodeBytes(d *Decoder) (any, error) {
	size, err := d.ReadSize()
	if err != nil {
		return nil, err
	}
	return d.ReadRaw(size)
}

// EncodeByte writes an integer as a signed byte.
func EncodeByte(e *Encoder, v any) error {
	n, err := toInt64(v)
	if err != nil {
		return err
	}
	if n < math.MinInt8 || n > math.MaxInt8 {
		return badValue(v, "integer must be in the range of a signed byte")
	}
	return e.WriteInt8(int8(n))
}

// DecodeByte reads a signed byte as an int8.
func DecodeByte(d *Decoder) (any, error) {
	return d.ReadInt8()
}

// EncodeBool writes a bool as a single 0 or 1 byte.
func EncodeBool(e *Encoder, v any) error {
	b, ok := v.(bool)
	if !ok {
		return badType(v, "boolean")
	}
	if b {
		return e.WriteInt8(1)
	}
	return e.WriteInt8(0)
}

// DecodeBool reads a boolean byte.
// Bytes other than 0 and 1 are malformed.
func DecodeBool(d *Decoder) (any, error) {
	b, err := d.ReadInt8()
	if err != nil {
		return nil, err
	}
	switch b {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return nil, encio.NewError(encio.ErrMalformed, fmt.Sprintf("%v is not a recognized value for boolean", b), "")
	}
}

// EncodeInt writes an integer as a big-endian 32-bit signed integer.
func EncodeInt(e *Encoder, v any) error {
	n, err := toInt64(v)
	if err != nil {
		return err
	}
	if n < math.MinInt32 || n > math.MaxInt32 {
		return badValue(v, "integer must be in the range of a signed 32-bit integer")
	}
	return e.WriteInt32(int32(n))
}

// DecodeInt reads a big-endian 32-bit signed integer as an int32.
func DecodeInt(d *Decoder) (any, error) {
	return d.ReadInt32()
}

// EncodeLong writes an integer as a big-endian 64-bit signed integer.
func EncodeLong(e *Encoder, v any) error {
	n, err := toInt64(v)
	if err != nil {
		return err
	}
	return e.WriteInt64(n)
}

// DecodeLong reads a big-endian 64-bit signed integer as an int64.
func DecodeLong(d *Decoder) (any, error) {
	return d.ReadInt64()
}

// EncodeFloat writes a number as a 32-bit IEEE 754 float.
// Values that don't survive narrowing to 32 bits unchanged are rejected with encio.ErrBadType; NaN is exempt.
func EncodeFloat(e *Encoder, v any) error {
	f, err := toFloat64(v)
	if err != nil {
		return err
	}
	narrow := float32(f)
	if !math.IsNaN(f) && float64(narrow) != f {
		return badType(v, "not exactly representable as a 32-bit float")
	}
	return e.WriteFloat32(narrow)
}

// DecodeFloat reads a 32-bit IEEE 754 float as a float32.
func DecodeFloat(d *Decoder) (any, error) {
	return d.ReadFloat32()
}

// EncodeDouble writes a number as a 64-bit IEEE 754 float.
func EncodeDouble(e *Encoder, v any) error {
	f, err := toFloat64(v)
	if err != nil {
		return err
	}
	return e.WriteFloat64(f)
}

// DecodeDouble reads a 64-bit IEEE 754 float as a float64.
func DecodeDouble(d *Decoder) (any, error) {
	return d.ReadFloat64()
}

// EncodeString writes a string as a size followed by its UTF-8 bytes.
// The size counts bytes, not characters.
func EncodeString(e *Encoder, v any) error {
	s, ok := v.(string)
	if !ok {
		return badType(v, "string")
	}
	if !utf8.ValidString(s) {
		return badValue(v, "string is not valid UTF-8")
	}
	if err := e.WriteSize(len(s)); err != nil {
		return err
	}
	return e.WriteString(s)
}

// DecodeString reads a size followed by that many bytes of UTF-8.
func DecodeString(d *Decoder) (any, error) {
	size, err := d.ReadSize()
	if err != nil {
		return nil, err
	}
	raw, err := d.ReadRaw(size)
	if err != nil {
		return nil, err
	}
	if !utf8.Valid(raw) {
		return nil, encio.NewError(encio.ErrMalformed, "string is not valid UTF-8", "")
	}
	return string(raw), nil
}

// toInt64 coerces v to an int64 without loss of information.
func toInt64(v any) (int64, error) {
	switch n := v.(type) {
	case int8:
		return int64(n), nil
	case int16:
		return int64(n), nil
	case int32:
		return int64(n), nil
	case int:
		return int64(n), nil
	case int64:
		return n, nil
	case uint8:
		return int64(n), nil
	case uint16:
		return int64(n), nil
	case uint32:
		return int64(n), nil
	case uint:
		if uint64(n) > math.MaxInt64 {
			return 0, badValue(v, "integer must be in the range of a signed 64-bit integer")
		}
		return int64(n), nil
	case uint64:
		if n > math.MaxInt64 {
			return 0, badValue(v, "integer must be in the range of a signed 64-bit integer")
		}
		return int64(n), nil
	case float32:
		return floatToInt64(v, float64(n))
	case float64:
		return floatToInt64(v, n)
	}
	return 0, badType(v, "integer")
}

func floatToInt64(v any, f float64) (int64, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) || math.Trunc(f) != f {
		return 0, badType(v, "not coercible to an integer without loss of information")
	}
	// -2^63 is representable, 2^63 is not.
	if f < math.MinInt64 || f >= -math.MinInt64 {
		return 0, badValue(v, "integer must be in the range of a signed 64-bit integer")
	}
	return int64(f), nil
}

// toFloat64 coerces v to a float64 without loss of information.
func toFloat64(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int8, int16, int32, uint8, uint16, uint32:
		i, err := toInt64(v)
		return float64(i), err
	case int, int64:
		i, err := toInt64(v)
		if err != nil {
			return 0, err
		}
		f := float64(i)
		if f >= -math.MinInt64 || int64(f) != i {
			return 0, badType(v, "not coercible to a float without loss of information")
		}
		return f, nil
	case uint:
		return uint64ToFloat64(v, uint64(n))
	case uint64:
		return uint64ToFloat64(v, n)
	}
	return 0, badType(v, "number")
}

func uint64ToFloat64(v any, u uint64) (float64, error) {
	f := float64(u)
	if f >= math.MaxUint64 || uint64(f) != u {
		return 0, badType(v, "not coercible to a float without loss of information")
	}
	return f, nil
}

func badType(v any, want string) error {
	return encio.NewError(encio.ErrBadType, fmt.Sprintf("%T: %v", v, want), encio.GetCaller(1))
}

func badValue(v any, why string) error {
	return encio.NewError(encio.ErrBadValue, fmt.Sprintf("%v: %v", v, why), encio.GetCaller(1))
}
