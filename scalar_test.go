package typedbytes_test

import (
	"errors"
	"math"
	"testing"

	"github.com/maxatome/go-testdeep/td"
	"github.com/stewi1014/typedbytes"
	"github.com/stewi1014/typedbytes/encio"
)

func TestIntegerDispatch(t *testing.T) {
	testCases := []struct {
		desc string
		v    any
		tag  uint8
		want any
	}{
		{"int8", int8(-128), typedbytes.TagByte, int8(-128)},
		{"uint8", uint8(200), typedbytes.TagInt, int32(200)},
		{"int16", int16(-300), typedbytes.TagInt, int32(-300)},
		{"uint16", uint16(60000), typedbytes.TagInt, int32(60000)},
		{"int32", int32(math.MinInt32), typedbytes.TagInt, int32(math.MinInt32)},
		{"int", int(math.MaxInt32), typedbytes.TagInt, int32(math.MaxInt32)},
		{"uint32", uint32(math.MaxUint32), typedbytes.TagLong, int64(math.MaxUint32)},
		{"int64", int64(-1), typedbytes.TagLong, int64(-1)},
		{"uint64", uint64(math.MaxInt64), typedbytes.TagLong, int64(math.MaxInt64)},
		{"uint", uint(7), typedbytes.TagLong, int64(7)},
	}

	for _, tC := range testCases {
		t.Run(tC.desc, func(t *testing.T) {
			b, err := typedbytes.Marshal(tC.v)
			td.CmpNoError(t, err)
			td.Cmp(t, b[0], tC.tag)

			got, err := typedbytes.Unmarshal(b)
			td.CmpNoError(t, err)
			td.Cmp(t, got, tC.want)
		})
	}
}

func TestIntegerRange(t *testing.T) {
	testCases := []struct {
		desc string
		v    any
	}{
		{"int above int32", int(math.MaxInt32) + 1},
		{"int below int32", int(math.MinInt32) - 1},
		{"uint64 above int64", uint64(math.MaxInt64) + 1},
		{"uint above int64", uint(math.MaxUint64)},
	}

	for _, tC := range testCases {
		t.Run(tC.desc, func(t *testing.T) {
			_, err := typedbytes.Marshal(tC.v)
			td.CmpTrue(t, errors.Is(err, encio.ErrBadValue), "got %v", err)
		})
	}
}

func TestBool(t *testing.T) {
	b, err := typedbytes.Marshal(true)
	td.CmpNoError(t, err)
	td.Cmp(t, b, []byte{2, 1})

	b, err = typedbytes.Marshal(false)
	td.CmpNoError(t, err)
	td.Cmp(t, b, []byte{2, 0})

	for _, by := range []byte{2, 0x80, 0xff} {
		_, err := typedbytes.Unmarshal([]byte{2, by})
		td.CmpTrue(t, errors.Is(err, encio.ErrMalformed), "byte %v got %v", by, err)
	}
}

func TestDoubleSpecialValues(t *testing.T) {
	for _, f := range []float64{math.Inf(1), math.Inf(-1), math.MaxFloat64, math.SmallestNonzeroFloat64} {
		b, err := typedbytes.Marshal(f)
		td.CmpNoError(t, err)

		got, err := typedbytes.Unmarshal(b)
		td.CmpNoError(t, err)
		td.Cmp(t, got, f)
	}

	b, err := typedbytes.Marshal(math.NaN())
	td.CmpNoError(t, err)
	got, err := typedbytes.Unmarshal(b)
	td.CmpNoError(t, err)
	td.CmpTrue(t, math.IsNaN(got.(float64)))
}

func TestInvalidString(t *testing.T) {
	_, err := typedbytes.Marshal("\xff\xfe")
	td.CmpTrue(t, errors.Is(err, encio.ErrBadValue), "got %v", err)
}

// Registries may bind a tag to values of other kinds; the codecs then coerce, refusing to lose information.
func TestCoercion(t *testing.T) {
	reg, err := typedbytes.NewRegistry(
		typedbytes.Definition{
			Tag:    typedbytes.TagFloat,
			Match:  typedbytes.MatchFunc[float64](nil),
			Decode: typedbytes.DecodeFloat,
			Encode: typedbytes.EncodeFloat,
		},
		typedbytes.Definition{
			Tag:    typedbytes.TagInt,
			Match:  typedbytes.MatchFunc[float32](nil),
			Decode: typedbytes.DecodeInt,
			Encode: typedbytes.EncodeInt,
		},
		typedbytes.Definition{
			Tag:    typedbytes.TagByte,
			Match:  typedbytes.MatchKinds(typedbytes.KindInt),
			Decode: typedbytes.DecodeByte,
			Encode: typedbytes.EncodeByte,
		},
		typedbytes.Definition{
			Tag:    typedbytes.TagDouble,
			Match:  typedbytes.MatchKinds(typedbytes.KindLong),
			Decode: typedbytes.DecodeDouble,
			Encode: typedbytes.EncodeDouble,
		},
	)
	td.CmpNoError(t, err)

	testCases := []struct {
		desc string
		v    any
		want any
		err  error
	}{
		{desc: "exact double as float", v: 0.5, want: float32(0.5)},
		{desc: "nan as float", v: math.NaN(), want: td.NaN()},
		{desc: "inexact double as float", v: 0.1, err: encio.ErrBadType},
		{desc: "whole float as int", v: float32(-2), want: int32(-2)},
		{desc: "fractional float as int", v: float32(2.5), err: encio.ErrBadType},
		{desc: "large float as int", v: float32(1e10), err: encio.ErrBadValue},
		{desc: "int as byte", v: int32(100), want: int8(100)},
		{desc: "int out of byte range", v: int32(128), err: encio.ErrBadValue},
		{desc: "long as double", v: int64(1 << 53), want: float64(1 << 53)},
		{desc: "inexact long as double", v: int64(1<<53 + 1), err: encio.ErrBadType},
	}

	for _, tC := range testCases {
		t.Run(tC.desc, func(t *testing.T) {
			b, err := typedbytes.MarshalWith(tC.v, reg)
			if tC.err != nil {
				td.CmpTrue(t, errors.Is(err, tC.err), "got %v", err)
				return
			}
			td.CmpNoError(t, err)

			got, err := typedbytes.UnmarshalWith(b, reg)
			td.CmpNoError(t, err)
			td.Cmp(t, got, tC.want)
		})
	}
}
