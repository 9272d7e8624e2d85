package cborconv_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/maxatome/go-testdeep/td"
	"github.com/stewi1014/typedbytes"
	"github.com/stewi1014/typedbytes/cborconv"
	"github.com/stewi1014/typedbytes/encio"
)

func TestMarshal(t *testing.T) {
	testCases := []struct {
		desc string
		v    any
		cbor []byte
	}{
		{"int", int32(1), []byte{0x01}},
		{"negative long", int64(-1), []byte{0x20}},
		{"double", 1.5, []byte{0xf9, 0x3e, 0x00}},
		{"string", "x", []byte{0x61, 'x'}},
		{"bytes", []byte{1, 2}, []byte{0x42, 1, 2}},
		{"nil bytes", []byte(nil), []byte{0x40}},
		{"list", typedbytes.List{int32(1), "x"}, []byte{0x82, 0x01, 0x61, 'x'}},
		{"vector", typedbytes.Vector{true, false}, []byte{0x82, 0xf5, 0xf4}},
		{
			"map keeps pair order",
			typedbytes.Map{{Key: "b", Value: int32(1)}, {Key: "a", Value: true}},
			[]byte{0xa2, 0x61, 'b', 0x01, 0x61, 'a', 0xf5},
		},
		{"application", typedbytes.Application{Tag: 77, Data: []byte("hi")}, []byte{0xd8, 77, 0x42, 'h', 'i'}},
	}

	for _, tC := range testCases {
		t.Run(tC.desc, func(t *testing.T) {
			got, err := cborconv.Marshal(tC.v)
			td.CmpNoError(t, err)
			td.Cmp(t, got, tC.cbor)
		})
	}
}

func TestMarshalLongArray(t *testing.T) {
	list := make(typedbytes.List, 300)
	for i := range list {
		list[i] = false
	}

	got, err := cborconv.Marshal(list)
	td.CmpNoError(t, err)
	td.Cmp(t, got[:3], []byte{0x99, 0x01, 0x2c})
	td.Cmp(t, len(got), 303)
}

func TestMarshalErrors(t *testing.T) {
	_, err := cborconv.Marshal(typedbytes.List{typedbytes.EndOfList{}})
	td.CmpTrue(t, errors.Is(err, encio.ErrBadValue), "got %v", err)

	_, err = cborconv.Marshal(struct{}{})
	td.CmpTrue(t, errors.Is(err, encio.ErrBadType), "got %v", err)
}

func TestRoundTrip(t *testing.T) {
	testCases := []struct {
		desc string
		v    any
		want any
	}{
		{"int", int32(-5), int32(-5)},
		{"byte", int8(3), int32(3)},
		{"long", int64(1 << 40), int64(1 << 40)},
		{"float", float32(0.5), 0.5},
		{"string", " śpăm\n ", " śpăm\n "},
		{"vector", typedbytes.Vector{int32(1)}, typedbytes.List{int32(1)}},
		{
			"composite keys",
			typedbytes.Map{{Key: typedbytes.Vector{int32(1)}, Value: "v"}, {Key: "k", Value: typedbytes.Map{}}},
			typedbytes.Map{{Key: typedbytes.List{int32(1)}, Value: "v"}, {Key: "k", Value: typedbytes.Map{}}},
		},
		{"application", typedbytes.Application{Tag: 50}, typedbytes.Application{Tag: 50, Data: []byte{}}},
	}

	for _, tC := range testCases {
		t.Run(tC.desc, func(t *testing.T) {
			b, err := cborconv.Marshal(tC.v)
			td.CmpNoError(t, err)

			got, err := cborconv.Unmarshal(b)
			td.CmpNoError(t, err)
			td.Cmp(t, got, tC.want)
		})
	}
}

func TestUnmarshal(t *testing.T) {
	testCases := []struct {
		desc string
		cbor []byte
		want any
	}{
		{"indefinite array", []byte{0x9f, 0x01, 0x02, 0xff}, typedbytes.List{int32(1), int32(2)}},
		{"indefinite map", []byte{0xbf, 0x61, 'a', 0x01, 0xff}, typedbytes.Map{{Key: "a", Value: int32(1)}}},
		{"duplicate key", []byte{0xa2, 0x01, 0x61, 'x', 0x01, 0x61, 'y'}, typedbytes.Map{{Key: int32(1), Value: "y"}}},
		{"empty map", []byte{0xa0}, typedbytes.Map{}},
		{"empty array", []byte{0x80}, typedbytes.List{}},
	}

	for _, tC := range testCases {
		t.Run(tC.desc, func(t *testing.T) {
			got, err := cborconv.Unmarshal(tC.cbor)
			td.CmpNoError(t, err)
			td.Cmp(t, got, tC.want)
		})
	}
}

func TestUnmarshalErrors(t *testing.T) {
	testCases := []struct {
		desc string
		cbor []byte
		err  error
	}{
		{"null", []byte{0xf6}, encio.ErrBadType},
		{"unknown tag", []byte{0xc1, 0x00}, encio.ErrBadType},
		{"truncated array", []byte{0x82, 0x01}, encio.ErrInsufficientData},
		{"truncated head", []byte{0x99, 0x01}, encio.ErrInsufficientData},
		{"extraneous data", []byte{0x01, 0x02}, encio.ErrMalformed},
		{"invalid string", []byte{0x61, 0xff}, encio.ErrMalformed},
	}

	for _, tC := range testCases {
		t.Run(tC.desc, func(t *testing.T) {
			_, err := cborconv.Unmarshal(tC.cbor)
			td.CmpTrue(t, errors.Is(err, tC.err), "got %v", err)
		})
	}
}

func TestDiagnose(t *testing.T) {
	stream := []byte{
		10, 0, 0, 0, 1,
		7, 0, 0, 0, 1, 'a',
		9, 3, 0, 0, 0, 1, 2, 1, 255,
	}

	got, err := cborconv.Diagnose(bytes.NewReader(stream), nil)
	td.CmpNoError(t, err)
	td.Cmp(t, got, `{"a": [1, true]}`)

	_, err = cborconv.Diagnose(bytes.NewReader([]byte{11}), nil)
	td.CmpTrue(t, errors.Is(err, encio.ErrUnrecognizedTag), "got %v", err)
}
