package typedbytes_test

import (
	"math"
	"testing"

	"github.com/maxatome/go-testdeep/td"
	"github.com/stewi1014/typedbytes"
)

func TestEqual(t *testing.T) {
	testCases := []struct {
		desc string
		a, b any
		want bool
	}{
		{"bytes", []byte{1, 2}, []byte{1, 2}, true},
		{"bytes differ", []byte{1, 2}, []byte{1}, false},
		{"scalar types differ", int32(1), int64(1), false},
		{"vector is not list", typedbytes.Vector{}, typedbytes.List{}, false},
		{"nested", typedbytes.List{typedbytes.Vector{[]byte("a")}}, typedbytes.List{typedbytes.Vector{[]byte("a")}}, true},
		{
			"map order",
			typedbytes.Map{{Key: "a", Value: int32(1)}, {Key: "b", Value: int32(2)}},
			typedbytes.Map{{Key: "b", Value: int32(2)}, {Key: "a", Value: int32(1)}},
			true,
		},
		{
			"map values differ",
			typedbytes.Map{{Key: "a", Value: int32(1)}},
			typedbytes.Map{{Key: "a", Value: int32(2)}},
			false,
		},
		{"nan", math.NaN(), math.NaN(), false},
		{"application", typedbytes.Application{Tag: 60, Data: []byte{1}}, typedbytes.Application{Tag: 60, Data: []byte{1}}, true},
		{"application tags differ", typedbytes.Application{Tag: 60}, typedbytes.Application{Tag: 61}, false},
	}

	for _, tC := range testCases {
		t.Run(tC.desc, func(t *testing.T) {
			td.Cmp(t, typedbytes.Equal(tC.a, tC.b), tC.want)
		})
	}
}

func TestMapSet(t *testing.T) {
	var m typedbytes.Map
	m.Set("a", int32(1))
	m.Set(typedbytes.Vector{int32(1)}, "vector")
	m.Set("a", int32(2))
	m.Set(typedbytes.Vector{int32(1)}, "replaced")

	td.Cmp(t, m, typedbytes.Map{
		{Key: "a", Value: int32(2)},
		{Key: typedbytes.Vector{int32(1)}, Value: "replaced"},
	})

	v, ok := m.Get(typedbytes.Vector{int32(1)})
	td.CmpTrue(t, ok)
	td.Cmp(t, v, "replaced")

	_, ok = m.Get("missing")
	td.CmpFalse(t, ok)
	td.Cmp(t, m.Len(), 2)
}

func TestKindsOf(t *testing.T) {
	testCases := []struct {
		v    any
		want []typedbytes.Kind
	}{
		{int8(1), []typedbytes.Kind{typedbytes.KindByte, typedbytes.KindInt, typedbytes.KindLong}},
		{int32(1), []typedbytes.Kind{typedbytes.KindInt, typedbytes.KindLong}},
		{int64(1), []typedbytes.Kind{typedbytes.KindLong}},
		{float32(1), []typedbytes.Kind{typedbytes.KindFloat, typedbytes.KindDouble}},
		{[]any{}, []typedbytes.Kind{typedbytes.KindList}},
		{tupleLike{}, []typedbytes.Kind{typedbytes.KindVector}},
		{stack{}, []typedbytes.Kind{typedbytes.KindList}},
		{pairs{}, []typedbytes.Kind{typedbytes.KindMap}},
		{typedbytes.EndOfList{}, []typedbytes.Kind{typedbytes.KindEndOfList}},
		{struct{}{}, nil},
	}

	for _, tC := range testCases {
		t.Run(typedbytes.KindsOf(tC.v).String(), func(t *testing.T) {
			got := typedbytes.KindsOf(tC.v)
			td.Cmp(t, got, typedbytes.NewKindSet(tC.want...))
			for _, k := range tC.want {
				td.CmpTrue(t, got.Has(k), "missing %v", k)
			}
		})
	}
}
