package typedbytes

// Recursive container definitions.
// Every element is written with its own type tag through the same session, and so the same registry.

import (
	"fmt"
	"io"
	"sort"

	"github.com/stewi1014/typedbytes/encio"
)

// maxPrealloc caps the capacity reserved from a decoded size, so a corrupt size can't force a huge allocation.
const maxPrealloc = 1024

// EncodeVector writes a Vector or Vectorer as a size followed by its type-tagged elements.
func EncodeVector(e *Encoder, v any) error {
	var elems []any
	switch v := v.(type) {
	case Vector:
		elems = v
	case Vectorer:
		elems = v.TypedVector()
	default:
		return badType(v, "vector")
	}

	if err := e.WriteSize(len(elems)); err != nil {
		return err
	}
	for _, elem := range elems {
		if err := e.EncodeValue(elem); err != nil {
			return err
		}
	}
	return nil
}

// DecodeVector reads a size followed by exactly that many type-tagged values.
func DecodeVector(d *Decoder) (any, error) {
	size, err := d.ReadSize()
	if err != nil {
		return nil, err
	}

	vec := make(Vector, 0, min(size, maxPrealloc))
	for i := 0; i < size; i++ {
		elem, err := d.decodeElement("vector")
		if err != nil {
			return nil, err
		}
		vec = append(vec, elem)
	}
	return vec, nil
}

// EncodeList writes a List, []any or Lister as its type-tagged elements followed by the end-marker.
func EncodeList(e *Encoder, v any) error {
	var elems []any
	switch v := v.(type) {
	case List:
		elems = v
	case []any:
		elems = v
	case Lister:
		elems = v.TypedList()
	default:
		return badType(v, "list")
	}

	for _, elem := range elems {
		if err := e.EncodeValue(elem); err != nil {
			return err
		}
	}
	return e.WriteUint8(TagEndOfList)
}

// DecodeList reads type-tagged values until the end-marker.
// A stream that ends cleanly between values also ends the list.
func DecodeList(d *Decoder) (any, error) {
	list := List{}
	for {
		elem, err := d.decodeValue()
		switch {
		case err == io.EOF:
			return list, nil
		case err != nil:
			return nil, err
		}

		if _, ok := elem.(EndOfList); ok {
			return list, nil
		}
		list = append(list, elem)
	}
}

// EncodeMap writes a Map, map[string]any, map[any]any or Mapper as a pair count followed by type-tagged keys and values.
// Map and Mapper pairs are written in order, map[string]any pairs in key order, map[any]any pairs in no particular order.
func EncodeMap(e *Encoder, v any) error {
	var pairs Map
	switch v := v.(type) {
	case Map:
		pairs = v
	case Mapper:
		pairs = v.TypedMap()
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		pairs = make(Map, len(keys))
		for i, k := range keys {
			pairs[i] = Pair{Key: k, Value: v[k]}
		}
	case map[any]any:
		pairs = make(Map, 0, len(v))
		for k, val := range v {
			pairs = append(pairs, Pair{Key: k, Value: val})
		}
	default:
		return badType(v, "map")
	}

	if err := e.WriteSize(len(pairs)); err != nil {
		return err
	}
	for _, p := range pairs {
		if err := e.EncodeValue(p.Key); err != nil {
			return err
		}
		if err := e.EncodeValue(p.Value); err != nil {
			return err
		}
	}
	return nil
}

// DecodeMap reads a pair count followed by that many type-tagged keys and values.
// If a key repeats, the last value wins, keeping the position of the first.
func DecodeMap(d *Decoder) (any, error) {
	size, err := d.ReadSize()
	if err != nil {
		return nil, err
	}

	m := make(Map, 0, min(size, maxPrealloc))
	// Keys are found through index; those without a Go map key fall back to a scan of m.
	index := make(map[any]int)
	for i := 0; i < size; i++ {
		key, err := d.decodeElement("map key")
		if err != nil {
			return nil, err
		}
		value, err := d.decodeElement("map value")
		if err != nil {
			return nil, err
		}

		k, ok := mapKey(key)
		if !ok {
			m.Set(key, value)
			continue
		}
		if at, ok := index[k]; ok {
			m[at].Value = value
			continue
		}
		index[k] = len(m)
		m = append(m, Pair{Key: key, Value: value})
	}
	return m, nil
}

// decodeElement decodes one element of a length-prefixed container.
// The end-marker has no place there, and the stream can't end early.
func (d *Decoder) decodeElement(of string) (any, error) {
	elem, err := d.decodeValue()
	if err == io.EOF {
		return nil, encio.NewIOError(encio.ErrInsufficientData, fmt.Sprintf("stream ended inside %v", of))
	}
	if err != nil {
		return nil, err
	}
	if _, ok := elem.(EndOfList); ok {
		return nil, encio.NewError(encio.ErrMalformed, fmt.Sprintf("end-marker inside %v", of), "")
	}
	return elem, nil
}
