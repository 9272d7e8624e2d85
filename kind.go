package typedbytes

import (
	"strconv"
	"strings"
)

// Kind is a category of value that a Definition can match.
// Kinds are capabilities, not types; a single Go type usually satisfies several of them.
// An int8 can be written as a byte, an int or a long, and so satisfies all three.
type Kind uint8

// Kinds known to the default registry.
const (
	KindBytes Kind = iota
	KindByte
	KindBool
	KindInt
	KindLong
	KindFloat
	KindDouble
	KindString
	KindVector
	KindList
	KindMap
	KindEndOfList
	KindApplication

	numKinds
)

var kindNames = [numKinds]string{
	KindBytes:       "bytes",
	KindByte:        "byte",
	KindBool:        "bool",
	KindInt:         "int",
	KindLong:        "long",
	KindFloat:       "float",
	KindDouble:      "double",
	KindString:      "string",
	KindVector:      "vector",
	KindList:        "list",
	KindMap:         "map",
	KindEndOfList:   "end-of-list",
	KindApplication: "application",
}

func (k Kind) String() string {
	if k < numKinds {
		return kindNames[k]
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// KindSet is a set of Kinds.
type KindSet uint16

// NewKindSet returns a set holding kinds.
func NewKindSet(kinds ...Kind) KindSet {
	var s KindSet
	for _, k := range kinds {
		s |= 1 << k
	}
	return s
}

// Has reports whether k is in the set.
func (s KindSet) Has(k Kind) bool {
	return k < numKinds && s&(1<<k) != 0
}

// Intersects reports whether the two sets share any kind.
func (s KindSet) Intersects(o KindSet) bool {
	return s&o != 0
}

func (s KindSet) String() string {
	var names []string
	for k := Kind(0); k < numKinds; k++ {
		if s.Has(k) {
			names = append(names, k.String())
		}
	}
	return "{" + strings.Join(names, ", ") + "}"
}

// Vectorer is implemented by record-like values that encode as a vector of their fields.
// A Vectorer encodes identically to the Vector it returns, and decodes as that Vector.
type Vectorer interface {
	TypedVector() Vector
}

// Lister is implemented by values that encode as a list.
type Lister interface {
	TypedList() List
}

// Mapper is implemented by values that encode as a map.
type Mapper interface {
	TypedMap() Map
}

var (
	intKinds    = NewKindSet(KindInt, KindLong)
	byteKinds   = NewKindSet(KindByte, KindInt, KindLong)
	longKinds   = NewKindSet(KindLong)
	floatKinds  = NewKindSet(KindFloat, KindDouble)
	doubleKinds = NewKindSet(KindDouble)
)

// KindsOf returns every kind v satisfies.
// It is an explicit mapping from Go type to capability, so more specific kinds are only chosen over general ones
// by the order of definitions in a Registry, never here.
//
// A nil or unknown value satisfies no kinds.
func KindsOf(v any) KindSet {
	switch v.(type) {
	case EndOfList:
		return NewKindSet(KindEndOfList)
	case []byte:
		return NewKindSet(KindBytes)
	case int8:
		return byteKinds
	case bool:
		return NewKindSet(KindBool)
	case int32, int, int16, uint8, uint16:
		return intKinds
	case int64, uint32, uint, uint64:
		return longKinds
	case float32:
		return floatKinds
	case float64:
		return doubleKinds
	case string:
		return NewKindSet(KindString)
	case Vector:
		return NewKindSet(KindVector)
	case List, []any:
		return NewKindSet(KindList)
	case Map, map[string]any, map[any]any:
		return NewKindSet(KindMap)
	case Application:
		return NewKindSet(KindApplication)

	// Declared capabilities.
	case Vectorer:
		return NewKindSet(KindVector)
	case Lister:
		return NewKindSet(KindList)
	case Mapper:
		return NewKindSet(KindMap)
	}
	return 0
}
