package typedbytes

import (
	"fmt"

	"github.com/stewi1014/typedbytes/encio"
)

// Default type tags.
const (
	TagBytes  uint8 = 0
	TagByte   uint8 = 1
	TagBool   uint8 = 2
	TagInt    uint8 = 3
	TagLong   uint8 = 4
	TagFloat  uint8 = 5
	TagDouble uint8 = 6
	TagString uint8 = 7
	TagVector uint8 = 8
	TagList   uint8 = 9
	TagMap    uint8 = 10

	// TagApplicationMin and TagApplicationMax bound the tags reserved for application-specific extensions.
	TagApplicationMin uint8 = 50
	TagApplicationMax uint8 = 200

	TagEndOfList uint8 = 255
)

// Matcher reports whether a definition can encode v.
type Matcher func(v any) bool

// MatchKinds returns a Matcher accepting any value satisfying at least one of kinds.
func MatchKinds(kinds ...Kind) Matcher {
	set := NewKindSet(kinds...)
	return func(v any) bool {
		return KindsOf(v).Intersects(set)
	}
}

// MatchFunc returns a Matcher accepting values of type T for which accept returns true.
// A nil accept accepts every T.
func MatchFunc[T any](accept func(T) bool) Matcher {
	return func(v any) bool {
		t, ok := v.(T)
		return ok && (accept == nil || accept(t))
	}
}

// EncodeFunc writes the payload of v, following the type tag that the Encoder has already written.
// Nested values must be written with e.EncodeValue so they get their own tag.
type EncodeFunc func(e *Encoder, v any) error

// DecodeFunc reads a payload, the type tag having already been read by the Decoder.
// Nested values must be read with d.DecodeValue.
type DecodeFunc func(d *Decoder) (any, error)

// Definition binds a type tag to the values it matches and the routines that encode and decode them.
// Definitions are plain values; they are checked when a Registry is built from them.
type Definition struct {
	Tag    uint8
	Match  Matcher
	Decode DecodeFunc
	Encode EncodeFunc
}

func (td Definition) validate() error {
	switch {
	case td.Match == nil:
		return encio.NewError(encio.ErrBadDefinition, fmt.Sprintf("tag %v has no Match", td.Tag), "")
	case td.Decode == nil:
		return encio.NewError(encio.ErrBadDefinition, fmt.Sprintf("tag %v has no Decode", td.Tag), "")
	case td.Encode == nil:
		return encio.NewError(encio.ErrBadDefinition, fmt.Sprintf("tag %v has no Encode", td.Tag), "")
	}
	return nil
}
