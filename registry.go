package typedbytes

import (
	"fmt"

	"github.com/stewi1014/typedbytes/encio"
)

// DefaultRegistry holds the standard typed bytes definitions, plus opaque payloads for the application tags.
// It is built once and never modified; use Extend to add definitions.
var DefaultRegistry = mustRegistry(NewRegistry(defaultDefinitions()...))

// Registry is an ordered, immutable collection of type definitions.
//
// Encoding uses the first definition whose Matcher accepts the value,
// so more specific definitions must come before more general ones.
// Decoding uses the definition registered with the tag that was read.
// If several definitions share a tag, the last one decodes it; extending a registry can therefore override a tag.
//
// It is safe for concurrent use. The zero value is an empty registry.
type Registry struct {
	defs []Definition
	// byTag holds one plus the index of the definition decoding each tag; zero means none.
	byTag [256]int32
}

// NewRegistry returns a registry holding defs, in order.
// Definitions missing a routine are rejected with encio.ErrBadDefinition.
func NewRegistry(defs ...Definition) (*Registry, error) {
	r := &Registry{
		defs: make([]Definition, 0, len(defs)),
	}

	if err := r.add(defs); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Registry) add(defs []Definition) error {
	for i, td := range defs {
		if err := td.validate(); err != nil {
			return fmt.Errorf("definition %v: %w", i, err)
		}

		if prev := r.byTag[td.Tag]; prev > 0 {
			encio.Warnings.Debug().
				Uint8("tag", td.Tag).
				Int("shadowed", int(prev-1)).
				Int("by", len(r.defs)).
				Msg("definition overrides an earlier one for decoding")
		}

		r.defs = append(r.defs, td)
		r.byTag[td.Tag] = int32(len(r.defs))
	}
	return nil
}

// Extend returns a new registry with defs appended to the definitions of r.
// r is not modified.
func (r *Registry) Extend(defs ...Definition) (*Registry, error) {
	n := &Registry{
		defs:  make([]Definition, len(r.defs), len(r.defs)+len(defs)),
		byTag: r.byTag,
	}
	copy(n.defs, r.defs)

	if err := n.add(defs); err != nil {
		return nil, err
	}
	return n, nil
}

// ByTag returns the definition that decodes tag.
func (r *Registry) ByTag(tag uint8) (Definition, bool) {
	if i := r.byTag[tag]; i > 0 {
		return r.defs[i-1], true
	}
	return Definition{}, false
}

// ByValue returns the first definition that matches v.
func (r *Registry) ByValue(v any) (Definition, bool) {
	for _, td := range r.defs {
		if td.Match(v) {
			return td, true
		}
	}
	return Definition{}, false
}

// Definitions returns a copy of the registry's definitions, in order.
func (r *Registry) Definitions() []Definition {
	defs := make([]Definition, len(r.defs))
	copy(defs, r.defs)
	return defs
}

// Len returns the number of definitions in the registry.
func (r *Registry) Len() int {
	return len(r.defs)
}

func mustRegistry(r *Registry, err error) *Registry {
	if err != nil {
		panic(err)
	}
	return r
}

func defaultDefinitions() []Definition {
	defs := []Definition{
		{Tag: TagEndOfList, Match: MatchKinds(KindEndOfList), Decode: DecodeEndOfList, Encode: EncodeEndOfList},
		{Tag: TagBytes, Match: MatchKinds(KindBytes), Decode: DecodeBytes, Encode: EncodeBytes},
		{Tag: TagByte, Match: MatchKinds(KindByte), Decode: DecodeByte, Encode: EncodeByte},
		{Tag: TagBool, Match: MatchKinds(KindBool), Decode: DecodeBool, Encode: EncodeBool},
		{Tag: TagInt, Match: MatchKinds(KindInt), Decode: DecodeInt, Encode: EncodeInt},
		{Tag: TagLong, Match: MatchKinds(KindLong), Decode: DecodeLong, Encode: EncodeLong},
		{Tag: TagFloat, Match: MatchKinds(KindFloat), Decode: DecodeFloat, Encode: EncodeFloat},
		{Tag: TagDouble, Match: MatchKinds(KindDouble), Decode: DecodeDouble, Encode: EncodeDouble},
		{Tag: TagString, Match: MatchKinds(KindString), Decode: DecodeString, Encode: EncodeString},
		{Tag: TagVector, Match: MatchKinds(KindVector), Decode: DecodeVector, Encode: EncodeVector},
		{Tag: TagList, Match: MatchKinds(KindList), Decode: DecodeList, Encode: EncodeList},
		{Tag: TagMap, Match: MatchKinds(KindMap), Decode: DecodeMap, Encode: EncodeMap},
	}

	for tag := int(TagApplicationMin); tag <= int(TagApplicationMax); tag++ {
		defs = append(defs, ApplicationDefinition(uint8(tag)))
	}
	return defs
}
