package typedbytes

// ApplicationDefinition returns the opaque payload definition for an application tag.
// It has the wire shape of a byte sequence, matches Application values carrying tag, and decodes to Application.
// The default registry holds one for every tag from TagApplicationMin to TagApplicationMax;
// an application wanting its own interpretation of a tag extends the registry with a definition of the same tag.
func ApplicationDefinition(tag uint8) Definition {
	return Definition{
		Tag: tag,
		Match: MatchFunc(func(a Application) bool {
			return a.Tag == tag
		}),
		Decode: func(d *Decoder) (any, error) {
			size, err := d.ReadSize()
			if err != nil {
				return nil, err
			}
			data, err := d.ReadRaw(size)
			if err != nil {
				return nil, err
			}
			return Application{Tag: tag, Data: data}, nil
		},
		Encode: encodeApplication,
	}
}

func encodeApplication(e *Encoder, v any) error {
	a, ok := v.(Application)
	if !ok {
		return badType(v, "application payload")
	}
	if err := e.WriteSize(len(a.Data)); err != nil {
		return err
	}
	return e.WriteRaw(a.Data)
}
