package typedbytes

import (
	"errors"
	"fmt"
	"io"

	"github.com/stewi1014/typedbytes/encio"
)

// NewDecoder returns a reader session decoding values from r.
// r is read from directly, and never beyond the end of the value being decoded;
// wrap it in a bufio.Reader if small reads are expensive.
func NewDecoder(r io.Reader, config *Config) *Decoder {
	config = config.copyAndFill()
	return &Decoder{
		r:        r,
		registry: config.Registry,
		maxDepth: config.MaxDepth,
	}
}

// Decoder is a reader session, decoding one value per call to Decode.
// It holds no locks; it must not be used concurrently.
// After an error other than io.EOF the stream position is undefined, and the Decoder shouldn't be used further.
type Decoder struct {
	r        io.Reader
	registry *Registry
	maxDepth int
	depth    int
	fixed    encio.Fixed
	closed   bool
}

// Decode reads the next value.
// It returns io.EOF, unwrapped, when the values are exhausted:
// either the stream ended before another type tag, or the end-marker was read.
// Any other failure, including a stream that ends part way through a value, is a hard error.
func (d *Decoder) Decode() (any, error) {
	if d.closed {
		return nil, encio.NewError(encio.ErrClosed, "cannot decode with a closed Decoder", "")
	}

	v, err := d.decodeValue()
	if err != nil {
		return nil, err
	}
	if _, ok := v.(EndOfList); ok {
		return nil, io.EOF
	}
	return v, nil
}

// Each calls fn with every remaining value until the values are exhausted, fn returns an error, or decoding fails.
// Exhaustion is not an error.
func (d *Decoder) Each(fn func(v any) error) error {
	for {
		v, err := d.Decode()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if err := fn(v); err != nil {
			return err
		}
	}
}

// DecodeValue reads exactly one type-tagged value. The end-marker is returned as EndOfList.
// Definitions use it to read the elements of containers.
//
// At the top level, io.EOF is returned if the stream ends before the type tag.
// Inside a container the value is required, and a stream ending early wraps encio.ErrInsufficientData.
func (d *Decoder) DecodeValue() (any, error) {
	v, err := d.decodeValue()
	if err == io.EOF && d.depth > 0 {
		return nil, encio.NewIOError(encio.ErrInsufficientData, "stream ended before a nested value")
	}
	return v, err
}

func (d *Decoder) decodeValue() (any, error) {
	tag, err := d.readTag()
	if err != nil {
		return nil, err
	}

	td, ok := d.registry.ByTag(tag)
	if !ok {
		return nil, encio.NewError(encio.ErrUnrecognizedTag, fmt.Sprintf("tag %v", tag), "")
	}
	// The end-marker closes a level rather than opening one.
	if tag != TagEndOfList && d.maxDepth > 0 && d.depth >= d.maxDepth {
		return nil, encio.NewError(fmt.Errorf("%w: %w", encio.ErrMalformed, encio.ErrTooDeep), fmt.Sprintf("limit is %v", d.maxDepth), "")
	}

	d.depth++
	v, err := td.Decode(d)
	d.depth--
	if err != nil {
		return nil, err
	}
	return v, nil
}

// readTag reads a type tag, returning io.EOF if the stream ended cleanly before it.
func (d *Decoder) readTag() (uint8, error) {
	tag, err := d.fixed.ReadUint8(d.r)
	if err == nil {
		return tag, nil
	}

	var ioErr encio.IOError
	if errors.As(err, &ioErr) && errors.Is(ioErr.Err, encio.ErrInsufficientData) {
		return 0, io.EOF
	}
	return 0, err
}

// Close ends the session. It reads nothing, and is safe to call more than once.
func (d *Decoder) Close() error {
	d.closed = true
	return nil
}

// Registry returns the registry the Decoder dispatches with.
func (d *Decoder) Registry() *Registry {
	return d.registry
}

// ReadRaw reads exactly n bytes.
func (d *Decoder) ReadRaw(n int) ([]byte, error) {
	return encio.ReadN(d.r, n)
}

// ReadSize reads a size field. Negative sizes are malformed.
func (d *Decoder) ReadSize() (int, error) {
	n, err := d.fixed.ReadInt32(d.r)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, encio.NewError(encio.ErrMalformed, fmt.Sprintf("%v is not a valid size", n), "")
	}
	return int(n), nil
}

// ReadUint8 reads an unsigned byte.
func (d *Decoder) ReadUint8() (uint8, error) { return d.fixed.ReadUint8(d.r) }

// ReadInt8 reads a signed byte.
func (d *Decoder) ReadInt8() (int8, error) { return d.fixed.ReadInt8(d.r) }

// ReadInt32 reads a big-endian 32-bit signed integer.
func (d *Decoder) ReadInt32() (int32, error) { return d.fixed.ReadInt32(d.r) }

// ReadInt64 reads a big-endian 64-bit signed integer.
func (d *Decoder) ReadInt64() (int64, error) { return d.fixed.ReadInt64(d.r) }

// ReadFloat32 reads a big-endian 32-bit IEEE 754 float.
func (d *Decoder) ReadFloat32() (float32, error) { return d.fixed.ReadFloat32(d.r) }

// ReadFloat64 reads a big-endian 64-bit IEEE 754 float.
func (d *Decoder) ReadFloat64() (float64, error) { return d.fixed.ReadFloat64(d.r) }
