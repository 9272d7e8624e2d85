package typedbytes

import (
	"fmt"
	"io"

	"github.com/stewi1014/typedbytes/encio"
)

// NewEncoder returns a writer session encoding values to w.
// The Encoder doesn't own w; closing the Encoder leaves w open.
func NewEncoder(w io.Writer, config *Config) *Encoder {
	config = config.copyAndFill()
	return &Encoder{
		w:        encio.NewFlushWriter(w),
		registry: config.Registry,
		maxDepth: config.MaxDepth,
	}
}

// Encoder is a writer session, encoding one value per call to Encode.
// It holds no locks; it must not be used concurrently.
// If Encode fails, whatever part of the value is still buffered is dropped.
// Writers that are written to directly (io.ByteWriters) may still hold a partial value;
// so may any writer after an error from EncodeValue or Flush, and the Encoder shouldn't be used further.
type Encoder struct {
	w        *encio.FlushWriter
	registry *Registry
	maxDepth int
	depth    int
	fixed    encio.Fixed
	closed   bool
}

// Encode writes v with its type tag, then flushes the stream so the value is visible to readers.
func (e *Encoder) Encode(v any) error {
	if e.closed {
		return encio.NewError(encio.ErrClosed, "cannot encode with a closed Encoder", "")
	}
	if err := e.EncodeValue(v); err != nil {
		e.w.Discard()
		return err
	}
	return e.w.Flush()
}

// EncodeValue writes v with its type tag, without flushing.
// Definitions use it to write the elements of containers.
//
// The definition is the first one in the registry whose Matcher accepts v.
// If none do, the error wraps encio.ErrBadType.
func (e *Encoder) EncodeValue(v any) error {
	td, ok := e.registry.ByValue(v)
	if !ok {
		return encio.NewError(encio.ErrBadType, fmt.Sprintf("%T matches no type definition", v), "")
	}
	if _, ok := v.(EndOfList); ok && e.depth > 0 {
		return encio.NewError(encio.ErrBadValue, "end-marker can't be nested inside a container", "")
	}
	if e.maxDepth > 0 && e.depth >= e.maxDepth {
		return encio.NewError(fmt.Errorf("%w: %w", encio.ErrBadValue, encio.ErrTooDeep), fmt.Sprintf("limit is %v", e.maxDepth), "")
	}

	if err := e.fixed.WriteUint8(e.w, td.Tag); err != nil {
		return err
	}

	e.depth++
	err := td.Encode(e, v)
	e.depth--
	return err
}

// Flush flushes the underlying stream.
func (e *Encoder) Flush() error {
	return e.w.Flush()
}

// Close ends the session. It writes nothing, and is safe to call more than once.
func (e *Encoder) Close() error {
	e.closed = true
	return nil
}

// Registry returns the registry the Encoder dispatches with.
func (e *Encoder) Registry() *Registry {
	return e.registry
}

// WriteRaw writes b as is.
func (e *Encoder) WriteRaw(b []byte) error {
	return encio.Write(b, e.w)
}

// WriteString writes the bytes of s as is.
func (e *Encoder) WriteString(s string) error {
	return encio.Write([]byte(s), e.w)
}

// WriteSize writes a size field; a non-negative big-endian 32-bit integer.
func (e *Encoder) WriteSize(n int) error {
	if n < 0 {
		return encio.NewError(encio.ErrBadValue, fmt.Sprintf("size %v must be non-negative", n), "")
	}
	if n > 1<<31-1 {
		return encio.NewError(encio.ErrBadValue, fmt.Sprintf("size %v doesn't fit in a 32-bit integer", n), "")
	}
	return e.fixed.WriteInt32(e.w, int32(n))
}

// WriteUint8 writes an unsigned byte.
func (e *Encoder) WriteUint8(n uint8) error { return e.fixed.WriteUint8(e.w, n) }

// WriteInt8 writes a signed byte.
func (e *Encoder) WriteInt8(n int8) error { return e.fixed.WriteInt8(e.w, n) }

// WriteInt32 writes a big-endian 32-bit signed integer.
func (e *Encoder) WriteInt32(n int32) error { return e.fixed.WriteInt32(e.w, n) }

// WriteInt64 writes a big-endian 64-bit signed integer.
func (e *Encoder) WriteInt64(n int64) error { return e.fixed.WriteInt64(e.w, n) }

// WriteFloat32 writes a big-endian 32-bit IEEE 754 float.
func (e *Encoder) WriteFloat32(n float32) error { return e.fixed.WriteFloat32(e.w, n) }

// WriteFloat64 writes a big-endian 64-bit IEEE 754 float.
func (e *Encoder) WriteFloat64(n float64) error { return e.fixed.WriteFloat64(e.w, n) }
