// Package encio provides io methods relevant to encoding typed bytes, as well as error types.
//
// All multi-byte values are big-endian, unpadded and fixed width.
package encio

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
)

// chunkSize is the largest length-prefixed field read with a single allocation.
// Larger fields grow as data actually arrives, so a corrupt size can't force a huge allocation.
const chunkSize = 1 << 16

// Read reads from r, completely filling the buffer. It provides error handling with as little overhead as possible.
// In an ideal read, only a single int equality check is performed. If the read reports the whole buffer is read, returned errors are ignored.
// If fewer than len(buff) bytes are available, the returned error wraps ErrInsufficientData.
func Read(buff []byte, r io.Reader) error {
	n, err := r.Read(buff)
	if n == len(buff) {
		return nil
	}

	end := n
	for end < len(buff) && err == nil {
		n, err = r.Read(buff[end:])
		end += n
		if n == 0 && err == nil {
			err = io.ErrNoProgress
		}
	}

	if end != len(buff) {
		switch {
		case end > len(buff):
			return NewIOError(
				errors.New("bad io.Reader implementation"),
				fmt.Sprintf("reported %v bytes read, but buffer is only %v bytes", end, len(buff)),
			)
		case errors.Is(err, io.EOF):
			return NewIOError(
				ErrInsufficientData,
				fmt.Sprintf("want %v bytes but only got %v", len(buff), end),
			)
		default:
			return NewIOError(
				err,
				fmt.Sprintf("want %v bytes but only got %v", len(buff), end),
			)
		}
	}
	return nil
}

// ReadN reads exactly n bytes from r.
// Unlike Read, it doesn't trust n for allocation; big fields grow as they are read.
func ReadN(r io.Reader, n int) ([]byte, error) {
	if n < 0 {
		return nil, NewError(ErrMalformed, fmt.Sprintf("cannot read %v bytes", n), "")
	}
	if n <= chunkSize {
		buff := make([]byte, n)
		return buff, Read(buff, r)
	}

	var buff bytes.Buffer
	buff.Grow(chunkSize)
	read, err := io.CopyN(&buff, r, int64(n))
	if read == int64(n) {
		return buff.Bytes(), nil
	}
	if err == nil || errors.Is(err, io.EOF) {
		err = ErrInsufficientData
	}
	return nil, NewIOError(err, fmt.Sprintf("want %v bytes but only got %v", n, read))
}

// Write writes to w from buff, handling errors of io.Writer with as little overhead as possible.
// In an ideal write, only a single int equality check is performed. It returns any error from Write().
func Write(buff []byte, w io.Writer) error {
	n, err := w.Write(buff)
	if n == len(buff) {
		if err != nil {
			return NewIOError(err, "")
		}
		return nil
	}

	end := n
	for end < len(buff) && err == nil && n > 0 {
		Warnings.Warn().
			Str("writer", fmt.Sprintf("%T", w)).
			Int("given", len(buff)-(end-n)).
			Int("written", n).
			Msg("bad io.Writer implementation; it wrote short yet returned no error. Will call it again...")
		n, err = w.Write(buff[end:])
		end += n
	}

	if end != len(buff) {
		switch {
		case end > len(buff):
			return NewIOError(
				errors.New("bad io.Writer implementation"),
				fmt.Sprintf("Write() reported %v bytes written, but was only given %v bytes", end, len(buff)),
			)
		case err == nil:
			return NewIOError(
				io.ErrShortWrite,
				fmt.Sprintf("want %v bytes but only wrote %v bytes", len(buff), end),
			)
		default:
			return NewIOError(
				err,
				fmt.Sprintf("want %v bytes but wrote %v bytes", len(buff), end),
			)
		}
	}
	return nil
}

// Flusher is implemented by writers that buffer data.
type Flusher interface {
	Flush() error
}

// NewFlushWriter returns a FlushWriter writing to w.
// Writers that already accept single bytes cheaply (io.ByteWriter) are written to directly,
// everything else is given a bufio.Writer.
func NewFlushWriter(w io.Writer) *FlushWriter {
	fw := &FlushWriter{under: w}
	if _, ok := w.(io.ByteWriter); ok {
		fw.w = w
	} else {
		fw.buff = bufio.NewWriter(w)
		fw.w = fw.buff
	}
	return fw
}

// FlushWriter is a writer that can always be flushed.
// Flush pushes buffered data to the underlying writer, then flushes the underlying writer if it is itself a Flusher.
type FlushWriter struct {
	w     io.Writer
	buff  *bufio.Writer
	under io.Writer
}

// Write implements io.Writer
func (f *FlushWriter) Write(buff []byte) (int, error) {
	return f.w.Write(buff)
}

// Flush writes any buffered data to the underlying writer.
func (f *FlushWriter) Flush() error {
	if f.buff != nil {
		if err := f.buff.Flush(); err != nil {
			return NewIOError(err, "flushing buffered writer")
		}
	}

	if flusher, ok := f.under.(Flusher); ok {
		if err := flusher.Flush(); err != nil {
			return NewIOError(err, "flushing underlying writer")
		}
	}
	return nil
}

// Discard drops data buffered since the last Flush.
// Data the buffer already passed to the underlying writer is not recalled.
func (f *FlushWriter) Discard() {
	if f.buff != nil {
		f.buff.Reset(f.under)
	}
}
