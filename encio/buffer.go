package encio

import (
	"io"
)

// NewBuffer returns a Buffer whose unread portion is buff.
// The Buffer takes ownership of buff.
func NewBuffer(buff []byte) *Buffer {
	return &Buffer{buff: buff}
}

// Buffer is a buffer for data. It operates similar to bytes.Buffer
type Buffer struct {
	buff []byte
	off  int
}

// Read implements io.Reader
func (b *Buffer) Read(buff []byte) (int, error) {
	if len(buff) > 0 && b.Len() == 0 {
		return 0, io.EOF
	}
	n := copy(buff, b.buff[b.off:])
	b.off += n
	return n, nil
}

// ReadByte implements io.ByteReader
func (b *Buffer) ReadByte() (byte, error) {
	if b.Len() == 0 {
		return 0, io.EOF
	}
	by := b.buff[b.off]
	b.off++
	return by, nil
}

// Write implements io.Writer
func (b *Buffer) Write(buff []byte) (int, error) {
	return copy(b.buff[b.grow(len(buff)):], buff), nil
}

// WriteByte implements io.ByteWriter
func (b *Buffer) WriteByte(by byte) error {
	b.buff[b.grow(1)] = by
	return nil
}

// Len returns the length of the unread portion of the buffer
func (b *Buffer) Len() int {
	return len(b.buff) - b.off
}

// Bytes returns the unread portion of the buffer.
// The slice is only valid until the next call to Write.
func (b *Buffer) Bytes() []byte {
	return b.buff[b.off:]
}

// Reset rewinds the buffer to the start of its data, so everything written can be read again.
func (b *Buffer) Reset() {
	b.off = 0
}

// grow extends the buffer by n bytes, returning the index to write them at.
// Read data is kept so Reset can replay it.
func (b *Buffer) grow(n int) int {
	l := len(b.buff)
	if l+n <= cap(b.buff) {
		b.buff = b.buff[:l+n]
		return l
	}

	// must allocate
	nb := make([]byte, l+n, cap(b.buff)*2+n)
	copy(nb, b.buff)
	b.buff = nb
	return l
}
