package encio

import (
	"io"
	"math"
)

// Fixed provides methods for reading and writing the fixed-width, big-endian values typed bytes are built from.
// It holds a scratch buffer, so a Fixed must not be used concurrently.
// The zero value is ready to use.
type Fixed struct {
	buff [8]byte
}

// WriteUint8 writes n as an unsigned byte.
func (f *Fixed) WriteUint8(w io.Writer, n uint8) error {
	f.buff[0] = n
	return Write(f.buff[:1], w)
}

// ReadUint8 reads an unsigned byte.
func (f *Fixed) ReadUint8(r io.Reader) (uint8, error) {
	err := Read(f.buff[:1], r)
	return f.buff[0], err
}

// WriteInt8 writes n as a signed byte.
func (f *Fixed) WriteInt8(w io.Writer, n int8) error {
	f.buff[0] = uint8(n)
	return Write(f.buff[:1], w)
}

// ReadInt8 reads a signed byte.
func (f *Fixed) ReadInt8(r io.Reader) (int8, error) {
	err := Read(f.buff[:1], r)
	return int8(f.buff[0]), err
}

// WriteInt32 writes n as a big-endian 32-bit signed integer.
func (f *Fixed) WriteInt32(w io.Writer, n int32) error {
	EncodeInt32(f.buff[:4], n)
	return Write(f.buff[:4], w)
}

// ReadInt32 reads a big-endian 32-bit signed integer.
func (f *Fixed) ReadInt32(r io.Reader) (int32, error) {
	err := Read(f.buff[:4], r)
	return DecodeInt32(f.buff[:4]), err
}

// WriteInt64 writes n as a big-endian 64-bit signed integer.
func (f *Fixed) WriteInt64(w io.Writer, n int64) error {
	EncodeInt64(f.buff[:8], n)
	return Write(f.buff[:8], w)
}

// ReadInt64 reads a big-endian 64-bit signed integer.
func (f *Fixed) ReadInt64(r io.Reader) (int64, error) {
	err := Read(f.buff[:8], r)
	return DecodeInt64(f.buff[:8]), err
}

// WriteFloat32 writes n as a big-endian 32-bit IEEE 754 float.
func (f *Fixed) WriteFloat32(w io.Writer, n float32) error {
	EncodeFloat32(f.buff[:4], n)
	return Write(f.buff[:4], w)
}

// ReadFloat32 reads a big-endian 32-bit IEEE 754 float.
func (f *Fixed) ReadFloat32(r io.Reader) (float32, error) {
	err := Read(f.buff[:4], r)
	return DecodeFloat32(f.buff[:4]), err
}

// WriteFloat64 writes n as a big-endian 64-bit IEEE 754 float.
func (f *Fixed) WriteFloat64(w io.Writer, n float64) error {
	EncodeFloat64(f.buff[:8], n)
	return Write(f.buff[:8], w)
}

// ReadFloat64 reads a big-endian 64-bit IEEE 754 float.
func (f *Fixed) ReadFloat64(r io.Reader) (float64, error) {
	err := Read(f.buff[:8], r)
	return DecodeFloat64(f.buff[:8]), err
}

// EncodeInt32 writes an int32 to buff.
func EncodeInt32(buff []byte, n int32) {
	EncodeUint32(buff, uint32(n))
}

// DecodeInt32 reads an int32 from buff.
func DecodeInt32(buff []byte) int32 {
	return int32(DecodeUint32(buff))
}

// EncodeUint32 writes a uint32 to buff.
func EncodeUint32(buff []byte, n uint32) {
	buff[0] = uint8(n >> 24)
	buff[1] = uint8(n >> 16)
	buff[2] = uint8(n >> 8)
	buff[3] = uint8(n)
}

// DecodeUint32 reads a uint32 from buff.
func DecodeUint32(buff []byte) uint32 {
	n := uint32(buff[0]) << 24
	n |= uint32(buff[1]) << 16
	n |= uint32(buff[2]) << 8
	n |= uint32(buff[3])
	return n
}

// EncodeInt64 writes an int64 to buff.
func EncodeInt64(buff []byte, n int64) {
	EncodeUint64(buff, uint64(n))
}

// DecodeInt64 reads an int64 from buff.
func DecodeInt64(buff []byte) int64 {
	return int64(DecodeUint64(buff))
}

// EncodeUint64 writes a uint64 to buff.
func EncodeUint64(buff []byte, n uint64) {
	buff[0] = uint8(n >> 56)
	buff[1] = uint8(n >> 48)
	buff[2] = uint8(n >> 40)
	buff[3] = uint8(n >> 32)
	buff[4] = uint8(n >> 24)
	buff[5] = uint8(n >> 16)
	buff[6] = uint8(n >> 8)
	buff[7] = uint8(n)
}

// DecodeUint64 reads a uint64 from buff.
func DecodeUint64(buff []byte) uint64 {
	n := uint64(buff[0]) << 56
	n |= uint64(buff[1]) << 48
	n |= uint64(buff[2]) << 40
	n |= uint64(buff[3]) << 32
	n |= uint64(buff[4]) << 24
	n |= uint64(buff[5]) << 16
	n |= uint64(buff[6]) << 8
	n |= uint64(buff[7])
	return n
}

// EncodeFloat32 writes a float32 to buff.
func EncodeFloat32(buff []byte, n float32) {
	EncodeUint32(buff, math.Float32bits(n))
}

// DecodeFloat32 reads a float32 from buff.
func DecodeFloat32(buff []byte) float32 {
	return math.Float32frombits(DecodeUint32(buff))
}

// EncodeFloat64 writes a float64 to buff.
func EncodeFloat64(buff []byte, n float64) {
	EncodeUint64(buff, math.Float64bits(n))
}

// DecodeFloat64 reads a float64 from buff.
func DecodeFloat64(buff []byte) float64 {
	return math.Float64frombits(DecodeUint64(buff))
}
