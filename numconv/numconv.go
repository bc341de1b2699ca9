// Package numconv reads and writes fixed-width numbers in BlueST byte buffers.
//
// Feature payloads are little-endian; feature masks inside advertising and
// command frames are big-endian. Every reader checks the requested range and
// returns a *RangeError instead of panicking, so decoders can turn a short
// payload into a malformed-payload error.
package numconv

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// ErrOutOfRange is matched by every *RangeError.
var ErrOutOfRange = errors.New("buffer offset out of range")

// RangeError reports a read that would run past the end of the buffer.
type RangeError struct {
	Offset int
	Width  int
	Len    int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("cannot read %d bytes at offset %d: buffer has %d bytes",
		e.Width, e.Offset, e.Len)
}

// Is reports whether target is ErrOutOfRange.
func (e *RangeError) Is(target error) bool {
	return target == ErrOutOfRange
}

func check(buf []byte, off, width int) error {
	if off < 0 || off+width > len(buf) {
		return &RangeError{Offset: off, Width: width, Len: len(buf)}
	}
	return nil
}

// U8At returns the unsigned byte at off.
func U8At(buf []byte, off int) (uint8, error) {
	if err := check(buf, off, 1); err != nil {
		return 0, err
	}
	return buf[off], nil
}

// I8At returns the signed byte at off.
func I8At(buf []byte, off int) (int8, error) {
	v, err := U8At(buf, off)
	return int8(v), err
}

// byteOrder binds a binary.ByteOrder to the range-checked readers.
type byteOrder struct {
	order interface {
		binary.ByteOrder
		binary.AppendByteOrder
	}
}

// LittleEndian reads and writes little-endian values.
var LittleEndian = byteOrder{order: binary.LittleEndian}

// BigEndian reads and writes big-endian values.
var BigEndian = byteOrder{order: binary.BigEndian}

// U16At returns the unsigned 16-bit value at off.
func (b byteOrder) U16At(buf []byte, off int) (uint16, error) {
	if err := check(buf, off, 2); err != nil {
		return 0, err
	}
	return b.order.Uint16(buf[off:]), nil
}

// I16At returns the signed 16-bit value at off.
func (b byteOrder) I16At(buf []byte, off int) (int16, error) {
	v, err := b.U16At(buf, off)
	return int16(v), err
}

// U32At returns the unsigned 32-bit value at off.
func (b byteOrder) U32At(buf []byte, off int) (uint32, error) {
	if err := check(buf, off, 4); err != nil {
		return 0, err
	}
	return b.order.Uint32(buf[off:]), nil
}

// I32At returns the signed 32-bit value at off.
func (b byteOrder) I32At(buf []byte, off int) (int32, error) {
	v, err := b.U32At(buf, off)
	return int32(v), err
}

// F32At returns the IEEE-754 float stored at off.
func (b byteOrder) F32At(buf []byte, off int) (float32, error) {
	v, err := b.U32At(buf, off)
	return math.Float32frombits(v), err
}

// U16Bytes encodes v in a new 2-byte slice.
func (b byteOrder) U16Bytes(v uint16) []byte {
	out := make([]byte, 2)
	b.order.PutUint16(out, v)
	return out
}

// U32Bytes encodes v in a new 4-byte slice.
func (b byteOrder) U32Bytes(v uint32) []byte {
	out := make([]byte, 4)
	b.order.PutUint32(out, v)
	return out
}

// AppendU32 appends the encoding of v to dst.
func (b byteOrder) AppendU32(dst []byte, v uint32) []byte {
	return b.order.AppendUint32(dst, v)
}
