package numconv

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestU8At(t *testing.T) {
	buf := []byte{0x01, 0xFF}

	v, err := U8At(buf, 1)
	require.NoError(t, err)
	assert.Equal(t, uint8(0xFF), v)

	s, err := I8At(buf, 1)
	require.NoError(t, err)
	assert.Equal(t, int8(-1), s)
}

func TestLittleEndianReaders(t *testing.T) {
	buf := []byte{0x0A, 0x00, 0x78, 0x56, 0x34, 0x12}

	u16, err := LittleEndian.U16At(buf, 0)
	require.NoError(t, err)
	assert.Equal(t, uint16(10), u16)

	u32, err := LittleEndian.U32At(buf, 2)
	require.NoError(t, err)
	assert.Equal(t, uint32(0x12345678), u32)

	i16, err := LittleEndian.I16At([]byte{0xFE, 0xFF}, 0)
	require.NoError(t, err)
	assert.Equal(t, int16(-2), i16)

	f, err := LittleEndian.F32At([]byte{0x00, 0x00, 0x80, 0x3F}, 0)
	require.NoError(t, err)
	assert.Equal(t, float32(1.0), f)
}

func TestBigEndianReaders(t *testing.T) {
	mask, err := BigEndian.U32At([]byte{0x00, 0x00, 0x04, 0x00}, 0)
	require.NoError(t, err)
	assert.Equal(t, uint32(0x400), mask)
}

func TestOutOfRange(t *testing.T) {
	tests := []struct {
		name string
		read func() error
	}{
		{"u8 past end", func() error { _, err := U8At([]byte{0x01}, 1); return err }},
		{"u8 negative offset", func() error { _, err := U8At([]byte{0x01}, -1); return err }},
		{"u16 one byte left", func() error { _, err := LittleEndian.U16At([]byte{0x01, 0x02}, 1); return err }},
		{"u32 short buffer", func() error { _, err := LittleEndian.U32At([]byte{1, 2, 3}, 0); return err }},
		{"big endian u32", func() error { _, err := BigEndian.U32At(nil, 0); return err }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.read()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrOutOfRange))

			var rangeErr *RangeError
			assert.True(t, errors.As(err, &rangeErr))
		})
	}
}

func TestRangeErrorMessage(t *testing.T) {
	err := &RangeError{Offset: 3, Width: 4, Len: 5}
	assert.Contains(t, err.Error(), "4 bytes at offset 3")
	assert.Contains(t, err.Error(), "5 bytes")
}

func TestWriters(t *testing.T) {
	assert.Equal(t, []byte{0x78, 0x56, 0x34, 0x12}, LittleEndian.U32Bytes(0x12345678))
	assert.Equal(t, []byte{0x12, 0x34, 0x56, 0x78}, BigEndian.U32Bytes(0x12345678))
	assert.Equal(t, []byte{0x0A, 0x00}, LittleEndian.U16Bytes(10))
	assert.Equal(t, []byte{'u', 0x01, 0x00, 0x00, 0x00}, LittleEndian.AppendU32([]byte{'u'}, 1))
}
