package protocol

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSTM32CRC(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		expected uint32
	}{
		{
			name:     "empty data",
			data:     []byte{},
			expected: 0xFFFFFFFF, // reset value
		},
		{
			name:     "reference word 0x12345678",
			data:     []byte{0x78, 0x56, 0x34, 0x12},
			expected: 0xDF8A8A2B,
		},
		{
			name:     "zero word",
			data:     []byte{0x00, 0x00, 0x00, 0x00},
			expected: 0xC704DD7B,
		},
		{
			name:     "ascii two words",
			data:     []byte("12345678"),
			expected: 0xFEFC54F9,
		},
		{
			name:     "trailing byte ignored",
			data:     []byte("123456789"),
			expected: 0xFEFC54F9,
		},
		{
			name:     "sixteen byte chunk",
			data:     seq(16),
			expected: 0x081B46CA,
		},
		{
			name:     "forty bytes",
			data:     seq(40),
			expected: 0x16EC7B76,
		},
		{
			name:     "thirty seven bytes",
			data:     seq(37),
			expected: 0x60DE4178,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, STM32CRC(tt.data), "STM32CRC() = 0x%08X", STM32CRC(tt.data))
		})
	}
}

func TestSTM32CRCSplitWrites(t *testing.T) {
	data := seq(40)
	h := NewSTM32CRC()

	// Uneven writes must give the same result as one write.
	for _, part := range [][]byte{data[:1], data[1:6], data[6:7], data[7:33], data[33:]} {
		n, err := h.Write(part)
		require.NoError(t, err)
		assert.Equal(t, len(part), n)
	}
	assert.Equal(t, STM32CRC(data), h.Sum32())

	h.Reset()
	assert.Equal(t, uint32(CRC32InitialValue), h.Sum32())
	assert.Equal(t, 4, h.Size())
	assert.Equal(t, []byte{0xFF, 0xFF, 0xFF, 0xFF}, h.Sum(nil))
}

func TestFileCRC(t *testing.T) {
	data := seq(37)

	crc, err := FileCRC(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	assert.Equal(t, uint32(0x60DE4178), crc)
}

func TestFileCRCShortReader(t *testing.T) {
	_, err := FileCRC(bytes.NewReader(seq(8)), 16)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "of 16 bytes")
}

func TestFileCRCReaderError(t *testing.T) {
	boom := errors.New("boom")
	_, err := FileCRC(failingReader{err: boom}, 8)
	assert.ErrorIs(t, err, boom)
}

type failingReader struct{ err error }

func (r failingReader) Read([]byte) (int, error) { return 0, r.err }

func seq(n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(i)
	}
	return b
}
