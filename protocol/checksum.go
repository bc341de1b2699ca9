package protocol

import (
	"encoding/binary"
	"fmt"
	"hash"
	"io"
)

// stm32Table is the MSB-first lookup table for CRC32Polynomial.
var stm32Table = makeSTM32Table()

func makeSTM32Table() *[256]uint32 {
	var t [256]uint32
	for i := range t {
		crc := uint32(i) << 24
		for j := 0; j < BitsPerByte; j++ {
			if crc&CRC32HighBitMask != 0 {
				crc = (crc << 1) ^ CRC32Polynomial
			} else {
				crc <<= 1
			}
		}
		t[i] = crc
	}
	return &t
}

// updateWord feeds one 32-bit word to the CRC, the way the STM32 CRC data
// register does: the whole word is shifted in, most significant bit first.
func updateWord(crc uint32, word uint32) uint32 {
	crc ^= word
	for i := 0; i < CRCWordSize; i++ {
		crc = (crc << BitsPerByte) ^ stm32Table[crc>>24]
	}
	return crc
}

// stm32Digest implements hash.Hash32 for the STM32 CRC unit.
// Input is consumed as little-endian words; a trailing partial word is
// buffered and never enters the checksum.
type stm32Digest struct {
	crc     uint32
	pending [CRCWordSize]byte
	n       int
}

// NewSTM32CRC returns a hash.Hash32 computing the checksum of the STM32
// hardware CRC peripheral in its reset configuration:
//   - Polynomial: CRC32Polynomial (no reflection)
//   - Initial value: CRC32InitialValue
//   - No final XOR
//   - Data fed as little-endian 32-bit words
func NewSTM32CRC() hash.Hash32 {
	return &stm32Digest{crc: CRC32InitialValue}
}

func (d *stm32Digest) Write(p []byte) (int, error) {
	written := len(p)

	if d.n > 0 {
		c := copy(d.pending[d.n:], p)
		d.n += c
		p = p[c:]
		if d.n < CRCWordSize {
			return written, nil
		}
		d.crc = updateWord(d.crc, binary.LittleEndian.Uint32(d.pending[:]))
		d.n = 0
	}

	for len(p) >= CRCWordSize {
		d.crc = updateWord(d.crc, binary.LittleEndian.Uint32(p))
		p = p[CRCWordSize:]
	}

	d.n = copy(d.pending[:], p)
	return written, nil
}

func (d *stm32Digest) Sum32() uint32 { return d.crc }

func (d *stm32Digest) Sum(b []byte) []byte {
	return binary.BigEndian.AppendUint32(b, d.crc)
}

func (d *stm32Digest) Reset() {
	d.crc = CRC32InitialValue
	d.n = 0
}

func (d *stm32Digest) Size() int { return 4 }

func (d *stm32Digest) BlockSize() int { return CRCWordSize }

// STM32CRC computes the STM32 CRC of data. Trailing bytes that do not fill a
// whole 32-bit word are ignored.
func STM32CRC(data []byte) uint32 {
	h := NewSTM32CRC()
	_, _ = h.Write(data)
	return h.Sum32()
}

// FileCRC computes the STM32 CRC of the first size bytes of r, truncated to
// a multiple of 4 bytes. This is the value the board expects in the upload
// command.
func FileCRC(r io.Reader, size int64) (uint32, error) {
	aligned := size - size%CRCWordSize
	h := NewSTM32CRC()
	n, err := io.CopyN(h, r, aligned)
	if err != nil {
		return 0, fmt.Errorf("read %d of %d bytes: %w", n, aligned, err)
	}
	return h.Sum32(), nil
}
