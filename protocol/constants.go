package protocol

// Version query commands.
const (
	// VersionBoardCmd asks the board for its application firmware version
	VersionBoardCmd = "versionFw\n"

	// VersionBleCmd asks the board for its BLE stack version
	VersionBleCmd = "versionBle\n"

	// AnswerTerminator ends every textual answer of the board
	AnswerTerminator = "\r\n"
)

// Upload command prefixes.
const (
	// UploadBoardPrefix starts the upload of the application firmware
	UploadBoardPrefix = "upgradeFw"

	// UploadBlePrefix starts the upload of the BLE stack firmware
	UploadBlePrefix = "upgradeBle"
)

// Upload framing constants.
const (
	// ChunkSize is the size of a file data message. The STM32L4 flash is
	// written 8 bytes at a time, so a multiple of 8 keeps the board code simple.
	ChunkSize = 16

	// UploadAck is the single byte the board sends when the written image is valid
	UploadAck = 0x01

	// CRCSize is the size of the checksum echoed by the board
	CRCSize = 4

	// LengthSize is the size of the file length field
	LengthSize = 4

	// CRCWordSize is the granularity of the STM32 CRC unit (one 32-bit word)
	CRCWordSize = 4
)

// Checksum algorithm constants for the STM32 CRC peripheral.
const (
	// CRC32Polynomial is the CRC-32 (Ethernet) polynomial, processed MSB first
	CRC32Polynomial = 0x04C11DB7

	// CRC32InitialValue is the reset value of the CRC data register
	CRC32InitialValue = 0xFFFFFFFF

	// CRC32HighBitMask is the high bit mask for the MSB-first shift
	CRC32HighBitMask = 0x80000000

	// BitsPerByte is the number of bits per byte
	BitsPerByte = 8
)
