package protocol

// FirmwareType selects which firmware image a command targets.
type FirmwareType int

const (
	// BleFw is the BLE stack firmware running on the radio co-processor
	BleFw FirmwareType = 0

	// BoardFw is the application firmware running on the main MCU
	BoardFw FirmwareType = 1
)

// String returns a human-readable firmware type name.
func (t FirmwareType) String() string {
	switch t {
	case BleFw:
		return "ble"
	case BoardFw:
		return "board"
	default:
		return "unknown"
	}
}

// Valid reports whether t is one of the known firmware types.
func (t FirmwareType) Valid() bool {
	return t == BleFw || t == BoardFw
}
