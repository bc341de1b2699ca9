package node

// Model is the board type announced in the advertising data.
type Model int

const (
	Generic Model = iota
	STEVALWESU1
	SensorTile
	BlueCoin
	Nucleo
)

// nucleoFlag marks the device ids of Nucleo expansion boards
const nucleoFlag = 0x80

// ModelFromDeviceID maps the device id of the advertising data to a Model.
func ModelFromDeviceID(id byte) Model {
	if id&nucleoFlag != 0 {
		return Nucleo
	}
	switch id {
	case 0x01:
		return STEVALWESU1
	case 0x02:
		return SensorTile
	case 0x03:
		return BlueCoin
	default:
		return Generic
	}
}

func (m Model) String() string {
	switch m {
	case STEVALWESU1:
		return "STEVAL_WESU1"
	case SensorTile:
		return "SENSOR_TILE"
	case BlueCoin:
		return "BLUE_COIN"
	case Nucleo:
		return "NUCLEO"
	default:
		return "GENERIC"
	}
}
