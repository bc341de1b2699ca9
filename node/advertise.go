package node

import (
	"errors"
	"fmt"
	"net"

	"github.com/moffa90/go-bluest/numconv"
)

const (
	// ProtocolVersion is the only BlueST advertising version understood
	ProtocolVersion = 0x01

	advertiseShortLen = 6
	advertiseLongLen  = 12
)

// ErrNotBlueST is returned for advertising data of other devices.
var ErrNotBlueST = errors.New("not a BlueST advertising payload")

// Advertise is the BlueST manufacturer data of a node.
//
// Wire format, after the manufacturer data type byte:
//
//	[version][device id][feature mask u32 BE]([mac 6 bytes])
type Advertise struct {
	Version     byte
	DeviceID    byte
	Model       Model
	FeatureMask uint32

	// Address is the MAC carried by the payload, nil when absent
	Address net.HardwareAddr
}

// ParseAdvertise decodes the BlueST manufacturer data.
func ParseAdvertise(data []byte) (Advertise, error) {
	if len(data) != advertiseShortLen && len(data) != advertiseLongLen {
		return Advertise{}, fmt.Errorf("%w: length %d", ErrNotBlueST, len(data))
	}
	if data[0] != ProtocolVersion {
		return Advertise{}, fmt.Errorf("%w: protocol version %d", ErrNotBlueST, data[0])
	}

	mask, err := numconv.BigEndian.U32At(data, 2)
	if err != nil {
		return Advertise{}, err
	}

	adv := Advertise{
		Version:     data[0],
		DeviceID:    data[1],
		Model:       ModelFromDeviceID(data[1]),
		FeatureMask: mask,
	}
	if len(data) == advertiseLongLen {
		adv.Address = net.HardwareAddr(append([]byte(nil), data[6:12]...))
	}
	return adv, nil
}

// ParseManufacturerData decodes BlueST manufacturer data split the way BLE
// stacks report it: the first two bytes as a little-endian company id and
// the rest as the data.
func ParseManufacturerData(companyID uint16, data []byte) (Advertise, error) {
	raw := make([]byte, 0, 2+len(data))
	raw = append(raw, byte(companyID), byte(companyID>>8))
	raw = append(raw, data...)
	return ParseAdvertise(raw)
}

// HasFeature reports whether the node exports the feature with the mask.
func (a Advertise) HasFeature(mask uint32) bool {
	return a.FeatureMask&mask != 0
}
