package node

import (
	"fmt"

	"github.com/moffa90/go-bluest/numconv"
)

// commandResponseHeader is [ts u16 LE][mask u32 BE][type]
const commandResponseHeader = 7

// BuildCommand frames a feature command for the config characteristic:
//
//	[feature mask u32 BE][command type][data]
func BuildCommand(mask uint32, cmdType byte, data []byte) []byte {
	cmd := make([]byte, 0, 5+len(data))
	cmd = numconv.BigEndian.AppendU32(cmd, mask)
	cmd = append(cmd, cmdType)
	return append(cmd, data...)
}

// CommandResponse is an answer read from the config characteristic.
type CommandResponse struct {
	Timestamp uint16
	Mask      uint32
	Type      byte
	Data      []byte
}

// ParseCommandResponse decodes
//
//	[ts u16 LE][feature mask u32 BE][command type][data]
func ParseCommandResponse(payload []byte) (CommandResponse, error) {
	if len(payload) < commandResponseHeader {
		return CommandResponse{}, fmt.Errorf("command response too short: %d bytes", len(payload))
	}
	ts, err := numconv.LittleEndian.U16At(payload, 0)
	if err != nil {
		return CommandResponse{}, err
	}
	mask, err := numconv.BigEndian.U32At(payload, 2)
	if err != nil {
		return CommandResponse{}, err
	}
	return CommandResponse{
		Timestamp: ts,
		Mask:      mask,
		Type:      payload[6],
		Data:      append([]byte(nil), payload[commandResponseHeader:]...),
	}, nil
}
