package protocol

import (
	"fmt"

	"github.com/moffa90/go-bluest/numconv"
)

// VersionCmd returns the text command that queries the version of fwType.
// The empty string is returned for an unknown firmware type.
func VersionCmd(fwType FirmwareType) string {
	switch fwType {
	case BleFw:
		return VersionBleCmd
	case BoardFw:
		return VersionBoardCmd
	default:
		return ""
	}
}

// UploadPrefix returns the ASCII prefix of the upload command for fwType.
func UploadPrefix(fwType FirmwareType) string {
	if fwType == BleFw {
		return UploadBlePrefix
	}
	return UploadBoardPrefix
}

// BuildUploadCmd constructs the command that starts a file upload.
//
// Frame structure:
//
//	[PREFIX][LENGTH(4)][CRC(4)]
//
// LENGTH and CRC are little-endian. PREFIX is "upgradeBle" for BleFw and
// "upgradeFw" for every other type.
func BuildUploadCmd(fwType FirmwareType, fileLength uint32, crc uint32) []byte {
	prefix := UploadPrefix(fwType)
	cmd := make([]byte, 0, len(prefix)+LengthSize+CRCSize)
	cmd = append(cmd, prefix...)
	cmd = numconv.LittleEndian.AppendU32(cmd, fileLength)
	cmd = numconv.LittleEndian.AppendU32(cmd, crc)
	return cmd
}

// ParseUploadCmd extracts the firmware type, file length and CRC from an
// upload command. It is the board side of BuildUploadCmd.
func ParseUploadCmd(cmd []byte) (fwType FirmwareType, fileLength uint32, crc uint32, err error) {
	var prefix string
	switch {
	case len(cmd) == len(UploadBlePrefix)+LengthSize+CRCSize && string(cmd[:len(UploadBlePrefix)]) == UploadBlePrefix:
		fwType, prefix = BleFw, UploadBlePrefix
	case len(cmd) == len(UploadBoardPrefix)+LengthSize+CRCSize && string(cmd[:len(UploadBoardPrefix)]) == UploadBoardPrefix:
		fwType, prefix = BoardFw, UploadBoardPrefix
	default:
		return 0, 0, 0, fmt.Errorf("not an upload command: %q", cmd)
	}

	if fileLength, err = numconv.LittleEndian.U32At(cmd, len(prefix)); err != nil {
		return 0, 0, 0, err
	}
	if crc, err = numconv.LittleEndian.U32At(cmd, len(prefix)+LengthSize); err != nil {
		return 0, 0, 0, err
	}
	return fwType, fileLength, crc, nil
}

// CRCAnswer returns the bytes the board sends to acknowledge crc.
func CRCAnswer(crc uint32) []byte {
	return numconv.LittleEndian.U32Bytes(crc)
}
