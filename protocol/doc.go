// Package protocol implements the BlueMS debug-console firmware upgrade protocol.
//
// This package provides functions to build the commands the host writes on
// the debug console and to check the answers the board writes back.
//
// # Protocol Overview
//
// The debug console is a text/byte duplex channel. A firmware upload is:
//
//	host:  upgrade[Fw|Ble][LENGTH(4)][CRC(4)]   LENGTH and CRC little-endian
//	board: [CRC(4)]                             echo of the CRC it received
//	host:  file data, 16 bytes per message
//	board: 0x01 if the CRC of the written flash matches, anything else otherwise
//
// A version query is a single text line:
//
//	host:  versionFw\n  or  versionBle\n
//	board: <version text>\r\n
//
// # Command Builders
//
//	cmd := protocol.BuildUploadCmd(protocol.BoardFw, size, crc)
//	cmd := protocol.VersionCmd(protocol.BleFw)
//
// # Response Checks
//
//	ok := protocol.IsCRCAck(message, crc)
//	ok := protocol.IsUploadAck(message)
//	text, done := protocol.TrimVersionAnswer(buffer)
//
// # Checksum
//
// The board verifies the file with the STM32 hardware CRC unit, so the host
// must compute the same value:
//
//	crc := protocol.STM32CRC(data)
//	h := protocol.NewSTM32CRC() // hash.Hash32
package protocol
