package protocol

import "strings"

// IsCRCAck reports whether message is the board echo of crc.
// The message is compared byte for byte with the little-endian encoding of crc.
func IsCRCAck(message string, crc uint32) bool {
	return message == string(CRCAnswer(crc))
}

// IsUploadAck reports whether message is the final upload acknowledgment.
func IsUploadAck(message string) bool {
	return len(message) == 1 && message[0] == UploadAck
}

// TrimVersionAnswer checks whether buffer holds a complete version answer.
// When the buffer ends with the answer terminator it returns the text before
// it and true; otherwise it returns "" and false.
func TrimVersionAnswer(buffer string) (string, bool) {
	if len(buffer) <= len(AnswerTerminator) || !strings.HasSuffix(buffer, AnswerTerminator) {
		return "", false
	}
	return strings.TrimSuffix(buffer, AnswerTerminator), true
}
