package upgrade

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/moffa90/go-bluest/firmware"
	"github.com/moffa90/go-bluest/protocol"
)

// uploadSession streams a firmware image to the board.
//
// The board first echoes the checksum of the upload command. The image then
// goes out in blocks of messages; the next block starts when every message
// of the current one has been written. After the last byte the board answers
// with protocol.UploadAck if the image matches the checksum.
type uploadSession struct {
	n      *Nucleo
	id     string
	fwType protocol.FirmwareType
	file   firmware.File

	data      io.ReadCloser
	total     int64
	sent      int64
	crc       uint32
	blockSize int

	handshake   bool
	handshakeAt time.Time
	written     int // messages written since the handshake
	acked       int // write completions since the handshake
	reported    int64
}

func (u *uploadSession) start() {
	u.total = u.file.Length()
	if u.total <= 0 || u.total > math.MaxUint32 {
		u.fail(CodeInvalidFile, fmt.Sprintf("unsupported file size %d", u.total), nil)
		return
	}

	crc, err := u.checksum()
	if err != nil {
		u.fail(CodeInvalidFile, "cannot compute checksum", err)
		return
	}
	u.crc = crc

	u.data, err = u.file.Open()
	if err != nil {
		u.fail(CodeInvalidFile, "cannot open file", err)
		return
	}

	u.blockSize = u.n.window.BlockSize()
	u.n.logInfo("starting upload",
		"session", u.id,
		"type", u.fwType.String(),
		"file", u.file.Name(),
		"bytes", u.total,
		"crc", fmt.Sprintf("0x%08X", u.crc),
		"block", u.blockSize,
	)

	cmd := protocol.BuildUploadCmd(u.fwType, uint32(u.total), u.crc)
	u.n.arm(u, u.n.config.UploadTimeout)
	if n, err := u.n.debug.Write(cmd); err != nil || n != len(cmd) {
		u.fail(CodeTransmission, "upload command not sent", err)
	}
}

func (u *uploadSession) checksum() (uint32, error) {
	r, err := u.file.Open()
	if err != nil {
		return 0, err
	}
	defer func() { _ = r.Close() }()
	return protocol.FileCRC(r, u.total)
}

func (u *uploadSession) stdOut(msg string) {
	if !u.handshake {
		if !protocol.IsCRCAck(msg, u.crc) {
			u.n.window.Failure()
			u.fail(CodeTransmission, fmt.Sprintf("board answered % X instead of the checksum", []byte(msg)), nil)
			return
		}
		u.handshake = true
		u.handshakeAt = time.Now()
		u.written, u.acked = 0, 0
		u.n.logDebug("checksum accepted", "session", u.id)
		u.n.arm(u, u.n.config.UploadTimeout)
		u.sendBlock()
		return
	}

	// any answer after the handshake is the verdict of the board
	u.n.stopTimer()
	if !protocol.IsUploadAck(msg) {
		u.fail(CodeCorruptedFile, fmt.Sprintf("board answered % X", []byte(msg)), nil)
		return
	}
	u.complete()
}

func (u *uploadSession) stdInSent(_ string, ok bool) {
	if !ok {
		u.fail(CodeTransmission, "write failed", nil)
		return
	}
	if !u.handshake {
		return
	}

	u.n.arm(u, u.n.config.UploadTimeout)
	u.acked++

	last := u.sent == u.total && u.acked == u.written
	if u.acked%u.blockSize == 0 || last {
		u.reportProgress()
	}
	if u.acked%u.blockSize == 0 {
		u.sendBlock()
	}
}

func (u *uploadSession) timeout() {
	u.n.window.Failure()
	u.fail(CodeTransmission, "timeout waiting for the board", nil)
}

// sendBlock writes up to blockSize messages. It stops at the first chunk
// that cannot be read or written; the upload timeout reports the failure.
func (u *uploadSession) sendBlock() {
	for i := 0; i < u.blockSize && u.sent < u.total; i++ {
		size := u.total - u.sent
		if size > protocol.ChunkSize {
			size = protocol.ChunkSize
		}

		chunk := make([]byte, size)
		if _, err := io.ReadFull(u.data, chunk); err != nil {
			u.n.logError("cannot read firmware file", "session", u.id, "offset", u.sent, "error", err)
			return
		}
		u.sent += size
		u.written++

		if n, err := u.n.debug.Write(chunk); err != nil || n != len(chunk) {
			u.n.logError("chunk not sent", "session", u.id, "offset", u.sent-size, "error", err)
			return
		}
	}
	u.n.logDebug("block sent", "session", u.id, "sent", u.sent, "total", u.total)
}

func (u *uploadSession) reportProgress() {
	if u.sent == u.reported {
		return
	}
	u.reported = u.sent

	n, file, sent, total := u.n, u.file, u.sent, u.total
	n.progress(func(cb Callback) { cb.OnLoadFwProgressUpdate(n, file, sent, total) })
}

func (u *uploadSession) complete() {
	elapsed := time.Since(u.handshakeAt)
	u.n.window.Success()
	u.n.logInfo("upload complete", "session", u.id, "file", u.file.Name(), "elapsed", elapsed)

	n, file := u.n, u.file
	n.finish(u, func(cb Callback) { cb.OnLoadFwComplete(n, file, elapsed) })
}

func (u *uploadSession) fail(code ErrorCode, reason string, cause error) {
	err := &UploadError{Code: code, Reason: reason, Err: cause}
	u.n.logError("upload failed", "session", u.id, "file", u.file.Name(), "error", err,
		"failures", u.n.window.Failures())

	n, file := u.n, u.file
	n.finish(u, func(cb Callback) { cb.OnLoadFwError(n, file, err) })
}

func (u *uploadSession) release() {
	if u.data != nil {
		_ = u.data.Close()
		u.data = nil
	}
}
