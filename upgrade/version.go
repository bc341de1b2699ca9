package upgrade

import (
	"strings"

	"github.com/moffa90/go-bluest/firmware"
	"github.com/moffa90/go-bluest/protocol"
)

// versionQuery waits for the "\r\n" terminated answer to a version command.
type versionQuery struct {
	n      *Nucleo
	id     string
	fwType protocol.FirmwareType
	buf    strings.Builder
}

func (q *versionQuery) start() {
	cmd := protocol.VersionCmd(q.fwType)
	if cmd == "" {
		q.n.logError("unknown firmware type", "session", q.id, "type", int(q.fwType))
		q.done(nil)
		return
	}

	q.n.logDebug("reading version", "session", q.id, "type", q.fwType.String())
	q.n.arm(q, q.n.config.VersionTimeout)
	if n, err := q.n.debug.WriteString(cmd); err != nil || n != len(cmd) {
		q.n.logError("version query not sent", "session", q.id, "error", err)
		q.done(nil)
	}
}

func (q *versionQuery) stdOut(msg string) {
	q.buf.WriteString(msg)

	text, complete := protocol.TrimVersionAnswer(q.buf.String())
	if !complete {
		q.n.arm(q, q.n.config.VersionTimeout)
		return
	}

	var (
		v   *firmware.Version
		err error
	)
	switch q.fwType {
	case protocol.BleFw:
		v, err = firmware.ParseBleVersion(text)
	default:
		v, err = firmware.ParseBoardVersion(text)
	}
	if err != nil {
		q.n.logError("invalid version answer", "session", q.id, "error", err)
		q.done(nil)
		return
	}

	q.n.logInfo("version read", "session", q.id, "type", q.fwType.String(), "version", v.String())
	q.done(v)
}

func (q *versionQuery) stdInSent(_ string, ok bool) {
	if !ok {
		q.n.logError("version query not sent", "session", q.id)
		q.done(nil)
		return
	}
	q.n.arm(q, q.n.config.VersionTimeout)
}

func (q *versionQuery) timeout() {
	q.n.logError("version query timed out", "session", q.id, "received", q.buf.Len())
	q.done(nil)
}

func (q *versionQuery) release() {}

func (q *versionQuery) done(v *firmware.Version) {
	n, t := q.n, q.fwType
	n.finish(q, func(cb Callback) { cb.OnVersionRead(n, t, v) })
}
