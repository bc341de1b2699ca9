// Package simboard simulates a board running the BlueMS firmware behind its
// debug console. It answers version queries and receives firmware uploads
// the way the real firmware does, and can be told to misbehave.
//
// Example:
//
//	board := simboard.New(simboard.WithBoardVersion("L476_BLUEMICROSYSTEM2_2.0.1"))
//	defer board.Close()
//	c := upgrade.NewNucleo(board)
package simboard

import (
	"sync"

	"github.com/moffa90/go-bluest/console"
	"github.com/moffa90/go-bluest/dispatch"
	"github.com/moffa90/go-bluest/protocol"
)

// Answers of the board at the end of an upload
const (
	AnswerOK      byte = protocol.UploadAck
	AnswerBadCRC  byte = 0xFF
	noFinalAnswer      = -1
)

// Board is a simulated node implementing console.Debug.
type Board struct {
	events *dispatch.Queue
	mux    console.Mux

	mu       sync.Mutex
	opts     options
	writes   int
	upload   *upload
	received []byte
	uploads  int
	lastType protocol.FirmwareType
	commands []string
}

type upload struct {
	fwType protocol.FirmwareType
	length uint32
	crc    uint32
	data   []byte
}

type options struct {
	boardVersion string
	bleVersion   string
	corruptCRC   bool
	fragmented   bool
	silent       bool
	finalAnswer  int
	failWriteAt  int
	loseWriteAt  int
	maxFrame     int
}

// Option configures a Board.
type Option func(*options)

// WithBoardVersion sets the answer to "versionFw\n", without terminator.
func WithBoardVersion(text string) Option {
	return func(o *options) { o.boardVersion = text }
}

// WithBleVersion sets the answer to "versionBle\n", without terminator.
func WithBleVersion(text string) Option {
	return func(o *options) { o.bleVersion = text }
}

// WithCorruptCRCEcho makes the board echo a CRC different from the one in
// the upload command.
func WithCorruptCRCEcho() Option {
	return func(o *options) { o.corruptCRC = true }
}

// WithFragmentedAnswers splits every version answer in two messages.
func WithFragmentedAnswers() Option {
	return func(o *options) { o.fragmented = true }
}

// WithSilence makes the board accept writes without ever answering.
func WithSilence() Option {
	return func(o *options) { o.silent = true }
}

// WithFinalAnswer replaces the answer sent after the last byte of an upload
// regardless of the checksum result.
func WithFinalAnswer(b byte) Option {
	return func(o *options) { o.finalAnswer = int(b) }
}

// WithFailedWrite reports the n-th write (starting from 1) as failed.
func WithFailedWrite(n int) Option {
	return func(o *options) { o.failWriteAt = n }
}

// WithLostWrite drops the n-th write (starting from 1) and its completion,
// as a radio link that stalls would.
func WithLostWrite(n int) Option {
	return func(o *options) { o.loseWriteAt = n }
}

// WithMaxFrame cuts every board answer in messages of at most n bytes.
func WithMaxFrame(n int) Option {
	return func(o *options) { o.maxFrame = n }
}

// New creates a Board answering as a BlueMS 2.0.1 firmware.
func New(opts ...Option) *Board {
	o := options{
		boardVersion: "L476_BLUEMICROSYSTEM2_2.0.1",
		bleVersion:   "7.2.c",
		finalAnswer:  noFinalAnswer,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return &Board{
		events: dispatch.NewQueue(),
		opts:   o,
	}
}

// Write receives one message from the host.
func (b *Board) Write(p []byte) (int, error) {
	msg := string(p)

	b.mu.Lock()
	defer b.mu.Unlock()

	b.writes++
	if b.writes == b.opts.loseWriteAt {
		return len(p), nil
	}
	ok := b.writes != b.opts.failWriteAt
	b.events.Post(func() { b.mux.StdInSent(b, msg, ok) })
	if !ok {
		return len(p), nil
	}

	// upload commands are longer than any data chunk, so a new command
	// restarts an upload the host gave up on
	if b.upload != nil && len(p) <= protocol.ChunkSize {
		b.receive(p)
		return len(p), nil
	}

	b.commands = append(b.commands, msg)
	switch msg {
	case protocol.VersionBoardCmd:
		b.answerVersion(b.opts.boardVersion)
	case protocol.VersionBleCmd:
		b.answerVersion(b.opts.bleVersion)
	default:
		b.startUpload(p)
	}
	return len(p), nil
}

// WriteString receives one message from the host.
func (b *Board) WriteString(s string) (int, error) {
	return b.Write([]byte(s))
}

func (b *Board) AddListener(l console.Listener) { b.mux.Add(l) }

func (b *Board) RemoveListener(l console.Listener) { b.mux.Remove(l) }

// Close stops the board.
func (b *Board) Close() {
	b.events.Close()
}

func (b *Board) answerVersion(text string) {
	answer := text + protocol.AnswerTerminator
	if b.opts.fragmented && len(answer) > 1 {
		half := len(answer) / 2
		b.send(answer[:half])
		b.send(answer[half:])
		return
	}
	b.send(answer)
}

func (b *Board) startUpload(cmd []byte) {
	fwType, length, crc, err := protocol.ParseUploadCmd(cmd)
	if err != nil {
		// unknown commands are ignored by the firmware
		return
	}
	b.upload = nil

	echo := protocol.CRCAnswer(crc)
	if b.opts.corruptCRC {
		echo[0] ^= 0xFF
		b.send(string(echo))
		return
	}
	b.upload = &upload{fwType: fwType, length: length, crc: crc}
	b.send(string(echo))
}

func (b *Board) receive(p []byte) {
	u := b.upload
	u.data = append(u.data, p...)
	if uint32(len(u.data)) < u.length {
		return
	}

	b.upload = nil
	b.uploads++
	b.received = u.data
	b.lastType = u.fwType

	answer := AnswerBadCRC
	if protocol.STM32CRC(u.data) == u.crc {
		answer = AnswerOK
	}
	if b.opts.finalAnswer != noFinalAnswer {
		answer = byte(b.opts.finalAnswer)
	}
	b.send(string([]byte{answer}))
}

// send queues board output; callers hold b.mu.
func (b *Board) send(msg string) {
	if b.opts.silent {
		return
	}
	for len(msg) > 0 {
		n := len(msg)
		if b.opts.maxFrame > 0 && n > b.opts.maxFrame {
			n = b.opts.maxFrame
		}
		part := msg[:n]
		msg = msg[n:]
		b.events.Post(func() { b.mux.StdOut(b, part) })
	}
}

// Received returns the image of the last completed upload.
func (b *Board) Received() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]byte(nil), b.received...)
}

// Uploads returns the number of completed uploads.
func (b *Board) Uploads() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.uploads
}

// UploadType returns the firmware type of the last completed upload.
func (b *Board) UploadType() protocol.FirmwareType {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lastType
}

// Writes returns the number of messages received from the host.
func (b *Board) Writes() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.writes
}

// Commands returns the messages received outside of an upload.
func (b *Board) Commands() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.commands...)
}

var _ console.Debug = (*Board)(nil)
