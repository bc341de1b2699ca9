package feature

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/moffa90/go-bluest/dispatch"
)

// ErrMalformedPayload is returned when a payload is too short for the wire
// format of a feature or does not match its field descriptors.
var ErrMalformedPayload = errors.New("malformed payload")

// Feature is a data stream exported by a node.
type Feature interface {
	Name() string
	Fields() []Field

	// LastSample returns the most recent sample, nil before the first
	// successful Update.
	LastSample() *Sample

	AddListener(l Listener)
	RemoveListener(l Listener)

	// Update decodes one sample from data starting at off and returns the
	// number of bytes consumed.
	Update(ts uint64, data []byte, off int) (int, error)

	// ParseCommandResponse handles the answer to a command sent by the
	// feature. Features without commands ignore it.
	ParseCommandResponse(ts uint64, cmdType byte, data []byte)

	// SetCommander binds the feature to the node that sends its commands.
	SetCommander(c Commander)
}

// Listener receives the samples of a feature.
type Listener interface {
	OnUpdate(f Feature, s *Sample)
}

// ListenerFunc adapts fn to a Listener. Keep the returned value to remove
// it again.
func ListenerFunc(fn func(f Feature, s *Sample)) Listener {
	return &funcListener{fn: fn}
}

type funcListener struct {
	fn func(f Feature, s *Sample)
}

func (l *funcListener) OnUpdate(f Feature, s *Sample) { l.fn(f, s) }

// Commander sends commands to the firmware of a node on behalf of a
// feature. SendCommand reports whether the command was queued for
// transmission.
type Commander interface {
	SendCommand(f Feature, cmdType byte, data []byte) bool
}

// ExtractResult is the outcome of decoding one sample.
type ExtractResult struct {
	Sample    *Sample
	ReadBytes int
}

// Extractor decodes the wire format of a feature.
type Extractor interface {
	ExtractData(ts uint64, data []byte, off int) (ExtractResult, error)
}

// Owner is a concrete feature embedding *Base.
type Owner interface {
	Feature
	Extractor
}

type listenerSlot struct {
	l Listener
	q *dispatch.Queue
}

// Base implements the sample bookkeeping and listener delivery shared by all
// features. Concrete features embed *Base and implement Extractor.
type Base struct {
	owner  Owner
	name   string
	fields []Field

	last atomic.Pointer[Sample]

	mu        sync.Mutex
	listeners []listenerSlot
	commander Commander
}

// NewBase returns the Base of owner.
func NewBase(owner Owner, name string, fields []Field) *Base {
	return &Base{
		owner:  owner,
		name:   name,
		fields: append([]Field(nil), fields...),
	}
}

func (b *Base) Name() string { return b.name }

// Fields returns a copy of the field descriptors.
func (b *Base) Fields() []Field {
	return append([]Field(nil), b.fields...)
}

func (b *Base) LastSample() *Sample { return b.last.Load() }

// AddListener registers l once.
func (b *Base) AddListener(l Listener) {
	if l == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, s := range b.listeners {
		if s.l == l {
			return
		}
	}
	b.listeners = append(b.listeners, listenerSlot{l: l, q: dispatch.NewQueue()})
}

// RemoveListener unregisters l. Notifications already queued for l are
// dropped.
func (b *Base) RemoveListener(l Listener) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, s := range b.listeners {
		if s.l == l {
			s.q.Close()
			b.listeners = append(b.listeners[:i:i], b.listeners[i+1:]...)
			return
		}
	}
}

// Close unregisters every listener.
func (b *Base) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, s := range b.listeners {
		s.q.Close()
	}
	b.listeners = nil
}

// Notify calls fn for every listener on the listener's own goroutine.
func (b *Base) Notify(fn func(l Listener)) {
	b.mu.Lock()
	slots := b.listeners
	b.mu.Unlock()

	for _, s := range slots {
		l := s.l
		s.q.Post(func() { fn(l) })
	}
}

// Update decodes a sample with the owner's ExtractData, stores it as the
// last sample and notifies the listeners.
func (b *Base) Update(ts uint64, data []byte, off int) (int, error) {
	res, err := b.owner.ExtractData(ts, data, off)
	if err != nil {
		if !errors.Is(err, ErrMalformedPayload) {
			err = fmt.Errorf("%w: %w", ErrMalformedPayload, err)
		}
		return 0, fmt.Errorf("%s: %w", b.name, err)
	}
	if res.Sample == nil || res.Sample.Len() != len(b.fields) {
		return 0, fmt.Errorf("%s: %w: sample does not match the %d fields",
			b.name, ErrMalformedPayload, len(b.fields))
	}

	b.last.Store(res.Sample)
	self := b.owner
	sample := res.Sample
	b.Notify(func(l Listener) { l.OnUpdate(self, sample) })
	return res.ReadBytes, nil
}

// ParseCommandResponse ignores the answer.
func (b *Base) ParseCommandResponse(uint64, byte, []byte) {}

func (b *Base) SetCommander(c Commander) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.commander = c
}

// SendCommand sends a command through the bound Commander. It returns false
// when the feature is not bound to a node.
func (b *Base) SendCommand(cmdType byte, data []byte) bool {
	b.mu.Lock()
	c := b.commander
	b.mu.Unlock()

	if c == nil {
		return false
	}
	return c.SendCommand(b.owner, cmdType, data)
}

// need reports a short payload.
func need(data []byte, off, n int) error {
	if off < 0 || len(data)-off < n {
		return fmt.Errorf("%w: need %d bytes at offset %d, have %d",
			ErrMalformedPayload, n, off, len(data))
	}
	return nil
}
