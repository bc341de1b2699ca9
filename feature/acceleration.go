package feature

import (
	"fmt"
	"sync"

	"github.com/moffa90/go-bluest/numconv"
)

const (
	// AccelerationEventName is the name of the accelerometer event feature
	AccelerationEventName = "Accelerometer Events"

	// AccelerationEventMask is the bit of the feature in the node feature mask
	AccelerationEventMask uint32 = 0x00000400

	eventIndex = 0
	stepsIndex = 1

	commandDisable byte = 0
	commandEnable  byte = 1
)

// AccelerationEventListener is notified when the board answers a request to
// enable or disable a detectable event.
type AccelerationEventListener interface {
	Listener
	OnDetectableEventChange(f *AccelerationEventFeature, e DetectableEvent, enabled bool)
}

// AccelerationEventFeature decodes the events detected by the accelerometer
// and the pedometer step count.
//
// Wire format, starting at the payload offset:
//
//	3 bytes: [event][steps u16 LE]    the pedometer flag is always set
//	2 bytes: [steps u16 LE]           when the pedometer is the enabled event
//	2 bytes: [event][unused]          otherwise, steps are not available
type AccelerationEventFeature struct {
	*Base

	mu      sync.Mutex
	enabled DetectableEvent
}

// NewAccelerationEvent returns the feature with no event enabled.
func NewAccelerationEvent() *AccelerationEventFeature {
	f := &AccelerationEventFeature{}
	f.Base = NewBase(f, AccelerationEventName, []Field{
		{Name: "Event", Type: UInt16, Min: 0, Max: 32767},
		{Name: "nSteps", Type: UInt16, Min: 0, Max: 32767},
	})
	return f
}

// ExtractData decodes one sample. The decoding of a 2 byte payload depends
// on the event currently enabled.
func (f *AccelerationEventFeature) ExtractData(ts uint64, data []byte, off int) (ExtractResult, error) {
	if err := need(data, off, 2); err != nil {
		return ExtractResult{}, err
	}

	var (
		event AccelerationEvent
		steps = -1
		read  int
	)

	if len(data)-off >= 3 {
		raw, err := numconv.U8At(data, off)
		if err != nil {
			return ExtractResult{}, err
		}
		n, err := numconv.LittleEndian.U16At(data, off+1)
		if err != nil {
			return ExtractResult{}, err
		}
		event = AccelerationEvent(raw) | Pedometer
		steps = int(n)
		read = 3
	} else {
		if f.EnabledEvent() == DetectPedometer {
			n, err := numconv.LittleEndian.U16At(data, off)
			if err != nil {
				return ExtractResult{}, err
			}
			event = Pedometer
			steps = int(n)
		} else {
			raw, err := numconv.U8At(data, off)
			if err != nil {
				return ExtractResult{}, err
			}
			event = AccelerationEvent(raw)
		}
		read = 2
	}

	return ExtractResult{
		Sample:    NewSample(ts, []float64{float64(event), float64(steps)}, f.fields),
		ReadBytes: read,
	}, nil
}

// EnabledEvent returns the event the board confirmed as enabled.
func (f *AccelerationEventFeature) EnabledEvent() DetectableEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.enabled
}

// DetectEvent asks the board to enable or disable the detection of e.
// Only one event can be enabled at a time: enabling a new one first disables
// the current one. Enabling DetectNone sends nothing and notifies the
// listeners right away.
// It returns whether the last command was queued for transmission; the
// outcome arrives through OnDetectableEventChange.
func (f *AccelerationEventFeature) DetectEvent(e DetectableEvent, enable bool) bool {
	current := f.EnabledEvent()

	if enable && e != current && current != DetectNone {
		f.SendCommand(current.TypeID(), []byte{commandDisable})
	}

	if e == DetectNone {
		f.notifyEventChange(DetectNone, true)
		return true
	}

	cmd := commandDisable
	if enable {
		cmd = commandEnable
	}
	return f.SendCommand(e.TypeID(), []byte{cmd})
}

// ParseCommandResponse handles the answer to DetectEvent. Answers for an
// unknown command type are ignored; an empty answer is a failure.
func (f *AccelerationEventFeature) ParseCommandResponse(_ uint64, cmdType byte, data []byte) {
	e, ok := DetectableEventFromID(cmdType)
	if !ok {
		return
	}

	status := len(data) > 0 && data[0] == commandEnable

	f.mu.Lock()
	if status {
		f.enabled = e
	} else if f.enabled == e {
		f.enabled = DetectNone
	}
	f.mu.Unlock()

	f.notifyEventChange(e, status)
}

func (f *AccelerationEventFeature) notifyEventChange(e DetectableEvent, enabled bool) {
	f.Notify(func(l Listener) {
		if el, ok := l.(AccelerationEventListener); ok {
			el.OnDetectableEventChange(f, e, enabled)
		}
	})
}

func (f *AccelerationEventFeature) String() string {
	s := f.LastSample()
	if s == nil {
		return f.Name()
	}

	event := AccelerationEventOf(s)
	out := fmt.Sprintf("%s:\n\tTimestamp: %d\n\tEvent: %s", f.Name(), s.Timestamp, EventToString(event))
	if event&Pedometer != 0 {
		out += fmt.Sprintf("\n\tnSteps: %d", PedometerSteps(s))
	}
	return out
}

// AccelerationEventOf returns the event mask of a sample of the feature, or
// NoEvent when the sample has no event value.
func AccelerationEventOf(s *Sample) AccelerationEvent {
	v, ok := s.Value(eventIndex)
	if !ok {
		return NoEvent
	}
	return AccelerationEvent(uint16(v))
}

// HasAccelerationEvent reports whether the sample carries any of the events
// in e.
func HasAccelerationEvent(s *Sample, e AccelerationEvent) bool {
	return AccelerationEventOf(s)&e != 0
}

// PedometerSteps returns the step count of a sample, or -1 when the sample
// carries none.
func PedometerSteps(s *Sample) int {
	v, ok := s.Value(stepsIndex)
	if !ok || v < 0 {
		return -1
	}
	return int(v)
}

var _ Owner = (*AccelerationEventFeature)(nil)
