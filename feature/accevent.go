package feature

import "strings"

// AccelerationEvent is the event mask reported by the accelerometer event
// feature. The low three bits hold one orientation code; every other event
// is a single bit.
type AccelerationEvent uint16

const (
	NoEvent                AccelerationEvent = 0x00
	OrientationTopRight    AccelerationEvent = 0x01
	OrientationBottomRight AccelerationEvent = 0x02
	OrientationBottomLeft  AccelerationEvent = 0x03
	OrientationUp          AccelerationEvent = 0x05
	OrientationDown        AccelerationEvent = 0x06
	Tilt                   AccelerationEvent = 0x08
	FreeFall               AccelerationEvent = 0x10
	SingleTap              AccelerationEvent = 0x20
	DoubleTap              AccelerationEvent = 0x40
	WakeUp                 AccelerationEvent = 0x80
	Pedometer              AccelerationEvent = 0x100

	// orientationBits covers every orientation code
	orientationBits AccelerationEvent = 0x07
)

var orientationNames = map[AccelerationEvent]string{
	OrientationTopRight:    "ORIENTATION_TOP_RIGHT",
	OrientationBottomRight: "ORIENTATION_BOTTOM_RIGHT",
	OrientationBottomLeft:  "ORIENTATION_BOTTOM_LEFT",
	OrientationUp:          "ORIENTATION_UP",
	OrientationDown:        "ORIENTATION_DOWN",
}

// eventNames lists the single bit events in the order they are printed
var eventNames = []struct {
	event AccelerationEvent
	name  string
}{
	{DoubleTap, "DOUBLE_TAP"},
	{Pedometer, "PEDOMETER"},
	{SingleTap, "SINGLE_TAP"},
	{Tilt, "TILT"},
	{FreeFall, "FREE_FALL"},
	{WakeUp, "WAKE_UP"},
}

// ExtractOrientationEvent returns the orientation code of e, or NoEvent when
// the low three bits do not hold a valid code.
func ExtractOrientationEvent(e AccelerationEvent) AccelerationEvent {
	o := e & orientationBits
	if _, ok := orientationNames[o]; !ok {
		return NoEvent
	}
	return o
}

// HasOrientationEvent reports whether e carries an orientation code.
func HasOrientationEvent(e AccelerationEvent) bool {
	return ExtractOrientationEvent(e) != NoEvent
}

// EventToString returns the names of the events in e separated by a space:
// the orientation first, then double tap, pedometer, single tap, tilt,
// free fall and wake up. A mask without any known event, including one that
// only carries the unused orientation codes 4 or 7, gives "NO_EVENT".
func EventToString(e AccelerationEvent) string {
	names := make([]string, 0, 4)
	if o := ExtractOrientationEvent(e); o != NoEvent {
		names = append(names, orientationNames[o])
	}
	for _, n := range eventNames {
		if e&n.event != 0 {
			names = append(names, n.name)
		}
	}
	if len(names) == 0 {
		return "NO_EVENT"
	}
	return strings.Join(names, " ")
}

func (e AccelerationEvent) String() string { return EventToString(e) }
