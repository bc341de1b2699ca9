package feature

// DetectableEvent is a detection algorithm that can be enabled on the
// board. Its value is the command type used to enable or disable it.
type DetectableEvent byte

const (
	DetectNone        DetectableEvent = 0
	DetectMultiple    DetectableEvent = 'm'
	DetectOrientation DetectableEvent = 'o'
	DetectPedometer   DetectableEvent = 'p'
	DetectSingleTap   DetectableEvent = 's'
	DetectDoubleTap   DetectableEvent = 'd'
	DetectFreeFall    DetectableEvent = 'f'
	DetectWakeUp      DetectableEvent = 'w'
	DetectTilt        DetectableEvent = 't'
)

var detectableNames = map[DetectableEvent]string{
	DetectNone:        "None",
	DetectMultiple:    "Multiple",
	DetectOrientation: "Orientation",
	DetectPedometer:   "Pedometer",
	DetectSingleTap:   "Single Tap",
	DetectDoubleTap:   "Double Tap",
	DetectFreeFall:    "Free Fall",
	DetectWakeUp:      "Wake Up",
	DetectTilt:        "Tilt",
}

// DetectableEvents lists every detectable event.
var DetectableEvents = []DetectableEvent{
	DetectNone, DetectMultiple, DetectOrientation, DetectPedometer,
	DetectSingleTap, DetectDoubleTap, DetectFreeFall, DetectWakeUp, DetectTilt,
}

// DetectableEventFromID returns the event whose command type is id.
func DetectableEventFromID(id byte) (DetectableEvent, bool) {
	e := DetectableEvent(id)
	_, ok := detectableNames[e]
	return e, ok
}

// ParseDetectableEvent returns the event with the given name, ignoring case,
// spaces and underscores: "double tap", "DOUBLE_TAP" and "doubletap" all
// name DetectDoubleTap.
func ParseDetectableEvent(name string) (DetectableEvent, bool) {
	key := normalizeName(name)
	for e, n := range detectableNames {
		if normalizeName(n) == key {
			return e, true
		}
	}
	return DetectNone, false
}

func normalizeName(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == ' ' || c == '_' || c == '-':
			continue
		case c >= 'A' && c <= 'Z':
			c += 'a' - 'A'
		}
		out = append(out, c)
	}
	return string(out)
}

// TypeID returns the command type of e.
func (e DetectableEvent) TypeID() byte { return byte(e) }

func (e DetectableEvent) String() string {
	if n, ok := detectableNames[e]; ok {
		return n
	}
	return "Unknown"
}
