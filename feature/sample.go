package feature

// Sample is one decoded record of a feature. A Sample never changes after it
// is built, so the same value is handed to every listener.
type Sample struct {
	// Timestamp is the device clock of the notification, in ticks
	Timestamp uint64

	data   []float64
	fields []Field
}

// NewSample builds a sample. values and fields are copied.
func NewSample(ts uint64, values []float64, fields []Field) *Sample {
	return &Sample{
		Timestamp: ts,
		data:      append([]float64(nil), values...),
		fields:    append([]Field(nil), fields...),
	}
}

// Len returns the number of values.
func (s *Sample) Len() int { return len(s.data) }

// Value returns the i-th value. ok is false when the sample has no such
// value.
func (s *Sample) Value(i int) (v float64, ok bool) {
	if s == nil || i < 0 || i >= len(s.data) {
		return 0, false
	}
	return s.data[i], true
}

// Data returns a copy of the values.
func (s *Sample) Data() []float64 {
	return append([]float64(nil), s.data...)
}

// Fields returns a copy of the field descriptors.
func (s *Sample) Fields() []Field {
	return append([]Field(nil), s.fields...)
}
