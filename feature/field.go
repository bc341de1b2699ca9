package feature

// FieldType is the numeric type of a sample value on the wire.
type FieldType int

const (
	Float FieldType = iota
	Int8
	Int16
	Int32
	Int64
	UInt8
	UInt16
	UInt32
	UInt64
)

var fieldTypeNames = [...]string{
	Float:  "Float",
	Int8:   "Int8",
	Int16:  "Int16",
	Int32:  "Int32",
	Int64:  "Int64",
	UInt8:  "UInt8",
	UInt16: "UInt16",
	UInt32: "UInt32",
	UInt64: "UInt64",
}

func (t FieldType) String() string {
	if t < 0 || int(t) >= len(fieldTypeNames) {
		return "Unknown"
	}
	return fieldTypeNames[t]
}

// Field describes one value of a sample.
type Field struct {
	Name string
	Unit string
	Type FieldType
	Min  float64
	Max  float64
}

// InRange reports whether v lies in [Min, Max].
func (f Field) InRange(v float64) bool {
	return v >= f.Min && v <= f.Max
}
