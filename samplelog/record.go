package samplelog

import (
	"fmt"
	"time"

	"github.com/fxamacker/cbor/v2"

	"github.com/moffa90/go-bluest/feature"
)

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error

	encMode, err = cbor.EncOptions{
		Sort:          cbor.SortCanonical,
		IndefLength:   cbor.IndefLengthForbidden,
		NilContainers: cbor.NilContainerAsNull,
		Time:          cbor.TimeRFC3339Nano,
	}.EncMode()
	if err != nil {
		panic(fmt.Sprintf("samplelog: cbor encoder mode: %v", err))
	}

	decMode, err = cbor.DecOptions{
		DupMapKey:   cbor.DupMapKeyQuiet,
		IndefLength: cbor.IndefLengthAllowed,
	}.DecMode()
	if err != nil {
		panic(fmt.Sprintf("samplelog: cbor decoder mode: %v", err))
	}
}

// Record is one feature sample.
type Record struct {
	// Time is the host time the sample was received
	Time time.Time `cbor:"1,keyasint"`

	// Session identifies the Writer that produced the record (UUID)
	Session string `cbor:"2,keyasint"`

	// Node is the name of the board
	Node string `cbor:"3,keyasint,omitempty"`

	// Feature is the feature name
	Feature string `cbor:"4,keyasint"`

	// Timestamp is the unwrapped device timestamp
	Timestamp uint64 `cbor:"5,keyasint"`

	Values []float64 `cbor:"6,keyasint"`
	Fields []Field   `cbor:"7,keyasint,omitempty"`
}

// Field describes one value of a Record.
type Field struct {
	Name string            `cbor:"1,keyasint"`
	Unit string            `cbor:"2,keyasint,omitempty"`
	Type feature.FieldType `cbor:"3,keyasint"`
	Min  float64           `cbor:"4,keyasint"`
	Max  float64           `cbor:"5,keyasint"`
}

// NewRecord captures s, a sample of the named feature.
func NewRecord(featureName string, s *feature.Sample) Record {
	fields := s.Fields()
	rec := Record{
		Time:      time.Now(),
		Feature:   featureName,
		Timestamp: s.Timestamp,
		Values:    s.Data(),
		Fields:    make([]Field, len(fields)),
	}
	for i, f := range fields {
		rec.Fields[i] = Field{Name: f.Name, Unit: f.Unit, Type: f.Type, Min: f.Min, Max: f.Max}
	}
	return rec
}

// Sample rebuilds the recorded sample.
func (r Record) Sample() *feature.Sample {
	fields := make([]feature.Field, len(r.Fields))
	for i, f := range r.Fields {
		fields[i] = feature.Field{Name: f.Name, Unit: f.Unit, Type: f.Type, Min: f.Min, Max: f.Max}
	}
	return feature.NewSample(r.Timestamp, r.Values, fields)
}

// Marshal encodes r.
func Marshal(r Record) ([]byte, error) {
	return encMode.Marshal(r)
}

// Unmarshal decodes a record encoded by Marshal.
func Unmarshal(data []byte) (Record, error) {
	var r Record
	if err := decMode.Unmarshal(data, &r); err != nil {
		return Record{}, err
	}
	return r, nil
}
