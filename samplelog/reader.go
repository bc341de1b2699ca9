package samplelog

import (
	"errors"
	"io"
	"os"

	"github.com/fxamacker/cbor/v2"
)

// Filter selects records. Empty fields match every record.
type Filter struct {
	Session string
	Node    string
	Feature string
}

func (f Filter) matches(r Record) bool {
	return (f.Session == "" || f.Session == r.Session) &&
		(f.Node == "" || f.Node == r.Node) &&
		(f.Feature == "" || f.Feature == r.Feature)
}

// Reader iterates over the records of a stream.
type Reader struct {
	dec    *cbor.Decoder
	closer io.Closer
	filter Filter
}

// NewReader reads the records of r matching filter.
func NewReader(r io.Reader, filter Filter) *Reader {
	return &Reader{dec: decMode.NewDecoder(r), filter: filter}
}

// Open reads the records of the file at path matching filter.
func Open(path string, filter Filter) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	r := NewReader(f, filter)
	r.closer = f
	return r, nil
}

// Next returns the next matching record, or io.EOF at the end of the
// stream.
func (r *Reader) Next() (Record, error) {
	for {
		var rec Record
		if err := r.dec.Decode(&rec); err != nil {
			if errors.Is(err, io.EOF) {
				return Record{}, io.EOF
			}
			return Record{}, err
		}
		if r.filter.matches(rec) {
			return rec, nil
		}
	}
}

// ReadAll returns the remaining matching records.
func (r *Reader) ReadAll() ([]Record, error) {
	var out []Record
	for {
		rec, err := r.Next()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		out = append(out, rec)
	}
}

// Close closes the file opened by Open.
func (r *Reader) Close() error {
	if r.closer == nil {
		return nil
	}
	return r.closer.Close()
}
