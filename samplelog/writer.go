package samplelog

import (
	"io"
	"os"
	"sync"

	"github.com/fxamacker/cbor/v2"
	"github.com/google/uuid"

	"github.com/moffa90/go-bluest/feature"
)

// Writer appends records to a stream.
// It is safe for concurrent use.
type Writer struct {
	session string
	node    string

	mu     sync.Mutex
	closer io.Closer
	enc    *cbor.Encoder
	count  int
	err    error
	closed bool
}

// NewWriter writes the records of node to w with a new session id.
func NewWriter(w io.Writer, node string) *Writer {
	return &Writer{
		session: uuid.NewString(),
		node:    node,
		enc:     encMode.NewEncoder(w),
	}
}

// Create opens path for appending, creating it with permissions 0644 if
// needed.
func Create(path, node string) (*Writer, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}
	w := NewWriter(f, node)
	w.closer = f
	return w, nil
}

// Session returns the id stamped on the records.
func (w *Writer) Session() string { return w.session }

// Write appends r. Session and Node are set by the writer.
func (w *Writer) Write(r Record) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return os.ErrClosed
	}
	r.Session = w.session
	r.Node = w.node
	if err := w.enc.Encode(r); err != nil {
		return err
	}
	w.count++
	return nil
}

// Count returns the number of records written.
func (w *Writer) Count() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.count
}

// Err returns the first error met by the Listener.
func (w *Writer) Err() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.err
}

// Listener returns a feature listener recording every sample.
func (w *Writer) Listener() feature.Listener {
	return feature.ListenerFunc(func(f feature.Feature, s *feature.Sample) {
		if err := w.Write(NewRecord(f.Name(), s)); err != nil {
			w.mu.Lock()
			if w.err == nil {
				w.err = err
			}
			w.mu.Unlock()
		}
	})
}

// Close closes the file opened by Create. It is safe to call Close multiple
// times; later writes fail with os.ErrClosed.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true
	if w.closer != nil {
		return w.closer.Close()
	}
	return nil
}
