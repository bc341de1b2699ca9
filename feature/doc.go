// Package feature decodes the data streams exported by a BlueST node.
//
// A Feature turns the payload of a notification into a Sample, a
// timestamped record whose values follow the feature's Field descriptors,
// and delivers it to the registered listeners.
//
// # Decoding
//
// The node calls Update with the unwrapped device timestamp and the
// notification payload. Update returns the number of bytes consumed, so
// that more than one feature can share the same notification:
//
//	n, err := f.Update(ts, payload, 2)
//	if errors.Is(err, feature.ErrMalformedPayload) {
//	    // the sample is dropped
//	}
//
// # Listeners
//
// Every listener gets its own delivery goroutine: a slow listener never
// blocks the node, and a listener always sees the samples in the order they
// were decoded. There is no ordering between different listeners.
//
// # Commands
//
// Some features accept commands, for example to enable a detection
// algorithm on the board. Commands go through the Commander bound to the
// feature, and the answers come back through ParseCommandResponse.
package feature
