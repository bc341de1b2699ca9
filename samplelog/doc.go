// Package samplelog records feature samples to a CBOR stream and reads them
// back.
//
// A log is a sequence of CBOR-encoded Records with integer keys. Every
// Writer stamps its records with a session id, so several recordings can be
// appended to one file and told apart when replayed.
//
// # Recording
//
//	w, err := samplelog.Create("events.cbor", n.Name())
//	if err != nil {
//	    return err
//	}
//	defer w.Close()
//	f.AddListener(w.Listener())
//
// # Replay
//
//	r, err := samplelog.Open("events.cbor", samplelog.Filter{Feature: feature.AccelerationEventName})
//	if err != nil {
//	    return err
//	}
//	defer r.Close()
//	for {
//	    rec, err := r.Next()
//	    if err == io.EOF {
//	        break
//	    }
//	    ...
//	}
package samplelog
