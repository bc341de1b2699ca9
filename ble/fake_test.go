package ble

import (
	"errors"
	"sync"
)

// fakeChar is an in-memory GATT characteristic.
type fakeChar struct {
	mu        sync.Mutex
	notify    func([]byte)
	writes    [][]byte
	enableErr error
	writeErr  error
	maxWrite  int
}

func (c *fakeChar) EnableNotifications(cb func([]byte)) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.enableErr != nil && cb != nil {
		return c.enableErr
	}
	c.notify = cb
	return nil
}

func (c *fakeChar) WriteWithoutResponse(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.writeErr != nil {
		return 0, c.writeErr
	}
	n := len(p)
	if c.maxWrite > 0 && n > c.maxWrite {
		n = c.maxWrite
	}
	c.writes = append(c.writes, append([]byte(nil), p[:n]...))
	return n, nil
}

// send delivers a notification; false when nobody is subscribed.
func (c *fakeChar) send(buf []byte) bool {
	c.mu.Lock()
	cb := c.notify
	c.mu.Unlock()
	if cb == nil {
		return false
	}
	cb(buf)
	return true
}

func (c *fakeChar) subscribed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.notify != nil
}

func (c *fakeChar) written() [][]byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([][]byte(nil), c.writes...)
}

var errRadio = errors.New("radio failure")
