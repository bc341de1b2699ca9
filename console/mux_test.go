package console

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type recorder struct {
	out, err []string
	sent     []bool
}

func (r *recorder) OnStdOutReceived(_ Debug, msg string) { r.out = append(r.out, msg) }
func (r *recorder) OnStdErrReceived(_ Debug, msg string) { r.err = append(r.err, msg) }
func (r *recorder) OnStdInSent(_ Debug, _ string, ok bool) {
	r.sent = append(r.sent, ok)
}

func TestMux(t *testing.T) {
	var m Mux
	a, b := &recorder{}, &recorder{}

	m.Add(a)
	m.Add(a)
	m.Add(b)
	m.Add(nil)
	assert.Equal(t, 2, m.Len())

	m.StdOut(nil, "hello")
	m.StdErr(nil, "oops")
	m.StdInSent(nil, "cmd", true)

	m.Remove(a)
	m.Remove(&recorder{})
	m.StdOut(nil, "again")

	assert.Equal(t, []string{"hello"}, a.out)
	assert.Equal(t, []string{"oops"}, a.err)
	assert.Equal(t, []bool{true}, a.sent)
	assert.Equal(t, []string{"hello", "again"}, b.out)
	assert.Equal(t, 1, m.Len())
}

func TestMuxRemoveDuringNotify(t *testing.T) {
	var m Mux
	later := &recorder{}
	var self *ListenerFuncs
	self = &ListenerFuncs{StdOut: func(Debug, string) { m.Remove(self) }}

	m.Add(self)
	m.Add(later)
	m.StdOut(nil, "one")
	m.StdOut(nil, "two")

	assert.Equal(t, []string{"one", "two"}, later.out)
	assert.Equal(t, 1, m.Len())
}

func TestListenerFuncsNilFields(t *testing.T) {
	l := &ListenerFuncs{}
	assert.NotPanics(t, func() {
		l.OnStdOutReceived(nil, "x")
		l.OnStdErrReceived(nil, "x")
		l.OnStdInSent(nil, "x", false)
	})
}
