package upgrade

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAdaptiveWindow(t *testing.T) {
	w := NewAdaptiveWindow(10)

	sizes := []int{w.BlockSize()}
	for i := 0; i < 5; i++ {
		w.Failure()
		sizes = append(sizes, w.BlockSize())
	}
	assert.Equal(t, []int{10, 5, 2, 1, 1, 1}, sizes)
	assert.Equal(t, 5, w.Failures())

	w.Success()
	assert.Equal(t, 10, w.BlockSize())
	assert.Equal(t, 0, w.Failures())
}

func TestAdaptiveWindowManyFailures(t *testing.T) {
	w := NewAdaptiveWindow(1 << 20)
	for i := 0; i < 40; i++ {
		w.Failure()
	}
	assert.Equal(t, 1, w.BlockSize())
}

func TestAdaptiveWindowDefault(t *testing.T) {
	assert.Equal(t, DefaultBlockPackets, NewAdaptiveWindow(0).BlockSize())
}
