// Package node models a BlueST node: its advertising data, its features and
// the framing of feature commands.
//
// The node is transport agnostic. The BLE adapter feeds it notifications
// with UpdateFeatures and command answers with HandleCommandResponse, and
// gives it a ConfigWriter to send commands.
package node

import (
	"fmt"
	"math/bits"
	"sort"
	"sync"

	"github.com/moffa90/go-bluest/console"
	"github.com/moffa90/go-bluest/feature"
	"github.com/moffa90/go-bluest/numconv"
)

// timestampSize is the u16 LE timestamp leading every notification
const timestampSize = 2

// ConfigWriter writes to the config characteristic of the node.
type ConfigWriter interface {
	WriteConfig(data []byte) bool
}

// Constructor builds a feature.
type Constructor func() feature.Feature

var (
	registryMu sync.RWMutex
	registry   = map[uint32]Constructor{
		feature.AccelerationEventMask: func() feature.Feature { return feature.NewAccelerationEvent() },
	}
)

// Register makes the feature with the given mask available to every node
// announcing it. The mask must have a single bit set.
func Register(mask uint32, c Constructor) error {
	if bits.OnesCount32(mask) != 1 {
		return fmt.Errorf("feature mask 0x%08X must have exactly one bit set", mask)
	}
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[mask] = c
	return nil
}

// Node is a BlueST board.
type Node struct {
	name string
	adv  Advertise

	mu       sync.Mutex
	features map[uint32]feature.Feature
	writer   ConfigWriter
	debug    console.Debug
	clock    Timestamps
}

// New builds the node and the features announced by adv that are known to
// the registry.
func New(name string, adv Advertise) *Node {
	n := &Node{
		name:     name,
		adv:      adv,
		features: make(map[uint32]feature.Feature),
	}

	registryMu.RLock()
	defer registryMu.RUnlock()
	for mask, build := range registry {
		if adv.FeatureMask&mask == 0 {
			continue
		}
		f := build()
		f.SetCommander(n)
		n.features[mask] = f
	}
	return n
}

func (n *Node) Name() string { return n.name }

func (n *Node) Advertise() Advertise { return n.adv }

func (n *Node) Model() Model { return n.adv.Model }

// SetConfigWriter binds the node to its config characteristic.
func (n *Node) SetConfigWriter(w ConfigWriter) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.writer = w
}

// SetDebug binds the node to its debug console.
func (n *Node) SetDebug(d console.Debug) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.debug = d
}

// Debug returns the debug console, nil when the node exports none.
func (n *Node) Debug() console.Debug {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.debug
}

// Feature returns the feature with the given mask.
func (n *Node) Feature(mask uint32) (feature.Feature, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	f, ok := n.features[mask]
	return f, ok
}

// Features returns the features ordered by decreasing mask, the order
// they appear in a shared notification.
func (n *Node) Features() []feature.Feature {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.featuresLocked(^uint32(0))
}

func (n *Node) featuresLocked(mask uint32) []feature.Feature {
	masks := make([]uint32, 0, len(n.features))
	for m := range n.features {
		if m&mask != 0 {
			masks = append(masks, m)
		}
	}
	sort.Slice(masks, func(i, j int) bool { return masks[i] > masks[j] })

	out := make([]feature.Feature, len(masks))
	for i, m := range masks {
		out[i] = n.features[m]
	}
	return out
}

// HasFeatures reports whether a feature of the node is in mask.
func (n *Node) HasFeatures(mask uint32) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	for m := range n.features {
		if m&mask != 0 {
			return true
		}
	}
	return false
}

func (n *Node) maskOf(f feature.Feature) (uint32, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for m, cur := range n.features {
		if cur == f {
			return m, true
		}
	}
	return 0, false
}

// SendCommand frames a command of f and writes it to the config
// characteristic.
func (n *Node) SendCommand(f feature.Feature, cmdType byte, data []byte) bool {
	mask, ok := n.maskOf(f)
	if !ok {
		return false
	}
	n.mu.Lock()
	w := n.writer
	n.mu.Unlock()
	if w == nil {
		return false
	}
	return w.WriteConfig(BuildCommand(mask, cmdType, data))
}

// UpdateFeatures decodes a notification of the characteristic exporting the
// features in mask. The payload starts with the u16 LE timestamp, followed
// by one sample per feature, highest mask first.
// Decoding stops at the first malformed sample.
func (n *Node) UpdateFeatures(mask uint32, payload []byte) error {
	raw, err := numconv.LittleEndian.U16At(payload, 0)
	if err != nil {
		return fmt.Errorf("notification without timestamp: %w", err)
	}

	n.mu.Lock()
	ts := n.clock.Next(raw)
	features := n.featuresLocked(mask)
	n.mu.Unlock()

	off := timestampSize
	for _, f := range features {
		read, err := f.Update(ts, payload, off)
		if err != nil {
			return err
		}
		off += read
	}
	return nil
}

// HandleCommandResponse routes an answer of the config characteristic to
// the feature it belongs to. Answers for unknown features are ignored.
func (n *Node) HandleCommandResponse(payload []byte) error {
	resp, err := ParseCommandResponse(payload)
	if err != nil {
		return err
	}
	f, ok := n.Feature(resp.Mask)
	if !ok {
		return nil
	}
	f.ParseCommandResponse(uint64(resp.Timestamp), resp.Type, resp.Data)
	return nil
}

// Close stops the listener delivery of every feature.
func (n *Node) Close() {
	for _, f := range n.Features() {
		if c, ok := f.(interface{ Close() }); ok {
			c.Close()
		}
	}
}

var _ feature.Commander = (*Node)(nil)
