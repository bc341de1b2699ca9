package ble

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"tinygo.org/x/bluetooth"

	"github.com/moffa90/go-bluest/node"
)

// Device is a connected BlueST node.
type Device struct {
	node   *node.Node
	debug  *DebugConsole
	logger Logger

	mu         sync.Mutex
	subscribed []Characteristic
	disconnect func() error
	closed     bool
}

// gattDevice is the discovery part of bluetooth.Device.
type gattDevice interface {
	DiscoverServices(uuids []bluetooth.UUID) ([]bluetooth.DeviceService, error)
}

// Connect connects to d and binds its characteristics to a new node.Node.
func Connect(adapter *bluetooth.Adapter, d Discovered, opts ...Option) (*Device, error) {
	cfg := applyOptions(opts)

	logInfo(cfg.Logger, "connecting", "name", d.Name, "address", d.Address.String())
	dev, err := adapter.Connect(d.Address, bluetooth.ConnectionParams{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", d.Address.String(), err)
	}

	chars, err := discover(dev)
	if err != nil {
		_ = dev.Disconnect()
		return nil, err
	}

	out, err := Attach(node.New(d.Name, d.Advertise), chars, opts...)
	if err != nil {
		_ = dev.Disconnect()
		return nil, err
	}
	out.disconnect = dev.Disconnect
	return out, nil
}

// discover returns the characteristics of dev by lowercase UUID.
func discover(dev gattDevice) (map[string]Characteristic, error) {
	services, err := dev.DiscoverServices(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to discover services: %w", err)
	}

	chars := make(map[string]Characteristic)
	for _, svc := range services {
		found, err := svc.DiscoverCharacteristics(nil)
		if err != nil {
			return nil, fmt.Errorf("failed to discover characteristics of %s: %w", svc.UUID().String(), err)
		}
		for _, c := range found {
			chars[strings.ToLower(c.UUID().String())] = c
		}
	}
	return chars, nil
}

// Attach binds the characteristics of a connected node, indexed by
// lowercase UUID, to n:
//   - feature characteristics exporting a feature of n are subscribed
//   - the config characteristic becomes the ConfigWriter of n
//   - the debug terminal becomes the Debug of n
func Attach(n *node.Node, chars map[string]Characteristic, opts ...Option) (*Device, error) {
	cfg := applyOptions(opts)
	d := &Device{node: n, logger: cfg.Logger}

	for uuid, c := range chars {
		mask, ok := node.FeatureMaskOf(uuid)
		if !ok || !n.HasFeatures(mask) {
			continue
		}
		if err := c.EnableNotifications(d.featureHandler(mask)); err != nil {
			d.unsubscribe()
			return nil, fmt.Errorf("failed to subscribe to features 0x%08X: %w", mask, err)
		}
		d.subscribed = append(d.subscribed, c)
		logDebug(d.logger, "features subscribed", "node", n.Name(), "mask", fmt.Sprintf("0x%08X", mask))
	}

	if c, ok := chars[node.ConfigCharUUID]; ok {
		if err := c.EnableNotifications(d.configHandler); err != nil {
			d.unsubscribe()
			return nil, fmt.Errorf("failed to subscribe to the config characteristic: %w", err)
		}
		d.subscribed = append(d.subscribed, c)
		n.SetConfigWriter(configWriter{c})
	}

	if term, ok := chars[node.DebugTermUUID]; ok {
		debug, err := NewDebugConsole(term, chars[node.DebugStdErrUUID])
		if err != nil {
			d.unsubscribe()
			return nil, err
		}
		d.debug = debug
		n.SetDebug(debug)
	}

	return d, nil
}

func (d *Device) featureHandler(mask uint32) func([]byte) {
	return func(buf []byte) {
		if err := d.node.UpdateFeatures(mask, buf); err != nil {
			logError(d.logger, "cannot decode notification", "node", d.node.Name(), "error", err)
		}
	}
}

func (d *Device) configHandler(buf []byte) {
	if err := d.node.HandleCommandResponse(buf); err != nil {
		logError(d.logger, "cannot decode command response", "node", d.node.Name(), "error", err)
	}
}

// Node returns the node bound to the device.
func (d *Device) Node() *node.Node { return d.node }

// Debug returns the debug console, nil when the node exports none.
func (d *Device) Debug() *DebugConsole { return d.debug }

func (d *Device) unsubscribe() error {
	var errs []error
	for _, c := range d.subscribed {
		if err := c.EnableNotifications(nil); err != nil {
			errs = append(errs, err)
		}
	}
	d.subscribed = nil
	return errors.Join(errs...)
}

// Close unsubscribes, stops the node listeners and disconnects.
func (d *Device) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return nil
	}
	d.closed = true

	errs := []error{d.unsubscribe()}
	if d.debug != nil {
		errs = append(errs, d.debug.Close())
	}
	d.node.Close()
	if d.disconnect != nil {
		errs = append(errs, d.disconnect())
	}
	return errors.Join(errs...)
}

// configWriter sends feature commands to the config characteristic.
type configWriter struct {
	c Characteristic
}

func (w configWriter) WriteConfig(data []byte) bool {
	n, err := w.c.WriteWithoutResponse(data)
	return err == nil && n == len(data)
}
