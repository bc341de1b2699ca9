package ble

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"tinygo.org/x/bluetooth"

	"github.com/moffa90/go-bluest/node"
)

// ErrNotFound is returned by Scanner.Find when the scan ends without a
// matching node.
var ErrNotFound = errors.New("node not found")

// Discovered is a BlueST node seen while scanning.
type Discovered struct {
	Name      string
	Address   bluetooth.Address
	RSSI      int16
	Advertise node.Advertise
}

// Scanner lists the BlueST nodes in range.
type Scanner struct {
	adapter *bluetooth.Adapter
	logger  Logger

	mu       sync.Mutex
	scanning bool
}

// NewScanner returns a scanner on adapter, which must be enabled.
func NewScanner(adapter *bluetooth.Adapter, opts ...Option) *Scanner {
	cfg := applyOptions(opts)
	return &Scanner{adapter: adapter, logger: cfg.Logger}
}

// Scan reports every BlueST advertisement to fn until ctx is done or fn
// returns false. Devices of other vendors are skipped.
func (s *Scanner) Scan(ctx context.Context, fn func(Discovered) bool) error {
	s.mu.Lock()
	if s.scanning {
		s.mu.Unlock()
		return fmt.Errorf("scan already running")
	}
	s.scanning = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.scanning = false
		s.mu.Unlock()
	}()

	var stopOnce sync.Once
	stop := func() {
		stopOnce.Do(func() {
			if err := s.adapter.StopScan(); err != nil {
				logError(s.logger, "cannot stop scan", "error", err)
			}
		})
	}

	done := make(chan error, 1)
	go func() {
		done <- s.adapter.Scan(func(_ *bluetooth.Adapter, result bluetooth.ScanResult) {
			d, ok := discoveredFrom(result.LocalName(), result.ManufacturerData())
			if !ok {
				return
			}
			d.Address = result.Address
			d.RSSI = result.RSSI
			logDebug(s.logger, "node found", "name", d.Name, "address", d.Address.String(),
				"model", d.Advertise.Model.String(), "rssi", d.RSSI)
			if !fn(d) {
				stop()
			}
		})
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		stop()
		<-done
		return nil
	}
}

// Find scans until match accepts a node.
func (s *Scanner) Find(ctx context.Context, match func(Discovered) bool) (Discovered, error) {
	var (
		found Discovered
		ok    bool
	)
	err := s.Scan(ctx, func(d Discovered) bool {
		if ok {
			return false
		}
		if match(d) {
			found, ok = d, true
			return false
		}
		return true
	})
	if err != nil {
		return Discovered{}, err
	}
	if !ok {
		return Discovered{}, ErrNotFound
	}
	return found, nil
}

// discoveredFrom decodes the first BlueST manufacturer data element.
func discoveredFrom(name string, elements []bluetooth.ManufacturerDataElement) (Discovered, bool) {
	for _, el := range elements {
		adv, err := node.ParseManufacturerData(el.CompanyID, el.Data)
		if err != nil {
			continue
		}
		return Discovered{Name: name, Advertise: adv}, true
	}
	return Discovered{}, false
}
