package config

import (
	"strings"
	"time"

	"github.com/moffa90/go-bluest/console/serialport"
	"github.com/moffa90/go-bluest/firmware"
	"github.com/moffa90/go-bluest/upgrade"
)

// Transports of the debug console
const (
	TransportBLE    = "ble"
	TransportSerial = "serial"
)

const defaultScanTimeoutMs = 10000

// Default returns a normalized empty configuration.
func Default() *Config {
	cfg := &Config{}
	Normalize(cfg)
	return cfg
}

// Normalize fills the unset values with their defaults.
// It must be called after Validate.
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	if cfg.Device.ScanTimeoutMs == 0 {
		cfg.Device.ScanTimeoutMs = defaultScanTimeoutMs
	}

	cfg.Console.Transport = strings.ToLower(cfg.Console.Transport)
	if cfg.Console.Transport == "" {
		cfg.Console.Transport = TransportBLE
	}
	if cfg.Console.Baud == 0 {
		cfg.Console.Baud = serialport.DefaultBaud
	}

	if cfg.Upgrade.VersionTimeoutMs == 0 {
		cfg.Upgrade.VersionTimeoutMs = int(upgrade.DefaultVersionTimeout / time.Millisecond)
	}
	if cfg.Upgrade.UploadTimeoutMs == 0 {
		cfg.Upgrade.UploadTimeoutMs = int(upgrade.DefaultUploadTimeout / time.Millisecond)
	}
	if cfg.Upgrade.BlockPackets == 0 {
		cfg.Upgrade.BlockPackets = upgrade.DefaultBlockPackets
	}

	cfg.Log.Level = strings.ToLower(cfg.Log.Level)
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	cfg.Log.Format = strings.ToLower(cfg.Log.Format)
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
}

// ScanTimeout returns the scan duration.
func (c *Config) ScanTimeout() time.Duration {
	return time.Duration(c.Device.ScanTimeoutMs) * time.Millisecond
}

// UpgradeOptions returns the console options of the upgrade section.
func (c *Config) UpgradeOptions() []upgrade.Option {
	return []upgrade.Option{
		upgrade.WithVersionTimeout(time.Duration(c.Upgrade.VersionTimeoutMs) * time.Millisecond),
		upgrade.WithUploadTimeout(time.Duration(c.Upgrade.UploadTimeoutMs) * time.Millisecond),
		upgrade.WithBlockPackets(c.Upgrade.BlockPackets),
	}
}

// Compatibility returns the minimum firmware table, the built-in one when
// min_versions is empty.
func (c *Config) Compatibility() (firmware.CompatibilityTable, error) {
	if len(c.Upgrade.MinVersions) == 0 {
		return firmware.DefaultCompatibility, nil
	}
	table := make(firmware.CompatibilityTable, 0, len(c.Upgrade.MinVersions))
	for _, mv := range c.Upgrade.MinVersions {
		v, err := firmware.NewRequirement(mv.Name, mv.MCU, mv.Version)
		if err != nil {
			return nil, err
		}
		table = append(table, v)
	}
	return table, nil
}
