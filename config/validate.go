package config

import (
	"fmt"
	"strings"

	"github.com/moffa90/go-bluest/firmware"
)

// Validate checks configuration correctness.
// Zero values are accepted; Normalize replaces them with defaults.
// It does not mutate cfg.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}

	if cfg.Device.ScanTimeoutMs < 0 {
		return fmt.Errorf("device: scan_timeout_ms must not be negative")
	}

	switch strings.ToLower(cfg.Console.Transport) {
	case "", TransportBLE:
	case TransportSerial:
		if cfg.Console.SerialPort == "" {
			return fmt.Errorf("console: transport %q requires serial_port", TransportSerial)
		}
	default:
		return fmt.Errorf("console: unknown transport %q", cfg.Console.Transport)
	}
	if cfg.Console.Baud < 0 {
		return fmt.Errorf("console: baud must not be negative")
	}

	u := cfg.Upgrade
	if u.VersionTimeoutMs < 0 || u.UploadTimeoutMs < 0 {
		return fmt.Errorf("upgrade: timeouts must not be negative")
	}
	if u.BlockPackets < 0 {
		return fmt.Errorf("upgrade: block_packets must not be negative")
	}
	for i, mv := range u.MinVersions {
		if _, err := firmware.NewRequirement(mv.Name, mv.MCU, mv.Version); err != nil {
			return fmt.Errorf("upgrade: min_versions[%d]: %w", i, err)
		}
	}

	switch strings.ToLower(cfg.Log.Level) {
	case "", "trace", "debug", "info", "warn", "error", "disabled":
	default:
		return fmt.Errorf("log: unknown level %q", cfg.Log.Level)
	}
	switch strings.ToLower(cfg.Log.Format) {
	case "", "console", "json":
	default:
		return fmt.Errorf("log: unknown format %q", cfg.Log.Format)
	}

	return nil
}
