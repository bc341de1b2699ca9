package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moffa90/go-bluest/firmware"
	"github.com/moffa90/go-bluest/upgrade"
)

const sample = `
device:
  name: BM2V230
  scan_timeout_ms: 5000
console:
  transport: Serial
  serial_port: /dev/ttyACM0
upgrade:
  upload_timeout_ms: 8000
  block_packets: 4
  min_versions:
    - name: BLUEMICROSYSTEM2
      version: 2.0.1
    - name: BLUEMICROSYSTEM1
      mcu: F401
      version: 1.3.0
log:
  level: DEBUG
  format: json
record:
  path: samples.cbor
`

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bluest.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, Validate(cfg))
	Normalize(cfg)

	assert.Equal(t, "BM2V230", cfg.Device.Name)
	assert.Equal(t, 5*time.Second, cfg.ScanTimeout())
	assert.Equal(t, TransportSerial, cfg.Console.Transport)
	assert.Equal(t, 115200, cfg.Console.Baud)
	assert.Equal(t, 1000, cfg.Upgrade.VersionTimeoutMs)
	assert.Equal(t, 8000, cfg.Upgrade.UploadTimeoutMs)
	assert.Equal(t, 4, cfg.Upgrade.BlockPackets)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "samples.cbor", cfg.Record.Path)
	assert.Len(t, cfg.UpgradeOptions(), 3)

	table, err := cfg.Compatibility()
	require.NoError(t, err)
	assert.Equal(t, firmware.CompatibilityTable{
		{Name: "BLUEMICROSYSTEM2", Major: 2, Minor: 0, Patch: 1},
		{Name: "BLUEMICROSYSTEM1", McuType: "F401", Major: 1, Minor: 3, Patch: 0},
	}, table)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParseUnknownKey(t *testing.T) {
	_, err := Parse([]byte("device:\n  nmae: typo\n"))
	assert.Error(t, err)
}

func TestParseEmpty(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, &Config{}, cfg)
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, TransportBLE, cfg.Console.Transport)
	assert.Equal(t, int(upgrade.DefaultUploadTimeout/time.Millisecond), cfg.Upgrade.UploadTimeoutMs)
	assert.Equal(t, upgrade.DefaultBlockPackets, cfg.Upgrade.BlockPackets)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)

	table, err := cfg.Compatibility()
	require.NoError(t, err)
	assert.Equal(t, firmware.DefaultCompatibility, table)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"empty", func(*Config) {}, ""},
		{"negative scan", func(c *Config) { c.Device.ScanTimeoutMs = -1 }, "scan_timeout_ms"},
		{"unknown transport", func(c *Config) { c.Console.Transport = "usb" }, "unknown transport"},
		{"serial without port", func(c *Config) { c.Console.Transport = "serial" }, "requires serial_port"},
		{"negative timeout", func(c *Config) { c.Upgrade.UploadTimeoutMs = -5 }, "timeouts"},
		{"negative block", func(c *Config) { c.Upgrade.BlockPackets = -1 }, "block_packets"},
		{"bad min version", func(c *Config) {
			c.Upgrade.MinVersions = []MinVersionConfig{{Name: "X", Version: "two"}}
		}, "min_versions[0]"},
		{"min version without name", func(c *Config) {
			c.Upgrade.MinVersions = []MinVersionConfig{{Version: "1.0.0"}}
		}, "min_versions[0]"},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }, "unknown level"},
		{"bad format", func(c *Config) { c.Log.Format = "xml" }, "unknown format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			tt.mutate(cfg)

			err := Validate(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}

	assert.Error(t, Validate(nil))
}
