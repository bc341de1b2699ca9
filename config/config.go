// Package config holds the YAML configuration of the bluest command.
//
// Load decodes the file, Validate checks it without side effects and
// Normalize fills the defaults. Callers run them in that order.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Device  DeviceConfig  `yaml:"device"`
	Console ConsoleConfig `yaml:"console"`
	Upgrade UpgradeConfig `yaml:"upgrade"`
	Log     LogConfig     `yaml:"log"`
	Record  RecordConfig  `yaml:"record"`
}

// ---- DEVICE ----

type DeviceConfig struct {
	Name          string `yaml:"name"`
	Address       string `yaml:"address"`
	ScanTimeoutMs int    `yaml:"scan_timeout_ms"`
}

// ---- DEBUG CONSOLE ----

type ConsoleConfig struct {
	Transport  string `yaml:"transport"` // ble | serial
	SerialPort string `yaml:"serial_port"`
	Baud       int    `yaml:"baud"`
}

// ---- FIRMWARE UPGRADE ----

type UpgradeConfig struct {
	VersionTimeoutMs int                `yaml:"version_timeout_ms"`
	UploadTimeoutMs  int                `yaml:"upload_timeout_ms"`
	BlockPackets     int                `yaml:"block_packets"`
	MinVersions      []MinVersionConfig `yaml:"min_versions"` // replaces the built-in table when set
}

type MinVersionConfig struct {
	Name    string `yaml:"name"`
	MCU     string `yaml:"mcu"`
	Version string `yaml:"version"`
}

// ---- LOGGING ----

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // console | json
}

// ---- SAMPLE RECORDING ----

type RecordConfig struct {
	Path string `yaml:"path"`
}

// Load reads the configuration file at path. Unknown keys are an error.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes a YAML document. An empty document gives an empty Config.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return &cfg, nil
}
