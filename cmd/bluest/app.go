package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"tinygo.org/x/bluetooth"

	"github.com/moffa90/go-bluest/ble"
	"github.com/moffa90/go-bluest/config"
	"github.com/moffa90/go-bluest/console"
	"github.com/moffa90/go-bluest/console/serialport"
	"github.com/moffa90/go-bluest/logging"
	"github.com/moffa90/go-bluest/node"
	"github.com/moffa90/go-bluest/protocol"
)

// commonFlags are shared by the commands talking to a board.
type commonFlags struct {
	configPath string
	transport  string
	port       string
	address    string
	name       string
	logLevel   string
}

func (f *commonFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&f.configPath, "config", "", "YAML configuration file")
	fs.StringVar(&f.transport, "transport", "", "debug console transport: ble or serial")
	fs.StringVar(&f.port, "port", "", "serial port of the board")
	fs.StringVar(&f.address, "address", "", "BLE address of the node")
	fs.StringVar(&f.name, "name", "", "advertised name of the node")
	fs.StringVar(&f.logLevel, "log-level", "", "log level: debug, info, warn, error")
}

// app is the configured environment of a command.
type app struct {
	cfg    *config.Config
	logger *logging.Adapter
}

// load reads the configuration file, applies the flag overrides and builds
// the logger.
func (f *commonFlags) load() (*app, error) {
	cfg := &config.Config{}
	if f.configPath != "" {
		var err error
		if cfg, err = config.Load(f.configPath); err != nil {
			return nil, err
		}
	}

	if f.transport != "" {
		cfg.Console.Transport = f.transport
	}
	if f.port != "" {
		cfg.Console.SerialPort = f.port
		if f.transport == "" {
			cfg.Console.Transport = config.TransportSerial
		}
	}
	if f.address != "" {
		cfg.Device.Address = f.address
	}
	if f.name != "" {
		cfg.Device.Name = f.name
	}
	if f.logLevel != "" {
		cfg.Log.Level = f.logLevel
	}

	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	config.Normalize(cfg)

	zl, err := logging.New(os.Stderr, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, err
	}
	return &app{cfg: cfg, logger: logging.NewAdapter(zl)}, nil
}

// target is an open connection to a board.
type target struct {
	model  node.Model
	node   *node.Node // nil over serial
	debug  console.Debug
	closer io.Closer
}

func (t *target) Close() error { return t.closer.Close() }

// open connects to the configured board.
func (a *app) open(ctx context.Context) (*target, error) {
	if a.cfg.Console.Transport == config.TransportSerial {
		port, err := serialport.Open(a.cfg.Console.SerialPort, a.cfg.Console.Baud)
		if err != nil {
			return nil, err
		}
		// boards wired through an ST-LINK run the Nucleo firmware
		return &target{model: node.Nucleo, debug: port, closer: port}, nil
	}

	dev, err := a.connect(ctx)
	if err != nil {
		return nil, err
	}
	t := &target{model: dev.Node().Model(), node: dev.Node(), closer: dev}
	if d := dev.Debug(); d != nil {
		t.debug = d
	}
	return t, nil
}

// connect finds the configured node and connects to it.
func (a *app) connect(ctx context.Context) (*ble.Device, error) {
	if a.cfg.Device.Name == "" && a.cfg.Device.Address == "" {
		return nil, errors.New("select the node with -name or -address")
	}

	adapter := bluetooth.DefaultAdapter
	if err := adapter.Enable(); err != nil {
		return nil, fmt.Errorf("failed to enable the BLE adapter: %w", err)
	}

	scanCtx, cancel := context.WithTimeout(ctx, a.cfg.ScanTimeout())
	defer cancel()

	found, err := ble.NewScanner(adapter, ble.WithLogger(a.logger)).Find(scanCtx, a.matches)
	if err != nil {
		return nil, err
	}
	return ble.Connect(adapter, found, ble.WithLogger(a.logger))
}

func (a *app) matches(d ble.Discovered) bool {
	if a.cfg.Device.Address != "" {
		return strings.EqualFold(d.Address.String(), a.cfg.Device.Address)
	}
	return d.Name == a.cfg.Device.Name
}

func parseFirmwareType(s string) (protocol.FirmwareType, error) {
	switch strings.ToLower(s) {
	case "board", "fw", "":
		return protocol.BoardFw, nil
	case "ble":
		return protocol.BleFw, nil
	default:
		return 0, fmt.Errorf("unknown firmware type %q", s)
	}
}
