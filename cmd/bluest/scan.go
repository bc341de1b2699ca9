package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"tinygo.org/x/bluetooth"

	"github.com/moffa90/go-bluest/ble"
)

func runScan(args []string) error {
	fs := flag.NewFlagSet("scan", flag.ExitOnError)
	var common commonFlags
	common.register(fs)
	timeout := fs.Duration("timeout", 0, "scan duration (default from config)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	a, err := common.load()
	if err != nil {
		return err
	}
	if *timeout <= 0 {
		*timeout = a.cfg.ScanTimeout()
	}

	adapter := bluetooth.DefaultAdapter
	if err := adapter.Enable(); err != nil {
		return fmt.Errorf("failed to enable the BLE adapter: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()

	seen := make(map[string]bool)
	fmt.Printf("scanning for %s...\n", timeout.Round(time.Second))
	return ble.NewScanner(adapter, ble.WithLogger(a.logger)).Scan(ctx, func(d ble.Discovered) bool {
		addr := d.Address.String()
		if seen[addr] {
			return true
		}
		seen[addr] = true
		fmt.Printf("%-17s %-12s %-12s features 0x%08X rssi %d\n",
			addr, d.Name, d.Advertise.Model, d.Advertise.FeatureMask, d.RSSI)
		return true
	})
}
