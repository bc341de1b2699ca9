package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/moffa90/go-bluest/firmware"
	"github.com/moffa90/go-bluest/upgrade"
)

func runUpgrade(args []string) error {
	fs := flag.NewFlagSet("upgrade", flag.ExitOnError)
	var common commonFlags
	common.register(fs)
	fwType := fs.String("type", "board", "firmware to upload: board or ble")
	force := fs.Bool("force", false, "skip the minimum firmware version check")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("usage: bluest upgrade [flags] firmware.bin")
	}

	t, err := parseFirmwareType(*fwType)
	if err != nil {
		return err
	}
	fw, err := firmware.Open(fs.Arg(0))
	if err != nil {
		return err
	}

	a, err := common.load()
	if err != nil {
		return err
	}
	table, err := a.cfg.Compatibility()
	if err != nil {
		return err
	}
	if *force {
		table = nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	board, err := a.open(ctx)
	if err != nil {
		return err
	}
	defer board.Close()

	c, ok := upgrade.ConsoleFor(board.model, board.debug, append(a.cfg.UpgradeOptions(), upgrade.WithLogger(a.logger))...)
	if !ok {
		return upgrade.ErrUnsupported
	}
	defer c.Close()

	fmt.Printf("uploading %s (%d bytes) as %s firmware\n", fw.Name(), fw.Length(), t)
	r := upgrade.NewRunner(c, upgrade.WithCompatibility(table))
	elapsed, err := r.Upgrade(ctx, t, fw, func(p upgrade.Progress) {
		fmt.Printf("\r%5.1f%%  %d/%d bytes", p.Percentage, p.BytesSent, p.TotalBytes)
	})
	fmt.Println()
	if err != nil {
		return err
	}

	fmt.Printf("done in %s\n", elapsed.Round(time.Millisecond))
	return nil
}
