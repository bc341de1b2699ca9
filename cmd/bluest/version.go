package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/moffa90/go-bluest/protocol"
	"github.com/moffa90/go-bluest/upgrade"
)

func runVersion(args []string) error {
	fs := flag.NewFlagSet("version", flag.ExitOnError)
	var common commonFlags
	common.register(fs)
	fwType := fs.String("type", "", "firmware to query: board or ble (default both)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	types := []protocol.FirmwareType{protocol.BoardFw, protocol.BleFw}
	if *fwType != "" {
		t, err := parseFirmwareType(*fwType)
		if err != nil {
			return err
		}
		types = []protocol.FirmwareType{t}
	}

	a, err := common.load()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	t, err := a.open(ctx)
	if err != nil {
		return err
	}
	defer t.Close()

	c, ok := upgrade.ConsoleFor(t.model, t.debug, append(a.cfg.UpgradeOptions(), upgrade.WithLogger(a.logger))...)
	if !ok {
		return upgrade.ErrUnsupported
	}
	defer c.Close()

	r := upgrade.NewRunner(c)
	for _, ft := range types {
		v, err := r.ReadVersion(ctx, ft)
		if err != nil {
			fmt.Printf("%-5s  %v\n", ft, err)
			continue
		}
		fmt.Printf("%-5s  %s\n", ft, v)
	}
	return nil
}
