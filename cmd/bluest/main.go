// Command bluest talks to BlueST boards: it lists the nodes in range, reads
// and upgrades their firmware, enables accelerometer events and records
// the samples.
//
// Usage:
//
//	bluest scan    [-config f] [-timeout d]
//	bluest version [-config f] [-transport ble|serial] [-name n | -address a | -port p] [-type board|ble]
//	bluest upgrade [flags] -type board|ble firmware.bin
//	bluest events  [flags] [-event name] [-record out.cbor] [-duration d]
//	bluest replay  [-feature name] [-session id] file.cbor
package main

import (
	"fmt"
	"os"
)

type command struct {
	name  string
	usage string
	run   func(args []string) error
}

var commands = []command{
	{"scan", "list the BlueST nodes in range", runScan},
	{"version", "read the board and BLE firmware versions", runVersion},
	{"upgrade", "upload a firmware image", runUpgrade},
	{"events", "enable an accelerometer event and print the samples", runEvents},
	{"replay", "print a recorded sample file", runReplay},
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: bluest <command> [flags]")
	fmt.Fprintln(os.Stderr)
	for _, c := range commands {
		fmt.Fprintf(os.Stderr, "  %-8s %s\n", c.name, c.usage)
	}
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	for _, c := range commands {
		if c.name != os.Args[1] {
			continue
		}
		if err := c.run(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "bluest %s: %v\n", c.name, err)
			os.Exit(1)
		}
		return
	}

	usage()
	os.Exit(2)
}
