// Package upgrade reads firmware versions from BlueST nodes and uploads new
// firmware through their debug console.
//
// # Overview
//
// A Console runs one operation at a time:
//   - ReadVersion queries the version of the board or of the BLE stack
//   - LoadFw uploads a firmware image
//
// Both return immediately; the outcome is delivered to the Callback of the
// console. Runner wraps a Console with blocking, context aware calls.
//
// # Basic Usage
//
//	c, ok := upgrade.ConsoleFor(node.Model(), node.Debug())
//	if !ok {
//	    log.Fatal(upgrade.ErrUnsupported)
//	}
//	defer c.Close()
//
//	fw, err := firmware.Open("BLUEMICROSYSTEM2.bin")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	r := upgrade.NewRunner(c)
//	elapsed, err := r.Upgrade(context.Background(), protocol.BoardFw, fw, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Upload Protocol
//
// The host sends the upload command with the image length and its STM32
// checksum. The board echoes the checksum, then the image goes out in
// messages of 16 bytes, grouped in blocks: a new block starts when every
// message of the previous one has been written. The board answers 0x01 when
// the received image matches the checksum.
//
// Every failed upload halves the block size of the next one, down to one
// message per block. The AdaptiveWindow holding this state belongs to the
// console, or can be shared between consoles with WithAdaptiveWindow.
//
// # Configuration Options
//
// Customize behavior with functional options:
//
//	c := upgrade.NewNucleo(debug,
//	    upgrade.WithCallback(cb),
//	    upgrade.WithLogger(myLogger),
//	    upgrade.WithVersionTimeout(2*time.Second),
//	    upgrade.WithUploadTimeout(8*time.Second),
//	    upgrade.WithBlockPackets(4),
//	)
//
// # Error Handling
//
// Upload failures are delivered as *UploadError, matching one of:
//   - ErrInvalidFile: the image cannot be opened or is empty
//   - ErrTransmission: timeout, failed write or wrong checksum echo
//   - ErrCorruptedFile: the board rejected the received image
//
// Runner also returns ErrUnsupported, ErrBusy, ErrNoVersion and
// *firmware.NeedsUpdateError.
package upgrade
