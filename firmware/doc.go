// Package firmware describes the firmware images and versions handled by the
// upgrade console.
//
// # Firmware Files
//
// A File is anything that can report its length and be opened more than once:
// the upload computes the checksum in a first pass and streams the data in a
// second one.
//
//	fw, err := firmware.Open("BLUEMICROSYSTEM2.bin")
//	fw := firmware.FromBytes("image.bin", data)
//
// # Versions
//
// Boards answer a version query with a single line of text:
//
//	v, err := firmware.ParseBoardVersion("L476_BLUEMICROSYSTEM2_2.0.1")
//	v, err := firmware.ParseBleVersion("7.2.c")
//
// Versions are ordered by major, minor and patch number.
//
// # Compatibility
//
// Some board firmware releases are too old to accept an upload over the
// debug console. A CompatibilityTable lists the minimum version per firmware
// name:
//
//	if err := firmware.DefaultCompatibility.Check(v); err != nil {
//	    var nu *firmware.NeedsUpdateError
//	    if errors.As(err, &nu) { ... }
//	}
package firmware
