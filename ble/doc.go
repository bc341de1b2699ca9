// Package ble connects BlueST nodes over Bluetooth Low Energy with
// tinygo.org/x/bluetooth.
//
// It discovers the nodes from their advertising data, and binds the GATT
// characteristics of a connected node to a node.Node:
//
//   - the feature characteristics feed node.Node.UpdateFeatures
//   - the config characteristic carries feature commands and their answers
//   - the debug service is exported as a console.Debug
//
// # Discovery
//
//	s := ble.NewScanner(bluetooth.DefaultAdapter)
//	found, err := s.Find(ctx, func(d ble.Discovered) bool { return d.Name == "BM2V230" })
//
// # Connection
//
//	dev, err := ble.Connect(bluetooth.DefaultAdapter, found)
//	if err != nil {
//	    return err
//	}
//	defer dev.Close()
//	c, ok := upgrade.ConsoleFor(dev.Node().Model(), dev.Node().Debug())
package ble
