// Package bridge connects the driver to real hardware through a
// USB-to-I2C serial adapter.
//
// The adapter exposes a byte-oriented command protocol over its serial
// port: echo, start/stop conditions, and grouped data transfers with ACK
// status replies. I2CDriver speaks that protocol and implements
// bus.Messenger, so it plugs straight into bus.NewHardTransport:
//
//	d, err := bridge.Open("/dev/ttyUSB0")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer d.Close()
//
//	dev, err := eeprom.New(bus.NewHardTransport(d), chip.AT24C256)
//
// Open probes the adapter with an echo command so a wrong port fails fast
// rather than hanging on the first transfer.
package bridge
