package main

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config is the on-disk tool configuration. Command-line flags override it.
type Config struct {
	// Port is the serial port of the USB-to-I2C adapter.
	Port string `toml:"port"`

	// Chip is the part number, e.g. "AT24C256".
	Chip string `toml:"chip"`

	// BaseAddress is the 7-bit device base address.
	BaseAddress byte `toml:"base_address"`

	// HardwareAddress is the value of the A2..A0 address pins.
	HardwareAddress byte `toml:"hardware_address"`

	// WriteCycleMs overrides the post-write delay in milliseconds.
	// Zero keeps the driver default.
	WriteCycleMs int `toml:"write_cycle_ms"`
}

func defaultTomlConfig() Config {
	return Config{
		Port: "/dev/ttyUSB0",
		Chip: "AT24C256",
	}
}

// loadConfig reads the TOML config file. A missing file is not an error;
// the defaults apply.
func loadConfig(path string) (Config, error) {
	cfg := defaultTomlConfig()

	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return cfg, fmt.Errorf("config %s: unknown key %q", path, undecoded[0].String())
	}
	return cfg, nil
}
