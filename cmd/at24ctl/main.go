// Command at24ctl reads, writes and erases AT24Cxx serial EEPROMs through
// a USB-to-I2C serial adapter.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/sirupsen/logrus"

	"github.com/moffa90/go-at24cxx/bridge"
	"github.com/moffa90/go-at24cxx/bus"
	"github.com/moffa90/go-at24cxx/chip"
	"github.com/moffa90/go-at24cxx/eeprom"
	"github.com/moffa90/go-at24cxx/ihex"
)

type CLI struct {
	Dump   DumpCmd   `cmd:"" help:"Read a range of the EEPROM to a file."`
	Load   LoadCmd   `cmd:"" help:"Write a binary or Intel HEX file to the EEPROM."`
	Erase  EraseCmd  `cmd:"" help:"Fill a range of the EEPROM with a byte."`
	Verify VerifyCmd `cmd:"" help:"Compare EEPROM contents against a file."`
	Models ModelsCmd `cmd:"" help:"List supported chip models."`

	Config  string `help:"Path to TOML config file." default:"at24ctl.toml" type:"path"`
	Port    string `help:"Serial port of the I2C adapter. Overrides the config file." placeholder:"/dev/ttyUSB0"`
	Chip    string `help:"Chip model, e.g. AT24C256. Overrides the config file."`
	Verbose bool   `short:"v" help:"Enable debug logging."`
}

type (
	DumpCmd struct {
		Addr uint32 `arg:"" help:"Start address."`
		Size int    `arg:"" help:"Number of bytes to read."`
		Out  string `short:"o" default:"-" help:"Output file, '-' for stdout."`
		Hex  bool   `help:"Write Intel HEX instead of raw binary."`
	}

	LoadCmd struct {
		Path   string `arg:"" type:"existingfile" help:"Binary or Intel HEX (.hex/.ihx) file."`
		Addr   uint32 `help:"Base address for raw binary files." default:"0"`
		Verify bool   `help:"Read back and compare after writing." default:"true" negatable:""`
	}

	EraseCmd struct {
		Addr uint32 `arg:"" help:"Start address."`
		Size int    `arg:"" help:"Number of bytes to fill."`
		Fill uint8  `help:"Fill byte." default:"255"`
	}

	VerifyCmd struct {
		Path string `arg:"" type:"existingfile" help:"Binary or Intel HEX (.hex/.ihx) file."`
		Addr uint32 `help:"Base address for raw binary files." default:"0"`
	}

	ModelsCmd struct{}
)

// app carries everything a command needs to run.
type app struct {
	cfg Config
	log *logrus.Logger
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("at24ctl"),
		kong.Description("AT24Cxx serial EEPROM tool."),
		kong.UsageOnError())

	log := logrus.New()
	log.SetOutput(os.Stderr)
	if cli.Verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	cfg, err := loadConfig(cli.Config)
	ctx.FatalIfErrorf(err)
	if cli.Port != "" {
		cfg.Port = cli.Port
	}
	if cli.Chip != "" {
		cfg.Chip = cli.Chip
	}

	ctx.FatalIfErrorf(ctx.Run(&app{cfg: cfg, log: log}))
}

// openDevice connects to the adapter and configures the chip from the
// active configuration. The caller must invoke the returned close func.
func (a *app) openDevice() (*eeprom.Device, func(), error) {
	model, ok := chip.ModelByName(a.cfg.Chip)
	if !ok {
		return nil, nil, fmt.Errorf("unknown chip model %q (see 'at24ctl models')", a.cfg.Chip)
	}

	a.log.WithFields(logrus.Fields{"port": a.cfg.Port, "chip": model}).Debug("connecting")
	adapter, err := bridge.Open(a.cfg.Port)
	if err != nil {
		return nil, nil, err
	}

	opts := []eeprom.Option{
		eeprom.WithHardwareAddress(a.cfg.HardwareAddress),
		eeprom.WithLogger(logrusLogger{log: a.log}),
	}
	if a.cfg.BaseAddress != 0 {
		opts = append(opts, eeprom.WithBaseAddress(a.cfg.BaseAddress))
	}
	if a.cfg.WriteCycleMs > 0 {
		opts = append(opts, eeprom.WithWriteCycleTime(time.Duration(a.cfg.WriteCycleMs)*time.Millisecond))
	}

	dev, err := eeprom.New(bus.NewHardTransport(adapter), model, opts...)
	if err != nil {
		_ = adapter.Close()
		return nil, nil, err
	}
	return dev, func() { _ = adapter.Close() }, nil
}

func (c *DumpCmd) Run(a *app) error {
	dev, closeDev, err := a.openDevice()
	if err != nil {
		return err
	}
	defer closeDev()

	buf := make([]byte, c.Size)
	if err := dev.Read(context.Background(), c.Addr, buf); err != nil {
		return err
	}

	out := os.Stdout
	if c.Out != "-" {
		f, err := os.Create(c.Out)
		if err != nil {
			return err
		}
		defer func() { _ = f.Close() }()
		out = f
	}

	if c.Hex {
		return ihex.Encode(out, c.Addr, buf)
	}
	_, err = out.Write(buf)
	return err
}

func (c *LoadCmd) Run(a *app) error {
	addr, data, err := readImage(c.Path, c.Addr)
	if err != nil {
		return err
	}

	dev, closeDev, err := a.openDevice()
	if err != nil {
		return err
	}
	defer closeDev()

	a.log.WithFields(logrus.Fields{
		"addr": fmt.Sprintf("0x%05X", addr),
		"size": len(data),
	}).Info("writing")

	start := time.Now()
	ctx := context.Background()
	if c.Verify {
		err = dev.VerifiedWrite(ctx, addr, data)
	} else {
		err = dev.Write(ctx, addr, data)
	}
	if err != nil {
		return err
	}

	a.log.WithField("elapsed", time.Since(start).Round(time.Millisecond)).Info("done")
	return nil
}

// readImage loads an input file: Intel HEX when the extension says so, raw
// binary at the given address otherwise. Gaps in a HEX image are filled
// with 0xFF, the erased state of the chip.
func readImage(path string, rawAddr uint32) (uint32, []byte, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".hex", ".ihx":
		img, err := ihex.Parse(path)
		if err != nil {
			return 0, nil, err
		}
		return img.Flatten(0xFF)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return 0, nil, err
	}
	return rawAddr, data, nil
}

func (c *EraseCmd) Run(a *app) error {
	dev, closeDev, err := a.openDevice()
	if err != nil {
		return err
	}
	defer closeDev()

	a.log.WithFields(logrus.Fields{
		"addr": fmt.Sprintf("0x%05X", c.Addr),
		"size": c.Size,
		"fill": fmt.Sprintf("0x%02X", c.Fill),
	}).Info("erasing")

	return dev.Erase(context.Background(), c.Addr, c.Fill, c.Size)
}

func (c *VerifyCmd) Run(a *app) error {
	addr, want, err := readImage(c.Path, c.Addr)
	if err != nil {
		return err
	}

	dev, closeDev, err := a.openDevice()
	if err != nil {
		return err
	}
	defer closeDev()

	got := make([]byte, len(want))
	if err := dev.Read(context.Background(), addr, got); err != nil {
		return err
	}

	mismatches := 0
	first := uint32(0)
	for i := range want {
		if got[i] != want[i] {
			if mismatches == 0 {
				first = addr + uint32(i)
			}
			mismatches++
		}
	}
	if mismatches > 0 {
		return fmt.Errorf("%d of %d bytes differ, first at 0x%05X (chip 0x%02X, file 0x%02X)",
			mismatches, len(want), first, got[first-addr], want[first-addr])
	}

	a.log.WithField("size", len(want)).Info("contents match")
	return nil
}

func (c *ModelsCmd) Run(a *app) error {
	fmt.Printf("%-10s %10s %6s %12s\n", "MODEL", "CAPACITY", "PAGE", "ADDR BYTES")
	for _, m := range chip.Models() {
		fmt.Printf("%-10s %10d %6d %12d\n", m, m.Capacity(), m.PageSize(), m.AddrBytes())
	}
	return nil
}
