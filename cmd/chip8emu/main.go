// Package main implements a CHIP-8 virtual machine emulator.
package main

import (
	"flag"
	"fmt"
	"hash/crc32"
	"image"
	"image/png"
	"os"
	"strings"
	"time"

	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"

	"github.com/retrofab/chip8emu/internal/chip8"
	"github.com/retrofab/chip8emu/internal/emu"
	"github.com/retrofab/chip8emu/internal/ui"
)

var (
	version = "0.1.0"
	commit  = ""
	date    = ""
)

type cliFlags struct {
	romPath string
	scale   int
	cycles  int
	trace   bool
	debug   bool
	quiet   bool
	mute    bool

	// headless
	headless bool
	frames   int
	pngOut   string
	expect   string // expected framebuffer CRC32 hex (e.g. "1a2b3c4d")
}

func parseFlags() cliFlags {
	var f cliFlags
	flag.StringVar(&f.romPath, "rom", "", "path to ROM (.ch8)")
	flag.IntVar(&f.scale, "scale", 10, "window scale")
	flag.IntVar(&f.cycles, "cycles", 10, "instructions per 60Hz frame")
	flag.BoolVar(&f.trace, "trace", false, "log each executed instruction")
	flag.BoolVar(&f.debug, "debug", false, "debug logging")
	flag.BoolVar(&f.quiet, "q", false, "perform operations quietly")
	flag.BoolVar(&f.mute, "mute", false, "disable the beep tone")

	flag.BoolVar(&f.headless, "headless", false, "run without a window")
	flag.IntVar(&f.frames, "frames", 300, "frames to run in headless mode")
	flag.StringVar(&f.pngOut, "outpng", "", "write last framebuffer to PNG at path")
	flag.StringVar(&f.expect, "expect", "", "assert framebuffer CRC32 (hex)")
	flag.Parse()

	if f.romPath == "" && flag.NArg() > 0 {
		f.romPath = flag.Arg(0)
	}
	return f
}

func createLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

func main() {
	f := parseFlags()
	logger := createLogger(f.debug || f.trace, f.quiet)

	if f.romPath == "" {
		fmt.Printf("chip8emu %s\n\n", buildinfo.Version(version, commit, date))
		fmt.Printf("usage: chip8emu [options] <rom.ch8>\n\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	m := emu.New(emu.Config{
		CyclesPerFrame: f.cycles,
		Trace:          f.trace,
	}, logger)
	if err := m.LoadROMFromFile(f.romPath); err != nil {
		logger.Fatal(err.Error())
	}
	logger.Info("ROM loaded",
		log.String("file", f.romPath),
		log.String("version", buildinfo.Version(version, commit, date)))

	if f.headless {
		if err := runHeadless(m, logger, f.frames, f.pngOut, f.expect); err != nil {
			logger.Fatal(err.Error())
		}
		return
	}

	app := ui.NewApp(ui.Config{Scale: f.scale, Mute: f.mute}, m)
	if err := app.Run(); err != nil {
		logger.Fatal(err.Error())
	}
}

func runHeadless(m *emu.Machine, logger *log.Logger, frames int, pngPath, expectCRC string) error {
	if frames <= 0 {
		frames = 1
	}

	start := time.Now()
	for i := 0; i < frames; i++ {
		m.StepFrame()
	}
	dur := time.Since(start)

	fb := m.Framebuffer()
	crc := crc32.ChecksumIEEE(fb)
	logger.Info("headless run finished",
		log.Int("frames", frames),
		log.String("elapsed", dur.Truncate(time.Millisecond).String()),
		log.String("fb_crc32", fmt.Sprintf("%08x", crc)))

	if pngPath != "" {
		if err := saveFramePNG(fb, pngPath); err != nil {
			return fmt.Errorf("write PNG: %w", err)
		}
		logger.Info("wrote framebuffer", log.String("file", pngPath))
	}

	if expectCRC != "" {
		want := strings.TrimPrefix(strings.ToLower(expectCRC), "0x")
		got := fmt.Sprintf("%08x", crc)
		if got != want {
			return fmt.Errorf("checksum mismatch: got %s, want %s", got, want)
		}
	}
	return nil
}

func saveFramePNG(pix []byte, path string) error {
	img := &image.RGBA{
		Pix:    make([]byte, len(pix)),
		Stride: 4 * chip8.DisplayWidth,
		Rect:   image.Rect(0, 0, chip8.DisplayWidth, chip8.DisplayHeight),
	}
	copy(img.Pix, pix)
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}
