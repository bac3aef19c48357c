package emu

import (
	"fmt"
	"os"

	"github.com/retroenv/retrogolib/log"

	"github.com/retrofab/chip8emu/internal/chip8"
)

// Machine drives a single CHIP-8 core and adapts it for a host front-end:
// frame-sized stepping, key event delivery, an RGBA framebuffer snapshot and
// the beep level signal. All methods must be called from one goroutine.
type Machine struct {
	cfg    Config
	logger *log.Logger
	c      *chip8.Chip8
	rom    []byte
	fb     []byte // RGBA, 64*32*4
}

func New(cfg Config, logger *log.Logger) *Machine {
	cfg.Defaults()
	return &Machine{
		cfg:    cfg,
		logger: logger,
		c:      chip8.New(),
		fb:     make([]byte, chip8.DisplayWidth*chip8.DisplayHeight*4),
	}
}

// State exposes the underlying core for tests/tools.
func (m *Machine) State() *chip8.Chip8 { return m.c }

// LoadROM installs raw program bytes. There is no header or magic to
// validate, only the size bound enforced by the core loader.
func (m *Machine) LoadROM(rom []byte) error {
	if err := m.c.Load(rom); err != nil {
		return fmt.Errorf("loading program: %w", err)
	}
	m.rom = append([]byte(nil), rom...)
	return nil
}

// LoadROMFromFile reads a ROM from disk and installs it.
func (m *Machine) LoadROMFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading ROM %s: %w", path, err)
	}
	if err := m.LoadROM(data); err != nil {
		return fmt.Errorf("ROM %s: %w", path, err)
	}
	return nil
}

// Reset restarts the current ROM on a fresh core.
func (m *Machine) Reset() {
	m.c = chip8.New()
	if len(m.rom) > 0 {
		_ = m.c.Load(m.rom) // size already validated by LoadROM
	}
}

// Step executes one instruction. Faults are returned to the caller; the core
// stays resumable at the following instruction.
func (m *Machine) Step() error {
	if m.cfg.Trace {
		m.trace()
	}
	return m.c.Step()
}

// StepFrame runs one frame's worth of instructions. Execution pauses while
// the core is suspended on a key-wait. Instruction faults are logged and
// stepping continues; a misbehaving ROM glitches instead of killing the host.
func (m *Machine) StepFrame() {
	for i := 0; i < m.cfg.CyclesPerFrame; i++ {
		if m.c.AwaitingKey {
			return
		}
		if err := m.Step(); err != nil {
			m.logger.Error("instruction fault",
				log.Hex("pc", m.c.PC),
				log.Err(err))
		}
	}
}

// KeyDown delivers a key-down for hex key k (0..15). While the core is
// suspended on a key-wait this also completes the wait.
func (m *Machine) KeyDown(k byte) { m.c.KeyDown(k) }

// KeyUp delivers a key-up for hex key k (0..15).
func (m *Machine) KeyUp(k byte) { m.c.KeyUp(k) }

// Suspended reports whether the core is waiting for a key press.
func (m *Machine) Suspended() bool { return m.c.AwaitingKey }

// Beeping reports whether the host should be sounding a tone.
func (m *Machine) Beeping() bool { return m.c.Beeping() }

// Framebuffer returns the display as RGBA pixels (64x32, 4 bytes per pixel),
// white on black. The returned slice is reused by the next call.
func (m *Machine) Framebuffer() []byte {
	for i, px := range m.c.Gfx {
		v := byte(0)
		if px != 0 {
			v = 0xFF
		}
		o := i * 4
		m.fb[o] = v
		m.fb[o+1] = v
		m.fb[o+2] = v
		m.fb[o+3] = 0xFF
	}
	return m.fb
}
