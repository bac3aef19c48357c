package emu

import (
	"bytes"
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"

	"github.com/retrofab/chip8emu/internal/chip8"
)

func newMachine(t *testing.T, cfg Config, rom []byte) *Machine {
	t.Helper()
	m := New(cfg, log.NewTestLogger(t))
	assert.NoError(t, m.LoadROM(rom))
	return m
}

func TestMachine_LoadROMTooLarge(t *testing.T) {
	m := New(Config{}, log.NewTestLogger(t))
	err := m.LoadROM(make([]byte, chip8.MaxProgramSize+1))
	assert.True(t, errors.Is(err, chip8.ErrProgramTooLarge))
}

func TestMachine_StepFrameRunsConfiguredCycles(t *testing.T) {
	// A run of ADD V0,1 instructions counts how many executed.
	rom := bytes.Repeat([]byte{0x70, 0x01}, 32)
	m := newMachine(t, Config{CyclesPerFrame: 7}, rom)

	m.StepFrame()
	assert.Equal(t, byte(7), m.State().V[0])
	m.StepFrame()
	assert.Equal(t, byte(14), m.State().V[0])
}

func TestMachine_StepFramePausesOnKeyWait(t *testing.T) {
	rom := append([]byte{0xF0, 0x0A}, bytes.Repeat([]byte{0x71, 0x01}, 32)...)
	m := newMachine(t, Config{CyclesPerFrame: 8}, rom)

	m.StepFrame()
	assert.True(t, m.Suspended())
	assert.Equal(t, byte(0), m.State().V[1])

	m.KeyDown(0xC)
	assert.False(t, m.Suspended())
	assert.Equal(t, byte(0xC), m.State().V[0])

	m.StepFrame()
	assert.Equal(t, byte(8), m.State().V[1])
}

func TestMachine_StepFrameLogsFaultAndContinues(t *testing.T) {
	// 0x0000 is not an instruction; the frame logs the fault at Error level
	// and keeps going. The test logger fails the test on Error records, so
	// this test uses a plain config-built logger instead.
	rom := append([]byte{0x00, 0x00}, bytes.Repeat([]byte{0x70, 0x01}, 8)...)
	m := New(Config{CyclesPerFrame: 4}, log.NewWithConfig(log.DefaultConfig()))
	assert.NoError(t, m.LoadROM(rom))

	m.StepFrame()
	assert.Equal(t, byte(3), m.State().V[0])
	// Resumable past the bad opcode, not stuck on it.
	assert.Equal(t, uint16(0x208), m.State().PC)
}

func TestMachine_Framebuffer(t *testing.T) {
	m := newMachine(t, Config{}, []byte{0x12, 0x00})
	m.State().Gfx[1] = 1 // pixel (1,0)

	fb := m.Framebuffer()
	assert.Equal(t, chip8.DisplayWidth*chip8.DisplayHeight*4, len(fb))
	// Pixel 0 is black, pixel 1 white, both opaque.
	assert.Equal(t, byte(0x00), fb[0])
	assert.Equal(t, byte(0xFF), fb[3])
	assert.Equal(t, byte(0xFF), fb[4])
	assert.Equal(t, byte(0xFF), fb[7])
}

func TestMachine_Reset(t *testing.T) {
	rom := bytes.Repeat([]byte{0x70, 0x01}, 4)
	m := newMachine(t, Config{CyclesPerFrame: 4}, rom)

	m.StepFrame()
	assert.Equal(t, byte(4), m.State().V[0])

	m.Reset()
	assert.Equal(t, byte(0), m.State().V[0])
	assert.Equal(t, uint16(chip8.ProgramStart), m.State().PC)
	assert.Equal(t, rom[0], m.State().Memory[chip8.ProgramStart])
}

func TestMachine_Beeping(t *testing.T) {
	m := newMachine(t, Config{}, []byte{0x12, 0x00})
	assert.False(t, m.Beeping())
	m.State().SoundTimer = 2
	assert.True(t, m.Beeping())
}
