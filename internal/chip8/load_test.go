package chip8

import (
	"bytes"
	"errors"
	"testing"
)

func TestLoad_RoundTrip(t *testing.T) {
	program := []byte{0x12, 0x00, 0xDE, 0xAD, 0xBE, 0xEF}
	c := New()
	if err := c.Load(program); err != nil {
		t.Fatalf("load: %v", err)
	}
	if !bytes.Equal(c.Memory[ProgramStart:ProgramStart+len(program)], program) {
		t.Fatalf("program bytes not installed verbatim at 0x200")
	}
	if !bytes.Equal(c.Memory[:len(font)], font[:]) {
		t.Fatalf("font not installed at 0x000")
	}
	if c.PC != ProgramStart {
		t.Fatalf("PC got %#04x want 0x200", c.PC)
	}
	if c.SP != 0 {
		t.Fatalf("SP got %d want 0", c.SP)
	}
}

func TestLoad_MaxSize(t *testing.T) {
	c := New()
	if err := c.Load(make([]byte, MaxProgramSize)); err != nil {
		t.Fatalf("load at exact limit: %v", err)
	}
}

func TestLoad_TooLarge(t *testing.T) {
	c := New()
	err := c.Load(make([]byte, MaxProgramSize+1))
	if !errors.Is(err, ErrProgramTooLarge) {
		t.Fatalf("got %v want ErrProgramTooLarge", err)
	}
}

func TestLoad_ClearsPreviousMemory(t *testing.T) {
	c := New()
	if err := c.Load(make([]byte, MaxProgramSize)); err != nil {
		t.Fatalf("first load: %v", err)
	}
	c.Memory[0x1FF] = 0x99
	if err := c.Load([]byte{0x12, 0x00}); err != nil {
		t.Fatalf("second load: %v", err)
	}
	if c.Memory[0x1FF] != 0 {
		t.Fatalf("stale byte at 0x1FF survived reload")
	}
	for addr := ProgramStart + 2; addr < MemorySize; addr++ {
		if c.Memory[addr] != 0 {
			t.Fatalf("stale program byte at %#04x survived reload", addr)
		}
	}
}
