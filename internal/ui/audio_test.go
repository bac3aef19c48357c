package ui

import (
	"sync/atomic"
	"testing"
)

func TestToneStream_SilentWhileLevelLow(t *testing.T) {
	var level atomic.Bool
	s := &toneStream{level: &level}

	buf := make([]byte, 64)
	n, err := s.Read(buf)
	if err != nil || n != 64 {
		t.Fatalf("read got n=%d err=%v", n, err)
	}
	for i, b := range buf {
		if b != 0 {
			t.Fatalf("byte %d not silent: %02x", i, b)
		}
	}
}

func TestToneStream_SquareWaveWhileLevelHigh(t *testing.T) {
	var level atomic.Bool
	level.Store(true)
	s := &toneStream{level: &level}

	// Two half-periods of stereo frames so both wave phases appear.
	half := sampleRate / toneHz / 2
	buf := make([]byte, 2*half*4)
	n, err := s.Read(buf)
	if err != nil || n != len(buf) {
		t.Fatalf("read got n=%d err=%v", n, err)
	}
	// First frame is the high phase on both channels.
	if buf[0] != byte(toneVolume&0xFF) || buf[1] != byte(toneVolume>>8) {
		t.Fatalf("left channel got % 02x % 02x", buf[0], buf[1])
	}
	if buf[2] != buf[0] || buf[3] != buf[1] {
		t.Fatalf("stereo channels differ")
	}
	// First frame of the second half-period is the low phase.
	o := half * 4
	low := int16(-toneVolume)
	if buf[o] != byte(uint16(low)&0xFF) || buf[o+1] != byte(uint16(low)>>8) {
		t.Fatalf("low phase got % 02x % 02x", buf[o], buf[o+1])
	}
}

func TestBeeper_SetLevelNilSafe(t *testing.T) {
	var b *beeper
	b.SetLevel(true) // muted app has no beeper; must not panic

	b = &beeper{}
	b.SetLevel(true)
	if !b.level.Load() {
		t.Fatalf("level not latched")
	}
	b.SetLevel(false)
	if b.level.Load() {
		t.Fatalf("level not cleared")
	}
}

func TestToneStream_ShortBufferStaysSilent(t *testing.T) {
	var level atomic.Bool
	level.Store(true)
	s := &toneStream{level: &level}

	buf := []byte{0xAA, 0xAA, 0xAA}
	n, err := s.Read(buf)
	if err != nil || n != len(buf) {
		t.Fatalf("read got n=%d err=%v", n, err)
	}
	for i, b := range buf {
		if b != 0 {
			t.Fatalf("byte %d not zeroed: %02x", i, b)
		}
	}
}
