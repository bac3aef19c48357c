package ui

import (
	"encoding/binary"
	"sync/atomic"
	"time"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

const (
	sampleRate = 48000
	toneHz     = 440
	toneVolume = 6000 // int16 amplitude, comfortably below clipping
)

// beeper plays a square wave while the machine's sound timer is running. The
// stream is pulled continuously by ebiten's audio player on its own
// goroutine, so the beep level is latched from Update through an atomic
// rather than read from machine state; the stream produces silence whenever
// the level is low and never starves the player.
type beeper struct {
	player *audio.Player
	level  atomic.Bool
}

func newBeeper() *beeper {
	b := &beeper{}
	ctx := audio.NewContext(sampleRate)
	p, err := ctx.NewPlayer(&toneStream{level: &b.level})
	if err != nil {
		return b
	}
	// Small buffer keeps the beep aligned with the sound timer.
	p.SetBufferSize(20 * time.Millisecond)
	p.Play()
	b.player = p
	return b
}

// SetLevel latches the beep signal. Called once per frame from the game
// goroutine; safe on a nil beeper (muted).
func (b *beeper) SetLevel(on bool) {
	if b == nil {
		return
	}
	b.level.Store(on)
}

// toneStream implements io.Reader producing 16-bit little-endian stereo
// frames: a square wave at toneHz while the latched level is high, silence
// otherwise.
type toneStream struct {
	level *atomic.Bool
	pos   int
}

func (s *toneStream) Read(p []byte) (int, error) {
	const frameBytes = 4 // stereo int16
	n := len(p) / frameBytes * frameBytes
	if n == 0 {
		for i := range p {
			p[i] = 0
		}
		return len(p), nil
	}

	halfPeriod := sampleRate / toneHz / 2
	beeping := s.level.Load()
	for i := 0; i < n; i += frameBytes {
		var v int16
		if beeping {
			v = toneVolume
			if (s.pos/halfPeriod)%2 == 1 {
				v = -toneVolume
			}
		}
		binary.LittleEndian.PutUint16(p[i:], uint16(v))
		binary.LittleEndian.PutUint16(p[i+2:], uint16(v))
		s.pos++
	}
	return n, nil
}
