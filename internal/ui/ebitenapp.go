package ui

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/retrofab/chip8emu/internal/chip8"
	"github.com/retrofab/chip8emu/internal/emu"
)

// keypad maps the hex keys 0..F onto the classic 4x4 block on the left of a
// QWERTY keyboard:
//
//	1 2 3 C        1 2 3 4
//	4 5 6 D  ->    Q W E R
//	7 8 9 E        A S D F
//	A 0 B F        Z X C V
var keypad = [16]ebiten.Key{
	0x0: ebiten.KeyX,
	0x1: ebiten.KeyDigit1,
	0x2: ebiten.KeyDigit2,
	0x3: ebiten.KeyDigit3,
	0x4: ebiten.KeyQ,
	0x5: ebiten.KeyW,
	0x6: ebiten.KeyE,
	0x7: ebiten.KeyA,
	0x8: ebiten.KeyS,
	0x9: ebiten.KeyD,
	0xA: ebiten.KeyZ,
	0xB: ebiten.KeyC,
	0xC: ebiten.KeyDigit4,
	0xD: ebiten.KeyR,
	0xE: ebiten.KeyF,
	0xF: ebiten.KeyV,
}

// App runs the emulator in an ebiten window at 60 updates per second:
// poll input, run one frame of instructions, blit the framebuffer.
// Escape quits, P pauses, N steps a single frame while paused and
// Backspace restarts the ROM.
type App struct {
	cfg    Config
	m      *emu.Machine
	tex    *ebiten.Image
	beep   *beeper
	paused bool
}

func NewApp(cfg Config, m *emu.Machine) *App {
	cfg.Defaults()
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(chip8.DisplayWidth*cfg.Scale, chip8.DisplayHeight*cfg.Scale)
	a := &App{cfg: cfg, m: m}
	if !cfg.Mute {
		a.beep = newBeeper()
	}
	return a
}

func (a *App) Run() error { return ebiten.RunGame(a) }

func (a *App) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	// Key edges feed the keyboard bitmask; a key-down also completes a
	// pending key-wait inside the core.
	for k, key := range keypad {
		if inpututil.IsKeyJustPressed(key) {
			a.m.KeyDown(byte(k))
		}
		if inpututil.IsKeyJustReleased(key) {
			a.m.KeyUp(byte(k))
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		a.paused = !a.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBackspace) {
		a.m.Reset()
	}

	if a.paused {
		if inpututil.IsKeyJustPressed(ebiten.KeyN) {
			a.m.StepFrame()
		}
	} else {
		a.m.StepFrame()
	}

	a.beep.SetLevel(a.m.Beeping())
	return nil
}

func (a *App) Draw(screen *ebiten.Image) {
	if a.tex == nil {
		a.tex = ebiten.NewImage(chip8.DisplayWidth, chip8.DisplayHeight)
	}
	a.tex.WritePixels(a.m.Framebuffer())
	screen.DrawImage(a.tex, nil)
}

func (a *App) Layout(outW, outH int) (int, int) {
	return chip8.DisplayWidth, chip8.DisplayHeight
}
