package chip8

import (
	"math/rand"
	"time"
)

// Display dimensions in pixels.
const (
	DisplayWidth  = 64
	DisplayHeight = 32
)

// Memory layout.
const (
	MemorySize   = 4096
	ProgramStart = 0x200
	// MaxProgramSize is the memory left for a program after the reserved area.
	MaxProgramSize = MemorySize - ProgramStart

	stackDepth = 16
)

// Chip8 holds the complete machine state: memory, registers, call stack,
// timers, keyboard bitmask and framebuffer. The fields are exported so tests
// can set up any pre-state directly and a host can snapshot whatever it needs;
// all behavior lives in the methods of this package.
//
// A Chip8 is owned by a single goroutine. Step and the key event methods must
// be called from the same goroutine (or under external locking).
type Chip8 struct {
	Memory [MemorySize]byte
	V      [16]byte // V0..VF; VF doubles as carry/borrow/collision flag
	I      uint16   // index register
	PC     uint16
	Stack  [stackDepth]uint16
	SP     byte

	DelayTimer byte
	SoundTimer byte

	// Keyboard is a bitmask: bit k is set iff hex key k is currently held.
	Keyboard uint16

	// Gfx is the 64x32 framebuffer, row-major, one byte per pixel (0 or 1).
	Gfx [DisplayWidth * DisplayHeight]byte

	// AwaitingKey is set while a key-wait instruction is suspended at PC.
	// Step must not be called until a KeyDown clears it.
	AwaitingKey bool

	lastTick time.Time        // timestamp of the last 60Hz timer decrement
	now      func() time.Time // injectable clock for deterministic tests
	rng      *rand.Rand
}

// New returns a machine with zeroed state. Load must be called before
// stepping.
func New() *Chip8 {
	return &Chip8{
		now: time.Now,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Pixel reports the framebuffer value at (x, y), 0 or 1.
func (c *Chip8) Pixel(x, y int) byte {
	return c.Gfx[y*DisplayWidth+x]
}

// Beeping reports whether the sound timer is running. The host owns tone
// generation; this is the only sound signal the core exposes.
func (c *Chip8) Beeping() bool {
	return c.SoundTimer > 0
}

// KeyDown records hex key k (0..15) as held. If the machine is suspended on a
// key-wait instruction, the key value is stored into the instruction's target
// register, the suspension is cleared and PC advances past the instruction.
// Exactly one key-down completes exactly one pending wait.
func (c *Chip8) KeyDown(k byte) {
	c.Keyboard |= 1 << k
	if !c.AwaitingKey {
		return
	}
	// PC still addresses the key-wait opcode; recover the target register.
	opcode := uint16(c.Memory[c.PC])<<8 | uint16(c.Memory[c.PC+1])
	c.V[opcode>>8&0x0F] = k
	c.AwaitingKey = false
	c.PC += 2
}

// KeyUp records hex key k (0..15) as released.
func (c *Chip8) KeyUp(k byte) {
	c.Keyboard &^= 1 << k
}
