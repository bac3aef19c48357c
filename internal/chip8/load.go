package chip8

import "fmt"

// Load clears memory, installs the built-in font at 0x000 and the program at
// 0x200, and points PC at the program with an empty call stack. Registers,
// timers and the framebuffer are left untouched; callers wanting a cold start
// create a fresh machine with New.
func (c *Chip8) Load(program []byte) error {
	if len(program) > MaxProgramSize {
		return fmt.Errorf("%w: %d bytes, limit %d", ErrProgramTooLarge, len(program), MaxProgramSize)
	}
	c.Memory = [MemorySize]byte{}
	copy(c.Memory[:], font[:])
	copy(c.Memory[ProgramStart:], program)
	c.PC = ProgramStart
	c.SP = 0
	return nil
}
