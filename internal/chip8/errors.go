package chip8

import (
	"errors"
	"fmt"
)

var (
	// ErrProgramTooLarge is returned by Load when the program does not fit
	// into the memory above the reserved area.
	ErrProgramTooLarge = errors.New("program too large")

	// ErrAwaitingKey is returned by Step while the machine is suspended on a
	// key-wait instruction. It signals a host contract violation, not a
	// runtime input error.
	ErrAwaitingKey = errors.New("step while awaiting key press")

	// ErrStackOverflow is returned by a subroutine call at full call depth.
	ErrStackOverflow = errors.New("call stack overflow")

	// ErrStackUnderflow is returned by a return with an empty call stack.
	ErrStackUnderflow = errors.New("return with empty call stack")
)

// OpcodeError reports an instruction bit pattern the machine does not
// implement. The host decides whether to halt or skip and continue.
type OpcodeError struct {
	Opcode uint16
}

func (e *OpcodeError) Error() string {
	return fmt.Sprintf("unsupported opcode %04X", e.Opcode)
}

// MemoryError reports an index-relative access past the end of memory during
// a sprite fetch, BCD store or block register store/load.
type MemoryError struct {
	Addr int
}

func (e *MemoryError) Error() string {
	return fmt.Sprintf("memory access out of range: %#04x", e.Addr)
}
