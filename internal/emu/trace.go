package emu

import (
	chip8def "github.com/retroenv/retrogolib/arch/cpu/chip8"
	"github.com/retroenv/retrogolib/log"

	"github.com/retrofab/chip8emu/internal/chip8"
)

// trace logs the instruction about to execute, decoded against the retrogolib
// CHIP-8 opcode tables.
func (m *Machine) trace() {
	pc := m.c.PC
	if int(pc)+1 >= chip8.MemorySize {
		return
	}
	w := uint16(m.c.Memory[pc])<<8 | uint16(m.c.Memory[pc+1])
	m.logger.Debug("exec",
		log.Hex("pc", pc),
		log.Hex("opcode", w),
		log.String("ins", decodeName(w)))
}

// decodeName returns the mnemonic for an opcode word, or "???" for bit
// patterns outside the instruction set.
func decodeName(w uint16) string {
	for _, op := range chip8def.Opcodes[int(w>>12)] {
		if op.Instruction != nil && op.Info.Mask&w == op.Info.Value {
			return op.Instruction.Name
		}
	}
	return "???"
}
