package chip8

import "time"

// tickInterval is the period of the delay/sound timer decrement.
const tickInterval = time.Second / 60

// Step executes exactly one instruction.
//
// The delay and sound timers are decremented here, gated on wall-clock time so
// their 60Hz rate holds no matter how often the host calls Step. The opcode is
// fetched big-endian from Memory[PC] and PC advances by 2 before dispatch, so
// jump, skip and call targets are computed relative to the post-increment PC.
//
// Step must not be called while AwaitingKey is set; deliver key events via
// KeyDown until the suspension clears. Instruction faults (unsupported opcode,
// stack overflow/underflow, index access past the end of memory) are returned
// without touching unrelated state; the host may log and keep stepping.
func (c *Chip8) Step() error {
	now := c.now()
	if c.lastTick.IsZero() {
		c.lastTick = now
	}
	if now.Sub(c.lastTick) >= tickInterval {
		if c.DelayTimer > 0 {
			c.DelayTimer--
		}
		if c.SoundTimer > 0 {
			c.SoundTimer--
		}
		c.lastTick = now
	}

	if c.AwaitingKey {
		return ErrAwaitingKey
	}
	if int(c.PC)+1 >= MemorySize {
		return &MemoryError{Addr: int(c.PC)}
	}

	opcode := uint16(c.Memory[c.PC])<<8 | uint16(c.Memory[c.PC+1])
	x := opcode >> 8 & 0x0F
	y := opcode >> 4 & 0x0F
	n := byte(opcode & 0x000F)
	nn := byte(opcode)
	nnn := opcode & 0x0FFF

	c.PC += 2

	switch opcode & 0xF000 {
	case 0x0000:
		switch opcode {
		case 0x00E0: // CLS
			c.Gfx = [DisplayWidth * DisplayHeight]byte{}
		case 0x00EE: // RET
			if c.SP == 0 {
				return ErrStackUnderflow
			}
			c.SP--
			c.PC = c.Stack[c.SP]
		default:
			return &OpcodeError{Opcode: opcode}
		}

	case 0x1000: // JP nnn
		c.PC = nnn

	case 0x2000: // CALL nnn
		if c.SP >= stackDepth {
			return ErrStackOverflow
		}
		c.Stack[c.SP] = c.PC
		c.SP++
		c.PC = nnn

	case 0x3000: // SE Vx, nn
		if c.V[x] == nn {
			c.PC += 2
		}

	case 0x4000: // SNE Vx, nn
		if c.V[x] != nn {
			c.PC += 2
		}

	case 0x5000: // SE Vx, Vy
		if c.V[x] == c.V[y] {
			c.PC += 2
		}

	case 0x6000: // LD Vx, nn
		c.V[x] = nn

	case 0x7000: // ADD Vx, nn (no carry flag)
		c.V[x] += nn

	case 0x8000:
		switch n {
		case 0x0: // LD Vx, Vy
			c.V[x] = c.V[y]
		case 0x1: // OR
			c.V[x] |= c.V[y]
		case 0x2: // AND
			c.V[x] &= c.V[y]
		case 0x3: // XOR
			c.V[x] ^= c.V[y]
		case 0x4: // ADD with carry
			sum := uint16(c.V[x]) + uint16(c.V[y])
			c.V[0xF] = 0
			if sum > 0xFF {
				c.V[0xF] = 1
			}
			c.V[x] = byte(sum)
		case 0x5: // SUB; VF=1 iff Vx strictly greater than Vy
			vf := byte(0)
			if c.V[x] > c.V[y] {
				vf = 1
			}
			c.V[0xF] = vf
			c.V[x] -= c.V[y]
		case 0x6: // SHR; VF = bit shifted out
			c.V[0xF] = c.V[x] & 0x01
			c.V[x] >>= 1
		case 0x7: // SUBN; VF=1 iff Vy strictly greater than Vx
			vf := byte(0)
			if c.V[y] > c.V[x] {
				vf = 1
			}
			c.V[0xF] = vf
			c.V[x] = c.V[y] - c.V[x]
		case 0xE: // SHL; VF = bit shifted out
			c.V[0xF] = c.V[x] >> 7
			c.V[x] <<= 1
		default:
			return &OpcodeError{Opcode: opcode}
		}

	case 0x9000: // SNE Vx, Vy
		if c.V[x] != c.V[y] {
			c.PC += 2
		}

	case 0xA000: // LD I, nnn
		c.I = nnn

	case 0xB000: // JP V0+nnn
		c.PC = nnn + uint16(c.V[0])

	case 0xC000: // RND Vx, nn
		c.V[x] = byte(c.rng.Intn(256)) & nn

	case 0xD000: // DRW Vx, Vy, n
		collided, err := c.drawSprite(c.V[x], c.V[y], n)
		if err != nil {
			return err
		}
		c.V[0xF] = 0
		if collided {
			c.V[0xF] = 1
		}

	case 0xE000:
		switch nn {
		case 0x9E: // SKP Vx
			// Shift counts past 15 are fine: the result is 0, never pressed.
			if c.Keyboard>>c.V[x]&1 == 1 {
				c.PC += 2
			}
		case 0xA1: // SKNP Vx
			if c.Keyboard>>c.V[x]&1 != 1 {
				c.PC += 2
			}
		default:
			return &OpcodeError{Opcode: opcode}
		}

	case 0xF000:
		switch nn {
		case 0x07: // LD Vx, DT
			c.V[x] = c.DelayTimer
		case 0x0A: // LD Vx, K: suspend until KeyDown
			c.AwaitingKey = true
			c.PC -= 2
		case 0x15: // LD DT, Vx
			c.DelayTimer = c.V[x]
		case 0x18: // LD ST, Vx
			c.SoundTimer = c.V[x]
		case 0x1E: // ADD I, Vx (16-bit, not clamped to the address space)
			c.I += uint16(c.V[x])
		case 0x29: // LD F, Vx: font glyph address
			c.I = uint16(c.V[x]) * 5
		case 0x33: // BCD Vx
			if int(c.I)+2 >= MemorySize {
				return &MemoryError{Addr: int(c.I) + 2}
			}
			v := c.V[x]
			c.Memory[c.I] = v / 100
			c.Memory[c.I+1] = v / 10 % 10
			c.Memory[c.I+2] = v % 10
		case 0x55: // LD [I], V0..Vx
			if int(c.I)+int(x) >= MemorySize {
				return &MemoryError{Addr: int(c.I) + int(x)}
			}
			for i := uint16(0); i <= x; i++ {
				c.Memory[c.I+i] = c.V[i]
			}
		case 0x65: // LD V0..Vx, [I]
			if int(c.I)+int(x) >= MemorySize {
				return &MemoryError{Addr: int(c.I) + int(x)}
			}
			for i := uint16(0); i <= x; i++ {
				c.V[i] = c.Memory[c.I+i]
			}
		default:
			return &OpcodeError{Opcode: opcode}
		}
	}

	return nil
}
