package chip8

// drawSprite XORs an 8-column, n-row sprite read from memory at I onto the
// framebuffer with top-left origin (x, y). Origin coordinates come straight
// from registers and are not wrapped: rows past the bottom edge and columns
// past the right edge are clipped. Reports whether any set sprite bit landed
// on a pixel that was already on.
func (c *Chip8) drawSprite(x, y, n byte) (bool, error) {
	collided := false
	for row := byte(0); row < n; row++ {
		sy := int(y) + int(row)
		if sy >= DisplayHeight {
			break
		}
		addr := int(c.I) + int(row)
		if addr >= MemorySize {
			return collided, &MemoryError{Addr: addr}
		}
		bits := c.Memory[addr]
		rowOffset := sy * DisplayWidth
		for col := 0; col < 8; col++ {
			sx := int(x) + col
			if sx >= DisplayWidth {
				break
			}
			if bits&(0x80>>col) == 0 {
				continue
			}
			idx := rowOffset + sx
			if c.Gfx[idx] != 0 {
				collided = true
			}
			c.Gfx[idx] ^= 1
		}
	}
	return collided, nil
}
