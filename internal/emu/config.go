package emu

// Config contains settings that affect emulation behavior.
type Config struct {
	CyclesPerFrame int  // instructions executed per 60Hz frame
	Trace          bool // log each executed instruction
}

// Defaults fills missing fields with reasonable defaults.
func (c *Config) Defaults() {
	if c.CyclesPerFrame <= 0 {
		c.CyclesPerFrame = 10
	}
}
