package ui

// Config contains window/input/audio related settings.
type Config struct {
	Title string // window title
	Scale int    // integer upscaling factor
	Mute  bool   // disable the beep tone
}

// Defaults fills missing fields with reasonable defaults.
func (c *Config) Defaults() {
	if c.Title == "" {
		c.Title = "chip8emu"
	}
	if c.Scale <= 0 {
		c.Scale = 10
	}
}
