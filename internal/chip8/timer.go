package chip8

// TimerFrequency is the rate in Hz at which TickTimers is expected to be called.
const TimerFrequency = 60

// TickTimers decrements the delay and sound timer if they are not zero.
// It has to be called by the driver at TimerFrequency, independent of the
// instruction rate.
func (c *Chip8) TickTimers() {
	if c.delayTimer > 0 {
		c.delayTimer--
	}
	if c.soundTimer > 0 {
		c.soundTimer--
	}
}

// SoundActive returns whether the sound timer is running.
func (c *Chip8) SoundActive() bool {
	return c.soundTimer > 0
}
