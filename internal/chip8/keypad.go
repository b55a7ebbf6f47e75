package chip8

import "fmt"

// SetKey sets the state of a single key of the hexadecimal keypad.
func (c *Chip8) SetKey(key uint8, pressed bool) error {
	if key >= KeyCount {
		return fmt.Errorf("%w: %d", ErrInvalidKey, key)
	}
	c.keys[key] = pressed
	return nil
}

// SetKeys replaces the state of all keys.
func (c *Chip8) SetKeys(keys [KeyCount]bool) {
	c.keys = keys
}

// Keys returns the current keypad state.
func (c *Chip8) Keys() [KeyCount]bool {
	return c.keys
}
