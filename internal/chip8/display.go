package chip8

const (
	// DisplayWidth is the horizontal resolution in pixels.
	DisplayWidth = 64
	// DisplayHeight is the vertical resolution in pixels.
	DisplayHeight = 32

	// PixelOff is the framebuffer value of a pixel that is not set.
	PixelOff uint32 = 0x00000000
	// PixelOn is the framebuffer value of a set pixel.
	PixelOn uint32 = 0xFFFFFFFF

	spriteWidth = 8
)

// Frame is the content of the display in row-major order.
type Frame [DisplayWidth * DisplayHeight]uint32

// Framebuffer returns a copy of the display. Every value is either
// PixelOff or PixelOn.
func (c *Chip8) Framebuffer() Frame {
	return c.video
}

// Pixel returns the framebuffer value at the given coordinates, coordinates
// outside of the display return PixelOff.
func (c *Chip8) Pixel(x, y int) uint32 {
	if x < 0 || x >= DisplayWidth || y < 0 || y >= DisplayHeight {
		return PixelOff
	}
	return c.video[y*DisplayWidth+x]
}

// Redraw returns whether the framebuffer changed since the last call and
// resets the flag.
func (c *Chip8) Redraw() bool {
	redraw := c.redraw
	c.redraw = false
	return redraw
}

// clearScreen implements 00E0: CLS.
func (c *Chip8) clearScreen() {
	c.video = Frame{}
	c.redraw = true
}

// drawSprite implements DXYN: DRW Vx, Vy, nibble.
// The sprite origin wraps around the display edges, sprite pixels that
// extend past the right or bottom edge are clipped.
func (c *Chip8) drawSprite(opcode uint16) error {
	height := int(extractNibble(opcode))
	if err := c.checkIndexRange(height); err != nil {
		return err
	}

	originX := int(c.v[extractRegisterX(opcode)]) % DisplayWidth
	originY := int(c.v[extractRegisterY(opcode)]) % DisplayHeight

	var collision bool
	for row := range height {
		y := originY + row
		if y >= DisplayHeight {
			break
		}
		spriteByte := c.memory[int(c.index)+row]

		for col := range spriteWidth {
			x := originX + col
			if x >= DisplayWidth {
				break
			}

			spritePixel := spriteByte & (0x80 >> col)
			if spritePixel == 0 {
				continue
			}

			pixel := &c.video[y*DisplayWidth+x]
			if *pixel == PixelOn && c.collisionDetected(spritePixel, col) {
				collision = true
			}
			*pixel ^= PixelOn
		}
	}

	c.v[flagRegister] = boolToFlag(collision)
	c.redraw = true
	return nil
}

// collisionDetected reports whether a set sprite pixel that turns off a
// screen pixel counts as a collision.
func (c *Chip8) collisionDetected(spritePixel byte, col int) bool {
	if c.quirks.LegacyCollision {
		return spritePixel == 1
	}
	return (spritePixel>>(spriteWidth-1-col))&1 == 1
}
