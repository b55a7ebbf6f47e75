package chip8

import "fmt"

// returnFromSubroutine implements 00EE: RET.
func (c *Chip8) returnFromSubroutine() error {
	if c.sp == 0 {
		return ErrStackUnderflow
	}
	c.sp--
	c.pc = c.stack[c.sp]
	return nil
}

// jump implements 1NNN: JP addr.
func (c *Chip8) jump(opcode uint16) {
	c.pc = extractAddress(opcode)
}

// call implements 2NNN: CALL addr.
func (c *Chip8) call(opcode uint16) error {
	if c.sp >= StackSize {
		return ErrStackOverflow
	}
	c.stack[c.sp] = c.pc
	c.sp++
	c.pc = extractAddress(opcode)
	return nil
}

func (c *Chip8) skipNext(condition bool) {
	if condition {
		c.pc += opcodeSize
	}
}

// skipIfEqualImmediate implements 3XKK: SE Vx, byte.
func (c *Chip8) skipIfEqualImmediate(opcode uint16) {
	x := extractRegisterX(opcode)
	c.skipNext(c.v[x] == extractByte(opcode))
}

// skipIfNotEqualImmediate implements 4XKK: SNE Vx, byte.
func (c *Chip8) skipIfNotEqualImmediate(opcode uint16) {
	x := extractRegisterX(opcode)
	c.skipNext(c.v[x] != extractByte(opcode))
}

// skipIfEqualRegister implements 5XY0: SE Vx, Vy.
func (c *Chip8) skipIfEqualRegister(opcode uint16) {
	x, y := extractRegisterX(opcode), extractRegisterY(opcode)
	c.skipNext(c.v[x] == c.v[y])
}

// skipIfNotEqualRegister implements 9XY0: SNE Vx, Vy.
func (c *Chip8) skipIfNotEqualRegister(opcode uint16) {
	x, y := extractRegisterX(opcode), extractRegisterY(opcode)
	if c.quirks.CompareRegisterIndices {
		c.skipNext(x != y)
		return
	}
	c.skipNext(c.v[x] != c.v[y])
}

// loadImmediate implements 6XKK: LD Vx, byte.
func (c *Chip8) loadImmediate(opcode uint16) {
	c.v[extractRegisterX(opcode)] = extractByte(opcode)
}

// addImmediate implements 7XKK: ADD Vx, byte. The carry flag is not affected.
func (c *Chip8) addImmediate(opcode uint16) {
	c.v[extractRegisterX(opcode)] += extractByte(opcode)
}

// loadRegister implements 8XY0: LD Vx, Vy.
func (c *Chip8) loadRegister(opcode uint16) {
	c.v[extractRegisterX(opcode)] = c.v[extractRegisterY(opcode)]
}

// or implements 8XY1: OR Vx, Vy.
func (c *Chip8) or(opcode uint16) {
	c.v[extractRegisterX(opcode)] |= c.v[extractRegisterY(opcode)]
}

// and implements 8XY2: AND Vx, Vy.
func (c *Chip8) and(opcode uint16) {
	c.v[extractRegisterX(opcode)] &= c.v[extractRegisterY(opcode)]
}

// xor implements 8XY3: XOR Vx, Vy.
func (c *Chip8) xor(opcode uint16) {
	c.v[extractRegisterX(opcode)] ^= c.v[extractRegisterY(opcode)]
}

// The flag setting instructions below write VF last, so that the flag
// survives when VF is used as the destination register.

// addRegister implements 8XY4: ADD Vx, Vy.
func (c *Chip8) addRegister(opcode uint16) {
	x, y := extractRegisterX(opcode), extractRegisterY(opcode)
	sum := uint16(c.v[x]) + uint16(c.v[y])
	c.v[x] = uint8(sum)
	c.v[flagRegister] = boolToFlag(sum > 0xFF)
}

// subtract implements 8XY5: SUB Vx, Vy.
func (c *Chip8) subtract(opcode uint16) {
	x, y := extractRegisterX(opcode), extractRegisterY(opcode)
	vx, vy := c.v[x], c.v[y]
	c.v[x] = vx - vy
	c.v[flagRegister] = boolToFlag(vx >= vy)
}

// shiftRight implements 8XY6: SHR Vx.
func (c *Chip8) shiftRight(opcode uint16) {
	x := extractRegisterX(opcode)
	vx := c.v[x]
	c.v[x] = vx >> 1
	c.v[flagRegister] = vx & 0x01
}

// subtractReverse implements 8XY7: SUBN Vx, Vy.
func (c *Chip8) subtractReverse(opcode uint16) {
	x, y := extractRegisterX(opcode), extractRegisterY(opcode)
	vx, vy := c.v[x], c.v[y]
	c.v[x] = vy - vx
	c.v[flagRegister] = boolToFlag(vy >= vx)
}

// shiftLeft implements 8XYE: SHL Vx.
func (c *Chip8) shiftLeft(opcode uint16) {
	x := extractRegisterX(opcode)
	vx := c.v[x]
	c.v[x] = vx << 1
	c.v[flagRegister] = vx >> 7
}

// setIndex implements ANNN: LD I, addr.
func (c *Chip8) setIndex(opcode uint16) {
	c.index = extractAddress(opcode)
}

// jumpWithOffset implements BNNN: JP V0, addr.
func (c *Chip8) jumpWithOffset(opcode uint16) {
	c.pc = uint16(c.v[0]) + extractAddress(opcode)
}

// randomAnd implements CXKK: RND Vx, byte.
func (c *Chip8) randomAnd(opcode uint16) {
	c.v[extractRegisterX(opcode)] = c.random.Uint8() & extractByte(opcode)
}

// skipIfKeyPressed implements EX9E: SKP Vx.
func (c *Chip8) skipIfKeyPressed(opcode uint16) {
	key := c.v[extractRegisterX(opcode)] & 0x0F
	c.skipNext(c.keys[key])
}

// skipIfKeyNotPressed implements EXA1: SKNP Vx.
func (c *Chip8) skipIfKeyNotPressed(opcode uint16) {
	key := c.v[extractRegisterX(opcode)] & 0x0F
	c.skipNext(!c.keys[key])
}

// loadDelayTimer implements FX07: LD Vx, DT.
func (c *Chip8) loadDelayTimer(opcode uint16) {
	c.v[extractRegisterX(opcode)] = c.delayTimer
}

// waitForKey implements FX0A: LD Vx, K. Without a pressed key the program
// counter is rewound so that the instruction executes again on the next step.
func (c *Chip8) waitForKey(opcode uint16) {
	for key, pressed := range c.keys {
		if pressed {
			c.v[extractRegisterX(opcode)] = uint8(key)
			return
		}
	}
	c.pc -= opcodeSize
}

// setDelayTimer implements FX15: LD DT, Vx.
func (c *Chip8) setDelayTimer(opcode uint16) {
	c.delayTimer = c.v[extractRegisterX(opcode)]
}

// setSoundTimer implements FX18: LD ST, Vx.
func (c *Chip8) setSoundTimer(opcode uint16) {
	c.soundTimer = c.v[extractRegisterX(opcode)]
}

// addIndex implements FX1E: ADD I, Vx.
func (c *Chip8) addIndex(opcode uint16) {
	c.index += uint16(c.v[extractRegisterX(opcode)])
}

// loadFontCharacter implements FX29: LD F, Vx.
func (c *Chip8) loadFontCharacter(opcode uint16) {
	digit := uint16(c.v[extractRegisterX(opcode)] & 0x0F)
	c.index = FontStart + FontGlyphSize*digit
}

// storeBCD implements FX33: LD B, Vx.
func (c *Chip8) storeBCD(opcode uint16) error {
	if err := c.checkIndexRange(3); err != nil {
		return err
	}
	value := c.v[extractRegisterX(opcode)]
	c.memory[c.index] = value / 100
	c.memory[c.index+1] = value / 10 % 10
	c.memory[c.index+2] = value % 10
	return nil
}

// storeRegisters implements FX55: LD [I], Vx.
func (c *Chip8) storeRegisters(opcode uint16) error {
	x := extractRegisterX(opcode)
	if err := c.checkIndexRange(int(x) + 1); err != nil {
		return err
	}
	copy(c.memory[c.index:], c.v[:x+1])
	return nil
}

// loadRegisters implements FX65: LD Vx, [I].
func (c *Chip8) loadRegisters(opcode uint16) error {
	x := extractRegisterX(opcode)
	if err := c.checkIndexRange(int(x) + 1); err != nil {
		return err
	}
	copy(c.v[:x+1], c.memory[c.index:])
	return nil
}

// checkIndexRange verifies that length bytes starting at the index register
// are inside of memory.
func (c *Chip8) checkIndexRange(length int) error {
	if int(c.index)+length > MemorySize {
		return fmt.Errorf("%w: %d bytes at index $%04X", ErrMemoryOutOfRange, length, c.index)
	}
	return nil
}

func boolToFlag(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
