package chip8

import (
	"github.com/retroenv/retrogolib/log"
)

// Step executes exactly one instruction. The program counter is advanced
// past the fetched instruction before it is dispatched, so jumps and calls
// set the final address directly.
//
// An error is returned for instructions that would violate a machine
// invariant, like a stack overflow or a memory access beyond MaxAddress.
// The state is left unchanged in that case, except for the program counter
// which already points to the next instruction.
func (c *Chip8) Step() error {
	address := c.pc
	opcode, err := c.PeekOpcode()
	if err != nil {
		return &ExecutionError{Address: address, Err: err}
	}

	c.opcode = opcode
	c.pc += opcodeSize

	if err := c.execute(opcode); err != nil {
		return &ExecutionError{Address: address, Opcode: opcode, Err: err}
	}
	return nil
}

// execute decodes the opcode and runs the matching instruction handler.
// Opcodes that match no instruction are ignored.
//
//nolint:cyclop,funlen // a flat switch keeps the full instruction set in one place
func (c *Chip8) execute(opcode uint16) error {
	switch opcode & 0xF000 {
	case 0x0000:
		switch opcode {
		case 0x00E0:
			c.clearScreen()
		case 0x00EE:
			return c.returnFromSubroutine()
		default:
			// 0NNN calls a machine code routine of the host, ignored by
			// interpreters.
			c.unknownOpcode(opcode)
		}

	case 0x1000:
		c.jump(opcode)
	case 0x2000:
		return c.call(opcode)
	case 0x3000:
		c.skipIfEqualImmediate(opcode)
	case 0x4000:
		c.skipIfNotEqualImmediate(opcode)
	case 0x5000:
		c.skipIfEqualRegister(opcode)
	case 0x6000:
		c.loadImmediate(opcode)
	case 0x7000:
		c.addImmediate(opcode)

	case 0x8000:
		switch opcode & 0x000F {
		case 0x0:
			c.loadRegister(opcode)
		case 0x1:
			c.or(opcode)
		case 0x2:
			c.and(opcode)
		case 0x3:
			c.xor(opcode)
		case 0x4:
			c.addRegister(opcode)
		case 0x5:
			c.subtract(opcode)
		case 0x6:
			c.shiftRight(opcode)
		case 0x7:
			c.subtractReverse(opcode)
		case 0xE:
			c.shiftLeft(opcode)
		default:
			c.unknownOpcode(opcode)
		}

	case 0x9000:
		c.skipIfNotEqualRegister(opcode)
	case 0xA000:
		c.setIndex(opcode)
	case 0xB000:
		c.jumpWithOffset(opcode)
	case 0xC000:
		c.randomAnd(opcode)
	case 0xD000:
		return c.drawSprite(opcode)

	case 0xE000:
		switch opcode & 0x00FF {
		case 0x9E:
			c.skipIfKeyPressed(opcode)
		case 0xA1:
			c.skipIfKeyNotPressed(opcode)
		default:
			c.unknownOpcode(opcode)
		}

	case 0xF000:
		switch opcode & 0x00FF {
		case 0x07:
			c.loadDelayTimer(opcode)
		case 0x0A:
			c.waitForKey(opcode)
		case 0x15:
			c.setDelayTimer(opcode)
		case 0x18:
			c.setSoundTimer(opcode)
		case 0x1E:
			c.addIndex(opcode)
		case 0x29:
			c.loadFontCharacter(opcode)
		case 0x33:
			return c.storeBCD(opcode)
		case 0x55:
			return c.storeRegisters(opcode)
		case 0x65:
			return c.loadRegisters(opcode)
		default:
			c.unknownOpcode(opcode)
		}
	}
	return nil
}

func (c *Chip8) unknownOpcode(opcode uint16) {
	if c.logger == nil {
		return
	}
	c.logger.Debug("Ignoring unknown opcode",
		log.Hex("opcode", opcode),
		log.Hex("address", c.pc-opcodeSize))
}

// extractRegisterX extracts the X register nibble from a CHIP-8 opcode.
func extractRegisterX(opcode uint16) uint16 {
	return (opcode & 0x0F00) >> 8
}

// extractRegisterY extracts the Y register nibble from a CHIP-8 opcode.
func extractRegisterY(opcode uint16) uint16 {
	return (opcode & 0x00F0) >> 4
}

// extractAddress extracts the 12 bit address of a CHIP-8 opcode.
func extractAddress(opcode uint16) uint16 {
	return opcode & 0x0FFF
}

// extractByte extracts the 8 bit immediate value of a CHIP-8 opcode.
func extractByte(opcode uint16) uint8 {
	return uint8(opcode & 0x00FF)
}

// extractNibble extracts the lowest 4 bits of a CHIP-8 opcode.
func extractNibble(opcode uint16) uint8 {
	return uint8(opcode & 0x000F)
}
