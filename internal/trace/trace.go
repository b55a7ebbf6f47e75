// Package trace names executed CHIP-8 instructions for debug output.
// It uses the retrogolib CHIP-8 opcode table to identify instructions and
// formats the operands that are embedded in the opcode.
package trace

import (
	"fmt"

	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// Instruction is a decoded CHIP-8 instruction word.
type Instruction struct {
	Opcode uint16
	Name   string // empty for opcodes that match no instruction
	Params string
}

// Decode identifies the instruction of the given opcode.
func Decode(opcode uint16) Instruction {
	ins := Instruction{
		Opcode: opcode,
	}

	firstNibble := (opcode & 0xF000) >> 12
	for _, op := range chip8.Opcodes[int(firstNibble)] {
		if op.Info.Mask&opcode == op.Info.Value {
			if op.Instruction != nil {
				ins.Name = op.Instruction.Name
			}
			break
		}
	}
	if ins.Name == "" {
		return ins
	}

	ins.Params = formatParams(opcode)
	return ins
}

// Known returns whether the opcode matched an instruction.
func (i Instruction) Known() bool {
	return i.Name != ""
}

// String returns the instruction in assembly notation, unknown opcodes are
// output as data word.
func (i Instruction) String() string {
	switch {
	case i.Name == "":
		return fmt.Sprintf(".word $%04X", i.Opcode)
	case i.Params == "":
		return i.Name
	default:
		return fmt.Sprintf("%s %s", i.Name, i.Params)
	}
}

// formatParams formats the operands of a CHIP-8 instruction.
func formatParams(opcode uint16) string {
	switch opcode & 0xF000 {
	case 0x0000:
		return "" // CLS, RET
	case 0x1000, 0x2000:
		return fmt.Sprintf("$%03X", opcode&0x0FFF)
	case 0x3000, 0x4000, 0x6000, 0x7000, 0xC000:
		return fmt.Sprintf("V%X, $%02X", extractRegisterX(opcode), opcode&0x00FF)
	case 0x5000, 0x8000, 0x9000:
		return formatRegisterPair(opcode)
	case 0xA000:
		return fmt.Sprintf("I, $%03X", opcode&0x0FFF)
	case 0xB000:
		return fmt.Sprintf("V0, $%03X", opcode&0x0FFF)
	case 0xD000:
		return formatDrawInstruction(opcode)
	case 0xE000:
		return fmt.Sprintf("V%X", extractRegisterX(opcode))
	case 0xF000:
		return formatMiscInstruction(opcode)
	}
	return ""
}

// formatRegisterPair formats register to register instructions, the shift
// instructions only name their source register.
func formatRegisterPair(opcode uint16) string {
	x := extractRegisterX(opcode)
	if opcode&0xF000 == 0x8000 {
		switch opcode & 0x000F {
		case 0x6, 0xE:
			return fmt.Sprintf("V%X", x)
		}
	}
	return fmt.Sprintf("V%X, V%X", x, extractRegisterY(opcode))
}

// formatDrawInstruction formats draw instructions (DRW).
func formatDrawInstruction(opcode uint16) string {
	x := extractRegisterX(opcode)
	y := extractRegisterY(opcode)
	n := opcode & 0x000F
	return fmt.Sprintf("V%X, V%X, $%X", x, y, n)
}

// formatMiscInstruction formats the timer, keypad and index instructions.
func formatMiscInstruction(opcode uint16) string {
	x := extractRegisterX(opcode)
	switch opcode & 0x00FF {
	case 0x07:
		return fmt.Sprintf("V%X, DT", x)
	case 0x0A:
		return fmt.Sprintf("V%X, K", x)
	case 0x15:
		return fmt.Sprintf("DT, V%X", x)
	case 0x18:
		return fmt.Sprintf("ST, V%X", x)
	case 0x1E:
		return fmt.Sprintf("I, V%X", x)
	case 0x29:
		return fmt.Sprintf("F, V%X", x)
	case 0x33:
		return fmt.Sprintf("B, V%X", x)
	case 0x55:
		return fmt.Sprintf("[I], V%X", x)
	case 0x65:
		return fmt.Sprintf("V%X, [I]", x)
	}
	return ""
}

// extractRegisterX extracts the X register nibble from a CHIP-8 opcode.
func extractRegisterX(opcode uint16) uint16 {
	return (opcode & 0x0F00) >> 8
}

// extractRegisterY extracts the Y register nibble from a CHIP-8 opcode.
func extractRegisterY(opcode uint16) uint16 {
	return (opcode & 0x00F0) >> 4
}
