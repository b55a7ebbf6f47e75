// Package chip8 implements the execution core of a CHIP-8 virtual machine.
//
// # Architecture Overview
//
// CHIP-8 is an interpreted programming language developed in the 1970s for simple
// games on early microcomputers. This package emulates its virtual machine: memory,
// register file, call stack, timers, keypad and framebuffer, driven by a
// fetch-decode-execute step that interprets the 35 instruction opcode set.
//
// # Memory Layout
//
// CHIP-8 systems have 4KB of memory (0x000-MaxAddress):
//   - 0x000-0x1FF: Interpreter area, the font table lives at FontStart
//   - ProgramStart-MaxAddress: User program and data area
//
// # Instruction Set
//
//   - All instructions are 2 bytes (16 bits), stored big-endian
//   - 16 general-purpose 8-bit registers (V0-VF), VF doubles as flag register
//   - Special-purpose registers: I (16-bit), PC, SP
//   - Opcodes that match no instruction are ignored
//
// # Driving the Core
//
// The core never blocks and has no notion of time. The caller owns two clocks:
//
//	c := chip8.New()
//	if _, err := c.LoadROM(rom); err != nil {
//		return err
//	}
//	for {
//		c.SetKeys(readKeys())
//		if err := c.Step(); err != nil {
//			return err
//		}
//		if timerDue() {
//			c.TickTimers()
//		}
//		if c.Redraw() {
//			render(c.Framebuffer())
//		}
//	}
//
// Waiting for a key press (FX0A) is emulated by rewinding the program counter,
// the instruction is executed again on every step until a key is pressed.
//
// # Error Handling
//
// Machine invariant violations fail fast instead of corrupting state: calls with a
// full stack, returns with an empty stack and memory accesses past MaxAddress
// return an *ExecutionError wrapping one of the sentinel errors.
package chip8
