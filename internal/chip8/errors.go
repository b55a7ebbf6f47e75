package chip8

import (
	"errors"
	"fmt"
)

var (
	// ErrStackOverflow is returned when a call is made with a full stack.
	ErrStackOverflow = errors.New("stack overflow")
	// ErrStackUnderflow is returned when a return is executed with an empty stack.
	ErrStackUnderflow = errors.New("stack underflow")
	// ErrMemoryOutOfRange is returned for memory accesses beyond MaxAddress.
	ErrMemoryOutOfRange = errors.New("memory access out of range")
	// ErrROMTooLarge is returned when a program does not fit into memory.
	ErrROMTooLarge = errors.New("rom too large")
	// ErrInvalidKey is returned for key indexes outside of 0-F.
	ErrInvalidKey = errors.New("invalid key")
)

// ExecutionError describes an instruction that could not be executed.
type ExecutionError struct {
	Address uint16 // address the instruction was fetched from
	Opcode  uint16
	Err     error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("executing opcode $%04X at $%04X: %s", e.Opcode, e.Address, e.Err)
}

func (e *ExecutionError) Unwrap() error {
	return e.Err
}
