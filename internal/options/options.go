// Package options contains the program options.
package options

import "github.com/retroenv/retrochip8/internal/chip8"

// Parameters contains file path options.
type Parameters struct {
	Input string // ROM file to execute
	PNG   string // file to write the final framebuffer to as PNG image
}

// Flags contains behavior options.
type Flags struct {
	Cycles   uint64 // instructions to execute, 0 runs until cancelled
	Rate     int    // instructions per second
	Realtime bool   // pace execution with wall clock tickers
	Keys     string // comma separated list of hex keys held during the run
	Seed     uint64 // random seed, 0 selects a random seed
	Debug    bool
	Quiet    bool
}

// QuirkFlags selects interpreter quirks.
type QuirkFlags struct {
	IndexCompare    bool
	LegacyCollision bool
}

// OutputFlags contains output formatting options.
type OutputFlags struct {
	ASCII  bool // force ASCII framebuffer output
	NoText bool // do not print the framebuffer
	Scale  int  // PNG pixel scale
}

// Program options of the emulator.
type Program struct {
	Parameters
	Flags
	QuirkFlags
	OutputFlags

	HeldKeys [chip8.KeyCount]bool // parsed from Keys
}

// Default values of the program options.
const (
	DefaultCycles = 1000
	DefaultRate   = 600
	DefaultScale  = 8
)
