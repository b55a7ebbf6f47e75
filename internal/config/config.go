// Package config handles application configuration and setup
package config

import (
	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/log"
)

// CreateLogger creates a logger with appropriate settings
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// CreateQuirks returns the interpreter quirks selected by the options.
func CreateQuirks(opts options.Program) chip8.Quirks {
	return chip8.Quirks{
		CompareRegisterIndices: opts.IndexCompare,
		LegacyCollision:        opts.LegacyCollision,
	}
}

// CreateCoreOptions returns the options to create an interpreter core with.
func CreateCoreOptions(logger *log.Logger, opts options.Program) []chip8.Option {
	coreOpts := []chip8.Option{
		chip8.WithLogger(logger),
		chip8.WithQuirks(CreateQuirks(opts)),
	}
	if opts.Seed != 0 {
		coreOpts = append(coreOpts, chip8.WithSeed(opts.Seed))
	}
	return coreOpts
}
