// Package cli handles command line interface logic
package cli

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/options"
)

// ParseFlags parses command line flags and returns the program options
func ParseFlags() (options.Program, error) {
	flags := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	var opts options.Program
	readOptionFlags(flags, &opts)

	err := flags.Parse(os.Args[1:])
	args := flags.Args()
	if err != nil || len(args) == 0 {
		return opts, &UsageError{flags: flags}
	}

	if err := validateArgs(args); err != nil {
		return opts, err
	}

	if err := normalizeOptions(&opts); err != nil {
		return opts, err
	}

	opts.Input = args[0]
	return opts, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

func (e *UsageError) ShowUsage() {
	fmt.Printf("usage: retrochip8 [options] <rom file>\n\n")
	if e.flags != nil {
		e.flags.PrintDefaults()
	}
	fmt.Println()
}

// validateArgs checks if arguments are in correct order
func validateArgs(args []string) error {
	for i, arg := range args {
		if i > 0 && arg[0] == '-' {
			return &UsageError{
				msg: fmt.Sprintf("Potential argument %s found after ROM file, please pass the ROM file as last argument", arg),
			}
		}
	}
	return nil
}

// normalizeOptions validates option values and parses the held keys
func normalizeOptions(opts *options.Program) error {
	if opts.Rate <= 0 {
		return fmt.Errorf("invalid instruction rate %d, must be positive", opts.Rate)
	}
	if opts.Scale <= 0 {
		return fmt.Errorf("invalid PNG scale %d, must be positive", opts.Scale)
	}

	keys, err := parseKeys(opts.Keys)
	if err != nil {
		return fmt.Errorf("parsing keys: %w", err)
	}
	opts.HeldKeys = keys
	return nil
}

// parseKeys parses a comma separated list of hexadecimal key names.
func parseKeys(list string) ([chip8.KeyCount]bool, error) {
	var keys [chip8.KeyCount]bool
	if list == "" {
		return keys, nil
	}

	for _, name := range strings.Split(list, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}

		key, err := strconv.ParseUint(name, 16, 8)
		if err != nil || key >= chip8.KeyCount {
			return keys, fmt.Errorf("%w: '%s'", errInvalidKeyName, name)
		}
		keys[key] = true
	}
	return keys, nil
}

var errInvalidKeyName = errors.New("invalid key name, expected 0-F")

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.StringVar(&opts.PNG, "png", "", "name of a PNG file to write the final framebuffer to")
	flags.Uint64Var(&opts.Cycles, "cycles", options.DefaultCycles, "number of instructions to execute, 0 runs until interrupted")
	flags.IntVar(&opts.Rate, "rate", options.DefaultRate, "instructions per second, timers tick at 60 Hz")
	flags.BoolVar(&opts.Realtime, "realtime", false, "pace execution in real time instead of running as fast as possible")
	flags.StringVar(&opts.Keys, "keys", "", "comma separated list of hex keys held down during the run, for example 5,A")
	flags.Uint64Var(&opts.Seed, "seed", 0, "seed for the random number generator, 0 picks a random seed")
	flags.BoolVar(&opts.IndexCompare, "quirk-index-compare", false, "9XY0 compares register indexes instead of values")
	flags.BoolVar(&opts.LegacyCollision, "quirk-legacy-collision", false, "DXYN only detects collisions of the rightmost sprite column")
	flags.BoolVar(&opts.ASCII, "ascii", false, "print the framebuffer using ASCII characters")
	flags.BoolVar(&opts.NoText, "notext", false, "do not print the framebuffer")
	flags.IntVar(&opts.Scale, "scale", options.DefaultScale, "pixel scale of the PNG output")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
}
