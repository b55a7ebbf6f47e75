// Package runner drives the interpreter core: it owns the instruction clock
// and the 60 Hz timer clock and renders the final display.
package runner

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/config"
	"github.com/retroenv/retrochip8/internal/display"
	"github.com/retroenv/retrochip8/internal/loader"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/trace"
	"github.com/retroenv/retrogolib/log"
)

// Stats contains counters of a finished run.
type Stats struct {
	Cycles     uint64 // executed instructions
	TimerTicks uint64
	Frames     uint64 // steps that changed the framebuffer
}

// Runner orchestrates loading, executing and rendering of a ROM.
type Runner struct {
	logger *log.Logger
	loader *loader.Loader
}

// New creates a new runner.
func New(logger *log.Logger) *Runner {
	return &Runner{
		logger: logger,
		loader: loader.New(),
	}
}

// Execute loads the ROM file of the options, runs it and writes the final
// framebuffer to the writer.
func (r *Runner) Execute(ctx context.Context, opts options.Program, writer io.Writer) (Stats, error) {
	rom, err := r.loader.Load(opts.Input)
	if err != nil {
		return Stats{}, fmt.Errorf("loading rom: %w", err)
	}

	core := chip8.New(config.CreateCoreOptions(r.logger, opts)...)
	if _, err := core.LoadROM(rom); err != nil {
		return Stats{}, fmt.Errorf("loading rom: %w", err)
	}
	r.printInfo(opts, len(rom))

	stats, runErr := r.Run(ctx, core, opts)
	r.logger.Info("Execution stopped",
		log.Int("cycles", int(stats.Cycles)),
		log.Int("timer_ticks", int(stats.TimerTicks)),
		log.Int("frames", int(stats.Frames)))

	// the display is rendered also after failures to show the last state
	if err := r.render(core, opts, writer); err != nil {
		return stats, err
	}
	if runErr != nil {
		return stats, runErr
	}
	return stats, nil
}

// Run executes instructions on the core until the cycle budget of the
// options is used up or the context is cancelled.
func (r *Runner) Run(ctx context.Context, core *chip8.Chip8, opts options.Program) (Stats, error) {
	core.SetKeys(opts.HeldKeys)

	if opts.Realtime {
		return r.runRealtime(ctx, core, opts)
	}
	return r.runHeadless(ctx, core, opts)
}

// CyclesPerTick returns the number of instructions to execute between two
// timer ticks for the given instruction rate.
func CyclesPerTick(rate int) uint64 {
	cycles := rate / chip8.TimerFrequency
	if cycles < 1 {
		return 1
	}
	return uint64(cycles)
}

// runHeadless executes as fast as possible and derives the timer clock
// from the number of executed instructions.
func (r *Runner) runHeadless(ctx context.Context, core *chip8.Chip8, opts options.Program) (Stats, error) {
	var stats Stats
	cyclesPerTick := CyclesPerTick(opts.Rate)

	for opts.Cycles == 0 || stats.Cycles < opts.Cycles {
		if err := ctx.Err(); err != nil {
			return stats, fmt.Errorf("running: %w", err)
		}

		if err := r.step(core, opts, &stats); err != nil {
			return stats, err
		}

		if stats.Cycles%cyclesPerTick == 0 {
			core.TickTimers()
			stats.TimerTicks++
		}
	}
	return stats, nil
}

// runRealtime paces instructions and timer ticks with wall clock tickers.
func (r *Runner) runRealtime(ctx context.Context, core *chip8.Chip8, opts options.Program) (Stats, error) {
	var stats Stats

	cycleTicker := time.NewTicker(time.Second / time.Duration(opts.Rate))
	defer cycleTicker.Stop()
	timerTicker := time.NewTicker(time.Second / chip8.TimerFrequency)
	defer timerTicker.Stop()

	for opts.Cycles == 0 || stats.Cycles < opts.Cycles {
		select {
		case <-ctx.Done():
			return stats, fmt.Errorf("running: %w", ctx.Err())

		case <-timerTicker.C:
			core.TickTimers()
			stats.TimerTicks++

		case <-cycleTicker.C:
			if err := r.step(core, opts, &stats); err != nil {
				return stats, err
			}
		}
	}
	return stats, nil
}

func (r *Runner) step(core *chip8.Chip8, opts options.Program, stats *Stats) error {
	if opts.Debug {
		r.traceInstruction(core)
	}

	if err := core.Step(); err != nil {
		return fmt.Errorf("step %d: %w", stats.Cycles, err)
	}
	stats.Cycles++

	if core.Redraw() {
		stats.Frames++
	}
	return nil
}

func (r *Runner) traceInstruction(core *chip8.Chip8) {
	state := core.State()
	opcode, err := core.PeekOpcode()
	if err != nil {
		return // reported by the following step
	}

	ins := trace.Decode(opcode)
	r.logger.Debug("Executing",
		log.Hex("address", state.PC),
		log.Hex("opcode", opcode),
		log.String("instruction", ins.String()),
		log.Hex("index", state.Index),
		log.Uint8("sp", state.SP))
}

// render writes the framebuffer as text and PNG image as selected by the options.
func (r *Runner) render(core *chip8.Chip8, opts options.Program, writer io.Writer) error {
	frame := core.Framebuffer()

	if opts.PNG != "" {
		if err := display.SavePNG(opts.PNG, frame, opts.Scale); err != nil {
			return fmt.Errorf("saving framebuffer: %w", err)
		}
		r.logger.Info("Framebuffer saved", log.String("file", opts.PNG))
	}

	if opts.NoText {
		return nil
	}

	style := display.StyleFor(writer)
	if opts.ASCII {
		style = display.ASCII
	}
	if err := display.WriteText(writer, frame, style); err != nil {
		return fmt.Errorf("printing framebuffer: %w", err)
	}
	return nil
}

// printInfo prints information about the ROM being executed.
func (r *Runner) printInfo(opts options.Program, size int) {
	if opts.Quiet {
		return
	}

	mode := "headless"
	if opts.Realtime {
		mode = "realtime"
	}
	r.logger.Info("Executing Chip-8 ROM",
		log.String("file", opts.Input),
		log.Int("size", size),
		log.Int("rate", opts.Rate),
		log.String("mode", mode),
	)

	if opts.IndexCompare {
		r.logger.Warn("Quirk enabled, 9XY0 compares register indexes instead of values")
	}
	if opts.LegacyCollision {
		r.logger.Warn("Quirk enabled, DXYN only detects collisions of the rightmost sprite column")
	}
}
