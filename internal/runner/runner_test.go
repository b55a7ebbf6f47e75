package runner

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func romBytes(opcodes ...uint16) []byte {
	rom := make([]byte, 0, 2*len(opcodes))
	for _, op := range opcodes {
		rom = append(rom, byte(op>>8), byte(op))
	}
	return rom
}

func newCore(t *testing.T, opcodes ...uint16) *chip8.Chip8 {
	t.Helper()
	core := chip8.New(chip8.WithLogger(log.NewTestLogger(t)))
	_, err := core.LoadROM(romBytes(opcodes...))
	assert.NoError(t, err)
	return core
}

func runOptions(cycles uint64, rate int) options.Program {
	var opts options.Program
	opts.Cycles = cycles
	opts.Rate = rate
	opts.Scale = options.DefaultScale
	return opts
}

func TestCyclesPerTick(t *testing.T) {
	tests := []struct {
		rate     int
		expected uint64
	}{
		{600, 10},
		{540, 9},
		{60, 1},
		{30, 1},
		{1000, 16},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, CyclesPerTick(tt.rate))
	}
}

func TestRun_TimerTicksFromCycles(t *testing.T) {
	// LD V0, $FF; LD DT, V0; JP $204
	core := newCore(t, 0x60FF, 0xF015, 0x1204)
	r := New(log.NewTestLogger(t))

	stats, err := r.Run(context.Background(), core, runOptions(102, 600))
	assert.NoError(t, err)
	assert.Equal(t, uint64(102), stats.Cycles)
	assert.Equal(t, uint64(10), stats.TimerTicks)
	assert.Equal(t, uint8(0xFF-10), core.State().DelayTimer)
}

func TestRun_HeldKeysReleaseKeyWait(t *testing.T) {
	// LD V3, K; JP $202
	core := newCore(t, 0xF30A, 0x1202)
	r := New(log.NewTestLogger(t))

	opts := runOptions(5, 600)
	stats, err := r.Run(context.Background(), core, opts)
	assert.NoError(t, err)
	assert.Equal(t, uint64(5), stats.Cycles)
	assert.Equal(t, uint16(0x200), core.State().PC)

	opts.HeldKeys[0xB] = true
	_, err = r.Run(context.Background(), core, opts)
	assert.NoError(t, err)
	assert.Equal(t, uint8(0xB), core.State().V[3])
	assert.Equal(t, uint16(0x202), core.State().PC)
}

func TestRun_CountsFrames(t *testing.T) {
	// CLS; DRW V0, V0, 1; JP $200
	core := newCore(t, 0x00E0, 0xD001, 0x1200)
	r := New(log.NewTestLogger(t))

	stats, err := r.Run(context.Background(), core, runOptions(9, 600))
	assert.NoError(t, err)
	assert.Equal(t, uint64(6), stats.Frames)
}

func TestRun_Cancelled(t *testing.T) {
	core := newCore(t, 0x1200)
	r := New(log.NewTestLogger(t))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	stats, err := r.Run(ctx, core, runOptions(0, 600))
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, uint64(0), stats.Cycles)
}

func TestRun_ExecutionError(t *testing.T) {
	core := newCore(t, 0x2200)
	r := New(log.NewTestLogger(t))

	stats, err := r.Run(context.Background(), core, runOptions(100, 600))
	assert.True(t, errors.Is(err, chip8.ErrStackOverflow))
	assert.Equal(t, uint64(chip8.StackSize), stats.Cycles)
	assert.ErrorContains(t, err, "step 16")
}

func TestRun_Realtime(t *testing.T) {
	core := newCore(t, 0x7001, 0x1200)
	r := New(log.NewTestLogger(t))

	opts := runOptions(20, 10000)
	opts.Realtime = true
	opts.Debug = true

	stats, err := r.Run(context.Background(), core, opts)
	assert.NoError(t, err)
	assert.Equal(t, uint64(20), stats.Cycles)
	assert.Equal(t, uint8(10), core.State().V[0])
}

func TestExecute(t *testing.T) {
	dir := t.TempDir()
	romPath := filepath.Join(dir, "glyph.ch8")
	// LD V0, 0; LD F, V0; DRW V0, V0, 5; JP $206
	rom := romBytes(0x6000, 0xF029, 0xD005, 0x1206)
	assert.NoError(t, os.WriteFile(romPath, rom, 0o600))

	opts := runOptions(10, 600)
	opts.Input = romPath
	opts.PNG = filepath.Join(dir, "frame.png")
	opts.ASCII = true
	opts.Debug = true

	var buf bytes.Buffer
	stats, err := New(log.NewTestLogger(t)).Execute(context.Background(), opts, &buf)
	assert.NoError(t, err)
	assert.Equal(t, uint64(10), stats.Cycles)
	assert.Equal(t, uint64(1), stats.Frames)

	lines := strings.Split(buf.String(), "\n")
	assert.True(t, strings.HasPrefix(lines[0], "####...."))
	assert.True(t, strings.HasPrefix(lines[1], "#..#...."))

	info, err := os.Stat(opts.PNG)
	assert.NoError(t, err)
	assert.True(t, info.Size() > 0)
}

func TestExecute_MissingROM(t *testing.T) {
	opts := runOptions(10, 600)
	opts.Input = filepath.Join(t.TempDir(), "missing.ch8")

	var buf bytes.Buffer
	_, err := New(log.NewTestLogger(t)).Execute(context.Background(), opts, &buf)
	assert.ErrorContains(t, err, "loading rom")
	assert.Equal(t, 0, buf.Len())
}

func TestExecute_ROMTooLarge(t *testing.T) {
	romPath := filepath.Join(t.TempDir(), "large.ch8")
	assert.NoError(t, os.WriteFile(romPath, make([]byte, chip8.MaxROMSize+1), 0o600))

	opts := runOptions(10, 600)
	opts.Input = romPath

	var buf bytes.Buffer
	_, err := New(log.NewTestLogger(t)).Execute(context.Background(), opts, &buf)
	assert.True(t, errors.Is(err, chip8.ErrROMTooLarge))
}
