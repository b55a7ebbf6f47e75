package chip8

import (
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

type fixedRandom uint8

func (r fixedRandom) Uint8() uint8 {
	return uint8(r)
}

// newTestChip8 returns a core with the given instructions loaded at ProgramStart.
func newTestChip8(t *testing.T, opcodes ...uint16) *Chip8 {
	t.Helper()

	c := New(WithRandom(fixedRandom(0xFF)), WithLogger(log.NewTestLogger(t)))
	rom := make([]byte, 0, len(opcodes)*opcodeSize)
	for _, op := range opcodes {
		rom = append(rom, byte(op>>8), byte(op))
	}
	_, err := c.LoadROM(rom)
	assert.NoError(t, err)
	return c
}

// step executes the given number of instructions and fails on errors.
func step(t *testing.T, c *Chip8, count int) {
	t.Helper()
	for range count {
		assert.NoError(t, c.Step())
	}
}

func TestNew(t *testing.T) {
	c := New()

	fontTable := Font()
	assert.Equal(t, fontTable[:], c.memory[FontStart:FontStart+fontSize])
	assert.Equal(t, byte(0xF0), c.memory[0x050])
	assert.Equal(t, byte(0x80), c.memory[0x09F])

	for address, value := range c.memory {
		if address >= FontStart && address < FontStart+fontSize {
			continue
		}
		assert.Equal(t, byte(0), value)
	}

	state := c.State()
	assert.Equal(t, [RegisterCount]uint8{}, state.V)
	assert.Equal(t, [StackSize]uint16{}, state.Stack)
	assert.Equal(t, uint16(ProgramStart), state.PC)
	assert.Equal(t, uint8(0), state.SP)
	assert.Equal(t, uint16(0), state.Index)
	assert.Equal(t, uint8(0), state.DelayTimer)
	assert.Equal(t, uint8(0), state.SoundTimer)
	assert.Equal(t, Frame{}, c.Framebuffer())
	assert.False(t, c.Redraw())
	assert.NotNil(t, c.random)
}

func TestNew_Options(t *testing.T) {
	quirks := Quirks{CompareRegisterIndices: true}
	c := New(WithQuirks(quirks), WithRandom(fixedRandom(7)))

	assert.Equal(t, quirks, c.quirks)
	assert.Equal(t, uint8(7), c.random.Uint8())
}

func TestWithSeed(t *testing.T) {
	c1 := New(WithSeed(42))
	c2 := New(WithSeed(42))

	for range 32 {
		assert.Equal(t, c1.random.Uint8(), c2.random.Uint8())
	}
}

func TestLoadROM(t *testing.T) {
	c := New()
	rom := []byte{0xA2, 0x2A, 0x60, 0x0C, 0xD0, 0x15}

	loaded, err := c.LoadROM(rom)
	assert.NoError(t, err)
	assert.Equal(t, rom, loaded)
	assert.Equal(t, rom, c.memory[ProgramStart:ProgramStart+len(rom)])
	assert.Equal(t, byte(0), c.memory[ProgramStart+len(rom)])
	assert.Equal(t, uint16(ProgramStart), c.pc)
}

func TestLoadROM_FullSize(t *testing.T) {
	c := New()
	rom := make([]byte, MaxROMSize)
	rom[len(rom)-1] = 0xAB

	_, err := c.LoadROM(rom)
	assert.NoError(t, err)
	assert.Equal(t, byte(0xAB), c.memory[MaxAddress])
}

func TestLoadROM_TooLarge(t *testing.T) {
	c := New()
	rom := make([]byte, MaxROMSize+1)
	for i := range rom {
		rom[i] = 0xEE
	}

	loaded, err := c.LoadROM(rom)
	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrROMTooLarge))
	assert.Nil(t, loaded)
	assert.Equal(t, byte(0), c.memory[ProgramStart])
}

func TestReset(t *testing.T) {
	c := newTestChip8(t, 0x6A05, 0xA300, 0x00E0)
	c.SetKeys([KeyCount]bool{true})
	c.delayTimer = 10
	step(t, c, 3)

	c.Reset()

	state := c.State()
	assert.Equal(t, uint16(ProgramStart), state.PC)
	assert.Equal(t, uint8(0), state.V[0xA])
	assert.Equal(t, uint16(0), state.Index)
	assert.Equal(t, uint8(0), state.DelayTimer)
	assert.Equal(t, [KeyCount]bool{}, c.Keys())
	assert.Equal(t, byte(0), c.memory[ProgramStart])
	assert.Equal(t, byte(0xF0), c.memory[FontStart])
	assert.False(t, c.Redraw())
	assert.NotNil(t, c.logger)
}

func TestReadMemory(t *testing.T) {
	c := newTestChip8(t, 0x1234)

	value, err := c.ReadMemory(ProgramStart + 1)
	assert.NoError(t, err)
	assert.Equal(t, byte(0x34), value)

	_, err = c.ReadMemory(MaxAddress + 1)
	assert.True(t, errors.Is(err, ErrMemoryOutOfRange))
}

func TestPeekOpcode(t *testing.T) {
	c := newTestChip8(t, 0xA22A)

	opcode, err := c.PeekOpcode()
	assert.NoError(t, err)
	assert.Equal(t, uint16(0xA22A), opcode)
	assert.Equal(t, uint16(ProgramStart), c.pc)
}
