package chip8

import (
	"fmt"

	"github.com/retroenv/retrogolib/log"
)

// CHIP-8 memory layout constants.
//
// CHIP-8 memory map (4KB total):
//
//	0x000-0x04F: Unused interpreter area
//	0x050-0x09F: Font table (16 glyphs of 5 bytes)
//	0x200-0xFFF: User program space (3584 bytes)
//
// The display buffer (64×32 pixels) and stack are maintained
// separately from the 4KB main memory address space.
const (
	// MemorySize is the size of the addressable memory in bytes.
	MemorySize = 0x1000

	// MaxAddress is the highest valid address in CHIP-8 memory space.
	MaxAddress = MemorySize - 1

	// ProgramStart is the memory address where CHIP-8 programs are loaded
	// and where execution begins.
	ProgramStart = 0x200

	// MaxROMSize is the largest program that fits between ProgramStart and MaxAddress.
	MaxROMSize = MemorySize - ProgramStart

	// RegisterCount is the number of general purpose registers V0-VF.
	RegisterCount = 16

	// StackSize is the number of return addresses the call stack can hold.
	StackSize = 16

	// KeyCount is the number of keys on the hexadecimal keypad.
	KeyCount = 16

	// opcodeSize is the size of CHIP-8 instructions in bytes.
	opcodeSize = 2

	// flagRegister is the index of VF, the carry, borrow and collision flag.
	flagRegister = 0xF
)

// State is a snapshot of the register file, stack and timers.
type State struct {
	V          [RegisterCount]uint8
	Index      uint16
	PC         uint16
	SP         uint8
	Stack      [StackSize]uint16
	DelayTimer uint8
	SoundTimer uint8
	Opcode     uint16
}

// Chip8 is a single emulated CHIP-8 session. It is not safe for concurrent use,
// the caller owns the instruction cycle and the timer tick.
type Chip8 struct {
	memory [MemorySize]byte
	v      [RegisterCount]uint8
	index  uint16
	pc     uint16
	stack  [StackSize]uint16
	sp     uint8

	delayTimer uint8
	soundTimer uint8

	video  Frame
	redraw bool

	keys [KeyCount]bool

	// opcode holds the most recently fetched instruction.
	opcode uint16

	random RandomSource
	quirks Quirks
	logger *log.Logger
}

// Option configures a Chip8 instance on creation.
type Option func(*Chip8)

// WithRandom sets the source of random bytes used by the RND instruction.
func WithRandom(source RandomSource) Option {
	return func(c *Chip8) {
		c.random = source
	}
}

// WithSeed uses a deterministic random source created from the given seed.
func WithSeed(seed uint64) Option {
	return func(c *Chip8) {
		c.random = NewSeededRandom(seed)
	}
}

// WithQuirks enables the given interpreter quirks.
func WithQuirks(quirks Quirks) Option {
	return func(c *Chip8) {
		c.quirks = quirks
	}
}

// WithLogger sets a logger that receives diagnostics like unknown opcodes.
func WithLogger(logger *log.Logger) Option {
	return func(c *Chip8) {
		c.logger = logger
	}
}

// New returns a new initialized CHIP-8 core with the font table loaded
// and the program counter pointing at ProgramStart.
func New(opts ...Option) *Chip8 {
	c := &Chip8{}
	for _, opt := range opts {
		opt(c)
	}
	if c.random == nil {
		c.random = NewRandom()
	}
	c.Reset()
	return c
}

// Reset restores the power-on state. Configured options are kept.
func (c *Chip8) Reset() {
	c.memory = [MemorySize]byte{}
	copy(c.memory[FontStart:], font[:])

	c.v = [RegisterCount]uint8{}
	c.index = 0
	c.pc = ProgramStart
	c.stack = [StackSize]uint16{}
	c.sp = 0
	c.delayTimer = 0
	c.soundTimer = 0
	c.video = Frame{}
	c.redraw = false
	c.keys = [KeyCount]bool{}
	c.opcode = 0
}

// LoadROM copies the program into memory starting at ProgramStart and
// returns the loaded bytes. Programs that do not fit into memory are
// rejected and leave memory untouched.
func (c *Chip8) LoadROM(data []byte) ([]byte, error) {
	if len(data) > MaxROMSize {
		return nil, fmt.Errorf("%w: %d bytes, maximum is %d", ErrROMTooLarge, len(data), MaxROMSize)
	}
	copy(c.memory[ProgramStart:], data)
	return data, nil
}

// State returns a snapshot of the registers, stack and timers.
func (c *Chip8) State() State {
	return State{
		V:          c.v,
		Index:      c.index,
		PC:         c.pc,
		SP:         c.sp,
		Stack:      c.stack,
		DelayTimer: c.delayTimer,
		SoundTimer: c.soundTimer,
		Opcode:     c.opcode,
	}
}

// ReadMemory returns the byte at the given address.
func (c *Chip8) ReadMemory(address uint16) (byte, error) {
	if address > MaxAddress {
		return 0, fmt.Errorf("%w: address $%04X", ErrMemoryOutOfRange, address)
	}
	return c.memory[address], nil
}

// PeekOpcode returns the instruction word at the program counter without
// executing it.
func (c *Chip8) PeekOpcode() (uint16, error) {
	if int(c.pc)+1 > MaxAddress {
		return 0, fmt.Errorf("%w: fetch at $%04X", ErrMemoryOutOfRange, c.pc)
	}
	return uint16(c.memory[c.pc])<<8 | uint16(c.memory[c.pc+1]), nil
}
