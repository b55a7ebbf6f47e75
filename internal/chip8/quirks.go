package chip8

// Quirks toggles behavior that differs between interpreters. The zero value
// selects the standard CHIP-8 semantics.
type Quirks struct {
	// CompareRegisterIndices makes 9XY0 skip when the register indexes x and y
	// differ instead of comparing the register values.
	CompareRegisterIndices bool

	// LegacyCollision makes DXYN test the masked sprite bit against the
	// literal value 1, which only detects collisions in the rightmost
	// sprite column.
	LegacyCollision bool
}
