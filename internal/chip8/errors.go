package chip8

import "fmt"

// Sentinel errors returned by the interpreter. Wrap with fmt.Errorf and
// %w where extra context (opcode, address) is useful, and match them with
// errors.Is at the call site.
var (
	// ErrStackUnderflow is returned by 00EE (RET) against an empty stack.
	ErrStackUnderflow = fmt.Errorf("chip8: return instruction with empty stack")

	// ErrProgramCounterOutOfBounds is returned by ExecuteCycle when pc would
	// read past the end of memory, and by DXYN when a sprite row fetch would.
	ErrProgramCounterOutOfBounds = fmt.Errorf("chip8: program counter out of bounds")

	// ErrRomTooLarge is returned by LoadROM when the ROM doesn't fit
	// between 0x200 and the end of memory.
	ErrRomTooLarge = fmt.Errorf("chip8: rom too large")

	// ErrInvalidArgument is returned by the headless driver for
	// non-positive max cycles or clock speeds.
	ErrInvalidArgument = fmt.Errorf("chip8: invalid argument")
)

// InvalidOpcodeError reports an opcode the decoder doesn't recognize.
type InvalidOpcodeError struct {
	Opcode uint16
}

func (e *InvalidOpcodeError) Error() string {
	return fmt.Sprintf("chip8: invalid opcode: 0x%04X", e.Opcode)
}

func invalidOpcode(opcode uint16) error {
	return &InvalidOpcodeError{Opcode: opcode}
}
