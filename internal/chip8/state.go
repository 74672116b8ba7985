// Package chip8 implements a deterministic CHIP-8 instruction-set
// interpreter: a fixed-size machine State, a configurable Quirks profile,
// and the ExecuteCycle/TickTimers pair a host loop drives at its own
// pace. The interpreter is strictly sequential — one cycle at a time
// against a single owning State — and has no notion of a display, input
// device, or audio device beyond the KeyInputs array and an optional beep
// callback; those are external collaborators (see internal/host and
// internal/termhost).
package chip8

import (
	"math/rand"
	"os"
)

func defaultRandByte() byte {
	return byte(rand.Intn(256))
}

const (
	memorySize    = 4096
	registerCount = 16
	keyCount      = 16

	// ScreenWidth and ScreenHeight are the CHIP-8 framebuffer dimensions.
	ScreenWidth  = 64
	ScreenHeight = 32

	// ProgramStart is the conventional load address for CHIP-8 ROMs.
	ProgramStart = 0x200

	// MaxROMSize is the largest ROM that fits between ProgramStart and the
	// end of memory.
	MaxROMSize = memorySize - ProgramStart
)

// State is the complete machine state of one CHIP-8 run. Every
// interpreter entry point takes an explicit *State; there is no
// process-wide singleton.
type State struct {
	Memory    [memorySize]byte
	Registers [registerCount]byte
	Index     uint16
	PC        uint16
	Stack     []uint16

	DelayTimer byte
	SoundTimer byte

	KeyInputs [keyCount]bool

	ScreenBuffer [ScreenWidth * ScreenHeight]byte
	ShouldDraw   bool

	Exited bool

	// Op is the opcode most recently executed by ExecuteCycle, for
	// observability (host draw-publish heuristics, debugging).
	Op uint16

	// ROMPath is the path the ROM was loaded from, if any. It is kept
	// only to support resetting a State back to its freshly-loaded form.
	ROMPath string

	// RandByte supplies the random source for CXKK. It defaults to an
	// unseeded math/rand-backed generator; tests may replace it with a
	// deterministic sequence.
	RandByte func() byte

	// Logger, when non-nil and enabled, receives a trace line from
	// ExecuteCycle for every instruction fetched. Reset never touches it.
	Logger *OpcodeLogger
}

// NewState allocates a State and resets it, loading romPath if non-empty.
func NewState(romPath string) (*State, error) {
	s := &State{}
	if err := s.Reset(romPath); err != nil {
		return nil, err
	}
	return s, nil
}

// Reset zeroes every field, writes the font set, sets PC to ProgramStart,
// and — if romPath is non-empty, or a ROM was previously loaded and
// romPath is empty — reloads the ROM from ROMPath. This is the only way
// Exited is ever cleared.
func (s *State) Reset(romPath string) error {
	s.Memory = [memorySize]byte{}
	s.Registers = [registerCount]byte{}
	s.Index = 0
	s.PC = ProgramStart
	s.Stack = nil
	s.DelayTimer = 0
	s.SoundTimer = 0
	s.KeyInputs = [keyCount]bool{}
	s.ClearDisplay()
	s.ShouldDraw = false
	s.Exited = false
	s.Op = 0
	if s.RandByte == nil {
		s.RandByte = defaultRandByte
	}

	copy(s.Memory[:len(fontSet)], fontSet[:])

	if romPath != "" {
		s.ROMPath = romPath
	}
	if s.ROMPath != "" {
		return s.LoadROM(s.ROMPath)
	}
	return nil
}

// ClearDisplay zeroes the framebuffer and raises ShouldDraw. Used by the
// 00E0 opcode and by Reset (which then lowers ShouldDraw again).
func (s *State) ClearDisplay() {
	s.ScreenBuffer = [ScreenWidth * ScreenHeight]byte{}
	s.ShouldDraw = true
}

// LoadROM reads path and copies its contents into memory starting at
// ProgramStart. A ROM longer than MaxROMSize is rejected with
// ErrRomTooLarge.
func (s *State) LoadROM(path string) error {
	rom, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if len(rom) > MaxROMSize {
		return ErrRomTooLarge
	}
	copy(s.Memory[ProgramStart:], rom)
	s.ROMPath = path
	return nil
}

// SetKey updates the pressed state of a single keypad entry. It is a
// no-op for out-of-range indices. The host calls this between cycles;
// within a cycle the interpreter treats KeyInputs as immutable.
func (s *State) SetKey(index int, pressed bool) {
	if index < 0 || index >= keyCount {
		return
	}
	s.KeyInputs[index] = pressed
}

// firstPressedKey returns the lowest-indexed pressed key, or -1 if none
// are pressed.
func (s *State) firstPressedKey() int {
	for i, pressed := range s.KeyInputs {
		if pressed {
			return i
		}
	}
	return -1
}
