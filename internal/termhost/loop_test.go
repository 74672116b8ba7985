package termhost

import (
	"testing"

	"github.com/coredump8/chip8vm/internal/chip8"
)

func newTermLoopState(t *testing.T) *chip8.State {
	t.Helper()
	s, err := chip8.NewState("")
	if err != nil {
		t.Fatalf("NewState: %v", err)
	}
	return s
}

func TestLoopPublishesOnNextClearAfterDraw(t *testing.T) {
	s := newTermLoopState(t)
	l := NewLoop(s, chip8.OriginalQuirks, nil, 0, 0)

	s.Op = 0x00E0
	l.observeOpcode(s.PC)

	s.ScreenBuffer[0] = 1
	s.Op = 0xD001
	l.observeOpcode(s.PC)
	if l.frontBuffer[0] != 0 {
		t.Fatal("draw mid-frame should not publish yet")
	}

	s.Memory[s.PC] = 0x00
	s.Memory[s.PC+1] = 0xE0
	l.maybePublishBeforeClear()
	if l.frontBuffer[0] != 1 {
		t.Fatal("expected publish right before the next CLS")
	}
}

func TestLoopPublishesImmediatelyForNoClsRoms(t *testing.T) {
	s := newTermLoopState(t)
	l := NewLoop(s, chip8.OriginalQuirks, nil, 0, 0)

	s.ScreenBuffer[5] = 1
	s.Op = 0xD0F5
	l.observeOpcode(s.PC)

	if l.frontBuffer[5] != 1 {
		t.Fatal("ROMs that never CLS should publish every draw immediately")
	}
}

func TestNewLoopDefaultsRates(t *testing.T) {
	s := newTermLoopState(t)
	l := NewLoop(s, chip8.OriginalQuirks, nil, 0, 0)
	if l.CPUHz != 700 || l.TargetFPS != 30 {
		t.Fatalf("expected default rates 700/30, got %d/%d", l.CPUHz, l.TargetFPS)
	}
}
