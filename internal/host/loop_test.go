package host

import (
	"testing"

	"github.com/coredump8/chip8vm/internal/chip8"
)

func newLoopState(t *testing.T) *chip8.State {
	t.Helper()
	s, err := chip8.NewState("")
	if err != nil {
		t.Fatalf("NewState: %v", err)
	}
	return s
}

func TestLoopPublishesOnNextClearAfterDraw(t *testing.T) {
	s := newLoopState(t)
	l := NewLoop(s, chip8.OriginalQuirks, nil, 0, 0)

	s.Op = 0x00E0
	l.observeOpcode(s.PC)
	if l.hasDrawnSinceClear {
		t.Fatal("CLS should not itself count as a draw")
	}

	s.ScreenBuffer[0] = 1
	s.Op = 0xD001
	l.observeOpcode(s.PC)
	if !l.hasDrawnSinceClear {
		t.Fatal("draw after CLS should mark hasDrawnSinceClear")
	}
	if l.frontBuffer[0] != 0 {
		t.Fatal("front buffer should not update mid-frame, only at the next CLS boundary")
	}

	// Simulate fetching CLS as the next instruction.
	s.Memory[s.PC] = 0x00
	s.Memory[s.PC+1] = 0xE0
	l.maybePublishBeforeClear()
	if l.frontBuffer[0] != 1 {
		t.Fatal("expected front buffer to publish right before the next CLS")
	}
	if l.hasDrawnSinceClear {
		t.Fatal("hasDrawnSinceClear should reset after publishing")
	}
}

func TestLoopPublishesImmediatelyForNoClsRoms(t *testing.T) {
	s := newLoopState(t)
	l := NewLoop(s, chip8.OriginalQuirks, nil, 0, 0)

	s.ScreenBuffer[5] = 1
	s.Op = 0xD0F5
	l.observeOpcode(s.PC)

	if l.frontBuffer[5] != 1 {
		t.Fatal("ROMs that never CLS should publish every draw immediately")
	}
}

func TestLoopPublishesWhenBlockedOnKeyAfterDraw(t *testing.T) {
	s := newLoopState(t)
	l := NewLoop(s, chip8.OriginalQuirks, nil, 0, 0)

	s.Op = 0x00E0
	l.observeOpcode(s.PC)

	s.ScreenBuffer[9] = 1
	s.Op = 0xD009
	l.observeOpcode(s.PC)
	if l.frontBuffer[9] != 0 {
		t.Fatal("draw inside a CLS-framed sequence should not publish yet")
	}

	pcBefore := s.PC
	s.Op = 0xF00A
	l.observeOpcode(pcBefore)
	if l.frontBuffer[9] != 1 {
		t.Fatal("blocking on LD Vx, K after a draw should publish the pending frame")
	}
}

func TestLoopKeyWaitNotBlockedDoesNotPublish(t *testing.T) {
	s := newLoopState(t)
	l := NewLoop(s, chip8.OriginalQuirks, nil, 0, 0)

	s.Op = 0x00E0
	l.observeOpcode(s.PC)

	s.ScreenBuffer[2] = 1
	s.Op = 0xD002
	l.observeOpcode(s.PC)

	s.Op = 0xF00A
	s.PC += 2 // simulate the key already having been pressed: PC advanced
	l.observeOpcode(s.PC - 2)
	if l.frontBuffer[2] != 0 {
		t.Fatal("FX0A that resolved immediately (pc advanced) should not force a publish")
	}
}

func TestNewLoopDefaultsRates(t *testing.T) {
	s := newLoopState(t)
	l := NewLoop(s, chip8.OriginalQuirks, nil, 0, 0)
	if l.CPUHz != 700 || l.TargetFPS != 60 {
		t.Fatalf("expected default rates 700/60, got %d/%d", l.CPUHz, l.TargetFPS)
	}
	if l.Beep == nil {
		t.Fatal("expected NewLoop to install a non-nil beep callback")
	}
}
