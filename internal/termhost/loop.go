package termhost

import (
	"time"

	"github.com/coredump8/chip8vm/internal/chip8"
)

// Loop paces ExecuteCycle/TickTimers for the terminal host. It runs the
// same draw-publish heuristic as internal/host.Loop (publish on the
// next clear once a draw has happened since the last one; publish
// immediately for ROMs that never clear; publish when blocked on
// LD Vx, K right after a draw) so both front ends animate identically,
// independent of which one is actually presenting pixels.
type Loop struct {
	State  *chip8.State
	Quirks chip8.Quirks
	Beep   func()

	CPUHz     int
	TargetFPS int

	// MaxCycles caps the total number of cycles Run will execute before
	// returning, regardless of ROM behavior. Zero means unbounded.
	MaxCycles int

	totalCycles int

	frontBuffer               [chip8.ScreenWidth * chip8.ScreenHeight]byte
	frameInProgressAfterClear bool
	hasDrawnSinceClear        bool
}

// NewLoop builds a Loop, defaulting CPUHz/TargetFPS when zero.
func NewLoop(state *chip8.State, quirks chip8.Quirks, beep func(), cpuHz, targetFPS int) *Loop {
	if cpuHz <= 0 {
		cpuHz = 700
	}
	if targetFPS <= 0 {
		targetFPS = 30
	}
	if beep == nil {
		beep = func() {}
	}
	return &Loop{
		State:       state,
		Quirks:      quirks,
		Beep:        beep,
		CPUHz:       cpuHz,
		TargetFPS:   targetFPS,
		frontBuffer: state.ScreenBuffer,
	}
}

// Run drives the interpreter until the ROM executes EXIT or the keypad
// reports a quit. render is called once per host frame with the
// published framebuffer.
func (l *Loop) Run(keypad *Keypad, render func([chip8.ScreenWidth * chip8.ScreenHeight]byte)) error {
	cycleInterval := time.Second / time.Duration(l.CPUHz)
	timerInterval := time.Second / 60
	maxCyclesPerFrame := l.CPUHz / l.TargetFPS * 3
	if maxCyclesPerFrame < 1 {
		maxCyclesPerFrame = 1
	}

	var accumulated, timerAccumulated time.Duration
	previousTick := time.Now()

	frameInterval := time.Second / time.Duration(l.TargetFPS)
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	for range ticker.C {
		if l.State.Exited {
			return nil
		}
		if l.MaxCycles > 0 && l.totalCycles >= l.MaxCycles {
			return nil
		}

		if err := keypad.Apply(l.State); err != nil {
			return err
		}

		now := time.Now()
		frameDt := now.Sub(previousTick)
		if frameDt > 100*time.Millisecond {
			frameDt = 100 * time.Millisecond
		}
		previousTick = now
		accumulated += frameDt
		timerAccumulated += frameDt

		cyclesRun := 0
		for accumulated >= cycleInterval && cyclesRun < maxCyclesPerFrame && !l.State.Exited {
			if l.MaxCycles > 0 && l.totalCycles >= l.MaxCycles {
				break
			}

			l.maybePublishBeforeClear()

			pcBefore := l.State.PC
			if err := chip8.ExecuteCycle(l.State, l.Quirks); err != nil {
				return err
			}
			l.observeOpcode(pcBefore)

			accumulated -= cycleInterval
			cyclesRun++
			l.totalCycles++
		}

		for timerAccumulated >= timerInterval && !l.State.Exited {
			chip8.TickTimers(l.State, l.Beep)
			timerAccumulated -= timerInterval
		}

		keypad.ClearPulses(l.State)

		render(l.frontBuffer)
		l.State.ShouldDraw = false

		if l.State.Exited {
			return nil
		}
	}

	return nil
}

func (l *Loop) maybePublishBeforeClear() {
	s := l.State
	if int(s.PC) > len(s.Memory)-2 {
		return
	}
	next := uint16(s.Memory[s.PC])<<8 | uint16(s.Memory[s.PC+1])
	if next == 0x00E0 && l.hasDrawnSinceClear {
		l.frontBuffer = s.ScreenBuffer
		l.hasDrawnSinceClear = false
	}
}

func (l *Loop) observeOpcode(pcBefore uint16) {
	s := l.State

	if s.Op == 0x00E0 {
		l.frameInProgressAfterClear = true
		l.hasDrawnSinceClear = false
	}

	if s.Op&0xF000 == 0xD000 {
		if l.frameInProgressAfterClear {
			l.hasDrawnSinceClear = true
		} else {
			l.frontBuffer = s.ScreenBuffer
		}
	}

	if s.Op&0xF0FF == 0xF00A && s.PC == pcBefore && l.hasDrawnSinceClear {
		l.frontBuffer = s.ScreenBuffer
		l.hasDrawnSinceClear = false
	}
}
