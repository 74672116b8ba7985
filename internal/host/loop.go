package host

import (
	"time"

	"github.com/coredump8/chip8vm/internal/chip8"
)

// Loop paces ExecuteCycle and TickTimers against wall-clock time and
// decides when the front buffer handed to the window should be
// refreshed. It generalizes the teacher's VM.Run clock (a single
// time.Ticker driving cycle/draw/key/timer steps every tick) into two
// independently-rated clocks, since cpuHz and the 60Hz timer rate are
// not the same thing.
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

// NewLoop builds a Loop for the given state, defaulting CPUHz/TargetFPS
// to the teacher's conventional values when zero.
func NewLoop(state *chip8.State, quirks chip8.Quirks, beep func(), cpuHz, targetFPS int) *Loop {
	if cpuHz <= 0 {
		cpuHz = 700
	}
	if targetFPS <= 0 {
		targetFPS = 60
	}
	if beep == nil {
		beep = NoopBeep
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

// Run drives the interpreter until the window closes, the ROM executes
// EXIT, or isOpen returns false. draw is called once per host frame with
// the published front buffer; pollKeys is called once per host frame to
// update the keypad before cycles run that frame.
func (l *Loop) Run(isOpen func() bool, pollKeys func(), draw func([chip8.ScreenWidth * chip8.ScreenHeight]byte)) error {
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
		if !isOpen() || l.State.Exited {
			return nil
		}
		if l.MaxCycles > 0 && l.totalCycles >= l.MaxCycles {
			return nil
		}

		pollKeys()

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

		draw(l.frontBuffer)
		l.State.ShouldDraw = false

		if l.State.Exited {
			return nil
		}
	}

	return nil
}

// maybePublishBeforeClear publishes the completed frame right before the
// next clear starts a new one, so CLS-framed ROMs (e.g. most Chip-8
// games) animate instead of flickering.
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

// observeOpcode updates the publish-heuristic state machine from the
// instruction that just executed. pcBefore is the PC before that cycle
// ran, used to detect LD Vx, K rewinding the PC to block on a keypress.
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
			// ROMs that never clear the screen still need to animate.
			l.frontBuffer = s.ScreenBuffer
		}
	}

	// A ROM blocked on LD Vx, K right after drawing (title screens) should
	// still publish what it drew, even with no subsequent CLS boundary.
	if s.Op&0xF0FF == 0xF00A && s.PC == pcBefore && l.hasDrawnSinceClear {
		l.frontBuffer = s.ScreenBuffer
		l.hasDrawnSinceClear = false
	}
}
