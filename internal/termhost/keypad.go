// Package termhost is the terminal front end for the CHIP-8 interpreter:
// a termbox-go display and keypad, for running ROMs on machines with no
// GPU available. It mirrors internal/host's structure but renders cells
// instead of pixels.
package termhost

import (
	"errors"

	"github.com/nsf/termbox-go"

	"github.com/coredump8/chip8vm/internal/chip8"
)

// ErrQuit is returned by Keypad.Apply when the escape key is pressed.
var ErrQuit = errors.New("termhost: quit key pressed")

var keyMap = map[rune]int{
	'1': 0x1, '2': 0x2, '3': 0x3, '4': 0xC,
	'q': 0x4, 'w': 0x5, 'e': 0x6, 'r': 0xD,
	'a': 0x7, 's': 0x8, 'd': 0x9, 'f': 0xE,
	'z': 0xA, 'x': 0x0, 'c': 0xB, 'v': 0xF,
}

// Keypad polls termbox key events on its own goroutine and applies the
// pending key presses to a chip8.State's keypad. Unlike the blocking Get
// used for the example's turn-based keyboard read, Apply never blocks:
// it drains every pending event each host frame instead of returning one
// key per call. Keypad keeps no per-key held state of its own.
type Keypad struct {
	events chan termbox.Event
	quit   chan struct{}
}

// NewKeypad starts the termbox event poll goroutine.
func NewKeypad() *Keypad {
	k := &Keypad{
		events: make(chan termbox.Event),
		quit:   make(chan struct{}),
	}
	go k.poll()
	return k
}

func (k *Keypad) poll() {
	for {
		select {
		case <-k.quit:
			return
		default:
		}
		event := termbox.PollEvent()
		select {
		case k.events <- event:
		case <-k.quit:
			return
		}
	}
}

// Close stops the poll goroutine. It does not unblock an in-flight
// termbox.PollEvent; the goroutine exits on the event after that.
func (k *Keypad) Close() {
	close(k.quit)
}

// Apply drains any pending termbox key events and applies them to state.
// It returns ErrQuit if the escape key was seen. Only key press events
// are modeled; termbox's default input mode has no key-release events,
// so a pressed key is treated as a pulse that lasts until the next
// ClearPulses rather than as held-down state.
func (k *Keypad) Apply(state *chip8.State) error {
	for {
		select {
		case event := <-k.events:
			if event.Type != termbox.EventKey {
				continue
			}
			if event.Key == termbox.KeyEsc {
				return ErrQuit
			}
			if index, ok := keyMap[event.Ch]; ok {
				state.SetKey(index, true)
			}
		default:
			return nil
		}
	}
}

// ClearPulses releases all 16 keys. Loop.Run calls it once per host
// frame, so a key pulse set by Apply stays pressed for every cycle run in
// that frame.
func (k *Keypad) ClearPulses(state *chip8.State) {
	for i := 0; i < 16; i++ {
		state.SetKey(i, false)
	}
}
