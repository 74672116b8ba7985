// Package host is the GUI front end for the CHIP-8 interpreter: a
// pixelgl window, a key map, and a clock-driven loop that paces
// ExecuteCycle and TickTimers against wall-clock time. None of it is
// part of interpreter correctness (see chip8.ExecuteCycle/TickTimers for
// that); it is the external collaborator the spec describes in §4.7.
package host

import (
	"fmt"
	"time"

	"github.com/faiface/pixel"
	"github.com/faiface/pixel/imdraw"
	"github.com/faiface/pixel/pixelgl"
	"golang.org/x/image/colornames"

	"github.com/coredump8/chip8vm/internal/chip8"
)

const (
	windowWidth  float64 = 1024
	windowHeight float64 = 768
)

// Window embeds a pixelgl window, a keymap of CHIP-8 hex digit -> pixelgl
// key, and per-key repeat tickers so a held key keeps registering presses
// the way a real keypad would.
type Window struct {
	*pixelgl.Window
	KeyMap   map[int]pixelgl.Button
	KeysDown [16]*time.Ticker
}

// keyRepeatInterval matches the teacher's repeat cadence for held keys.
const keyRepeatInterval = time.Second / 5

// NewWindow creates a pixelgl window sized for the given per-pixel scale
// and returns a Window with the standard CHIP-8 COSMAC VIP key mapping.
func NewWindow(scale int) (*Window, error) {
	width := float64(chip8.ScreenWidth * scale)
	height := float64(chip8.ScreenHeight * scale)
	if scale <= 0 {
		width, height = windowWidth, windowHeight
	}

	cfg := pixelgl.WindowConfig{
		Title:  "chip8vm",
		Bounds: pixel.R(0, 0, width, height),
		VSync:  true,
	}
	w, err := pixelgl.NewWindow(cfg)
	if err != nil {
		return nil, fmt.Errorf("host: error creating window: %w", err)
	}

	keyMap := map[int]pixelgl.Button{
		0x1: pixelgl.Key1, 0x2: pixelgl.Key2,
		0x3: pixelgl.Key3, 0xC: pixelgl.Key4,
		0x4: pixelgl.KeyQ, 0x5: pixelgl.KeyW,
		0x6: pixelgl.KeyE, 0xD: pixelgl.KeyR,
		0x7: pixelgl.KeyA, 0x8: pixelgl.KeyS,
		0x9: pixelgl.KeyD, 0xE: pixelgl.KeyF,
		0xA: pixelgl.KeyZ, 0x0: pixelgl.KeyX,
		0xB: pixelgl.KeyC, 0xF: pixelgl.KeyV,
	}

	return &Window{
		Window:   w,
		KeyMap:   keyMap,
		KeysDown: [16]*time.Ticker{},
	}, nil
}

// DrawGraphics renders a CHIP-8 framebuffer (row-major, origin top-left)
// as a grid of filled rectangles.
func (w *Window) DrawGraphics(buffer [chip8.ScreenWidth * chip8.ScreenHeight]byte) {
	w.Clear(colornames.Black)

	imDraw := imdraw.New(nil)
	imDraw.Color = pixel.RGB(1, 1, 1)

	bounds := w.Bounds()
	cellWidth := bounds.W() / float64(chip8.ScreenWidth)
	cellHeight := bounds.H() / float64(chip8.ScreenHeight)

	for y := 0; y < chip8.ScreenHeight; y++ {
		for x := 0; x < chip8.ScreenWidth; x++ {
			if buffer[x+y*chip8.ScreenWidth] == 0 {
				continue
			}
			// Window y grows upward; the framebuffer's y grows downward.
			flippedY := chip8.ScreenHeight - 1 - y
			imDraw.Push(pixel.V(cellWidth*float64(x), cellHeight*float64(flippedY)))
			imDraw.Push(pixel.V(cellWidth*float64(x)+cellWidth, cellHeight*float64(flippedY)+cellHeight))
			imDraw.Rectangle(0)
		}
	}

	imDraw.Draw(w)
	w.Update()
}

// HandleKeyInput polls pixelgl's edge-triggered key state and applies it
// to state's keypad, including software key-repeat for held keys.
func (w *Window) HandleKeyInput(state *chip8.State) {
	for index, key := range w.KeyMap {
		switch {
		case w.JustReleased(key):
			if w.KeysDown[index] != nil {
				w.KeysDown[index].Stop()
				w.KeysDown[index] = nil
			}
			state.SetKey(index, false)
		case w.JustPressed(key):
			if w.KeysDown[index] == nil {
				w.KeysDown[index] = time.NewTicker(keyRepeatInterval)
			}
			state.SetKey(index, true)
		}

		if w.KeysDown[index] == nil {
			continue
		}

		select {
		case <-w.KeysDown[index].C:
			state.SetKey(index, true)
		default:
		}
	}
}
