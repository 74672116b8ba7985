package termhost

import (
	"fmt"

	"github.com/nsf/termbox-go"

	"github.com/coredump8/chip8vm/internal/chip8"
)

// Display renders a CHIP-8 framebuffer as a grid of termbox cells, two
// columns per pixel so the 64x32 buffer reads at roughly the right
// aspect ratio in a terminal's taller-than-wide cells.
type Display struct {
	fg, bg termbox.Attribute
}

// NewDisplay initializes termbox and returns a Display using the given
// foreground/background colors.
func NewDisplay(fg, bg termbox.Attribute) (*Display, error) {
	if err := termbox.Init(); err != nil {
		return nil, fmt.Errorf("termhost: initializing termbox: %w", err)
	}
	termbox.SetOutputMode(termbox.OutputNormal)
	return &Display{fg: fg, bg: bg}, nil
}

// Close tears down termbox. Safe to call once after Render stops being
// called.
func (d *Display) Close() {
	termbox.Close()
}

// Render draws buffer to the terminal and flushes it.
func (d *Display) Render(buffer [chip8.ScreenWidth * chip8.ScreenHeight]byte) {
	termbox.Clear(d.bg, d.bg)

	for y := 0; y < chip8.ScreenHeight; y++ {
		for x := 0; x < chip8.ScreenWidth; x++ {
			if buffer[x+y*chip8.ScreenWidth] == 0 {
				continue
			}
			// Two cells per pixel column keeps roughly square pixels.
			termbox.SetCell(x*2, y, ' ', d.fg, d.fg)
			termbox.SetCell(x*2+1, y, ' ', d.fg, d.fg)
		}
	}

	termbox.Flush()
}
