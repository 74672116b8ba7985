package host

import (
	"fmt"
	"os"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
)

// BeepPlayer decodes a beep sample once and plays it on demand. It
// generalizes the teacher's VM.ManageAudio: rather than panicking when
// the asset is missing, NewBeepPlayer returns an error the caller can
// choose to ignore, falling back to a no-op beep callback — a run
// without audio assets on disk must still execute correctly, since audio
// is explicitly scoped down to "beep now", not a required feature.
type BeepPlayer struct {
	streamer beep.StreamSeekCloser
	format   beep.Format
}

// NewBeepPlayer opens and decodes an mp3 beep sample and initializes the
// speaker for playback at the sample's rate.
func NewBeepPlayer(assetPath string) (*BeepPlayer, error) {
	f, err := os.Open(assetPath)
	if err != nil {
		return nil, fmt.Errorf("host: opening beep asset: %w", err)
	}

	streamer, format, err := mp3.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("host: decoding beep asset: %w", err)
	}

	if err := speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/10)); err != nil {
		streamer.Close()
		return nil, fmt.Errorf("host: initializing speaker: %w", err)
	}

	return &BeepPlayer{streamer: streamer, format: format}, nil
}

// Callback returns a func() suitable for passing to chip8.TickTimers as
// its beep argument.
func (b *BeepPlayer) Callback() func() {
	return func() {
		if err := b.streamer.Seek(0); err != nil {
			return
		}
		speaker.Play(b.streamer)
	}
}

// Close releases the decoder.
func (b *BeepPlayer) Close() error {
	return b.streamer.Close()
}

// NoopBeep is used when no beep asset is available; it satisfies the
// chip8.TickTimers beep callback signature without making any sound.
func NoopBeep() {}
