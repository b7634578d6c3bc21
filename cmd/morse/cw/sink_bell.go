//go:build !((linux && cgo) || windows || darwin)

package cw

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/gen2brain/beeep"
)

// AudioBackend names the device sink compiled into this build.
const AudioBackend = "bell"

// BellSink is used where the speaker backend needs cgo that is not available.
// Tones go to the PC speaker through beeep, or to the terminal bell if that fails.
type BellSink struct {
	*Echo
	frequency float64
	bellOnly  bool
}

// OpenDevice returns a BellSink sounding at the renderer's frequency.
func OpenDevice(r *Renderer, echo *Echo) (Sink, error) {
	slog.Warn("audio requires cgo on this platform, falling back to the system beeper")
	return &BellSink{Echo: echo, frequency: r.Config().Frequency}, nil
}

// Play sounds or waits out seg, returning once its full duration has passed.
func (b *BellSink) Play(ctx context.Context, seg Segment) error {
	start := time.Now()
	if !seg.IsGap() {
		b.beep(seg.Duration)
	}
	if rest := seg.Duration - time.Since(start); rest > 0 {
		time.Sleep(rest)
	}
	return nil
}

func (b *BellSink) beep(d time.Duration) {
	if !b.bellOnly {
		err := beeep.Beep(b.frequency, int(d.Milliseconds()))
		if err == nil {
			return
		}
		slog.Debug("beeper unavailable, using terminal bell", "error", err)
		b.bellOnly = true
	}
	_, _ = fmt.Fprint(os.Stderr, "\a")
}
