package cw

import (
	"fmt"
	"math"
	"time"
)

const (
	DefaultSampleRate = 44100
	DefaultFrequency  = 700 // Hz - standard morse tone
	DefaultAmplitude  = 0.5 // half of full scale, well clear of clipping
)

// Segment is one rendered event: a block of mono samples for a tone,
// or a pure delay (nil Samples) for a gap.
type Segment struct {
	Kind     EventKind
	Duration time.Duration
	Samples  []float64
}

// IsGap reports whether the segment is silence.
func (s Segment) IsGap() bool {
	return !s.Kind.IsTone()
}

// RendererConfig holds the audio parameters for tone synthesis.
type RendererConfig struct {
	Frequency  float64 // tone pitch in Hz
	SampleRate int     // samples per second
	Amplitude  float64 // peak level in (0, 1], 0 means DefaultAmplitude
	Ramp       float64 // fade in/out length in seconds, 0 disables shaping
}

// Renderer synthesizes sine tones for tone events.
type Renderer struct {
	cfg RendererConfig
}

// NewRenderer validates cfg and returns a Renderer for it.
func NewRenderer(cfg RendererConfig) (*Renderer, error) {
	if cfg.Amplitude == 0 {
		cfg.Amplitude = DefaultAmplitude
	}
	switch {
	case !(cfg.Frequency > 0):
		return nil, fmt.Errorf("%w: tone frequency must be positive, got %v", ErrInvalidConfig, cfg.Frequency)
	case cfg.SampleRate <= 0:
		return nil, fmt.Errorf("%w: sample rate must be positive, got %d", ErrInvalidConfig, cfg.SampleRate)
	case !(cfg.Amplitude > 0 && cfg.Amplitude <= 1):
		return nil, fmt.Errorf("%w: amplitude must be in (0, 1], got %v", ErrInvalidConfig, cfg.Amplitude)
	case cfg.Ramp < 0:
		return nil, fmt.Errorf("%w: ramp must not be negative, got %v", ErrInvalidConfig, cfg.Ramp)
	}
	return &Renderer{cfg: cfg}, nil
}

// Config returns the validated renderer configuration.
func (r *Renderer) Config() RendererConfig {
	return r.cfg
}

// SampleCount is the number of whole samples that fit in the given number of seconds.
func (r *Renderer) SampleCount(seconds float64) int {
	if seconds <= 0 {
		return 0
	}
	return int(seconds * float64(r.cfg.SampleRate))
}

// RenderTone returns amplitude·sin(2π·f·t) sampled from t=0 up to, but excluding, seconds.
func (r *Renderer) RenderTone(seconds float64) []float64 {
	n := r.SampleCount(seconds)
	samples := make([]float64, n)

	rate := float64(r.cfg.SampleRate)
	fade := 0
	if r.cfg.Ramp > 0 {
		fade = min(r.SampleCount(r.cfg.Ramp), n/2)
	}

	for i := range samples {
		phase := 2 * math.Pi * r.cfg.Frequency * float64(i) / rate
		value := math.Sin(phase) * r.cfg.Amplitude

		// Apply envelope (fade in/out)
		if fade > 0 {
			if i < fade {
				value *= float64(i) / float64(fade)
			} else if i >= n-fade {
				value *= float64(n-1-i) / float64(fade)
			}
		}
		samples[i] = value
	}
	return samples
}

// RenderGap returns a pure-delay segment.
func (r *Renderer) RenderGap(kind EventKind, seconds float64) Segment {
	return Segment{Kind: kind, Duration: Seconds(seconds)}
}

// Silence returns a zero-filled block as long as seconds, for sinks that need samples for gaps too.
func (r *Renderer) Silence(seconds float64) []float64 {
	return make([]float64, r.SampleCount(seconds))
}

// Render turns an event into a playable segment.
func (r *Renderer) Render(ev Event) Segment {
	if !ev.Kind.IsTone() {
		return r.RenderGap(ev.Kind, ev.Seconds)
	}
	return Segment{
		Kind:     ev.Kind,
		Duration: Seconds(ev.Seconds),
		Samples:  r.RenderTone(ev.Seconds),
	}
}
