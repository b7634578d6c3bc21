// Package cw turns text into timed Morse (CW) tone and gap events, renders them
// to audio samples and plays them back strictly in order.
package cw

import (
	"errors"
	"fmt"
	"math"
	"time"
)

var (
	// ErrInvalidConfig is returned for non-positive speeds, frequencies or sample rates.
	ErrInvalidConfig = errors.New("invalid configuration")
	// ErrAudioDevice is returned when the audio sink is unavailable or playback fails.
	ErrAudioDevice = errors.New("audio device error")
)

// Unit ratios, in dots.
const (
	dashUnits      = 3.0
	interCharUnits = 3.0
	wordUnits      = 7.0
	// "PARIS" plus its trailing word space is 50 dot units long.
	parisUnits = 50.0
	// Of those 50 units, 19 are character and word spacing.
	parisSpacingUnits = 19.0
)

// SpeedConfig holds the speed parameters a TimingSet is derived from.
type SpeedConfig struct {
	ElementWPM float64 // speed of the individual dots and dashes
	OverallWPM float64 // effective speed including Farnsworth spacing
	Adjustment float64 // multiplier applied to the dot length, >1.0 lengthens elements
}

// Validate reports whether all speed parameters are usable.
func (c SpeedConfig) Validate() error {
	switch {
	case !(c.ElementWPM > 0):
		return fmt.Errorf("%w: element speed must be positive, got %v", ErrInvalidConfig, c.ElementWPM)
	case !(c.OverallWPM > 0):
		return fmt.Errorf("%w: overall speed must be positive, got %v", ErrInvalidConfig, c.OverallWPM)
	case !(c.Adjustment > 0):
		return fmt.Errorf("%w: timing adjustment must be positive, got %v", ErrInvalidConfig, c.Adjustment)
	}
	return nil
}

// TimingSet holds all element and spacing durations, in seconds.
type TimingSet struct {
	Dot          float64
	Dash         float64
	IntraCharGap float64
	InterCharGap float64
	WordGap      float64

	// SlowdownFactor is the Farnsworth stretch applied to InterCharGap and WordGap.
	SlowdownFactor float64
}

// ComputeTimings derives a TimingSet from the given speeds using the Farnsworth method.
// Only character and word spacing is stretched; dots, dashes and the gaps inside a
// character always run at the element speed.
//
// All fields of cfg are assumed positive, see SpeedConfig.Validate.
func ComputeTimings(cfg SpeedConfig) TimingSet {
	dot := 60 / (parisUnits * cfg.ElementWPM) * cfg.Adjustment

	slowdown := 1.0
	if cfg.ElementWPM > cfg.OverallWPM {
		slowdown = cfg.ElementWPM / cfg.OverallWPM
	}

	return TimingSet{
		Dot:            dot,
		Dash:           dashUnits * dot,
		IntraCharGap:   dot,
		InterCharGap:   interCharUnits * dot * slowdown,
		WordGap:        wordUnits * dot * slowdown,
		SlowdownFactor: slowdown,
	}
}

// EffectiveWPM is the speed at which "PARIS " is sent with these timings.
func (t TimingSet) EffectiveWPM() float64 {
	if t.Dot <= 0 {
		return 0
	}
	elementUnits := (parisUnits - parisSpacingUnits) * t.Dot
	// PARIS has 4 character gaps and one word gap.
	spacing := 4*t.InterCharGap + t.WordGap
	return 60 / (elementUnits + spacing)
}

// Seconds converts a duration in seconds to a time.Duration, rounded to the nearest nanosecond.
func Seconds(s float64) time.Duration {
	return time.Duration(math.Round(s * float64(time.Second)))
}
