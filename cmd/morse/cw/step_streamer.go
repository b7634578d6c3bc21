package cw

import (
	"context"

	"github.com/gopxl/beep/v2"
)

// stepStreamer streams steps back to back as a single beep.Streamer.
// Before each step it echoes the step's words, and once ctx is done it ends at
// the next step boundary.
type stepStreamer struct {
	ctx     context.Context
	steps   []Step
	rate    beep.SampleRate
	onWord  func(word string)
	next    int
	current beep.Streamer
	err     error
}

func newStepStreamer(ctx context.Context, steps []Step, rate beep.SampleRate, onWord func(string)) *stepStreamer {
	return &stepStreamer{ctx: ctx, steps: steps, rate: rate, onWord: onWord}
}

func (s *stepStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	for n < len(samples) {
		if s.current == nil {
			if s.next >= len(s.steps) || s.err != nil {
				break
			}
			if err := s.ctx.Err(); err != nil {
				s.err = err
				break
			}
			st := s.steps[s.next]
			s.next++
			for _, w := range st.Echo {
				s.onWord(w)
			}
			s.current = segmentStreamer(st.Segment, s.rate)
		}
		buf := samples[n:]
		sn, sok := s.current.Stream(buf)
		n += sn
		if !sok || sn < len(buf) {
			s.current = nil
		}
	}
	return n, n > 0
}

// Err returns the context error if streaming stopped before the last step.
func (s *stepStreamer) Err() error {
	return s.err
}

func segmentStreamer(seg Segment, rate beep.SampleRate) beep.Streamer {
	if seg.IsGap() {
		return beep.Silence(rate.N(seg.Duration))
	}
	return &sampleStreamer{samples: seg.Samples}
}

// sampleStreamer feeds a mono block to both channels.
type sampleStreamer struct {
	samples  []float64
	position int
}

func (t *sampleStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if t.position >= len(t.samples) {
			return i, i > 0
		}
		value := t.samples[t.position]
		samples[i][0] = value
		samples[i][1] = value
		t.position++
	}
	return len(samples), true
}

func (t *sampleStreamer) Err() error {
	return nil
}
