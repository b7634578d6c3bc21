package cw

import (
	"context"
	"fmt"
	"io"
	"math"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const wavBitDepth = 16

// WavSink writes segments to a 16-bit mono PCM WAV stream instead of a device.
// Gaps become zero-filled sample blocks so the file keeps exact timing.
// Play returns as soon as the samples are written; it does not wait in real time.
type WavSink struct {
	*Echo
	renderer *Renderer
	enc      *wav.Encoder
	format   *audio.Format
	written  int
}

// NewWavSink creates a WavSink writing to w. Close must be called to finish the file.
func NewWavSink(w io.WriteSeeker, r *Renderer, echo *Echo) *WavSink {
	rate := r.Config().SampleRate
	return &WavSink{
		Echo:     echo,
		renderer: r,
		enc:      wav.NewEncoder(w, rate, wavBitDepth, 1, 1),
		format:   &audio.Format{NumChannels: 1, SampleRate: rate},
	}
}

// Play appends seg to the file.
func (s *WavSink) Play(ctx context.Context, seg Segment) error {
	samples := seg.Samples
	if seg.IsGap() {
		samples = s.renderer.Silence(seg.Duration.Seconds())
	}
	if len(samples) == 0 {
		return nil
	}

	const peak = 1<<(wavBitDepth-1) - 1
	data := make([]int, len(samples))
	for i, v := range samples {
		data[i] = int(math.Round(v * peak))
	}

	buf := &audio.IntBuffer{Format: s.format, Data: data, SourceBitDepth: wavBitDepth}
	if err := s.enc.Write(buf); err != nil {
		return fmt.Errorf("%w: write wav: %v", ErrAudioDevice, err)
	}
	s.written += len(samples)
	return nil
}

// Written returns the number of samples written so far.
func (s *WavSink) Written() int {
	return s.written
}

// Close finalizes the WAV header. A sink that never received samples still
// produces a valid file with an empty data chunk.
func (s *WavSink) Close() error {
	if s.written == 0 {
		empty := &audio.IntBuffer{Format: s.format, SourceBitDepth: wavBitDepth}
		if err := s.enc.Write(empty); err != nil {
			return fmt.Errorf("%w: write wav header: %v", ErrAudioDevice, err)
		}
	}
	if err := s.enc.Close(); err != nil {
		return fmt.Errorf("%w: close wav encoder: %v", ErrAudioDevice, err)
	}
	return nil
}
