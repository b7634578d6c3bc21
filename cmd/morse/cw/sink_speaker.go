//go:build (linux && cgo) || windows || darwin

package cw

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/speaker"
)

// AudioBackend names the device sink compiled into this build.
const AudioBackend = "speaker"

var (
	speakerMu   sync.Mutex
	speakerRate beep.SampleRate // zero until the speaker is initialized
)

// initSpeaker initializes the process-wide speaker once.
func initSpeaker(sr beep.SampleRate) error {
	speakerMu.Lock()
	defer speakerMu.Unlock()

	if speakerRate != 0 {
		if speakerRate != sr {
			return fmt.Errorf("%w: speaker already running at %d Hz, cannot switch to %d Hz", ErrAudioDevice, speakerRate, sr)
		}
		return nil
	}

	if err := speaker.Init(sr, sr.N(time.Second/10)); err != nil {
		return fmt.Errorf("%w: %v", ErrAudioDevice, err)
	}
	speakerRate = sr
	return nil
}

// SpeakerSink plays segments on the system audio device.
// A message is queued as one stream with gaps as silence, so tone and gap timing
// follow the device clock down to the sample.
type SpeakerSink struct {
	*Echo
	sampleRate beep.SampleRate
}

// OpenDevice opens the system audio device at the renderer's sample rate.
func OpenDevice(r *Renderer, echo *Echo) (Sink, error) {
	sr := beep.SampleRate(r.Config().SampleRate)
	if err := initSpeaker(sr); err != nil {
		return nil, err
	}
	return &SpeakerSink{Echo: echo, sampleRate: sr}, nil
}

// PlaySequence queues all steps on the speaker as one stream and waits until
// they have been played, or until the step boundary after ctx is done.
func (s *SpeakerSink) PlaySequence(ctx context.Context, steps []Step) error {
	seq := newStepStreamer(ctx, steps, s.sampleRate, s.OnWord)
	done := make(chan struct{})
	speaker.Play(beep.Seq(seq, beep.Callback(func() {
		close(done)
	})))
	<-done
	return seq.Err()
}

// Play queues a single segment and waits until it has been played in full.
func (s *SpeakerSink) Play(ctx context.Context, seg Segment) error {
	return s.PlaySequence(ctx, []Step{{Segment: seg}})
}
