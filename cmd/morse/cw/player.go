package cw

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"unicode"
)

// Player renders text and plays it through a Sink, one event at a time.
type Player struct {
	// Only one session may drive the sink at a time.
	mu sync.Mutex

	timing   TimingSet
	encoder  *Encoder
	renderer *Renderer
	sink     Sink
}

// NewPlayer creates a Player. Encoder options are applied to every Play call.
func NewPlayer(timing TimingSet, renderer *Renderer, sink Sink, opts ...EncoderOption) *Player {
	return &Player{
		timing:   timing,
		encoder:  NewEncoder(timing, opts...),
		renderer: renderer,
		sink:     sink,
	}
}

// Timing returns the timings the player encodes with.
func (p *Player) Timing() TimingSet {
	return p.timing
}

// Play encodes text and blocks until every event has been played.
// Cancellation is only observed between events, never in the middle of a tone.
// A SequenceSink gets the whole message in one call.
func (p *Player) Play(ctx context.Context, text string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	words := p.encoder.Words(text)
	events := p.encoder.Encode(text)
	slog.Debug("playing text",
		"words", len(words),
		"events", len(events),
		"seconds", TotalSeconds(events))
	p.logUnknown(text)

	defer p.flush()

	steps, trailing := p.steps(words, events)
	if seq, ok := p.sink.(SequenceSink); ok {
		if err := seq.PlaySequence(ctx, steps); err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
				return err
			}
			return fmt.Errorf("failed to play message: %w", err)
		}
	} else {
		for _, st := range steps {
			if err := ctx.Err(); err != nil {
				return err
			}
			for _, w := range st.Echo {
				p.sink.OnWord(w)
			}
			if err := p.sink.Play(ctx, st.Segment); err != nil {
				return fmt.Errorf("failed to play %s: %w", st.Segment.Kind, err)
			}
		}
	}

	for _, w := range trailing {
		p.sink.OnWord(w)
	}
	return nil
}

// steps renders events in order. Words are echoed once each, right before the
// gap that ends them; the words after the last word gap are returned separately.
func (p *Player) steps(words []string, events []Event) ([]Step, []string) {
	steps := make([]Step, 0, len(events))
	echoed := -1
	for _, ev := range events {
		st := Step{Segment: p.renderer.Render(ev)}
		if ev.Kind == WordGap {
			for echoed < ev.Word {
				echoed++
				st.Echo = append(st.Echo, words[echoed])
			}
		}
		steps = append(steps, st)
	}
	return steps, words[echoed+1:]
}

func (p *Player) logUnknown(text string) {
	msg := "no morse code for character, it will be silent"
	if p.encoder.skipUnknown {
		msg = "no morse code for character, dropping it"
	}
	for _, r := range text {
		if !unicode.IsSpace(r) && !Known(r) {
			slog.Debug(msg, "char", string(r))
		}
	}
}

// Pause plays a gap of the given length, e.g. between two messages.
func (p *Player) Pause(ctx context.Context, seconds float64) error {
	if seconds <= 0 {
		return nil
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	return p.sink.Play(ctx, p.renderer.RenderGap(WordGap, seconds))
}

func (p *Player) flush() {
	if f, ok := p.sink.(interface{ Flush() }); ok {
		f.Flush()
	}
}
