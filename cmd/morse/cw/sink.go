package cw

import (
	"context"
	"fmt"
	"io"
	"sync"
)

// Sink consumes rendered segments in order.
//
// Play must not return before the segment's full duration has elapsed, so that
// segments never overlap and gaps are never compressed. OnWord is called once a
// word's last element has been played and must not block.
type Sink interface {
	Play(ctx context.Context, seg Segment) error
	OnWord(word string)
}

// Step is one rendered segment of a message, plus the words to echo right before it starts.
type Step struct {
	Segment Segment
	Echo    []string
}

// SequenceSink is a Sink that can queue a whole message at once, so consecutive
// segments follow each other on the sink's own clock.
//
// PlaySequence calls OnWord for each step's words just before that step starts.
// Once ctx is done it stops at the next step boundary and returns ctx.Err().
type SequenceSink interface {
	Sink
	PlaySequence(ctx context.Context, steps []Step) error
}

// Echo prints each completed word, space separated. The zero value prints nothing.
type Echo struct {
	mu      sync.Mutex
	w       io.Writer
	pending bool
}

// NewEcho returns an Echo writing to w, or a silent one if w is nil.
func NewEcho(w io.Writer) *Echo {
	return &Echo{w: w}
}

// OnWord prints word followed by a space.
func (e *Echo) OnWord(word string) {
	if e == nil || e.w == nil {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	_, _ = fmt.Fprint(e.w, word, " ")
	e.pending = true
}

// Flush ends the current line if any word was printed since the last flush.
func (e *Echo) Flush() {
	if e == nil || e.w == nil {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.pending {
		_, _ = fmt.Fprintln(e.w)
		e.pending = false
	}
}
