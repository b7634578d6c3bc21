package cw

import (
	"strings"

	"github.com/samber/lo"
)

// EventKind tells tones and the three kinds of gaps apart.
type EventKind int

const (
	ToneDot EventKind = iota
	ToneDash
	IntraGap // between the elements of one character
	InterGap // between the characters of one word
	WordGap  // between words
)

func (k EventKind) String() string {
	switch k {
	case ToneDot:
		return "dot"
	case ToneDash:
		return "dash"
	case IntraGap:
		return "intra-gap"
	case InterGap:
		return "inter-gap"
	case WordGap:
		return "word-gap"
	default:
		return "unknown"
	}
}

// IsTone reports whether the kind is sounded.
func (k EventKind) IsTone() bool {
	return k == ToneDot || k == ToneDash
}

// Event is one timed tone or gap.
type Event struct {
	Kind    EventKind
	Seconds float64
	// Word is the index of the word the event belongs to.
	// A word gap belongs to the word before it.
	Word int
}

// EncoderOption configures an Encoder.
type EncoderOption func(*Encoder)

// SkipUnknown drops characters that have no Morse code before spacing is computed,
// so no gaps are emitted for them. By default an unknown character is kept as a
// silent character with the usual character gaps on either side.
func SkipUnknown() EncoderOption {
	return func(e *Encoder) {
		e.skipUnknown = true
	}
}

// Encoder maps text to timed events using a fixed TimingSet.
// It holds no mutable state and is safe for concurrent use.
type Encoder struct {
	timing      TimingSet
	skipUnknown bool
}

// NewEncoder creates an encoder for the given timings.
func NewEncoder(timing TimingSet, opts ...EncoderOption) *Encoder {
	e := &Encoder{timing: timing}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Words splits text into the words Encode sounds, in order.
func (e *Encoder) Words(text string) []string {
	words := strings.Fields(text)
	if !e.skipUnknown {
		return words
	}
	words = lo.Map(words, func(w string, _ int) string {
		return strings.Map(func(r rune) rune {
			if Known(r) {
				return r
			}
			return -1
		}, w)
	})
	return lo.Compact(words)
}

// Encode converts text into an ordered sequence of tone and gap events.
// Empty or all-whitespace text yields no events.
func (e *Encoder) Encode(text string) []Event {
	var events []Event
	words := e.Words(text)
	for wi, word := range words {
		chars := []rune(word)
		for ci, r := range chars {
			events = e.appendChar(events, r, wi)
			if ci < len(chars)-1 {
				events = append(events, Event{Kind: InterGap, Seconds: e.timing.InterCharGap, Word: wi})
			}
		}
		if wi < len(words)-1 {
			events = append(events, Event{Kind: WordGap, Seconds: e.timing.WordGap, Word: wi})
		}
	}
	return events
}

func (e *Encoder) appendChar(events []Event, r rune, word int) []Event {
	syms := Lookup(r)
	for i, s := range syms {
		if s == Dash {
			events = append(events, Event{Kind: ToneDash, Seconds: e.timing.Dash, Word: word})
		} else {
			events = append(events, Event{Kind: ToneDot, Seconds: e.timing.Dot, Word: word})
		}
		if i < len(syms)-1 {
			events = append(events, Event{Kind: IntraGap, Seconds: e.timing.IntraCharGap, Word: word})
		}
	}
	return events
}

// TotalSeconds sums the durations of events.
func TotalSeconds(events []Event) float64 {
	return lo.SumBy(events, func(ev Event) float64 { return ev.Seconds })
}

// ToMorse renders text in dot/dash notation: characters separated by a space,
// words by " / ". Unknown characters are left out.
func ToMorse(text string) string {
	words := lo.FilterMap(strings.Fields(text), func(word string, _ int) (string, bool) {
		var letters []string
		for _, r := range word {
			if code := Code(r); code != "" {
				letters = append(letters, code)
			}
		}
		return strings.Join(letters, " "), len(letters) > 0
	})
	return strings.Join(words, " / ")
}

// FromMorse decodes dot/dash notation produced by ToMorse. Unknown codes are skipped.
func FromMorse(morse string) string {
	var result strings.Builder
	for i, word := range strings.Split(morse, "/") {
		if i > 0 {
			result.WriteRune(' ')
		}
		for _, code := range strings.Fields(word) {
			if r, ok := fromCodes[code]; ok {
				result.WriteRune(r)
			}
		}
	}
	return strings.TrimSpace(result.String())
}
