package cw

import (
	"reflect"
	"testing"
)

var testTiming = ComputeTimings(SpeedConfig{ElementWPM: 20, OverallWPM: 10, Adjustment: 1})

func countKinds(events []Event) map[EventKind]int {
	counts := make(map[EventKind]int)
	for _, ev := range events {
		counts[ev.Kind]++
	}
	return counts
}

func TestEncode_Empty(t *testing.T) {
	enc := NewEncoder(testTiming)
	for _, text := range []string{"", " ", "\t\n  "} {
		if events := enc.Encode(text); len(events) != 0 {
			t.Errorf("Encode(%q) = %v, want no events", text, events)
		}
	}
}

func TestEncode_SOS(t *testing.T) {
	events := NewEncoder(testTiming).Encode("SOS")
	counts := countKinds(events)

	tones := counts[ToneDot] + counts[ToneDash]
	if tones != 9 {
		t.Errorf("tones = %d, want 9", tones)
	}
	if counts[IntraGap] != 6 {
		t.Errorf("intra gaps = %d, want 6", counts[IntraGap])
	}
	if counts[InterGap] != 2 {
		t.Errorf("inter gaps = %d, want 2", counts[InterGap])
	}
	if counts[WordGap] != 0 {
		t.Errorf("word gaps = %d, want 0", counts[WordGap])
	}

	want := []EventKind{
		ToneDot, IntraGap, ToneDot, IntraGap, ToneDot, InterGap,
		ToneDash, IntraGap, ToneDash, IntraGap, ToneDash, InterGap,
		ToneDot, IntraGap, ToneDot, IntraGap, ToneDot,
	}
	if len(events) != len(want) {
		t.Fatalf("len(events) = %d, want %d", len(events), len(want))
	}
	for i, ev := range events {
		if ev.Kind != want[i] {
			t.Errorf("event %d = %s, want %s", i, ev.Kind, want[i])
		}
	}
}

func TestEncode_Durations(t *testing.T) {
	events := NewEncoder(testTiming).Encode("A B")
	want := map[EventKind]float64{
		ToneDot:  testTiming.Dot,
		ToneDash: testTiming.Dash,
		IntraGap: testTiming.IntraCharGap,
		InterGap: testTiming.InterCharGap,
		WordGap:  testTiming.WordGap,
	}
	for _, ev := range events {
		if ev.Seconds != want[ev.Kind] {
			t.Errorf("%s lasts %v, want %v", ev.Kind, ev.Seconds, want[ev.Kind])
		}
	}
}

func TestEncode_TwoSingleLetterWords(t *testing.T) {
	events := NewEncoder(testTiming).Encode("A B")
	counts := countKinds(events)
	if counts[WordGap] != 1 {
		t.Errorf("word gaps = %d, want 1", counts[WordGap])
	}
	if counts[InterGap] != 0 {
		t.Errorf("inter gaps = %d, want 0", counts[InterGap])
	}
	if events[0].Word != 0 || events[len(events)-1].Word != 1 {
		t.Errorf("word indexes = %d..%d, want 0..1", events[0].Word, events[len(events)-1].Word)
	}
}

func TestEncode_SingleCharacters(t *testing.T) {
	enc := NewEncoder(testTiming)
	for r, code := range codes {
		if r == ' ' {
			continue
		}
		events := enc.Encode(string(r))
		counts := countKinds(events)
		if tones := counts[ToneDot] + counts[ToneDash]; tones != len(code) {
			t.Errorf("%q: tones = %d, want %d", r, tones, len(code))
		}
		if counts[IntraGap] != len(code)-1 {
			t.Errorf("%q: intra gaps = %d, want %d", r, counts[IntraGap], len(code)-1)
		}
		if counts[InterGap]+counts[WordGap] != 0 {
			t.Errorf("%q: unexpected spacing events: %v", r, counts)
		}
	}
}

func TestEncode_CaseInsensitive(t *testing.T) {
	enc := NewEncoder(testTiming)
	if !reflect.DeepEqual(enc.Encode("cq pota"), enc.Encode("CQ POTA")) {
		t.Error("lower and upper case encode differently")
	}
}

func TestEncode_Deterministic(t *testing.T) {
	enc := NewEncoder(testTiming)
	text := "KI5RCF DE W1XYZ UR 599 73"
	first := enc.Encode(text)
	second := enc.Encode(text)
	if !reflect.DeepEqual(first, second) {
		t.Error("Encode is not deterministic")
	}
}

func TestEncode_UnknownCharacterKeepsGaps(t *testing.T) {
	counts := countKinds(NewEncoder(testTiming).Encode("A#B"))
	if counts[InterGap] != 2 {
		t.Errorf("inter gaps = %d, want 2", counts[InterGap])
	}

	counts = countKinds(NewEncoder(testTiming).Encode("A # B"))
	if counts[WordGap] != 2 {
		t.Errorf("word gaps = %d, want 2", counts[WordGap])
	}
}

func TestEncode_SkipUnknown(t *testing.T) {
	enc := NewEncoder(testTiming, SkipUnknown())

	counts := countKinds(enc.Encode("A#B"))
	if counts[InterGap] != 1 {
		t.Errorf("inter gaps = %d, want 1", counts[InterGap])
	}

	counts = countKinds(enc.Encode("A # B"))
	if counts[WordGap] != 1 {
		t.Errorf("word gaps = %d, want 1", counts[WordGap])
	}

	if events := enc.Encode("#&*"); len(events) != 0 {
		t.Errorf("Encode of unknown-only text = %v, want no events", events)
	}
	if words := enc.Words("A # B"); !reflect.DeepEqual(words, []string{"A", "B"}) {
		t.Errorf("Words = %v, want [A B]", words)
	}
}

func TestLookup(t *testing.T) {
	if got := Lookup(' '); len(got) != 0 {
		t.Errorf("Lookup(' ') = %v, want empty", got)
	}
	if got := Lookup('%'); len(got) != 0 {
		t.Errorf("Lookup('%%') = %v, want empty", got)
	}
	if got := Lookup('k'); !reflect.DeepEqual(got, []Symbol{Dash, Dot, Dash}) {
		t.Errorf("Lookup('k') = %v, want -.-", got)
	}
	if Known(' ') {
		t.Error("space should not be a known character")
	}
}

func TestTotalSeconds(t *testing.T) {
	events := NewEncoder(testTiming).Encode("E E")
	want := testTiming.Dot*2 + testTiming.WordGap
	if got := TotalSeconds(events); !approx(got, want) {
		t.Errorf("TotalSeconds = %v, want %v", got, want)
	}
}

func TestToMorse(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"SOS", "... --- ..."},
		{"sos", "... --- ..."},
		{"CQ DE K", "-.-. --.- / -.. . / -.-"},
		{"", ""},
		{"A # B", ".- / -..."},
		{"K-1234", "-.- -....- .---- ..--- ...-- ....-"},
	}
	for _, tt := range tests {
		if got := ToMorse(tt.input); got != tt.expected {
			t.Errorf("ToMorse(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestFromMorse(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"... --- ...", "SOS"},
		{"-.-. --.- / -.. . / -.-", "CQ DE K"},
		{"", ""},
		{"...... .-", "A"},
	}
	for _, tt := range tests {
		if got := FromMorse(tt.input); got != tt.expected {
			t.Errorf("FromMorse(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}

	text := "CQ POTA DE N1ABC K-1234 (5NN) 73?"
	if got := FromMorse(ToMorse(text)); got != text {
		t.Errorf("FromMorse(ToMorse(%q)) = %q", text, got)
	}
}
