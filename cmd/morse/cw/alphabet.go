package cw

import (
	"unicode"

	"github.com/samber/lo"
)

// Symbol is a single Morse element.
type Symbol int

const (
	Dot Symbol = iota
	Dash
)

func (s Symbol) String() string {
	if s == Dash {
		return "-"
	}
	return "."
}

// wordSpace marks the space entry. It is a word boundary and never sounds.
const wordSpace = " "

var codes = map[rune]string{
	'A': ".-", 'B': "-...", 'C': "-.-.", 'D': "-..", 'E': ".",
	'F': "..-.", 'G': "--.", 'H': "....", 'I': "..", 'J': ".---",
	'K': "-.-", 'L': ".-..", 'M': "--", 'N': "-.", 'O': "---",
	'P': ".--.", 'Q': "--.-", 'R': ".-.", 'S': "...", 'T': "-",
	'U': "..-", 'V': "...-", 'W': ".--", 'X': "-..-", 'Y': "-.--",
	'Z': "--..",
	'0': "-----", '1': ".----", '2': "..---", '3': "...--", '4': "....-",
	'5': ".....", '6': "-....", '7': "--...", '8': "---..", '9': "----.",
	'.': ".-.-.-", ',': "--..--", '?': "..--..", '/': "-..-.",
	'-': "-....-", '(': "-.--.", ')': "-.--.-",
	' ': wordSpace,
}

var (
	symbols   map[rune][]Symbol
	fromCodes map[string]rune
)

func init() {
	symbols = make(map[rune][]Symbol, len(codes))
	for r, code := range codes {
		if code == wordSpace {
			continue
		}
		symbols[r] = lo.Map([]rune(code), func(c rune, _ int) Symbol {
			if c == '-' {
				return Dash
			}
			return Dot
		})
	}
	fromCodes = lo.Invert(lo.OmitByValues(codes, []string{wordSpace}))
}

// Lookup returns the symbol sequence for r, ignoring case.
// Space and characters outside the table yield an empty sequence.
// The returned slice is shared and must not be modified.
func Lookup(r rune) []Symbol {
	return symbols[unicode.ToUpper(r)]
}

// Known reports whether r has an entry in the table. Space is not a known character.
func Known(r rune) bool {
	_, ok := symbols[unicode.ToUpper(r)]
	return ok
}

// Code returns the dot/dash notation for r, or "" if r is unknown.
func Code(r rune) string {
	code := codes[unicode.ToUpper(r)]
	if code == wordSpace {
		return ""
	}
	return code
}
