package display

import (
	"strings"

	"github.com/muesli/reflow/wordwrap"
)

// DefaultWidth is the wrap column for session output. Control clients are
// assumed to be classic 80-column terminals.
const DefaultWidth = 80

// Wrap word-wraps text to DefaultWidth without breaking words or ANSI escape
// sequences.
func Wrap(text string) string {
	return wordwrap.String(text, DefaultWidth)
}

// Capitalize uppercases the first character of s, for turning model errors
// into sentences.
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
