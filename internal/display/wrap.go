package display

import (
	"fmt"
	"strings"

	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"
)

const (
	DefaultWidth = 80
	// ContinuationIndent offsets wrapped continuation lines of a narration entry.
	ContinuationIndent = 2
)

// Wrap word-wraps text to DefaultWidth, preserving ANSI escape sequences.
func Wrap(text string) string {
	return wordwrap.String(text, DefaultWidth)
}

// Lines renders narration one entry per line. An entry too long for the
// terminal wraps with its continuation lines indented, so entries stay
// distinguishable.
func Lines(lines []string) string {
	var sb strings.Builder
	for _, l := range lines {
		wrapped := wordwrap.String(l, DefaultWidth-ContinuationIndent)
		first, rest, found := strings.Cut(wrapped, "\n")
		sb.WriteString(first)
		sb.WriteString("\n")
		if found {
			sb.WriteString(indent.String(rest, ContinuationIndent))
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// Status is the prompt prefix showing a character's pools.
func Status(hp, maxHP, mana, maxMana int) string {
	return fmt.Sprintf("[HP %d/%d Mana %d/%d] ", hp, maxHP, mana, maxMana)
}

// Capitalize returns s with its first character uppercased.
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
