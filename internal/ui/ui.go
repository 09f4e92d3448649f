package ui

import (
	"regexp"
	"strings"

	"github.com/statline/statline/internal/format"
)

// Render concatenates segments into a single ANSI-styled string for the
// terminal. Unstyled segments pass through verbatim; styled ones go through
// lipgloss, which degrades color automatically for the active profile.
func Render(segs []format.Segment) string {
	var b strings.Builder
	for _, s := range segs {
		if s.Style == nil {
			b.WriteString(s.Text)
			continue
		}
		b.WriteString(s.Style.Render(s.Text))
	}
	return b.String()
}

var ansiRegexp = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// StripANSI removes ANSI escape codes, for asserting on rendered text in
// tests.
func StripANSI(s string) string {
	return ansiRegexp.ReplaceAllString(s, "")
}
