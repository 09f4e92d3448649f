package style

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/statline/statline/internal/apperr"
)

// Style specifications are space-separated token lists from user config,
// e.g. "red bold dimmed" or "fg:#ff8800 bg:blue underline".

// namedColors maps color names to their base ANSI palette index.
var namedColors = map[string]string{
	"black":         "0",
	"red":           "1",
	"green":         "2",
	"yellow":        "3",
	"blue":          "4",
	"purple":        "5",
	"cyan":          "6",
	"white":         "7",
	"bright-black":  "8",
	"bright-red":    "9",
	"bright-green":  "10",
	"bright-yellow": "11",
	"bright-blue":   "12",
	"bright-purple": "13",
	"bright-cyan":   "14",
	"bright-white":  "15",
}

// Parse turns a style specification into a lipgloss style. A bare color
// token sets the foreground; fg: and bg: prefixes target explicitly. The
// token "none" discards everything seen so far and yields an unstyled value.
func Parse(spec string) (lipgloss.Style, error) {
	s := lipgloss.NewStyle()
	for _, tok := range strings.Fields(spec) {
		switch tok {
		case "bold":
			s = s.Bold(true)
		case "italic":
			s = s.Italic(true)
		case "underline":
			s = s.Underline(true)
		case "strikethrough":
			s = s.Strikethrough(true)
		case "dimmed":
			s = s.Faint(true)
		case "inverted":
			s = s.Reverse(true)
		case "blink":
			s = s.Blink(true)
		case "none":
			s = lipgloss.NewStyle()
		default:
			var err error
			s, err = applyColor(s, tok)
			if err != nil {
				return lipgloss.NewStyle(), err
			}
		}
	}
	return s, nil
}

func applyColor(s lipgloss.Style, tok string) (lipgloss.Style, error) {
	target := "fg"
	if rest, ok := strings.CutPrefix(tok, "fg:"); ok {
		tok = rest
	} else if rest, ok := strings.CutPrefix(tok, "bg:"); ok {
		target = "bg"
		tok = rest
	}
	c, err := parseColor(tok)
	if err != nil {
		return s, err
	}
	if target == "bg" {
		return s.Background(c), nil
	}
	return s.Foreground(c), nil
}

func parseColor(tok string) (lipgloss.Color, error) {
	if v, ok := namedColors[tok]; ok {
		return lipgloss.Color(v), nil
	}
	if strings.HasPrefix(tok, "#") && len(tok) == 7 {
		if _, err := strconv.ParseUint(tok[1:], 16, 32); err == nil {
			return lipgloss.Color(tok), nil
		}
	}
	if n, err := strconv.Atoi(tok); err == nil && n >= 0 && n <= 255 {
		return lipgloss.Color(tok), nil
	}
	return "", apperr.New("style.Parse", apperr.InvalidInput, "unknown style token %q", tok)
}
