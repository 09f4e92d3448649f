package format

import (
	"errors"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/statline/statline/internal/apperr"
	"github.com/statline/statline/internal/style"
)

// Sentinel causes for render failures; callers branch with errors.Is.
var (
	ErrUnknownVariable = errors.New("unknown variable")
	ErrUnknownStyle    = errors.New("unknown style")
)

// TokenKind discriminates parsed template tokens.
type TokenKind int

const (
	// Literal is verbatim template text.
	Literal TokenKind = iota
	// Variable is a $name reference resolved at render time.
	Variable
	// Meta is a variable that resolved through the meta lookup; the parser
	// emits Variable and Render reclassifies once the meta resolver claims
	// the name.
	Meta
	// Group is a [subtemplate](style) span whose children inherit the style.
	Group
)

// Token is one node of a parsed template.
type Token struct {
	Kind     TokenKind
	Text     string  // literal text, or variable name
	Children []Token // group sub-template
	StyleRef string  // group style: "$name" or an inline style spec
}

// Template is a parsed format string, ready to render. It holds no state
// between renders.
type Template struct {
	tokens []Token
}

// Tokens returns the parsed token sequence.
func (t Template) Tokens() []Token { return t.tokens }

// Resolver maps a placeholder name to its value. The second result reports
// whether the name is recognized at all; a recognized name may still carry
// an error from upstream.
type Resolver func(name string) (string, bool, error)

// StyleResolver maps a style name to a concrete style value.
type StyleResolver func(name string) (lipgloss.Style, bool, error)

// Resolvers supplies the three lookup capabilities a render needs. Meta is
// consulted before Variable, so plain-string substitutions like a symbol
// glyph win over styled content of the same name.
type Resolvers struct {
	Variable Resolver
	Meta     Resolver
	Style    StyleResolver
}

// Segment is a contiguous run of rendered text sharing one style. A nil
// style means unstyled output.
type Segment struct {
	Text  string
	Style *lipgloss.Style
}

// Parse compiles a format string into a Template. The grammar: plain text,
// $name or ${name} variables, [subtemplate](style) groups, and backslash
// escapes for $ [ ] ( ) and the backslash itself.
func Parse(tmpl string) (Template, error) {
	p := &parser{src: []rune(tmpl)}
	tokens, err := p.parseUntil(0)
	if err != nil {
		return Template{}, err
	}
	return Template{tokens: tokens}, nil
}

type parser struct {
	src []rune
	pos int
}

// parseUntil consumes tokens until end-of-input or an unescaped closing
// bracket (when stop is ']'). The closing rune is left unconsumed.
func (p *parser) parseUntil(stop rune) ([]Token, error) {
	var tokens []Token
	var lit strings.Builder
	flush := func() {
		if lit.Len() > 0 {
			tokens = append(tokens, Token{Kind: Literal, Text: lit.String()})
			lit.Reset()
		}
	}
	for p.pos < len(p.src) {
		r := p.src[p.pos]
		switch {
		case r == stop:
			flush()
			return tokens, nil
		case r == '\\':
			p.pos++
			if p.pos >= len(p.src) {
				return nil, apperr.New("format.Parse", apperr.InvalidInput, "dangling escape at end of template")
			}
			lit.WriteRune(p.src[p.pos])
			p.pos++
		case r == '$':
			p.pos++
			name, err := p.parseName()
			if err != nil {
				return nil, err
			}
			flush()
			tokens = append(tokens, Token{Kind: Variable, Text: name})
		case r == '[':
			p.pos++
			children, err := p.parseUntil(']')
			if err != nil {
				return nil, err
			}
			if p.pos >= len(p.src) {
				return nil, apperr.New("format.Parse", apperr.InvalidInput, "unclosed text group")
			}
			p.pos++ // consume ']'
			styleRef, err := p.parseStyleRef()
			if err != nil {
				return nil, err
			}
			flush()
			tokens = append(tokens, Token{Kind: Group, Children: children, StyleRef: styleRef})
		default:
			lit.WriteRune(r)
			p.pos++
		}
	}
	if stop != 0 {
		return nil, apperr.New("format.Parse", apperr.InvalidInput, "unclosed text group")
	}
	flush()
	return tokens, nil
}

func isNameRune(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

func (p *parser) parseName() (string, error) {
	braced := false
	if p.pos < len(p.src) && p.src[p.pos] == '{' {
		braced = true
		p.pos++
	}
	start := p.pos
	for p.pos < len(p.src) && isNameRune(p.src[p.pos]) {
		p.pos++
	}
	name := string(p.src[start:p.pos])
	if name == "" {
		return "", apperr.New("format.Parse", apperr.InvalidInput, "empty variable reference")
	}
	if braced {
		if p.pos >= len(p.src) || p.src[p.pos] != '}' {
			return "", apperr.New("format.Parse", apperr.InvalidInput, "unclosed ${%s} reference", name)
		}
		p.pos++
	}
	return name, nil
}

func (p *parser) parseStyleRef() (string, error) {
	if p.pos >= len(p.src) || p.src[p.pos] != '(' {
		return "", apperr.New("format.Parse", apperr.InvalidInput, "text group missing (style)")
	}
	p.pos++
	start := p.pos
	for p.pos < len(p.src) && p.src[p.pos] != ')' {
		p.pos++
	}
	if p.pos >= len(p.src) {
		return "", apperr.New("format.Parse", apperr.InvalidInput, "unclosed style reference")
	}
	ref := strings.TrimSpace(string(p.src[start:p.pos]))
	p.pos++ // consume ')'
	return ref, nil
}

// Render resolves the template against the supplied resolvers and returns
// the styled segments. Any unrecognized name or failing resolver aborts the
// render; no partial segment list is returned.
func Render(t Template, res Resolvers) ([]Segment, error) {
	return renderTokens(t.tokens, nil, res)
}

func renderTokens(tokens []Token, inherited *lipgloss.Style, res Resolvers) ([]Segment, error) {
	var segs []Segment
	for _, tok := range tokens {
		switch tok.Kind {
		case Literal:
			segs = append(segs, Segment{Text: tok.Text, Style: inherited})
		case Variable, Meta:
			text, err := resolveVariable(tok.Text, res)
			if err != nil {
				return nil, err
			}
			segs = append(segs, Segment{Text: text, Style: inherited})
		case Group:
			st, err := resolveStyle(tok.StyleRef, res)
			if err != nil {
				return nil, err
			}
			children, err := renderTokens(tok.Children, st, res)
			if err != nil {
				return nil, err
			}
			segs = append(segs, children...)
		}
	}
	return segs, nil
}

func resolveVariable(name string, res Resolvers) (string, error) {
	if res.Meta != nil {
		if v, ok, err := res.Meta(name); ok || err != nil {
			if err != nil {
				return "", apperr.Wrap("format.Render", apperr.InvalidInput, err, "resolving $%s", name)
			}
			return v, nil
		}
	}
	if res.Variable != nil {
		if v, ok, err := res.Variable(name); ok || err != nil {
			if err != nil {
				return "", apperr.Wrap("format.Render", apperr.InvalidInput, err, "resolving $%s", name)
			}
			return v, nil
		}
	}
	return "", apperr.Wrap("format.Render", apperr.InvalidInput, ErrUnknownVariable, "undefined variable $%s", name)
}

func resolveStyle(ref string, res Resolvers) (*lipgloss.Style, error) {
	if ref == "" {
		return nil, nil
	}
	if name, ok := strings.CutPrefix(ref, "$"); ok {
		if res.Style == nil {
			return nil, apperr.Wrap("format.Render", apperr.InvalidInput, ErrUnknownStyle, "undefined style $%s", name)
		}
		st, found, err := res.Style(name)
		if err != nil {
			return nil, apperr.Wrap("format.Render", apperr.InvalidInput, err, "resolving style $%s", name)
		}
		if !found {
			return nil, apperr.Wrap("format.Render", apperr.InvalidInput, ErrUnknownStyle, "undefined style $%s", name)
		}
		return &st, nil
	}
	st, err := style.Parse(ref)
	if err != nil {
		return nil, err
	}
	return &st, nil
}
