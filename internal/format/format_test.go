package format

import (
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func noVariables(string) (string, bool, error)      { return "", false, nil }
func noStyles(string) (lipgloss.Style, bool, error) { return lipgloss.Style{}, false, nil }

func oneVariable(name, value string) Resolver {
	return func(n string) (string, bool, error) {
		if n == name {
			return value, true, nil
		}
		return "", false, nil
	}
}

func joined(segs []Segment) string {
	var b strings.Builder
	for _, s := range segs {
		b.WriteString(s.Text)
	}
	return b.String()
}

func TestLiteralRoundTrip(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "hello world", "hello world"},
		{"escaped brackets", `\[boxed\]`, "[boxed]"},
		{"escaped dollar", `cost \$5`, "cost $5"},
		{"escaped backslash", `a\\b`, `a\b`},
		{"bare parens", "f(x)", "f(x)"},
		{"empty", "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tmpl, err := Parse(tc.in)
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			segs, err := Render(tmpl, Resolvers{Variable: noVariables, Meta: noVariables, Style: noStyles})
			if err != nil {
				t.Fatalf("render: %v", err)
			}
			if got := joined(segs); got != tc.want {
				t.Fatalf("got %q want %q", got, tc.want)
			}
			for _, s := range segs {
				if s.Style != nil {
					t.Fatalf("literal-only template must be unstyled")
				}
			}
		})
	}
}

func TestVariableResolution(t *testing.T) {
	tmpl, err := Parse("in $name now")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	segs, err := Render(tmpl, Resolvers{Variable: oneVariable("name", "OpenVZ")})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got := joined(segs); got != "in OpenVZ now" {
		t.Fatalf("got %q", got)
	}
}

func TestBracedVariable(t *testing.T) {
	tmpl, err := Parse("${name}s")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	segs, err := Render(tmpl, Resolvers{Variable: oneVariable("name", "pod")})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got := joined(segs); got != "pods" {
		t.Fatalf("got %q", got)
	}
}

func TestMetaWinsOverVariable(t *testing.T) {
	tmpl, err := Parse("$symbol")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	segs, err := Render(tmpl, Resolvers{
		Variable: oneVariable("symbol", "from-variable"),
		Meta:     oneVariable("symbol", "⬢"),
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got := joined(segs); got != "⬢" {
		t.Fatalf("meta lookup should win, got %q", got)
	}
}

func TestStyleGroupAppliesResolvedStyle(t *testing.T) {
	tmpl, err := Parse(`[$symbol \[$name\]]($style) `)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	bold := lipgloss.NewStyle().Bold(true)
	segs, err := Render(tmpl, Resolvers{
		Variable: oneVariable("name", "fedora-toolbox:35"),
		Meta:     oneVariable("symbol", "⬢"),
		Style: func(n string) (lipgloss.Style, bool, error) {
			if n == "style" {
				return bold, true, nil
			}
			return lipgloss.Style{}, false, nil
		},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got := joined(segs); got != "⬢ [fedora-toolbox:35] " {
		t.Fatalf("got %q", got)
	}
	last := segs[len(segs)-1]
	if last.Text != " " || last.Style != nil {
		t.Fatalf("trailing literal escaped the group: %+v", last)
	}
	for _, s := range segs[:len(segs)-1] {
		if s.Style == nil || !s.Style.GetBold() {
			t.Fatalf("group segment missing inherited style: %+v", s)
		}
	}
}

func TestInlineStyleGroup(t *testing.T) {
	tmpl, err := Parse("[warn](bold yellow)")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	segs, err := Render(tmpl, Resolvers{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if len(segs) != 1 || segs[0].Text != "warn" {
		t.Fatalf("segments: %+v", segs)
	}
	if segs[0].Style == nil || !segs[0].Style.GetBold() {
		t.Fatalf("inline style not applied")
	}
}

func TestNestedGroupOverridesStyle(t *testing.T) {
	tmpl, err := Parse("[a[b](red)](bold)")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	segs, err := Render(tmpl, Resolvers{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if len(segs) != 2 {
		t.Fatalf("want 2 segments, got %+v", segs)
	}
	if !segs[0].Style.GetBold() {
		t.Fatalf("outer segment should be bold")
	}
	if segs[1].Style.GetBold() {
		t.Fatalf("inner group style should replace the outer one")
	}
	if got := segs[1].Style.GetForeground(); got != lipgloss.Color("1") {
		t.Fatalf("inner foreground: %v", got)
	}
}

func TestUnknownVariableFailsRender(t *testing.T) {
	tmpl, err := Parse("$whatever")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	_, err = Render(tmpl, Resolvers{Variable: noVariables, Meta: noVariables})
	if !errors.Is(err, ErrUnknownVariable) {
		t.Fatalf("want ErrUnknownVariable, got %v", err)
	}
}

func TestUnknownStyleFailsRender(t *testing.T) {
	tmpl, err := Parse("[x]($style)")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	_, err = Render(tmpl, Resolvers{Style: noStyles})
	if !errors.Is(err, ErrUnknownStyle) {
		t.Fatalf("want ErrUnknownStyle, got %v", err)
	}
}

func TestResolverValueErrorPropagates(t *testing.T) {
	tmpl, err := Parse("$name")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	cause := errors.New("upstream broke")
	_, err = Render(tmpl, Resolvers{
		Variable: func(string) (string, bool, error) { return "", true, cause },
	})
	if !errors.Is(err, cause) {
		t.Fatalf("want wrapped cause, got %v", err)
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name string
		in   string
	}{
		{"unclosed group", "[$symbol"},
		{"group without style", "[x]"},
		{"group with bare style opener", "[x]("},
		{"empty variable", "cost $"},
		{"unclosed brace", "${name"},
		{"dangling escape", `oops\`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Parse(tc.in); err == nil {
				t.Fatalf("expected parse error for %q", tc.in)
			}
		})
	}
}
