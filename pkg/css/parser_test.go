package css

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func parseCSS(t *testing.T, text string) []Rule {
	t.Helper()
	return Parse(text, WithLogger(zaptest.NewLogger(t)))
}

func TestParse_SimpleRule(t *testing.T) {
	rules := parseCSS(t, "p { color: red; font-size: 12px; }")
	require.Len(t, rules, 1)
	assert.Equal(t, "p", rules[0].Selector.String())
	assert.Equal(t, map[string]string{"color": "red", "font-size": "12px"}, rules[0].Declarations)
}

func TestParse_DescendantSelector(t *testing.T) {
	rules := parseCSS(t, "div  P\n span{x:y}")
	require.Len(t, rules, 1)
	sel, ok := rules[0].Selector.(*DescendantSelector)
	require.True(t, ok)
	assert.Equal(t, "div p span", sel.String())
	assert.Equal(t, 3, sel.Specificity())
	assert.Equal(t, &TagSelector{Tag: "span"}, sel.Descendant)
}

func TestParse_PropertyNamesLowercased(t *testing.T) {
	rules := parseCSS(t, "p { COLOR: Red; }")
	assert.Equal(t, map[string]string{"color": "Red"}, rules[0].Declarations)
}

func TestParse_MissingFinalSemicolon(t *testing.T) {
	rules := parseCSS(t, "p { color: red } a { color: blue }")
	require.Len(t, rules, 2)
	assert.Equal(t, "red", rules[0].Declarations["color"])
	assert.Equal(t, "blue", rules[1].Declarations["color"])
}

func TestParse_HexAndPercentValues(t *testing.T) {
	rules := parseCSS(t, "pre { background-color: #ffcc00; font-size: 110%; width: 1.5em; }")
	require.Len(t, rules, 1)
	assert.Equal(t, map[string]string{
		"background-color": "#ffcc00",
		"font-size":        "110%",
		"width":            "1.5em",
	}, rules[0].Declarations)
}

func TestParse_Comments(t *testing.T) {
	tests := []struct {
		name  string
		input string
		rules int
	}{
		{"between rules", "body { color: red; } /* comment */ p { color: blue; }", 2},
		{"inside block", "body { /* comment */ color: red; }", 1},
		{"inside selector", "body /* comment */ { color: red; }", 1},
		{"unterminated", "body { color: red; } /* unterminated", 1},
		{"commented out rule", "/* body { color: red; } */", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rules := parseCSS(t, tt.input)
			assert.Len(t, rules, tt.rules)
			for _, r := range rules {
				assert.NotEmpty(t, r.Declarations["color"])
			}
		})
	}
}

func TestParse_InvalidSelectorsSkipped(t *testing.T) {
	tests := []struct {
		name  string
		input string
		rules int
	}{
		{"closing brace selector", `} { color: red; } p { color: blue; }`, 1},
		{"semicolon selector", `{; color: red; } p { color: blue; }`, 1},
		{"unbalanced bracket", `[} { color: red; } p { color: green; }`, 1},
		{"empty selector", ` { color: red; } p { color: blue; }`, 1},
		{"child combinator", `p > a { color: red; } p { color: blue; }`, 1},
		{"class selector kept as word", `.note { color: red; }`, 1},
		{"valid rules survive", `body { color: red; } [} { bad: true; } h1 { font-size: 20px; }`, 2},
		{"unknown at-rule block", `@three-dee { body { color: red; } } p { color: blue; }`, 1},
		{"multiple at-rules", `@foo { x: y; } @bar { a: b; } div { color: red; }`, 1},
		{"unterminated block", `p { color: red;`, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, parseCSS(t, tt.input), tt.rules)
		})
	}
}

func TestParse_InvalidDeclarationsSkipped(t *testing.T) {
	rules := parseCSS(t, "p { color red; : x; font-size: 20px; margin: 0 auto; font-style: italic; }")
	require.Len(t, rules, 1)
	assert.Equal(t, map[string]string{
		"font-size":  "20px",
		"margin":     "0",
		"font-style": "italic",
	}, rules[0].Declarations)
}

func TestParseDeclarations(t *testing.T) {
	decls := ParseDeclarations("color: green; background-color: #eee", WithLogger(zaptest.NewLogger(t)))
	assert.Equal(t, map[string]string{"color": "green", "background-color": "#eee"}, decls)
	assert.Empty(t, ParseDeclarations(""))
	assert.Equal(t, map[string]string{"b": "c"}, ParseDeclarations("a; b: c"))
}

func TestSyntaxError(t *testing.T) {
	err := NewParser("{").literal('}')
	var se *SyntaxError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, 0, se.Offset)
	assert.Contains(t, se.Error(), "offset 0")
}

func TestSortBySpecificity_Stable(t *testing.T) {
	rules := parseCSS(t, "div p { a: 1; } p { a: 2; } div { a: 3; } body div p { a: 4; }")
	sorted := SortBySpecificity(rules)
	var got []string
	for _, r := range sorted {
		got = append(got, r.Declarations["a"])
	}
	assert.Equal(t, []string{"2", "3", "1", "4"}, got)
	assert.Equal(t, "1", rules[0].Declarations["a"], "input must not be reordered")
}

func TestDefaultRules(t *testing.T) {
	rules := DefaultRules()
	require.NotEmpty(t, rules)
	var sawHead bool
	for _, r := range rules {
		if r.Selector.String() == "head" {
			sawHead = true
			assert.Equal(t, "none", r.Declarations["display"])
		}
	}
	assert.True(t, sawHead)
}
