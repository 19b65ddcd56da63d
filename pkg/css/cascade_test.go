package css

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"minibrowse/pkg/html"
)

func cascadeHTML(t *testing.T, src, sheet string) (*html.Node, Styles) {
	t.Helper()
	doc := html.Parse(src)
	return doc, Cascade(doc, parseCSS(t, sheet))
}

func TestCascade_InheritedDefaults(t *testing.T) {
	doc, styles := cascadeHTML(t, "<p>x</p>", "")
	p := doc.FindElement("p")
	cs := styles.Of(p)
	assert.Equal(t, "16px", cs["font-size"])
	assert.Equal(t, "normal", cs["font-style"])
	assert.Equal(t, "normal", cs["font-weight"])
	assert.Equal(t, "black", cs["color"])
	assert.Equal(t, Transparent, cs.BackgroundColor())
}

func TestCascade_InheritanceFlowsToText(t *testing.T) {
	doc, styles := cascadeHTML(t, "<div><span>x</span></div>", "div { color: red; background-color: blue; }")
	text := doc.FindElement("span").Children[0]
	cs := styles.Of(text)
	assert.Equal(t, "red", cs["color"])
	_, ok := cs.Get("background-color")
	assert.False(t, ok, "background-color is not inherited")
}

func TestCascade_SpecificityIndependentOfOrder(t *testing.T) {
	src := "<div><p>x</p></div>"
	a := "div p { color: green; } p { color: red; }"
	b := "p { color: red; } div p { color: green; }"
	docA, stylesA := cascadeHTML(t, src, a)
	docB, stylesB := cascadeHTML(t, src, b)
	assert.Equal(t, "green", stylesA.Of(docA.FindElement("p"))["color"])
	assert.Equal(t, "green", stylesB.Of(docB.FindElement("p"))["color"])
}

func TestCascade_LaterRuleWinsAtEqualSpecificity(t *testing.T) {
	doc, styles := cascadeHTML(t, "<p>x</p>", "p { color: red; } p { color: blue; }")
	assert.Equal(t, "blue", styles.Of(doc.FindElement("p"))["color"])
}

func TestCascade_InlineStyleWins(t *testing.T) {
	doc, styles := cascadeHTML(t, `<div><p style="color: purple">x</p></div>`, "div p { color: green; }")
	assert.Equal(t, "purple", styles.Of(doc.FindElement("p"))["color"])
}

func TestCascade_PercentFontSize(t *testing.T) {
	doc, styles := cascadeHTML(t, `<div style="font-size: 20px"><p style="font-size: 50%">x</p></div>`, "")
	assert.Equal(t, "10px", styles.Of(doc.FindElement("p"))["font-size"])
}

func TestCascade_PercentFontSizeCompounds(t *testing.T) {
	doc, styles := cascadeHTML(t, "<big><big>x</big></big>", "big { font-size: 110%; }")
	outer := doc.FindElement("big")
	inner := outer.Children[0]
	assert.Equal(t, "17.6px", styles.Of(outer)["font-size"])
	assert.InDelta(t, 19.36, styles.Of(inner).FontSize(), 1e-9)
}

func TestCascade_PercentAtRoot(t *testing.T) {
	root := html.NewElement("p", []html.Attribute{{Name: "style", Value: "font-size: 150%"}})
	styles := Cascade(root, nil)
	assert.Equal(t, "24px", styles.Of(root)["font-size"])
}

func TestCascade_MalformedPercentFallsBackToParent(t *testing.T) {
	doc, styles := cascadeHTML(t, `<div style="font-size: 30px"><p style="font-size: x%">x</p></div>`, "")
	assert.Equal(t, "30px", styles.Of(doc.FindElement("p"))["font-size"])
}

func TestCascade_DefaultSheet(t *testing.T) {
	doc := html.Parse("<head><title>t</title></head><body><b>x</b><small>y</small></body>")
	styles := Cascade(doc, DefaultRules())
	assert.Equal(t, "none", styles.Of(doc.FindElement("head")).Display())
	assert.True(t, styles.Of(doc.FindElement("b")).FontWeight().IsBold())
	assert.Equal(t, "14.4px", styles.Of(doc.FindElement("small"))["font-size"])
}

func TestCascade_RerunIsFresh(t *testing.T) {
	doc := html.Parse("<p>x</p>")
	first := Cascade(doc, parseCSS(t, "p { color: red; }"))
	second := Cascade(doc, nil)
	assert.Equal(t, "red", first.Of(doc.FindElement("p"))["color"])
	assert.Equal(t, "black", second.Of(doc.FindElement("p"))["color"])
}

func TestSelectorMatches(t *testing.T) {
	doc := html.Parse("<div><section><p>x</p></section></div><p>y</p>")
	var ps []*html.Node
	doc.Walk(func(n *html.Node) bool {
		if n.IsElement("p") {
			ps = append(ps, n)
		}
		return true
	})
	require.Len(t, ps, 2)

	sel := &DescendantSelector{Ancestor: &TagSelector{Tag: "div"}, Descendant: &TagSelector{Tag: "p"}}
	assert.True(t, sel.Matches(ps[0]))
	assert.False(t, sel.Matches(ps[1]))

	self := &DescendantSelector{Ancestor: &TagSelector{Tag: "p"}, Descendant: &TagSelector{Tag: "p"}}
	assert.False(t, self.Matches(ps[0]), "ancestor must be strict")

	assert.False(t, (&TagSelector{Tag: "p"}).Matches(ps[0].Children[0]))
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.RGBA
		ok   bool
	}{
		{"red", color.RGBA{255, 0, 0, 255}, true},
		{" Blue ", color.RGBA{0, 0, 255, 255}, true},
		{"#fff", color.RGBA{255, 255, 255, 255}, true},
		{"#336699", color.RGBA{0x33, 0x66, 0x99, 255}, true},
		{"transparent", color.RGBA{}, true},
		{"#zzzzzz", color.RGBA{}, false},
		{"notacolor", color.RGBA{}, false},
	}
	for _, tt := range tests {
		got, ok := ParseColor(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestFontValues(t *testing.T) {
	assert.Equal(t, 12.0, ParseFontSize("12px"))
	assert.Equal(t, DefaultFontSize, ParseFontSize("large"))
	assert.Equal(t, WeightBold, ParseFontWeight("bold"))
	assert.True(t, ParseFontWeight("600").IsBold())
	assert.False(t, ParseFontWeight("500").IsBold())
	assert.Equal(t, WeightNormal, ParseFontWeight("heavy"))
	assert.Equal(t, StyleItalic, ParseFontStyle("italic"))
	assert.Equal(t, StyleNormal, ParseFontStyle("normal"))
	assert.Equal(t, "17.5px", FormatPx(17.5))
}
