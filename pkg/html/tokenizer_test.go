package html

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func tokenize(t *testing.T, input string) []Token {
	t.Helper()
	return NewTokenizer(input, WithLogger(zaptest.NewLogger(t))).All()
}

func chars(s string) []Token {
	var out []Token
	for _, r := range s {
		out = append(out, Token{Type: CharacterToken, Char: r})
	}
	return out
}

func eofTok() Token { return Token{Type: EOFToken} }

func TestTokenizer_RoundTrip(t *testing.T) {
	got := tokenize(t, `<div id="x">hi</div>`)
	want := []Token{
		{Type: StartTagToken, Name: "div", Attributes: []Attribute{{Name: "id", Value: "x"}}},
		{Type: CharacterToken, Char: 'h'},
		{Type: CharacterToken, Char: 'i'},
		{Type: EndTagToken, Name: "div"},
		eofTok(),
	}
	assert.Equal(t, want, got)
}

func TestTokenizer_SerialisesBack(t *testing.T) {
	input := `<p class="a" id="b">text<br/><!-- note --></p>`
	var sb strings.Builder
	for _, tok := range tokenize(t, input) {
		sb.WriteString(tok.String())
	}
	assert.Equal(t, input, sb.String())
}

func TestTokenizer_CaseAndWhitespaceNormalisation(t *testing.T) {
	a := tokenize(t, `<DIV   ID = "x" >`)
	b := tokenize(t, `<div id="x">`)
	assert.Equal(t, b, a)
}

func TestTokenizer_AttributeForms(t *testing.T) {
	got := tokenize(t, `<input type=text value='a b' disabled checked="">`)
	require.Len(t, got, 2)
	assert.Equal(t, []Attribute{
		{Name: "type", Value: "text"},
		{Name: "value", Value: "a b"},
		{Name: "disabled", Value: ""},
		{Name: "checked", Value: ""},
	}, got[0].Attributes)
}

func TestTokenizer_DuplicateAttributesKept(t *testing.T) {
	got := tokenize(t, `<a href=1 HREF=2>`)
	assert.Equal(t, []Attribute{{Name: "href", Value: "1"}, {Name: "href", Value: "2"}}, got[0].Attributes)
}

func TestTokenizer_SelfClosing(t *testing.T) {
	got := tokenize(t, `<br/><img src=a.png />`)
	require.Len(t, got, 3)
	assert.True(t, got[0].SelfClosing)
	assert.Equal(t, "br", got[0].Name)
	assert.True(t, got[1].SelfClosing)
	assert.Equal(t, "a.png", got[1].Attributes[0].Value)
}

func TestTokenizer_Comments(t *testing.T) {
	tests := []struct {
		input string
		data  string
	}{
		{"<!-- hello -->", " hello "},
		{"<!---->", ""},
		{"<!-- a - b -->", " a - b "},
		{"<!-- a -- b -->", " a -- b "},
		{"<!-->", ""},
		{"<!DOCTYPE html>", "DOCTYPE html"},
		{"<?xml version=1?>", "?xml version=1?"},
	}
	for _, tt := range tests {
		got := tokenize(t, tt.input)
		require.Len(t, got, 2, tt.input)
		assert.Equal(t, CommentToken, got[0].Type, tt.input)
		assert.Equal(t, tt.data, got[0].Data, tt.input)
	}
}

func TestTokenizer_EOFInEndTagOpen(t *testing.T) {
	got := tokenize(t, "</")
	assert.Equal(t, append(chars("</"), eofTok()), got)
}

func TestTokenizer_EOFInTagOpen(t *testing.T) {
	got := tokenize(t, "a<")
	assert.Equal(t, append(chars("a<"), eofTok()), got)
}

func TestTokenizer_InvalidTagStart(t *testing.T) {
	got := tokenize(t, "<4")
	assert.Equal(t, append(chars("<4"), eofTok()), got)
}

func TestTokenizer_EqualsBeforeAttributeName(t *testing.T) {
	got := tokenize(t, "<div =foo>")
	require.Len(t, got, 2)
	assert.Equal(t, []Attribute{{Name: "=foo", Value: ""}}, got[0].Attributes)
}

func TestTokenizer_QuoteInUnquotedValue(t *testing.T) {
	got := tokenize(t, `<div data=foo"bar>`)
	require.Len(t, got, 2)
	assert.Equal(t, []Attribute{{Name: "data", Value: `foo"bar`}}, got[0].Attributes)
}

func TestTokenizer_EOFInsideTag(t *testing.T) {
	got := tokenize(t, `<div class="a`)
	require.Len(t, got, 2)
	assert.Equal(t, StartTagToken, got[0].Type)
	assert.Equal(t, "div", got[0].Name)
	assert.Equal(t, "a", got[0].Attributes[0].Value)
	assert.Equal(t, EOFToken, got[1].Type)
}

func TestTokenizer_EOFInsideComment(t *testing.T) {
	got := tokenize(t, "<!-- open")
	assert.Equal(t, []Token{{Type: CommentToken, Data: " open"}, eofTok()}, got)
}

func TestTokenizer_EndTagWithoutName(t *testing.T) {
	got := tokenize(t, "a</>b")
	assert.Equal(t, append(chars("ab"), eofTok()), got)
}

func TestTokenizer_RepeatedEOF(t *testing.T) {
	tz := NewTokenizer("")
	assert.Equal(t, EOFToken, tz.Next().Type)
	assert.Equal(t, EOFToken, tz.Next().Type)
}

func TestTokenizer_RawText(t *testing.T) {
	tz := NewTokenizer("<style>a<b>c</STYLE >x")
	first := tz.Next()
	require.Equal(t, "style", first.Name)
	tz.SwitchToRawText("style")

	var text strings.Builder
	var tok Token
	for tok = tz.Next(); tok.Type == CharacterToken; tok = tz.Next() {
		text.WriteRune(tok.Char)
	}
	assert.Equal(t, "a<b>c", text.String())
	assert.Equal(t, Token{Type: EndTagToken, Name: "style"}, tok)
	assert.Equal(t, Token{Type: CharacterToken, Char: 'x'}, tz.Next())
}
