package html

import (
	"fmt"
	"strings"
)

type TokenType int

const (
	StartTagToken TokenType = iota
	EndTagToken
	CharacterToken
	CommentToken
	EOFToken
)

func (t TokenType) String() string {
	switch t {
	case StartTagToken:
		return "StartTag"
	case EndTagToken:
		return "EndTag"
	case CharacterToken:
		return "Character"
	case CommentToken:
		return "Comment"
	case EOFToken:
		return "EOF"
	}
	return fmt.Sprintf("TokenType(%d)", int(t))
}

// Token is one tokenizer output. Which fields are meaningful depends on Type:
// Name, Attributes and SelfClosing for tags, Char for characters, Data for
// comments.
type Token struct {
	Type        TokenType
	Name        string
	Attributes  []Attribute
	SelfClosing bool
	Char        rune
	Data        string
}

func (t Token) attr(name string) (string, bool) {
	for _, a := range t.Attributes {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// String serialises the token back to HTML text.
func (t Token) String() string {
	switch t.Type {
	case StartTagToken:
		var sb strings.Builder
		sb.WriteByte('<')
		sb.WriteString(t.Name)
		for _, a := range t.Attributes {
			sb.WriteByte(' ')
			sb.WriteString(a.Name)
			sb.WriteString(`="`)
			sb.WriteString(a.Value)
			sb.WriteByte('"')
		}
		if t.SelfClosing {
			sb.WriteString("/")
		}
		sb.WriteByte('>')
		return sb.String()
	case EndTagToken:
		return "</" + t.Name + ">"
	case CharacterToken:
		return string(t.Char)
	case CommentToken:
		return "<!--" + t.Data + "-->"
	}
	return ""
}

func isWhitespace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\f', '\r':
		return true
	}
	return false
}

func isASCIIAlpha(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func toASCIILower(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return r + ('a' - 'A')
	}
	return r
}
