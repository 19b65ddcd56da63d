package html

import (
	"strings"

	"go.uber.org/zap"
)

type tokenizerState int

const (
	dataState tokenizerState = iota
	tagOpenState
	endTagOpenState
	tagNameState
	beforeAttributeNameState
	attributeNameState
	afterAttributeNameState
	beforeAttributeValueState
	attributeValueDoubleQuotedState
	attributeValueSingleQuotedState
	attributeValueUnquotedState
	afterAttributeValueQuotedState
	selfClosingStartTagState
	markupDeclarationOpenState
	commentStartState
	commentStartDashState
	commentState
	commentEndDashState
	commentEndState
	bogusCommentState
	rawTextState
)

const eof rune = -1

// Option configures the tokenizer and the tree builder.
type Option func(*options)

type options struct {
	logger *zap.Logger
}

// WithLogger routes parse errors to the given logger.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Tokenizer turns HTML source text into a stream of tokens. Malformed input
// never stops it: errors are logged and a best-effort token is produced.
type Tokenizer struct {
	input []rune
	pos   int
	state tokenizerState

	reconsume bool
	current   rune

	pending []Token
	done    bool

	tag      Token
	attrName strings.Builder
	attrVal  strings.Builder
	inAttr   bool
	comment  strings.Builder

	// rawTextTag is the element whose end tag closes raw text.
	rawTextTag string

	logger *zap.Logger
}

func NewTokenizer(input string, opts ...Option) *Tokenizer {
	o := buildOptions(opts)
	return &Tokenizer{input: []rune(input), logger: o.logger}
}

// Next returns the next token. Once EOF has been returned every later call
// returns EOF again.
func (t *Tokenizer) Next() Token {
	for len(t.pending) == 0 {
		if t.done {
			return Token{Type: EOFToken}
		}
		t.step()
	}
	tok := t.pending[0]
	t.pending = t.pending[1:]
	return tok
}

// All drains the tokenizer, EOF token included.
func (t *Tokenizer) All() []Token {
	var out []Token
	for {
		tok := t.Next()
		out = append(out, tok)
		if tok.Type == EOFToken {
			return out
		}
	}
}

func (t *Tokenizer) consume() rune {
	if t.reconsume {
		t.reconsume = false
		return t.current
	}
	if t.pos >= len(t.input) {
		t.current = eof
		return eof
	}
	t.current = t.input[t.pos]
	t.pos++
	return t.current
}

func (t *Tokenizer) reconsumeIn(s tokenizerState) {
	t.reconsume = true
	t.state = s
}

func (t *Tokenizer) parseError(code string) {
	t.logger.Debug("html tokenizer parse error",
		zap.String("error", code),
		zap.Int("offset", t.pos))
}

func (t *Tokenizer) emit(tok Token) {
	t.pending = append(t.pending, tok)
}

func (t *Tokenizer) emitChar(r rune) {
	t.emit(Token{Type: CharacterToken, Char: r})
}

func (t *Tokenizer) emitEOF() {
	t.emit(Token{Type: EOFToken})
	t.done = true
}

func (t *Tokenizer) startTag(typ TokenType) {
	t.tag = Token{Type: typ}
	t.inAttr = false
}

func (t *Tokenizer) startAttribute() {
	t.finishAttribute()
	t.inAttr = true
	t.attrName.Reset()
	t.attrVal.Reset()
}

func (t *Tokenizer) finishAttribute() {
	if !t.inAttr {
		return
	}
	t.inAttr = false
	name := t.attrName.String()
	if _, dup := t.tag.attr(name); dup {
		t.parseError("duplicate-attribute")
	}
	t.tag.Attributes = append(t.tag.Attributes, Attribute{Name: name, Value: t.attrVal.String()})
}

func (t *Tokenizer) emitTag() {
	t.finishAttribute()
	if t.tag.Type == EndTagToken {
		if len(t.tag.Attributes) > 0 {
			t.parseError("end-tag-with-attributes")
			t.tag.Attributes = nil
		}
		if t.tag.SelfClosing {
			t.parseError("end-tag-with-trailing-solidus")
			t.tag.SelfClosing = false
		}
	}
	t.emit(t.tag)
	t.tag = Token{}
}

// eofInTag emits whatever tag was being built, then EOF.
func (t *Tokenizer) eofInTag() {
	t.parseError("eof-in-tag")
	t.emitTag()
	t.emitEOF()
}

func (t *Tokenizer) startComment() {
	t.comment.Reset()
}

func (t *Tokenizer) emitComment() {
	t.emit(Token{Type: CommentToken, Data: t.comment.String()})
}

func (t *Tokenizer) hasPrefix(s string) bool {
	rs := []rune(s)
	if t.pos+len(rs) > len(t.input) {
		return false
	}
	for i, r := range rs {
		if t.input[t.pos+i] != r {
			return false
		}
	}
	return true
}

// SwitchToRawText makes the tokenizer treat everything up to </tag> as
// character data. The tree builder calls it for style, title and script.
func (t *Tokenizer) SwitchToRawText(tag string) {
	t.rawTextTag = tag
	t.state = rawTextState
}

func (t *Tokenizer) atRawTextEnd() bool {
	name := []rune(t.rawTextTag)
	if t.pos+1+len(name) > len(t.input) || t.input[t.pos] != '/' {
		return false
	}
	for i, r := range name {
		if toASCIILower(t.input[t.pos+1+i]) != r {
			return false
		}
	}
	end := t.pos + 1 + len(name)
	if end == len(t.input) {
		return true
	}
	next := t.input[end]
	return isWhitespace(next) || next == '>' || next == '/'
}

// markupDeclarationOpen runs before anything after "<!" is consumed.
func (t *Tokenizer) markupDeclarationOpen() {
	t.startComment()
	if t.hasPrefix("--") {
		t.pos += 2
		t.state = commentStartState
		return
	}
	t.parseError("incorrectly-opened-comment")
	t.state = bogusCommentState
}

func (t *Tokenizer) step() {
	if t.state == markupDeclarationOpenState {
		t.markupDeclarationOpen()
		return
	}
	c := t.consume()
	switch t.state {
	case dataState:
		switch c {
		case '<':
			t.state = tagOpenState
		case eof:
			t.emitEOF()
		default:
			t.emitChar(c)
		}

	case rawTextState:
		switch {
		case c == '<' && t.atRawTextEnd():
			t.pos++
			t.state = endTagOpenState
		case c == eof:
			t.emitEOF()
		default:
			t.emitChar(c)
		}

	case tagOpenState:
		switch {
		case c == '!':
			t.state = markupDeclarationOpenState
		case c == '/':
			t.state = endTagOpenState
		case isASCIIAlpha(c):
			t.startTag(StartTagToken)
			t.reconsumeIn(tagNameState)
		case c == '?':
			t.parseError("unexpected-question-mark-instead-of-tag-name")
			t.startComment()
			t.reconsumeIn(bogusCommentState)
		case c == eof:
			t.parseError("eof-before-tag-name")
			t.emitChar('<')
			t.emitEOF()
		default:
			t.parseError("invalid-first-character-of-tag-name")
			t.emitChar('<')
			t.reconsumeIn(dataState)
		}

	case endTagOpenState:
		switch {
		case isASCIIAlpha(c):
			t.startTag(EndTagToken)
			t.reconsumeIn(tagNameState)
		case c == '>':
			t.parseError("missing-end-tag-name")
			t.state = dataState
		case c == eof:
			t.parseError("eof-before-tag-name")
			t.emitChar('<')
			t.emitChar('/')
			t.emitEOF()
		default:
			t.parseError("invalid-first-character-of-tag-name")
			t.startComment()
			t.reconsumeIn(bogusCommentState)
		}

	case tagNameState:
		switch {
		case isWhitespace(c):
			t.state = beforeAttributeNameState
		case c == '/':
			t.state = selfClosingStartTagState
		case c == '>':
			t.state = dataState
			t.emitTag()
		case c == eof:
			t.eofInTag()
		default:
			t.tag.Name += string(toASCIILower(c))
		}

	case beforeAttributeNameState:
		switch {
		case isWhitespace(c):
		case c == '/' || c == '>' || c == eof:
			t.reconsumeIn(afterAttributeNameState)
		case c == '=':
			t.parseError("unexpected-equals-sign-before-attribute-name")
			t.startAttribute()
			t.attrName.WriteRune(c)
			t.state = attributeNameState
		default:
			t.startAttribute()
			t.reconsumeIn(attributeNameState)
		}

	case attributeNameState:
		switch {
		case isWhitespace(c) || c == '/' || c == '>' || c == eof:
			t.reconsumeIn(afterAttributeNameState)
		case c == '=':
			t.state = beforeAttributeValueState
		case c == '"' || c == '\'' || c == '<':
			t.parseError("unexpected-character-in-attribute-name")
			t.attrName.WriteRune(c)
		default:
			t.attrName.WriteRune(toASCIILower(c))
		}

	case afterAttributeNameState:
		switch {
		case isWhitespace(c):
		case c == '/':
			t.state = selfClosingStartTagState
		case c == '=':
			t.state = beforeAttributeValueState
		case c == '>':
			t.state = dataState
			t.emitTag()
		case c == eof:
			t.eofInTag()
		default:
			t.startAttribute()
			t.reconsumeIn(attributeNameState)
		}

	case beforeAttributeValueState:
		switch {
		case isWhitespace(c):
		case c == '"':
			t.state = attributeValueDoubleQuotedState
		case c == '\'':
			t.state = attributeValueSingleQuotedState
		case c == '>':
			t.parseError("missing-attribute-value")
			t.state = dataState
			t.emitTag()
		default:
			t.reconsumeIn(attributeValueUnquotedState)
		}

	case attributeValueDoubleQuotedState, attributeValueSingleQuotedState:
		quote := '"'
		if t.state == attributeValueSingleQuotedState {
			quote = '\''
		}
		switch c {
		case quote:
			t.state = afterAttributeValueQuotedState
		case eof:
			t.eofInTag()
		default:
			t.attrVal.WriteRune(c)
		}

	case attributeValueUnquotedState:
		switch {
		case isWhitespace(c):
			t.state = beforeAttributeNameState
		case c == '>':
			t.state = dataState
			t.emitTag()
		case c == eof:
			t.eofInTag()
		case c == '"' || c == '\'' || c == '<' || c == '=' || c == '`':
			t.parseError("unexpected-character-in-unquoted-attribute-value")
			t.attrVal.WriteRune(c)
		default:
			t.attrVal.WriteRune(c)
		}

	case afterAttributeValueQuotedState:
		switch {
		case isWhitespace(c):
			t.state = beforeAttributeNameState
		case c == '/':
			t.state = selfClosingStartTagState
		case c == '>':
			t.state = dataState
			t.emitTag()
		case c == eof:
			t.eofInTag()
		default:
			t.parseError("missing-whitespace-between-attributes")
			t.reconsumeIn(beforeAttributeNameState)
		}

	case selfClosingStartTagState:
		switch c {
		case '>':
			t.tag.SelfClosing = true
			t.state = dataState
			t.emitTag()
		case eof:
			t.eofInTag()
		default:
			t.parseError("unexpected-solidus-in-tag")
			t.reconsumeIn(beforeAttributeNameState)
		}

	case commentStartState:
		switch c {
		case '-':
			t.state = commentStartDashState
		case '>':
			t.parseError("abrupt-closing-of-empty-comment")
			t.state = dataState
			t.emitComment()
		default:
			t.reconsumeIn(commentState)
		}

	case commentStartDashState:
		switch c {
		case '-':
			t.state = commentEndState
		case '>':
			t.parseError("abrupt-closing-of-empty-comment")
			t.state = dataState
			t.emitComment()
		case eof:
			t.parseError("eof-in-comment")
			t.emitComment()
			t.emitEOF()
		default:
			t.comment.WriteRune('-')
			t.reconsumeIn(commentState)
		}

	case commentState:
		switch c {
		case '-':
			t.state = commentEndDashState
		case eof:
			t.parseError("eof-in-comment")
			t.emitComment()
			t.emitEOF()
		default:
			t.comment.WriteRune(c)
		}

	case commentEndDashState:
		switch c {
		case '-':
			t.state = commentEndState
		case eof:
			t.parseError("eof-in-comment")
			t.emitComment()
			t.emitEOF()
		default:
			t.comment.WriteRune('-')
			t.reconsumeIn(commentState)
		}

	case commentEndState:
		switch c {
		case '>':
			t.state = dataState
			t.emitComment()
		case '-':
			t.comment.WriteRune('-')
		case eof:
			t.parseError("eof-in-comment")
			t.emitComment()
			t.emitEOF()
		default:
			t.comment.WriteString("--")
			t.reconsumeIn(commentState)
		}

	case bogusCommentState:
		switch c {
		case '>':
			t.state = dataState
			t.emitComment()
		case eof:
			t.emitComment()
			t.emitEOF()
		default:
			t.comment.WriteRune(c)
		}
	}
}
