package css

import (
	"fmt"
	"strings"
	"unicode"

	"go.uber.org/zap"
)

// Option configures the CSS parser and cascade.
type Option func(*options)

type options struct {
	logger *zap.Logger
}

// WithLogger routes syntax errors to the given logger.
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

// SyntaxError reports where the parser gave up on a rule or declaration.
type SyntaxError struct {
	Offset int
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("css: %s at offset %d", e.Msg, e.Offset)
}

// Parser reads a stylesheet in the subset this engine understands: tag and
// descendant selectors, and property: value declarations with single-word
// values. Errors skip ahead and never abort the parse.
type Parser struct {
	src    []rune
	pos    int
	logger *zap.Logger
}

func NewParser(text string, opts ...Option) *Parser {
	o := buildOptions(opts)
	return &Parser{src: []rune(text), logger: o.logger}
}

// Parse returns every well-formed rule in text, in source order.
func Parse(text string, opts ...Option) []Rule {
	return NewParser(text, opts...).Rules()
}

// ParseDeclarations parses a bare declaration list such as a style
// attribute.
func ParseDeclarations(text string, opts ...Option) map[string]string {
	p := NewParser(text, opts...)
	p.skipSpace()
	return p.body()
}

func (p *Parser) Rules() []Rule {
	var rules []Rule
	for p.skipSpace(); !p.atEnd(); p.skipSpace() {
		rule, err := p.rule()
		if err == nil {
			rules = append(rules, rule)
			continue
		}
		p.report(err)
		if !p.skipUntil('}') {
			break
		}
		p.pos++
	}
	return rules
}

func (p *Parser) atEnd() bool {
	return p.pos >= len(p.src)
}

func (p *Parser) peek() rune {
	if p.atEnd() {
		return 0
	}
	return p.src[p.pos]
}

func (p *Parser) errorf(format string, args ...any) error {
	return &SyntaxError{Offset: p.pos, Msg: fmt.Sprintf(format, args...)}
}

func (p *Parser) report(err error) {
	p.logger.Debug("css syntax error", zap.Error(err))
}

// skipSpace skips whitespace and /* comments */.
func (p *Parser) skipSpace() {
	for !p.atEnd() {
		switch {
		case unicode.IsSpace(p.peek()):
			p.pos++
		case p.peek() == '/' && p.pos+1 < len(p.src) && p.src[p.pos+1] == '*':
			p.pos += 2
			for p.pos+1 < len(p.src) && !(p.src[p.pos] == '*' && p.src[p.pos+1] == '/') {
				p.pos++
			}
			p.pos = min(p.pos+2, len(p.src))
		default:
			return
		}
	}
}

func (p *Parser) literal(r rune) error {
	if p.atEnd() || p.peek() != r {
		return p.errorf("expected %q", r)
	}
	p.pos++
	return nil
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '#' || r == '-' || r == '.' || r == '%'
}

func (p *Parser) word() (string, error) {
	start := p.pos
	for !p.atEnd() && isWordRune(p.peek()) {
		p.pos++
	}
	if p.pos == start {
		return "", p.errorf("expected word")
	}
	return string(p.src[start:p.pos]), nil
}

// skipUntil advances to the next occurrence of any of stops and reports
// whether one was found.
func (p *Parser) skipUntil(stops ...rune) bool {
	for ; !p.atEnd(); p.pos++ {
		for _, s := range stops {
			if p.peek() == s {
				return true
			}
		}
	}
	return false
}

func (p *Parser) rule() (Rule, error) {
	sel, err := p.selector()
	if err != nil {
		return Rule{}, err
	}
	if err := p.literal('{'); err != nil {
		return Rule{}, err
	}
	p.skipSpace()
	decls := p.body()
	if err := p.literal('}'); err != nil {
		return Rule{}, err
	}
	return Rule{Selector: sel, Declarations: decls}, nil
}

func (p *Parser) selector() (Selector, error) {
	tag, err := p.word()
	if err != nil {
		return nil, err
	}
	var sel Selector = &TagSelector{Tag: strings.ToLower(tag)}
	p.skipSpace()
	for !p.atEnd() && p.peek() != '{' {
		tag, err := p.word()
		if err != nil {
			return nil, err
		}
		sel = &DescendantSelector{Ancestor: sel, Descendant: &TagSelector{Tag: strings.ToLower(tag)}}
		p.skipSpace()
	}
	return sel, nil
}

// body reads declarations up to a closing brace or the end of input. A
// declaration is recorded as soon as its value is read, so a missing final
// semicolon loses nothing.
func (p *Parser) body() map[string]string {
	decls := make(map[string]string)
	for !p.atEnd() && p.peek() != '}' {
		err := p.declaration(decls)
		if err == nil {
			continue
		}
		p.report(err)
		if !p.skipUntil(';', '}') || p.peek() == '}' {
			break
		}
		p.pos++
		p.skipSpace()
	}
	return decls
}

func (p *Parser) declaration(decls map[string]string) error {
	prop, err := p.word()
	if err != nil {
		return err
	}
	p.skipSpace()
	if err := p.literal(':'); err != nil {
		return err
	}
	p.skipSpace()
	val, err := p.word()
	if err != nil {
		return err
	}
	decls[strings.ToLower(prop)] = val
	p.skipSpace()
	if p.atEnd() || p.peek() == '}' {
		return nil
	}
	if err := p.literal(';'); err != nil {
		return err
	}
	p.skipSpace()
	return nil
}
