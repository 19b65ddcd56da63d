package html

import (
	"go.uber.org/zap"
)

type insertionMode int

const (
	initialMode insertionMode = iota
	beforeHTMLMode
	beforeHeadMode
	inHeadMode
	textMode
	afterHeadMode
	inBodyMode
	afterBodyMode
	afterAfterBodyMode
)

func (m insertionMode) String() string {
	switch m {
	case initialMode:
		return "Initial"
	case beforeHTMLMode:
		return "BeforeHtml"
	case beforeHeadMode:
		return "BeforeHead"
	case inHeadMode:
		return "InHead"
	case textMode:
		return "Text"
	case afterHeadMode:
		return "AfterHead"
	case inBodyMode:
		return "InBody"
	case afterBodyMode:
		return "AfterBody"
	case afterAfterBodyMode:
		return "AfterAfterBody"
	}
	return "Unknown"
}

// stepResult tells the driver what to do with the token it just handed to a
// mode handler.
type stepResult int

const (
	consumed stepResult = iota
	ignored
	reprocess
	done
)

// maxReprocess bounds how many times a single token may be handed back to
// the driver. The longest legitimate chain is the implied skeleton,
// Initial through InBody.
const maxReprocess = 16

type modeHandler func(tok Token) stepResult

// TreeBuilder runs the insertion-mode state machine over a token stream
// and builds the document tree.
type TreeBuilder struct {
	tokenizer *Tokenizer
	doc       *Node

	openElements []*Node
	head         *Node

	mode         insertionMode
	originalMode insertionMode
	handlers     map[insertionMode]modeHandler

	logger *zap.Logger
}

func NewTreeBuilder(input string, opts ...Option) *TreeBuilder {
	o := buildOptions(opts)
	b := &TreeBuilder{
		tokenizer: NewTokenizer(input, opts...),
		doc:       NewDocument(),
		mode:      initialMode,
		logger:    o.logger,
	}
	b.handlers = map[insertionMode]modeHandler{
		initialMode:        b.initial,
		beforeHTMLMode:     b.beforeHTML,
		beforeHeadMode:     b.beforeHead,
		inHeadMode:         b.inHead,
		textMode:           b.text,
		afterHeadMode:      b.afterHead,
		inBodyMode:         b.inBody,
		afterBodyMode:      b.afterBody,
		afterAfterBodyMode: b.afterAfterBody,
	}
	return b
}

// Parse builds a document tree from HTML source. It never fails: malformed
// markup is repaired and the problems are logged.
func Parse(input string, opts ...Option) *Node {
	return NewTreeBuilder(input, opts...).Build()
}

// Build consumes the whole token stream and returns the Document node.
func (b *TreeBuilder) Build() *Node {
	for {
		tok := b.tokenizer.Next()
		if b.process(tok) == done || tok.Type == EOFToken {
			return b.doc
		}
	}
}

func (b *TreeBuilder) process(tok Token) stepResult {
	for i := 0; i < maxReprocess; i++ {
		r := b.handlers[b.mode](tok)
		switch r {
		case reprocess:
			continue
		case ignored:
			b.parseError("ignored token", tok)
		}
		return r
	}
	b.logger.Error("html tree builder: token reprocessed too many times, dropping",
		zap.Stringer("token", tok.Type),
		zap.String("name", tok.Name),
		zap.Stringer("mode", b.mode))
	if tok.Type == EOFToken {
		return done
	}
	return ignored
}

func (b *TreeBuilder) parseError(msg string, tok Token) {
	b.logger.Debug("html tree builder parse error",
		zap.String("error", msg),
		zap.Stringer("token", tok.Type),
		zap.String("name", tok.Name),
		zap.Stringer("mode", b.mode))
}

func (b *TreeBuilder) currentNode() *Node {
	if len(b.openElements) == 0 {
		return nil
	}
	return b.openElements[len(b.openElements)-1]
}

func (b *TreeBuilder) insertionPoint() *Node {
	if n := b.currentNode(); n != nil {
		return n
	}
	return b.doc
}

func (b *TreeBuilder) push(n *Node) {
	b.openElements = append(b.openElements, n)
}

func (b *TreeBuilder) pop() *Node {
	n := b.currentNode()
	if n != nil {
		b.openElements = b.openElements[:len(b.openElements)-1]
	}
	return n
}

// popUntil pops elements up to and including the first one named tag.
func (b *TreeBuilder) popUntil(tags ...string) {
	for len(b.openElements) > 0 {
		if b.pop().IsElement(tags...) {
			return
		}
	}
}

func (b *TreeBuilder) removeFromStack(n *Node) {
	for i := len(b.openElements) - 1; i >= 0; i-- {
		if b.openElements[i] == n {
			b.openElements = append(b.openElements[:i], b.openElements[i+1:]...)
			return
		}
	}
}

// insertHTMLElement creates an element for a start tag and appends it at the
// insertion point. Unless the tag is self-closing, the element is also
// pushed onto the stack of open elements.
func (b *TreeBuilder) insertHTMLElement(tok Token) *Node {
	n := NewElement(tok.Name, tok.Attributes)
	b.insertionPoint().AppendChild(n)
	if !tok.SelfClosing {
		b.push(n)
	}
	return n
}

// insertStructuralElement inserts html, head or body. These always stay
// open, even when written self-closing.
func (b *TreeBuilder) insertStructuralElement(tok Token) *Node {
	tok.SelfClosing = false
	return b.insertHTMLElement(tok)
}

// insertVoidElement inserts an element that never has children.
func (b *TreeBuilder) insertVoidElement(tok Token) {
	tok.SelfClosing = true
	b.insertHTMLElement(tok)
}

func (b *TreeBuilder) insertSyntheticElement(tag string) *Node {
	return b.insertHTMLElement(Token{Type: StartTagToken, Name: tag})
}

// insertCharacter appends r to the insertion point, extending a trailing
// Text node if there is one. Characters at the Document level are dropped.
func (b *TreeBuilder) insertCharacter(r rune) {
	parent := b.insertionPoint()
	if parent.Type == DocumentNode {
		b.logger.Debug("html tree builder: dropping character at document level")
		return
	}
	if last := parent.LastChild(); last != nil && last.Type == TextNode {
		last.Data += string(r)
		return
	}
	parent.AppendChild(NewText(string(r)))
}

func (b *TreeBuilder) insertComment(data string, parent *Node) {
	if parent == nil {
		parent = b.insertionPoint()
	}
	parent.AppendChild(NewComment(data))
}

func (b *TreeBuilder) inScopeWith(extra map[string]bool, tags ...string) bool {
	for i := len(b.openElements) - 1; i >= 0; i-- {
		n := b.openElements[i]
		if n.IsElement(tags...) {
			return true
		}
		if scopeBoundaries[n.TagName] || extra[n.TagName] {
			return false
		}
	}
	return false
}

func (b *TreeBuilder) inScope(tags ...string) bool {
	return b.inScopeWith(nil, tags...)
}

var (
	buttonScope   = tagSet("button")
	listItemScope = tagSet("ol", "ul")
)

func (b *TreeBuilder) inButtonScope(tags ...string) bool {
	return b.inScopeWith(buttonScope, tags...)
}

// generateImpliedEndTags pops elements whose end tags may be omitted,
// leaving except on the stack.
func (b *TreeBuilder) generateImpliedEndTags(except string) {
	for {
		n := b.currentNode()
		if n == nil || !impliedEndTags[n.TagName] || n.TagName == except {
			return
		}
		b.pop()
	}
}

func (b *TreeBuilder) closeParagraph() {
	b.generateImpliedEndTags("p")
	if !b.currentNode().IsElement("p") {
		b.logger.Debug("html tree builder: unclosed elements inside p")
	}
	b.popUntil("p")
}

func (b *TreeBuilder) closeParagraphInButtonScope() {
	if b.inButtonScope("p") {
		b.closeParagraph()
	}
}

func (b *TreeBuilder) enterText(tok Token) {
	b.insertHTMLElement(tok)
	if tok.SelfClosing {
		return
	}
	b.originalMode = b.mode
	b.mode = textMode
	b.tokenizer.SwitchToRawText(tok.Name)
}

// mergeAttributes copies attributes from tok that n does not already have.
func mergeAttributes(n *Node, tok Token) {
	if n == nil {
		return
	}
	for _, a := range tok.Attributes {
		if _, ok := n.GetAttribute(a.Name); !ok {
			n.Attributes = append(n.Attributes, a)
		}
	}
}

func isWhitespaceToken(tok Token) bool {
	return tok.Type == CharacterToken && isWhitespace(tok.Char)
}
