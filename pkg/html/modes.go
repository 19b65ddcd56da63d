package html

func (b *TreeBuilder) initial(tok Token) stepResult {
	switch {
	case isWhitespaceToken(tok):
		return consumed
	case tok.Type == CommentToken:
		b.insertComment(tok.Data, b.doc)
		return consumed
	case tok.Type == EOFToken:
		return done
	}
	b.mode = beforeHTMLMode
	return reprocess
}

func (b *TreeBuilder) beforeHTML(tok Token) stepResult {
	switch {
	case isWhitespaceToken(tok):
		return consumed
	case tok.Type == CommentToken:
		b.insertComment(tok.Data, b.doc)
		return consumed
	case tok.Type == EOFToken:
		return done
	case tok.Type == StartTagToken && tok.Name == "html":
		b.insertStructuralElement(tok)
		b.mode = beforeHeadMode
		return consumed
	case tok.Type == EndTagToken && !isOneOf(tok.Name, "head", "body", "html", "br"):
		return ignored
	}
	b.insertSyntheticElement("html")
	b.mode = beforeHeadMode
	return reprocess
}

func (b *TreeBuilder) beforeHead(tok Token) stepResult {
	switch {
	case isWhitespaceToken(tok):
		return consumed
	case tok.Type == CommentToken:
		b.insertComment(tok.Data, nil)
		return consumed
	case tok.Type == EOFToken:
		return done
	case tok.Type == StartTagToken && tok.Name == "html":
		return b.inBody(tok)
	case tok.Type == StartTagToken && tok.Name == "head":
		b.head = b.insertStructuralElement(tok)
		b.mode = inHeadMode
		return consumed
	case tok.Type == EndTagToken && !isOneOf(tok.Name, "head", "body", "html", "br"):
		return ignored
	}
	b.head = b.insertSyntheticElement("head")
	b.mode = inHeadMode
	return reprocess
}

func (b *TreeBuilder) inHead(tok Token) stepResult {
	switch tok.Type {
	case CharacterToken:
		if isWhitespace(tok.Char) {
			b.insertCharacter(tok.Char)
			return consumed
		}
	case CommentToken:
		b.insertComment(tok.Data, nil)
		return consumed
	case EOFToken:
		return done
	case StartTagToken:
		switch {
		case tok.Name == "html":
			return b.inBody(tok)
		case headVoidElements[tok.Name]:
			b.insertVoidElement(tok)
			return consumed
		case isOneOf(tok.Name, "title", "style", "script", "noscript", "noframes"):
			b.enterText(tok)
			return consumed
		case tok.Name == "head":
			return ignored
		}
	case EndTagToken:
		switch {
		case tok.Name == "head":
			b.pop()
			b.mode = afterHeadMode
			return consumed
		case !isOneOf(tok.Name, "body", "html", "br"):
			return ignored
		}
	}
	b.pop()
	b.mode = afterHeadMode
	return reprocess
}

// text collects the raw contents of title, style, script and friends.
func (b *TreeBuilder) text(tok Token) stepResult {
	switch tok.Type {
	case CharacterToken:
		b.insertCharacter(tok.Char)
		return consumed
	case CommentToken:
		b.insertComment(tok.Data, nil)
		return consumed
	case EOFToken:
		b.parseError("eof in raw text", tok)
		b.pop()
		b.mode = b.originalMode
		return done
	case EndTagToken:
		b.pop()
		b.mode = b.originalMode
		return consumed
	}
	b.parseError("start tag in raw text", tok)
	b.pop()
	b.mode = b.originalMode
	return reprocess
}

func (b *TreeBuilder) afterHead(tok Token) stepResult {
	switch tok.Type {
	case CharacterToken:
		if isWhitespace(tok.Char) {
			b.insertCharacter(tok.Char)
			return consumed
		}
	case CommentToken:
		b.insertComment(tok.Data, nil)
		return consumed
	case EOFToken:
		return done
	case StartTagToken:
		switch {
		case tok.Name == "html":
			return b.inBody(tok)
		case tok.Name == "body":
			b.insertStructuralElement(tok)
			b.mode = inBodyMode
			return consumed
		case headOnlyElements[tok.Name] && b.head != nil:
			b.parseError("head element after head", tok)
			b.push(b.head)
			r := b.inHead(tok)
			b.removeFromStack(b.head)
			return r
		case tok.Name == "head":
			return ignored
		}
	case EndTagToken:
		if !isOneOf(tok.Name, "body", "html", "br") {
			return ignored
		}
	}
	b.insertSyntheticElement("body")
	b.mode = inBodyMode
	return reprocess
}

func (b *TreeBuilder) inBody(tok Token) stepResult {
	switch tok.Type {
	case CharacterToken:
		if tok.Char == 0 {
			return ignored
		}
		b.insertCharacter(tok.Char)
		return consumed
	case CommentToken:
		b.insertComment(tok.Data, nil)
		return consumed
	case EOFToken:
		return done
	case StartTagToken:
		return b.inBodyStartTag(tok)
	case EndTagToken:
		return b.inBodyEndTag(tok)
	}
	return ignored
}

func (b *TreeBuilder) inBodyStartTag(tok Token) stepResult {
	name := tok.Name
	switch {
	case name == "html":
		b.parseError("duplicate html", tok)
		if len(b.openElements) > 0 {
			mergeAttributes(b.openElements[0], tok)
		}
		return consumed
	case headOnlyElements[name]:
		return b.inHead(tok)
	case name == "body":
		b.parseError("duplicate body", tok)
		if len(b.openElements) > 1 && b.openElements[1].IsElement("body") {
			mergeAttributes(b.openElements[1], tok)
		}
		return consumed
	case name == "head":
		return ignored
	case headings[name]:
		b.closeParagraphInButtonScope()
		if cur := b.currentNode(); cur != nil && headings[cur.TagName] {
			b.parseError("nested heading", tok)
			b.pop()
		}
		b.insertHTMLElement(tok)
		return consumed
	case name == "li":
		b.closeListItem(listItemScope, "li")
		b.closeParagraphInButtonScope()
		b.insertHTMLElement(tok)
		return consumed
	case name == "dd" || name == "dt":
		b.closeListItem(nil, "dd", "dt")
		b.closeParagraphInButtonScope()
		b.insertHTMLElement(tok)
		return consumed
	case paragraphClosers[name]:
		b.closeParagraphInButtonScope()
		if voidElements[name] {
			b.insertVoidElement(tok)
		} else {
			b.insertHTMLElement(tok)
		}
		return consumed
	case rawTextElements[name]:
		b.enterText(tok)
		return consumed
	case voidElements[name]:
		b.insertVoidElement(tok)
		return consumed
	}
	b.insertHTMLElement(tok)
	return consumed
}

// closeListItem closes an open list item of the given kinds, stopping at
// the nearest boundary element.
func (b *TreeBuilder) closeListItem(boundary map[string]bool, tags ...string) {
	for i := len(b.openElements) - 1; i >= 0; i-- {
		n := b.openElements[i]
		if n.IsElement(tags...) {
			b.generateImpliedEndTags(n.TagName)
			b.popUntil(n.TagName)
			return
		}
		if boundary[n.TagName] || scopeBoundaries[n.TagName] ||
			(blockContainers[n.TagName] && !isOneOf(n.TagName, "address", "div")) {
			return
		}
	}
}

func (b *TreeBuilder) inBodyEndTag(tok Token) stepResult {
	name := tok.Name
	switch {
	case name == "body":
		if !b.inScope("body") {
			return ignored
		}
		b.mode = afterBodyMode
		return consumed
	case name == "html":
		if !b.inScope("body") {
			return ignored
		}
		b.mode = afterBodyMode
		return reprocess
	case blockContainers[name]:
		if !b.inScope(name) {
			return ignored
		}
		b.generateImpliedEndTags("")
		b.popUntil(name)
		return consumed
	case name == "p":
		if !b.inButtonScope("p") {
			b.parseError("end p without open p", tok)
			b.insertSyntheticElement("p")
		}
		b.closeParagraph()
		return consumed
	case name == "li":
		if !b.inScopeWith(listItemScope, "li") {
			return ignored
		}
		b.generateImpliedEndTags("li")
		b.popUntil("li")
		return consumed
	case name == "dd" || name == "dt":
		if !b.inScope(name) {
			return ignored
		}
		b.generateImpliedEndTags(name)
		b.popUntil(name)
		return consumed
	case headings[name]:
		if !b.inScope("h1", "h2", "h3", "h4", "h5", "h6") {
			return ignored
		}
		b.generateImpliedEndTags("")
		b.popUntil("h1", "h2", "h3", "h4", "h5", "h6")
		return consumed
	case name == "br":
		b.parseError("end br", tok)
		return b.inBodyStartTag(Token{Type: StartTagToken, Name: "br"})
	}
	if b.currentNode().IsElement(name) {
		b.pop()
		return consumed
	}
	return ignored
}

func (b *TreeBuilder) afterBody(tok Token) stepResult {
	switch {
	case isWhitespaceToken(tok):
		return b.inBody(tok)
	case tok.Type == CommentToken:
		var html *Node
		if len(b.openElements) > 0 {
			html = b.openElements[0]
		}
		b.insertComment(tok.Data, html)
		return consumed
	case tok.Type == EOFToken:
		return done
	case tok.Type == StartTagToken && tok.Name == "html":
		return b.inBody(tok)
	case tok.Type == EndTagToken && tok.Name == "html":
		b.mode = afterAfterBodyMode
		return consumed
	}
	b.parseError("content after body", tok)
	b.mode = inBodyMode
	return reprocess
}

func (b *TreeBuilder) afterAfterBody(tok Token) stepResult {
	switch {
	case tok.Type == CommentToken:
		b.insertComment(tok.Data, b.doc)
		return consumed
	case tok.Type == EOFToken:
		return done
	case isWhitespaceToken(tok), tok.Type == StartTagToken && tok.Name == "html":
		return b.inBody(tok)
	}
	b.parseError("content after html", tok)
	b.mode = inBodyMode
	return reprocess
}

func isOneOf(name string, names ...string) bool {
	for _, n := range names {
		if name == n {
			return true
		}
	}
	return false
}
