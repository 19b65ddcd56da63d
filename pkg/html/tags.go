package html

func tagSet(tags ...string) map[string]bool {
	m := make(map[string]bool, len(tags))
	for _, t := range tags {
		m[t] = true
	}
	return m
}

var (
	// voidElements never have children and are popped as soon as inserted.
	voidElements = tagSet("area", "base", "basefont", "bgsound", "br", "col", "embed",
		"hr", "img", "input", "keygen", "link", "meta", "param", "source", "track", "wbr")

	headVoidElements = tagSet("base", "basefont", "bgsound", "link", "meta")

	// rawTextElements hold character data only, up to their own end tag.
	rawTextElements = tagSet("title", "style", "script", "noscript", "noframes", "textarea", "xmp")

	// headOnlyElements are handled with the in-head rules wherever they appear.
	headOnlyElements = tagSet("base", "basefont", "bgsound", "link", "meta",
		"noframes", "script", "style", "title")

	// paragraphClosers close an open <p> when they start.
	paragraphClosers = tagSet("address", "article", "aside", "blockquote", "center",
		"details", "dialog", "dir", "div", "dl", "fieldset", "figcaption", "figure",
		"footer", "header", "hgroup", "hr", "listing", "main", "menu", "nav", "ol", "p",
		"pre", "search", "section", "summary", "table", "ul", "form")

	blockContainers = tagSet("address", "article", "aside", "blockquote", "button",
		"center", "details", "dialog", "dir", "div", "dl", "fieldset", "figcaption",
		"figure", "footer", "form", "header", "hgroup", "listing", "main", "menu", "nav",
		"ol", "pre", "search", "section", "summary", "ul")

	headings = tagSet("h1", "h2", "h3", "h4", "h5", "h6")

	impliedEndTags = tagSet("dd", "dt", "li", "optgroup", "option", "p", "rb", "rp", "rt", "rtc")

	scopeBoundaries = tagSet("applet", "caption", "html", "table", "td", "th",
		"marquee", "object", "template")
)

// IsVoidElement reports whether tag never has content.
func IsVoidElement(tag string) bool {
	return voidElements[tag]
}
