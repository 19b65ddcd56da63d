package html

import "strings"

// StylesheetLinks returns the href of every <link rel=stylesheet> in
// document order.
func StylesheetLinks(doc *Node) []string {
	var hrefs []string
	doc.Walk(func(n *Node) bool {
		if !n.IsElement("link") {
			return true
		}
		rel, _ := n.GetAttribute("rel")
		href, ok := n.GetAttribute("href")
		if ok && href != "" && hasToken(rel, "stylesheet") {
			hrefs = append(hrefs, href)
		}
		return true
	})
	return hrefs
}

// StyleSheets returns the text of every <style> element in document order.
func StyleSheets(doc *Node) []string {
	var sheets []string
	doc.Walk(func(n *Node) bool {
		if n.IsElement("style") {
			sheets = append(sheets, n.TextContent())
			return false
		}
		return true
	})
	return sheets
}

func hasToken(list, token string) bool {
	for _, f := range strings.Fields(list) {
		if strings.EqualFold(f, token) {
			return true
		}
	}
	return false
}
