package text

import "strings"

// SplitWords splits text on HTML whitespace, dropping empty words.
// Non-breaking and other Unicode spaces stay inside words.
func SplitWords(text string) []string {
	return strings.FieldsFunc(text, isHTMLSpace)
}

func isHTMLSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\f':
		return true
	}
	return false
}
