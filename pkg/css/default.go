package css

import (
	_ "embed"
)

//go:embed default.css
var defaultSheet string

// DefaultStyleSheet is the built-in user-agent stylesheet.
func DefaultStyleSheet() string {
	return defaultSheet
}

// DefaultRules parses the built-in stylesheet.
func DefaultRules(opts ...Option) []Rule {
	return Parse(defaultSheet, opts...)
}
