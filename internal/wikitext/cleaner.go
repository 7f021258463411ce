// Package wikitext reduces raw MediaWiki markup to plain text and
// decides whether an article is substantive prose worth keeping.
package wikitext

import (
	"regexp"
	"strings"
)

// Transform is one named, pure text-to-text cleaning pass.
type Transform struct {
	Name    string
	pattern *regexp.Regexp
	replace string
}

// Apply runs the pass over the whole string.
func (t Transform) Apply(text string) string {
	return t.pattern.ReplaceAllString(text, t.replace)
}

// transforms are applied in order. The template pass matches greedily
// to the first closing brace and does not handle nesting; downstream
// consumers only need "good enough" plain text, so the imperfect
// heuristic is kept as is.
var transforms = []Transform{
	{Name: "templates", pattern: regexp.MustCompile(`\{\{[^}]*\}\}`), replace: ""},
	{Name: "category-links", pattern: regexp.MustCompile(`\[\[Kategori:[^\]]*\]\]`), replace: ""},
	{Name: "external-links", pattern: regexp.MustCompile(`\[http[^\]]*\]`), replace: ""},
	{Name: "comments", pattern: regexp.MustCompile(`(?s)<!--.*?-->`), replace: ""},
	{Name: "references", pattern: regexp.MustCompile(`(?s)<ref[^>]*>.*?</ref>`), replace: ""},
	{Name: "internal-links", pattern: regexp.MustCompile(`\[\[(?:[^|\]]*\|)?([^\]]+)\]\]`), replace: "$1"},
}

// Transforms returns the cleaning passes in application order.
func Transforms() []Transform {
	return transforms
}

// Clean strips wiki markup from text and trims surrounding whitespace.
func Clean(text string) string {
	for _, t := range transforms {
		text = t.Apply(text)
	}

	return strings.TrimSpace(text)
}
