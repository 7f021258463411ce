package wikitext

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"daqa/internal/models"
)

// Decision is the outcome of classifying one article.
type Decision int

// Classification outcomes, first match wins.
const (
	Keep Decision = iota
	SkipRedirect
	SkipIncludeOnly
	SkipNotMeaningful
)

// String returns the decision name.
func (d Decision) String() string {
	switch d {
	case Keep:
		return "keep"
	case SkipRedirect:
		return "skip-redirect"
	case SkipIncludeOnly:
		return "skip-include-only"
	case SkipNotMeaningful:
		return "skip-not-meaningful"
	default:
		return "unknown"
	}
}

// redirectMarkers cover the English marker plus the localized one used
// on the Danish Wikipedia.
var redirectMarkers = []string{"#redirect", "#omdirigering"}

// includeOnlyPrefixes on cleaned content mark transclusion fragments:
// a stray template-closing brace, a parameter separator, a closing tag.
var includeOnlyPrefixes = []string{"}", "|", "</"}

var (
	// templateResiduePattern strips remaining templates, category links
	// and whitespace; nothing left means the page is markup only.
	templateResiduePattern = regexp.MustCompile(`\{\{[^}]*\}\}|\[\[Kategori:[^\]]*\]\]|\s`)

	// includeOnlyTemplates are navbox/infobox/table/include-only
	// constructs meant to be transcluded rather than read.
	includeOnlyTemplates = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\{\{\s*(?:Include only|Kun til inklusion)`),
		regexp.MustCompile(`(?i)\{\{\s*(?:navbox|infoboks)`),
		regexp.MustCompile(`(?i)\{\{\s*(?:tabel|Table)`),
	}
)

// Classifier applies the keep/skip rules to raw wikitext.
type Classifier struct {
	minContentLength int
	minWordCount     int
}

// NewClassifier creates a classifier with the given substance
// thresholds: minimum cleaned length in runes and minimum word count.
func NewClassifier(minContentLength, minWordCount int) *Classifier {
	return &Classifier{
		minContentLength: minContentLength,
		minWordCount:     minWordCount,
	}
}

// Classify cleans raw wikitext and decides whether to keep the article.
// The returned CleanedArticle is only valid when the decision is Keep.
func (c *Classifier) Classify(title, raw string) (models.CleanedArticle, Decision) {
	if IsRedirect(raw) {
		return models.CleanedArticle{}, SkipRedirect
	}

	content := Clean(raw)

	if isIncludeOnly(content) {
		return models.CleanedArticle{}, SkipIncludeOnly
	}

	if !c.isMeaningful(content) {
		return models.CleanedArticle{}, SkipNotMeaningful
	}

	return models.CleanedArticle{Title: title, Content: content}, Keep
}

// IsRedirect reports whether raw wikitext is a redirect stub. The check
// is case-insensitive and tolerates leading whitespace.
func IsRedirect(text string) bool {
	trimmed := strings.ToLower(strings.TrimSpace(text))

	for _, marker := range redirectMarkers {
		if strings.HasPrefix(trimmed, marker) {
			return true
		}
	}

	return false
}

// isIncludeOnly reports whether cleaned content is a transclusion
// fragment rather than standalone prose.
func isIncludeOnly(content string) bool {
	trimmed := strings.TrimLeftFunc(content, unicode.IsSpace)

	for _, prefix := range includeOnlyPrefixes {
		if strings.HasPrefix(trimmed, prefix) {
			return true
		}
	}

	if templateResiduePattern.ReplaceAllString(content, "") == "" {
		return true
	}

	wordCount := len(strings.Fields(content))

	for _, template := range includeOnlyTemplates {
		matches := len(template.FindAllString(content, -1))
		if matches == 0 || wordCount == 0 {
			continue
		}

		// The template is the main content when its occurrences account
		// for more than 80% of the words around them.
		if float64(matches)/float64(wordCount) > 0.8 {
			return true
		}
	}

	return false
}

// isMeaningful reports whether cleaned content carries enough substance
// to generate questions from. Length is counted in runes, words by
// whitespace splitting.
func (c *Classifier) isMeaningful(content string) bool {
	return utf8.RuneCountInString(content) >= c.minContentLength &&
		len(strings.Fields(content)) >= c.minWordCount
}
