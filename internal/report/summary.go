// Package report formats the end-of-run summary.
package report

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/clipperhouse/uax29/v2/words"
	"github.com/mattn/go-runewidth"

	"daqa/internal/models"
	"daqa/internal/pipeline"
)

const separator = "------------------------------------------------"

// Summary renders run statistics as an aligned two-column report.
func Summary(stats pipeline.Stats, rows []models.DatasetRow) string {
	entries := [][2]string{
		{"Articles processed", strconv.Itoa(stats.Processed)},
		{"Kept", strconv.Itoa(stats.Kept)},
		{"Skipped (redirect)", strconv.Itoa(stats.Redirects)},
		{"Skipped (include-only)", strconv.Itoa(stats.IncludeOnly)},
		{"Skipped (not meaningful)", strconv.Itoa(stats.NotMeaningful)},
		{"Missing ids", strconv.Itoa(stats.Missing)},
		{"Cache hits", strconv.Itoa(stats.CacheHits)},
		{"Articles without pairs", strconv.Itoa(stats.EmptyResults)},
		{"Dataset rows", strconv.Itoa(len(rows))},
		{"Context words", strconv.Itoa(ContextWords(rows))},
	}

	labelWidth := 0
	for _, e := range entries {
		if w := runewidth.StringWidth(e[0]); w > labelWidth {
			labelWidth = w
		}
	}

	var b strings.Builder

	b.WriteString(separator + "\n")
	b.WriteString("Run Summary\n")
	b.WriteString(separator + "\n")

	for _, e := range entries {
		fmt.Fprintf(&b, "%s  %s\n", runewidth.FillRight(e[0], labelWidth), e[1])
	}

	b.WriteString(separator)

	return b.String()
}

// ContextWords counts the words across distinct article contexts using
// UAX #29 segmentation, once per article rather than once per row.
func ContextWords(rows []models.DatasetRow) int {
	seen := make(map[string]struct{})
	count := 0

	for _, row := range rows {
		if _, ok := seen[row.Title]; ok {
			continue
		}
		seen[row.Title] = struct{}{}

		tokens := words.FromString(row.Context)
		for tokens.Next() {
			if hasAlphaNum(tokens.Value()) {
				count++
			}
		}
	}

	return count
}

// hasAlphaNum filters out the whitespace and punctuation tokens the
// segmenter also emits.
func hasAlphaNum(token string) bool {
	for _, r := range token {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}

	return false
}
