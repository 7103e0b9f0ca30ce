// Package metadata cleans scraped source metadata for display.
package metadata

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// DefaultSnippetLength is the display budget for a source excerpt.
const DefaultSnippetLength = 280

// CleanSnippet strips any markup the scraper left in a snippet, collapses
// whitespace, and truncates to maxLen runes. Raw search-result excerpts often
// carry <b>/<em> highlight tags and entity-escaped fragments.
func CleanSnippet(raw string, maxLen int) string {
	if maxLen <= 0 {
		maxLen = DefaultSnippetLength
	}

	text := raw
	if strings.ContainsAny(raw, "<&") {
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
		if err == nil {
			text = doc.Text()
		}
	}

	text = strings.Join(strings.Fields(text), " ")

	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}
	return strings.TrimRight(string(runes[:maxLen]), " ") + "…"
}
