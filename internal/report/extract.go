// Package report mines structured suggestions and counts out of the
// free-text analysis reports produced by the generative backend. The report
// format is not contractually guaranteed, so extraction degrades through a
// fixed fallback chain instead of ever failing.
package report

import (
	"fmt"
	"regexp"
	"strings"
)

// Suggestion is one parsed recommendation. IDs are unique within a single
// extraction call only and must not be used as persistent keys.
type Suggestion struct {
	ID            string `json:"id"`
	Text          string `json:"text"`
	OriginalText  string `json:"original_text,omitempty"`
	SuggestedText string `json:"suggested_text,omitempty"`
}

// Counts holds the bullet totals of the two report sections the console
// surfaces. Zero on any parse miss.
type Counts struct {
	Issues      int `json:"issue_count"`
	Suggestions int `json:"suggestion_count"`
}

const bulletStart = "- **"

// Section headers carry a numeric marker, e.g. "**4. Improvement
// Suggestions**". A section runs until the next numeric-marker header or end
// of report.
var (
	reSuggestionsHeader = regexp.MustCompile(`(?i)\*\*\s*\d+\.\s*Improvement Suggestions[^\n*]*\*\*`)
	reIssuesHeader      = regexp.MustCompile(`(?i)\*\*\s*\d+\.\s*Key Issues[^\n*]*\*\*`)
	reNextSection       = regexp.MustCompile(`\*\*\s*\d+\.`)
	reBulletTitle       = regexp.MustCompile(`-\s*\*\*(.+?)\*\*\s*:`)
)

// Keyword fallback phrases, scanned in this fixed order.
var knownSuggestionPhrases = []string{
	"Moderate Use of Emojis",
	"Incorporate Product Details",
	"Refine Messaging",
	"Clear Value Proposition",
	"Reduce Exclamations",
	"Add Specificity",
	"Focus on Benefits",
	"Maintain Consistency",
}

// Guaranteed last-resort suggestions so the UI always has actionable chips.
var defaultSuggestions = []string{
	"Moderate Use of Emojis",
	"Incorporate Product Details",
	"Refine Messaging",
}

// ExtractSuggestions recovers a best-effort suggestion list from a report.
// Strategies apply in strict order, stopping at the first that yields
// results:
//  1. bullets of the "Improvement Suggestions" section
//  2. known phrases anywhere in the report
//  3. bullets of the "Key Issues" section, prefixed "Fix "
//  4. hardcoded defaults
//
// Empty input returns an empty slice; the function never fails.
func ExtractSuggestions(text string) []Suggestion {
	if text == "" {
		return []Suggestion{}
	}

	if titles := bulletTitles(sectionBody(text, reSuggestionsHeader)); len(titles) > 0 {
		out := make([]Suggestion, 0, len(titles))
		for i, title := range titles {
			out = append(out, Suggestion{
				ID:   fmt.Sprintf("structured-%d", i+1),
				Text: title,
			})
		}
		return out
	}

	lower := strings.ToLower(text)
	var keyword []Suggestion
	for _, phrase := range knownSuggestionPhrases {
		if strings.Contains(lower, strings.ToLower(phrase)) {
			keyword = append(keyword, Suggestion{
				ID:   fmt.Sprintf("keyword-%d", len(keyword)+1),
				Text: phrase,
			})
		}
	}
	if len(keyword) > 0 {
		return keyword
	}

	if titles := bulletTitles(sectionBody(text, reIssuesHeader)); len(titles) > 0 {
		out := make([]Suggestion, 0, len(titles))
		for i, title := range titles {
			out = append(out, Suggestion{
				ID:   fmt.Sprintf("issue-%d", i+1),
				Text: "Fix " + title,
			})
		}
		return out
	}

	out := make([]Suggestion, 0, len(defaultSuggestions))
	for i, text := range defaultSuggestions {
		out = append(out, Suggestion{
			ID:   fmt.Sprintf("default-%d", i+1),
			Text: text,
		})
	}
	return out
}

// CalculateCounts counts bullet starts in the Key Issues and Improvement
// Suggestions sections. Missing sections count as zero; never fails.
func CalculateCounts(text string) Counts {
	return Counts{
		Issues:      strings.Count(sectionBody(text, reIssuesHeader), bulletStart),
		Suggestions: strings.Count(sectionBody(text, reSuggestionsHeader), bulletStart),
	}
}

// sectionBody returns the text between a section header and the next
// numeric-marker header (or end of report). Empty string when the header is
// absent.
func sectionBody(text string, header *regexp.Regexp) string {
	loc := header.FindStringIndex(text)
	if loc == nil {
		return ""
	}
	body := text[loc[1]:]
	if next := reNextSection.FindStringIndex(body); next != nil {
		body = body[:next[0]]
	}
	return body
}

func bulletTitles(body string) []string {
	var titles []string
	for _, m := range reBulletTitle.FindAllStringSubmatch(body, -1) {
		title := strings.TrimSpace(m[1])
		if title != "" {
			titles = append(titles, title)
		}
	}
	return titles
}
