package marginalia

import (
	"strings"
	"unicode"

	"github.com/scholia-labs/scholia/internal/taxonomy"
)

// DefaultTruncateAt bounds the card body length in characters.
const DefaultTruncateAt = 280

// EmptyHint is shown when no annotation is active.
const EmptyHint = "Scroll to see contextual notes appear as you read."

const ellipsis = "..."

// Card is the presentation of one displayed annotation.
type Card struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Color string `json:"color"`
	// Title is empty when it merely repeats the start of the body.
	Title string `json:"title,omitempty"`
	Text  string `json:"text"`
	// Pips marks the card's place among its section's annotations. It is
	// empty when the section has a single annotation.
	Pips []bool `json:"pips,omitempty"`
}

// NewCard builds the card for a, truncating the body at truncateAt
// characters (DefaultTruncateAt when non-positive).
func NewCard(a Annotation, index *Index, truncateAt int) Card {
	if truncateAt <= 0 {
		truncateAt = DefaultTruncateAt
	}
	c := Card{
		ID:    a.ID,
		Label: taxonomy.DisplayName(a.Type),
		Color: taxonomy.MarginaliaColor(a.Type),
		Title: ShortTitle(a),
		Text:  Truncate(a.Content, truncateAt),
	}
	if index != nil {
		pos, total := index.Position(a)
		if total > 1 {
			c.Pips = make([]bool, total)
			if pos >= 0 {
				c.Pips[pos] = true
			}
		}
	}
	return c
}

// ShortTitle returns the title to display for a, or "" when the title
// (minus a trailing ellipsis) is a case-insensitive prefix of the content.
func ShortTitle(a Annotation) string {
	clean := strings.TrimSuffix(a.Title, ellipsis)
	clean = strings.TrimSuffix(clean, "…")
	clean = strings.TrimSpace(clean)

	n := len([]rune(clean))
	content := []rune(a.Content)
	if n > len(content) {
		n = len(content)
	}
	if strings.EqualFold(string(content[:n]), clean) {
		return ""
	}
	return a.Title
}

// Truncate shortens text to at most max characters plus an ellipsis,
// cutting at the last whitespace at or before the limit. A single unbroken
// run longer than max is cut at the limit.
func Truncate(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}

	cut := -1
	for i := max; i > 0; i-- {
		if unicode.IsSpace(runes[i]) {
			cut = i
			break
		}
	}
	if cut < 0 {
		cut = max
	}
	head := strings.TrimRightFunc(string(runes[:cut]), unicode.IsSpace)
	return head + ellipsis
}
