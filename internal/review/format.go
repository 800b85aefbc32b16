package review

import (
	"fmt"
	"strings"
)

const (
	maxHighlights     = 3
	maxConsiderations = 2
	ruleWidth         = 60
)

var rule = strings.Repeat("=", ruleWidth)

// Format renders the review summary shown after a paid review lookup.
func Format(text, title, author string, c Classifier) string {
	s := Summarize(text, c)

	var b strings.Builder
	fmt.Fprintf(&b, "\n%s\n", rule)
	fmt.Fprintf(&b, "What readers think about '%s' by %s\n", title, author)
	fmt.Fprintf(&b, "%s\n\n", rule)

	if len(s.Positive) > 0 {
		b.WriteString("✨ The Highlights:\n\n")
		for _, p := range first(s.Positive, maxHighlights) {
			fmt.Fprintf(&b, "  • %s\n", p)
		}
		b.WriteString("\n")
	}

	if len(s.Negative) > 0 {
		b.WriteString("⚠️  Some Considerations:\n\n")
		for _, n := range first(s.Negative, maxConsiderations) {
			fmt.Fprintf(&b, "  • %s\n", n)
		}
		b.WriteString("\n")
	}

	if overall, ok := s.Overall(); ok {
		b.WriteString("📝 Overall Perspective:\n\n")
		fmt.Fprintf(&b, "  %s\n\n", overall)
	}

	fmt.Fprintf(&b, "%s\n", rule)
	return b.String()
}

// FormatInfo renders the book information card.
func FormatInfo(title, author, url string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "\n%s\n", rule)
	fmt.Fprintf(&b, "📚 %s\n", title)
	fmt.Fprintf(&b, "✍️  by %s\n", author)
	fmt.Fprintf(&b, "🔗 %s\n", url)
	fmt.Fprintf(&b, "%s\n", rule)
	return b.String()
}

func first(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}
