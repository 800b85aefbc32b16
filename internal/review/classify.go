// Package review turns a raw review into a short structured summary.
package review

import "strings"

type Category int

const (
	Neutral Category = iota
	Positive
	Negative
)

func (c Category) String() string {
	switch c {
	case Positive:
		return "positive"
	case Negative:
		return "negative"
	}
	return "neutral"
}

// Classifier assigns a category to a single sentence.
type Classifier interface {
	Classify(sentence string) Category
}

var (
	DefaultPositive = []string{"love", "great", "amazing", "perfect", "best", "wonderful",
		"excellent", "brilliant", "beautiful", "favorite", "enjoyed"}
	DefaultNegative = []string{"hate", "bad", "worst", "boring", "disappointed", "poor",
		"terrible", "awful", "waste", "slow"}
)

// KeywordClassifier matches lower-cased sentences against substring lists.
// Positive keywords win over negative ones.
type KeywordClassifier struct {
	Positive []string
	Negative []string
}

func NewKeywordClassifier() KeywordClassifier {
	return KeywordClassifier{Positive: DefaultPositive, Negative: DefaultNegative}
}

func (k KeywordClassifier) Classify(sentence string) Category {
	lower := strings.ToLower(sentence)
	if containsAny(lower, k.Positive) {
		return Positive
	}
	if containsAny(lower, k.Negative) {
		return Negative
	}
	return Neutral
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

// SplitSentences splits on '.' only; abbreviations and decimals are split too.
func SplitSentences(text string) []string {
	var out []string
	for _, part := range strings.Split(text, ".") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part+".")
	}
	return out
}

// Summary holds sentences grouped by category, in input order.
type Summary struct {
	Positive []string
	Negative []string
	Neutral  []string
}

func Summarize(text string, c Classifier) Summary {
	var s Summary
	for _, sentence := range SplitSentences(text) {
		switch c.Classify(sentence) {
		case Positive:
			s.Positive = append(s.Positive, sentence)
		case Negative:
			s.Negative = append(s.Negative, sentence)
		default:
			s.Neutral = append(s.Neutral, sentence)
		}
	}
	return s
}

// Overall is the first neutral sentence, falling back to the first positive.
func (s Summary) Overall() (string, bool) {
	if len(s.Neutral) > 0 {
		return s.Neutral[0], true
	}
	if len(s.Positive) > 0 {
		return s.Positive[0], true
	}
	return "", false
}
