package review

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitSentences(t *testing.T) {
	assert.Equal(t,
		[]string{"I loved this book.", "It was too slow.", "The ending was fine."},
		SplitSentences("I loved this book. It was too slow. The ending was fine."))

	// naive splitting is kept on purpose
	assert.Equal(t,
		[]string{"Dr.", "Who costs 3.", "50 now."},
		SplitSentences("Dr. Who costs 3.50 now"))

	assert.Empty(t, SplitSentences(" ... "))
	assert.Empty(t, SplitSentences(""))
}

func TestKeywordClassifier(t *testing.T) {
	c := NewKeywordClassifier()

	testCases := []struct {
		sentence string
		expected Category
	}{
		{"I loved this book.", Positive},
		{"It was too slow.", Negative},
		{"The ending was fine.", Neutral},
		{"BRILLIANT prose.", Positive},
		{"The best and the worst of times.", Positive},
		{"A waste of paper.", Negative},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.expected, c.Classify(tc.sentence), tc.sentence)
	}
}

type fixedClassifier Category

func (f fixedClassifier) Classify(string) Category { return Category(f) }

func TestSummarize(t *testing.T) {
	s := Summarize("I loved this book. It was too slow. The ending was fine.", NewKeywordClassifier())
	assert.Equal(t, []string{"I loved this book."}, s.Positive)
	assert.Equal(t, []string{"It was too slow."}, s.Negative)
	assert.Equal(t, []string{"The ending was fine."}, s.Neutral)

	overall, ok := s.Overall()
	require.True(t, ok)
	assert.Equal(t, "The ending was fine.", overall)

	s = Summarize("One. Two.", fixedClassifier(Negative))
	assert.Equal(t, []string{"One.", "Two."}, s.Negative)
	_, ok = s.Overall()
	assert.False(t, ok)
}

func TestFormat(t *testing.T) {
	out := Format("I loved this book. It was too slow. The ending was fine.", "Dune", "Frank Herbert", NewKeywordClassifier())

	expected := "\n" + rule + "\n" +
		"What readers think about 'Dune' by Frank Herbert\n" +
		rule + "\n\n" +
		"✨ The Highlights:\n\n" +
		"  • I loved this book.\n\n" +
		"⚠️  Some Considerations:\n\n" +
		"  • It was too slow.\n\n" +
		"📝 Overall Perspective:\n\n" +
		"  The ending was fine.\n\n" +
		rule + "\n"
	assert.Equal(t, expected, out)
}

func TestFormatLimitsAndFallbacks(t *testing.T) {
	text := "Great one. Great two. Great three. Great four. Bad one. Bad two. Bad three."
	out := Format(text, "T", "A", NewKeywordClassifier())

	assert.Contains(t, out, "Great three.")
	assert.NotContains(t, out, "Great four.")
	assert.Contains(t, out, "Bad two.")
	assert.NotContains(t, out, "Bad three.")
	// no neutral sentence: overall falls back to the first positive
	assert.Contains(t, out, "📝 Overall Perspective:\n\n  Great one.\n")

	out = Format("Awful. Boring.", "T", "A", NewKeywordClassifier())
	assert.NotContains(t, out, "Highlights")
	assert.NotContains(t, out, "Overall Perspective")
	assert.Contains(t, out, "Some Considerations")

	out = Format("Plain words", "T", "A", NewKeywordClassifier())
	assert.NotContains(t, out, "Highlights")
	assert.NotContains(t, out, "Considerations")
	assert.True(t, strings.HasSuffix(out, "  Plain words.\n\n"+rule+"\n"))
}

func TestFormatInfo(t *testing.T) {
	out := FormatInfo("Dune", "Frank Herbert", "https://example.org/book/1")
	assert.Contains(t, out, "📚 Dune\n")
	assert.Contains(t, out, "✍️  by Frank Herbert\n")
	assert.Contains(t, out, "🔗 https://example.org/book/1\n")
}
