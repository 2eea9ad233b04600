package ranking

import (
	"strings"
	"testing"
	"unicode/utf8"

	"tutorhub/models"

	"github.com/stretchr/testify/assert"
)

func answerWith(content string) models.CommunityAnswer {
	return models.CommunityAnswer{ID: "a1", AuthorID: "author", Content: content}
}

func TestSummarizeFirstSentence(t *testing.T) {
	summary := Summarize(answerWith("Practice daily with flashcards. Then review weekly."))
	assert.True(t, strings.HasPrefix(summary, "Practice daily with flashcards."))
	assert.NotContains(t, summary, "Then review weekly")
}

func TestSummarizeQuestionTerminator(t *testing.T) {
	summary := Summarize(answerWith("Have you tried spaced repetition? It works well."))
	assert.True(t, strings.HasPrefix(summary, "Have you tried spaced repetition?"))
}

func TestSummarizeTruncatesWithoutTerminator(t *testing.T) {
	content := strings.Repeat("word ", 60) // 300 chars, no terminator
	summary := Summarize(answerWith(content))

	cut := summary
	if idx := strings.Index(summary, " [keywords:"); idx >= 0 {
		cut = summary[:idx]
	}
	assert.Len(t, cut, 150)
}

func TestSummarizeMultibyteTruncation(t *testing.T) {
	content := "a" + strings.Repeat("é", 200) // no terminator, two-byte runes
	summary := Summarize(answerWith(content))

	cut := summary
	if idx := strings.Index(summary, " [keywords:"); idx >= 0 {
		cut = summary[:idx]
	}
	assert.True(t, utf8.ValidString(cut))
	assert.Equal(t, 150, utf8.RuneCountInString(cut))
}

func TestSummarizeKeywords(t *testing.T) {
	summary := Summarize(answerWith("Algebra requires practice. Practice algebra problems until algebra clicks."))

	// Up to three distinct tokens of length >= 5, first-seen, case-insensitive
	assert.Contains(t, summary, "[keywords: algebra, requires, practice]")
}

func TestSummarizeKeywordsCountCharacters(t *testing.T) {
	// "déjà" is four characters across six bytes and stays below the minimum.
	summary := Summarize(answerWith("It was déjà vu again today honestly."))
	assert.Contains(t, summary, "[keywords: again, today, honestly]")
}

func TestSummarizeKeywordsDeduplicateCaseInsensitive(t *testing.T) {
	summary := Summarize(answerWith("Calculus CALCULUS calculus tiny."))
	assert.Contains(t, summary, "[keywords: calculus]")
}

func TestSummarizeEmptyContent(t *testing.T) {
	assert.Equal(t, "", Summarize(answerWith("   ")))
}

func TestSummarizeDeterministic(t *testing.T) {
	ans := answerWith("Consistent output matters. Summaries never vary between calls.")
	assert.Equal(t, Summarize(ans), Summarize(ans))
}
