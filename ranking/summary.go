package ranking

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"tutorhub/models"
)

const (
	summaryMaxLen   = 150
	keywordMinLen   = 5
	keywordMaxCount = 3
)

// Summarize produces a neutral one-line gist of an answer so readers can scan
// it before seeing votes or author identity. The summary is the text up to the
// first sentence terminator, truncated at 150 characters when none appears,
// with up to three keywords appended.
func Summarize(answer models.CommunityAnswer) string {
	content := strings.TrimSpace(answer.Content)
	if content == "" {
		return ""
	}

	summary := firstSentence(content)
	keywords := extractKeywords(content)
	if len(keywords) > 0 {
		summary += " [keywords: " + strings.Join(keywords, ", ") + "]"
	}
	return summary
}

// firstSentence cuts at the first '.', '!' or '?'; without one inside the
// length cap, it truncates.
func firstSentence(content string) string {
	runes := []rune(content)
	limit := summaryMaxLen
	if limit > len(runes) {
		limit = len(runes)
	}
	for i := 0; i < limit; i++ {
		switch runes[i] {
		case '.', '!', '?':
			return string(runes[:i+1])
		}
	}
	return string(runes[:limit])
}

// extractKeywords picks the first distinct lowercase tokens of length >= 5,
// de-duplicated case-insensitively, in first-seen order.
func extractKeywords(content string) []string {
	words := strings.FieldsFunc(content, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	seen := make(map[string]struct{})
	keywords := make([]string, 0, keywordMaxCount)
	for _, word := range words {
		if utf8.RuneCountInString(word) < keywordMinLen {
			continue
		}
		lower := strings.ToLower(word)
		if _, ok := seen[lower]; ok {
			continue
		}
		seen[lower] = struct{}{}
		keywords = append(keywords, lower)
		if len(keywords) == keywordMaxCount {
			break
		}
	}
	return keywords
}
