package reputation

import (
	"math"
	"sort"
	"time"

	"tutorhub/models"
)

const (
	minScore = 1
	maxScore = 5

	trendWindow       = 10
	trendMinSamples   = 3
	trendThresholdPct = 5.0
)

// tierRule is one row of the tier table, evaluated top-down, first match wins.
type tierRule struct {
	tier     string
	minMean  float64
	minCount int
}

var tierRules = []tierRule{
	{models.TierLegendary, 4.8, 50},
	{models.TierExpert, 4.5, 25},
	{models.TierExperienced, 4.0, 10},
	{models.TierDeveloping, 3.5, 5},
}

// badgeRule awards a badge when the aggregate passes a predicate. Badges are
// not mutually exclusive; every matching rule contributes.
type badgeRule struct {
	name  string
	match func(mean float64, count int, dist map[int]int) bool
}

var badgeRules = []badgeRule{
	{"excellent-tutor", func(mean float64, _ int, _ map[int]int) bool { return mean >= 4.8 }},
	{"highly-rated", func(mean float64, _ int, _ map[int]int) bool { return mean >= 4.5 }},
	{"quality-tutor", func(mean float64, _ int, _ map[int]int) bool { return mean >= 4.0 }},
	{"century-club", func(_ float64, count int, _ map[int]int) bool { return count >= 100 }},
	{"experienced", func(_ float64, count int, _ map[int]int) bool { return count >= 50 }},
	{"established", func(_ float64, count int, _ map[int]int) bool { return count >= 25 }},
	{"proven", func(_ float64, count int, _ map[int]int) bool { return count >= 10 }},
	{"consistently-excellent", func(_ float64, count int, dist map[int]int) bool {
		return count > 0 && float64(dist[5]) >= 0.8*float64(count)
	}},
	{"mostly-excellent", func(_ float64, count int, dist map[int]int) bool {
		return count > 0 && float64(dist[5]) >= 0.6*float64(count)
	}},
}

// ValidScore reports whether s is an acceptable rating value.
func ValidScore(s int) bool {
	return s >= minScore && s <= maxScore
}

// Compute derives the full aggregate for a subject from its submission set.
// The computation is a pure function of the input: recomputing on the same
// submissions always yields the same aggregate, so concurrent recomputes for
// one subject can race safely.
func Compute(subjectID string, submissions []models.RatingSubmission, now time.Time) models.ReputationAggregate {
	agg := models.ReputationAggregate{
		SubjectID:      subjectID,
		Distribution:   emptyDistribution(),
		Tier:           models.TierNew,
		Badges:         []string{},
		TrendDirection: models.TrendStable,
		UpdatedAt:      now,
	}

	if len(submissions) == 0 {
		return agg
	}

	sum := 0
	for _, sub := range submissions {
		if !ValidScore(sub.Score) {
			continue
		}
		agg.Distribution[sub.Score]++
		agg.TotalCount++
		sum += sub.Score
	}
	if agg.TotalCount == 0 {
		return agg
	}

	agg.MeanScore = round1(float64(sum) / float64(agg.TotalCount))
	agg.Tier = tierFor(agg.MeanScore, agg.TotalCount)
	agg.Badges = badgesFor(agg.MeanScore, agg.TotalCount, agg.Distribution)
	agg.TrendDirection, agg.TrendMagnitude = trend(submissions)

	return agg
}

// tierFor evaluates the tier table in descending order.
func tierFor(mean float64, count int) string {
	for _, rule := range tierRules {
		if mean >= rule.minMean && count >= rule.minCount {
			return rule.tier
		}
	}
	return models.TierNew
}

// badgesFor recomputes the badge set from scratch. Badges are never patched
// incrementally; deriving them fresh from the aggregate avoids drift.
func badgesFor(mean float64, count int, dist map[int]int) []string {
	badges := []string{}
	for _, rule := range badgeRules {
		if rule.match(mean, count, dist) {
			badges = append(badges, rule.name)
		}
	}
	return badges
}

// trend compares the older and newer halves of the most recent ratings.
// Fewer than three recent samples is always reported as stable.
func trend(submissions []models.RatingSubmission) (string, float64) {
	recent := recentWindow(submissions, trendWindow)
	if len(recent) < trendMinSamples {
		return models.TrendStable, 0
	}

	half := len(recent) / 2
	firstMean := meanOf(recent[:half])
	secondMean := meanOf(recent[half:])
	if firstMean == 0 {
		return models.TrendStable, 0
	}

	magnitude := round1((secondMean - firstMean) / firstMean * 100)
	switch {
	case magnitude > trendThresholdPct:
		return models.TrendImproving, magnitude
	case magnitude < -trendThresholdPct:
		return models.TrendDeclining, magnitude
	}
	return models.TrendStable, magnitude
}

// recentWindow returns the last n submissions in chronological order.
func recentWindow(submissions []models.RatingSubmission, n int) []models.RatingSubmission {
	sorted := make([]models.RatingSubmission, len(submissions))
	copy(sorted, submissions)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
	})

	if len(sorted) > n {
		sorted = sorted[len(sorted)-n:]
	}
	return sorted
}

func meanOf(submissions []models.RatingSubmission) float64 {
	if len(submissions) == 0 {
		return 0
	}
	sum := 0
	for _, sub := range submissions {
		sum += sub.Score
	}
	return float64(sum) / float64(len(submissions))
}

// emptyDistribution returns a distribution with all five score keys present.
func emptyDistribution() map[int]int {
	dist := make(map[int]int, maxScore)
	for s := minScore; s <= maxScore; s++ {
		dist[s] = 0
	}
	return dist
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
