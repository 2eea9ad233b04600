package ranking

import (
	"math"
	"time"

	"tutorhub/models"
)

const (
	defaultHideVotesWindowHours = 24
	defaultShuffleBoundary      = 10
	defaultNewQuota             = 0.30
	defaultEstablishedQuota     = 0.70

	// Authors at or above this reputation score count as established.
	establishedThreshold = 100
)

// Config controls the anti-bias ranking pass.
type Config struct {
	HideVotesWindowHours        int     `json:"hideVotesWindowHours"`
	ShuffleBoundaryCount        int     `json:"shuffleBoundaryCount"`
	NewContributorQuota         float64 `json:"newContributorQuota"`
	EstablishedContributorQuota float64 `json:"establishedContributorQuota"`
}

// DefaultConfig returns the default ranking configuration.
func DefaultConfig() Config {
	return Config{
		HideVotesWindowHours:        defaultHideVotesWindowHours,
		ShuffleBoundaryCount:        defaultShuffleBoundary,
		NewContributorQuota:         defaultNewQuota,
		EstablishedContributorQuota: defaultEstablishedQuota,
	}
}

// Shuffler is the random-source capability used for the bounded shuffle.
// *math/rand.Rand satisfies it; tests inject a seeded instance to reproduce
// exact permutations.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

// Engine ranks community answers so that early votes and author reputation
// do not lock in a display order.
type Engine struct {
	rng Shuffler
}

// New creates a ranking engine drawing randomness from rng.
func New(rng Shuffler) *Engine {
	return &Engine{rng: rng}
}

// Rank produces the display ordering for a list of answers:
// vote counts are hidden inside the configured window, output slots are split
// by quota between new and established contributors, and the leading
// shuffleBoundaryCount entries are randomly permuted. Answers beyond both
// quotas are dropped from the output.
func (e *Engine) Rank(answers []models.CommunityAnswer, cfg Config, now time.Time) []models.RankedAnswer {
	if len(answers) == 0 {
		return []models.RankedAnswer{}
	}

	hideWindow := time.Duration(cfg.HideVotesWindowHours) * time.Hour

	var newcomers, established []models.RankedAnswer
	for _, ans := range answers {
		ranked := models.RankedAnswer{
			CommunityAnswer:  ans,
			VoteCountsHidden: now.Sub(ans.CreatedAt) < hideWindow,
		}
		if ans.AuthorRepScore < establishedThreshold {
			newcomers = append(newcomers, ranked)
		} else {
			established = append(established, ranked)
		}
	}

	n := len(answers)
	newSlots := quotaSlots(n, cfg.NewContributorQuota)
	establishedSlots := quotaSlots(n, cfg.EstablishedContributorQuota)

	out := make([]models.RankedAnswer, 0, n)
	out = append(out, takeFirst(newcomers, newSlots)...)
	out = append(out, takeFirst(established, establishedSlots)...)

	boundary := cfg.ShuffleBoundaryCount
	if boundary > len(out) {
		boundary = len(out)
	}
	if boundary > 1 {
		prefix := out[:boundary]
		e.rng.Shuffle(len(prefix), func(i, j int) {
			prefix[i], prefix[j] = prefix[j], prefix[i]
		})
	}

	return out
}

// Diversity computes author-diversity statistics over a ranked output list.
func Diversity(ranked []models.RankedAnswer) models.DiversityStats {
	stats := models.DiversityStats{}
	if len(ranked) == 0 {
		return stats
	}

	authors := make(map[string]struct{})
	for _, ans := range ranked {
		authors[ans.AuthorID] = struct{}{}
		if ans.AuthorRepScore < establishedThreshold {
			stats.NewContributors++
		} else {
			stats.Established++
		}
	}

	stats.UniqueAuthorCount = len(authors)
	stats.DiversityIndex = round1(float64(stats.UniqueAuthorCount) / float64(len(ranked)) * 100)
	return stats
}

// quotaSlots converts a quota fraction into a slot count, clamping the
// fraction to [0,1]. A zero slot count is valid.
func quotaSlots(total int, quota float64) int {
	quota = math.Max(0, math.Min(1, quota))
	return int(math.Floor(float64(total) * quota))
}

func takeFirst(answers []models.RankedAnswer, n int) []models.RankedAnswer {
	if n > len(answers) {
		n = len(answers)
	}
	return answers[:n]
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
