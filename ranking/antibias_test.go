package ranking

import (
	"fmt"
	"math"
	"math/rand"
	"sync"
	"testing"
	"time"

	"tutorhub/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seededEngine(seed int64) *Engine {
	return New(rand.New(rand.NewSource(seed)))
}

// makeAnswers builds n answers; the first newCount have author reputation
// below the established threshold.
func makeAnswers(n, newCount int, createdAt time.Time) []models.CommunityAnswer {
	answers := make([]models.CommunityAnswer, n)
	for i := range answers {
		rep := 250.0
		if i < newCount {
			rep = 10.0
		}
		answers[i] = models.CommunityAnswer{
			ID:             fmt.Sprintf("answer-%d", i),
			AuthorID:       fmt.Sprintf("author-%d", i),
			AuthorRepScore: rep,
			Content:        "Some answer content goes here.",
			CreatedAt:      createdAt,
		}
	}
	return answers
}

func TestRankEmptyInput(t *testing.T) {
	ranked := seededEngine(1).Rank(nil, DefaultConfig(), time.Now())
	assert.Empty(t, ranked)
}

func TestVoteHidingWindow(t *testing.T) {
	now := time.Now()
	cfg := DefaultConfig()
	cfg.ShuffleBoundaryCount = 0

	answers := []models.CommunityAnswer{
		{ID: "recent", AuthorID: "a", AuthorRepScore: 10, CreatedAt: now.Add(-23 * time.Hour)},
		{ID: "old", AuthorID: "b", AuthorRepScore: 10, CreatedAt: now.Add(-25 * time.Hour)},
	}
	cfg.NewContributorQuota = 1.0

	ranked := seededEngine(1).Rank(answers, cfg, now)
	require.Len(t, ranked, 2)

	byID := map[string]models.RankedAnswer{}
	for _, r := range ranked {
		byID[r.ID] = r
	}
	assert.True(t, byID["recent"].VoteCountsHidden)
	assert.False(t, byID["old"].VoteCountsHidden)
}

func TestQuotaSelection(t *testing.T) {
	// 10 answers: 6 new contributors, 4 established. floor(10*0.3)=3 new,
	// floor(10*0.7)=7 established slots but only 4 exist -> 7 total.
	now := time.Now()
	answers := makeAnswers(10, 6, now.Add(-48*time.Hour))

	ranked := seededEngine(42).Rank(answers, DefaultConfig(), now)
	assert.Len(t, ranked, 7)

	stats := Diversity(ranked)
	assert.Equal(t, 3, stats.NewContributors)
	assert.Equal(t, 4, stats.Established)
}

func TestQuotaOutputBound(t *testing.T) {
	now := time.Now()
	cfg := DefaultConfig()

	for _, n := range []int{0, 1, 3, 7, 10, 25} {
		for newCount := 0; newCount <= n; newCount++ {
			answers := makeAnswers(n, newCount, now.Add(-48*time.Hour))
			ranked := seededEngine(7).Rank(answers, cfg, now)

			bound := int(math.Floor(float64(n)*cfg.NewContributorQuota)) +
				int(math.Floor(float64(n)*cfg.EstablishedContributorQuota))
			assert.LessOrEqual(t, len(ranked), bound, "n=%d newCount=%d", n, newCount)

			// Every output item must come from the input set
			inputIDs := map[string]bool{}
			for _, a := range answers {
				inputIDs[a.ID] = true
			}
			for _, r := range ranked {
				assert.True(t, inputIDs[r.ID], "fabricated item %s", r.ID)
			}
		}
	}
}

func TestQuotaClamped(t *testing.T) {
	now := time.Now()
	cfg := DefaultConfig()
	cfg.NewContributorQuota = 1.5 // clamps to 1.0
	cfg.EstablishedContributorQuota = -0.2 // clamps to 0

	answers := makeAnswers(4, 4, now.Add(-48*time.Hour))
	ranked := seededEngine(3).Rank(answers, cfg, now)
	assert.Len(t, ranked, 4)
}

func TestShuffleBoundaryPreservesTail(t *testing.T) {
	now := time.Now()
	cfg := DefaultConfig()
	cfg.ShuffleBoundaryCount = 3
	cfg.NewContributorQuota = 1.0
	cfg.EstablishedContributorQuota = 0

	answers := makeAnswers(12, 12, now.Add(-48*time.Hour))
	ranked := seededEngine(99).Rank(answers, cfg, now)
	require.Len(t, ranked, 12)

	// Items past the boundary keep their pre-shuffle relative order.
	for i := cfg.ShuffleBoundaryCount; i < len(ranked); i++ {
		assert.Equal(t, fmt.Sprintf("answer-%d", i), ranked[i].ID)
	}
}

func TestShuffleBoundaryBeyondLength(t *testing.T) {
	now := time.Now()
	cfg := DefaultConfig()
	cfg.NewContributorQuota = 1.0
	cfg.EstablishedContributorQuota = 0
	cfg.ShuffleBoundaryCount = 100

	answers := makeAnswers(5, 5, now.Add(-48*time.Hour))
	ranked := seededEngine(5).Rank(answers, cfg, now)
	assert.Len(t, ranked, 5)
}

func TestShuffleDeterministicWithSeed(t *testing.T) {
	now := time.Now()
	answers := makeAnswers(10, 5, now.Add(-48*time.Hour))

	first := seededEngine(1234).Rank(answers, DefaultConfig(), now)
	second := seededEngine(1234).Rank(answers, DefaultConfig(), now)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].ID, second[i].ID)
	}
}

func TestRankConcurrentOnSharedEngine(t *testing.T) {
	now := time.Now()
	engine := New(NewLockedShuffler(7))
	answers := makeAnswers(20, 10, now.Add(-48*time.Hour))
	cfg := DefaultConfig()

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			// floor(20*0.3)=6 new slots, all 10 established fit -> 16.
			for i := 0; i < 50; i++ {
				ranked := engine.Rank(answers, cfg, now)
				if len(ranked) != 16 {
					t.Errorf("Expected 16 ranked answers, got %d", len(ranked))
					return
				}
			}
		}()
	}
	wg.Wait()
}

func TestDiversityStats(t *testing.T) {
	ranked := []models.RankedAnswer{
		{CommunityAnswer: models.CommunityAnswer{ID: "1", AuthorID: "a", AuthorRepScore: 10}},
		{CommunityAnswer: models.CommunityAnswer{ID: "2", AuthorID: "a", AuthorRepScore: 10}},
		{CommunityAnswer: models.CommunityAnswer{ID: "3", AuthorID: "b", AuthorRepScore: 300}},
		{CommunityAnswer: models.CommunityAnswer{ID: "4", AuthorID: "c", AuthorRepScore: 300}},
	}

	stats := Diversity(ranked)
	assert.Equal(t, 3, stats.UniqueAuthorCount)
	assert.Equal(t, 75.0, stats.DiversityIndex)
	assert.Equal(t, 2, stats.NewContributors)
	assert.Equal(t, 2, stats.Established)
}

func TestDiversityEmpty(t *testing.T) {
	stats := Diversity(nil)
	assert.Equal(t, 0, stats.UniqueAuthorCount)
	assert.Equal(t, 0.0, stats.DiversityIndex)
}
