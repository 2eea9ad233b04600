package ranking

import (
	"math/rand"
	"sync"
)

// lockedShuffler serializes access to a rand.Rand. *rand.Rand itself is not
// safe for concurrent use, and one engine serves every ranking request.
type lockedShuffler struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func (l *lockedShuffler) Shuffle(n int, swap func(i, j int)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.rng.Shuffle(n, swap)
}

// NewLockedShuffler returns a seeded Shuffler safe for concurrent Rank calls.
func NewLockedShuffler(seed int64) Shuffler {
	return &lockedShuffler{rng: rand.New(rand.NewSource(seed))}
}
