package quiz

import (
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/vocab-drill/internal/domain"
)

// Selector picks a uniformly random subset of words for a session.
type Selector struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSelector creates a Selector drawing from rng. A nil rng is seeded from
// the clock.
func NewSelector(rng *rand.Rand) *Selector {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Selector{rng: rng}
}

// Select returns min(n, len(words)) distinct words in random order. Words
// sharing an ID count once. n below 1 is treated as 1. The input slice is not
// modified.
func (s *Selector) Select(words []domain.Word, n int) ([]domain.Word, error) {
	pool := dedupe(words)
	if len(pool) == 0 {
		return nil, ErrNoWords
	}
	if n < 1 {
		n = 1
	}
	if n > len(pool) {
		n = len(pool)
	}

	s.mu.Lock()
	// Fisher-Yates over the prefix we return.
	for i := 0; i < n; i++ {
		j := i + s.rng.Intn(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	s.mu.Unlock()

	return pool[:n:n], nil
}

func dedupe(words []domain.Word) []domain.Word {
	seen := make(map[uuid.UUID]bool, len(words))
	out := make([]domain.Word, 0, len(words))
	for _, w := range words {
		if seen[w.ID] {
			continue
		}
		seen[w.ID] = true
		out = append(out, w)
	}
	return out
}
