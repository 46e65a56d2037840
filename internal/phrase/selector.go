package phrase

import (
	"math/rand"
	"sync"
	"time"
)

// Selector picks an index in [0, n). Implementations must be safe for
// concurrent use.
type Selector interface {
	Pick(n int) int
}

type randomSelector struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewRandom returns a uniform Selector. A zero seed seeds from the clock.
func NewRandom(seed int64) Selector {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &randomSelector{rnd: rand.New(rand.NewSource(seed))}
}

func (s *randomSelector) Pick(n int) int {
	if n <= 1 {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rnd.Intn(n)
}

// Fixed always picks the same index, clamped to the last variant.
type Fixed int

func (f Fixed) Pick(n int) int {
	if n <= 0 || f < 0 {
		return 0
	}
	if int(f) >= n {
		return n - 1
	}
	return int(f)
}
