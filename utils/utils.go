// File: utils/utils.go
package utils

import (
	"math/rand"
	"sync"
	"time"
)

func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// WithinTolerance reports whether (x1,y1) and (x2,y2) are closer than tol on
// both axes independently.
func WithinTolerance(x1, y1, x2, y2, tol int) bool {
	return Abs(x1-x2) < tol && Abs(y1-y2) < tol
}

// LockedRand is a math/rand source safe for concurrent use.
type LockedRand struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewLockedRand seeds a LockedRand; seed 0 means time-based.
func NewLockedRand(seed int64) *LockedRand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &LockedRand{rng: rand.New(rand.NewSource(seed))}
}

func (r *LockedRand) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Intn(n)
}
