package domain

import (
	"math/rand"
	"sync"
	"time"
)

// rng is the package-level random source behind scenario picks, escalation
// bulletins, the location-safety stub, and the mock risk scores. Unseeded by
// default; SetRand installs a seeded source so scenarios are reproducible.
var (
	rngMu sync.Mutex
	rng   = rand.New(rand.NewSource(time.Now().UnixNano()))
)

// SetRand swaps the random source. Pass nil to reset to a time-seeded source.
func SetRand(r *rand.Rand) {
	rngMu.Lock()
	defer rngMu.Unlock()
	if r == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
		return
	}
	rng = r
}

// randIntn returns a uniform integer in [0, n) from the package source.
func randIntn(n int) int {
	rngMu.Lock()
	defer rngMu.Unlock()
	return rng.Intn(n)
}
