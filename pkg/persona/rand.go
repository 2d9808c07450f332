package persona

import (
	"math/rand"
	"time"
)

// Rand is the random source behind every stochastic decision in this package.
// Injecting it keeps the prompt builder pure and makes the stylizer and
// evolution testable with a seeded source.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// NewRand returns a seeded source. *rand.Rand satisfies Rand directly.
func NewRand(seed int64) Rand {
	return rand.New(rand.NewSource(seed))
}

// TimeSeededRand returns the production source.
func TimeSeededRand() Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}
