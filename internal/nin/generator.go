package nin

import (
	"math/rand/v2"
	"sync"
	"time"
)

// DefaultMaxTries bounds the rejection loop of pattern and date-range
// generation.
const DefaultMaxTries = 1000

// Generator owns the random source used for generation. A single Generator
// is safe for concurrent use: a mutex serializes access to its source, so
// concurrent callers each receive valid identifiers drawn from one stream.
type Generator struct {
	mu       sync.Mutex
	rnd      *rand.Rand
	maxTries int
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed makes the generator deterministic.
func WithSeed(seed uint64) Option {
	return func(g *Generator) {
		g.rnd = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
}

// WithMaxTries sets the retry budget for bounded generation. Values below
// one fall back to DefaultMaxTries.
func WithMaxTries(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.maxTries = n
		}
	}
}

// NewGenerator creates a Generator. Without WithSeed it is seeded randomly.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{maxTries: DefaultMaxTries}
	for _, opt := range opts {
		opt(g)
	}
	if g.rnd == nil {
		g.rnd = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return g
}

// MaxTries returns the retry budget for bounded generation.
func (g *Generator) MaxTries() int {
	return g.maxTries
}

// Fork returns an independent Generator seeded from g's stream, with the
// same retry budget. Long-running draws such as ManyRandom can run on a fork
// without holding g's lock. Forks of a seeded generator are deterministic.
func (g *Generator) Fork() *Generator {
	g.mu.Lock()
	seed := g.rnd.Uint64()
	g.mu.Unlock()
	return NewGenerator(WithSeed(seed), WithMaxTries(g.maxTries))
}

// intN returns a uniform int in [0, n).
func (g *Generator) intN(n int) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rnd.IntN(n)
}

// digit returns a random ASCII digit.
func (g *Generator) digit() byte {
	return byte('0' + g.intN(10))
}

// dateInRange returns a uniform date in [from, to]; both are whole UTC days.
func (g *Generator) dateInRange(from, to time.Time) time.Time {
	days := int(to.Sub(from).Hours()/24) + 1
	return from.AddDate(0, 0, g.intN(days))
}

// truncateDay drops the time of day, keeping the calendar date.
func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
