package rng

import (
    crand "crypto/rand"
    "encoding/binary"
    "math/rand"
    "sync"
    "time"
)

// Rand is a process-wide or per-worker pseudo-random generator. All methods
// are safe for concurrent use; workers that want uncontended access should
// call Fork and keep the child to themselves.
type Rand struct {
    mu sync.Mutex
    r  *rand.Rand
}

// New returns a generator seeded from system entropy. Eight draws from an
// entropy-seeded engine are folded into the final seed.
func New() *Rand {
    var b [8]byte
    engineSeed := time.Now().UnixNano()
    if _, err := crand.Read(b[:]); err == nil {
        engineSeed ^= int64(binary.LittleEndian.Uint64(b[:]))
    }
    engine := rand.New(rand.NewSource(engineSeed))
    var seed int64
    for i := 0; i < 8; i++ { seed = seed*1099511628211 ^ engine.Int63() }
    return NewSeeded(seed)
}

// NewSeeded returns a generator with a fixed seed, for reproducible builds.
func NewSeeded(seed int64) *Rand {
    return &Rand{r: rand.New(rand.NewSource(seed))}
}

// Fork derives an independent child generator. Forking from a fixed-seed
// parent is itself reproducible.
func (g *Rand) Fork() *Rand {
    g.mu.Lock()
    seed := g.r.Int63()
    g.mu.Unlock()
    return NewSeeded(seed)
}

func (g *Rand) Uint64() uint64 {
    g.mu.Lock()
    v := g.r.Uint64()
    g.mu.Unlock()
    return v
}

func (g *Rand) Intn(n int) int {
    g.mu.Lock()
    v := g.r.Intn(n)
    g.mu.Unlock()
    return v
}

// Perm returns a uniform random permutation of [0, n).
func (g *Rand) Perm(n int) []int {
    g.mu.Lock()
    p := g.r.Perm(n)
    g.mu.Unlock()
    return p
}

// Float64Range returns a uniform value in [lo, hi).
func (g *Rand) Float64Range(lo, hi float64) float64 {
    g.mu.Lock()
    v := g.r.Float64()
    g.mu.Unlock()
    return lo + v*(hi-lo)
}

// Float32Range returns a uniform value in [lo, hi]; rounding to float32 can
// yield hi itself.
func (g *Rand) Float32Range(lo, hi float32) float32 {
    return float32(g.Float64Range(float64(lo), float64(hi)))
}
