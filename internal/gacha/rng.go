package gacha

import (
	cryptoRand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
	"sync"
)

// RandomSource abstract
type RandomSource interface {
	IntN(n int) int // uniform in [0, n); n > 0
}

// crypto random : default generation method
type cryptoRNG struct{}

func (cryptoRNG) IntN(n int) int {
	if n <= 1 {
		return 0
	}
	bound := uint64(n)
	// reject the top slice of the range so the modulo stays uniform
	limit := ^uint64(0) - (^uint64(0) % bound)
	var buf [8]byte
	for {
		if _, err := cryptoRand.Read(buf[:]); err != nil {
			// back to math/rand/v2
			return rand.IntN(n)
		}
		u := binary.BigEndian.Uint64(buf[:])
		if u < limit {
			return int(u % bound)
		}
	}
}

func DefaultRNG() RandomSource { return cryptoRNG{} }

// Replicable RNG (e.g. Monte Carlo, tests). Safe for concurrent use.
type seededRNG struct {
	mu sync.Mutex
	r  *rand.Rand
}

func NewSeededRNG(seed uint64) RandomSource {
	return &seededRNG{r: rand.New(rand.NewPCG(seed, 0))}
}

func (s *seededRNG) IntN(n int) int {
	if n <= 1 {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.IntN(n)
}

// randomRange returns a uniform integer in [min, max], both inclusive.
func randomRange(rng RandomSource, min, max int) int {
	if max <= min {
		return min
	}
	return rng.IntN(max-min+1) + min
}

// pick returns a uniform element of pool. pool must not be empty.
func pick(rng RandomSource, pool []int) int {
	return pool[randomRange(rng, 0, len(pool)-1)]
}
