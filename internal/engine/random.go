package engine

import "math/rand/v2"

// Prng is the single seeded random source owned by a Game. Every shuffle and
// random pick goes through it, so a seed plus an action sequence replays
// identically.
type Prng struct {
	r *rand.Rand
}

func NewPrng(seed uint64) *Prng {
	return &Prng{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// IntN returns a value in [0, n). Panics if n <= 0.
func (p *Prng) IntN(n int) int {
	return p.r.IntN(n)
}

func (p *Prng) Shuffle(n int, swap func(i, j int)) {
	p.r.Shuffle(n, swap)
}

// ShuffleSlice shuffles s in place.
func ShuffleSlice[T any](p *Prng, s []T) {
	p.Shuffle(len(s), func(i, j int) {
		s[i], s[j] = s[j], s[i]
	})
}
