package chip8

import (
	"math/rand/v2"
)

// RandomSource provides uniformly distributed random bytes.
type RandomSource interface {
	Uint8() uint8
}

type pcgRandom struct {
	rng *rand.Rand
}

// NewRandom returns a random source seeded from the runtime.
func NewRandom() RandomSource {
	return &pcgRandom{
		rng: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
}

// NewSeededRandom returns a random source that produces a predictable
// sequence for the given seed.
func NewSeededRandom(seed uint64) RandomSource {
	return &pcgRandom{
		rng: rand.New(rand.NewPCG(seed, seed)),
	}
}

func (r *pcgRandom) Uint8() uint8 {
	return uint8(r.rng.UintN(256))
}
