package simgraph

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/nodeflock/shepherdsim/ids"
)

// randSource adapts a *math/rand.Rand, the explicit rng every stochastic
// call here takes, to the source interface gonum's distributions expect,
// so distuv.Poisson can be driven by the same rng as every other draw in a
// call instead of a second, untracked source.
type randSource struct {
	r *rand.Rand
}

func (s randSource) Uint64() uint64 {
	return uint64(s.r.Uint32())<<32 | uint64(s.r.Uint32())
}

func (s randSource) Seed(seed uint64) {
	s.r.Seed(int64(seed))
}

// shuffleTags permutes t in place using the Fisher-Yates algorithm driven
// by rng.
func shuffleTags(rng *rand.Rand, t []ids.TagID) {
	rng.Shuffle(len(t), func(i, j int) { t[i], t[j] = t[j], t[i] })
}

// randInRange draws a uniform integer in [lo, hi] inclusive.
func randInRange(rng *rand.Rand, lo, hi int64) int64 {
	if lo >= hi {
		return lo
	}

	return lo + rng.Int63n(hi-lo+1)
}

// randWeight draws a uniform edge weight in [lo, hi] inclusive.
func randWeight(rng *rand.Rand, lo, hi int64) int64 {
	return randInRange(rng, lo, hi)
}

// checkPoissonRate validates a Poisson rate parameter: the rate must be
// finite and non-negative, or ErrNumericDomain is returned.
func checkPoissonRate(lambda float64) error {
	if math.IsNaN(lambda) || math.IsInf(lambda, 0) || lambda < 0 {
		return ErrNumericDomain
	}

	return nil
}

// samplePoisson draws a single non-negative integer sample from
// Poisson(lambda) using rng as the entropy source. lambda is assumed
// already validated by checkPoissonRate; lambda == 0 is handled directly
// since a zero-rate Poisson distribution is degenerate at 0.
func samplePoisson(rng *rand.Rand, lambda float64) int {
	if lambda == 0 {
		return 0
	}

	dist := distuv.Poisson{Lambda: lambda, Src: randSource{r: rng}}
	n := int(dist.Rand() + 0.5)
	if n < 0 {
		n = 0
	}

	return n
}
