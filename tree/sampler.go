package tree

import (
	"fmt"
	"math"
)

// Rand is the subset of *rand.Rand used for generation, so that one seeded
// source can be threaded through every draw.
type Rand interface {
	// Float64 returns a pseudo-random number in [0.0,1.0).
	Float64() float64
	// Intn returns a pseudo-random number in [0,n). It panics if n <= 0.
	Intn(n int) int
}

// Sampler draws node types from a weighted palette, with a homogeneity bias
// toward repeating the previous sibling's type.
type Sampler struct {
	weights     []float64
	total       float64
	homogeneity float64
	rng         Rand
}

// NewSampler creates a sampler over weights. homogeneity is the probability
// that SampleWithBias repeats its argument.
func NewSampler(weights []float64, homogeneity float64, rng Rand) (*Sampler, error) {
	if len(weights) == 0 {
		return nil, fmt.Errorf("%w: no types", ErrInvalidConfig)
	}
	if !(homogeneity >= 0 && homogeneity <= 1) {
		return nil, fmt.Errorf("%w: homogeneity %g not in [0,1]", ErrInvalidConfig, homogeneity)
	}
	var total float64
	for i, w := range weights {
		if w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
			return nil, fmt.Errorf("%w: type %d has weight %g", ErrInvalidConfig, i, w)
		}
		total += w
	}
	if total <= 0 {
		return nil, ErrZeroWeight
	}
	return &Sampler{
		weights:     append([]float64(nil), weights...),
		total:       total,
		homogeneity: homogeneity,
		rng:         rng,
	}, nil
}

// Types returns the palette size.
func (s *Sampler) Types() int { return len(s.weights) }

// Weight returns the configured weight of t, or 0 outside the palette.
func (s *Sampler) Weight(t NodeType) float64 {
	if t < 0 || int(t) >= len(s.weights) {
		return 0
	}
	return s.weights[t]
}

// Probability returns the chance that Sample returns t.
func (s *Sampler) Probability(t NodeType) float64 {
	return s.Weight(t) / s.total
}

// Sample draws a type by a cumulative-weight scan. Zero-weight types are
// never returned.
func (s *Sampler) Sample() NodeType {
	r := s.rng.Float64() * s.total
	var sum float64
	last := NoType
	for i, w := range s.weights {
		if w == 0 {
			continue
		}
		sum += w
		last = NodeType(i)
		if sum > r {
			return last
		}
	}
	// float rounding can leave r at or past the final sum
	return last
}

// SampleWithBias returns previous with probability homogeneity, otherwise a
// fresh Sample.
func (s *Sampler) SampleWithBias(previous NodeType) NodeType {
	if s.rng.Float64() < s.homogeneity {
		return previous
	}
	return s.Sample()
}
