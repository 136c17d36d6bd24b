// Package gen builds seeded exploration scripts for benchmarks.
package gen

import "math/rand"

// Up is the Move that ascends; any other Move descends into that slot.
const Up Move = -1

// Move is one navigation step.
type Move int

// RandomWalk returns n moves over groups of groupSize nodes. Each move
// descends into a uniformly chosen slot with probability down, otherwise
// ascends.
func RandomWalk(n, groupSize int, down float64, seed int64) []Move {
	rng := rand.New(rand.NewSource(seed))
	out := make([]Move, n)
	for i := range out {
		if rng.Float64() < down {
			out[i] = Move(rng.Intn(groupSize))
		} else {
			out[i] = Up
		}
	}
	return out
}

// DeepDive returns n descents, each into a uniformly chosen slot.
func DeepDive(n, groupSize int, seed int64) []Move {
	return RandomWalk(n, groupSize, 1, seed)
}
