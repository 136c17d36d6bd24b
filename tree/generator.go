package tree

import (
	"fmt"

	"go.uber.org/zap"
)

// Generator writes new sibling groups into a Store.
type Generator struct {
	store       *Store
	sampler     *Sampler
	maxAttempts int
	scratch     []NodeType
	log         *zap.Logger
}

// NewGenerator creates a generator writing into store. maxAttempts bounds
// rejection sampling for groups with a required parent type.
func NewGenerator(store *Store, sampler *Sampler, maxAttempts int, log *zap.Logger) *Generator {
	if maxAttempts <= 0 {
		maxAttempts = 1
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Generator{
		store:       store,
		sampler:     sampler,
		maxAttempts: maxAttempts,
		scratch:     make([]NodeType, store.GroupSize()),
		log:         log,
	}
}

// fill regenerates the scratch group from a freshly seeded run.
func (g *Generator) fill() {
	previous := g.sampler.Sample()
	for i := range g.scratch {
		previous = g.sampler.SampleWithBias(previous)
		g.scratch[i] = previous
	}
}

// CreateSiblingGroup generates a group at [start, start+GroupSize) whose
// members all have the given parent link.
//
// When required is non-nil the group is regenerated until it resolves to
// *required. After maxAttempts failures it returns ErrUngeneratable and the
// store is left unchanged. attempts is the number of passes made.
func (g *Generator) CreateSiblingGroup(start int, parent Link, required *NodeType) (attempts int, err error) {
	nTypes := g.sampler.Types()
	for {
		attempts++
		g.fill()
		if required == nil || ResolveParentType(g.scratch, nTypes) == *required {
			break
		}
		if attempts >= g.maxAttempts {
			g.log.Warn("rejection sampling exhausted",
				zap.Int("start", start),
				zap.Stringer("parent", parent),
				zap.Stringer("required", *required),
				zap.Int("attempts", attempts))
			return attempts, fmt.Errorf("%w: type %s after %d attempts", ErrUngeneratable, *required, attempts)
		}
	}

	g.store.EnsureCapacity(start)
	for i, t := range g.scratch {
		if err := g.store.Set(start+i, Node{Type: t, Parent: parent}); err != nil {
			return attempts, err
		}
	}
	g.log.Debug("sibling group created",
		zap.Int("start", start),
		zap.Stringer("parent", parent),
		zap.Int("attempts", attempts))
	return attempts, nil
}
