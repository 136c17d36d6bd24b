package tree

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Stats counts the work done by a Navigator.
type Stats struct {
	Nodes       int // store length
	Groups      int // sibling groups created, the initial one included
	Descents    int
	Ascents     int
	Attempts    int // generation passes over all groups
	MaxAttempts int // most passes spent on a single group
}

// Option configures a Navigator.
type Option func(*Navigator)

// WithLogger sets the logger. The default discards everything.
func WithLogger(log *zap.Logger) Option {
	return func(n *Navigator) {
		if log != nil {
			n.log = log
		}
	}
}

// WithRand replaces the generator built from Config.Seed.
func WithRand(rng Rand) Option {
	return func(n *Navigator) {
		if rng != nil {
			n.rng = rng
		}
	}
}

// WithSessionID sets the session id instead of a random one.
func WithSessionID(id uuid.UUID) Option {
	return func(n *Navigator) { n.id = id }
}

// Navigator walks a lazily generated tree one sibling group at a time.
// It is not safe for concurrent use.
type Navigator struct {
	cfg     *Config
	id      uuid.UUID
	rng     Rand
	store   *Store
	sampler *Sampler
	gen     *Generator
	log     *zap.Logger

	current int
	depth   int
	hint    Hint
	stats   Stats
}

// New validates cfg and creates a Navigator positioned on a freshly generated
// root group. Uses DefaultConfig if cfg is nil. cfg is copied; later changes
// to it have no effect.
func New(cfg *Config, opts ...Option) (*Navigator, error) {
	cfg = cfg.Clone().OrDefault()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	n := &Navigator{
		cfg: cfg,
		id:  uuid.New(),
		log: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(n)
	}
	if n.rng == nil {
		n.rng = rand.New(rand.NewSource(cfg.Seed))
	}
	n.log = n.log.With(zap.Stringer("session", n.id))

	sampler, err := NewSampler(cfg.Weights(), cfg.Homogeneity, n.rng)
	if err != nil {
		return nil, err
	}
	n.sampler = sampler
	n.store = NewStore(cfg.GroupSize)
	n.gen = NewGenerator(n.store, sampler, cfg.MaxAttempts, n.log)

	attempts, err := n.gen.CreateSiblingGroup(0, NoLink, nil)
	if err != nil {
		return nil, err
	}
	n.recordGroup(attempts)
	return n, nil
}

func (n *Navigator) recordGroup(attempts int) {
	n.stats.Groups++
	n.recordAttempts(attempts)
}

func (n *Navigator) recordAttempts(attempts int) {
	n.stats.Attempts += attempts
	n.stats.MaxAttempts = max(n.stats.MaxAttempts, attempts)
}

// Config returns a copy of the configuration in use.
func (n *Navigator) Config() *Config { return n.cfg.Clone() }

// ID returns the session id.
func (n *Navigator) ID() uuid.UUID { return n.id }

// Current returns the start index of the visible group.
func (n *Navigator) Current() int { return n.current }

// Depth returns the depth of the visible group relative to the initial one.
func (n *Navigator) Depth() int { return n.depth }

// Store returns read access to the node store.
func (n *Navigator) Store() NodeSource { return n.store }

// Sampler returns the type sampler.
func (n *Navigator) Sampler() *Sampler { return n.sampler }

// Stats returns a copy of the counters.
func (n *Navigator) Stats() Stats {
	s := n.stats
	s.Nodes = n.store.Len()
	return s
}

// TakeHint returns the last hint and resets it to None.
func (n *Navigator) TakeHint() Hint {
	h := n.hint
	n.hint = Hint{}
	return h
}

// View returns the visible group.
func (n *Navigator) View() View {
	gs := n.cfg.GroupSize
	v := View{
		Start: n.current,
		Slots: make([]Slot, gs),
		Hint:  n.hint,
		Depth: n.depth,
	}
	types := make([]NodeType, gs)
	for i := 0; i < gs; i++ {
		types[i] = n.store.nodes[n.current+i].Type
		v.Slots[i] = Slot{Offset: i, Type: types[i]}
	}
	v.Parent = ResolveParentType(types, len(n.cfg.Types))
	return v
}

// Descend moves into the child group of the node at offset in the visible
// group, generating it on first visit so that it resolves to that node's type.
func (n *Navigator) Descend(offset int) (View, error) {
	if offset < 0 || offset >= n.cfg.GroupSize {
		return View{}, fmt.Errorf("%w: %d not in [0,%d)", ErrSlotOutOfRange, offset, n.cfg.GroupSize)
	}
	selected := n.current + offset
	node, err := n.store.At(selected)
	if err != nil {
		return View{}, err
	}

	child, ok := node.Child.Get()
	if !ok {
		required := node.Type
		start := n.store.Len()
		attempts, err := n.gen.CreateSiblingGroup(start, LinkTo(selected), &required)
		if err != nil {
			n.recordAttempts(attempts)
			return View{}, fmt.Errorf("descend into %d: %w", selected, err)
		}
		if err := n.store.SetChild(selected, start); err != nil {
			return View{}, err
		}
		n.recordGroup(attempts)
		child = start
	}

	n.current = child
	n.depth++
	n.hint = Hint{Direction: FromChild, Slot: offset}
	n.stats.Descents++
	n.log.Debug("descend",
		zap.Int("selected", selected),
		zap.Int("current", n.current),
		zap.Int("depth", n.depth))
	return n.View(), nil
}

// MustDescend is like Descend but panics on error.
func (n *Navigator) MustDescend(offset int) View {
	v, err := n.Descend(offset)
	if err != nil {
		panic(fmt.Sprintf("tree: descend %d: %v", offset, err))
	}
	return v
}

// Ascend moves to the group containing the visible group's parent. Above the
// topmost generated group a new group is created and one of its nodes, chosen
// at random, adopts the visible group. The parent's type is recomputed from
// its children on every ascent.
func (n *Navigator) Ascend() (View, error) {
	gs := n.cfg.GroupSize
	node, err := n.store.At(n.current)
	if err != nil {
		return View{}, err
	}

	p, ok := node.Parent.Get()
	if !ok {
		start := n.store.Len()
		attempts, err := n.gen.CreateSiblingGroup(start, NoLink, nil)
		if err != nil {
			return View{}, fmt.Errorf("ascend from %d: %w", n.current, err)
		}
		n.recordGroup(attempts)
		p = start + n.rng.Intn(gs)
		for i := 0; i < gs; i++ {
			if err := n.store.SetParent(n.current+i, p); err != nil {
				return View{}, err
			}
		}
		if err := n.store.SetChild(p, n.current); err != nil {
			return View{}, err
		}
	}

	types, err := n.store.Types(n.current)
	if err != nil {
		return View{}, err
	}
	if err := n.store.SetType(p, ResolveParentType(types, len(n.cfg.Types))); err != nil {
		return View{}, err
	}

	n.current = n.store.GroupStart(p)
	n.depth--
	n.hint = Hint{Direction: FromParent, Slot: p - n.current}
	n.stats.Ascents++
	n.log.Debug("ascend",
		zap.Int("parent", p),
		zap.Int("current", n.current),
		zap.Int("depth", n.depth))
	return n.View(), nil
}
