package tree

import (
	"math/rand"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newTestNavigator(t *testing.T, seed int64) *Navigator {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Seed = seed
	nav, err := New(cfg, WithLogger(zaptest.NewLogger(t)))
	require.NoError(t, err)
	return nav
}

func nodeAt(t *testing.T, nav *Navigator, i int) Node {
	t.Helper()
	n, err := nav.Store().At(i)
	require.NoError(t, err)
	return n
}

func TestNewNavigator(t *testing.T) {
	nav := newTestNavigator(t, 1)
	assert.Equal(t, 0, nav.Current())
	assert.Equal(t, 8, nav.Store().Len())

	v := nav.View()
	assert.Equal(t, 0, v.Start)
	require.Len(t, v.Slots, 8)
	for i, s := range v.Slots {
		assert.Equal(t, i, s.Offset)
		assert.Positive(t, nav.Sampler().Weight(s.Type), "root types are sampled")
	}
	assert.Equal(t, ResolveParentType(v.Types(), 10), v.Parent)
	assert.Equal(t, Hint{}, v.Hint)
	require.NoError(t, CheckInvariants(nav.Store()))
}

func TestNewNavigatorRejectsZeroWeights(t *testing.T) {
	cfg := DefaultConfig()
	for i := range cfg.Types {
		cfg.Types[i].Weight = 0
	}
	_, err := New(cfg)
	require.ErrorIs(t, err, ErrZeroWeight)
}

func TestDescendConsistency(t *testing.T) {
	nav := newTestNavigator(t, 2)
	for k := 0; k < 8; k++ {
		before := nodeAt(t, nav, nav.Current()+k).Type
		v, err := nav.Descend(k)
		require.NoError(t, err)
		assert.Equal(t, before, ResolveParentType(v.Types(), 10))
		assert.Equal(t, before, v.Parent)
		_, err = nav.Ascend()
		require.NoError(t, err)
	}
}

func TestRoundTrip(t *testing.T) {
	nav := newTestNavigator(t, 3)
	start := nav.Current()

	for k := 0; k < 8; k++ {
		_, err := nav.Descend(k)
		require.NoError(t, err)
		_, err = nav.Ascend()
		require.NoError(t, err)
		assert.Equal(t, start, nav.Current())
	}

	// second pass over explored groups creates nothing
	n := nav.Store().Len()
	for k := 0; k < 8; k++ {
		v, err := nav.Descend(k)
		require.NoError(t, err)
		child, _ := nodeAt(t, nav, start+k).Child.Get()
		assert.Equal(t, child, v.Start)
		_, err = nav.Ascend()
		require.NoError(t, err)
		assert.Equal(t, start, nav.Current())
	}
	assert.Equal(t, n, nav.Store().Len())
	assert.Equal(t, 0, nav.Depth())
}

func TestAscendFromRootGrowsUpward(t *testing.T) {
	nav := newTestNavigator(t, 4)
	rootTypes := nav.View().Types()

	v, err := nav.Ascend()
	require.NoError(t, err)
	assert.Equal(t, 8, v.Start)
	assert.Equal(t, 16, nav.Store().Len())
	assert.Equal(t, -1, v.Depth)

	p, ok := nodeAt(t, nav, 0).Parent.Get()
	require.True(t, ok)
	assert.Equal(t, 8, nav.Store().(*Store).GroupStart(p))
	assert.Equal(t, FromParent, v.Hint.Direction)
	assert.Equal(t, p-8, v.Hint.Slot)

	parent := nodeAt(t, nav, p)
	c, ok := parent.Child.Get()
	require.True(t, ok)
	assert.Equal(t, 0, c)
	assert.Equal(t, ResolveParentType(rootTypes, 10), parent.Type)

	// coming back down reuses the original root group
	v, err = nav.Descend(p - 8)
	require.NoError(t, err)
	assert.Equal(t, 0, v.Start)
	assert.Equal(t, rootTypes, v.Types())
	assert.Equal(t, 16, nav.Store().Len())
	require.NoError(t, CheckInvariants(nav.Store()))
}

func TestRepeatedDescendDoesNotMutate(t *testing.T) {
	nav := newTestNavigator(t, 5)
	_, err := nav.Descend(6)
	require.NoError(t, err)
	_, err = nav.Ascend()
	require.NoError(t, err)

	before := make([]Node, nav.Store().Len())
	for i := range before {
		before[i] = nodeAt(t, nav, i)
	}
	v, err := nav.Descend(6)
	require.NoError(t, err)
	child, _ := before[6].Child.Get()
	assert.Equal(t, child, v.Start)
	require.Equal(t, len(before), nav.Store().Len())
	for i := range before {
		assert.Equal(t, before[i], nodeAt(t, nav, i))
	}
}

func TestDescendSlotOutOfRange(t *testing.T) {
	nav := newTestNavigator(t, 6)
	for _, k := range []int{-1, 8, 100} {
		_, err := nav.Descend(k)
		assert.ErrorIs(t, err, ErrSlotOutOfRange)
	}
	assert.Equal(t, 8, nav.Store().Len())
	assert.Equal(t, 0, nav.Current())
	assert.Panics(t, func() { nav.MustDescend(8) })
}

func TestRandomWalkKeepsInvariants(t *testing.T) {
	nav := newTestNavigator(t, 7)
	rng := rand.New(rand.NewSource(77))
	gs := nav.Config().GroupSize

	for step := 0; step < 600; step++ {
		var err error
		if rng.Float64() < .55 {
			_, err = nav.Descend(rng.Intn(gs))
		} else {
			_, err = nav.Ascend()
		}
		require.NoError(t, err, "step %d", step)
		require.Zero(t, nav.Current()%gs)
		if step%100 == 0 {
			require.NoError(t, CheckInvariants(nav.Store()), "step %d", step)
		}
	}
	require.NoError(t, CheckInvariants(nav.Store()))

	st := nav.Stats()
	assert.Equal(t, st.Nodes, st.Groups*gs)
	assert.Equal(t, 600, st.Descents+st.Ascents)
	assert.GreaterOrEqual(t, st.Attempts, st.Groups)
}

func TestDeterministicReplay(t *testing.T) {
	moves := []int{3, -1, -1, 5, 0, -1, 2, 7, -1, -1, -1, 4}
	run := func() []View {
		nav := newTestNavigator(t, 99)
		var views []View
		for _, m := range moves {
			var v View
			var err error
			if m < 0 {
				v, err = nav.Ascend()
			} else {
				v, err = nav.Descend(m)
			}
			require.NoError(t, err)
			views = append(views, v)
		}
		return views
	}
	assert.Equal(t, run(), run())
}

func TestHintIsOneShot(t *testing.T) {
	nav := newTestNavigator(t, 8)
	_, err := nav.Descend(3)
	require.NoError(t, err)
	assert.Equal(t, Hint{Direction: FromChild, Slot: 3}, nav.TakeHint())
	assert.Equal(t, Hint{}, nav.TakeHint())
	assert.Equal(t, None, nav.View().Hint.Direction)
}

func TestSessionID(t *testing.T) {
	id := uuid.MustParse("7b5d5e2e-3c1f-4c43-9a55-1f0f1d2e3a4b")
	nav, err := New(nil, WithSessionID(id))
	require.NoError(t, err)
	assert.Equal(t, id, nav.ID())
}

func TestNavigatorConfigIsIsolated(t *testing.T) {
	cfg := DefaultConfig()
	nav, err := New(cfg)
	require.NoError(t, err)

	cfg.GroupSize = 64
	cfg.Types = append(cfg.Types, TypeSpec{Name: "late", Weight: 5})
	got := nav.Config()
	got.GroupSize = 3
	got.Types[0].Weight = 0

	assert.Equal(t, 8, nav.Config().GroupSize)
	assert.Len(t, nav.Config().Types, 10)
	assert.Equal(t, 30.0, nav.Config().Types[0].Weight)

	v, err := nav.Descend(0)
	require.NoError(t, err)
	assert.Len(t, v.Slots, 8)
	require.NoError(t, CheckInvariants(nav.Store()))
}
