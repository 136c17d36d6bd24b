package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRandomWalk(t *testing.T) {
	a := RandomWalk(1000, 8, .7, 3)
	assert.Equal(t, a, RandomWalk(1000, 8, .7, 3))

	ups := 0
	for _, m := range a {
		if m == Up {
			ups++
			continue
		}
		assert.GreaterOrEqual(t, int(m), 0)
		assert.Less(t, int(m), 8)
	}
	assert.InDelta(t, 300, ups, 60)

	for _, m := range DeepDive(200, 4, 1) {
		assert.NotEqual(t, Up, m)
	}
}
