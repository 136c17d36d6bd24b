package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveParentType(t *testing.T) {
	tests := []struct {
		name   string
		types  []NodeType
		nTypes int
		want   NodeType
	}{
		{"all types once, first max wins", []NodeType{0, 1, 2, 3, 4}, 5, 0},
		{"one type missing, rest once", []NodeType{1, 2, 3, 4}, 5, 0},
		{"missing type in the middle", []NodeType{4, 0, 1, 3}, 5, 2},
		{"clear majority", []NodeType{3, 3, 1, 3, 0}, 5, 3},
		{"tie goes to lower index", []NodeType{2, 2, 1, 1}, 5, 1},
		{"single run", []NodeType{4, 4, 4, 4, 4, 4, 4, 4}, 10, 4},
		{"majority despite three singles", []NodeType{1, 2, 3, 4, 4}, 5, 4},
		{"singles with nothing missing fall back to type 0", []NodeType{0, 1, 1, 1}, 2, 0},
		{"singles outweigh a larger run", []NodeType{0, 1, 2, 2, 2}, 3, 0},
		{"singles with the missing type last", []NodeType{1, 1, 1, 0}, 2, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveParentType(tt.types, tt.nTypes))
		})
	}
}

func TestResolveParentTypeIgnoresForeignTypes(t *testing.T) {
	assert.Equal(t, NodeType(2), ResolveParentType([]NodeType{NoType, 2, 2, 7}, 3))
	assert.Equal(t, NoType, ResolveParentType([]NodeType{0}, 0))
}
