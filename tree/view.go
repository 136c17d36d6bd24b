package tree

// Direction is the advisory origin of the last navigation, for transition
// animation only.
type Direction int

const (
	None       Direction = iota
	FromChild            // descended through a child slot
	FromParent           // ascended out of a node in the new group
)

func (d Direction) String() string {
	switch d {
	case FromChild:
		return "from-child"
	case FromParent:
		return "from-parent"
	default:
		return "none"
	}
}

// Hint tells the render collaborator where the last move came from. For
// FromChild, Slot is the descended-through offset in the previous group; for
// FromParent, Slot is the offset of the node just left in the new group.
type Hint struct {
	Direction Direction
	Slot      int
}

// Slot is one visible node of the current group.
type Slot struct {
	Offset int
	Type   NodeType
}

// View is what the render sink reads after a navigation call returns.
type View struct {
	Start  int      // store index of the current group
	Slots  []Slot   // GroupSize visible children
	Parent NodeType // resolved type of the group's parent
	Hint   Hint
	Depth  int // relative to the initial group; negative above it
}

// Types returns the visible types in slot order.
func (v View) Types() []NodeType {
	out := make([]NodeType, len(v.Slots))
	for i, s := range v.Slots {
		out[i] = s.Type
	}
	return out
}
