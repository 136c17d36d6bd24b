package tree

import "strconv"

// NodeType identifies one entry of the configured type palette.
type NodeType int

// NoType is the placeholder type of a freshly appended node.
const NoType NodeType = -1

func (t NodeType) String() string {
	if t < 0 {
		return "unset"
	}
	return "t" + strconv.Itoa(int(t))
}

// Link is an optional store index. The zero value is absent.
type Link struct {
	idx int
	set bool
}

// NoLink is the absent link.
var NoLink = Link{}

// LinkTo returns a link to index i.
func LinkTo(i int) Link { return Link{idx: i, set: true} }

// Get returns the linked index and whether the link is set.
func (l Link) Get() (int, bool) { return l.idx, l.set }

// Valid reports whether the link is set.
func (l Link) Valid() bool { return l.set }

func (l Link) String() string {
	if !l.set {
		return "-"
	}
	return strconv.Itoa(l.idx)
}

// Node is a store-resident record.
type Node struct {
	Type   NodeType
	Child  Link // first node of the child group
	Parent Link // parent node (not the parent's group start)
}

func placeholder() Node {
	return Node{Type: NoType}
}
