package tree

import "fmt"

// NodeSource is read access to a partitioned node collection.
type NodeSource interface {
	Len() int
	GroupSize() int
	At(index int) (Node, error)
}

// Store is the append-only node collection, partitioned into sibling groups
// of groupSize contiguous nodes.
type Store struct {
	nodes     []Node
	groupSize int
}

// NewStore creates an empty store. groupSize determines nodes per sibling group.
func NewStore(groupSize int) *Store {
	if groupSize <= 0 {
		groupSize = 8
	}
	return &Store{
		nodes:     make([]Node, 0, groupSize*16),
		groupSize: groupSize,
	}
}

// Len returns the number of nodes, placeholders included.
func (s *Store) Len() int { return len(s.nodes) }

// GroupSize returns the number of nodes per sibling group.
func (s *Store) GroupSize() int { return s.groupSize }

// GroupStart returns the start of the group containing index.
func (s *Store) GroupStart(index int) int {
	return index - index%s.groupSize
}

// EnsureCapacity appends placeholder nodes until Len() >= index+GroupSize().
func (s *Store) EnsureCapacity(index int) {
	for len(s.nodes) < index+s.groupSize {
		s.nodes = append(s.nodes, placeholder())
	}
}

func (s *Store) check(index int) error {
	if index < 0 || index >= len(s.nodes) {
		return fmt.Errorf("%w: %d (len %d)", ErrIndexOutOfRange, index, len(s.nodes))
	}
	return nil
}

// At returns a copy of the node at index.
func (s *Store) At(index int) (Node, error) {
	if err := s.check(index); err != nil {
		return Node{}, err
	}
	return s.nodes[index], nil
}

// Set overwrites the node at index.
func (s *Store) Set(index int, n Node) error {
	if err := s.check(index); err != nil {
		return err
	}
	s.nodes[index] = n
	return nil
}

// SetType refines the type of the node at index.
func (s *Store) SetType(index int, t NodeType) error {
	if err := s.check(index); err != nil {
		return err
	}
	s.nodes[index].Type = t
	return nil
}

// SetChild links the node at index to the group starting at child.
func (s *Store) SetChild(index, child int) error {
	if err := s.check(index); err != nil {
		return err
	}
	s.nodes[index].Child = LinkTo(child)
	return nil
}

// SetParent links the node at index to its parent node.
func (s *Store) SetParent(index, parent int) error {
	if err := s.check(index); err != nil {
		return err
	}
	s.nodes[index].Parent = LinkTo(parent)
	return nil
}

// Types returns a copy of the types of the group starting at start.
func (s *Store) Types(start int) ([]NodeType, error) {
	if err := s.check(start); err != nil {
		return nil, err
	}
	if err := s.check(start + s.groupSize - 1); err != nil {
		return nil, err
	}
	if start%s.groupSize != 0 {
		return nil, fmt.Errorf("%w: %d is not a group start", ErrIndexOutOfRange, start)
	}
	out := make([]NodeType, s.groupSize)
	for i := range out {
		out[i] = s.nodes[start+i].Type
	}
	return out, nil
}
