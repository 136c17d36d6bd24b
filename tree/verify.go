package tree

import "fmt"

// CheckInvariants verifies the structure of src: group alignment, a shared
// parent per group, and link symmetry in both directions. It returns the first
// violation found, wrapping ErrCorrupt.
func CheckInvariants(src NodeSource) error {
	gs := src.GroupSize()
	if gs <= 0 {
		return fmt.Errorf("%w: group size %d", ErrCorrupt, gs)
	}
	total := src.Len()
	if total%gs != 0 {
		return fmt.Errorf("%w: length %d not a multiple of group size %d", ErrCorrupt, total, gs)
	}

	for start := 0; start < total; start += gs {
		first, err := src.At(start)
		if err != nil {
			return err
		}
		for i := 0; i < gs; i++ {
			idx := start + i
			node, err := src.At(idx)
			if err != nil {
				return err
			}
			if node.Type < 0 {
				return fmt.Errorf("%w: node %d has no type", ErrCorrupt, idx)
			}
			if node.Parent != first.Parent {
				return fmt.Errorf("%w: node %d parent %s differs from group parent %s",
					ErrCorrupt, idx, node.Parent, first.Parent)
			}
			if err := checkChild(src, idx, node); err != nil {
				return err
			}
		}
		if p, ok := first.Parent.Get(); ok {
			parent, err := src.At(p)
			if err != nil {
				return fmt.Errorf("%w: group %d parent: %v", ErrCorrupt, start, err)
			}
			if c, ok := parent.Child.Get(); !ok || c != start {
				return fmt.Errorf("%w: group %d parent %d links to child %s",
					ErrCorrupt, start, p, parent.Child)
			}
		}
	}
	return nil
}

func checkChild(src NodeSource, idx int, node Node) error {
	c, ok := node.Child.Get()
	if !ok {
		return nil
	}
	gs := src.GroupSize()
	if c%gs != 0 || c < 0 || c+gs > src.Len() {
		return fmt.Errorf("%w: node %d child %d is not a group start", ErrCorrupt, idx, c)
	}
	for i := 0; i < gs; i++ {
		child, err := src.At(c + i)
		if err != nil {
			return err
		}
		if p, ok := child.Parent.Get(); !ok || p != idx {
			return fmt.Errorf("%w: node %d parent %s, want %d", ErrCorrupt, c+i, child.Parent, idx)
		}
	}
	return nil
}
