// Package tree generates an unbounded tree of typed nodes lazily, one sibling
// group at a time, and keeps it consistent however it is explored.
//
// Quick start:
//
//	nav, err := tree.New(tree.DefaultConfig())
//	v, err := nav.Descend(3) // enter the children of slot 3
//	v, err = nav.Ascend()    // back to the group we came from
//	for _, s := range v.Slots {
//		fmt.Println(s.Offset, s.Type)
//	}
//
// Child groups are generated on first descent so that they resolve (see
// ResolveParentType) to the type of the node they hang from. Ascending above
// the topmost generated group creates a new group and adopts the current one
// under a random member of it.
package tree
