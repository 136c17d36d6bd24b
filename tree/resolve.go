package tree

// ResolveParentType infers a parent's type from its children's types.
//
// The result is the type with the strictly greatest count, ties going to the
// lowest index. The exception is a group in which exactly nTypes-1 types occur
// once: it resolves to the last type with no occurrence, or to type 0 when
// every type occurs.
func ResolveParentType(types []NodeType, nTypes int) NodeType {
	if nTypes <= 0 {
		return NoType
	}
	counts := make([]int, nTypes)
	for _, t := range types {
		if t >= 0 && int(t) < nTypes {
			counts[t]++
		}
	}

	var highest, absent NodeType
	maxCount, countsOne := 0, 0
	for i, c := range counts {
		if c > maxCount {
			maxCount = c
			highest = NodeType(i)
		}
		if c == 0 {
			absent = NodeType(i)
		}
		if c == 1 {
			countsOne++
		}
	}

	if countsOne == nTypes-1 {
		return absent
	}
	return highest
}
