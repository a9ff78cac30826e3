package runtime

// patchKeyedChildren reconciles c1 into c2 inside container. anchor is the
// host node the list ends before, or nil for the end of container.
func (r *Renderer) patchKeyedChildren(c1, c2 []VNode, container, anchor HostNode, parent *Instance) {
	i := 0
	e1, e2 := len(c1)-1, len(c2)-1

	// 1. common prefix
	for i <= e1 && i <= e2 && isSameVNodeType(c1[i], c2[i]) {
		r.patch(c1[i], c2[i], container, nil, parent)
		i++
	}

	// 2. common suffix
	for i <= e1 && i <= e2 && isSameVNodeType(c1[e1], c2[e2]) {
		r.patch(c1[e1], c2[e2], container, nil, parent)
		e1--
		e2--
	}

	switch {
	// 3. only new nodes left
	case i > e1:
		if i <= e2 {
			before := anchor
			if e2+1 < len(c2) {
				before = firstHostNode(c2[e2+1])
			}
			for ; i <= e2; i++ {
				r.patch(nil, c2[i], container, before, parent)
			}
		}

	// 4. only old nodes left
	case i > e2:
		for ; i <= e1; i++ {
			r.unmount(c1[i], true)
		}

	// 5. unknown sequence
	default:
		r.patchUnknownSequence(c1, c2, i, e1, e2, container, anchor, parent)
	}
}

func (r *Renderer) patchUnknownSequence(c1, c2 []VNode, start, e1, e2 int, container, anchor HostNode, parent *Instance) {
	s1, s2 := start, start

	keyToNewIndex := make(map[any]int)
	for j := s2; j <= e2; j++ {
		if k := c2[j].Key(); k != nil {
			keyToNewIndex[k] = j
		}
	}

	toBePatched := e2 - s2 + 1
	patched := 0
	moved := false
	maxNewIndexSoFar := 0

	// source[newIndex-s2] is the old index patched onto it, -1 when new.
	source := make([]int, toBePatched)
	for j := range source {
		source[j] = -1
	}

	for j := s1; j <= e1; j++ {
		prev := c1[j]
		if patched >= toBePatched {
			r.unmount(prev, true)
			continue
		}

		newIndex := -1
		if k := prev.Key(); k != nil {
			if idx, ok := keyToNewIndex[k]; ok {
				newIndex = idx
			}
		} else {
			for n := s2; n <= e2; n++ {
				if source[n-s2] == -1 && c2[n].Key() == nil && isSameVNodeType(prev, c2[n]) {
					newIndex = n
					break
				}
			}
		}

		if newIndex == -1 {
			r.unmount(prev, true)
			continue
		}
		source[newIndex-s2] = j
		if newIndex >= maxNewIndexSoFar {
			maxNewIndexSoFar = newIndex
		} else {
			moved = true
		}
		r.patch(prev, c2[newIndex], container, nil, parent)
		patched++
	}

	var stable []int
	if moved {
		stable = longestIncreasingSubsequence(source)
	}
	k := len(stable) - 1
	for j := toBePatched - 1; j >= 0; j-- {
		idx := s2 + j
		next := c2[idx]
		before := anchor
		if idx+1 < len(c2) {
			before = firstHostNode(c2[idx+1])
		}
		switch {
		case source[j] == -1:
			r.patch(nil, next, container, before, parent)
		case moved:
			if k < 0 || j != stable[k] {
				r.move(next, container, before)
			} else {
				k--
			}
		}
	}
}
