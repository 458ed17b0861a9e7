package algorithm

// PermutationTraverser partitions the N! permutation tree into N!/d!
// disjoint sub-trees, each of size d!, by holding a PartialPermutation(N,
// N-d) whose fixed prefix is rotated one step via NextPart on every
// allocation after the first.
type PermutationTraverser struct {
	current   *PartialPermutation
	first     bool
	exhausted bool
}

// NewPermutationTraverser creates an allocator over N positions with
// sub-trees rooted at depth min(N, subTreeDepth).
func NewPermutationTraverser(n, subTreeDepth int) *PermutationTraverser {
	if subTreeDepth > n {
		subTreeDepth = n
	}
	if subTreeDepth < 0 {
		subTreeDepth = 0
	}
	return &PermutationTraverser{
		current: NewPartialPermutation(n, n-subTreeDepth),
		first:   true,
	}
}

// Allocate returns the next sub-tree, or (nil, false) once every sub-tree
// has been handed out.
func (t *PermutationTraverser) Allocate() (*SubTree, bool) {
	if t.exhausted {
		return nil, false
	}
	if t.first {
		t.first = false
		return newSubTree(t.current.Clone()), true
	}

	next := t.current.NextPart()
	if next == nil {
		t.exhausted = true
		return nil, false
	}
	t.current = next
	return newSubTree(t.current.Clone()), true
}

// SubTree iterates the permutations sharing a single fixed prefix. The first
// call to Next returns the sub-tree's root permutation itself; subsequent
// calls advance it in place.
type SubTree struct {
	root    *PartialPermutation
	started bool
}

func newSubTree(root *PartialPermutation) *SubTree {
	return &SubTree{root: root}
}

// Next returns the next permutation in this sub-tree, or (nil, false) once
// it is exhausted.
func (s *SubTree) Next() (*PartialPermutation, bool) {
	if !s.started {
		s.started = true
		return s.root, true
	}
	if s.root.Next() {
		return s.root, true
	}
	return nil, false
}

// Skip replaces the sub-tree's cursor with Skip(i) of its current
// permutation, so the next Next() call jumps past the sub-sub-tree rooted at
// the length-i prefix.
func (s *SubTree) Skip(i int) {
	s.root = s.root.Skip(i)
}

// Root returns the sub-tree's cursor: its root permutation until Next or
// Skip has moved it, the current permutation afterward.
func (s *SubTree) Root() *PartialPermutation {
	return s.root
}
