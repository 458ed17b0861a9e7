package algorithm

// PartialPermutation holds a permutation of 0..N with a fixed prefix window.
// Positions [0, Start) are the fixed prefix identifying a sub-tree root;
// positions [Start, N) are the part the search actually varies. data always
// holds a permutation of 0..N.
type PartialPermutation struct {
	data  []int
	start int
}

// NewPartialPermutation returns the identity permutation 0..N-1 with the
// given fixed-prefix length, clamped to [0, N]. With start = 0 this is the
// first permutation of the whole space; otherwise it is the first
// permutation of the sub-tree rooted at that prefix.
func NewPartialPermutation(n, start int) *PartialPermutation {
	if start > n {
		start = n
	}
	if start < 0 {
		start = 0
	}
	data := make([]int, n)
	for i := range data {
		data[i] = i
	}
	return &PartialPermutation{data: data, start: start}
}

// Current returns a read-only view of the permutation.
func (p *PartialPermutation) Current() []int {
	return p.data
}

// Start returns the fixed-prefix length.
func (p *PartialPermutation) Start() int {
	return p.start
}

// Len returns N.
func (p *PartialPermutation) Len() int {
	return len(p.data)
}

// Clone returns an independent copy.
func (p *PartialPermutation) Clone() *PartialPermutation {
	data := make([]int, len(p.data))
	copy(data, p.data)
	return &PartialPermutation{data: data, start: p.start}
}

// Next advances to the next lexicographic permutation within the window
// [Start, N), keeping the fixed prefix untouched. It reports false (and
// leaves the permutation unchanged, by convention set to the fully-exhausted
// descending tail it discovered) when the window is already at its last
// permutation.
//
// Standard next-permutation on the window: scan from the right for the
// pivot p where data[p] < data[p+1], stopping (returning false) if the scan
// reaches Start without finding one; swap data[p] with the smallest element
// in the tail greater than data[p]; reverse the suffix after p.
func (p *PartialPermutation) Next() bool {
	n := len(p.data)
	if n-p.start < 2 {
		return false
	}

	pivot := n - 2
	for pivot >= p.start && p.data[pivot] >= p.data[pivot+1] {
		pivot--
	}
	if pivot < p.start {
		return false
	}

	successor := n - 1
	for p.data[successor] <= p.data[pivot] {
		successor--
	}

	p.data[pivot], p.data[successor] = p.data[successor], p.data[pivot]
	reverse(p.data[pivot+1:])
	return true
}

// Last returns a clone whose window [Start, N) is sorted descending — the
// final permutation reachable within this sub-tree.
func (p *PartialPermutation) Last() *PartialPermutation {
	clone := p.Clone()
	sortDescending(clone.data[clone.start:])
	return clone
}

// NextPart returns the first permutation of the next sub-tree at the same
// depth (same Start), or nil when no further sub-tree exists. It is computed
// by taking Last(), temporarily treating the whole array as the window
// (start = 0), advancing with Next, then restoring the original Start.
func (p *PartialPermutation) NextPart() *PartialPermutation {
	last := p.Last()
	last.start = 0
	if !last.Next() {
		return nil
	}
	last.start = p.start
	return last
}

// Skip returns a clone with positions [i, N) sorted descending, so that the
// next Next() call leaves the sub-tree rooted at the length-i prefix. i is
// clamped to [0, N].
func (p *PartialPermutation) Skip(i int) *PartialPermutation {
	if i < 0 {
		i = 0
	}
	if i > len(p.data) {
		i = len(p.data)
	}
	clone := p.Clone()
	sortDescending(clone.data[i:])
	return clone
}

// Later returns whichever of p and other is lexicographically later, or nil
// if they are equal. Used by the async driver to reconcile progress a
// running task has made against a tracking cursor.
func (p *PartialPermutation) Later(other *PartialPermutation) *PartialPermutation {
	switch compareInts(p.data, other.data) {
	case 0:
		return nil
	case 1:
		return p
	default:
		return other
	}
}

func reverse(s []int) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

func sortDescending(s []int) {
	for i := 1; i < len(s); i++ {
		v := s[i]
		j := i - 1
		for j >= 0 && s[j] < v {
			s[j+1] = s[j]
			j--
		}
		s[j+1] = v
	}
}

// compareInts returns -1, 0, or 1 for a lexicographic comparison of two
// equal-length int slices.
func compareInts(a, b []int) int {
	for i := range a {
		if a[i] < b[i] {
			return -1
		}
		if a[i] > b[i] {
			return 1
		}
	}
	return 0
}
