package algorithm

// VerdictKind is the tag of the decorator sum type.
type VerdictKind int

const (
	// Advance means the caller should emit the permutation as a candidate
	// (subject to any other decorators in the chain) and move on.
	Advance VerdictKind = iota
	// SkipAt means the sub-tree rooted at the length-Index prefix cannot
	// satisfy the constraint; the caller should call SubTree.Skip(Index).
	SkipAt
	// Prune means no subsequent permutation at the current depth can
	// satisfy this decorator; the caller should stop iterating the
	// sub-tree.
	Prune
)

// Verdict is the decorator contract's return value: a tagged union of
// {Advance, Skip(i), Prune}.
type Verdict struct {
	Kind  VerdictKind
	Index int // meaningful only when Kind == SkipAt
}

// AdvanceVerdict reports that the permutation is a viable candidate so far.
func AdvanceVerdict() Verdict { return Verdict{Kind: Advance} }

// SkipVerdict reports that the sub-sub-tree rooted at the length-i prefix
// cannot satisfy the constraint.
func SkipVerdict(i int) Verdict { return Verdict{Kind: SkipAt, Index: i} }

// PruneVerdict reports that the current sub-tree has nothing more worth
// visiting.
func PruneVerdict() Verdict { return Verdict{Kind: Prune} }

// Decorator inspects a (possibly partial) permutation against a room matrix
// and live info and returns a Verdict. Concrete decorators compose
// outer-over-inner: the outer decorator evaluates its wrapped Inner first
// and, if Inner's verdict is anything but Advance, returns it unchanged —
// this makes the chain a monotone composition of guards.
type Decorator interface {
	Invoke(permutation []int, rm *RoomMatrix, li *LiveInfo) Verdict
}

// passThrough returns (verdict, true) when inner produced a non-Advance
// verdict that the caller should return as-is, or (zero, false) when the
// caller should proceed to its own check.
func passThrough(inner Decorator, permutation []int, rm *RoomMatrix, li *LiveInfo) (Verdict, bool) {
	if inner == nil {
		return Verdict{}, false
	}
	v := inner.Invoke(permutation, rm, li)
	if v.Kind != Advance {
		return v, true
	}
	return Verdict{}, false
}

// BandScheduleDecorator rejects permutations that place a band in a block
// whose span it is unavailable for.
type BandScheduleDecorator struct {
	Inner Decorator
}

// Invoke implements Decorator.
func (d *BandScheduleDecorator) Invoke(permutation []int, rm *RoomMatrix, li *LiveInfo) Verdict {
	if v, stop := passThrough(d.Inner, permutation, rm, li); stop {
		return v
	}

	blocks := rm.Blocks()
	bandIds := li.BandIds()
	n := len(permutation)

	for k := 0; k < n; k++ {
		block := blocks[k]
		bandID := bandIds[permutation[k]]
		span := rm.BlockSpan(block)
		if li.BandAvailable(bandID, span) {
			continue
		}
		return SkipVerdict(k + 1)
	}
	return AdvanceVerdict()
}

// MemberConflictDecorator rejects permutations where two bands sharing a
// member are scheduled in the same span. Per-span membership is an OR of
// band-hash bitmasks; an AND between the running mask and the next band's
// hash means a member was already placed in this span.
type MemberConflictDecorator struct {
	Inner Decorator
}

// Invoke implements Decorator.
func (d *MemberConflictDecorator) Invoke(permutation []int, rm *RoomMatrix, li *LiveInfo) Verdict {
	if v, stop := passThrough(d.Inner, permutation, rm, li); stop {
		return v
	}

	blocks := rm.Blocks()
	bandIds := li.BandIds()
	n := len(permutation)

	var mask uint64
	var span SpanId
	haveSpan := false

	for k := 0; k < n; k++ {
		block := blocks[k]
		blockSpan := rm.BlockSpan(block)
		if !haveSpan || blockSpan != span {
			span = blockSpan
			mask = 0
			haveSpan = true
		}

		bandID := bandIds[permutation[k]]
		hash := li.BandHash(bandID)
		if mask&hash != 0 {
			return SkipVerdict(k + 1)
		}
		mask |= hash
	}
	return AdvanceVerdict()
}
