package algorithm

import (
	"context"
	"fmt"

	appErrors "github.com/bandkon/kon/pkg/errors"
	"github.com/bandkon/kon/pkg/parallel"
)

// DefaultSubTreeDepth and DefaultTaskCountMax are the scheduler's tunable
// defaults: an 8-deep sub-tree is 8! = 40,320 permutations, a few
// milliseconds of pruned work; 64 in-flight sub-trees bounds the memory held
// by pending result vectors.
const (
	DefaultSubTreeDepth = 8
	DefaultTaskCountMax = 64
)

// SchedulerImpl orchestrates the search: it drives PermutationTraverser /
// SubTree against a Decorator chain, converts valid leaves to block->band
// tables, and dispatches them through a Callback. It holds no state of its
// own beyond the decorator chain, so one instance can drive many runs.
type SchedulerImpl struct {
	decorator Decorator
}

// NewSchedulerImpl builds a scheduler around the given (already composed)
// decorator chain.
func NewSchedulerImpl(decorator Decorator) *SchedulerImpl {
	return &SchedulerImpl{decorator: decorator}
}

// Assign drives the synchronous path: a single sub-tree covering the entire
// permutation space, iterated on the calling goroutine. It returns
// CodeInsufficientCapacity if the room matrix cannot seat every band.
func (s *SchedulerImpl) Assign(rm *RoomMatrix, li *LiveInfo, cb Callback) error {
	bandCount := len(li.BandIds())
	blocksLen := len(rm.Blocks())

	if blocksLen < bandCount {
		cb.OnCompleted()
		return appErrors.New(appErrors.CodeInsufficientCapacity,
			fmt.Sprintf("room matrix has %d blocks, need at least %d", blocksLen, bandCount))
	}

	cb.OnStarted(SchedulerInfo{Count: factorial(blocksLen)})

	traverser := NewPermutationTraverser(bandCount, bandCount)
	if subTree, ok := traverser.Allocate(); ok {
		if err := driveSubTree(subTree, rm, li, s.decorator, cb); err != nil {
			cb.OnCompleted()
			return err
		}
	}

	cb.OnCompleted()
	return nil
}

// driveSubTree iterates a sub-tree on the calling goroutine, delivering each
// Advance-verdict permutation straight to the callback.
func driveSubTree(st *SubTree, rm *RoomMatrix, li *LiveInfo, decorator Decorator, cb Callback) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = appErrors.Wrap(appErrors.CodeTaskFault, "scheduler task panicked", fmt.Errorf("%v", r))
		}
	}()

	for {
		perm, ok := st.Next()
		if !ok {
			break
		}
		switch v := decorator.Invoke(perm.Current(), rm, li); v.Kind {
		case Advance:
			cb.OnAssigned(Convert(perm.Current(), rm, li), rm, li)
		case SkipAt:
			st.Skip(v.Index)
		case Prune:
			return nil
		}
	}
	return nil
}

// driveSubTreeCollect iterates a sub-tree identically to driveSubTree but
// accumulates valid permutations locally instead of calling back directly —
// this is what each asynchronous worker task runs, so that on_assigned
// delivery can be serialized on the driver goroutine afterward.
func driveSubTreeCollect(st *SubTree, rm *RoomMatrix, li *LiveInfo, decorator Decorator) (tables []map[BlockId]BandId, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = appErrors.Wrap(appErrors.CodeTaskFault, "scheduler task panicked", fmt.Errorf("%v", r))
		}
	}()

	for {
		perm, ok := st.Next()
		if !ok {
			break
		}
		switch v := decorator.Invoke(perm.Current(), rm, li); v.Kind {
		case Advance:
			tables = append(tables, Convert(perm.Current(), rm, li))
		case SkipAt:
			st.Skip(v.Index)
		case Prune:
			return tables, nil
		}
	}
	return tables, nil
}

// indexedSubTree pairs a sub-tree with its allocation order so results
// coming back from parallel.WorkerPool (which preserves input order) can
// still be labeled with their original taskID for TaskInfo.
type indexedSubTree struct {
	taskID int
	tree   *SubTree
}

// AssignAsync drives the asynchronous path: sub-trees are allocated
// up front (allocation is a pure, deterministic split of the permutation
// space, so every sub-tree can be enumerated before any work starts) and
// run on a bounded pool of goroutines via parallel.WorkerPool, at most
// taskCountMax in flight at once. parallel.ProgressTracker counts
// completed sub-trees against the known total. Results are harvested in
// allocation order and forwarded to the callback from this goroutine
// alone — so OnAssigned is, as in the synchronous path, in fact called
// from a single thread.
//
// subTreeDepth and taskCountMax of <= 0 fall back to DefaultSubTreeDepth and
// DefaultTaskCountMax respectively.
func (s *SchedulerImpl) AssignAsync(ctx context.Context, rm *RoomMatrix, li *LiveInfo, cb Callback, subTreeDepth, taskCountMax int) error {
	bandCount := len(li.BandIds())
	blocksLen := len(rm.Blocks())

	if blocksLen < bandCount {
		cb.OnCompleted()
		return appErrors.New(appErrors.CodeInsufficientCapacity,
			fmt.Sprintf("room matrix has %d blocks, need at least %d", blocksLen, bandCount))
	}

	if subTreeDepth <= 0 {
		subTreeDepth = DefaultSubTreeDepth
	}
	if taskCountMax <= 0 {
		taskCountMax = DefaultTaskCountMax
	}
	if subTreeDepth > bandCount {
		subTreeDepth = bandCount
	}

	cb.OnStarted(SchedulerInfo{Count: factorial(blocksLen)})

	traverser := NewPermutationTraverser(bandCount, subTreeDepth)
	var subTrees []indexedSubTree
	for {
		st, ok := traverser.Allocate()
		if !ok {
			break
		}
		subTrees = append(subTrees, indexedSubTree{taskID: len(subTrees), tree: st})
	}

	total := len(subTrees)
	tracker := parallel.NewProgressTracker(int64(total), nil, 0)

	pool := parallel.NewWorkerPool[indexedSubTree, []map[BlockId]BandId](
		parallel.DefaultPoolConfig().WithWorkers(taskCountMax))
	results := pool.ExecuteFunc(ctx, subTrees, func(ctx context.Context, ist indexedSubTree) ([]map[BlockId]BandId, error) {
		tables, err := driveSubTreeCollect(ist.tree, rm, li, s.decorator)
		tracker.Increment()
		return tables, err
	})

	var firstErr error
	for i, res := range results {
		if res.Error != nil && firstErr == nil {
			firstErr = res.Error
		}
		for _, table := range res.Result {
			cb.OnAssigned(table, rm, li)
		}
		cb.OnProgress(TaskInfo{TaskID: subTrees[i].taskID, Completed: i + 1, Total: total})
	}

	cb.OnCompleted()
	return firstErr
}

// Convert builds the block->band table for one valid leaf permutation:
// { blocks()[k] -> band_ids[permutation[k]] : 0 <= k < len(permutation) }.
// Blocks beyond len(permutation) (unused capacity, when |blocks| > |bands|)
// are simply never visited and so never appear in the returned map.
func Convert(permutation []int, rm *RoomMatrix, li *LiveInfo) map[BlockId]BandId {
	blocks := rm.Blocks()
	bandIds := li.BandIds()

	table := make(map[BlockId]BandId, len(permutation))
	for k, bandIdx := range permutation {
		if k >= len(blocks) {
			break
		}
		table[blocks[k]] = bandIds[bandIdx]
	}
	return table
}

func factorial(n int) uint64 {
	var result uint64 = 1
	for i := 2; i <= n; i++ {
		result *= uint64(i)
	}
	return result
}
