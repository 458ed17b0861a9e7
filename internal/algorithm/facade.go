package algorithm

import "context"

// Scheduler is a thin, type-erased convenience wrapper over SchedulerImpl
// with builder knobs for sub_tree_depth and task_count_max. It adds no
// behavior beyond configuration and choosing between buffered and
// callback-forwarding delivery.
//
// NewScheduler returns a Scheduler that buffers every OnAssigned table and
// returns them from Assign/AssignAsync. NewSchedulerWithCallback forwards
// every event directly to the given Callback instead (Assign/AssignAsync
// then always return a nil slice).
type Scheduler struct {
	decorator    Decorator
	subTreeDepth int
	taskCountMax int
	callback     Callback
}

// NewScheduler builds a Scheduler that records results to an internal
// buffer, returned from Assign/AssignAsync.
func NewScheduler(decorator Decorator) *Scheduler {
	return &Scheduler{
		decorator:    decorator,
		subTreeDepth: DefaultSubTreeDepth,
		taskCountMax: DefaultTaskCountMax,
	}
}

// NewSchedulerWithCallback builds a Scheduler that forwards every event
// directly to cb.
func NewSchedulerWithCallback(decorator Decorator, cb Callback) *Scheduler {
	s := NewScheduler(decorator)
	s.callback = cb
	return s
}

// WithSubTreeDepth sets the asynchronous path's sub-tree depth.
func (s *Scheduler) WithSubTreeDepth(d int) *Scheduler {
	s.subTreeDepth = d
	return s
}

// WithTaskCountMax sets the asynchronous path's bound on in-flight sub-trees.
func (s *Scheduler) WithTaskCountMax(n int) *Scheduler {
	s.taskCountMax = n
	return s
}

// Assign drives the synchronous path. In buffered mode it returns every
// assigned table; in callback mode it returns nil and relies entirely on the
// configured Callback.
func (s *Scheduler) Assign(rm *RoomMatrix, li *LiveInfo) ([]map[BlockId]BandId, error) {
	cb, collecting := s.resolveCallback()
	err := NewSchedulerImpl(s.decorator).Assign(rm, li, cb)
	if collecting != nil {
		return collecting.Tables, err
	}
	return nil, err
}

// AssignAsync drives the asynchronous path with this Scheduler's configured
// sub_tree_depth / task_count_max.
func (s *Scheduler) AssignAsync(ctx context.Context, rm *RoomMatrix, li *LiveInfo) ([]map[BlockId]BandId, error) {
	cb, collecting := s.resolveCallback()
	err := NewSchedulerImpl(s.decorator).AssignAsync(ctx, rm, li, cb, s.subTreeDepth, s.taskCountMax)
	if collecting != nil {
		return collecting.Tables, err
	}
	return nil, err
}

func (s *Scheduler) resolveCallback() (Callback, *CollectingCallback) {
	if s.callback != nil {
		return s.callback, nil
	}
	collecting := &CollectingCallback{}
	return collecting, collecting
}
