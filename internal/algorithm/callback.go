package algorithm

// SchedulerInfo accompanies OnStarted. Count is the nominal search-space
// size (blocks!), reported before any pruning narrows it.
type SchedulerInfo struct {
	Count uint64
}

// TaskInfo accompanies OnProgress. TaskID is an opaque per-task identity (the
// index of the sub-tree in allocation order); Completed/Total describe
// sub-tree progress, not permutation-level progress.
type TaskInfo struct {
	TaskID    int
	Completed int
	Total     int
}

// Callback is the observer surface the scheduler drives. OnStarted fires
// exactly once before any enumeration; OnAssigned fires once per valid
// permutation; OnCompleted fires exactly once, after every OnAssigned.
// OnProgress is optional and best-effort — callers that don't need it can
// embed NoopCallback and override only what they use.
type Callback interface {
	OnStarted(info SchedulerInfo)
	OnProgress(info TaskInfo)
	// OnAssigned reports one valid permutation's block->band table. Blocks
	// with no assigned band (unused capacity, when |blocks| > |bands|) are
	// omitted from table rather than mapped to a sentinel.
	OnAssigned(table map[BlockId]BandId, rm *RoomMatrix, li *LiveInfo)
	OnCompleted()
}

// NoopCallback implements Callback with no-op methods, for embedding by
// callers that only care about a subset of events.
type NoopCallback struct{}

func (NoopCallback) OnStarted(SchedulerInfo)                                 {}
func (NoopCallback) OnProgress(TaskInfo)                                     {}
func (NoopCallback) OnAssigned(map[BlockId]BandId, *RoomMatrix, *LiveInfo)   {}
func (NoopCallback) OnCompleted()                                            {}

// CollectingCallback accumulates every OnAssigned table into a slice, for
// callers that want a synchronous return value rather than a live stream —
// this is what the Scheduler facade's buffered mode (NewScheduler, as
// opposed to NewSchedulerWithCallback) is built on.
type CollectingCallback struct {
	NoopCallback
	Info    SchedulerInfo
	Tables  []map[BlockId]BandId
	Done    bool
}

func (c *CollectingCallback) OnStarted(info SchedulerInfo) {
	c.Info = info
}

func (c *CollectingCallback) OnAssigned(table map[BlockId]BandId, _ *RoomMatrix, _ *LiveInfo) {
	c.Tables = append(c.Tables, table)
}

func (c *CollectingCallback) OnCompleted() {
	c.Done = true
}
