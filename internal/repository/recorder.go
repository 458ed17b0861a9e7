package repository

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/bandkon/kon/internal/algorithm"
)

// SchedulerRecorder adapts algorithm.Callback into Run/assignment writes. It
// is a pure observer: it never returns an error to the scheduler and never
// influences pruning, only persists whatever the core already decided.
// Write failures are recorded on Err() for the caller to inspect after the
// run completes, rather than aborting the scheduler mid-enumeration.
type SchedulerRecorder struct {
	algorithm.NoopCallback

	ctx   context.Context
	runs  RunRepository
	runID int64
	seq   atomic.Int64
	err   atomic.Pointer[error]
}

// NewSchedulerRecorder builds a recorder over the given RunRepository. The
// run row is created lazily, on the first OnStarted call, so one recorder
// can't be reused across runs.
func NewSchedulerRecorder(ctx context.Context, runs RunRepository) *SchedulerRecorder {
	return &SchedulerRecorder{ctx: ctx, runs: runs}
}

// RunID returns the created run's ID. Valid only after OnStarted has fired.
func (r *SchedulerRecorder) RunID() int64 {
	return r.runID
}

// Err returns the first write failure encountered, if any.
func (r *SchedulerRecorder) Err() error {
	if p := r.err.Load(); p != nil {
		return *p
	}
	return nil
}

func (r *SchedulerRecorder) recordErr(err error) {
	r.err.CompareAndSwap(nil, &err)
}

func (r *SchedulerRecorder) OnStarted(info algorithm.SchedulerInfo) {
	id, err := r.runs.CreateRun(r.ctx, info.Count)
	if err != nil {
		r.recordErr(fmt.Errorf("recorder: create run: %w", err))
		return
	}
	r.runID = id
}

func (r *SchedulerRecorder) OnAssigned(table map[algorithm.BlockId]algorithm.BandId, rm *algorithm.RoomMatrix, li *algorithm.LiveInfo) {
	if r.runID == 0 {
		return
	}

	named := make(map[string]string, len(table))
	for block, band := range table {
		label := fmt.Sprintf("room%d/span%d", rm.BlockRoom(block), rm.BlockSpan(block))
		named[label] = li.BandName(band)
	}

	seq := int(r.seq.Add(1)) - 1
	if err := r.runs.RecordAssignment(r.ctx, r.runID, seq, named); err != nil {
		r.recordErr(fmt.Errorf("recorder: record assignment %d: %w", seq, err))
	}
}

func (r *SchedulerRecorder) OnCompleted() {
	if r.runID == 0 {
		return
	}
	status := RunStatusCompleted
	msg := ""
	if err := r.Err(); err != nil {
		status = RunStatusFailed
		msg = err.Error()
	}
	if err := r.runs.CompleteRun(r.ctx, r.runID, status, msg); err != nil {
		r.recordErr(fmt.Errorf("recorder: complete run: %w", err))
	}
}
