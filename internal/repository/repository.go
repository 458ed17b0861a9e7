// Package repository provides database abstraction for the kon scheduler.
package repository

import (
	"context"
	"time"
)

// BandCatalogRepository stores named, reusable band/schedule/room
// definitions so a caller can re-run a scheduling problem without
// re-ingesting its CSV/HTML sources every time.
type BandCatalogRepository interface {
	// Save creates or overwrites a catalog entry under name.
	Save(ctx context.Context, name string, bandTable map[string][]string, scheduleTable map[string][]bool, roomSpec []int) error

	// Get retrieves a catalog entry by name.
	Get(ctx context.Context, name string) (*BandCatalogEntry, error)

	// List retrieves every catalog entry, most recently updated first.
	List(ctx context.Context) ([]*BandCatalogEntry, error)
}

// RunRepository records the lifecycle and output of scheduler runs.
type RunRepository interface {
	// CreateRun starts a new run record and returns its ID.
	CreateRun(ctx context.Context, expectedCount uint64) (int64, error)

	// RecordAssignment appends one valid block->band table, identified by
	// its position in the run's enumeration order.
	RecordAssignment(ctx context.Context, runID int64, sequence int, table map[string]string) error

	// CompleteRun stamps a run as finished (successfully or not).
	CompleteRun(ctx context.Context, runID int64, status RunStatus, errMessage string) error

	// ListRuns retrieves runs, most recently started first.
	ListRuns(ctx context.Context, limit int) ([]*ScheduleRun, error)

	// GetRun retrieves a single run by ID.
	GetRun(ctx context.Context, runID int64) (*ScheduleRun, error)

	// ListAssignments retrieves every recorded assignment for a run, in
	// sequence order.
	ListAssignments(ctx context.Context, runID int64) ([]*ScheduleAssignment, error)
}

// RunStatus is the lifecycle state of a scheduler run record.
type RunStatus string

const (
	RunStatusRunning   RunStatus = "running"
	RunStatusCompleted RunStatus = "completed"
	RunStatusFailed    RunStatus = "failed"
)

// BandCatalogEntry is the domain view of a saved catalog row (database
// columns decoded, JSON fields unmarshalled).
type BandCatalogEntry struct {
	ID            int64
	Name          string
	BandTable     map[string][]string
	ScheduleTable map[string][]bool
	RoomSpec      []int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ScheduleRun is the domain view of a saved run row.
type ScheduleRun struct {
	ID             int64
	ExpectedCount  uint64
	AssignedCount  int64
	Status         RunStatus
	ErrorMessage   string
	StartedAt      time.Time
	CompletedAt    *time.Time
}

// ScheduleAssignment is the domain view of one persisted valid table.
type ScheduleAssignment struct {
	ID        int64
	RunID     int64
	Sequence  int
	Table     map[string]string // block label -> band name
	CreatedAt time.Time
}
