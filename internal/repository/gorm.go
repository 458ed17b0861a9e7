package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormBandCatalogRepository implements BandCatalogRepository using GORM.
type GormBandCatalogRepository struct {
	db *gorm.DB
}

// NewGormBandCatalogRepository creates a new GormBandCatalogRepository.
func NewGormBandCatalogRepository(db *gorm.DB) *GormBandCatalogRepository {
	return &GormBandCatalogRepository{db: db}
}

// Save creates or overwrites a catalog entry under name.
func (r *GormBandCatalogRepository) Save(ctx context.Context, name string, bandTable map[string][]string, scheduleTable map[string][]bool, roomSpec []int) error {
	bandJSON, err := json.Marshal(bandTable)
	if err != nil {
		return fmt.Errorf("failed to marshal band table: %w", err)
	}
	scheduleJSON, err := json.Marshal(scheduleTable)
	if err != nil {
		return fmt.Errorf("failed to marshal schedule table: %w", err)
	}
	roomJSON, err := json.Marshal(roomSpec)
	if err != nil {
		return fmt.Errorf("failed to marshal room spec: %w", err)
	}

	record := &BandCatalog{
		Name:          name,
		BandTable:     bandJSON,
		ScheduleTable: scheduleJSON,
		RoomSpec:      roomJSON,
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{"band_table", "schedule_table", "room_spec", "updated_at"}),
		}).
		Create(record).Error
}

// Get retrieves a catalog entry by name.
func (r *GormBandCatalogRepository) Get(ctx context.Context, name string) (*BandCatalogEntry, error) {
	var record BandCatalog

	err := r.db.WithContext(ctx).Where("name = ?", name).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("catalog entry not found: %s", name)
		}
		return nil, fmt.Errorf("failed to get catalog entry: %w", err)
	}

	return record.ToDomain()
}

// List retrieves every catalog entry, most recently updated first.
func (r *GormBandCatalogRepository) List(ctx context.Context) ([]*BandCatalogEntry, error) {
	var records []BandCatalog

	err := r.db.WithContext(ctx).Order("updated_at DESC").Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list catalog entries: %w", err)
	}

	entries := make([]*BandCatalogEntry, 0, len(records))
	for _, rec := range records {
		entry, err := rec.ToDomain()
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// GormRunRepository implements RunRepository using GORM.
type GormRunRepository struct {
	db *gorm.DB
}

// NewGormRunRepository creates a new GormRunRepository.
func NewGormRunRepository(db *gorm.DB) *GormRunRepository {
	return &GormRunRepository{db: db}
}

// CreateRun starts a new run record and returns its ID.
func (r *GormRunRepository) CreateRun(ctx context.Context, expectedCount uint64) (int64, error) {
	record := &ScheduleRunRecord{
		ExpectedCount: expectedCount,
		Status:        string(RunStatusRunning),
	}
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return 0, fmt.Errorf("failed to create run: %w", err)
	}
	return record.ID, nil
}

// RecordAssignment appends one valid block->band table.
func (r *GormRunRepository) RecordAssignment(ctx context.Context, runID int64, sequence int, table map[string]string) error {
	tableJSON, err := json.Marshal(table)
	if err != nil {
		return fmt.Errorf("failed to marshal assignment table: %w", err)
	}

	record := &ScheduleAssignmentRecord{
		RunID:    runID,
		Sequence: sequence,
		Table:    tableJSON,
	}
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return fmt.Errorf("failed to record assignment: %w", err)
	}

	return r.db.WithContext(ctx).
		Model(&ScheduleRunRecord{}).
		Where("id = ?", runID).
		UpdateColumn("assigned_count", gorm.Expr("assigned_count + 1")).Error
}

// CompleteRun stamps a run as finished.
func (r *GormRunRepository) CompleteRun(ctx context.Context, runID int64, status RunStatus, errMessage string) error {
	now := time.Now()
	result := r.db.WithContext(ctx).
		Model(&ScheduleRunRecord{}).
		Where("id = ?", runID).
		Updates(map[string]interface{}{
			"status":        string(status),
			"error_message": errMessage,
			"completed_at":  now,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to complete run: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("run not found: %d", runID)
	}
	return nil
}

// ListRuns retrieves runs, most recently started first.
func (r *GormRunRepository) ListRuns(ctx context.Context, limit int) ([]*ScheduleRun, error) {
	var records []ScheduleRunRecord

	query := r.db.WithContext(ctx).Order("started_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}

	runs := make([]*ScheduleRun, len(records))
	for i := range records {
		runs[i] = records[i].ToDomain()
	}
	return runs, nil
}

// GetRun retrieves a single run by ID.
func (r *GormRunRepository) GetRun(ctx context.Context, runID int64) (*ScheduleRun, error) {
	var record ScheduleRunRecord

	err := r.db.WithContext(ctx).Where("id = ?", runID).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("run not found: %d", runID)
		}
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return record.ToDomain(), nil
}

// ListAssignments retrieves every recorded assignment for a run, in
// sequence order.
func (r *GormRunRepository) ListAssignments(ctx context.Context, runID int64) ([]*ScheduleAssignment, error) {
	var records []ScheduleAssignmentRecord

	err := r.db.WithContext(ctx).Where("run_id = ?", runID).Order("sequence ASC").Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}

	out := make([]*ScheduleAssignment, 0, len(records))
	for _, rec := range records {
		a, err := rec.ToDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}
