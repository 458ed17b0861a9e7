package repository

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// JSONField is a custom type for handling JSON columns in GORM, carried
// over from the teacher unchanged: gorm scans/values it as raw bytes and
// (Un)MarshalJSON round-trips it as an embedded JSON value rather than a
// base64 string.
type JSONField []byte

// Value implements driver.Valuer.
func (j JSONField) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return []byte(j), nil
}

// Scan implements sql.Scanner.
func (j *JSONField) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		*j = append((*j)[0:0], v...)
		return nil
	case string:
		*j = []byte(v)
		return nil
	default:
		return errors.New("unsupported type for JSONField")
	}
}

// MarshalJSON implements json.Marshaler.
func (j JSONField) MarshalJSON() ([]byte, error) {
	if j == nil {
		return []byte("null"), nil
	}
	return j, nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (j *JSONField) UnmarshalJSON(data []byte) error {
	if data == nil || string(data) == "null" {
		*j = nil
		return nil
	}
	*j = append((*j)[0:0], data...)
	return nil
}

// BandCatalog represents the band_catalog table: a named, reusable
// band/schedule/room definition.
type BandCatalog struct {
	ID            int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Name          string    `gorm:"column:name;type:varchar(128);uniqueIndex"`
	BandTable     JSONField `gorm:"column:band_table;type:json"`
	ScheduleTable JSONField `gorm:"column:schedule_table;type:json"`
	RoomSpec      JSONField `gorm:"column:room_spec;type:json"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName returns the table name for BandCatalog.
func (BandCatalog) TableName() string {
	return "band_catalog"
}

// ToDomain converts BandCatalog to its decoded domain form.
func (c *BandCatalog) ToDomain() (*BandCatalogEntry, error) {
	entry := &BandCatalogEntry{
		ID:        c.ID,
		Name:      c.Name,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
	if c.BandTable != nil {
		if err := json.Unmarshal(c.BandTable, &entry.BandTable); err != nil {
			return nil, err
		}
	}
	if c.ScheduleTable != nil {
		if err := json.Unmarshal(c.ScheduleTable, &entry.ScheduleTable); err != nil {
			return nil, err
		}
	}
	if c.RoomSpec != nil {
		if err := json.Unmarshal(c.RoomSpec, &entry.RoomSpec); err != nil {
			return nil, err
		}
	}
	return entry, nil
}

// ScheduleRunRecord represents the schedule_run table.
type ScheduleRunRecord struct {
	ID            int64      `gorm:"column:id;primaryKey;autoIncrement"`
	ExpectedCount uint64     `gorm:"column:expected_count"`
	AssignedCount int64      `gorm:"column:assigned_count"`
	Status        string     `gorm:"column:status;type:varchar(32)"`
	ErrorMessage  string     `gorm:"column:error_message;type:text"`
	StartedAt     time.Time  `gorm:"column:started_at;autoCreateTime"`
	CompletedAt   *time.Time `gorm:"column:completed_at"`
}

// TableName returns the table name for ScheduleRunRecord.
func (ScheduleRunRecord) TableName() string {
	return "schedule_run"
}

// ToDomain converts ScheduleRunRecord to its domain form.
func (r *ScheduleRunRecord) ToDomain() *ScheduleRun {
	return &ScheduleRun{
		ID:            r.ID,
		ExpectedCount: r.ExpectedCount,
		AssignedCount: r.AssignedCount,
		Status:        RunStatus(r.Status),
		ErrorMessage:  r.ErrorMessage,
		StartedAt:     r.StartedAt,
		CompletedAt:   r.CompletedAt,
	}
}

// ScheduleAssignmentRecord represents the schedule_assignment table: one
// persisted valid block->band table, tagged by its enumeration sequence
// within a run.
type ScheduleAssignmentRecord struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement"`
	RunID     int64     `gorm:"column:run_id;index"`
	Sequence  int       `gorm:"column:sequence"`
	Table     JSONField `gorm:"column:table_json;type:json"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

// TableName returns the table name for ScheduleAssignmentRecord.
func (ScheduleAssignmentRecord) TableName() string {
	return "schedule_assignment"
}

// ToDomain converts ScheduleAssignmentRecord to its domain form.
func (a *ScheduleAssignmentRecord) ToDomain() (*ScheduleAssignment, error) {
	out := &ScheduleAssignment{
		ID:        a.ID,
		RunID:     a.RunID,
		Sequence:  a.Sequence,
		CreatedAt: a.CreatedAt,
	}
	if a.Table != nil {
		if err := json.Unmarshal(a.Table, &out.Table); err != nil {
			return nil, err
		}
	}
	return out, nil
}
