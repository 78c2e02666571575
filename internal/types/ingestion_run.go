package types

import (
	"time"

	"github.com/google/uuid"
)

// Ingestion run terminal and non-terminal statuses.
const (
	RunStatusPending   = "pending"
	RunStatusRunning   = "running"
	RunStatusSucceeded = "succeeded"
	RunStatusPartial   = "partial"
	RunStatusFailed    = "failed"
)

// IngestionRun is the persisted outcome of one ingestion job. It is created
// when the job starts and finalized exactly once when the job terminates;
// it is never mutated afterwards.
type IngestionRun struct {
	Base
	BatchID    uuid.UUID  `gorm:"column:batch_id;type:uuid;index" json:"batch_id"`
	Kind       string     `gorm:"column:kind;index" json:"kind"`
	Status     string     `gorm:"column:status;index" json:"status"`
	Fetched    int        `gorm:"column:fetched" json:"fetched"`
	Inserted   int        `gorm:"column:inserted" json:"inserted"`
	Skipped    int        `gorm:"column:skipped" json:"skipped"`
	Failed     int        `gorm:"column:failed" json:"failed"`
	Attempts   int        `gorm:"column:attempts" json:"attempts"`
	Error      string     `gorm:"column:error;type:text" json:"error,omitempty"`
	StartedAt  time.Time  `gorm:"column:started_at" json:"started_at"`
	FinishedAt *time.Time `gorm:"column:finished_at" json:"finished_at,omitempty"`
}

func (IngestionRun) TableName() string { return "ingestion_run" }

// Terminal reports whether the run has reached a terminal status.
func (r *IngestionRun) Terminal() bool {
	switch r.Status {
	case RunStatusSucceeded, RunStatusPartial, RunStatusFailed:
		return true
	default:
		return false
	}
}
