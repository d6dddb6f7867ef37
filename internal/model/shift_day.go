package model

import (
	"time"

	"github.com/google/uuid"
)

// Shift day status — the transition is one-way.
const (
	ShiftOpen      = "open"
	ShiftFinalized = "finalized"
)

// Summary job states for the post-finalize PDF/email pipeline.
const (
	SummaryPending   = "pending"
	SummaryGenerated = "generated"
	SummaryFailed    = "failed"
)

// ShiftDay is the day-level aggregate holding the explicit lock status.
// One row per business date, created lazily on first finalize.
type ShiftDay struct {
	BusinessDate string     `gorm:"type:date;primaryKey"`
	Status       string     `gorm:"type:varchar(20);not null;default:'open'"`
	FinalizedBy  *uuid.UUID `gorm:"type:uuid"`
	FinalizedAt  *time.Time

	// Handover summary pipeline bookkeeping (retried by the summary cron).
	SummaryState   string  `gorm:"type:varchar(20);not null;default:'pending'"`
	SummaryPDFPath *string `gorm:""`
	RetryCount     int     `gorm:"not null;default:0"`
	NextRetryAt    *time.Time
	LastError      *string

	CreatedAt time.Time
	UpdatedAt time.Time
}
