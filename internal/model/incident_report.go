package model

import (
	"time"

	"github.com/google/uuid"
)

// IncidentReport documents an operational incident during a shift
// (breakage, customer complaint, till anomaly). Locked once the day's
// handover is finalized.
type IncidentReport struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	BusinessDate   string     `gorm:"type:date;not null;index"`
	Title          string     `gorm:"not null"`
	Description    string     `gorm:"not null"`
	Severity       string     `gorm:"type:varchar(20);not null"` // low | medium | high
	PhotoIDs       []string   `gorm:"serializer:json"`
	CreatedBy      uuid.UUID  `gorm:"type:uuid;not null"`
	CreatedByName  string     `gorm:"not null"`
	LastModifiedBy *uuid.UUID `gorm:"type:uuid"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
