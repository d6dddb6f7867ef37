package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RevenueStats is one daily revenue snapshot. Cashiers may re-enter updated
// totals during the day; the newest ReportTimestamp is authoritative.
// Channels are a closed schema — adding a sales channel is a migration, not
// a new map key.
type RevenueStats struct {
	ID                    uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	BusinessDate          string          `gorm:"type:date;not null;index"`
	NetRevenue            decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	RevenueCash           decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	RevenueBankTransfer   decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	RevenueShopeeFood     decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	RevenueGrabFood       decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	RevenueOther          decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	DeliveryPartnerPayout decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	IsEdited              bool            `gorm:"not null;default:false"`
	IsAIGenerated         bool            `gorm:"not null;default:false"`
	ReportTimestamp       time.Time       `gorm:"not null;index"`
	CreatedBy             uuid.UUID       `gorm:"type:uuid;not null"`
	CreatedByName         string          `gorm:"not null"`
	CreatedAt             time.Time
	UpdatedAt             time.Time
}
