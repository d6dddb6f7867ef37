package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Payment methods accepted on an expense slip.
const (
	PaymentCash         = "cash"
	PaymentBankTransfer = "bank_transfer"
)

// ExpenseItem is one line of an expense slip, serialized as JSON.
type ExpenseItem struct {
	ItemID      string          `json:"item_id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Quantity    decimal.Decimal `json:"quantity"`
}

// ExpenseSlip records one outgoing payment for a business day.
// ActualPaidAmount may differ from TotalAmount on cash slips (rounding at
// the till); reconciliation always prefers it when present.
// A slip carrying HandoverReportID was generated by the handover flow and
// is permanently immutable.
type ExpenseSlip struct {
	ID               uuid.UUID        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	BusinessDate     string           `gorm:"type:date;not null;index"`
	Items            []ExpenseItem    `gorm:"serializer:json"`
	TotalAmount      decimal.Decimal  `gorm:"type:decimal(15,2);not null"`
	ActualPaidAmount *decimal.Decimal `gorm:"type:decimal(15,2)"`
	PaymentMethod    string           `gorm:"type:varchar(20);not null"`
	CreatedBy        uuid.UUID        `gorm:"type:uuid;not null"`
	CreatedByName    string           `gorm:"not null"`
	LastModifiedBy   *uuid.UUID       `gorm:"type:uuid"`
	HandoverReportID *uuid.UUID       `gorm:"type:uuid;index"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// CashOutlay is the amount the slip removes from the till: the physically
// paid amount when recorded, otherwise the nominal total.
func (s ExpenseSlip) CashOutlay() decimal.Decimal {
	if s.ActualPaidAmount != nil {
		return *s.ActualPaidAmount
	}
	return s.TotalAmount
}
