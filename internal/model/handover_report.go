package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CashHandoverReport is one physical cash count (kiểm kê). Several may be
// recorded per day (mid-shift, end of shift). ExpectedCash and the linked
// revenue/slip ids are snapshotted at count time so the recorded discrepancy
// stays reproducible after later edits to the live day.
//
// A report carrying FinalDetails marks the whole day as finalized. The
// explicit ShiftDay aggregate is the primary lock; this field is kept as the
// compatibility discovery rule inherited from earlier clients.
type CashHandoverReport struct {
	ID                   uuid.UUID             `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	BusinessDate         string                `gorm:"type:date;not null;index"`
	ActualCashCounted    decimal.Decimal       `gorm:"type:decimal(15,2);not null"`
	StartOfDayCash       decimal.Decimal       `gorm:"type:decimal(15,2);not null"`
	ExpectedCash         decimal.Decimal       `gorm:"type:decimal(15,2);not null"`
	Discrepancy          decimal.Decimal       `gorm:"type:decimal(15,2);not null"`
	DiscrepancyReason    *string               `gorm:""`
	ProofPhotoIDs        []string              `gorm:"serializer:json"`
	LinkedRevenueStatsID *uuid.UUID            `gorm:"type:uuid"`
	LinkedExpenseSlipIDs []uuid.UUID           `gorm:"serializer:json"`
	CreatedBy            uuid.UUID             `gorm:"type:uuid;not null"`
	CreatedByName        string                `gorm:"not null"`
	FinalDetails         *FinalHandoverDetails `gorm:"serializer:json"`
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// ReceiptReading holds the figures extracted from the physical end-of-day
// printout by the OCR sidecar (or typed in by the cashier).
type ReceiptReading struct {
	ExpectedCash          decimal.Decimal `json:"expected_cash"`
	StartOfDayCash        decimal.Decimal `json:"start_of_day_cash"`
	CashExpense           decimal.Decimal `json:"cash_expense"`
	CashRevenue           decimal.Decimal `json:"cash_revenue"`
	CashRefund            decimal.Decimal `json:"cash_refund"`
	DeliveryPartnerPayout decimal.Decimal `json:"delivery_partner_payout"`
	RevenueBankTransfer   decimal.Decimal `json:"revenue_bank_transfer"`
	RevenueShopeeFood     decimal.Decimal `json:"revenue_shopee_food"`
	RevenueGrabFood       decimal.Decimal `json:"revenue_grab_food"`
	RevenueOther          decimal.Decimal `json:"revenue_other"`
	OtherRefund           decimal.Decimal `json:"other_refund"`
}

// FieldComparison is one advisory row of the handover reconciliation table.
type FieldComparison struct {
	Field        string          `json:"field"`
	AppValue     decimal.Decimal `json:"app_value"`
	ReceiptValue decimal.Decimal `json:"receipt_value"`
	IsMatch      bool            `json:"is_match"`
}

// FinalHandoverDetails is written exactly once, by the finalize operation.
type FinalHandoverDetails struct {
	Receipt         ReceiptReading    `json:"receipt"`
	Comparison      []FieldComparison `json:"comparison"`
	FinalizedBy     uuid.UUID         `json:"finalized_by"`
	FinalizedByName string            `json:"finalized_by_name"`
	FinalizedAt     time.Time         `json:"finalized_at"`
}
