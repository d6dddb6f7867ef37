package dto

import (
	"github.com/shopspring/decimal"

	"github.com/phuoclv264/katrina-one-sub004/internal/model"
	"github.com/phuoclv264/katrina-one-sub004/internal/reconcile"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CashCountRequest struct {
	ActualCashCounted decimal.Decimal `json:"actual_cash_counted" validate:"min=0"`
	DiscrepancyReason *string         `json:"discrepancy_reason"`
	ProofPhotoIDs     []string        `json:"proof_photo_ids"`
}

type ReceiptReadingRequest struct {
	ExpectedCash          decimal.Decimal `json:"expected_cash"           validate:"min=0"`
	StartOfDayCash        decimal.Decimal `json:"start_of_day_cash"       validate:"min=0"`
	CashExpense           decimal.Decimal `json:"cash_expense"            validate:"min=0"`
	CashRevenue           decimal.Decimal `json:"cash_revenue"            validate:"min=0"`
	CashRefund            decimal.Decimal `json:"cash_refund"             validate:"min=0"`
	DeliveryPartnerPayout decimal.Decimal `json:"delivery_partner_payout" validate:"min=0"`
	RevenueBankTransfer   decimal.Decimal `json:"revenue_bank_transfer"   validate:"min=0"`
	RevenueShopeeFood     decimal.Decimal `json:"revenue_shopee_food"     validate:"min=0"`
	RevenueGrabFood       decimal.Decimal `json:"revenue_grab_food"       validate:"min=0"`
	RevenueOther          decimal.Decimal `json:"revenue_other"           validate:"min=0"`
	OtherRefund           decimal.Decimal `json:"other_refund"            validate:"min=0"`
}

// ToModel maps the wire reading onto the domain type.
func (r ReceiptReadingRequest) ToModel() model.ReceiptReading {
	return model.ReceiptReading{
		ExpectedCash:          r.ExpectedCash,
		StartOfDayCash:        r.StartOfDayCash,
		CashExpense:           r.CashExpense,
		CashRevenue:           r.CashRevenue,
		CashRefund:            r.CashRefund,
		DeliveryPartnerPayout: r.DeliveryPartnerPayout,
		RevenueBankTransfer:   r.RevenueBankTransfer,
		RevenueShopeeFood:     r.RevenueShopeeFood,
		RevenueGrabFood:       r.RevenueGrabFood,
		RevenueOther:          r.RevenueOther,
		OtherRefund:           r.OtherRefund,
	}
}

type CompareRequest struct {
	Receipt ReceiptReadingRequest `json:"receipt" validate:"required"`
}

type FinalizeRequest struct {
	Receipt ReceiptReadingRequest `json:"receipt" validate:"required"`
}

type ParseReceiptRequest struct {
	PhotoID string `json:"photo_id" validate:"required"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type CashCountResponse struct {
	ID                   string          `json:"id"`
	BusinessDate         string          `json:"business_date"`
	ActualCashCounted    decimal.Decimal `json:"actual_cash_counted"`
	StartOfDayCash       decimal.Decimal `json:"start_of_day_cash"`
	ExpectedCash         decimal.Decimal `json:"expected_cash"`
	Discrepancy          decimal.Decimal `json:"discrepancy"`
	DiscrepancyReason    *string         `json:"discrepancy_reason,omitempty"`
	ProofPhotoIDs        []string        `json:"proof_photo_ids,omitempty"`
	LinkedRevenueStatsID *string         `json:"linked_revenue_stats_id,omitempty"`
	LinkedExpenseSlipIDs []string        `json:"linked_expense_slip_ids"`
	CreatedBy            string          `json:"created_by"`
	CreatedByName        string          `json:"created_by_name"`
	Finalized            bool            `json:"finalized"`
	CreatedAt            string          `json:"created_at"`
}

type ComparisonResponse struct {
	BusinessDate string                  `json:"business_date"`
	Rows         []model.FieldComparison `json:"rows"`
	AllMatch     bool                    `json:"all_match"`
}

type DailySummaryResponse struct {
	BusinessDate string                `json:"business_date"`
	Totals       reconcile.DailyTotals `json:"totals"`
	Finalized    bool                  `json:"finalized"`
}

type ShiftStatusResponse struct {
	BusinessDate string  `json:"business_date"`
	Status       string  `json:"status"`
	FinalizedBy  *string `json:"finalized_by,omitempty"`
	FinalizedAt  *string `json:"finalized_at,omitempty"`
}

type ParseReceiptResponse struct {
	Reading    ReceiptReadingRequest `json:"reading"`
	Confidence float64               `json:"confidence"`
	Warnings   []string              `json:"warnings,omitempty"`
}
