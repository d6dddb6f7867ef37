package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type ExpenseItemInput struct {
	ItemID      string          `json:"item_id"`
	Name        string          `json:"name"        validate:"required"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"    validate:"gt=0"`
}

type ExpenseSlipRequest struct {
	Items            []ExpenseItemInput `json:"items"              validate:"required,min=1,dive"`
	TotalAmount      decimal.Decimal    `json:"total_amount"       validate:"required,gt=0"`
	ActualPaidAmount *decimal.Decimal   `json:"actual_paid_amount" validate:"omitempty,min=0"`
	PaymentMethod    string             `json:"payment_method"     validate:"required,oneof=cash bank_transfer"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ExpenseSlipResponse struct {
	ID               string             `json:"id"`
	BusinessDate     string             `json:"business_date"`
	Items            []ExpenseItemInput `json:"items"`
	TotalAmount      decimal.Decimal    `json:"total_amount"`
	ActualPaidAmount *decimal.Decimal   `json:"actual_paid_amount,omitempty"`
	PaymentMethod    string             `json:"payment_method"`
	CreatedBy        string             `json:"created_by"`
	CreatedByName    string             `json:"created_by_name"`
	SystemGenerated  bool               `json:"system_generated"`
	CreatedAt        string             `json:"created_at"`
}
