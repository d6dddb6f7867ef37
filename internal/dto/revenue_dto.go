package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type RevenueStatsRequest struct {
	NetRevenue            decimal.Decimal `json:"net_revenue"             validate:"min=0"`
	RevenueCash           decimal.Decimal `json:"revenue_cash"            validate:"min=0"`
	RevenueBankTransfer   decimal.Decimal `json:"revenue_bank_transfer"   validate:"min=0"`
	RevenueShopeeFood     decimal.Decimal `json:"revenue_shopee_food"     validate:"min=0"`
	RevenueGrabFood       decimal.Decimal `json:"revenue_grab_food"       validate:"min=0"`
	RevenueOther          decimal.Decimal `json:"revenue_other"           validate:"min=0"`
	DeliveryPartnerPayout decimal.Decimal `json:"delivery_partner_payout" validate:"min=0"`
	IsAIGenerated         bool            `json:"is_ai_generated"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type RevenueStatsResponse struct {
	ID                    string          `json:"id"`
	BusinessDate          string          `json:"business_date"`
	NetRevenue            decimal.Decimal `json:"net_revenue"`
	RevenueCash           decimal.Decimal `json:"revenue_cash"`
	RevenueBankTransfer   decimal.Decimal `json:"revenue_bank_transfer"`
	RevenueShopeeFood     decimal.Decimal `json:"revenue_shopee_food"`
	RevenueGrabFood       decimal.Decimal `json:"revenue_grab_food"`
	RevenueOther          decimal.Decimal `json:"revenue_other"`
	DeliveryPartnerPayout decimal.Decimal `json:"delivery_partner_payout"`
	IsEdited              bool            `json:"is_edited"`
	IsAIGenerated         bool            `json:"is_ai_generated"`
	ReportTimestamp       string          `json:"report_timestamp"`
	CreatedBy             string          `json:"created_by"`
	CreatedByName         string          `json:"created_by_name"`
}
