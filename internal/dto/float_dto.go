package dto

import "github.com/shopspring/decimal"

// SetFloatRequest overrides the opening cash float for one device and date.
// A reason is mandatory whenever the value differs from the default float.
type SetFloatRequest struct {
	Value  decimal.Decimal `json:"value"  validate:"min=0"`
	Reason string          `json:"reason"`
}

type FloatResponse struct {
	BusinessDate string          `json:"business_date"`
	Value        decimal.Decimal `json:"value"`
	Reason       string          `json:"reason,omitempty"`
	IsOverride   bool            `json:"is_override"`
	SetAt        *string         `json:"set_at,omitempty"`
}
