package reconcile

import (
	"github.com/shopspring/decimal"

	"github.com/phuoclv264/katrina-one-sub004/internal/model"
)

// MatchTolerance absorbs sub-unit rounding between the app's figures and
// the printed receipt: a field matches iff |app − receipt| < 1.
var MatchTolerance = decimal.NewFromInt(1)

// Comparison field names, in presentation order.
const (
	FieldExpectedCash          = "expected_cash"
	FieldStartOfDayCash        = "start_of_day_cash"
	FieldCashExpense           = "cash_expense"
	FieldCashRevenue           = "cash_revenue"
	FieldDeliveryPartnerPayout = "delivery_partner_payout"
	FieldRevenueBankTransfer   = "revenue_bank_transfer"
	FieldRevenueShopeeFood     = "revenue_shopee_food"
	FieldRevenueGrabFood       = "revenue_grab_food"
	FieldRevenueOther          = "revenue_other"
)

// FieldMatches reports whether two figures agree within MatchTolerance.
func FieldMatches(appValue, receiptValue decimal.Decimal) bool {
	return appValue.Sub(receiptValue).Abs().LessThan(MatchTolerance)
}

// CompareAgainstReceipt builds the advisory field-by-field reconciliation
// table between the app's computed state and the receipt reading.
//
// Two receipt fields carry their own fixed adjustment before comparison:
// the receipt's cash revenue is gross of refunds handed back in cash, and
// its "other" channel is gross of the separately reported other-refund.
// Mismatching rows never block finalization — the table is advice, not a
// gate.
func CompareAgainstReceipt(totals DailyTotals, latest *model.RevenueStats, receipt model.ReceiptReading) []model.FieldComparison {
	deliveryPayout := decimal.Zero
	bankTransfer := decimal.Zero
	shopeeFood := decimal.Zero
	grabFood := decimal.Zero
	other := decimal.Zero
	if latest != nil {
		deliveryPayout = latest.DeliveryPartnerPayout
		bankTransfer = latest.RevenueBankTransfer
		shopeeFood = latest.RevenueShopeeFood
		grabFood = latest.RevenueGrabFood
		other = latest.RevenueOther
	}

	rows := []struct {
		field   string
		app     decimal.Decimal
		receipt decimal.Decimal
	}{
		{FieldExpectedCash, totals.ExpectedCashOnHand, receipt.ExpectedCash},
		{FieldStartOfDayCash, totals.StartOfDayCash, receipt.StartOfDayCash},
		{FieldCashExpense, totals.TotalCashExpense, receipt.CashExpense},
		{FieldCashRevenue, totals.CashRevenue, receipt.CashRevenue.Sub(receipt.CashRefund)},
		{FieldDeliveryPartnerPayout, deliveryPayout, receipt.DeliveryPartnerPayout},
		{FieldRevenueBankTransfer, bankTransfer, receipt.RevenueBankTransfer},
		{FieldRevenueShopeeFood, shopeeFood, receipt.RevenueShopeeFood},
		{FieldRevenueGrabFood, grabFood, receipt.RevenueGrabFood},
		{FieldRevenueOther, other, receipt.RevenueOther.Sub(receipt.OtherRefund)},
	}

	out := make([]model.FieldComparison, len(rows))
	for i, r := range rows {
		out[i] = model.FieldComparison{
			Field:        r.field,
			AppValue:     r.app,
			ReceiptValue: r.receipt,
			IsMatch:      FieldMatches(r.app, r.receipt),
		}
	}
	return out
}
