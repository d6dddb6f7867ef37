package reconcile

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phuoclv264/katrina-one-sub004/internal/model"
)

func TestFieldMatches_Tolerance(t *testing.T) {
	// Sub-unit rounding matches, anything ≥ 1 does not.
	assert.True(t, FieldMatches(dec(500_000), decimal.NewFromFloat(500_000.5)))
	assert.False(t, FieldMatches(dec(500_000), dec(500_002)))
	assert.False(t, FieldMatches(dec(500_000), dec(500_001)))
	assert.True(t, FieldMatches(dec(500_000), decimal.NewFromFloat(499_999.2)))
}

func TestCompareAgainstReceipt_Adjustments(t *testing.T) {
	latest := &model.RevenueStats{
		RevenueCash:           dec(3_000_000),
		RevenueBankTransfer:   dec(1_200_000),
		RevenueShopeeFood:     dec(450_000),
		RevenueGrabFood:       dec(380_000),
		RevenueOther:          dec(100_000),
		DeliveryPartnerPayout: dec(90_000),
	}
	totals := DailyTotals{
		TotalCashExpense:   dec(200_000),
		CashRevenue:        latest.RevenueCash,
		StartOfDayCash:     dec(1_500_000),
		ExpectedCashOnHand: dec(4_300_000),
	}

	receipt := model.ReceiptReading{
		ExpectedCash:   dec(4_300_000),
		StartOfDayCash: dec(1_500_000),
		CashExpense:    dec(200_000),
		// Receipt reports gross cash revenue plus the cash refund handed back:
		// 3,050,000 − 50,000 must equal the app's 3,000,000.
		CashRevenue:           dec(3_050_000),
		CashRefund:            dec(50_000),
		DeliveryPartnerPayout: dec(90_000),
		RevenueBankTransfer:   dec(1_200_000),
		RevenueShopeeFood:     dec(450_000),
		RevenueGrabFood:       dec(380_500), // off by 500 — mismatch
		RevenueOther:          dec(110_000),
		OtherRefund:           dec(10_000), // nets to 100,000 — match
	}

	rows := CompareAgainstReceipt(totals, latest, receipt)
	require.Len(t, rows, 9)

	byField := map[string]model.FieldComparison{}
	for _, r := range rows {
		byField[r.Field] = r
	}

	assert.True(t, byField[FieldExpectedCash].IsMatch)
	assert.True(t, byField[FieldCashRevenue].IsMatch)
	assert.Equal(t, "3000000", byField[FieldCashRevenue].ReceiptValue.String())
	assert.True(t, byField[FieldRevenueOther].IsMatch)
	assert.False(t, byField[FieldRevenueGrabFood].IsMatch)
}

func TestCompareAgainstReceipt_NoRevenueSnapshot(t *testing.T) {
	totals := ComputeDailyTotals(nil, nil, DefaultStartOfDayCash)
	rows := CompareAgainstReceipt(totals, nil, model.ReceiptReading{})
	require.Len(t, rows, 9)

	byField := map[string]model.FieldComparison{}
	for _, r := range rows {
		byField[r.Field] = r
	}
	// Channel figures default to zero and match an all-zero receipt.
	assert.True(t, byField[FieldRevenueBankTransfer].IsMatch)
	// Expected cash is the full float, receipt says zero — mismatch.
	assert.False(t, byField[FieldExpectedCash].IsMatch)
}
