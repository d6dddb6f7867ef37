// Package reconcile holds the pure computations of the cashier
// reconciliation flow: daily cash aggregation and the receipt comparison.
// Nothing here touches the database — callers pass full snapshots and the
// figures are recomputed from scratch on every call, never cached.
package reconcile

import (
	"github.com/shopspring/decimal"

	"github.com/phuoclv264/katrina-one-sub004/internal/model"
)

// DefaultStartOfDayCash is the opening float carried into expected-cash
// math when no per-device override exists (VND).
var DefaultStartOfDayCash = decimal.NewFromInt(1_500_000)

// DailyTotals are the derived figures for one business day. They are never
// persisted; every consumer recomputes them from the latest snapshot.
type DailyTotals struct {
	TotalCashExpense   decimal.Decimal `json:"total_cash_expense"`
	TotalBankExpense   decimal.Decimal `json:"total_bank_expense"`
	CashRevenue        decimal.Decimal `json:"cash_revenue"`
	StartOfDayCash     decimal.Decimal `json:"start_of_day_cash"`
	ExpectedCashOnHand decimal.Decimal `json:"expected_cash_on_hand"`
}

// TotalCashExpense sums cash slips, preferring the physically paid amount
// over the nominal total when both are recorded.
func TotalCashExpense(slips []model.ExpenseSlip) decimal.Decimal {
	sum := decimal.Zero
	for _, s := range slips {
		if s.PaymentMethod == model.PaymentCash {
			sum = sum.Add(s.CashOutlay())
		}
	}
	return sum
}

// TotalBankExpense sums bank-transfer slips by nominal total.
func TotalBankExpense(slips []model.ExpenseSlip) decimal.Decimal {
	sum := decimal.Zero
	for _, s := range slips {
		if s.PaymentMethod == model.PaymentBankTransfer {
			sum = sum.Add(s.TotalAmount)
		}
	}
	return sum
}

// LatestRevenueStats returns the authoritative snapshot: the entry with the
// newest ReportTimestamp, regardless of slice order. Nil when empty.
func LatestRevenueStats(stats []model.RevenueStats) *model.RevenueStats {
	var newest *model.RevenueStats
	for i := range stats {
		if newest == nil || stats[i].ReportTimestamp.After(newest.ReportTimestamp) {
			newest = &stats[i]
		}
	}
	return newest
}

// CashRevenue is the cash channel of the newest snapshot, zero when no
// snapshot exists for the day.
func CashRevenue(stats []model.RevenueStats) decimal.Decimal {
	if newest := LatestRevenueStats(stats); newest != nil {
		return newest.RevenueCash
	}
	return decimal.Zero
}

// ComputeDailyTotals derives the four reconciliation figures:
//
//	expectedCashOnHand = cashRevenue − totalCashExpense + startOfDayCash
func ComputeDailyTotals(slips []model.ExpenseSlip, stats []model.RevenueStats, startOfDayCash decimal.Decimal) DailyTotals {
	cashExpense := TotalCashExpense(slips)
	cashRevenue := CashRevenue(stats)
	return DailyTotals{
		TotalCashExpense:   cashExpense,
		TotalBankExpense:   TotalBankExpense(slips),
		CashRevenue:        cashRevenue,
		StartOfDayCash:     startOfDayCash,
		ExpectedCashOnHand: cashRevenue.Sub(cashExpense).Add(startOfDayCash),
	}
}

// Discrepancy is the signed difference between a physical count and the
// expectation at count time.
func Discrepancy(actualCashCounted, expectedCash decimal.Decimal) decimal.Decimal {
	return actualCashCounted.Sub(expectedCash)
}
