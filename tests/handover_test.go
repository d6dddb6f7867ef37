package tests

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phuoclv264/katrina-one-sub004/internal/dto"
	"github.com/phuoclv264/katrina-one-sub004/internal/model"
	"github.com/phuoclv264/katrina-one-sub004/internal/service"
)

// seedDay records one cash slip (paid 119,000 against a 120,000 total), one
// bank slip, and a 4,300,000 cash-revenue snapshot. With the default float
// the expected cash on hand is 4,300,000 − 119,000 + 1,500,000 = 5,681,000.
func seedDay(t *testing.T, env *testEnv, actor service.Actor, date string) {
	t.Helper()
	period := mustPeriod(t, date)
	paid := decimal.NewFromInt(119_000)

	_, err := env.expenses.Create(context.Background(), period, actor, dto.ExpenseSlipRequest{
		Items:            []dto.ExpenseItemInput{{Name: "Cà phê hạt", Quantity: decimal.NewFromInt(5)}},
		TotalAmount:      decimal.NewFromInt(120_000),
		ActualPaidAmount: &paid,
		PaymentMethod:    model.PaymentCash,
	})
	require.NoError(t, err)

	_, err = env.expenses.Create(context.Background(), period, actor, dto.ExpenseSlipRequest{
		Items:         []dto.ExpenseItemInput{{Name: "Gas delivery", Quantity: decimal.NewFromInt(1)}},
		TotalAmount:   decimal.NewFromInt(350_000),
		PaymentMethod: model.PaymentBankTransfer,
	})
	require.NoError(t, err)

	_, err = env.revenue.Create(context.Background(), period, actor, dto.RevenueStatsRequest{
		NetRevenue:          decimal.NewFromInt(5_000_000),
		RevenueCash:         decimal.NewFromInt(4_300_000),
		RevenueBankTransfer: decimal.NewFromInt(500_000),
		RevenueShopeeFood:   decimal.NewFromInt(200_000),
	})
	require.NoError(t, err)
}

func TestDailySummaryDerivation(t *testing.T) {
	env := newTestEnv()
	cashier := service.Actor{ID: uuid.New(), Name: "Lan", Role: "cashier"}
	seedDay(t, env, cashier, "2026-03-15")

	summary, err := env.handover.DailySummary(context.Background(), mustPeriod(t, "2026-03-15"), "pos-1")
	require.NoError(t, err)
	assert.Equal(t, "119000", summary.Totals.TotalCashExpense.String())
	assert.Equal(t, "350000", summary.Totals.TotalBankExpense.String())
	assert.Equal(t, "4300000", summary.Totals.CashRevenue.String())
	assert.Equal(t, "5681000", summary.Totals.ExpectedCashOnHand.String())
	assert.False(t, summary.Finalized)
}

func TestCreateCountDiscrepancy(t *testing.T) {
	env := newTestEnv()
	period := mustPeriod(t, "2026-03-15")
	cashier := service.Actor{ID: uuid.New(), Name: "Lan", Role: "cashier"}
	seedDay(t, env, cashier, "2026-03-15")

	// exact count: no reason needed
	count, err := env.handover.CreateCount(context.Background(), period, "pos-1", cashier, dto.CashCountRequest{
		ActualCashCounted: decimal.NewFromInt(5_681_000),
	})
	require.NoError(t, err)
	assert.Equal(t, "0", count.Discrepancy.String())
	assert.Equal(t, "5681000", count.ExpectedCash.String())
	assert.NotNil(t, count.LinkedRevenueStatsID)
	assert.Len(t, count.LinkedExpenseSlipIDs, 2)

	// short by 50,000 without a reason is rejected
	_, err = env.handover.CreateCount(context.Background(), period, "pos-1", cashier, dto.CashCountRequest{
		ActualCashCounted: decimal.NewFromInt(5_631_000),
	})
	assert.ErrorIs(t, err, service.ErrReasonRequired)

	// same count with a reason is recorded with a signed discrepancy
	reason := "torn 50k note removed from the till"
	short, err := env.handover.CreateCount(context.Background(), period, "pos-1", cashier, dto.CashCountRequest{
		ActualCashCounted: decimal.NewFromInt(5_631_000),
		DiscrepancyReason: &reason,
	})
	require.NoError(t, err)
	assert.Equal(t, "-50000", short.Discrepancy.String())
}

func TestCountSnapshotSurvivesLiveDayDrift(t *testing.T) {
	env := newTestEnv()
	period := mustPeriod(t, "2026-03-15")
	cashier := service.Actor{ID: uuid.New(), Name: "Lan", Role: "cashier"}
	seedDay(t, env, cashier, "2026-03-15")

	count, err := env.handover.CreateCount(context.Background(), period, "pos-1", cashier, dto.CashCountRequest{
		ActualCashCounted: decimal.NewFromInt(5_681_000),
	})
	require.NoError(t, err)

	// the live day moves on: another cash slip lands after the count
	_, err = env.expenses.Create(context.Background(), period, cashier, dto.ExpenseSlipRequest{
		Items:         []dto.ExpenseItemInput{{Name: "Ice", Quantity: decimal.NewFromInt(3)}},
		TotalAmount:   decimal.NewFromInt(200_000),
		PaymentMethod: model.PaymentCash,
	})
	require.NoError(t, err)

	// editing the count re-derives the expectation from its own snapshot,
	// so the new slip must not leak into it
	updated, err := env.handover.UpdateCount(context.Background(), uuid.MustParse(count.ID), cashier, dto.CashCountRequest{
		ActualCashCounted: decimal.NewFromInt(5_681_000),
	})
	require.NoError(t, err)
	assert.Equal(t, "5681000", updated.ExpectedCash.String())
	assert.Equal(t, "0", updated.Discrepancy.String())

	// a fresh count sees the drifted live figures
	fresh, err := env.handover.CreateCount(context.Background(), period, "pos-1", cashier, dto.CashCountRequest{
		ActualCashCounted: decimal.NewFromInt(5_481_000),
	})
	require.NoError(t, err)
	assert.Equal(t, "5481000", fresh.ExpectedCash.String())
}

func TestCompareToleranceIsAdvisory(t *testing.T) {
	env := newTestEnv()
	period := mustPeriod(t, "2026-03-15")
	cashier := service.Actor{ID: uuid.New(), Name: "Lan", Role: "cashier"}
	seedDay(t, env, cashier, "2026-03-15")

	receipt := model.ReceiptReading{
		ExpectedCash:        decimal.NewFromFloat(5_681_000.5), // within tolerance
		StartOfDayCash:      decimal.NewFromInt(1_500_000),
		CashExpense:         decimal.NewFromInt(119_000),
		CashRevenue:         decimal.NewFromInt(4_350_000), // gross of refunds
		CashRefund:          decimal.NewFromInt(50_000),    // nets to 4,300,000
		RevenueBankTransfer: decimal.NewFromInt(500_000),
		RevenueShopeeFood:   decimal.NewFromInt(200_002), // off by 2 — mismatch
	}

	resp, err := env.handover.Compare(context.Background(), period, "pos-1", receipt)
	require.NoError(t, err)
	require.Len(t, resp.Rows, 9)
	assert.False(t, resp.AllMatch)

	byField := make(map[string]model.FieldComparison)
	for _, row := range resp.Rows {
		byField[row.Field] = row
	}
	assert.True(t, byField["expected_cash"].IsMatch)
	assert.True(t, byField["cash_revenue"].IsMatch, "receipt cash revenue must be netted of cash refunds")
	assert.False(t, byField["revenue_shopee_food"].IsMatch)

	// a mismatching comparison never blocks finalization
	_, err = env.handover.Finalize(context.Background(), period, "pos-1", cashier, receipt)
	require.NoError(t, err)
}

func TestFinalizeLocksDayIrreversibly(t *testing.T) {
	env := newTestEnv()
	period := mustPeriod(t, "2026-03-15")
	manager := service.Actor{ID: uuid.New(), Name: "Chi", Role: "manager"}
	seedDay(t, env, manager, "2026-03-15")

	report, err := env.handover.Finalize(context.Background(), period, "pos-1", manager, model.ReceiptReading{})
	require.NoError(t, err)
	assert.True(t, report.Finalized)

	status, err := env.handover.Status(context.Background(), period)
	require.NoError(t, err)
	assert.Equal(t, model.ShiftFinalized, status.Status)
	require.NotNil(t, status.FinalizedBy)
	assert.Equal(t, manager.ID.String(), *status.FinalizedBy)

	// finalize is not repeatable
	_, err = env.handover.Finalize(context.Background(), period, "pos-1", manager, model.ReceiptReading{})
	assert.ErrorIs(t, err, service.ErrDayFinalized)

	// every write path is closed
	_, err = env.handover.CreateCount(context.Background(), period, "pos-1", manager, dto.CashCountRequest{
		ActualCashCounted: decimal.NewFromInt(1),
	})
	assert.ErrorIs(t, err, service.ErrDayFinalized)

	_, err = env.incident.Create(context.Background(), period, manager, dto.IncidentRequest{
		Title: "late entry", Description: "after close", Severity: "low",
	})
	assert.ErrorIs(t, err, service.ErrDayFinalized)

	// other days stay open
	_, err = env.revenue.Create(context.Background(), mustPeriod(t, "2026-03-16"), manager, revenueRequest(1_000_000))
	assert.NoError(t, err)

	// the summary pipeline was kicked off exactly once
	assert.Equal(t, []string{"2026-03-15"}, env.enqueuer.enqueued)
}

func TestFinalizeWithoutCountsCreatesCarrierReport(t *testing.T) {
	env := newTestEnv()
	period := mustPeriod(t, "2026-03-15")
	manager := service.Actor{ID: uuid.New(), Name: "Chi", Role: "manager"}

	report, err := env.handover.Finalize(context.Background(), period, "pos-1", manager, model.ReceiptReading{})
	require.NoError(t, err)
	assert.True(t, report.Finalized)
	assert.NotEmpty(t, report.ID)

	// the lock is discoverable from the report table alone
	require.Len(t, env.store.reports, 1)
	assert.NotNil(t, env.store.reports[0].FinalDetails)
	assert.Len(t, env.store.reports[0].FinalDetails.Comparison, 9)

	finalized, err := (&memShiftRepo{s: env.store}).IsFinalized(context.Background(), period)
	require.NoError(t, err)
	assert.True(t, finalized)
}

func TestLegacyFinalDetailsStillLockDay(t *testing.T) {
	env := newTestEnv()
	period := mustPeriod(t, "2026-03-15")
	cashier := service.Actor{ID: uuid.New(), Name: "Lan", Role: "cashier"}

	// a row written by an old client: final details on the report, no day row
	env.store.reports = append(env.store.reports, &model.CashHandoverReport{
		ID:           uuid.New(),
		BusinessDate: "2026-03-15",
		CreatedBy:    cashier.ID,
		FinalDetails: &model.FinalHandoverDetails{FinalizedBy: cashier.ID},
	})

	_, err := env.expenses.Create(context.Background(), period, cashier, slipRequest(10_000, model.PaymentCash))
	assert.ErrorIs(t, err, service.ErrDayFinalized)

	status, err := env.handover.Status(context.Background(), period)
	require.NoError(t, err)
	assert.Equal(t, model.ShiftFinalized, status.Status)
}

func TestFinalizeSurvivesQueueOutage(t *testing.T) {
	env := newTestEnv()
	env.enqueuer.fail = true
	period := mustPeriod(t, "2026-03-15")
	manager := service.Actor{ID: uuid.New(), Name: "Chi", Role: "manager"}

	// the lock applies even when the summary job cannot be enqueued;
	// the retry cron picks the day up from its pending state
	_, err := env.handover.Finalize(context.Background(), period, "pos-1", manager, model.ReceiptReading{})
	require.NoError(t, err)

	day := env.store.days["2026-03-15"]
	require.NotNil(t, day)
	assert.Equal(t, model.ShiftFinalized, day.Status)
	assert.Equal(t, model.SummaryPending, day.SummaryState)
}
