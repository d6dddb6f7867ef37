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

func slipRequest(total int64, method string) dto.ExpenseSlipRequest {
	return dto.ExpenseSlipRequest{
		Items: []dto.ExpenseItemInput{
			{Name: "Sữa tươi", Quantity: decimal.NewFromInt(2)},
		},
		TotalAmount:   decimal.NewFromInt(total),
		PaymentMethod: method,
	}
}

func TestExpenseCreateAndList(t *testing.T) {
	env := newTestEnv()
	period := mustPeriod(t, "2026-03-15")
	cashier := service.Actor{ID: uuid.New(), Name: "Lan", Role: "cashier"}

	created, err := env.expenses.Create(context.Background(), period, cashier, slipRequest(120_000, model.PaymentCash))
	require.NoError(t, err)
	assert.Equal(t, "2026-03-15", created.BusinessDate)
	assert.Equal(t, "Lan", created.CreatedByName)
	assert.False(t, created.SystemGenerated)

	list, err := env.expenses.List(context.Background(), period)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, created.ID, list[0].ID)

	// a different day stays empty
	other, err := env.expenses.List(context.Background(), mustPeriod(t, "2026-03-16"))
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestExpenseUpdateOnlyByCreator(t *testing.T) {
	env := newTestEnv()
	period := mustPeriod(t, "2026-03-15")
	creator := service.Actor{ID: uuid.New(), Name: "Lan", Role: "cashier"}
	other := service.Actor{ID: uuid.New(), Name: "Minh", Role: "cashier"}

	created, err := env.expenses.Create(context.Background(), period, creator, slipRequest(120_000, model.PaymentCash))
	require.NoError(t, err)
	id := uuid.MustParse(created.ID)

	_, err = env.expenses.Update(context.Background(), id, other, slipRequest(90_000, model.PaymentCash))
	assert.ErrorIs(t, err, service.ErrNotCreator)

	err = env.expenses.Delete(context.Background(), id, other)
	assert.ErrorIs(t, err, service.ErrNotCreator)

	// creator can still edit
	updated, err := env.expenses.Update(context.Background(), id, creator, slipRequest(90_000, model.PaymentCash))
	require.NoError(t, err)
	assert.Equal(t, "90000", updated.TotalAmount.String())
}

func TestSystemGeneratedSlipImmutable(t *testing.T) {
	env := newTestEnv()
	creator := service.Actor{ID: uuid.New(), Name: "Lan", Role: "cashier"}

	reportID := uuid.New()
	slip := &model.ExpenseSlip{
		ID:               uuid.New(),
		BusinessDate:     "2026-03-15",
		TotalAmount:      decimal.NewFromInt(50_000),
		PaymentMethod:    model.PaymentCash,
		CreatedBy:        creator.ID,
		CreatedByName:    creator.Name,
		HandoverReportID: &reportID,
	}
	env.store.slips = append(env.store.slips, slip)

	_, err := env.expenses.Update(context.Background(), slip.ID, creator, slipRequest(10_000, model.PaymentCash))
	assert.ErrorIs(t, err, service.ErrSystemGenerated)

	err = env.expenses.Delete(context.Background(), slip.ID, creator)
	assert.ErrorIs(t, err, service.ErrSystemGenerated)
}

func TestExpenseWritesBlockedAfterFinalize(t *testing.T) {
	env := newTestEnv()
	period := mustPeriod(t, "2026-03-15")
	cashier := service.Actor{ID: uuid.New(), Name: "Lan", Role: "cashier"}

	created, err := env.expenses.Create(context.Background(), period, cashier, slipRequest(120_000, model.PaymentCash))
	require.NoError(t, err)

	_, err = env.handover.Finalize(context.Background(), period, "pos-1", cashier, model.ReceiptReading{})
	require.NoError(t, err)

	_, err = env.expenses.Create(context.Background(), period, cashier, slipRequest(10_000, model.PaymentCash))
	assert.ErrorIs(t, err, service.ErrDayFinalized)

	_, err = env.expenses.Update(context.Background(), uuid.MustParse(created.ID), cashier, slipRequest(10_000, model.PaymentCash))
	assert.ErrorIs(t, err, service.ErrDayFinalized)

	err = env.expenses.Delete(context.Background(), uuid.MustParse(created.ID), cashier)
	assert.ErrorIs(t, err, service.ErrDayFinalized)
}
