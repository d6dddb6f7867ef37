package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/phuoclv264/katrina-one-sub004/internal/dto"
	"github.com/phuoclv264/katrina-one-sub004/internal/model"
	"github.com/phuoclv264/katrina-one-sub004/internal/reconcile"
	"github.com/phuoclv264/katrina-one-sub004/internal/repository"
)

type ExpenseService interface {
	Create(ctx context.Context, period reconcile.ReportingPeriod, actor Actor, req dto.ExpenseSlipRequest) (*dto.ExpenseSlipResponse, error)
	List(ctx context.Context, period reconcile.ReportingPeriod) ([]dto.ExpenseSlipResponse, error)
	Update(ctx context.Context, id uuid.UUID, actor Actor, req dto.ExpenseSlipRequest) (*dto.ExpenseSlipResponse, error)
	Delete(ctx context.Context, id uuid.UUID, actor Actor) error
}

type expenseService struct {
	repo      repository.ExpenseRepository
	shiftRepo repository.ShiftRepository
}

func NewExpenseService(repo repository.ExpenseRepository, shiftRepo repository.ShiftRepository) ExpenseService {
	return &expenseService{repo: repo, shiftRepo: shiftRepo}
}

func (s *expenseService) Create(ctx context.Context, period reconcile.ReportingPeriod, actor Actor, req dto.ExpenseSlipRequest) (*dto.ExpenseSlipResponse, error) {
	if err := s.guardOpen(ctx, period); err != nil {
		return nil, err
	}

	slip := &model.ExpenseSlip{
		BusinessDate:     period.String(),
		Items:            itemsToModel(req.Items),
		TotalAmount:      req.TotalAmount,
		ActualPaidAmount: req.ActualPaidAmount,
		PaymentMethod:    req.PaymentMethod,
		CreatedBy:        actor.ID,
		CreatedByName:    actor.Name,
	}
	if err := s.repo.Create(ctx, slip); err != nil {
		return nil, err
	}
	resp := slipToResponse(slip)
	return &resp, nil
}

func (s *expenseService) List(ctx context.Context, period reconcile.ReportingPeriod) ([]dto.ExpenseSlipResponse, error) {
	slips, err := s.repo.ListByPeriod(ctx, period)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.ExpenseSlipResponse, len(slips))
	for i := range slips {
		resp[i] = slipToResponse(&slips[i])
	}
	return resp, nil
}

func (s *expenseService) Update(ctx context.Context, id uuid.UUID, actor Actor, req dto.ExpenseSlipRequest) (*dto.ExpenseSlipResponse, error) {
	slip, err := s.loadMutable(ctx, id, actor)
	if err != nil {
		return nil, err
	}

	slip.Items = itemsToModel(req.Items)
	slip.TotalAmount = req.TotalAmount
	slip.ActualPaidAmount = req.ActualPaidAmount
	slip.PaymentMethod = req.PaymentMethod
	modifier := actor.ID
	slip.LastModifiedBy = &modifier

	if err := s.repo.Update(ctx, slip); err != nil {
		return nil, err
	}
	resp := slipToResponse(slip)
	return &resp, nil
}

func (s *expenseService) Delete(ctx context.Context, id uuid.UUID, actor Actor) error {
	slip, err := s.loadMutable(ctx, id, actor)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, slip.ID)
}

// guardOpen rejects writes once the day is finalized. Enforced here, in the
// write path, not just hidden in the UI.
func (s *expenseService) guardOpen(ctx context.Context, period reconcile.ReportingPeriod) error {
	finalized, err := s.shiftRepo.IsFinalized(ctx, period)
	if err != nil {
		return err
	}
	if finalized {
		return ErrDayFinalized
	}
	return nil
}

// loadMutable fetches the slip and applies every mutation precondition:
// day not finalized, caller is the creator, slip not system-generated.
func (s *expenseService) loadMutable(ctx context.Context, id uuid.UUID, actor Actor) (*model.ExpenseSlip, error) {
	slip, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	period, err := reconcile.ParsePeriod(slip.BusinessDate)
	if err != nil {
		return nil, err
	}
	if err := s.guardOpen(ctx, period); err != nil {
		return nil, err
	}
	if slip.HandoverReportID != nil {
		return nil, ErrSystemGenerated
	}
	if slip.CreatedBy != actor.ID {
		return nil, ErrNotCreator
	}
	return slip, nil
}

func itemsToModel(items []dto.ExpenseItemInput) []model.ExpenseItem {
	out := make([]model.ExpenseItem, len(items))
	for i, it := range items {
		out[i] = model.ExpenseItem{
			ItemID:      it.ItemID,
			Name:        it.Name,
			Description: it.Description,
			Quantity:    it.Quantity,
		}
	}
	return out
}

func itemsToDTO(items []model.ExpenseItem) []dto.ExpenseItemInput {
	out := make([]dto.ExpenseItemInput, len(items))
	for i, it := range items {
		out[i] = dto.ExpenseItemInput{
			ItemID:      it.ItemID,
			Name:        it.Name,
			Description: it.Description,
			Quantity:    it.Quantity,
		}
	}
	return out
}

func slipToResponse(s *model.ExpenseSlip) dto.ExpenseSlipResponse {
	return dto.ExpenseSlipResponse{
		ID:               s.ID.String(),
		BusinessDate:     s.BusinessDate,
		Items:            itemsToDTO(s.Items),
		TotalAmount:      s.TotalAmount,
		ActualPaidAmount: s.ActualPaidAmount,
		PaymentMethod:    s.PaymentMethod,
		CreatedBy:        s.CreatedBy.String(),
		CreatedByName:    s.CreatedByName,
		SystemGenerated:  s.HandoverReportID != nil,
		CreatedAt:        s.CreatedAt.Format(time.RFC3339),
	}
}
