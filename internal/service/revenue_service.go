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

type RevenueService interface {
	Create(ctx context.Context, period reconcile.ReportingPeriod, actor Actor, req dto.RevenueStatsRequest) (*dto.RevenueStatsResponse, error)
	// List returns the day's snapshots newest-first; the first entry is the
	// authoritative one for reconciliation.
	List(ctx context.Context, period reconcile.ReportingPeriod) ([]dto.RevenueStatsResponse, error)
	Update(ctx context.Context, id uuid.UUID, actor Actor, req dto.RevenueStatsRequest) (*dto.RevenueStatsResponse, error)
	Delete(ctx context.Context, id uuid.UUID, actor Actor) error
}

type revenueService struct {
	repo      repository.RevenueRepository
	shiftRepo repository.ShiftRepository
}

func NewRevenueService(repo repository.RevenueRepository, shiftRepo repository.ShiftRepository) RevenueService {
	return &revenueService{repo: repo, shiftRepo: shiftRepo}
}

func (s *revenueService) Create(ctx context.Context, period reconcile.ReportingPeriod, actor Actor, req dto.RevenueStatsRequest) (*dto.RevenueStatsResponse, error) {
	if err := s.guardOpen(ctx, period); err != nil {
		return nil, err
	}

	stats := &model.RevenueStats{
		BusinessDate:          period.String(),
		NetRevenue:            req.NetRevenue,
		RevenueCash:           req.RevenueCash,
		RevenueBankTransfer:   req.RevenueBankTransfer,
		RevenueShopeeFood:     req.RevenueShopeeFood,
		RevenueGrabFood:       req.RevenueGrabFood,
		RevenueOther:          req.RevenueOther,
		DeliveryPartnerPayout: req.DeliveryPartnerPayout,
		IsAIGenerated:         req.IsAIGenerated,
		ReportTimestamp:       time.Now(),
		CreatedBy:             actor.ID,
		CreatedByName:         actor.Name,
	}
	if err := s.repo.Create(ctx, stats); err != nil {
		return nil, err
	}
	resp := statsToResponse(stats)
	return &resp, nil
}

func (s *revenueService) List(ctx context.Context, period reconcile.ReportingPeriod) ([]dto.RevenueStatsResponse, error) {
	stats, err := s.repo.ListByPeriod(ctx, period)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.RevenueStatsResponse, len(stats))
	for i := range stats {
		resp[i] = statsToResponse(&stats[i])
	}
	return resp, nil
}

func (s *revenueService) Update(ctx context.Context, id uuid.UUID, actor Actor, req dto.RevenueStatsRequest) (*dto.RevenueStatsResponse, error) {
	stats, err := s.loadMutable(ctx, id, actor)
	if err != nil {
		return nil, err
	}

	stats.NetRevenue = req.NetRevenue
	stats.RevenueCash = req.RevenueCash
	stats.RevenueBankTransfer = req.RevenueBankTransfer
	stats.RevenueShopeeFood = req.RevenueShopeeFood
	stats.RevenueGrabFood = req.RevenueGrabFood
	stats.RevenueOther = req.RevenueOther
	stats.DeliveryPartnerPayout = req.DeliveryPartnerPayout
	stats.IsEdited = true

	if err := s.repo.Update(ctx, stats); err != nil {
		return nil, err
	}
	resp := statsToResponse(stats)
	return &resp, nil
}

func (s *revenueService) Delete(ctx context.Context, id uuid.UUID, actor Actor) error {
	stats, err := s.loadMutable(ctx, id, actor)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, stats.ID)
}

func (s *revenueService) guardOpen(ctx context.Context, period reconcile.ReportingPeriod) error {
	finalized, err := s.shiftRepo.IsFinalized(ctx, period)
	if err != nil {
		return err
	}
	if finalized {
		return ErrDayFinalized
	}
	return nil
}

func (s *revenueService) loadMutable(ctx context.Context, id uuid.UUID, actor Actor) (*model.RevenueStats, error) {
	stats, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	period, err := reconcile.ParsePeriod(stats.BusinessDate)
	if err != nil {
		return nil, err
	}
	if err := s.guardOpen(ctx, period); err != nil {
		return nil, err
	}
	if stats.CreatedBy != actor.ID {
		return nil, ErrNotCreator
	}
	return stats, nil
}

func statsToResponse(s *model.RevenueStats) dto.RevenueStatsResponse {
	return dto.RevenueStatsResponse{
		ID:                    s.ID.String(),
		BusinessDate:          s.BusinessDate,
		NetRevenue:            s.NetRevenue,
		RevenueCash:           s.RevenueCash,
		RevenueBankTransfer:   s.RevenueBankTransfer,
		RevenueShopeeFood:     s.RevenueShopeeFood,
		RevenueGrabFood:       s.RevenueGrabFood,
		RevenueOther:          s.RevenueOther,
		DeliveryPartnerPayout: s.DeliveryPartnerPayout,
		IsEdited:              s.IsEdited,
		IsAIGenerated:         s.IsAIGenerated,
		ReportTimestamp:       s.ReportTimestamp.Format(time.RFC3339),
		CreatedBy:             s.CreatedBy.String(),
		CreatedByName:         s.CreatedByName,
	}
}
