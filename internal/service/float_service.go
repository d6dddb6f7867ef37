package service

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/phuoclv264/katrina-one-sub004/internal/dto"
	"github.com/phuoclv264/katrina-one-sub004/internal/reconcile"
	"github.com/phuoclv264/katrina-one-sub004/internal/repository"
)

// FloatService manages the per-device start-of-day cash override. The
// override intentionally lives in Redis keyed by device, not in the shared
// Postgres store: the original app kept it in device-local storage, and a
// different cashier's device seeing its own float is part of the contract.
type FloatService interface {
	Get(ctx context.Context, deviceID string, period reconcile.ReportingPeriod) (*dto.FloatResponse, error)
	Set(ctx context.Context, deviceID string, period reconcile.ReportingPeriod, req dto.SetFloatRequest) (*dto.FloatResponse, error)
	// Resolve returns just the effective float value for reconciliation math.
	Resolve(ctx context.Context, deviceID string, period reconcile.ReportingPeriod) (decimal.Decimal, error)
}

type floatService struct {
	repo repository.FloatRepository
}

func NewFloatService(repo repository.FloatRepository) FloatService {
	return &floatService{repo: repo}
}

func (s *floatService) Get(ctx context.Context, deviceID string, period reconcile.ReportingPeriod) (*dto.FloatResponse, error) {
	o, err := s.repo.Get(ctx, deviceID, period)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return &dto.FloatResponse{
			BusinessDate: period.String(),
			Value:        reconcile.DefaultStartOfDayCash,
			IsOverride:   false,
		}, nil
	}
	setAt := o.SetAt.Format(time.RFC3339)
	return &dto.FloatResponse{
		BusinessDate: period.String(),
		Value:        o.Value,
		Reason:       o.Reason,
		IsOverride:   true,
		SetAt:        &setAt,
	}, nil
}

func (s *floatService) Set(ctx context.Context, deviceID string, period reconcile.ReportingPeriod, req dto.SetFloatRequest) (*dto.FloatResponse, error) {
	// Deviating from the default float demands a justification. Rejected
	// before any write — the stored override never changes on failure.
	if !req.Value.Equal(reconcile.DefaultStartOfDayCash) && strings.TrimSpace(req.Reason) == "" {
		return nil, ErrReasonRequired
	}

	o := repository.FloatOverride{
		Value:  req.Value,
		Reason: strings.TrimSpace(req.Reason),
		SetAt:  time.Now(),
	}
	if err := s.repo.Set(ctx, deviceID, period, o); err != nil {
		return nil, err
	}
	setAt := o.SetAt.Format(time.RFC3339)
	return &dto.FloatResponse{
		BusinessDate: period.String(),
		Value:        o.Value,
		Reason:       o.Reason,
		IsOverride:   true,
		SetAt:        &setAt,
	}, nil
}

func (s *floatService) Resolve(ctx context.Context, deviceID string, period reconcile.ReportingPeriod) (decimal.Decimal, error) {
	o, err := s.repo.Get(ctx, deviceID, period)
	if err != nil {
		return decimal.Zero, err
	}
	if o == nil {
		return reconcile.DefaultStartOfDayCash, nil
	}
	return o.Value, nil
}
