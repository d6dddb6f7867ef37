package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/phuoclv264/katrina-one-sub004/internal/model"
	"github.com/phuoclv264/katrina-one-sub004/internal/reconcile"
)

type RevenueRepository interface {
	Create(ctx context.Context, s *model.RevenueStats) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.RevenueStats, error)
	// ListByPeriod returns the day's snapshots newest-first.
	ListByPeriod(ctx context.Context, period reconcile.ReportingPeriod) ([]model.RevenueStats, error)
	Update(ctx context.Context, s *model.RevenueStats) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type revenueRepo struct{ db *gorm.DB }

func NewRevenueRepository(db *gorm.DB) RevenueRepository { return &revenueRepo{db: db} }

func (r *revenueRepo) Create(ctx context.Context, s *model.RevenueStats) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *revenueRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.RevenueStats, error) {
	var s model.RevenueStats
	err := r.db.WithContext(ctx).First(&s, id).Error
	return &s, err
}

func (r *revenueRepo) ListByPeriod(ctx context.Context, period reconcile.ReportingPeriod) ([]model.RevenueStats, error) {
	var stats []model.RevenueStats
	err := r.db.WithContext(ctx).
		Where("business_date = ?", period.String()).
		Order("report_timestamp DESC").
		Find(&stats).Error
	return stats, err
}

func (r *revenueRepo) Update(ctx context.Context, s *model.RevenueStats) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *revenueRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.RevenueStats{}, id).Error
}
