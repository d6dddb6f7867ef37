package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/phuoclv264/katrina-one-sub004/internal/model"
	"github.com/phuoclv264/katrina-one-sub004/internal/reconcile"
)

type ShiftRepository interface {
	Find(ctx context.Context, period reconcile.ReportingPeriod) (*model.ShiftDay, error)
	// IsFinalized is THE day-lock predicate: true when the ShiftDay aggregate
	// is finalized, or — compatibility rule for rows written by older
	// clients — when any handover report for the date carries final details.
	IsFinalized(ctx context.Context, period reconcile.ReportingPeriod) (bool, error)
	Update(ctx context.Context, day *model.ShiftDay) error
	// ListPendingSummaries feeds the summary retry cron: finalized days whose
	// PDF/email pipeline has not completed and whose backoff has elapsed.
	ListPendingSummaries(ctx context.Context, now time.Time, limit int) ([]model.ShiftDay, error)
}

type shiftRepo struct{ db *gorm.DB }

func NewShiftRepository(db *gorm.DB) ShiftRepository { return &shiftRepo{db: db} }

func (r *shiftRepo) Find(ctx context.Context, period reconcile.ReportingPeriod) (*model.ShiftDay, error) {
	var day model.ShiftDay
	err := r.db.WithContext(ctx).Where("business_date = ?", period.String()).First(&day).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &day, nil
}

func (r *shiftRepo) IsFinalized(ctx context.Context, period reconcile.ReportingPeriod) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.ShiftDay{}).
		Where("business_date = ? AND status = ?", period.String(), model.ShiftFinalized).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	if count > 0 {
		return true, nil
	}

	err = r.db.WithContext(ctx).Model(&model.CashHandoverReport{}).
		Where("business_date = ? AND final_details IS NOT NULL", period.String()).
		Count(&count).Error
	return count > 0, err
}

func (r *shiftRepo) Update(ctx context.Context, day *model.ShiftDay) error {
	return r.db.WithContext(ctx).Save(day).Error
}

func (r *shiftRepo) ListPendingSummaries(ctx context.Context, now time.Time, limit int) ([]model.ShiftDay, error) {
	var days []model.ShiftDay
	err := r.db.WithContext(ctx).
		Where("status = ? AND summary_state = ? AND (next_retry_at IS NULL OR next_retry_at <= ?)",
			model.ShiftFinalized, model.SummaryPending, now).
		Order("business_date ASC").
		Limit(limit).
		Find(&days).Error
	return days, err
}
