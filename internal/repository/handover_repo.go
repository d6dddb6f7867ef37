package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/phuoclv264/katrina-one-sub004/internal/model"
	"github.com/phuoclv264/katrina-one-sub004/internal/reconcile"
)

type HandoverRepository interface {
	Create(ctx context.Context, h *model.CashHandoverReport) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.CashHandoverReport, error)
	// ListByPeriod returns the day's counts in reverse-chronological order.
	ListByPeriod(ctx context.Context, period reconcile.ReportingPeriod) ([]model.CashHandoverReport, error)
	// FindLatestByPeriod returns the most recent count for the day, nil when none.
	FindLatestByPeriod(ctx context.Context, period reconcile.ReportingPeriod) (*model.CashHandoverReport, error)
	Update(ctx context.Context, h *model.CashHandoverReport) error
	Delete(ctx context.Context, id uuid.UUID) error
	// SaveFinalDetails attaches the final handover details to the report and
	// transitions the ShiftDay aggregate to finalized, atomically. The lock
	// either fully applies or not at all.
	SaveFinalDetails(ctx context.Context, report *model.CashHandoverReport, details *model.FinalHandoverDetails) error
}

type handoverRepo struct{ db *gorm.DB }

func NewHandoverRepository(db *gorm.DB) HandoverRepository { return &handoverRepo{db: db} }

func (r *handoverRepo) Create(ctx context.Context, h *model.CashHandoverReport) error {
	return r.db.WithContext(ctx).Create(h).Error
}

func (r *handoverRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.CashHandoverReport, error) {
	var h model.CashHandoverReport
	err := r.db.WithContext(ctx).First(&h, id).Error
	return &h, err
}

func (r *handoverRepo) ListByPeriod(ctx context.Context, period reconcile.ReportingPeriod) ([]model.CashHandoverReport, error) {
	var reports []model.CashHandoverReport
	err := r.db.WithContext(ctx).
		Where("business_date = ?", period.String()).
		Order("created_at DESC").
		Find(&reports).Error
	return reports, err
}

func (r *handoverRepo) FindLatestByPeriod(ctx context.Context, period reconcile.ReportingPeriod) (*model.CashHandoverReport, error) {
	var h model.CashHandoverReport
	err := r.db.WithContext(ctx).
		Where("business_date = ?", period.String()).
		Order("created_at DESC").
		First(&h).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &h, nil
}

func (r *handoverRepo) Update(ctx context.Context, h *model.CashHandoverReport) error {
	return r.db.WithContext(ctx).Save(h).Error
}

func (r *handoverRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.CashHandoverReport{}, id).Error
}

func (r *handoverRepo) SaveFinalDetails(ctx context.Context, report *model.CashHandoverReport, details *model.FinalHandoverDetails) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		report.FinalDetails = details
		if report.ID == uuid.Nil {
			if err := tx.Create(report).Error; err != nil {
				return err
			}
		} else if err := tx.Save(report).Error; err != nil {
			return err
		}

		now := time.Now()
		finalizedBy := details.FinalizedBy
		day := model.ShiftDay{
			BusinessDate: report.BusinessDate,
			Status:       model.ShiftFinalized,
			FinalizedBy:  &finalizedBy,
			FinalizedAt:  &now,
			SummaryState: model.SummaryPending,
		}
		return tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "business_date"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"status":        model.ShiftFinalized,
				"finalized_by":  finalizedBy,
				"finalized_at":  now,
				"summary_state": model.SummaryPending,
				"updated_at":    now,
			}),
		}).Create(&day).Error
	})
}
