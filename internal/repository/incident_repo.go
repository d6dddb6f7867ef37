package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/phuoclv264/katrina-one-sub004/internal/model"
	"github.com/phuoclv264/katrina-one-sub004/internal/reconcile"
)

type IncidentRepository interface {
	Create(ctx context.Context, i *model.IncidentReport) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.IncidentReport, error)
	ListByPeriod(ctx context.Context, period reconcile.ReportingPeriod) ([]model.IncidentReport, error)
	Update(ctx context.Context, i *model.IncidentReport) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type incidentRepo struct{ db *gorm.DB }

func NewIncidentRepository(db *gorm.DB) IncidentRepository { return &incidentRepo{db: db} }

func (r *incidentRepo) Create(ctx context.Context, i *model.IncidentReport) error {
	return r.db.WithContext(ctx).Create(i).Error
}

func (r *incidentRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.IncidentReport, error) {
	var i model.IncidentReport
	err := r.db.WithContext(ctx).First(&i, id).Error
	return &i, err
}

func (r *incidentRepo) ListByPeriod(ctx context.Context, period reconcile.ReportingPeriod) ([]model.IncidentReport, error) {
	var incidents []model.IncidentReport
	err := r.db.WithContext(ctx).
		Where("business_date = ?", period.String()).
		Order("created_at DESC").
		Find(&incidents).Error
	return incidents, err
}

func (r *incidentRepo) Update(ctx context.Context, i *model.IncidentReport) error {
	return r.db.WithContext(ctx).Save(i).Error
}

func (r *incidentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.IncidentReport{}, id).Error
}
