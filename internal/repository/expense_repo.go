package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/phuoclv264/katrina-one-sub004/internal/model"
	"github.com/phuoclv264/katrina-one-sub004/internal/reconcile"
)

type ExpenseRepository interface {
	Create(ctx context.Context, s *model.ExpenseSlip) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.ExpenseSlip, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]model.ExpenseSlip, error)
	ListByPeriod(ctx context.Context, period reconcile.ReportingPeriod) ([]model.ExpenseSlip, error)
	Update(ctx context.Context, s *model.ExpenseSlip) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type expenseRepo struct{ db *gorm.DB }

func NewExpenseRepository(db *gorm.DB) ExpenseRepository { return &expenseRepo{db: db} }

func (r *expenseRepo) Create(ctx context.Context, s *model.ExpenseSlip) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *expenseRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.ExpenseSlip, error) {
	var s model.ExpenseSlip
	err := r.db.WithContext(ctx).First(&s, id).Error
	return &s, err
}

func (r *expenseRepo) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]model.ExpenseSlip, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var slips []model.ExpenseSlip
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&slips).Error
	return slips, err
}

func (r *expenseRepo) ListByPeriod(ctx context.Context, period reconcile.ReportingPeriod) ([]model.ExpenseSlip, error) {
	var slips []model.ExpenseSlip
	err := r.db.WithContext(ctx).
		Where("business_date = ?", period.String()).
		Order("created_at DESC").
		Find(&slips).Error
	return slips, err
}

func (r *expenseRepo) Update(ctx context.Context, s *model.ExpenseSlip) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *expenseRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.ExpenseSlip{}, id).Error
}
