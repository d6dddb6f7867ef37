package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/phuoclv264/katrina-one-sub004/internal/dto"
	"github.com/phuoclv264/katrina-one-sub004/internal/model"
	"github.com/phuoclv264/katrina-one-sub004/internal/reconcile"
	"github.com/phuoclv264/katrina-one-sub004/internal/repository"
)

// SummaryEnqueuer abstracts the post-finalize job queue so the service
// stays testable without Redis.
type SummaryEnqueuer interface {
	EnqueueHandoverSummary(ctx context.Context, businessDate string) error
}

type HandoverService interface {
	// DailySummary recomputes the day's derived figures from the live
	// slips and revenue snapshots. Nothing is read from a cache.
	DailySummary(ctx context.Context, period reconcile.ReportingPeriod, deviceID string) (*dto.DailySummaryResponse, error)
	Status(ctx context.Context, period reconcile.ReportingPeriod) (*dto.ShiftStatusResponse, error)
	ListCounts(ctx context.Context, period reconcile.ReportingPeriod) ([]dto.CashCountResponse, error)
	CreateCount(ctx context.Context, period reconcile.ReportingPeriod, deviceID string, actor Actor, req dto.CashCountRequest) (*dto.CashCountResponse, error)
	UpdateCount(ctx context.Context, id uuid.UUID, actor Actor, req dto.CashCountRequest) (*dto.CashCountResponse, error)
	DeleteCount(ctx context.Context, id uuid.UUID, actor Actor) error
	Compare(ctx context.Context, period reconcile.ReportingPeriod, deviceID string, receipt model.ReceiptReading) (*dto.ComparisonResponse, error)
	// Finalize writes the final handover details and locks the day. There
	// is no unlock. A comparison mismatch does not block finalization; the
	// full table is stored alongside the receipt for the record.
	Finalize(ctx context.Context, period reconcile.ReportingPeriod, deviceID string, actor Actor, receipt model.ReceiptReading) (*dto.CashCountResponse, error)
}

type handoverService struct {
	handoverRepo repository.HandoverRepository
	shiftRepo    repository.ShiftRepository
	expenseRepo  repository.ExpenseRepository
	revenueRepo  repository.RevenueRepository
	floatSvc     FloatService
	enqueuer     SummaryEnqueuer
}

func NewHandoverService(
	handoverRepo repository.HandoverRepository,
	shiftRepo repository.ShiftRepository,
	expenseRepo repository.ExpenseRepository,
	revenueRepo repository.RevenueRepository,
	floatSvc FloatService,
	enqueuer SummaryEnqueuer,
) HandoverService {
	return &handoverService{
		handoverRepo: handoverRepo,
		shiftRepo:    shiftRepo,
		expenseRepo:  expenseRepo,
		revenueRepo:  revenueRepo,
		floatSvc:     floatSvc,
		enqueuer:     enqueuer,
	}
}

// liveTotals pulls the day's slips and revenue snapshots and derives the
// reconciliation figures with the device's effective opening float.
func (s *handoverService) liveTotals(ctx context.Context, period reconcile.ReportingPeriod, deviceID string) (reconcile.DailyTotals, []model.ExpenseSlip, []model.RevenueStats, error) {
	slips, err := s.expenseRepo.ListByPeriod(ctx, period)
	if err != nil {
		return reconcile.DailyTotals{}, nil, nil, err
	}
	stats, err := s.revenueRepo.ListByPeriod(ctx, period)
	if err != nil {
		return reconcile.DailyTotals{}, nil, nil, err
	}
	startCash, err := s.floatSvc.Resolve(ctx, deviceID, period)
	if err != nil {
		return reconcile.DailyTotals{}, nil, nil, err
	}
	return reconcile.ComputeDailyTotals(slips, stats, startCash), slips, stats, nil
}

func (s *handoverService) DailySummary(ctx context.Context, period reconcile.ReportingPeriod, deviceID string) (*dto.DailySummaryResponse, error) {
	totals, _, _, err := s.liveTotals(ctx, period, deviceID)
	if err != nil {
		return nil, err
	}
	finalized, err := s.shiftRepo.IsFinalized(ctx, period)
	if err != nil {
		return nil, err
	}
	return &dto.DailySummaryResponse{
		BusinessDate: period.String(),
		Totals:       totals,
		Finalized:    finalized,
	}, nil
}

func (s *handoverService) Status(ctx context.Context, period reconcile.ReportingPeriod) (*dto.ShiftStatusResponse, error) {
	resp := &dto.ShiftStatusResponse{BusinessDate: period.String(), Status: model.ShiftOpen}

	day, err := s.shiftRepo.Find(ctx, period)
	if err != nil {
		return nil, err
	}
	if day != nil && day.Status == model.ShiftFinalized {
		resp.Status = model.ShiftFinalized
		if day.FinalizedBy != nil {
			by := day.FinalizedBy.String()
			resp.FinalizedBy = &by
		}
		if day.FinalizedAt != nil {
			at := day.FinalizedAt.Format(time.RFC3339)
			resp.FinalizedAt = &at
		}
		return resp, nil
	}

	// Rows written before the day aggregate existed carry the lock on the
	// report itself.
	latest, err := s.handoverRepo.FindLatestByPeriod(ctx, period)
	if err != nil {
		return nil, err
	}
	if latest != nil && latest.FinalDetails != nil {
		resp.Status = model.ShiftFinalized
		by := latest.FinalDetails.FinalizedBy.String()
		at := latest.FinalDetails.FinalizedAt.Format(time.RFC3339)
		resp.FinalizedBy = &by
		resp.FinalizedAt = &at
	}
	return resp, nil
}

func (s *handoverService) ListCounts(ctx context.Context, period reconcile.ReportingPeriod) ([]dto.CashCountResponse, error) {
	reports, err := s.handoverRepo.ListByPeriod(ctx, period)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.CashCountResponse, len(reports))
	for i := range reports {
		resp[i] = reportToResponse(&reports[i])
	}
	return resp, nil
}

func (s *handoverService) CreateCount(ctx context.Context, period reconcile.ReportingPeriod, deviceID string, actor Actor, req dto.CashCountRequest) (*dto.CashCountResponse, error) {
	finalized, err := s.shiftRepo.IsFinalized(ctx, period)
	if err != nil {
		return nil, err
	}
	if finalized {
		return nil, ErrDayFinalized
	}

	totals, slips, stats, err := s.liveTotals(ctx, period, deviceID)
	if err != nil {
		return nil, err
	}

	discrepancy := reconcile.Discrepancy(req.ActualCashCounted, totals.ExpectedCashOnHand)
	if err := requireReasonFor(discrepancy, req.DiscrepancyReason); err != nil {
		return nil, err
	}

	// Snapshot what the expectation was computed from, so the recorded
	// discrepancy can be re-derived after the live day moves on.
	slipIDs := make([]uuid.UUID, len(slips))
	for i := range slips {
		slipIDs[i] = slips[i].ID
	}
	var revenueID *uuid.UUID
	if latest := reconcile.LatestRevenueStats(stats); latest != nil {
		id := latest.ID
		revenueID = &id
	}

	report := &model.CashHandoverReport{
		BusinessDate:         period.String(),
		ActualCashCounted:    req.ActualCashCounted,
		StartOfDayCash:       totals.StartOfDayCash,
		ExpectedCash:         totals.ExpectedCashOnHand,
		Discrepancy:          discrepancy,
		DiscrepancyReason:    req.DiscrepancyReason,
		ProofPhotoIDs:        req.ProofPhotoIDs,
		LinkedRevenueStatsID: revenueID,
		LinkedExpenseSlipIDs: slipIDs,
		CreatedBy:            actor.ID,
		CreatedByName:        actor.Name,
	}
	if err := s.handoverRepo.Create(ctx, report); err != nil {
		return nil, err
	}
	resp := reportToResponse(report)
	return &resp, nil
}

func (s *handoverService) UpdateCount(ctx context.Context, id uuid.UUID, actor Actor, req dto.CashCountRequest) (*dto.CashCountResponse, error) {
	report, err := s.loadMutableCount(ctx, id, actor)
	if err != nil {
		return nil, err
	}

	// The expectation is recomputed from the count's own snapshot, not the
	// live day: editing the counted amount must not silently absorb slips
	// or revenue added since the count was taken.
	expected, err := s.snapshotExpected(ctx, report)
	if err != nil {
		return nil, err
	}

	discrepancy := reconcile.Discrepancy(req.ActualCashCounted, expected)
	if err := requireReasonFor(discrepancy, req.DiscrepancyReason); err != nil {
		return nil, err
	}

	report.ActualCashCounted = req.ActualCashCounted
	report.ExpectedCash = expected
	report.Discrepancy = discrepancy
	report.DiscrepancyReason = req.DiscrepancyReason
	if req.ProofPhotoIDs != nil {
		report.ProofPhotoIDs = req.ProofPhotoIDs
	}

	if err := s.handoverRepo.Update(ctx, report); err != nil {
		return nil, err
	}
	resp := reportToResponse(report)
	return &resp, nil
}

func (s *handoverService) DeleteCount(ctx context.Context, id uuid.UUID, actor Actor) error {
	report, err := s.loadMutableCount(ctx, id, actor)
	if err != nil {
		return err
	}
	return s.handoverRepo.Delete(ctx, report.ID)
}

func (s *handoverService) Compare(ctx context.Context, period reconcile.ReportingPeriod, deviceID string, receipt model.ReceiptReading) (*dto.ComparisonResponse, error) {
	totals, _, stats, err := s.liveTotals(ctx, period, deviceID)
	if err != nil {
		return nil, err
	}
	rows := reconcile.CompareAgainstReceipt(totals, reconcile.LatestRevenueStats(stats), receipt)
	return &dto.ComparisonResponse{
		BusinessDate: period.String(),
		Rows:         rows,
		AllMatch:     allMatch(rows),
	}, nil
}

func (s *handoverService) Finalize(ctx context.Context, period reconcile.ReportingPeriod, deviceID string, actor Actor, receipt model.ReceiptReading) (*dto.CashCountResponse, error) {
	finalized, err := s.shiftRepo.IsFinalized(ctx, period)
	if err != nil {
		return nil, err
	}
	if finalized {
		return nil, ErrDayFinalized
	}

	totals, _, stats, err := s.liveTotals(ctx, period, deviceID)
	if err != nil {
		return nil, err
	}
	comparison := reconcile.CompareAgainstReceipt(totals, reconcile.LatestRevenueStats(stats), receipt)

	details := &model.FinalHandoverDetails{
		Receipt:         receipt,
		Comparison:      comparison,
		FinalizedBy:     actor.ID,
		FinalizedByName: actor.Name,
		FinalizedAt:     time.Now(),
	}

	// Attach to the day's latest count; when the day was never counted,
	// the details ride on a zero-amount carrier report so the lock stays
	// discoverable from the report table alone.
	report, err := s.handoverRepo.FindLatestByPeriod(ctx, period)
	if err != nil {
		return nil, err
	}
	if report == nil {
		report = &model.CashHandoverReport{
			BusinessDate:   period.String(),
			StartOfDayCash: totals.StartOfDayCash,
			ExpectedCash:   totals.ExpectedCashOnHand,
			Discrepancy:    totals.ExpectedCashOnHand.Neg(),
			CreatedBy:      actor.ID,
			CreatedByName:  actor.Name,
		}
	}

	if err := s.handoverRepo.SaveFinalDetails(ctx, report, details); err != nil {
		return nil, err
	}

	// Summary generation is asynchronous; a queue hiccup never rolls back
	// the lock. The retry cron picks the day up from its pending state.
	if err := s.enqueuer.EnqueueHandoverSummary(ctx, period.String()); err != nil {
		log.Error().Err(err).Str("business_date", period.String()).
			Msg("failed to enqueue handover summary job")
	}

	resp := reportToResponse(report)
	return &resp, nil
}

// snapshotExpected re-derives expected cash from the slips and revenue
// snapshot linked at count time, plus the report's own recorded float.
func (s *handoverService) snapshotExpected(ctx context.Context, report *model.CashHandoverReport) (decimal.Decimal, error) {
	slips, err := s.expenseRepo.FindByIDs(ctx, report.LinkedExpenseSlipIDs)
	if err != nil {
		return decimal.Zero, err
	}
	var stats []model.RevenueStats
	if report.LinkedRevenueStatsID != nil {
		rs, err := s.revenueRepo.FindByID(ctx, *report.LinkedRevenueStatsID)
		if err == nil && rs != nil {
			stats = append(stats, *rs)
		}
	}
	totals := reconcile.ComputeDailyTotals(slips, stats, report.StartOfDayCash)
	return totals.ExpectedCashOnHand, nil
}

func (s *handoverService) loadMutableCount(ctx context.Context, id uuid.UUID, actor Actor) (*model.CashHandoverReport, error) {
	report, err := s.handoverRepo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	period, err := reconcile.ParsePeriod(report.BusinessDate)
	if err != nil {
		return nil, err
	}
	finalized, err := s.shiftRepo.IsFinalized(ctx, period)
	if err != nil {
		return nil, err
	}
	if finalized {
		return nil, ErrDayFinalized
	}
	if report.CreatedBy != actor.ID {
		return nil, ErrNotCreator
	}
	return report, nil
}

func requireReasonFor(discrepancy decimal.Decimal, reason *string) error {
	if discrepancy.IsZero() {
		return nil
	}
	if reason == nil || strings.TrimSpace(*reason) == "" {
		return ErrReasonRequired
	}
	return nil
}

func allMatch(rows []model.FieldComparison) bool {
	for _, r := range rows {
		if !r.IsMatch {
			return false
		}
	}
	return true
}

func reportToResponse(r *model.CashHandoverReport) dto.CashCountResponse {
	resp := dto.CashCountResponse{
		ID:                   r.ID.String(),
		BusinessDate:         r.BusinessDate,
		ActualCashCounted:    r.ActualCashCounted,
		StartOfDayCash:       r.StartOfDayCash,
		ExpectedCash:         r.ExpectedCash,
		Discrepancy:          r.Discrepancy,
		DiscrepancyReason:    r.DiscrepancyReason,
		ProofPhotoIDs:        r.ProofPhotoIDs,
		LinkedExpenseSlipIDs: make([]string, len(r.LinkedExpenseSlipIDs)),
		CreatedBy:            r.CreatedBy.String(),
		CreatedByName:        r.CreatedByName,
		Finalized:            r.FinalDetails != nil,
		CreatedAt:            r.CreatedAt.Format(time.RFC3339),
	}
	for i, id := range r.LinkedExpenseSlipIDs {
		resp.LinkedExpenseSlipIDs[i] = id.String()
	}
	if r.LinkedRevenueStatsID != nil {
		id := r.LinkedRevenueStatsID.String()
		resp.LinkedRevenueStatsID = &id
	}
	return resp
}
