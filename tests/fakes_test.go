package tests

// In-memory repository fakes shared by the service tests. They mirror the
// query semantics of the gorm repositories (ordering, nil-on-not-found, the
// day-lock discovery rule) without a database.

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/phuoclv264/katrina-one-sub004/internal/model"
	"github.com/phuoclv264/katrina-one-sub004/internal/reconcile"
	"github.com/phuoclv264/katrina-one-sub004/internal/repository"
	"github.com/phuoclv264/katrina-one-sub004/internal/service"
)

type memStore struct {
	slips   []*model.ExpenseSlip
	stats   []*model.RevenueStats
	reports []*model.CashHandoverReport
	days    map[string]*model.ShiftDay
	floats  map[string]repository.FloatOverride
}

func newMemStore() *memStore {
	return &memStore{
		days:   make(map[string]*model.ShiftDay),
		floats: make(map[string]repository.FloatOverride),
	}
}

// ── ExpenseRepository ────────────────────────────────────────────────────────

type memExpenseRepo struct{ s *memStore }

func (r *memExpenseRepo) Create(_ context.Context, slip *model.ExpenseSlip) error {
	if slip.ID == uuid.Nil {
		slip.ID = uuid.New()
	}
	slip.CreatedAt = time.Now()
	r.s.slips = append(r.s.slips, slip)
	return nil
}

func (r *memExpenseRepo) FindByID(_ context.Context, id uuid.UUID) (*model.ExpenseSlip, error) {
	for _, s := range r.s.slips {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, errors.New("not found")
}

func (r *memExpenseRepo) FindByIDs(_ context.Context, ids []uuid.UUID) ([]model.ExpenseSlip, error) {
	want := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	var out []model.ExpenseSlip
	for _, s := range r.s.slips {
		if want[s.ID] {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *memExpenseRepo) ListByPeriod(_ context.Context, period reconcile.ReportingPeriod) ([]model.ExpenseSlip, error) {
	var out []model.ExpenseSlip
	for _, s := range r.s.slips {
		if s.BusinessDate == period.String() {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *memExpenseRepo) Update(_ context.Context, slip *model.ExpenseSlip) error {
	for i, s := range r.s.slips {
		if s.ID == slip.ID {
			r.s.slips[i] = slip
			return nil
		}
	}
	return errors.New("not found")
}

func (r *memExpenseRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i, s := range r.s.slips {
		if s.ID == id {
			r.s.slips = append(r.s.slips[:i], r.s.slips[i+1:]...)
			return nil
		}
	}
	return errors.New("not found")
}

var _ repository.ExpenseRepository = (*memExpenseRepo)(nil)

// ── RevenueRepository ────────────────────────────────────────────────────────

type memRevenueRepo struct{ s *memStore }

func (r *memRevenueRepo) Create(_ context.Context, st *model.RevenueStats) error {
	if st.ID == uuid.Nil {
		st.ID = uuid.New()
	}
	st.CreatedAt = time.Now()
	r.s.stats = append(r.s.stats, st)
	return nil
}

func (r *memRevenueRepo) FindByID(_ context.Context, id uuid.UUID) (*model.RevenueStats, error) {
	for _, st := range r.s.stats {
		if st.ID == id {
			return st, nil
		}
	}
	return nil, errors.New("not found")
}

func (r *memRevenueRepo) ListByPeriod(_ context.Context, period reconcile.ReportingPeriod) ([]model.RevenueStats, error) {
	var out []model.RevenueStats
	for _, st := range r.s.stats {
		if st.BusinessDate == period.String() {
			out = append(out, *st)
		}
	}
	// newest-first, as the gorm repo orders by report_timestamp DESC
	for i := 0; i < len(out); i++ {
		for j := i + 1; j < len(out); j++ {
			if out[j].ReportTimestamp.After(out[i].ReportTimestamp) {
				out[i], out[j] = out[j], out[i]
			}
		}
	}
	return out, nil
}

func (r *memRevenueRepo) Update(_ context.Context, st *model.RevenueStats) error {
	for i, s := range r.s.stats {
		if s.ID == st.ID {
			r.s.stats[i] = st
			return nil
		}
	}
	return errors.New("not found")
}

func (r *memRevenueRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i, s := range r.s.stats {
		if s.ID == id {
			r.s.stats = append(r.s.stats[:i], r.s.stats[i+1:]...)
			return nil
		}
	}
	return errors.New("not found")
}

var _ repository.RevenueRepository = (*memRevenueRepo)(nil)

// ── HandoverRepository ───────────────────────────────────────────────────────

type memHandoverRepo struct{ s *memStore }

func (r *memHandoverRepo) Create(_ context.Context, h *model.CashHandoverReport) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	h.CreatedAt = time.Now()
	r.s.reports = append(r.s.reports, h)
	return nil
}

func (r *memHandoverRepo) FindByID(_ context.Context, id uuid.UUID) (*model.CashHandoverReport, error) {
	for _, h := range r.s.reports {
		if h.ID == id {
			return h, nil
		}
	}
	return nil, errors.New("not found")
}

func (r *memHandoverRepo) ListByPeriod(_ context.Context, period reconcile.ReportingPeriod) ([]model.CashHandoverReport, error) {
	var out []model.CashHandoverReport
	// reports are appended in creation order; reverse for created_at DESC
	for i := len(r.s.reports) - 1; i >= 0; i-- {
		if r.s.reports[i].BusinessDate == period.String() {
			out = append(out, *r.s.reports[i])
		}
	}
	return out, nil
}

func (r *memHandoverRepo) FindLatestByPeriod(_ context.Context, period reconcile.ReportingPeriod) (*model.CashHandoverReport, error) {
	for i := len(r.s.reports) - 1; i >= 0; i-- {
		if r.s.reports[i].BusinessDate == period.String() {
			return r.s.reports[i], nil
		}
	}
	return nil, nil
}

func (r *memHandoverRepo) Update(_ context.Context, h *model.CashHandoverReport) error {
	for i, rep := range r.s.reports {
		if rep.ID == h.ID {
			r.s.reports[i] = h
			return nil
		}
	}
	return errors.New("not found")
}

func (r *memHandoverRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i, rep := range r.s.reports {
		if rep.ID == id {
			r.s.reports = append(r.s.reports[:i], r.s.reports[i+1:]...)
			return nil
		}
	}
	return errors.New("not found")
}

func (r *memHandoverRepo) SaveFinalDetails(ctx context.Context, report *model.CashHandoverReport, details *model.FinalHandoverDetails) error {
	report.FinalDetails = details
	if report.ID == uuid.Nil {
		if err := r.Create(ctx, report); err != nil {
			return err
		}
	} else if err := r.Update(ctx, report); err != nil {
		return err
	}

	now := time.Now()
	finalizedBy := details.FinalizedBy
	r.s.days[report.BusinessDate] = &model.ShiftDay{
		BusinessDate: report.BusinessDate,
		Status:       model.ShiftFinalized,
		FinalizedBy:  &finalizedBy,
		FinalizedAt:  &now,
		SummaryState: model.SummaryPending,
	}
	return nil
}

var _ repository.HandoverRepository = (*memHandoverRepo)(nil)

// ── ShiftRepository ──────────────────────────────────────────────────────────

type memShiftRepo struct{ s *memStore }

func (r *memShiftRepo) Find(_ context.Context, period reconcile.ReportingPeriod) (*model.ShiftDay, error) {
	return r.s.days[period.String()], nil
}

func (r *memShiftRepo) IsFinalized(_ context.Context, period reconcile.ReportingPeriod) (bool, error) {
	if day := r.s.days[period.String()]; day != nil && day.Status == model.ShiftFinalized {
		return true, nil
	}
	// legacy discovery rule: any report with final details locks the day
	for _, rep := range r.s.reports {
		if rep.BusinessDate == period.String() && rep.FinalDetails != nil {
			return true, nil
		}
	}
	return false, nil
}

func (r *memShiftRepo) Update(_ context.Context, day *model.ShiftDay) error {
	r.s.days[day.BusinessDate] = day
	return nil
}

func (r *memShiftRepo) ListPendingSummaries(_ context.Context, now time.Time, limit int) ([]model.ShiftDay, error) {
	var out []model.ShiftDay
	for _, day := range r.s.days {
		if day.Status != model.ShiftFinalized || day.SummaryState != model.SummaryPending {
			continue
		}
		if day.NextRetryAt != nil && day.NextRetryAt.After(now) {
			continue
		}
		out = append(out, *day)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

var _ repository.ShiftRepository = (*memShiftRepo)(nil)

// ── FloatRepository ──────────────────────────────────────────────────────────

type memFloatRepo struct{ s *memStore }

func floatKey(deviceID string, period reconcile.ReportingPeriod) string {
	return deviceID + ":" + period.String()
}

func (r *memFloatRepo) Get(_ context.Context, deviceID string, period reconcile.ReportingPeriod) (*repository.FloatOverride, error) {
	o, ok := r.s.floats[floatKey(deviceID, period)]
	if !ok {
		return nil, nil
	}
	return &o, nil
}

func (r *memFloatRepo) Set(_ context.Context, deviceID string, period reconcile.ReportingPeriod, o repository.FloatOverride) error {
	r.s.floats[floatKey(deviceID, period)] = o
	return nil
}

var _ repository.FloatRepository = (*memFloatRepo)(nil)

// ── SummaryEnqueuer ──────────────────────────────────────────────────────────

type captureEnqueuer struct {
	enqueued []string
	fail     bool
}

func (e *captureEnqueuer) EnqueueHandoverSummary(_ context.Context, businessDate string) error {
	if e.fail {
		return errors.New("redis down")
	}
	e.enqueued = append(e.enqueued, businessDate)
	return nil
}

var _ service.SummaryEnqueuer = (*captureEnqueuer)(nil)

// ── Shared test environment ──────────────────────────────────────────────────

type testEnv struct {
	store    *memStore
	enqueuer *captureEnqueuer

	expenses service.ExpenseService
	revenue  service.RevenueService
	incident service.IncidentService
	float    service.FloatService
	handover service.HandoverService
}

func newTestEnv() *testEnv {
	store := newMemStore()
	enq := &captureEnqueuer{}

	expenseRepo := &memExpenseRepo{s: store}
	revenueRepo := &memRevenueRepo{s: store}
	handoverRepo := &memHandoverRepo{s: store}
	shiftRepo := &memShiftRepo{s: store}
	floatRepo := &memFloatRepo{s: store}

	floatSvc := service.NewFloatService(floatRepo)
	return &testEnv{
		store:    store,
		enqueuer: enq,
		expenses: service.NewExpenseService(expenseRepo, shiftRepo),
		revenue:  service.NewRevenueService(revenueRepo, shiftRepo),
		incident: service.NewIncidentService(&memIncidentRepo{s: store, items: map[uuid.UUID]*model.IncidentReport{}}, shiftRepo),
		float:    floatSvc,
		handover: service.NewHandoverService(handoverRepo, shiftRepo, expenseRepo, revenueRepo, floatSvc, enq),
	}
}

func mustPeriod(t *testing.T, s string) reconcile.ReportingPeriod {
	t.Helper()
	p, err := reconcile.ParsePeriod(s)
	if err != nil {
		t.Fatalf("bad period %q: %v", s, err)
	}
	return p
}

// ── IncidentRepository ───────────────────────────────────────────────────────

type memIncidentRepo struct {
	s     *memStore
	items map[uuid.UUID]*model.IncidentReport
}

func (r *memIncidentRepo) Create(_ context.Context, i *model.IncidentReport) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	i.CreatedAt = time.Now()
	r.items[i.ID] = i
	return nil
}

func (r *memIncidentRepo) FindByID(_ context.Context, id uuid.UUID) (*model.IncidentReport, error) {
	i, ok := r.items[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return i, nil
}

func (r *memIncidentRepo) ListByPeriod(_ context.Context, period reconcile.ReportingPeriod) ([]model.IncidentReport, error) {
	var out []model.IncidentReport
	for _, i := range r.items {
		if i.BusinessDate == period.String() {
			out = append(out, *i)
		}
	}
	return out, nil
}

func (r *memIncidentRepo) Update(_ context.Context, i *model.IncidentReport) error {
	r.items[i.ID] = i
	return nil
}

func (r *memIncidentRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.items, id)
	return nil
}

var _ repository.IncidentRepository = (*memIncidentRepo)(nil)
