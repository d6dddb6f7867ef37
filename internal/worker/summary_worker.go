package worker

// summary_worker.go
// Processes handover-summary jobs from QueueSummary.
// Renders the end-of-shift PDF for a finalized day, records the outcome on
// the ShiftDay row, and hands delivery off to the email queue.

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/phuoclv264/katrina-one-sub004/internal/infra"
	"github.com/phuoclv264/katrina-one-sub004/internal/model"
	"github.com/phuoclv264/katrina-one-sub004/internal/reconcile"
	"github.com/phuoclv264/katrina-one-sub004/internal/repository"
)

// MaxSummaryRetries before a day is parked in the DLQ for manual inspection.
const MaxSummaryRetries = 5

// SummaryJobPayload is the job envelope sent to QueueSummary.
type SummaryJobPayload struct {
	BusinessDate string `json:"business_date"`
}

// SummaryWorker turns a finalized day into a PDF summary and an email job.
type SummaryWorker struct {
	handoverRepo   repository.HandoverRepository
	shiftRepo      repository.ShiftRepository
	dispatcher     *Dispatcher
	rdb            *redis.Client
	pdfStoragePath string
	recipient      string
}

func NewSummaryWorker(
	handoverRepo repository.HandoverRepository,
	shiftRepo repository.ShiftRepository,
	dispatcher *Dispatcher,
	rdb *redis.Client,
	pdfStoragePath string,
	recipient string,
) *SummaryWorker {
	return &SummaryWorker{
		handoverRepo:   handoverRepo,
		shiftRepo:      shiftRepo,
		dispatcher:     dispatcher,
		rdb:            rdb,
		pdfStoragePath: pdfStoragePath,
		recipient:      recipient,
	}
}

// Process handles a single summary job from the queue.
func (w *SummaryWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload SummaryJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("summary_worker: invalid payload")
		return
	}
	w.Run(ctx, payload.BusinessDate)
}

// Run generates the summary for one business date. Also called directly by
// the retry cron, so it must be safe to invoke for days that already
// completed — those are skipped.
func (w *SummaryWorker) Run(ctx context.Context, businessDate string) {
	period, err := reconcile.ParsePeriod(businessDate)
	if err != nil {
		log.Error().Str("business_date", businessDate).Msg("summary_worker: invalid business date")
		return
	}

	day, err := w.shiftRepo.Find(ctx, period)
	if err != nil {
		log.Error().Err(err).Str("business_date", businessDate).Msg("summary_worker: failed to load shift day")
		return
	}
	if day == nil || day.Status != model.ShiftFinalized || day.SummaryState != model.SummaryPending {
		return
	}

	report, err := w.finalizedReport(ctx, period)
	if err != nil {
		w.markFailure(ctx, day, err)
		return
	}

	var pdfPath string
	genErr := withRetry(ctx, 3, func(attempt int) error {
		path, err := infra.GenerateHandoverPDF(report, w.pdfStoragePath)
		if err != nil {
			log.Warn().Err(err).Int("attempt", attempt+1).
				Str("business_date", businessDate).
				Msg("summary_worker: PDF generation failed, retrying")
			return err
		}
		pdfPath = path
		return nil
	})
	if genErr != nil {
		w.markFailure(ctx, day, genErr)
		return
	}

	day.SummaryState = model.SummaryGenerated
	day.SummaryPDFPath = &pdfPath
	day.NextRetryAt = nil
	day.LastError = nil
	if err := w.shiftRepo.Update(ctx, day); err != nil {
		log.Error().Err(err).Str("business_date", businessDate).Msg("summary_worker: failed to update shift day")
		return
	}
	log.Info().Str("pdf", pdfPath).Str("business_date", businessDate).Msg("summary_worker: PDF generated")

	if w.recipient == "" {
		log.Warn().Str("business_date", businessDate).Msg("summary_worker: no summary recipient configured — skipping email")
		return
	}
	emailJob := EmailJobPayload{
		ToEmail: w.recipient,
		Subject: fmt.Sprintf("Shift handover summary — %s", businessDate),
		Body: fmt.Sprintf("Attached is the handover summary for %s.\nFinalized by %s.",
			businessDate, report.FinalDetails.FinalizedByName),
		PDFPath: pdfPath,
	}
	if err := w.dispatcher.EnqueueEmail(ctx, emailJob); err != nil {
		log.Warn().Err(err).Str("business_date", businessDate).Msg("summary_worker: failed to enqueue email")
	}
}

// finalizedReport locates the report carrying the final handover details.
// The finalize transaction guarantees exactly one exists per finalized day.
func (w *SummaryWorker) finalizedReport(ctx context.Context, period reconcile.ReportingPeriod) (*model.CashHandoverReport, error) {
	reports, err := w.handoverRepo.ListByPeriod(ctx, period)
	if err != nil {
		return nil, err
	}
	for i := range reports {
		if reports[i].FinalDetails != nil {
			return &reports[i], nil
		}
	}
	return nil, fmt.Errorf("summary_worker: no finalized report for %s", period)
}

func (w *SummaryWorker) markFailure(ctx context.Context, day *model.ShiftDay, cause error) {
	day.RetryCount++
	errMsg := cause.Error()
	day.LastError = &errMsg

	if day.RetryCount >= MaxSummaryRetries {
		day.SummaryState = model.SummaryFailed
		day.NextRetryAt = nil
		log.Error().
			Str("business_date", day.BusinessDate).
			Int("retries", day.RetryCount).
			Msg("summary_worker: max retries exceeded, moving to failed/DLQ")

		payload := fmt.Sprintf(`{"business_date":%q}`, day.BusinessDate)
		SendToDLQ(ctx, w.rdb, QueueSummary, "handover_summary", []byte(payload),
			fmt.Sprintf("max retries (%d) exceeded: %s", MaxSummaryRetries, errMsg),
			day.RetryCount)
	} else {
		nextRetry := time.Now().Add(computeRetryBackoff(day.RetryCount))
		day.NextRetryAt = &nextRetry
		log.Warn().
			Str("business_date", day.BusinessDate).
			Int("retry_count", day.RetryCount).
			Time("next_retry_at", nextRetry).
			Msg("summary_worker: summary failed, scheduled next attempt")
	}

	if err := w.shiftRepo.Update(ctx, day); err != nil {
		log.Error().Err(err).Str("business_date", day.BusinessDate).Msg("summary_worker: failed to persist failure state")
	}
}

// withRetry calls fn up to maxAttempts times with exponential backoff.
// Backoff schedule: attempt 1 = immediate, 2 = 1s, 3 = 2s.
// Returns nil if any attempt succeeds; last error otherwise.
func withRetry(ctx context.Context, maxAttempts int, fn func(attempt int) error) error {
	var lastErr error
	for i := 0; i < maxAttempts; i++ {
		if i > 0 {
			wait := time.Duration(1<<uint(i-1)) * time.Second
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
			}
		}
		if err := fn(i); err != nil {
			lastErr = err
			continue
		}
		return nil
	}
	return lastErr
}

// computeRetryBackoff doubles per attempt: 1m, 2m, 4m … capped at 30m.
func computeRetryBackoff(retryCount int) time.Duration {
	backoff := time.Duration(1<<uint(retryCount-1)) * time.Minute
	if backoff > 30*time.Minute {
		backoff = 30 * time.Minute
	}
	return backoff
}
