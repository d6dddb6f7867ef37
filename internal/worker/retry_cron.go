package worker

// retry_cron.go
// Background goroutine that periodically re-attempts summary generation for
// finalized days stuck in summary_state='pending' with a next_retry_at in
// the past. Also picks up days whose enqueue after finalize never landed.

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/phuoclv264/katrina-one-sub004/internal/repository"
)

const (
	retryTickInterval = 30 * time.Second
	retryBatchSize    = 10
)

// RetryCronConfig holds all dependencies for the retry goroutine.
type RetryCronConfig struct {
	ShiftRepo repository.ShiftRepository
	Summary   *SummaryWorker
}

// StartRetryCron launches a background goroutine that ticks every 30s,
// queries pending summaries, and re-runs the summary worker for each.
// It respects the context for graceful shutdown.
func StartRetryCron(ctx context.Context, cfg RetryCronConfig) {
	go func() {
		ticker := time.NewTicker(retryTickInterval)
		defer ticker.Stop()

		log.Info().Msg("retry_cron: started")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("retry_cron: shutting down")
				return
			case <-ticker.C:
				processRetries(ctx, cfg)
			}
		}
	}()
}

func processRetries(ctx context.Context, cfg RetryCronConfig) {
	now := time.Now()
	days, err := cfg.ShiftRepo.ListPendingSummaries(ctx, now, retryBatchSize)
	if err != nil {
		log.Error().Err(err).Msg("retry_cron: failed to query pending summaries")
		return
	}
	if len(days) == 0 {
		return
	}

	log.Info().Int("count", len(days)).Msg("retry_cron: processing pending summaries")

	for i := range days {
		select {
		case <-ctx.Done():
			return
		default:
		}
		cfg.Summary.Run(ctx, days[i].BusinessDate)
	}
}
