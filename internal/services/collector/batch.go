package collector

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/bobmcallan/kessan/internal/models"
)

// outcome classifies one company's result within a batch.
type outcome int

const (
	outcomeSucceeded outcome = iota
	outcomeFailed
	outcomeSkipped
)

// runBatch fans the companies out over a worker pool and aggregates the
// per-company outcomes. A failing company never aborts the batch; the
// only early exit is context cancellation.
func (s *Service) runBatch(ctx context.Context, dataset string, companies []models.Company, process func(context.Context, models.Company) outcome) (*models.BatchSummary, error) {
	summary := &models.BatchSummary{
		RunID:     uuid.NewString(),
		Dataset:   dataset,
		Total:     len(companies),
		StartedAt: time.Now(),
	}

	workers := s.config.Collector.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > len(companies) {
		workers = len(companies)
	}

	s.logger.Info().
		Str("run_id", summary.RunID).
		Str("dataset", dataset).
		Int("companies", len(companies)).
		Int("workers", workers).
		Msg("batch started")

	jobs := make(chan models.Company)
	var mu sync.Mutex
	var wg sync.WaitGroup
	processed := 0

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for company := range jobs {
				result := process(ctx, company)

				mu.Lock()
				switch result {
				case outcomeSucceeded:
					summary.Succeeded++
				case outcomeFailed:
					summary.Failed++
				case outcomeSkipped:
					summary.Skipped++
				}
				processed++
				if s.config.Collector.ProgressInterval > 0 && processed%s.config.Collector.ProgressInterval == 0 {
					s.logger.Info().
						Str("dataset", dataset).
						Int("processed", processed).
						Int("total", summary.Total).
						Msg("batch progress")
				}
				mu.Unlock()
			}
		}()
	}

dispatch:
	for _, company := range companies {
		select {
		case <-ctx.Done():
			break dispatch
		case jobs <- company:
		}
	}
	close(jobs)
	wg.Wait()

	summary.Elapsed = time.Since(summary.StartedAt)
	s.logger.Info().
		Str("run_id", summary.RunID).
		Str("dataset", dataset).
		Int("succeeded", summary.Succeeded).
		Int("failed", summary.Failed).
		Int("skipped", summary.Skipped).
		Dur("elapsed", summary.Elapsed).
		Msg("batch finished")

	if err := ctx.Err(); err != nil {
		return summary, err
	}
	return summary, nil
}
