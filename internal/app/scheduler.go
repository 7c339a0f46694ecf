package app

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"

	"github.com/bobmcallan/kessan/internal/common"
	"github.com/bobmcallan/kessan/internal/interfaces"
	"github.com/bobmcallan/kessan/internal/models"
)

// scheduler drives the three collection cadences off cron expressions.
type scheduler struct {
	cron   *cron.Cron
	logger *common.Logger
}

// StartScheduler registers the configured cadences and starts the cron
// loop. Each job runs a full batch and logs its summary. An empty
// schedule string disables that job.
func (a *App) StartScheduler() error {
	s := &scheduler{
		cron:   cron.New(),
		logger: a.Logger,
	}

	jobs := []struct {
		name string
		spec string
		run  func(context.Context, interfaces.BatchOptions) (*models.BatchSummary, error)
	}{
		{"history", a.Config.Schedule.History, a.Collector.CollectHistory},
		{"financials", a.Config.Schedule.Financials, a.Collector.CollectFinancials},
		{"analyst", a.Config.Schedule.Analyst, a.Collector.CollectAnalyst},
	}

	for _, job := range jobs {
		if job.spec == "" {
			continue
		}
		name, run := job.name, job.run
		_, err := s.cron.AddFunc(job.spec, func() {
			summary, err := run(context.Background(), interfaces.BatchOptions{})
			if err != nil {
				s.logger.Error().Err(err).Str("job", name).Msg("scheduled batch failed")
				return
			}
			s.logger.Info().
				Str("job", name).
				Str("run_id", summary.RunID).
				Int("succeeded", summary.Succeeded).
				Int("failed", summary.Failed).
				Int("skipped", summary.Skipped).
				Msg("scheduled batch complete")
		})
		if err != nil {
			return fmt.Errorf("invalid %s schedule %q: %w", name, job.spec, err)
		}
		a.Logger.Info().Str("job", name).Str("schedule", job.spec).Msg("job scheduled")
	}

	s.cron.Start()
	a.scheduler = s
	return nil
}

func (s *scheduler) stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info().Msg("scheduler stopped")
}
