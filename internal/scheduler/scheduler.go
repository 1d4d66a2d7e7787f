package scheduler

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"nbadb/ingestion/internal/config"
	"nbadb/ingestion/internal/pipeline"
)

// Scheduler runs the nightly incremental update: new games first, then
// their box scores.
type Scheduler struct {
	cfg      *config.Config
	pipeline *pipeline.Pipeline
	cron     *cron.Cron
	stopChan chan struct{}
}

// NewScheduler creates a new scheduler instance
func NewScheduler(cfg *config.Config, p *pipeline.Pipeline) *Scheduler {
	return &Scheduler{
		cfg:      cfg,
		pipeline: p,
		cron:     cron.New(),
		stopChan: make(chan struct{}),
	}
}

// Start starts the scheduler
func (s *Scheduler) Start(ctx context.Context) error {
	log.Info().Msg("Scheduler starting...")

	if _, err := s.cron.AddFunc(s.cfg.NightlyUpdateCron, func() {
		select {
		case <-s.stopChan:
			return
		default:
		}

		log.Info().Msg("Running nightly update...")
		if err := s.pipeline.Update(ctx, []string{"games", "game_logs"}); err != nil {
			log.Error().Err(err).Msg("Nightly update failed")
		}
	}); err != nil {
		return fmt.Errorf("failed to schedule nightly update: %w", err)
	}

	s.cron.Start()
	log.Info().
		Str("schedule", s.cfg.NightlyUpdateCron).
		Msg("Nightly update scheduled")

	return nil
}

// Stop stops the scheduler
func (s *Scheduler) Stop() {
	log.Info().Msg("Stopping scheduler...")

	if s.cron != nil {
		s.cron.Stop()
	}

	close(s.stopChan)
	log.Info().Msg("Scheduler stopped")
}
