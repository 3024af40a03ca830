// Package scheduler runs the background jobs of the API process. Today
// that is a single job: periodically flushing the offline outbox into the
// database.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"cardscan/backend/internal/service"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

const flushTimeout = 30 * time.Second

type Scheduler struct {
	cron   *cron.Cron
	outbox *service.OutboxService
	store  service.CardStore
	log    zerolog.Logger
}

// New builds a scheduler with an outbox flush job on the given cron spec.
// The spec uses the six-field form with a seconds column.
func New(outbox *service.OutboxService, store service.CardStore, spec string, log zerolog.Logger) (*Scheduler, error) {
	s := &Scheduler{
		cron:   cron.New(cron.WithSeconds()),
		outbox: outbox,
		store:  store,
		log:    log,
	}

	if _, err := s.cron.AddFunc(spec, s.flushOutbox); err != nil {
		return nil, fmt.Errorf("failed to schedule outbox flush: %w", err)
	}

	return s, nil
}

// Start begins running scheduled jobs in their own goroutines.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info().Msg("scheduler started")
}

// Stop halts scheduling and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.log.Info().Msg("scheduler stopped")
}

func (s *Scheduler) flushOutbox() {
	ctx, cancel := context.WithTimeout(context.Background(), flushTimeout)
	defer cancel()

	if _, err := s.outbox.Flush(ctx, s.store); err != nil {
		s.log.Error().Err(err).Msg("outbox flush failed")
	}
}
