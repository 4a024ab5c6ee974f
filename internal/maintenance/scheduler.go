package maintenance

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// Optimizer refreshes storage engine statistics
type Optimizer interface {
	Optimize(ctx context.Context) error
}

// runTimeout bounds a single scheduled optimization
const runTimeout = 5 * time.Minute

// Scheduler runs database optimization on a cron schedule
type Scheduler struct {
	db          Optimizer
	cron        *cron.Cron
	cronEntryID cron.EntryID
	mu          sync.Mutex
	running     bool
	lastRun     time.Time
	lastErr     error
}

// New creates a scheduler for db
func New(db Optimizer) *Scheduler {
	return &Scheduler{
		db:   db,
		cron: cron.New(),
	}
}

// Start schedules optimization with a standard 5-field cron expression.
// An empty schedule leaves the scheduler stopped and returns false.
func (s *Scheduler) Start(schedule string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if schedule == "" {
		return false, nil
	}
	if s.running {
		return true, nil
	}

	id, err := s.cron.AddFunc(schedule, s.scheduledRun)
	if err != nil {
		return false, fmt.Errorf("invalid maintenance schedule %q: %w", schedule, err)
	}
	s.cronEntryID = id
	s.cron.Start()
	s.running = true

	log.Info().Str("schedule", schedule).Msg("Maintenance scheduler started")
	return true, nil
}

// Stop waits for a running job and stops the scheduler
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	s.mu.Unlock()

	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Info().Msg("Maintenance scheduler stopped")
}

// NextRun returns the next scheduled time, zero when stopped
func (s *Scheduler) NextRun() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return time.Time{}
	}
	return s.cron.Entry(s.cronEntryID).Next
}

// LastRun returns when optimization last ran and its error
func (s *Scheduler) LastRun() (time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastRun, s.lastErr
}

// RunNow performs one optimization pass
func (s *Scheduler) RunNow(ctx context.Context) error {
	start := time.Now()
	err := s.db.Optimize(ctx)

	s.mu.Lock()
	s.lastRun = start
	s.lastErr = err
	s.mu.Unlock()

	if err != nil {
		log.Error().Err(err).Msg("Database optimization failed")
		return err
	}
	log.Debug().Dur("duration", time.Since(start)).Msg("Database optimized")
	return nil
}

func (s *Scheduler) scheduledRun() {
	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()
	_ = s.RunNow(ctx)
}
