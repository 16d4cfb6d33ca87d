/*
scheduler.go - Automated availability alert sweep

PURPOSE:
  Periodically re-checks every active availability alert against the
  booking calendar and marks alerts whose preferred area opened up as
  matched. Alerts for stays that have already started are closed.

DESIGN:
  - Runs on a gocron scheduler with a fixed interval
  - Singleton mode: a slow sweep delays the next one instead of overlapping
  - A sweep runs immediately on start
  - Failures are logged; the next tick retries

CONFIGURATION:
  - Interval: How often to sweep (CAMPSITE_ALERT_SWEEP_INTERVAL, default 15m)
  - Enabled: An interval of zero disables the scheduler

USAGE:
  scheduler, err := NewAlertScheduler(engine, store, 15*time.Minute)
  scheduler.Start()
  // ... later
  scheduler.Stop()

SEE ALSO:
  - handlers.go: SweepAlerts endpoint (manual sweep)
  - booking/engine.go: Engine.SweepAlerts
*/
package api

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/robbyrobaz/campsite-crm/booking"
)

const alertSweepJobName = "availability-alert-sweep"

// AlertScheduler handles automated availability alert sweeps.
type AlertScheduler struct {
	Engine   *booking.Engine
	Alerts   booking.AlertStore
	Interval time.Duration
	Enabled  bool

	scheduler gocron.Scheduler
	mu        sync.Mutex
	started   bool
	lastRun   time.Time
	lastErr   error
}

// NewAlertScheduler creates a scheduler. An interval of zero or less yields
// a disabled scheduler whose Start is a no-op.
func NewAlertScheduler(engine *booking.Engine, alerts booking.AlertStore, interval time.Duration) (*AlertScheduler, error) {
	as := &AlertScheduler{
		Engine:   engine,
		Alerts:   alerts,
		Interval: interval,
		Enabled:  interval > 0,
	}
	if !as.Enabled {
		return as, nil
	}

	sched, err := gocron.NewScheduler(
		gocron.WithLocation(time.UTC),
		gocron.WithGlobalJobOptions(
			gocron.WithEventListeners(
				gocron.AfterJobRunsWithPanic(func(jobID uuid.UUID, jobName string, recoverData any) {
					log.Error().
						Str("job_id", jobID.String()).
						Str("job_name", jobName).
						Interface("panic", recoverData).
						Msg("Scheduler job panicked")
				}),
			),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}

	_, err = sched.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(as.RunNow),
		gocron.WithName(alertSweepJobName),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		_ = sched.Shutdown()
		return nil, fmt.Errorf("add alert sweep job: %w", err)
	}
	as.scheduler = sched
	return as, nil
}

// Start begins the scheduler.
func (as *AlertScheduler) Start() {
	as.mu.Lock()
	defer as.mu.Unlock()

	if !as.Enabled {
		log.Info().Msg("Alert sweep disabled, not starting")
		return
	}
	if as.started {
		return
	}
	as.scheduler.Start()
	as.started = true
	log.Info().Dur("interval", as.Interval).Msg("Alert sweep started")
}

// Stop stops the scheduler and waits for a running sweep to finish.
func (as *AlertScheduler) Stop() error {
	as.mu.Lock()
	sched := as.scheduler
	as.scheduler = nil
	as.started = false
	as.mu.Unlock()

	if sched == nil {
		return nil
	}
	err := sched.Shutdown()
	log.Info().Msg("Alert sweep stopped")
	return err
}

// RunNow performs one sweep synchronously.
func (as *AlertScheduler) RunNow() {
	ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout(as.Interval))
	defer cancel()

	start := time.Now()
	matched, err := as.Engine.SweepAlerts(ctx, as.Alerts)

	as.mu.Lock()
	as.lastRun = start
	as.lastErr = err
	as.mu.Unlock()

	if err != nil {
		log.Error().Err(err).Msg("Alert sweep failed")
		return
	}
	log.Info().
		Int("matched", matched).
		Dur("duration", time.Since(start)).
		Msg("Alert sweep completed")
}

// LastRun returns when the most recent sweep started and how it ended.
func (as *AlertScheduler) LastRun() (time.Time, error) {
	as.mu.Lock()
	defer as.mu.Unlock()
	return as.lastRun, as.lastErr
}

func sweepTimeout(interval time.Duration) time.Duration {
	if interval <= 0 || interval > time.Minute {
		return time.Minute
	}
	return interval
}
