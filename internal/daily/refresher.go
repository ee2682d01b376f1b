package daily

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/abhisek/deutschpro/internal/logger"
)

// DefaultRefreshAt is the local time the next day's lesson is prefetched.
const DefaultRefreshAt = "00:05"

// prefetchTimeout bounds one scheduled generation.
const prefetchTimeout = 2 * time.Minute

// Refresher prefetches the day's lesson on a schedule so the home screen
// rarely waits on generation.
type Refresher struct {
	scheduler *gocron.Scheduler
	svc       *Service
	at        string
	log       *logger.Logger
}

// NewRefresher creates a refresher that runs daily at "HH:MM" in loc.
func NewRefresher(svc *Service, at string, loc *time.Location, log *logger.Logger) *Refresher {
	if at == "" {
		at = DefaultRefreshAt
	}
	if loc == nil {
		loc = time.Local
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Refresher{
		scheduler: gocron.NewScheduler(loc),
		svc:       svc,
		at:        at,
		log:       log.With("component", "daily-refresher"),
	}
}

// Start schedules the prefetch and starts the scheduler without blocking.
func (r *Refresher) Start() error {
	if _, err := r.scheduler.Every(1).Day().At(r.at).Do(r.Prefetch); err != nil {
		return fmt.Errorf("schedule daily prefetch at %q: %w", r.at, err)
	}
	r.scheduler.StartAsync()
	r.log.Debug("daily prefetch scheduled", "at", r.at)
	return nil
}

// Stop terminates the scheduler.
func (r *Refresher) Stop() {
	r.scheduler.Stop()
}

// Prefetch makes sure today's lesson is cached.
func (r *Refresher) Prefetch() {
	ctx, cancel := context.WithTimeout(context.Background(), prefetchTimeout)
	defer cancel()

	if _, err := r.svc.Today(ctx); err != nil {
		r.log.Warn("daily prefetch failed", "error", err)
	}
}
