package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// ExpiredCounter counts listings whose expiry time has passed.
type ExpiredCounter interface {
	CountExpired(ctx context.Context, now time.Time) (int, error)
}

// ExpiredGauge receives the latest expired listing count.
type ExpiredGauge interface {
	SetExpiredListings(count int)
}

// ExpiryReporter periodically reports how many listings have expired.
// Expired listings are never removed here.
type ExpiryReporter struct {
	listings ExpiredCounter
	gauge    ExpiredGauge
	timeout  time.Duration
	now      func() time.Time

	cron    *cron.Cron
	initial sync.WaitGroup
}

func NewExpiryReporter(listings ExpiredCounter, gauge ExpiredGauge, schedule string) (*ExpiryReporter, error) {
	r := &ExpiryReporter{
		listings: listings,
		gauge:    gauge,
		timeout:  30 * time.Second,
		now:      time.Now,
		cron:     cron.New(),
	}

	if _, err := r.cron.AddFunc(schedule, r.run); err != nil {
		return nil, fmt.Errorf("invalid expiry report schedule %q: %w", schedule, err)
	}

	return r, nil
}

// Start runs one report immediately and then follows the schedule.
func (r *ExpiryReporter) Start() {
	log.Info().Msg("Starting expiry reporter")
	r.initial.Add(1)
	go func() {
		defer r.initial.Done()
		r.run()
	}()
	r.cron.Start()
}

// Stop halts scheduling and waits for running reports, the initial one
// included, to finish or ctx to end.
func (r *ExpiryReporter) Stop(ctx context.Context) {
	cronDone := r.cron.Stop()

	done := make(chan struct{})
	go func() {
		<-cronDone.Done()
		r.initial.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Info().Msg("Expiry reporter stopped")
	case <-ctx.Done():
		log.Warn().Msg("Expiry reporter did not stop in time")
	}
}

func (r *ExpiryReporter) run() {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	if _, err := r.Report(ctx); err != nil {
		log.Error().Err(err).Msg("Failed to report expired listings")
	}
}

// Report counts the expired listings once and publishes the result.
func (r *ExpiryReporter) Report(ctx context.Context) (int, error) {
	count, err := r.listings.CountExpired(ctx, r.now())
	if err != nil {
		return 0, fmt.Errorf("error counting expired listings: %w", err)
	}

	if r.gauge != nil {
		r.gauge.SetExpiredListings(count)
	}
	log.Info().Int("expired", count).Msg("Expired listings report")

	return count, nil
}
