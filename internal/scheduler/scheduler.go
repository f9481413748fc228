package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron"

	"weatherlook/internal/weather"
)

// Scheduler periodically re-warms the current-weather cache for the
// selected location and all favorites.
type Scheduler struct {
	scheduler *gocron.Scheduler
	service   *weather.Service
	interval  time.Duration
}

// New creates a new Scheduler.
func New(service *weather.Service, interval time.Duration) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		service:   service,
		interval:  interval,
	}
}

// Start schedules the periodic job and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	minutes := int(s.interval.Minutes())
	if minutes <= 0 {
		minutes = 15
	}

	_, err := s.scheduler.Every(minutes).Minutes().Do(func() {
		log.Println("scheduler: refreshing weather caches")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		s.service.Refresh(ctx)
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
