package scheduler

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/dnazarov/avatar-twin-engine/internal/envdata"
)

// Scheduler periodically refreshes environmental data for configured
// locations.
type Scheduler struct {
	scheduler *gocron.Scheduler
	service   *envdata.Service
	locations []envdata.Location
	interval  time.Duration

	// onRefresh, when set, receives each successfully stored snapshot
	// (e.g. for publishing to MQTT).
	onRefresh func(envdata.Snapshot)
}

// New creates a new Scheduler.
func New(locations []envdata.Location, interval time.Duration, service *envdata.Service, onRefresh func(envdata.Snapshot)) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		service:   service,
		locations: locations,
		interval:  interval,
		onRefresh: onRefresh,
	}
}

// Start schedules the periodic job and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	if len(s.locations) == 0 {
		log.Println("scheduler: no locations configured; nothing to schedule")
		return nil
	}

	minutes := int(s.interval.Minutes())
	if minutes <= 0 {
		minutes = 15
	}

	_, err := s.scheduler.Every(minutes).Minutes().Do(func() {
		log.Println("scheduler: running environmental refresh job")

		var wg sync.WaitGroup
		for _, loc := range s.locations {
			loc := loc
			wg.Add(1)
			go func() {
				defer wg.Done()

				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()

				snapshot, err := s.service.Refresh(ctx, loc)
				if err != nil {
					log.Printf("scheduler: refresh failed for %s: %v", loc.Key(), err)
					return
				}
				if s.onRefresh != nil {
					s.onRefresh(snapshot)
				}
			}()
		}
		wg.Wait()
		log.Println("scheduler: completed environmental refresh job")
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
