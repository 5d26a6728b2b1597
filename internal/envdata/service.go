package envdata

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"
)

// Service orchestrates fetching from providers and persisting snapshots.
type Service struct {
	store            Store
	airProviders     []AirQualityProvider
	trafficProviders []TrafficProvider
}

// NewService creates a new Service.
func NewService(store Store, air []AirQualityProvider, traffic []TrafficProvider) *Service {
	return &Service{
		store:            store,
		airProviders:     air,
		trafficProviders: traffic,
	}
}

// Refresh fetches data from all providers concurrently for the given
// location, aggregates successful readings, stores a snapshot, and returns
// it. Partial success is fine: a failed provider is logged and skipped, and
// the last good snapshot is never overwritten by an all-failure round.
func (s *Service) Refresh(ctx context.Context, loc Location) (Snapshot, error) {
	if len(s.airProviders) == 0 {
		return Snapshot{}, fmt.Errorf("no air quality providers configured")
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		readings []AirReading
		traffic  *TrafficReading
	)

	for _, p := range s.airProviders {
		p := p
		wg.Add(1)
		go func() {
			defer wg.Done()

			r, err := p.Fetch(ctx, loc)
			if err != nil {
				log.Printf("provider %s fetch failed for %s: %v", p.Name(), loc.Key(), err)
				return
			}

			mu.Lock()
			readings = append(readings, r)
			mu.Unlock()
		}()
	}

	for _, p := range s.trafficProviders {
		p := p
		wg.Add(1)
		go func() {
			defer wg.Done()

			t, err := p.FetchTraffic(ctx, loc)
			if err != nil {
				log.Printf("provider %s traffic fetch failed for %s: %v", p.Name(), loc.Key(), err)
				return
			}

			mu.Lock()
			if traffic == nil {
				traffic = &t
			}
			mu.Unlock()
		}()
	}

	wg.Wait()

	if len(readings) == 0 && traffic == nil {
		log.Printf("no successful provider readings for %s; keeping last good snapshot if any", loc.Key())
		return Snapshot{}, fmt.Errorf("all providers failed for %s", loc.Key())
	}

	snapshot := AggregateAirReadings(loc, readings)
	snapshot.Traffic = traffic
	if snapshot.Timestamp.IsZero() {
		snapshot.Timestamp = time.Now().UTC()
	}

	if err := s.store.SaveSnapshot(ctx, loc, snapshot); err != nil {
		return Snapshot{}, fmt.Errorf("save snapshot for %s: %w", loc.Key(), err)
	}
	return snapshot, nil
}

// GetLatest delegates to the underlying store.
func (s *Service) GetLatest(ctx context.Context, loc Location) (Snapshot, error) {
	return s.store.GetLatest(ctx, loc)
}

// GetRange delegates to the underlying store.
func (s *Service) GetRange(ctx context.Context, loc Location, from, to time.Time) ([]Snapshot, error) {
	return s.store.GetRange(ctx, loc, from, to)
}
