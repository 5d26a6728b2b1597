package envdata

import (
	"context"
	"time"
)

// AirReading represents a single provider's normalized air-quality reading
// that can be aggregated into a Snapshot. Some providers also report the UV
// index alongside pollutants.
type AirReading struct {
	ProviderName string
	Timestamp    time.Time

	Air     AirQuality
	UVIndex *float64
}

// AirQualityProvider abstracts an air-quality data source (e.g. Open-Meteo,
// WAQI).
type AirQualityProvider interface {
	Name() string
	Fetch(ctx context.Context, loc Location) (AirReading, error)
}

// TrafficProvider abstracts a traffic data source (e.g. TomTom flow data).
type TrafficProvider interface {
	Name() string
	FetchTraffic(ctx context.Context, loc Location) (TrafficReading, error)
}

// Store is the contract the in-memory and Redis stores must satisfy.
type Store interface {
	SaveSnapshot(ctx context.Context, loc Location, snapshot Snapshot) error
	GetLatest(ctx context.Context, loc Location) (Snapshot, error)
	GetRange(ctx context.Context, loc Location, from, to time.Time) ([]Snapshot, error)
}
