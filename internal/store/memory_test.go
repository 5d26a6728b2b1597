package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dnazarov/avatar-twin-engine/internal/envdata"
)

func snapshotAt(loc envdata.Location, ts time.Time, aqi float64) envdata.Snapshot {
	return envdata.Snapshot{
		Location:  loc,
		Timestamp: ts,
		Air:       envdata.AirQuality{AQI: envdata.Float(aqi)},
	}
}

func TestMemoryStoreLatestAndRange(t *testing.T) {
	ctx := context.Background()
	loc := envdata.Location{City: "Krakow", Country: "PL"}
	s := NewMemoryStore(10, 0)

	base := time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		require.NoError(t, s.SaveSnapshot(ctx, loc, snapshotAt(loc, base.Add(time.Duration(i)*time.Hour), float64(50+i))))
	}

	latest, err := s.GetLatest(ctx, loc)
	require.NoError(t, err)
	assert.InDelta(t, 52, *latest.Air.AQI, 1e-9)

	snapshots, err := s.GetRange(ctx, loc, base, base.Add(time.Hour))
	require.NoError(t, err)
	assert.Len(t, snapshots, 2)
}

func TestMemoryStoreRetentionByCount(t *testing.T) {
	ctx := context.Background()
	loc := envdata.Location{City: "Krakow", Country: "PL"}
	s := NewMemoryStore(2, 0)

	base := time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		require.NoError(t, s.SaveSnapshot(ctx, loc, snapshotAt(loc, base.Add(time.Duration(i)*time.Hour), float64(i))))
	}

	snapshots, err := s.GetRange(ctx, loc, base, base.Add(24*time.Hour))
	require.NoError(t, err)
	assert.Len(t, snapshots, 2)
	assert.InDelta(t, 4, *snapshots[1].Air.AQI, 1e-9)
}

func TestMemoryStoreNotFound(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(10, 0)

	_, err := s.GetLatest(ctx, envdata.Location{City: "Nowhere", Country: "XX"})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.GetRange(ctx, envdata.Location{City: "Nowhere", Country: "XX"}, time.Now().Add(-time.Hour), time.Now())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreRangeOutsideWindow(t *testing.T) {
	ctx := context.Background()
	loc := envdata.Location{City: "Krakow", Country: "PL"}
	s := NewMemoryStore(10, 0)

	base := time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC)
	require.NoError(t, s.SaveSnapshot(ctx, loc, snapshotAt(loc, base, 50)))

	_, err := s.GetRange(ctx, loc, base.Add(time.Hour), base.Add(2*time.Hour))
	assert.ErrorIs(t, err, ErrNotFound)
}
