package envdata

import (
	"fmt"
	"time"
)

// Location represents a logical place for which we track environmental data.
// City/Country must be provided; coordinates are optional and may be filled
// in by geocoding at configuration time.
type Location struct {
	City    string   `json:"city"`
	Country string   `json:"country"`
	Lat     *float64 `json:"lat,omitempty"`
	Lon     *float64 `json:"lon,omitempty"`
}

// Key returns a canonical string key for indexing this location in stores.
func (l Location) Key() string {
	return l.City + ":" + l.Country
}

// AirQuality holds the pollutant measurements for a location at a point in
// time. Nil means the field was not reported; concentrations are µg/m³ and
// non-negative when present.
type AirQuality struct {
	AQI  *float64 `json:"aqi,omitempty"`
	PM25 *float64 `json:"pm25,omitempty"`
	PM10 *float64 `json:"pm10,omitempty"`
	O3   *float64 `json:"o3,omitempty"`
	NO2  *float64 `json:"no2,omitempty"`
}

// UVReading is the ultraviolet index at a point in time (0-11+ scale).
type UVReading struct {
	Index *float64 `json:"index,omitempty"`
}

// StressLevel is the categorical traffic stress derived from congestion.
type StressLevel string

const (
	StressNone     StressLevel = "none"
	StressMild     StressLevel = "mild"
	StressModerate StressLevel = "moderate"
	StressHigh     StressLevel = "high"
)

// StressFromCongestion maps a congestion factor (current travel time divided
// by free-flow travel time) to a stress level.
func StressFromCongestion(factor float64) StressLevel {
	switch {
	case factor < 1.15:
		return StressNone
	case factor < 1.4:
		return StressMild
	case factor < 1.8:
		return StressModerate
	default:
		return StressHigh
	}
}

// TrafficReading is the normalized traffic state for a location.
type TrafficReading struct {
	StressLevel      StressLevel `json:"stressLevel"`
	CongestionFactor float64     `json:"congestionFactor"`
}

// Snapshot is the aggregated environmental view for a location at a point in
// time. It is the unit stored and served by this service; derived avatar
// scores are computed from it on demand and never persisted.
type Snapshot struct {
	Location  Location        `json:"location"`
	Timestamp time.Time       `json:"timestamp"` // always UTC
	Air       AirQuality      `json:"air"`
	UV        *UVReading      `json:"uv,omitempty"`
	Traffic   *TrafficReading `json:"traffic,omitempty"`

	// Providers contributing to this snapshot.
	Providers []ProviderContribution `json:"providers,omitempty"`
}

// ProviderContribution describes data coming from a single provider used in
// aggregation.
type ProviderContribution struct {
	ProviderName string    `json:"provider"`
	Timestamp    time.Time `json:"timestamp"`
}

// Float returns a pointer to v. Convenience for building readings and tests.
func Float(v float64) *float64 {
	return &v
}

// String implements fmt.Stringer for log lines.
func (s Snapshot) String() string {
	return fmt.Sprintf("snapshot{%s @ %s}", s.Location.Key(), s.Timestamp.Format(time.RFC3339))
}
