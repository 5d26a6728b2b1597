package scoring

import (
	"math"

	"github.com/dnazarov/avatar-twin-engine/internal/envdata"
)

// SmogConfig drives the particle haze layered over the avatar scene.
type SmogConfig struct {
	Enabled     bool    `json:"enabled"`
	Intensity   float64 `json:"intensity"` // 0-1
	Opacity     float64 `json:"opacity"`   // 0-1
	Density     float64 `json:"density"`   // particle count
	Description string  `json:"description"`
}

// Smog bands keyed by effective PM2.5; outputs are intensity, opacity and
// particle density. Band edges line up so there is no jump at a boundary.
var smogBands = bandTable{
	openWidth: 150,
	segments: []bandSegment{
		{upper: 12, from: []float64{0, 0, 0}, to: []float64{0, 0, 0}},
		{upper: 35, from: []float64{0.2, 0.1, 20}, to: []float64{0.4, 0.2, 40}},
		{upper: 55, from: []float64{0.4, 0.2, 40}, to: []float64{0.6, 0.35, 70}},
		{upper: 150, from: []float64{0.6, 0.35, 70}, to: []float64{0.85, 0.6, 120}},
		{upper: math.Inf(1), from: []float64{0.85, 0.6, 120}, to: []float64{1.0, 0.9, 200}},
	},
}

var smogDescriptions = []string{
	"air is clean",
	"light haze",
	"noticeable smog",
	"heavy smog",
	"severe smog",
}

// SmogEffects derives the smog overlay configuration from an air-quality
// reading. PM2.5 drives the result when present; otherwise an estimate is
// derived from AQI. With neither, the overlay is disabled.
func SmogEffects(air envdata.AirQuality) SmogConfig {
	pm25, ok := effectivePM25(air)
	if !ok {
		return SmogConfig{Description: "no air quality data"}
	}

	out, idx := smogBands.eval(pm25)
	if idx == 0 {
		return SmogConfig{Description: smogDescriptions[0]}
	}

	return SmogConfig{
		Enabled:     true,
		Intensity:   out[0],
		Opacity:     out[1],
		Density:     out[2],
		Description: smogDescriptions[idx],
	}
}

// effectivePM25 returns the PM2.5 concentration to score against, preferring
// a measured value and falling back to an AQI-derived estimate. Negative
// measurements are treated as zero (no effect).
func effectivePM25(air envdata.AirQuality) (float64, bool) {
	if air.PM25 != nil {
		return math.Max(*air.PM25, 0), true
	}
	if air.AQI != nil {
		return pm25FromAQI(math.Max(*air.AQI, 0)), true
	}
	return 0, false
}

// pm25FromAQI estimates a PM2.5 concentration from an AQI value using the
// inverse of the EPA PM2.5 breakpoint table, simplified to four segments.
// This is the single canonical conversion used by every calculator.
func pm25FromAQI(aqi float64) float64 {
	switch {
	case aqi <= 50:
		return lerp(bandFactor(aqi, 0, 50), 0, 12)
	case aqi <= 100:
		return lerp(bandFactor(aqi, 50, 100), 12, 35)
	case aqi <= 150:
		return lerp(bandFactor(aqi, 100, 150), 35, 55)
	default:
		return 55 + 0.95*(aqi-150)
	}
}
