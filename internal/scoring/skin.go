package scoring

import (
	"math"

	"github.com/dnazarov/avatar-twin-engine/internal/envdata"
)

// SkinEffect is a tone adjustment applied to the avatar's skin material.
// Adjustment is negative for darkening and positive for reddening.
type SkinEffect struct {
	Adjustment  float64 `json:"adjustment"`
	Redness     float64 `json:"redness"`
	Description string  `json:"description"`
}

// CombinedSkinEffect merges the pollution and UV sub-effects.
type CombinedSkinEffect struct {
	SkinEffect
	PrimaryFactor   string   `json:"primaryFactor"` // pollution, uv or none
	Recommendations []string `json:"recommendations,omitempty"`
}

const (
	// DefaultExposureHours is assumed when the caller does not report time
	// spent outdoors.
	DefaultExposureHours = 2.0

	maxPollutionDarkening = -0.7
)

// Pollution darkening bands keyed by effective PM2.5. The single output is
// the (negative) tone adjustment.
var pollutionSkinBands = bandTable{
	openWidth: 150,
	segments: []bandSegment{
		{upper: 12, from: []float64{0}, to: []float64{0}},
		{upper: 35, from: []float64{0}, to: []float64{-0.1}},
		{upper: 55, from: []float64{-0.1}, to: []float64{-0.25}},
		{upper: 150, from: []float64{-0.25}, to: []float64{-0.5}},
		{upper: math.Inf(1), from: []float64{-0.5}, to: []float64{maxPollutionDarkening}},
	},
}

var pollutionSkinDescriptions = []string{
	"no visible effect",
	"slight dulling from fine particles",
	"noticeable dulling from fine particles",
	"heavy particulate buildup on skin",
	"severe particulate buildup on skin",
}

// PollutionSkinEffects maps particulate exposure to a darkening adjustment.
// PM10 above 50 µg/m³ contributes a small extra darkening on top of the
// PM2.5 band value; the total is capped at -0.7.
func PollutionSkinEffects(air envdata.AirQuality) SkinEffect {
	pm25, ok := effectivePM25(air)
	if !ok {
		return SkinEffect{Description: "no air quality data"}
	}

	out, idx := pollutionSkinBands.eval(pm25)
	adj := out[0]

	if air.PM10 != nil && *air.PM10 > 50 {
		adj += math.Min((*air.PM10-50)/200, 0.1) * -0.1
	}
	if adj < maxPollutionDarkening {
		adj = maxPollutionDarkening
	}

	return SkinEffect{
		Adjustment:  adj,
		Description: pollutionSkinDescriptions[idx],
	}
}

// UV bands: upper bound on the UV index, then the base (tanning/darkening)
// effect range and the redness effect range across the band. The extreme
// band approaches its top values asymptotically over indices 10-16.
type uvBand struct {
	upper    float64
	baseFrom float64
	baseTo   float64
	redFrom  float64
	redTo    float64
	label    string
}

var uvBands = []uvBand{
	{2, 0, 0, 0, 0, "minimal UV exposure"},
	{5, 0, 0.05, 0, 0.08, "slight UV exposure"},
	{7, 0.05, 0.12, 0.08, 0.18, "high UV exposure"},
	{10, 0.12, 0.2, 0.18, 0.3, "very high UV exposure"},
	{math.Inf(1), 0.2, 0.3, 0.3, 0.45, "extreme UV exposure"},
}

const uvOpenWidth = 6

// UVSkinEffects maps UV index, outdoor exposure time and the avatar's base
// skin tone to a tone adjustment. Lighter base tones (tone > 0) respond
// mostly with redness; darker tones respond mostly with darkening.
func UVSkinEffects(uvIndex, exposureHours *float64, baseSkinTone float64) SkinEffect {
	if uvIndex == nil {
		return SkinEffect{Description: "no uv data"}
	}
	uv := math.Max(*uvIndex, 0)

	hours := DefaultExposureHours
	if exposureHours != nil && *exposureHours >= 0 {
		hours = *exposureHours
	}

	// Fairer skin burns faster: sensitivity spans 0.3 (darkest) to 1.7
	// (lightest) for tones in [-1, 1].
	sensitivity := math.Max(0.3, 1+baseSkinTone*0.7)
	scale := hours / DefaultExposureHours * sensitivity

	band := uvBands[len(uvBands)-1]
	factor := clamp((uv-10)/uvOpenWidth, 0, 1)
	lower := 0.0
	for _, b := range uvBands[:len(uvBands)-1] {
		if uv <= b.upper {
			band = b
			factor = bandFactor(uv, lower, b.upper)
			break
		}
		lower = b.upper
	}

	base := lerp(factor, band.baseFrom, band.baseTo) * scale
	redness := lerp(factor, band.redFrom, band.redTo) * scale

	var adj float64
	if baseSkinTone > 0 {
		adj = redness*0.7 - base*0.3
	} else {
		adj = -base*0.8 + redness*0.2
	}

	return SkinEffect{
		Adjustment:  clamp(adj, -0.4, 0.3),
		Redness:     clamp(redness, 0, 0.5),
		Description: band.label,
	}
}

// CombinedSkinEffects sums the pollution and UV adjustments, clamps the
// total and reports which sub-effect dominates, together with care
// recommendations where either factor is significant.
func CombinedSkinEffects(air envdata.AirQuality, uvIndex, exposureHours *float64, baseSkinTone float64) CombinedSkinEffect {
	pollution := PollutionSkinEffects(air)
	uv := UVSkinEffects(uvIndex, exposureHours, baseSkinTone)

	total := clamp(pollution.Adjustment+uv.Adjustment, -0.8, 0.5)

	primary := "none"
	switch {
	case pollution.Adjustment == 0 && uv.Adjustment == 0:
	case math.Abs(pollution.Adjustment) >= math.Abs(uv.Adjustment):
		primary = "pollution"
	default:
		primary = "uv"
	}

	var recs []string
	if pollution.Adjustment < -0.1 {
		recs = append(recs, "Cleanse your skin after time outside; particulate levels are elevated.")
	}
	if uvIndex != nil && *uvIndex > 3 {
		recs = append(recs, "Apply sunscreen before heading outdoors.")
	}

	desc := pollution.Description
	if uv.Redness > 0 || uv.Adjustment != 0 {
		desc = pollution.Description + "; " + uv.Description
	}

	return CombinedSkinEffect{
		SkinEffect: SkinEffect{
			Adjustment:  total,
			Redness:     uv.Redness,
			Description: desc,
		},
		PrimaryFactor:   primary,
		Recommendations: recs,
	}
}
