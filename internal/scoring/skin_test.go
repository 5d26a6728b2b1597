package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dnazarov/avatar-twin-engine/internal/envdata"
)

func TestPollutionSkinEffectsBands(t *testing.T) {
	tests := []struct {
		name string
		pm25 float64
		min  float64
		max  float64
	}{
		{"clean air no effect", 10, 0, 0},
		{"light band", 25, -0.1, 0},
		{"noticeable band", 45, -0.25, -0.1},
		{"heavy band", 100, -0.5, -0.25},
		{"severe band", 250, -0.7, -0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PollutionSkinEffects(envdata.AirQuality{PM25: envdata.Float(tt.pm25)})
			assert.GreaterOrEqual(t, got.Adjustment, tt.min)
			assert.LessOrEqual(t, got.Adjustment, tt.max)
			assert.Zero(t, got.Redness)
		})
	}
}

func TestPollutionSkinEffectsBoundaryValues(t *testing.T) {
	// Exact band-edge values from the table.
	assert.InDelta(t, 0, PollutionSkinEffects(envdata.AirQuality{PM25: envdata.Float(12)}).Adjustment, 1e-9)
	assert.InDelta(t, -0.1, PollutionSkinEffects(envdata.AirQuality{PM25: envdata.Float(35)}).Adjustment, 1e-9)
	assert.InDelta(t, -0.25, PollutionSkinEffects(envdata.AirQuality{PM25: envdata.Float(55)}).Adjustment, 1e-9)
	assert.InDelta(t, -0.5, PollutionSkinEffects(envdata.AirQuality{PM25: envdata.Float(150)}).Adjustment, 1e-9)
}

func TestPollutionSkinEffectsPM10Contribution(t *testing.T) {
	base := PollutionSkinEffects(envdata.AirQuality{PM25: envdata.Float(100)})
	withPM10 := PollutionSkinEffects(envdata.AirQuality{
		PM25: envdata.Float(100),
		PM10: envdata.Float(100),
	})

	assert.Less(t, withPM10.Adjustment, base.Adjustment)
	// The PM10 contribution is capped at 0.1 x 0.1.
	assert.InDelta(t, base.Adjustment-0.01, withPM10.Adjustment, 1e-9)
}

func TestPollutionSkinEffectsNegativeConcentration(t *testing.T) {
	got := PollutionSkinEffects(envdata.AirQuality{PM25: envdata.Float(-5)})
	assert.Zero(t, got.Adjustment)
}

func TestPollutionSkinEffectsCap(t *testing.T) {
	got := PollutionSkinEffects(envdata.AirQuality{
		PM25: envdata.Float(1e9),
		PM10: envdata.Float(1e9),
	})
	assert.GreaterOrEqual(t, got.Adjustment, -0.7)
}

func TestPollutionSkinEffectsMonotonic(t *testing.T) {
	prev := 0.0
	for pm25 := 0.0; pm25 <= 500; pm25 += 2.5 {
		got := PollutionSkinEffects(envdata.AirQuality{PM25: envdata.Float(pm25)})
		assert.LessOrEqual(t, got.Adjustment, prev, "darkening weakened at PM2.5 %.1f", pm25)
		prev = got.Adjustment
	}
}

func TestUVSkinEffectsNoData(t *testing.T) {
	got := UVSkinEffects(nil, nil, 0)
	assert.Zero(t, got.Adjustment)
	assert.Zero(t, got.Redness)
}

func TestUVSkinEffectsLightToneReddens(t *testing.T) {
	got := UVSkinEffects(envdata.Float(6), nil, 0.5)

	assert.Greater(t, got.Adjustment, 0.0)
	assert.Greater(t, got.Redness, 0.0)
}

func TestUVSkinEffectsDarkToneDarkens(t *testing.T) {
	got := UVSkinEffects(envdata.Float(6), nil, -0.5)

	assert.Less(t, got.Adjustment, 0.0)
}

func TestUVSkinEffectsClamps(t *testing.T) {
	long := 16.0
	for _, tone := range []float64{-1, -0.5, 0, 0.5, 1} {
		got := UVSkinEffects(envdata.Float(25), &long, tone)
		assert.GreaterOrEqual(t, got.Adjustment, -0.4)
		assert.LessOrEqual(t, got.Adjustment, 0.3)
		assert.GreaterOrEqual(t, got.Redness, 0.0)
		assert.LessOrEqual(t, got.Redness, 0.5)
	}
}

func TestUVSkinEffectsExposureScaling(t *testing.T) {
	short := 1.0
	long := 6.0
	brief := UVSkinEffects(envdata.Float(6), &short, 0.5)
	extended := UVSkinEffects(envdata.Float(6), &long, 0.5)

	assert.Greater(t, extended.Redness, brief.Redness)
}

func TestCombinedSkinEffectsClamp(t *testing.T) {
	got := CombinedSkinEffects(envdata.AirQuality{
		PM25: envdata.Float(1e6),
		PM10: envdata.Float(1e6),
	}, envdata.Float(30), nil, -1)

	assert.GreaterOrEqual(t, got.Adjustment, -0.8)
	assert.LessOrEqual(t, got.Adjustment, 0.5)
}

func TestCombinedSkinEffectsPrimaryFactor(t *testing.T) {
	pollutionHeavy := CombinedSkinEffects(envdata.AirQuality{PM25: envdata.Float(200)}, envdata.Float(1), nil, 0)
	assert.Equal(t, "pollution", pollutionHeavy.PrimaryFactor)

	uvHeavy := CombinedSkinEffects(envdata.AirQuality{PM25: envdata.Float(5)}, envdata.Float(11), nil, 0.8)
	assert.Equal(t, "uv", uvHeavy.PrimaryFactor)

	neither := CombinedSkinEffects(envdata.AirQuality{PM25: envdata.Float(5)}, envdata.Float(1), nil, 0)
	assert.Equal(t, "none", neither.PrimaryFactor)
}

func TestCombinedSkinEffectsRecommendations(t *testing.T) {
	got := CombinedSkinEffects(envdata.AirQuality{PM25: envdata.Float(100)}, envdata.Float(6), nil, 0)
	assert.Len(t, got.Recommendations, 2)

	clean := CombinedSkinEffects(envdata.AirQuality{PM25: envdata.Float(5)}, envdata.Float(1), nil, 0)
	assert.Empty(t, clean.Recommendations)
}

func TestCombinedSkinEffectsNullSafe(t *testing.T) {
	got := CombinedSkinEffects(envdata.AirQuality{}, nil, nil, 0)

	assert.Zero(t, got.Adjustment)
	assert.Zero(t, got.Redness)
	assert.Equal(t, "none", got.PrimaryFactor)
	assert.Empty(t, got.Recommendations)
}
