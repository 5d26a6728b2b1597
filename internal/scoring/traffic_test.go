package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dnazarov/avatar-twin-engine/internal/envdata"
)

func TestStressEffectsNoData(t *testing.T) {
	got := StressEffects(nil, true, true, ExpressionNeutral)

	assert.Equal(t, envdata.StressNone, got.StressLevel)
	assert.Zero(t, got.Intensity)
	assert.False(t, got.ShouldShowIcon)
	assert.Equal(t, ExpressionNeutral, got.FacialExpression)
}

func TestStressEffectsDisabled(t *testing.T) {
	traffic := &envdata.TrafficReading{StressLevel: envdata.StressHigh, CongestionFactor: 2.1}
	got := StressEffects(traffic, false, true, ExpressionTired)

	assert.Equal(t, envdata.StressNone, got.StressLevel)
	assert.Zero(t, got.Intensity)
	assert.False(t, got.ShouldShowIcon)
	assert.Equal(t, ExpressionTired, got.FacialExpression)
}

func TestStressEffectsLevels(t *testing.T) {
	tests := []struct {
		level      envdata.StressLevel
		intensity  float64
		expression Expression
	}{
		{envdata.StressMild, 0.3, ExpressionConcerned},
		{envdata.StressModerate, 0.6, ExpressionTired},
		{envdata.StressHigh, 1.0, ExpressionExhausted},
	}

	for _, tt := range tests {
		t.Run(string(tt.level), func(t *testing.T) {
			traffic := &envdata.TrafficReading{StressLevel: tt.level, CongestionFactor: 1.5}
			got := StressEffects(traffic, true, true, ExpressionNeutral)

			assert.Equal(t, tt.level, got.StressLevel)
			assert.Equal(t, tt.intensity, got.Intensity)
			assert.Equal(t, tt.expression, got.FacialExpression)
			assert.True(t, got.ShouldShowIcon)
			assert.Equal(t, 1.5, got.CongestionFactor)
		})
	}
}

func TestStressEffectsNoStress(t *testing.T) {
	traffic := &envdata.TrafficReading{StressLevel: envdata.StressNone, CongestionFactor: 1.0}
	got := StressEffects(traffic, true, true, ExpressionNeutral)

	assert.False(t, got.ShouldShowIcon)
	assert.Zero(t, got.Intensity)
}

func TestStressEffectsVisualsDisabled(t *testing.T) {
	traffic := &envdata.TrafficReading{StressLevel: envdata.StressHigh, CongestionFactor: 2.0}
	got := StressEffects(traffic, true, false, ExpressionNeutral)

	assert.Equal(t, envdata.StressHigh, got.StressLevel)
	assert.True(t, got.ShouldShowIcon)
	assert.Zero(t, got.Intensity)
	assert.Equal(t, ExpressionNeutral, got.FacialExpression)
}
