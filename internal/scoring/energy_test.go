package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dnazarov/avatar-twin-engine/internal/envdata"
)

func TestDeriveEnergy(t *testing.T) {
	tests := []struct {
		name  string
		hours *float64
		want  float64
	}{
		{"missing data", nil, 50},
		{"well rested", envdata.Float(8.5), 90},
		{"eight hours", envdata.Float(8), 90},
		{"seven hours", envdata.Float(7), 80},
		{"six and a half", envdata.Float(6.5), 65},
		{"five hours", envdata.Float(5), 45},
		{"three hours", envdata.Float(3), 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveEnergy(tt.hours))
		})
	}
}

func TestDeriveLung(t *testing.T) {
	tests := []struct {
		name string
		aqi  *float64
		want float64
	}{
		{"missing data", nil, 60},
		{"good", envdata.Float(42), 90},
		{"moderate", envdata.Float(100), 75},
		{"sensitive", envdata.Float(150), 60},
		{"unhealthy", envdata.Float(180), 45},
		{"very unhealthy", envdata.Float(250), 30},
		{"hazardous", envdata.Float(400), 15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveLung(tt.aqi))
		})
	}
}

func TestDeriveLungMonotonic(t *testing.T) {
	prev := 90.0
	for aqi := 0.0; aqi <= 600; aqi += 25 {
		got := DeriveLung(&aqi)
		assert.LessOrEqual(t, got, prev, "lung score rose at AQI %.0f", aqi)
		prev = got
	}
}

func TestDeriveSkinGlow(t *testing.T) {
	tests := []struct {
		name    string
		hours   *float64
		commute CommuteMode
		want    float64
	}{
		{"neutral", nil, "", 50},
		{"rested walker", envdata.Float(8), CommuteWalk, 90},
		{"rested cyclist", envdata.Float(8), CommuteBike, 90},
		{"rested remote", envdata.Float(8), CommuteWFH, 88},
		{"short sleep driver", envdata.Float(3), CommuteCar, 35},
		{"decent sleep transit", envdata.Float(6.5), CommuteTransit, 65},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveSkinGlow(tt.hours, tt.commute))
		})
	}
}

func TestDeriveSkinGlowBounds(t *testing.T) {
	for _, hours := range []*float64{nil, envdata.Float(0), envdata.Float(12)} {
		for _, commute := range []CommuteMode{"", CommuteWalk, CommuteCar, CommuteWFH} {
			got := DeriveSkinGlow(hours, commute)
			assert.GreaterOrEqual(t, got, 10.0)
			assert.LessOrEqual(t, got, 95.0)
		}
	}
}

func TestComputeEnergyHighState(t *testing.T) {
	got := ComputeEnergy(12000, 510)

	assert.Equal(t, EnergyHigh, got.State)
	assert.Equal(t, 1.15, got.SpeedScale)
	assert.Equal(t, "Great energy today!", got.Message)
	assert.InDelta(t, 8.5, got.SleepHours, 1e-9)
	assert.InDelta(t, 0.925, got.Energy, 1e-9)
}

func TestComputeEnergyLowStateWithoutSleepData(t *testing.T) {
	got := ComputeEnergy(0, 0)

	assert.Equal(t, EnergyLow, got.State)
	assert.Equal(t, 0.85, got.SpeedScale)
	assert.NotContains(t, got.Message, "sleep")
}

func TestComputeEnergyModerateStateMentionsSleep(t *testing.T) {
	got := ComputeEnergy(5000, 360)

	assert.Equal(t, EnergyModerate, got.State)
	assert.Equal(t, 1.0, got.SpeedScale)
	assert.Contains(t, got.Message, "sleep")
}

func TestComputeEnergyClamped(t *testing.T) {
	for _, tc := range [][2]int{{0, 0}, {100000, 1440}, {500, 60}, {10000, 480}} {
		got := ComputeEnergy(tc[0], tc[1])
		assert.GreaterOrEqual(t, got.Energy, 0.0)
		assert.LessOrEqual(t, got.Energy, 1.0)
	}
}

func TestComputeEnergyDeterministic(t *testing.T) {
	assert.Equal(t, ComputeEnergy(7000, 420), ComputeEnergy(7000, 420))
}
