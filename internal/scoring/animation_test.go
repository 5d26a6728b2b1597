package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dnazarov/avatar-twin-engine/internal/envdata"
)

func TestRecommendAnimationNoData(t *testing.T) {
	got := RecommendAnimation(nil, AnimationOptions{})

	assert.Equal(t, AnimationIdle, got.Animation)
	assert.True(t, got.IsAutomatic)
}

func TestRecommendAnimationGoodAir(t *testing.T) {
	got := RecommendAnimation(envdata.Float(42), AnimationOptions{})

	assert.Equal(t, AnimationIdle, got.Animation)
	assert.Contains(t, got.Reason, "good")
}

func TestRecommendAnimationModerateAir(t *testing.T) {
	got := RecommendAnimation(envdata.Float(75), AnimationOptions{})

	assert.Equal(t, AnimationBreathing, got.Animation)
	assert.True(t, got.IsAutomatic)
}

func TestRecommendAnimationUnhealthyAir(t *testing.T) {
	got := RecommendAnimation(envdata.Float(150), AnimationOptions{})

	assert.Equal(t, AnimationBreathing, got.Animation)
	assert.Contains(t, got.Reason, "unhealthy")
}

func TestRecommendAnimationManualOverride(t *testing.T) {
	got := RecommendAnimation(envdata.Float(150), AnimationOptions{ManualOverride: true})

	assert.Empty(t, got.Animation)
	assert.False(t, got.IsAutomatic)
}

func TestRecommendAnimationStressVisualsDisabled(t *testing.T) {
	moderate := RecommendAnimation(envdata.Float(75), AnimationOptions{DisableStressVisuals: true})
	assert.Equal(t, AnimationIdle, moderate.Animation)

	unhealthy := RecommendAnimation(envdata.Float(150), AnimationOptions{DisableStressVisuals: true})
	assert.Equal(t, AnimationFatigue, unhealthy.Animation)
}

func TestCycleForAQI(t *testing.T) {
	assert.Nil(t, CycleForAQI(80, AnimationOptions{}))

	cycle := CycleForAQI(150, AnimationOptions{})
	assert.Equal(t, []Animation{AnimationBreathing, AnimationCoughing, AnimationFatigue}, cycle)
}

func TestCycleForAQIFiltersRespiratory(t *testing.T) {
	cycle := CycleForAQI(150, AnimationOptions{DisableStressVisuals: true})

	assert.Equal(t, []Animation{AnimationFatigue}, cycle)
}

func TestRecommendAnimationDeterministic(t *testing.T) {
	a := RecommendAnimation(envdata.Float(120), AnimationOptions{})
	b := RecommendAnimation(envdata.Float(120), AnimationOptions{})
	assert.Equal(t, a, b)
}
