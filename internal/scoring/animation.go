package scoring

import "fmt"

// Animation identifies a clip in the avatar's animation set.
type Animation string

const (
	AnimationIdle      Animation = "idle"
	AnimationBreathing Animation = "breathing"
	AnimationCoughing  Animation = "coughing"
	AnimationFatigue   Animation = "fatigue"
)

// AQI thresholds for animation selection. Between the two the air counts as
// moderate and a single breathing clip is recommended.
const (
	healthyAQIMax   = 50
	unhealthyAQIMin = 101
)

// AnimationOptions carries caller policy into the recommender. Zero value
// means automatic selection with stress visuals enabled.
type AnimationOptions struct {
	// ManualOverride suppresses automatic recommendations; the caller owns
	// the currently playing animation.
	ManualOverride bool

	// DisableStressVisuals filters respiratory clips out of recommendations
	// and cycle lists.
	DisableStressVisuals bool
}

// AnimationRecommendation is the recommender's output. An empty Animation
// means no automatic clip should be played.
type AnimationRecommendation struct {
	Animation   Animation `json:"animation,omitempty"`
	Reason      string    `json:"reason"`
	IsAutomatic bool      `json:"isAutomatic"`
}

// RecommendAnimation picks the avatar animation for the given AQI. The
// recommender is pure: override state and cycle timing are caller concerns.
func RecommendAnimation(aqi *float64, opts AnimationOptions) AnimationRecommendation {
	if opts.ManualOverride {
		return AnimationRecommendation{
			Reason:      "manual animation override active",
			IsAutomatic: false,
		}
	}

	if aqi == nil {
		return AnimationRecommendation{
			Animation:   AnimationIdle,
			Reason:      "no air quality data",
			IsAutomatic: true,
		}
	}

	switch {
	case *aqi <= healthyAQIMax:
		return AnimationRecommendation{
			Animation:   AnimationIdle,
			Reason:      fmt.Sprintf("air quality is good (AQI %.0f)", *aqi),
			IsAutomatic: true,
		}
	case *aqi < unhealthyAQIMin:
		anim := AnimationBreathing
		if opts.DisableStressVisuals {
			anim = AnimationIdle
		}
		return AnimationRecommendation{
			Animation:   anim,
			Reason:      fmt.Sprintf("air quality is moderate (AQI %.0f)", *aqi),
			IsAutomatic: true,
		}
	default:
		cycle := CycleForAQI(*aqi, opts)
		return AnimationRecommendation{
			Animation:   cycle[0],
			Reason:      fmt.Sprintf("air quality is unhealthy (AQI %.0f)", *aqi),
			IsAutomatic: true,
		}
	}
}

// CycleForAQI returns the list of distress animations the caller should
// rotate through while the AQI stays in the unhealthy range. Below that
// range there is nothing to cycle and the result is nil.
func CycleForAQI(aqi float64, opts AnimationOptions) []Animation {
	if aqi < unhealthyAQIMin {
		return nil
	}

	cycle := []Animation{AnimationBreathing, AnimationCoughing, AnimationFatigue}
	if opts.DisableStressVisuals {
		filtered := cycle[:0]
		for _, a := range cycle {
			if !isRespiratory(a) {
				filtered = append(filtered, a)
			}
		}
		cycle = filtered
	}

	if len(cycle) == 0 {
		return []Animation{AnimationIdle}
	}
	return cycle
}

func isRespiratory(a Animation) bool {
	return a == AnimationBreathing || a == AnimationCoughing
}
