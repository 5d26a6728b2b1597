package avatar

import (
	"time"

	"github.com/dnazarov/avatar-twin-engine/internal/envdata"
	"github.com/dnazarov/avatar-twin-engine/internal/scoring"
)

// Profile carries the caller-supplied personal fields that feed the scoring
// engine. Pointer fields are optional; calculators fall back to their
// documented neutral defaults when data is missing.
type Profile struct {
	SleepHours    *float64
	SleepMinutes  int
	Steps         int
	CommuteMode   scoring.CommuteMode
	BaseSkinTone  float64 // -1 darkest .. 1 lightest
	ExposureHours *float64

	ManualAnimation      bool
	DisableStressVisuals bool
}

// HealthScores are the three independent 0-100 metric scores.
type HealthScores struct {
	Energy   float64 `json:"energy"`
	Lung     float64 `json:"lung"`
	SkinGlow float64 `json:"skinGlow"`
}

// State is the full set of visual directives for rendering the avatar. It
// is computed fresh from the latest snapshot on every request and never
// persisted.
type State struct {
	Location  envdata.Location `json:"location"`
	Timestamp time.Time        `json:"timestamp"`

	AirQuality     *scoring.Classification         `json:"airQuality,omitempty"`
	Smog           scoring.SmogConfig              `json:"smog"`
	Skin           scoring.CombinedSkinEffect      `json:"skin"`
	Animation      scoring.AnimationRecommendation `json:"animation"`
	AnimationCycle []scoring.Animation             `json:"animationCycle,omitempty"`
	Scores         HealthScores                    `json:"scores"`
	Energy         scoring.EnergyResult            `json:"energy"`
	Traffic        scoring.TrafficStressEffect     `json:"traffic"`
}

// BuildState runs every calculator against the snapshot and profile.
func BuildState(snapshot envdata.Snapshot, profile Profile) State {
	animOpts := scoring.AnimationOptions{
		ManualOverride:       profile.ManualAnimation,
		DisableStressVisuals: profile.DisableStressVisuals,
	}

	var uvIndex *float64
	if snapshot.UV != nil {
		uvIndex = snapshot.UV.Index
	}

	state := State{
		Location:  snapshot.Location,
		Timestamp: snapshot.Timestamp,
		Smog:      scoring.SmogEffects(snapshot.Air),
		Skin:      scoring.CombinedSkinEffects(snapshot.Air, uvIndex, profile.ExposureHours, profile.BaseSkinTone),
		Animation: scoring.RecommendAnimation(snapshot.Air.AQI, animOpts),
		Scores: HealthScores{
			Energy:   scoring.DeriveEnergy(profile.SleepHours),
			Lung:     scoring.DeriveLung(snapshot.Air.AQI),
			SkinGlow: scoring.DeriveSkinGlow(profile.SleepHours, profile.CommuteMode),
		},
		Energy:  scoring.ComputeEnergy(profile.Steps, profile.SleepMinutes),
		Traffic: scoring.StressEffects(snapshot.Traffic, true, !profile.DisableStressVisuals, scoring.ExpressionNeutral),
	}

	if snapshot.Air.AQI != nil {
		c := scoring.Classify(*snapshot.Air.AQI)
		state.AirQuality = &c
		state.AnimationCycle = scoring.CycleForAQI(*snapshot.Air.AQI, animOpts)
	}

	return state
}
