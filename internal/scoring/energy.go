package scoring

import "math"

// CommuteMode is how the user typically gets to work.
type CommuteMode string

const (
	CommuteWalk    CommuteMode = "walk"
	CommuteBike    CommuteMode = "bike"
	CommuteTransit CommuteMode = "transit"
	CommuteWFH     CommuteMode = "wfh"
	CommuteCar     CommuteMode = "car"
)

// EnergyState is the coarse energy classification used to pace animations.
type EnergyState string

const (
	EnergyLow      EnergyState = "low"
	EnergyModerate EnergyState = "moderate"
	EnergyHigh     EnergyState = "high"
)

// EnergyResult is the composite energy assessment from steps and sleep.
type EnergyResult struct {
	Energy     float64     `json:"energy"` // 0-1
	State      EnergyState `json:"state"`
	SpeedScale float64     `json:"speedScale"`
	Message    string      `json:"message"`
	SleepHours float64     `json:"sleepHours"`
}

// DeriveEnergy maps sleep duration to a 0-100 energy score. Missing data
// yields the neutral 50.
func DeriveEnergy(sleepHours *float64) float64 {
	if sleepHours == nil {
		return 50
	}
	switch h := *sleepHours; {
	case h >= 8:
		return 90
	case h >= 7:
		return 80
	case h >= 6:
		return 65
	case h >= 4:
		return 45
	default:
		return 25
	}
}

// DeriveLung maps AQI to a 0-100 lung health score. Missing data yields the
// neutral 60.
func DeriveLung(aqi *float64) float64 {
	if aqi == nil {
		return 60
	}
	switch a := *aqi; {
	case a <= 50:
		return 90
	case a <= 100:
		return 75
	case a <= 150:
		return 60
	case a <= 200:
		return 45
	case a <= 300:
		return 30
	default:
		return 15
	}
}

// DeriveSkinGlow scores skin glow from sleep adequacy and commute mode,
// starting from a neutral 50 and clamped to [10, 95].
func DeriveSkinGlow(sleepHours *float64, commute CommuteMode) float64 {
	score := 50.0

	if sleepHours != nil {
		switch h := *sleepHours; {
		case h >= 8:
			score += 30
		case h >= 7:
			score += 20
		case h >= 6:
			score += 10
		case h < 5:
			score -= 10
		}
	}

	switch commute {
	case CommuteWalk, CommuteBike:
		score += 10
	case CommuteWFH:
		score += 8
	case CommuteTransit:
		score += 5
	case CommuteCar:
		score -= 5
	}

	return clamp(score, 10, 95)
}

// ComputeEnergy combines step count and sleep into a single 0-1 energy level
// with a coarse state, an animation speed multiplier and a short advisory
// message. Sleep is weighted 60/40 over steps; 8 hours is the optimum.
func ComputeEnergy(steps, sleepMinutes int) EnergyResult {
	sleepHours := float64(sleepMinutes) / 60

	h := clamp(sleepHours, 4, 9.5)
	sleepScore := clamp(1-math.Abs(h-8)/4, 0, 1)

	st := clamp(float64(steps), 3000, 10000)
	stepsScore := (st - 3000) / 7000

	energy := clamp(0.6*sleepScore+0.4*stepsScore, 0, 1)

	var state EnergyState
	switch {
	case energy < 0.4:
		state = EnergyLow
	case energy > 0.75:
		state = EnergyHigh
	default:
		state = EnergyModerate
	}

	return EnergyResult{
		Energy:     energy,
		State:      state,
		SpeedScale: speedScale(state),
		Message:    energyMessage(state, sleepMinutes > 0),
		SleepHours: sleepHours,
	}
}

func speedScale(state EnergyState) float64 {
	switch state {
	case EnergyLow:
		return 0.85
	case EnergyHigh:
		return 1.15
	default:
		return 1.0
	}
}

// energyMessage picks the advisory line. Messages only mention sleep when
// sleep data was actually reported.
func energyMessage(state EnergyState, hasSleep bool) string {
	switch state {
	case EnergyHigh:
		return "Great energy today!"
	case EnergyLow:
		if hasSleep {
			return "Short on sleep - take it easy today."
		}
		return "Energy is running low today."
	default:
		if hasSleep {
			return "Steady energy - a little more sleep would top it up."
		}
		return "Steady energy today."
	}
}
