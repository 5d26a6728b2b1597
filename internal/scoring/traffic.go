package scoring

import "github.com/dnazarov/avatar-twin-engine/internal/envdata"

// Expression identifies a facial expression preset on the avatar.
type Expression string

const (
	ExpressionNeutral   Expression = "neutral"
	ExpressionConcerned Expression = "concerned"
	ExpressionTired     Expression = "tired"
	ExpressionExhausted Expression = "exhausted"
)

// TrafficStressEffect is the visual mapping of commute stress.
type TrafficStressEffect struct {
	StressLevel      envdata.StressLevel `json:"stressLevel"`
	Intensity        float64             `json:"intensity"`
	ShouldShowIcon   bool                `json:"shouldShowIcon"`
	FacialExpression Expression          `json:"facialExpression"`
	CongestionFactor float64             `json:"congestionFactor"`
}

// StressEffects maps a traffic reading to stress visuals. When the feature
// is disabled or there is no data, the result is inert and the fallback
// expression passes through unchanged. With visuals disabled the stress
// level and icon are still reported but the face and intensity stay at
// their fallback values.
func StressEffects(traffic *envdata.TrafficReading, enabled, visualsEnabled bool, fallback Expression) TrafficStressEffect {
	if !enabled || traffic == nil {
		return TrafficStressEffect{
			StressLevel:      envdata.StressNone,
			FacialExpression: fallback,
		}
	}

	effect := TrafficStressEffect{
		StressLevel:      traffic.StressLevel,
		FacialExpression: fallback,
		CongestionFactor: traffic.CongestionFactor,
	}

	if traffic.StressLevel == envdata.StressNone {
		return effect
	}
	effect.ShouldShowIcon = true

	if visualsEnabled {
		switch traffic.StressLevel {
		case envdata.StressMild:
			effect.Intensity = 0.3
			effect.FacialExpression = ExpressionConcerned
		case envdata.StressModerate:
			effect.Intensity = 0.6
			effect.FacialExpression = ExpressionTired
		case envdata.StressHigh:
			effect.Intensity = 1.0
			effect.FacialExpression = ExpressionExhausted
		}
	}

	return effect
}
