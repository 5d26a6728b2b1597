package scoring

// Classification is the categorical air-quality result for an AQI value.
type Classification struct {
	Classification string `json:"classification"`
	ColorCode      string `json:"colorCode"`
	HealthAdvice   string `json:"healthAdvice"`
	Level          int    `json:"level"`
}

type aqiBand struct {
	upper  float64
	name   string
	color  string
	advice string
	level  int
}

// AQI bands with EPA severity colors. Upper bounds are inclusive; the last
// band is open-ended.
var aqiBands = []aqiBand{
	{50, "Good", "#00E400", "Air quality is satisfactory; enjoy outdoor activities.", 1},
	{100, "Moderate", "#FFFF00", "Unusually sensitive people should consider limiting prolonged outdoor exertion.", 2},
	{150, "Unhealthy for Sensitive Groups", "#FF7E00", "Sensitive groups should reduce prolonged or heavy outdoor exertion.", 3},
	{200, "Unhealthy", "#FF0000", "Everyone should reduce prolonged outdoor exertion.", 4},
	{300, "Very Unhealthy", "#8F3F97", "Avoid outdoor activity; move workouts indoors.", 5},
}

var hazardousBand = aqiBand{0, "Hazardous", "#7E0023", "Stay indoors and keep activity levels low.", 6}

// Classify maps an AQI value onto exactly one severity band. Any finite
// input resolves to a band; callers are expected to treat missing data
// upstream rather than passing NaN.
func Classify(aqi float64) Classification {
	for _, b := range aqiBands {
		if aqi <= b.upper {
			return classification(b)
		}
	}
	return classification(hazardousBand)
}

func classification(b aqiBand) Classification {
	return Classification{
		Classification: b.name,
		ColorCode:      b.color,
		HealthAdvice:   b.advice,
		Level:          b.level,
	}
}
