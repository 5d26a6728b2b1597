package scoring

import "math"

// bandSegment is one segment of an ordered piecewise-linear table. A value
// falling inside the segment interpolates every output between from[i] and
// to[i] using the band-local factor (v-lower)/(upper-lower).
type bandSegment struct {
	upper float64
	from  []float64
	to    []float64
}

// bandTable maps a driving value onto N interpolated outputs through an
// ordered list of segments. The final segment is open-ended: its factor is
// (v-lower)/openWidth capped at 1, so outputs approach their "to" values
// asymptotically instead of growing without bound.
type bandTable struct {
	openWidth float64
	segments  []bandSegment
}

// eval returns the interpolated outputs and the index of the segment v fell
// into. Values below zero clamp to the first segment's lower edge.
func (t bandTable) eval(v float64) ([]float64, int) {
	lower := 0.0
	for i, seg := range t.segments {
		last := i == len(t.segments)-1
		if v <= seg.upper || last {
			var f float64
			if last {
				f = clamp((v-lower)/t.openWidth, 0, 1)
			} else {
				f = bandFactor(v, lower, seg.upper)
			}
			out := make([]float64, len(seg.from))
			for j := range seg.from {
				out[j] = lerp(f, seg.from[j], seg.to[j])
			}
			return out, i
		}
		lower = seg.upper
	}
	return nil, -1
}

// bandFactor returns the position of v inside [lower, upper] as a factor in
// [0, 1].
func bandFactor(v, lower, upper float64) float64 {
	if upper <= lower {
		return 0
	}
	return clamp((v-lower)/(upper-lower), 0, 1)
}

func lerp(factor, from, to float64) float64 {
	return from + (to-from)*factor
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}
