package envdata

import "time"

// AggregateAirReadings combines multiple provider readings into a single
// Snapshot. Each field is averaged over the providers that reported it, so a
// provider missing PM10 does not drag the PM10 average toward zero.
func AggregateAirReadings(loc Location, readings []AirReading) Snapshot {
	if len(readings) == 0 {
		return Snapshot{
			Location:  loc,
			Timestamp: time.Now().UTC(),
		}
	}

	var (
		aqi, pm25, pm10, o3, no2, uv fieldAvg
		newestTS                     time.Time
	)

	providers := make([]ProviderContribution, 0, len(readings))

	for _, r := range readings {
		aqi.add(r.Air.AQI)
		pm25.add(r.Air.PM25)
		pm10.add(r.Air.PM10)
		o3.add(r.Air.O3)
		no2.add(r.Air.NO2)
		uv.add(r.UVIndex)

		if r.Timestamp.After(newestTS) {
			newestTS = r.Timestamp
		}

		providers = append(providers, ProviderContribution{
			ProviderName: r.ProviderName,
			Timestamp:    r.Timestamp,
		})
	}

	if newestTS.IsZero() {
		newestTS = time.Now().UTC()
	}

	snapshot := Snapshot{
		Location:  loc,
		Timestamp: newestTS,
		Air: AirQuality{
			AQI:  aqi.mean(),
			PM25: pm25.mean(),
			PM10: pm10.mean(),
			O3:   o3.mean(),
			NO2:  no2.mean(),
		},
		Providers: providers,
	}

	if m := uv.mean(); m != nil {
		snapshot.UV = &UVReading{Index: m}
	}

	return snapshot
}

// fieldAvg accumulates an optional field across readings.
type fieldAvg struct {
	sum float64
	n   int
}

func (f *fieldAvg) add(v *float64) {
	if v == nil {
		return
	}
	f.sum += *v
	f.n++
}

func (f *fieldAvg) mean() *float64 {
	if f.n == 0 {
		return nil
	}
	m := f.sum / float64(f.n)
	return &m
}
