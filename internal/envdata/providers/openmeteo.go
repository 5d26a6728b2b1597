package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/dnazarov/avatar-twin-engine/internal/envdata"
	"github.com/sony/gobreaker"
)

// OpenMeteoAirProvider implements envdata.AirQualityProvider for the
// Open-Meteo air quality API. No API key is required, but the location must
// carry coordinates.
type OpenMeteoAirProvider struct {
	name    string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewOpenMeteoAirProvider(client *http.Client) *OpenMeteoAirProvider {
	return &OpenMeteoAirProvider{
		name:    "openmeteo-air",
		baseURL: "https://air-quality-api.open-meteo.com/v1/air-quality",
		httpCfg: defaultHTTPConfig(client),
		circuit: newCircuit("openmeteo-air"),
	}
}

func (p *OpenMeteoAirProvider) Name() string {
	return p.name
}

func (p *OpenMeteoAirProvider) Fetch(ctx context.Context, loc envdata.Location) (envdata.AirReading, error) {
	if loc.Lat == nil || loc.Lon == nil {
		return envdata.AirReading{}, fmt.Errorf("openmeteo requires latitude and longitude")
	}

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("latitude", fmt.Sprintf("%f", *loc.Lat))
		values.Set("longitude", fmt.Sprintf("%f", *loc.Lon))
		values.Set("current", "us_aqi,pm2_5,pm10,ozone,nitrogen_dioxide,uv_index")

		u := fmt.Sprintf("%s?%s", p.baseURL, values.Encode())
		req, err := http.NewRequest(http.MethodGet, u, nil)
		if err != nil {
			return nil, err
		}
		return req, nil
	}

	resp, err := doRequestWithResilience(ctx, p.httpCfg, p.circuit, buildRequest)
	if err != nil {
		return envdata.AirReading{}, err
	}
	defer resp.Body.Close()

	var payload struct {
		Current struct {
			Time            string   `json:"time"`
			USAQI           *float64 `json:"us_aqi"`
			PM25            *float64 `json:"pm2_5"`
			PM10            *float64 `json:"pm10"`
			Ozone           *float64 `json:"ozone"`
			NitrogenDioxide *float64 `json:"nitrogen_dioxide"`
			UVIndex         *float64 `json:"uv_index"`
		} `json:"current"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return envdata.AirReading{}, err
	}

	// Open-Meteo timestamps omit the zone suffix.
	ts, err := time.Parse("2006-01-02T15:04", payload.Current.Time)
	if err != nil {
		ts = time.Now().UTC()
	} else {
		ts = ts.UTC()
	}

	return envdata.AirReading{
		ProviderName: p.name,
		Timestamp:    ts,
		Air: envdata.AirQuality{
			AQI:  payload.Current.USAQI,
			PM25: payload.Current.PM25,
			PM10: payload.Current.PM10,
			O3:   payload.Current.Ozone,
			NO2:  payload.Current.NitrogenDioxide,
		},
		UVIndex: payload.Current.UVIndex,
	}, nil
}
