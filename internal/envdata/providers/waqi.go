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

// WAQIProvider implements envdata.AirQualityProvider for the World Air
// Quality Index project (aqicn.org). Token-authenticated; accepts either a
// city name or coordinates.
type WAQIProvider struct {
	name    string
	token   string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewWAQIProvider(client *http.Client, token string) *WAQIProvider {
	return &WAQIProvider{
		name:    "waqi",
		token:   token,
		baseURL: "https://api.waqi.info/feed",
		httpCfg: defaultHTTPConfig(client),
		circuit: newCircuit("waqi"),
	}
}

func (p *WAQIProvider) Name() string {
	return p.name
}

func (p *WAQIProvider) Fetch(ctx context.Context, loc envdata.Location) (envdata.AirReading, error) {
	if p.token == "" {
		return envdata.AirReading{}, fmt.Errorf("waqi token is not configured")
	}

	buildRequest := func() (*http.Request, error) {
		// WAQI addresses stations by geo:lat;lon or by city name.
		feed := url.PathEscape(loc.City)
		if loc.Lat != nil && loc.Lon != nil {
			feed = fmt.Sprintf("geo:%f;%f", *loc.Lat, *loc.Lon)
		}

		values := url.Values{}
		values.Set("token", p.token)

		u := fmt.Sprintf("%s/%s/?%s", p.baseURL, feed, values.Encode())
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
		Status string `json:"status"`
		Data   struct {
			AQI  *float64 `json:"aqi"`
			Time struct {
				ISO string `json:"iso"`
			} `json:"time"`
			IAQI struct {
				PM25 *struct {
					V float64 `json:"v"`
				} `json:"pm25"`
				PM10 *struct {
					V float64 `json:"v"`
				} `json:"pm10"`
				O3 *struct {
					V float64 `json:"v"`
				} `json:"o3"`
				NO2 *struct {
					V float64 `json:"v"`
				} `json:"no2"`
			} `json:"iaqi"`
		} `json:"data"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return envdata.AirReading{}, err
	}
	if payload.Status != "ok" {
		return envdata.AirReading{}, fmt.Errorf("waqi returned status %q", payload.Status)
	}

	ts, err := time.Parse(time.RFC3339, payload.Data.Time.ISO)
	if err != nil {
		ts = time.Now().UTC()
	} else {
		ts = ts.UTC()
	}

	air := envdata.AirQuality{AQI: payload.Data.AQI}
	if v := payload.Data.IAQI.PM25; v != nil {
		air.PM25 = envdata.Float(v.V)
	}
	if v := payload.Data.IAQI.PM10; v != nil {
		air.PM10 = envdata.Float(v.V)
	}
	if v := payload.Data.IAQI.O3; v != nil {
		air.O3 = envdata.Float(v.V)
	}
	if v := payload.Data.IAQI.NO2; v != nil {
		air.NO2 = envdata.Float(v.V)
	}

	return envdata.AirReading{
		ProviderName: p.name,
		Timestamp:    ts,
		Air:          air,
	}, nil
}
