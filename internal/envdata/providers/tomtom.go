package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/dnazarov/avatar-twin-engine/internal/envdata"
	"github.com/sony/gobreaker"
)

// TomTomTrafficProvider implements envdata.TrafficProvider using the TomTom
// flow segment API. The congestion factor is the ratio of current travel
// time to free-flow travel time on the segment nearest the location.
type TomTomTrafficProvider struct {
	name    string
	apiKey  string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewTomTomTrafficProvider(client *http.Client, apiKey string) *TomTomTrafficProvider {
	return &TomTomTrafficProvider{
		name:    "tomtom",
		apiKey:  apiKey,
		baseURL: "https://api.tomtom.com/traffic/services/4/flowSegmentData/absolute/10/json",
		httpCfg: defaultHTTPConfig(client),
		circuit: newCircuit("tomtom"),
	}
}

func (p *TomTomTrafficProvider) Name() string {
	return p.name
}

func (p *TomTomTrafficProvider) FetchTraffic(ctx context.Context, loc envdata.Location) (envdata.TrafficReading, error) {
	if p.apiKey == "" {
		return envdata.TrafficReading{}, fmt.Errorf("tomtom api key is not configured")
	}
	if loc.Lat == nil || loc.Lon == nil {
		return envdata.TrafficReading{}, fmt.Errorf("tomtom requires latitude and longitude")
	}

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("key", p.apiKey)
		values.Set("point", fmt.Sprintf("%f,%f", *loc.Lat, *loc.Lon))

		u := fmt.Sprintf("%s?%s", p.baseURL, values.Encode())
		req, err := http.NewRequest(http.MethodGet, u, nil)
		if err != nil {
			return nil, err
		}
		return req, nil
	}

	resp, err := doRequestWithResilience(ctx, p.httpCfg, p.circuit, buildRequest)
	if err != nil {
		return envdata.TrafficReading{}, err
	}
	defer resp.Body.Close()

	var payload struct {
		FlowSegmentData struct {
			CurrentTravelTime  float64 `json:"currentTravelTime"`
			FreeFlowTravelTime float64 `json:"freeFlowTravelTime"`
		} `json:"flowSegmentData"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return envdata.TrafficReading{}, err
	}

	if payload.FlowSegmentData.FreeFlowTravelTime <= 0 {
		return envdata.TrafficReading{}, fmt.Errorf("tomtom returned no usable flow data")
	}

	factor := payload.FlowSegmentData.CurrentTravelTime / payload.FlowSegmentData.FreeFlowTravelTime

	return envdata.TrafficReading{
		StressLevel:      envdata.StressFromCongestion(factor),
		CongestionFactor: factor,
	}, nil
}
