package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelvins/geocoder"

	"github.com/dnazarov/avatar-twin-engine/internal/envdata"
)

type AppConfig struct {
	// Provider credentials. Open-Meteo needs none.
	WAQIToken    string
	TomTomAPIKey string

	// Google API key for geocoding locations that lack coordinates.
	GeocoderAPIKey string

	// FetchInterval controls how often we refresh data for each location.
	FetchInterval time.Duration

	// Locations to track.
	Locations []envdata.Location

	// Store selection and retention.
	StoreBackend    string // "memory" or "redis"
	RedisAddr       string
	StoreMaxHistory int           // max number of snapshots per location (0 = unlimited)
	StoreMaxAge     time.Duration // max age of snapshots (0 = unlimited)

	// Optional MQTT push of computed avatar states.
	MQTTBroker      string
	MQTTClientID    string
	MQTTTopicPrefix string

	Port string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.WAQIToken = os.Getenv("WAQI_TOKEN")
	cfg.TomTomAPIKey = os.Getenv("TOMTOM_API_KEY")
	cfg.GeocoderAPIKey = os.Getenv("GEOCODER_API_KEY")

	// Refresh interval: default 15 minutes.
	intervalStr := getenvDefault("FETCH_INTERVAL", "15m")
	interval, err := time.ParseDuration(intervalStr)
	if err != nil {
		return nil, fmt.Errorf("invalid FETCH_INTERVAL: %w", err)
	}
	cfg.FetchInterval = interval

	// Store selection and retention.
	cfg.StoreBackend = getenvDefault("STORE_BACKEND", "memory")
	if cfg.StoreBackend != "memory" && cfg.StoreBackend != "redis" {
		return nil, fmt.Errorf("invalid STORE_BACKEND %q: must be memory or redis", cfg.StoreBackend)
	}
	cfg.RedisAddr = getenvDefault("REDIS_ADDR", "localhost:6379")
	cfg.StoreMaxHistory = getenvInt("STORE_MAX_HISTORY", 96) // roughly 24h at 15-minute intervals

	maxAgeStr := getenvDefault("STORE_MAX_AGE", "24h")
	maxAge, err := time.ParseDuration(maxAgeStr)
	if err != nil {
		return nil, fmt.Errorf("invalid STORE_MAX_AGE: %w", err)
	}
	cfg.StoreMaxAge = maxAge

	cfg.MQTTBroker = os.Getenv("MQTT_BROKER")
	cfg.MQTTClientID = getenvDefault("MQTT_CLIENT_ID", "avatar-twin-engine")
	cfg.MQTTTopicPrefix = getenvDefault("MQTT_TOPIC_PREFIX", "avatar")

	cfg.Port = getenvDefault("PORT", "8080")

	locs, err := loadLocations(cfg.GeocoderAPIKey)
	if err != nil {
		return nil, err
	}
	cfg.Locations = locs

	return cfg, nil
}

// loadLocations parses the comma-separated city/country lists and resolves
// coordinates, either from AVATAR_LOCATION_LAT/LON or by geocoding.
func loadLocations(geocoderKey string) ([]envdata.Location, error) {
	city := os.Getenv("AVATAR_LOCATION_CITY")
	country := os.Getenv("AVATAR_LOCATION_COUNTRY")
	cities := strings.Split(city, ",")
	countries := strings.Split(country, ",")
	if len(cities) != len(countries) {
		return nil, fmt.Errorf("number of cities and countries must be the same")
	}

	lats := splitFloats(os.Getenv("AVATAR_LOCATION_LAT"))
	lons := splitFloats(os.Getenv("AVATAR_LOCATION_LON"))

	var locs []envdata.Location
	for i := range cities {
		loc := envdata.Location{
			City:    strings.TrimSpace(cities[i]),
			Country: strings.TrimSpace(countries[i]),
		}

		if i < len(lats) && i < len(lons) && lats[i] != nil && lons[i] != nil {
			loc.Lat = lats[i]
			loc.Lon = lons[i]
		} else if geocoderKey != "" {
			lat, lon, err := geocode(geocoderKey, loc)
			if err != nil {
				log.Printf("INFO: geocoding failed for %s: %v; coordinate-based providers will skip it", loc.Key(), err)
			} else {
				loc.Lat = &lat
				loc.Lon = &lon
			}
		}

		locs = append(locs, loc)
	}

	return locs, nil
}

func geocode(apiKey string, loc envdata.Location) (float64, float64, error) {
	geocoder.ApiKey = apiKey

	result, err := geocoder.Geocoding(geocoder.Address{
		City:    loc.City,
		Country: loc.Country,
	})
	if err != nil {
		return 0, 0, err
	}
	return result.Latitude, result.Longitude, nil
}

func splitFloats(s string) []*float64 {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]*float64, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err == nil {
			out[i] = &v
		}
	}
	return out
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}
