package travel

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/lumafilm/locsched/internal/pkg/logger"
)

// Coordinates is a decimal-degree latitude/longitude pair.
type Coordinates struct {
	Lat float64
	Lon float64
}

// Geocoder resolves a free-text address to coordinates, or nil when the
// address cannot be resolved for any reason.
type Geocoder interface {
	Geocode(ctx context.Context, address string) *Coordinates
}

// NominatimGeocoder looks addresses up against a Nominatim-compatible search
// endpoint. One request per call, no retries, no caching; the usage policy
// requires a fixed identifying User-Agent.
type NominatimGeocoder struct {
	baseURL   string
	userAgent string
	client    *http.Client
}

func NewNominatimGeocoder(baseURL, userAgent string) *NominatimGeocoder {
	return &NominatimGeocoder{
		baseURL:   baseURL,
		userAgent: userAgent,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type nominatimResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// Geocode returns the first match for the address, or nil when the service
// returns no matches or the request fails. Failure is terminal for this call;
// callers must not expect a retry to be attempted here.
func (g *NominatimGeocoder) Geocode(ctx context.Context, address string) *Coordinates {
	query := url.Values{}
	query.Set("q", address)
	query.Set("format", "json")
	query.Set("limit", "1")

	req, err := http.NewRequestWithContext(ctx, "GET", g.baseURL+"/search?"+query.Encode(), nil)
	if err != nil {
		return nil
	}
	req.Header.Set("User-Agent", g.userAgent)

	resp, err := g.client.Do(req)
	if err != nil {
		logger.Warn("geocoding request failed for %q: %v", address, err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Warn("geocoding returned status %d for %q", resp.StatusCode, address)
		return nil
	}

	var results []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		logger.Warn("geocoding returned malformed body for %q: %v", address, err)
		return nil
	}

	if len(results) == 0 {
		return nil
	}

	lat, latErr := strconv.ParseFloat(results[0].Lat, 64)
	lon, lonErr := strconv.ParseFloat(results[0].Lon, 64)
	if latErr != nil || lonErr != nil {
		return nil
	}

	return &Coordinates{Lat: lat, Lon: lon}
}
