// Package geocodeadapter resolves addresses through a Nominatim-compatible
// geocoding API.
package geocodeadapter

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	domainerrors "mercurio/contexts/commerce-operations/delivery-service/domain/errors"
)

const (
	defaultTimeout = 10 * time.Second
	userAgent      = "mercurio-delivery/1.0"
)

type NominatimGeocoder struct {
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

func NewNominatimGeocoder(baseURL string, logger *slog.Logger) *NominatimGeocoder {
	if logger == nil {
		logger = slog.Default()
	}
	return &NominatimGeocoder{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: defaultTimeout},
		logger:  logger,
	}
}

type nominatimResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// Geocode resolves "address, city, country" to coordinates. An empty
// address queries "city, country" only.
func (g *NominatimGeocoder) Geocode(ctx context.Context, address, city, country string) (float64, float64, error) {
	parts := make([]string, 0, 3)
	for _, part := range []string{address, city, country} {
		if strings.TrimSpace(part) != "" {
			parts = append(parts, strings.TrimSpace(part))
		}
	}
	query := strings.Join(parts, ", ")
	if query == "" {
		return 0, 0, fmt.Errorf("%w: empty query", domainerrors.ErrGeocodingFailed)
	}

	endpoint := fmt.Sprintf("%s/search?%s", g.baseURL, url.Values{
		"q":      {query},
		"format": {"json"},
		"limit":  {"1"},
	}.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", domainerrors.ErrGeocodingFailed, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := g.client.Do(req)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", domainerrors.ErrGeocodingFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, 0, fmt.Errorf("%w: geocoding api status %d", domainerrors.ErrGeocodingFailed, resp.StatusCode)
	}

	var results []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return 0, 0, fmt.Errorf("%w: invalid response: %v", domainerrors.ErrGeocodingFailed, err)
	}
	if len(results) == 0 {
		return 0, 0, fmt.Errorf("%w: no results for %q", domainerrors.ErrGeocodingFailed, query)
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: invalid latitude %q", domainerrors.ErrGeocodingFailed, results[0].Lat)
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: invalid longitude %q", domainerrors.ErrGeocodingFailed, results[0].Lon)
	}

	g.logger.Debug("address geocoded",
		"event", "geocode_resolved",
		"module", "commerce-operations/delivery-service",
		"layer", "adapter",
		"query", query,
		"latitude", lat,
		"longitude", lon,
	)
	return lat, lon, nil
}
