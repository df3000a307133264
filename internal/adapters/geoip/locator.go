// Package geoip resolves an approximate user position through an HTTP
// lookup service. It stands in for the browser's one-shot geolocation
// request; denial and absence are both soft conditions.
package geoip

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/mindflow/sanctuary/internal/domain"
)

// Locator implements domain.Geolocator against a JSON endpoint returning
// {"latitude": ..., "longitude": ...}.
type Locator struct {
	baseURL    string
	httpClient *http.Client
}

func NewLocator(baseURL string) *Locator {
	return &Locator{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

type positionResponse struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

func (l *Locator) Locate(ctx context.Context) (domain.Coordinates, error) {
	if l.baseURL == "" {
		// No lookup capability configured; callers proceed without location.
		return domain.Coordinates{}, domain.ErrPermissionDenied
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.baseURL, nil)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("geoip: creating request: %w", err)
	}

	res, err := l.httpClient.Do(req)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("geoip: position request: %w", err)
	}
	defer func() {
		_ = res.Body.Close()
	}()

	if res.StatusCode == http.StatusForbidden || res.StatusCode == http.StatusUnauthorized {
		return domain.Coordinates{}, domain.ErrPermissionDenied
	}
	if res.StatusCode != http.StatusOK {
		return domain.Coordinates{}, fmt.Errorf("geoip: position request returned status %d", res.StatusCode)
	}

	var pos positionResponse
	if err := json.NewDecoder(res.Body).Decode(&pos); err != nil {
		return domain.Coordinates{}, fmt.Errorf("geoip: decoding position: %w", err)
	}
	if pos.Latitude == nil || pos.Longitude == nil {
		return domain.Coordinates{}, fmt.Errorf("geoip: position response missing coordinates")
	}

	return domain.Coordinates{Latitude: *pos.Latitude, Longitude: *pos.Longitude}, nil
}
