// Package openmeteo fetches current weather from Open-Meteo (no API key).
package openmeteo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// DefaultBaseURL is the Open-Meteo forecast endpoint.
const DefaultBaseURL = "https://api.open-meteo.com/v1/forecast"

var (
	// ErrUnknownRegion is returned for regions outside USRegions.
	ErrUnknownRegion = errors.New("Unknown region")
	// ErrNoCurrentWeather is returned when the response lacks current_weather.
	ErrNoCurrentWeather = errors.New("Weather service unavailable")
)

// Client queries Open-Meteo.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client. An empty baseURL selects DefaultBaseURL.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{baseURL: baseURL, http: &http.Client{Timeout: 10 * time.Second}}
}

// CurrentWeather returns the current_weather object for a US region verbatim.
func (c *Client) CurrentWeather(ctx context.Context, region string) (map[string]any, error) {
	coords, ok := USRegions[region]
	if !ok {
		return nil, ErrUnknownRegion
	}

	q := url.Values{}
	q.Set("latitude", strconv.FormatFloat(coords.Lat, 'f', -1, 64))
	q.Set("longitude", strconv.FormatFloat(coords.Lon, 'f', -1, 64))
	q.Set("current_weather", "true")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("Open-Meteo request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("Open-Meteo API error: status %d", resp.StatusCode)
	}

	var body struct {
		CurrentWeather map[string]any `json:"current_weather"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("Open-Meteo response decode failed: %w", err)
	}
	if body.CurrentWeather == nil {
		return nil, ErrNoCurrentWeather
	}
	return body.CurrentWeather, nil
}
