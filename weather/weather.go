// Package weather wraps the OpenWeather current-conditions endpoint. Callers
// treat every failure as "no observation" and fall back to defaults.
package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const defaultBaseURL = "https://api.openweathermap.org/data/2.5/weather"

var ErrNotConfigured = errors.New("weather api key is not configured")

type Client struct {
	BaseURL string

	apiKey string
	client *http.Client
}

func NewClient(apiKey string) *Client {
	return &Client{
		BaseURL: defaultBaseURL,
		apiKey:  apiKey,
		client: &http.Client{
			Timeout: 6 * time.Second,
		},
	}
}

// Observation fields are pointers because the upstream payload may omit them.
type Observation struct {
	Temp     *float64
	Humidity *float64
}

type weatherResponse struct {
	Main struct {
		Temp     *float64 `json:"temp"`
		Humidity *float64 `json:"humidity"`
	} `json:"main"`
}

func (c *Client) Current(ctx context.Context, city string) (*Observation, error) {
	if c.apiKey == "" {
		return nil, ErrNotConfigured
	}

	params := url.Values{}
	params.Set("q", city)
	params.Set("appid", c.apiKey)
	params.Set("units", "metric")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("weather request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var payload weatherResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}
	return &Observation{Temp: payload.Main.Temp, Humidity: payload.Main.Humidity}, nil
}
