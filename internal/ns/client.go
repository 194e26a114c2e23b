// Package ns talks to the NS (Nederlandse Spoorwegen) API gateway.
package ns

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/bbernstein/nstravel/internal/telemetry"
	"github.com/bbernstein/nstravel/pkg/http/client"
	"github.com/rs/zerolog/log"
)

const (
	DefaultBaseURL        = "https://gateway.apiportal.ns.nl"
	SubscriptionKeyHeader = "Ocp-Apim-Subscription-Key"

	EndpointTrips       = "reisinformatie-api/api/v3/trips"
	EndpointDepartures  = "reisinformatie-api/api/v2/departures"
	EndpointDisruptions = "reisinformatie-api/api/v3/disruptions"
	EndpointPlaces      = "places-api/v2/places"
)

// Param is a single query parameter. Values are always strings; callers
// stringify booleans and numbers themselves.
type Param struct {
	Key   string
	Value string
}

type Params []Param

// BuildURL joins base and endpoint and attaches params. Params with an empty
// value are treated as absent and skipped.
func BuildURL(baseURL, endpoint string, params Params) string {
	u, err := url.Parse(strings.TrimRight(baseURL, "/") + "/" + strings.TrimLeft(endpoint, "/"))
	if err != nil {
		// base URLs come from configuration; fall back to plain concatenation
		return strings.TrimRight(baseURL, "/") + "/" + strings.TrimLeft(endpoint, "/")
	}

	q := u.Query()
	for _, p := range params {
		if p.Value == "" {
			continue
		}
		q.Set(p.Key, p.Value)
	}
	u.RawQuery = q.Encode()
	return u.String()
}

// API is the part of the client used by the resolver and the dispatcher.
type API interface {
	URL(endpoint string, params Params) string
	Request(ctx context.Context, rawURL, apiKey string) (json.RawMessage, error)
}

type Client struct {
	httpClient client.Interface
	baseURL    string
	observer   *telemetry.Observer
}

var _ API = (*Client)(nil)

func NewClient(httpClient client.Interface, baseURL string, observer *telemetry.Observer) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		observer:   observer,
	}
}

func (c *Client) URL(endpoint string, params Params) string {
	return BuildURL(c.baseURL, endpoint, params)
}

// Request performs an authenticated GET and returns the JSON body untouched.
func (c *Client) Request(ctx context.Context, rawURL, apiKey string) (body json.RawMessage, err error) {
	endpoint := rawURL
	if u, parseErr := url.Parse(rawURL); parseErr == nil {
		endpoint = u.Path
	}

	status := 0
	ctx, done := c.observer.StartRequest(ctx, endpoint)
	defer func() { done(status, err) }()

	headers := http.Header{}
	headers.Set(SubscriptionKeyHeader, apiKey)
	headers.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Get(ctx, rawURL, headers)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", endpoint, err)
	}
	if resp == nil {
		return nil, fmt.Errorf("no response from NS API")
	}
	status = resp.StatusCode

	log.Debug().Str("endpoint", endpoint).Int("status", resp.StatusCode).Msg("NS API response")

	if !resp.OK() {
		return nil, NewAPIError(resp.StatusCode, statusText(resp))
	}
	if !json.Valid(resp.Body) {
		return nil, fmt.Errorf("decoding response from %s: invalid JSON", endpoint)
	}

	return json.RawMessage(resp.Body), nil
}

func statusText(resp *client.Response) string {
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if text == "" {
		text = http.StatusText(resp.StatusCode)
	}
	return text
}
