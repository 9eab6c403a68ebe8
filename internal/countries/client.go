// Package countries is a small client for the REST Countries v3.1 API, the
// upstream source of border data and country metadata.
package countries

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/persistorai/borderroute/internal/models"
)

// DefaultBaseURL is the public REST Countries endpoint.
const DefaultBaseURL = "https://restcountries.com/v3.1"

// maxResponseBytes caps upstream response bodies (the full country list is ~100 KB).
const maxResponseBytes = 8 << 20

// Client fetches border and metadata records from REST Countries.
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	limiter    *rate.Limiter
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the per-request timeout. It applies on top of any client
// given to WithHTTPClient without modifying that client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithRateLimit caps outbound requests per second. A non-positive rate disables limiting.
func WithRateLimit(perSecond float64, burst int) Option {
	return func(c *Client) {
		if perSecond <= 0 {
			c.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
	}
}

// New creates a Client for the given base URL (e.g. "https://restcountries.com/v3.1").
func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, o := range opts {
		o(c)
	}

	if c.timeout > 0 && c.httpClient.Timeout != c.timeout {
		hc := *c.httpClient
		hc.Timeout = c.timeout
		c.httpClient = &hc
	}

	return c
}

// StatusError is returned when the upstream answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Message    string
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	return fmt.Sprintf("countries api: %d: %s", e.StatusCode, e.Message)
}

// Unwrap maps 404 to models.ErrUnknownNode.
func (e *StatusError) Unwrap() error {
	if e.StatusCode == http.StatusNotFound {
		return models.ErrUnknownNode
	}

	return nil
}

// borderRecord is the shape returned for ?fields=borders (and cca3).
type borderRecord struct {
	CCA3    string    `json:"cca3"`
	Borders *[]string `json:"borders"`
}

// countryRecord is the shape returned for ?fields=name&fields=cca3&fields=area.
type countryRecord struct {
	CCA3 string `json:"cca3"`
	Name struct {
		Common string `json:"common"`
	} `json:"name"`
	Area float64 `json:"area"`
}

// Borders returns the codes of the countries sharing a land border with code.
func (c *Client) Borders(ctx context.Context, code models.NodeID) ([]models.NodeID, error) {
	var rec borderRecord

	path := "/alpha/" + url.PathEscape(string(code))
	if err := c.get(ctx, path, url.Values{"fields": {"borders"}}, &rec); err != nil {
		return nil, err
	}

	if rec.Borders == nil {
		return nil, fmt.Errorf("decoding borders for %s: %w", code, errMissingBorders)
	}

	return toNodeIDs(*rec.Borders), nil
}

// AllBorders fetches the border list of every country in one request.
func (c *Client) AllBorders(ctx context.Context) (map[models.NodeID][]models.NodeID, error) {
	var recs []borderRecord
	if err := c.get(ctx, "/all", url.Values{"fields": {"cca3", "borders"}}, &recs); err != nil {
		return nil, err
	}

	out := make(map[models.NodeID][]models.NodeID, len(recs))
	for _, r := range recs {
		if r.CCA3 == "" {
			continue
		}

		var borders []string
		if r.Borders != nil {
			borders = *r.Borders
		}
		out[models.NodeID(r.CCA3)] = toNodeIDs(borders)
	}

	return out, nil
}

// Countries fetches name, code and area for every country.
func (c *Client) Countries(ctx context.Context) ([]models.Country, error) {
	var recs []countryRecord
	if err := c.get(ctx, "/all", url.Values{"fields": {"name", "cca3", "area"}}, &recs); err != nil {
		return nil, err
	}

	out := make([]models.Country, 0, len(recs))
	for _, r := range recs {
		if r.CCA3 == "" {
			continue
		}
		out = append(out, models.Country{
			Code: models.NodeID(r.CCA3),
			Name: r.Name.Common,
			Area: r.Area,
		})
	}

	return out, nil
}

var errMissingBorders = errors.New("response has no borders field")

// get executes a GET request and decodes the JSON response into result.
func (c *Client) get(ctx context.Context, path string, params url.Values, result any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("waiting for rate limiter: %w", err)
		}
	}

	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return parseStatusError(resp.StatusCode, body)
	}

	if err := json.Unmarshal(body, result); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}

// parseStatusError extracts the upstream message; falls back to raw text.
func parseStatusError(statusCode int, body []byte) *StatusError {
	var payload struct {
		Message string `json:"message"`
	}

	se := &StatusError{StatusCode: statusCode}
	if err := json.Unmarshal(body, &payload); err != nil || payload.Message == "" {
		se.Message = strings.TrimSpace(string(body))
	} else {
		se.Message = payload.Message
	}

	return se
}

func toNodeIDs(codes []string) []models.NodeID {
	out := make([]models.NodeID, 0, len(codes))
	for _, c := range codes {
		out = append(out, models.NodeID(c))
	}

	return out
}
