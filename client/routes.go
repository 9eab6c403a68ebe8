package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/coder/websocket"
)

// RouteService finds routes and lists countries.
type RouteService struct {
	c *Client
}

// FindOptions tunes a route request.
type FindOptions struct {
	// Mode selects the server's lookup strategy: "api", "table" or "store".
	// Empty uses the server default.
	Mode string
}

func routeParams(from, to string, opts *FindOptions) url.Values {
	params := url.Values{"from": {from}, "to": {to}}
	if opts != nil && opts.Mode != "" {
		params.Set("mode", opts.Mode)
	}
	return params
}

// Find returns all shortest routes between two countries given by name or code.
func (s *RouteService) Find(ctx context.Context, from, to string, opts *FindOptions) (*RouteReport, error) {
	var resp RouteReport
	if err := s.c.get(ctx, "/api/v1/routes", routeParams(from, to, opts), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Countries lists countries by area, largest first. A positive limit keeps
// only that many.
func (s *RouteService) Countries(ctx context.Context, limit int) (*CountryList, error) {
	var params url.Values
	if limit > 0 {
		params = url.Values{"limit": {strconv.Itoa(limit)}}
	}

	var resp CountryList
	if err := s.c.get(ctx, "/api/v1/countries", params, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// streamMessage is any message received on a route stream.
type streamMessage struct {
	RoundEvent
	Report  *RouteReport `json:"report"`
	Code    string       `json:"code"`
	Message string       `json:"message"`
}

// Stream runs a search over the WebSocket endpoint, calling onRound for every
// completed round, and returns the final report.
func (s *RouteService) Stream(
	ctx context.Context,
	from, to string,
	opts *FindOptions,
	onRound func(RoundEvent),
) (*RouteReport, error) {
	conn, resp, err := websocket.Dial(ctx, s.c.wsURL("/api/v1/routes/stream", routeParams(from, to, opts)), nil)
	if err != nil {
		if resp != nil && resp.StatusCode >= 400 {
			return nil, &APIError{StatusCode: resp.StatusCode, Code: "stream_rejected", Message: err.Error()}
		}
		return nil, fmt.Errorf("dial stream: %w", err)
	}
	defer conn.CloseNow() //nolint:errcheck // best-effort close on return

	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			return nil, fmt.Errorf("read stream: %w", err)
		}

		var msg streamMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			return nil, fmt.Errorf("decode stream message: %w", err)
		}

		switch msg.Type {
		case "round":
			if onRound != nil {
				onRound(msg.RoundEvent)
			}
		case "result":
			conn.Close(websocket.StatusNormalClosure, "") //nolint:errcheck // server closes too
			return msg.Report, nil
		case "error":
			return nil, &APIError{StatusCode: statusForCode(msg.Code), Code: msg.Code, Message: msg.Message}
		}
	}
}
