package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/coder/websocket"
)

// newTestServer creates a test server that routes to the given handler map.
// Keys are "METHOD /path", values are handler funcs.
func newTestServer(t *testing.T, routes map[string]http.HandlerFunc) (*httptest.Server, *Client) {
	t.Helper()
	mux := http.NewServeMux()
	for pattern, handler := range routes {
		mux.HandleFunc(pattern, handler)
	}
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	c := New(srv.URL+"/", WithTimeout(5*time.Second))
	return srv, c
}

func jsonResponse(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func TestHealth(t *testing.T) {
	_, c := newTestServer(t, map[string]http.HandlerFunc{
		"GET /api/v1/health": func(w http.ResponseWriter, _ *http.Request) {
			jsonResponse(w, 200, HealthResponse{Status: "ok", Version: "1.2.0", Modes: []string{"api"}})
		},
	})
	resp, err := c.Health(context.Background())
	if err != nil {
		t.Fatalf("Health() error: %v", err)
	}
	if resp.Status != "ok" || resp.Version != "1.2.0" {
		t.Errorf("got %+v", resp)
	}
}

func TestRoutesFind(t *testing.T) {
	_, c := newTestServer(t, map[string]http.HandlerFunc{
		"GET /api/v1/routes": func(w http.ResponseWriter, r *http.Request) {
			q := r.URL.Query()
			if q.Get("from") != "Germany" || q.Get("to") != "Spain" || q.Get("mode") != "table" {
				t.Errorf("unexpected query: %v", q)
			}
			jsonResponse(w, 200, RouteReport{
				OK:         true,
				State:      "converged",
				QueryCount: 4,
				Routes: []Route{{
					Codes: []string{"DEU", "FRA", "ESP"},
					Hops:  2,
					Text:  "Germany → France → Spain",
				}},
			})
		},
	})

	report, err := c.Routes.Find(context.Background(), "Germany", "Spain", &FindOptions{Mode: "table"})
	if err != nil {
		t.Fatalf("Find() error: %v", err)
	}
	if !report.OK || report.QueryCount != 4 || len(report.Routes) != 1 {
		t.Errorf("got %+v", report)
	}
}

func TestRoutesCountries(t *testing.T) {
	_, c := newTestServer(t, map[string]http.HandlerFunc{
		"GET /api/v1/countries": func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Query().Get("limit") != "2" {
				t.Errorf("expected limit=2, got %q", r.URL.RawQuery)
			}
			jsonResponse(w, 200, CountryList{
				Countries: []Country{{Code: "RUS", Name: "Russia"}, {Code: "CAN", Name: "Canada"}},
				Total:     2,
			})
		},
	})

	list, err := c.Routes.Countries(context.Background(), 2)
	if err != nil {
		t.Fatalf("Countries() error: %v", err)
	}
	if list.Total != 2 || list.Countries[0].Code != "RUS" {
		t.Errorf("got %+v", list)
	}
}

func TestAPIErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   any
		check  func(error) bool
	}{
		{name: "bad request", status: 400, body: APIError{Code: "invalid_request", Message: "unknown country"}, check: IsBadRequest},
		{name: "rate limited", status: 429, body: APIError{Code: "rate_limited", Message: "slow down"}, check: IsRateLimited},
		{name: "upstream", status: 502, body: APIError{Code: "upstream_error", Message: "down"}, check: IsUpstream},
		{name: "not found", status: 404, body: "plain text", check: IsNotFound},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, c := newTestServer(t, map[string]http.HandlerFunc{
				"GET /api/v1/routes": func(w http.ResponseWriter, _ *http.Request) {
					jsonResponse(w, tc.status, tc.body)
				},
			})

			_, err := c.Routes.Find(context.Background(), "a", "b", nil)
			if err == nil {
				t.Fatal("expected error")
			}
			if !tc.check(err) {
				t.Errorf("classifier rejected %v", err)
			}
		})
	}
}

func TestParseAPIError_Fallback(t *testing.T) {
	e := parseAPIError(500, []byte("boom"))
	if e.Code != "unknown" || e.Message != "boom" {
		t.Errorf("got %+v", e)
	}
}

func TestRoutesStream(t *testing.T) {
	_, c := newTestServer(t, map[string]http.HandlerFunc{
		"GET /api/v1/routes/stream": func(w http.ResponseWriter, r *http.Request) {
			conn, err := websocket.Accept(w, r, nil)
			if err != nil {
				t.Errorf("accept: %v", err)
				return
			}
			defer conn.CloseNow() //nolint:errcheck

			ctx := r.Context()
			for _, msg := range []any{
				RoundEvent{Type: "round", Index: 1, Side: "forward", QueryCount: 1},
				RoundEvent{Type: "round", Index: 2, Side: "backward", QueryCount: 2},
				map[string]any{"type": "result", "report": RouteReport{OK: true, QueryCount: 2}},
			} {
				data, _ := json.Marshal(msg)
				if err := conn.Write(ctx, websocket.MessageText, data); err != nil {
					return
				}
			}
			conn.Close(websocket.StatusNormalClosure, "done") //nolint:errcheck
		},
	})

	var rounds []RoundEvent
	report, err := c.Routes.Stream(context.Background(), "France", "Poland", nil, func(ev RoundEvent) {
		rounds = append(rounds, ev)
	})
	if err != nil {
		t.Fatalf("Stream() error: %v", err)
	}

	if len(rounds) != 2 || rounds[1].Side != "backward" {
		t.Errorf("rounds = %+v", rounds)
	}

	if report == nil || !report.OK || report.QueryCount != 2 {
		t.Errorf("report = %+v", report)
	}
}

func TestRoutesStream_ErrorFrame(t *testing.T) {
	tests := []struct {
		code       string
		wantStatus int
		upstream   bool
	}{
		{code: "upstream_error", wantStatus: http.StatusBadGateway, upstream: true},
		{code: "invalid_request", wantStatus: http.StatusBadRequest},
		{code: "internal_error", wantStatus: http.StatusInternalServerError},
	}

	for _, tc := range tests {
		t.Run(tc.code, func(t *testing.T) {
			_, c := newTestServer(t, map[string]http.HandlerFunc{
				"GET /api/v1/routes/stream": func(w http.ResponseWriter, r *http.Request) {
					conn, err := websocket.Accept(w, r, nil)
					if err != nil {
						t.Errorf("accept: %v", err)
						return
					}
					defer conn.CloseNow() //nolint:errcheck

					data, _ := json.Marshal(map[string]any{"type": "error", "code": tc.code, "message": "failed"})
					if err := conn.Write(r.Context(), websocket.MessageText, data); err != nil {
						return
					}
					conn.Close(websocket.StatusPolicyViolation, tc.code) //nolint:errcheck
				},
			})

			_, err := c.Routes.Stream(context.Background(), "France", "Poland", nil, nil)

			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("err = %v, want *APIError", err)
			}
			if apiErr.StatusCode != tc.wantStatus || apiErr.Code != tc.code {
				t.Errorf("APIError = %+v, want status %d", apiErr, tc.wantStatus)
			}
			if IsUpstream(err) != tc.upstream {
				t.Errorf("IsUpstream = %v, want %v", IsUpstream(err), tc.upstream)
			}
			if tc.upstream && IsBadRequest(err) {
				t.Error("upstream failure reported as bad request")
			}
		})
	}
}

func TestWSURL(t *testing.T) {
	tests := map[string]string{
		"http://localhost:3030":  "ws://localhost:3030/x",
		"https://routes.example": "wss://routes.example/x",
	}
	for base, want := range tests {
		if got := New(base).wsURL("/x", nil); got != want {
			t.Errorf("wsURL(%q) = %q, want %q", base, got, want)
		}
	}
}

func TestWithTimeout_CopiesSharedClient(t *testing.T) {
	shared := &http.Client{Timeout: time.Minute}

	for _, c := range []*Client{
		New("http://x", WithHTTPClient(shared), WithTimeout(time.Second)),
		New("http://x", WithTimeout(time.Second), WithHTTPClient(shared)),
	} {
		if c.httpClient.Timeout != time.Second {
			t.Errorf("timeout = %v, want 1s", c.httpClient.Timeout)
		}
	}

	if shared.Timeout != time.Minute {
		t.Errorf("shared client timeout changed to %v", shared.Timeout)
	}
}
