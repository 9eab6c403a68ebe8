package client

import "time"

// Country is a country as listed by the API.
type Country struct {
	Code string  `json:"code"`
	Name string  `json:"name"`
	Area float64 `json:"area"`
}

// CountryList is the response of the countries endpoint.
type CountryList struct {
	Countries []Country `json:"countries"`
	Total     int       `json:"total"`
}

// Route is one shortest route.
type Route struct {
	Codes []string `json:"codes"`
	Names []string `json:"names"`
	Hops  int      `json:"hops"`
	Text  string   `json:"text"`
}

// RouteReport is the outcome of a route search. OK is false when an
// adjacency lookup failed; QueryCount is reported either way.
type RouteReport struct {
	From       Country `json:"from"`
	To         Country `json:"to"`
	Mode       string  `json:"mode"`
	OK         bool    `json:"ok"`
	State      string  `json:"state"`
	QueryCount int     `json:"query_count"`
	Routes     []Route `json:"routes"`
	Message    string  `json:"message,omitempty"`
	Error      string  `json:"error,omitempty"`
	DurationMS int64   `json:"duration_ms"`
}

// RoundEvent reports one completed search round on a stream.
type RoundEvent struct {
	Type         string   `json:"type"`
	Index        int      `json:"index"`
	Side         string   `json:"side"`
	Expanded     []string `json:"expanded"`
	FrontierSize int      `json:"frontier_size"`
	QueryCount   int      `json:"query_count"`
}

// HealthResponse is the liveness check payload.
type HealthResponse struct {
	Status        string   `json:"status"`
	Version       string   `json:"version"`
	Database      string   `json:"database"`
	SchemaVersion int      `json:"schema_version"`
	Modes         []string `json:"modes"`
	UptimeSeconds float64  `json:"uptime_seconds"`
}

// Snapshot describes the server's persisted border data.
type Snapshot struct {
	Countries  int       `json:"countries"`
	Borders    int       `json:"borders"`
	ImportedAt time.Time `json:"imported_at"`
}
