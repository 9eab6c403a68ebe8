package models

import "time"

// Country is the metadata the catalog holds for a node.
type Country struct {
	Code    NodeID   `json:"code"`
	Name    string   `json:"name"`
	Area    float64  `json:"area"`
	Borders []NodeID `json:"borders,omitempty"`
}

// RouteView is a route prepared for presentation.
type RouteView struct {
	Codes []string `json:"codes"`
	Names []string `json:"names"`
	Hops  int      `json:"hops"`
	Text  string   `json:"text"`
}

// RouteReport is the outcome of a route search as returned to API callers.
type RouteReport struct {
	From       Country     `json:"from"`
	To         Country     `json:"to"`
	Mode       string      `json:"mode"`
	OK         bool        `json:"ok"`
	State      string      `json:"state"`
	QueryCount int         `json:"query_count"`
	Routes     []RouteView `json:"routes"`
	Message    string      `json:"message,omitempty"`
	Error      string      `json:"error,omitempty"`
	DurationMS int64       `json:"duration_ms"`
}

// Outcome messages shown next to a report.
const (
	MessageNoRoutes     = "no such routes"
	MessageLookupFailed = "error on request, lookup failed"
)

// RoundEvent reports one completed search round to streaming clients.
type RoundEvent struct {
	Type         string   `json:"type"`
	Index        int      `json:"index"`
	Side         string   `json:"side"`
	Expanded     []string `json:"expanded"`
	FrontierSize int      `json:"frontier_size"`
	QueryCount   int      `json:"query_count"`
}

// Snapshot describes the persisted border data.
type Snapshot struct {
	Countries  int       `json:"countries"`
	Borders    int       `json:"borders"`
	ImportedAt time.Time `json:"imported_at"`
}
