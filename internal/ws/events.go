package ws

import "github.com/persistorai/borderroute/internal/models"

// Message types sent on a route stream. Round events use models.RoundEvent
// with type "round".
const (
	TypeRound  = "round"
	TypeResult = "result"
	TypeError  = "error"
)

// ResultMsg is the final message of a successful stream.
type ResultMsg struct {
	Type   string              `json:"type"`
	Report *models.RouteReport `json:"report"`
}

// ErrorMsg ends a stream whose request could not be served.
type ErrorMsg struct {
	Type    string `json:"type"`
	Code    string `json:"code"`
	Message string `json:"message"`
}
