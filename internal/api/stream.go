package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/coder/websocket"
	"github.com/gin-gonic/gin"

	"github.com/persistorai/borderroute/internal/models"
	"github.com/persistorai/borderroute/internal/ws"
)

// streamHandler handles GET /api/v1/routes/stream. Requests that fail
// validation are rejected with a JSON error before the upgrade.
func (h *RouteHandler) streamHandler(appCtx context.Context, corsOrigins []string) gin.HandlerFunc {
	patterns := originHosts(corsOrigins)

	return func(c *gin.Context) {
		req := routeRequest(c)

		probe := req
		if err := probe.Validate(); err != nil {
			respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())

			return
		}

		conn, err := websocket.Accept(c.Writer, c.Request, &websocket.AcceptOptions{
			OriginPatterns:       patterns,
			CompressionMode:      websocket.CompressionContextTakeover,
			CompressionThreshold: 128,
		})
		if err != nil {
			h.log.WithError(err).Error("websocket accept failed")

			return
		}

		// Cancel the search when either the server shuts down or the request ends.
		runCtx, cancel := context.WithCancel(appCtx)
		defer cancel()
		go func() {
			select {
			case <-c.Request.Context().Done():
				cancel()
			case <-runCtx.Done():
			}
		}()

		stream, streamCtx := ws.NewStream(runCtx, conn, h.log.WithField("request_id", c.GetString("request_id")))
		go stream.KeepAlive(streamCtx)

		report, err := h.repo.StreamRoutes(streamCtx, req, func(ev models.RoundEvent) {
			if sendErr := stream.Send(streamCtx, ev); sendErr != nil {
				cancel()
			}
		})
		if err != nil {
			_, code, message := classify(err)
			_ = stream.Send(streamCtx, ws.ErrorMsg{Type: ws.TypeError, Code: code, Message: message})
			stream.Close(websocket.StatusPolicyViolation, code)

			return
		}

		if err := stream.Send(streamCtx, ws.ResultMsg{Type: ws.TypeResult, Report: report}); err != nil {
			h.log.WithError(err).Debug("sending stream result")
		}

		stream.Close(websocket.StatusNormalClosure, "done")
	}
}

// originHosts turns CORS origins into the host patterns websocket.Accept matches.
func originHosts(origins []string) []string {
	out := make([]string, 0, len(origins))
	for _, o := range origins {
		if u, err := url.Parse(o); err == nil && u.Host != "" {
			out = append(out, u.Host)
		}
	}

	return out
}
