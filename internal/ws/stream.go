// Package ws streams route search progress to WebSocket clients.
package ws

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/sirupsen/logrus"

	"github.com/persistorai/borderroute/internal/metrics"
)

const (
	writeTimeout = 10 * time.Second
	pingInterval = 30 * time.Second
	pingTimeout  = 10 * time.Second
)

// Stream is a write-only view of one WebSocket connection. Writes are
// serialized so round events and pings never interleave.
type Stream struct {
	conn *websocket.Conn
	log  *logrus.Entry
	mu   sync.Mutex
}

// NewStream wraps conn. The returned context is cancelled when the client
// closes the connection or parent is done; searches should run under it.
func NewStream(parent context.Context, conn *websocket.Conn, log *logrus.Entry) (*Stream, context.Context) {
	metrics.WSConnections.Inc()

	return &Stream{conn: conn, log: log}, conn.CloseRead(parent)
}

// Send writes v as a JSON text message.
func (s *Stream) Send(ctx context.Context, v any) error {
	msg, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshalling stream message: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	writeCtx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	if err := s.conn.Write(writeCtx, websocket.MessageText, msg); err != nil {
		return fmt.Errorf("writing stream message: %w", err)
	}

	return nil
}

// KeepAlive pings the client until ctx is done. A failed ping closes the
// connection, which cancels the stream context.
func (s *Stream) KeepAlive(ctx context.Context) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
			err := s.conn.Ping(pingCtx)
			cancel()

			if err != nil {
				s.log.WithError(err).Debug("stream ping failed")
				s.conn.CloseNow() //nolint:errcheck // best-effort close on teardown

				return
			}
		}
	}
}

// Close sends a close frame with the given status and reason.
func (s *Stream) Close(status websocket.StatusCode, reason string) {
	defer metrics.WSConnections.Dec()

	if err := s.conn.Close(status, reason); err != nil {
		s.log.WithError(err).Debug("stream close")
	}
}
