// Package leaderboard implements the client side of the backend's
// live leaderboard socket: connect, announce liveness, then consume
// pushed frames in delivery order.
package leaderboard

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/minetheflag/mtf/models"
)

// Frame discriminators pushed by the backend.
const (
	frameLeaderboard = "leaderboard"
	frameSubmission  = "submission"
)

// Handler receives inbound channel events. Events are delivered one
// at a time, in the order the frames arrived.
type Handler interface {
	// Snapshot replaces the full standings. Latest wins; there is no
	// merge and no client-side re-sort.
	Snapshot(entries []models.LeaderboardEntry)
	// Submission signals that a new flag was accepted somewhere;
	// callers typically re-fetch /leaderboard instead of trusting the
	// pushed payload.
	Submission()
}

type frame struct {
	Type string                    `json:"type"`
	Data []models.LeaderboardEntry `json:"data"`
}

// Channel is one open leaderboard socket. It does not reconnect:
// supervision, if wanted, belongs to the caller.
type Channel struct {
	conn   *websocket.Conn
	logger *slog.Logger

	mu     sync.Mutex
	closed bool
}

// Dial connects to url and sends the liveness ping the backend
// expects before it starts pushing frames.
func Dial(ctx context.Context, url string, logger *slog.Logger) (*Channel, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial leaderboard socket: %w", err)
	}
	if err := conn.WriteMessage(websocket.TextMessage, []byte("ping")); err != nil {
		conn.Close()
		return nil, fmt.Errorf("send liveness ping: %w", err)
	}
	return &Channel{conn: conn, logger: logger}, nil
}

// Listen reads frames until ctx is canceled, Close is called, or the
// connection drops. A single loop dispatches every frame, so handlers
// never run concurrently. Undecodable or unknown frames are logged
// and skipped, never fatal.
func (c *Channel) Listen(ctx context.Context, h Handler) error {
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			c.Close()
		case <-done:
		}
	}()

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if c.isClosed() || ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("read leaderboard frame: %w", err)
		}

		var f frame
		if err := json.Unmarshal(raw, &f); err != nil {
			c.logger.Warn("skipping undecodable leaderboard frame", slog.Any("error", err))
			continue
		}

		switch f.Type {
		case frameLeaderboard:
			h.Snapshot(f.Data)
		case frameSubmission:
			h.Submission()
		default:
			c.logger.Debug("ignoring leaderboard frame", slog.String("type", f.Type))
		}
	}
}

// Close tears the channel down. Idempotent; an in-flight read wakes
// up and Listen returns nil.
func (c *Channel) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	return c.conn.Close()
}

func (c *Channel) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}
