// OyoNews - Server-Rendered News Front End
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/oyonews

package websocket

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/tomtom215/oyonews/internal/feed"
	"github.com/tomtom215/oyonews/internal/logging"
	"github.com/tomtom215/oyonews/internal/metrics"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4 * 1024
)

var clientIDCounter atomic.Uint64

// FeedView is the feed state a client follows.
type FeedView interface {
	OnSentinelVisible(ctx context.Context) bool
	Subscribe() (<-chan feed.Snapshot, func())
	Snapshot() feed.Snapshot
}

// Encoder turns a snapshot into the payload of a snapshot frame.
type Encoder func(feed.Snapshot) (interface{}, error)

// NewUpgrader returns an upgrader accepting same-host pages and the given
// origins. "*" accepts any origin, but a browser request without an Origin
// header is refused.
func NewUpgrader(allowedOrigins []string) *websocket.Upgrader {
	return &websocket.Upgrader{
		ReadBufferSize:   1024,
		WriteBufferSize:  4096,
		HandshakeTimeout: 10 * time.Second,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" {
				logging.Warn().Msg("WebSocket connection rejected: missing Origin header")
				return false
			}
			if u, err := url.Parse(origin); err == nil && strings.EqualFold(u.Host, r.Host) {
				return true
			}
			for _, allowed := range allowedOrigins {
				if allowed == "*" || allowed == origin {
					return true
				}
			}
			logging.Warn().Str("origin", logging.ScrubError(origin)).Msg("WebSocket connection rejected from unauthorized origin")
			return false
		},
	}
}

// Client connects one WebSocket to one feed view.
type Client struct {
	id      uint64
	conn    *websocket.Conn
	view    FeedView
	encode  Encoder
	onClose func()
	log     zerolog.Logger

	send      chan Message
	done      chan struct{}
	closeOnce sync.Once
	passes    sync.WaitGroup
}

// NewClient creates a client. onClose runs once when the connection ends
// and may be nil.
func NewClient(conn *websocket.Conn, view FeedView, encode Encoder, onClose func()) *Client {
	id := clientIDCounter.Add(1)
	return &Client{
		id:      id,
		conn:    conn,
		view:    view,
		encode:  encode,
		onClose: onClose,
		log:     logging.WithComponent("websocket").With().Uint64("client_id", id).Logger(),
		send:    make(chan Message, 16),
		done:    make(chan struct{}),
	}
}

// ID returns the client's process-unique id.
func (c *Client) ID() uint64 {
	return c.id
}

// Run serves the connection until the browser leaves or ctx ends. The
// current snapshot is sent first.
func (c *Client) Run(ctx context.Context) {
	metrics.WSConnections.Inc()
	defer metrics.WSConnections.Dec()

	updates, cancel := c.view.Subscribe()
	defer cancel()

	ctx, stop := context.WithCancel(ctx)
	defer stop()

	c.pushSnapshot(c.view.Snapshot())

	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		c.writePump(ctx, updates)
	}()

	c.readPump(ctx)
	c.close()
	stop()
	<-writerDone
	c.passes.Wait()

	if c.onClose != nil {
		c.onClose()
	}
}

func (c *Client) close() {
	c.closeOnce.Do(func() {
		close(c.done)
		_ = c.conn.Close()
	})
}

// readPump handles frames from the browser until the connection fails.
func (c *Client) readPump(ctx context.Context) {
	c.conn.SetReadLimit(maxMessageSize)
	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		c.log.Error().Err(err).Msg("failed to set read deadline")
		return
	}
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.log.Debug().Err(err).Msg("unexpected websocket close")
			}
			return
		}
		metrics.WSMessagesTotal.WithLabelValues("in").Inc()

		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			c.enqueue(Message{Type: MessageTypeError})
			continue
		}

		switch msg.Type {
		case MessageTypePing:
			c.enqueue(Message{Type: MessageTypePong})
		case MessageTypeSentinelVisible:
			c.passes.Add(1)
			go func() {
				defer c.passes.Done()
				if !c.view.OnSentinelVisible(ctx) {
					c.enqueue(Message{Type: MessageTypeBusy})
				}
			}()
		default:
			c.log.Debug().Str("type", msg.Type).Msg("ignoring unknown message type")
		}
	}
}

// writePump writes queued frames, snapshots and pings.
func (c *Client) writePump(ctx context.Context, updates <-chan feed.Snapshot) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			c.writeClose()
			return
		case <-c.done:
			return
		case snap, ok := <-updates:
			if !ok {
				// The view was torn down.
				c.writeClose()
				c.close()
				return
			}
			msg, err := c.snapshotMessage(snap)
			if err != nil {
				c.log.Error().Err(err).Msg("failed to encode feed snapshot")
				continue
			}
			if !c.write(msg) {
				return
			}
		case msg := <-c.send:
			if !c.write(msg) {
				return
			}
		case <-ticker.C:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) write(msg Message) bool {
	data, err := json.Marshal(msg)
	if err != nil {
		c.log.Error().Err(err).Msg("failed to encode websocket message")
		return true
	}
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return false
	}
	if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		c.log.Debug().Err(err).Msg("failed to write websocket message")
		c.close()
		return false
	}
	metrics.WSMessagesTotal.WithLabelValues("out").Inc()
	return true
}

func (c *Client) writeClose() {
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

func (c *Client) snapshotMessage(snap feed.Snapshot) (Message, error) {
	payload, err := c.encode(snap)
	if err != nil {
		return Message{}, err
	}
	return NewMessage(MessageTypeSnapshot, payload)
}

// pushSnapshot queues a snapshot without blocking.
func (c *Client) pushSnapshot(snap feed.Snapshot) {
	msg, err := c.snapshotMessage(snap)
	if err != nil {
		c.log.Error().Err(err).Msg("failed to encode feed snapshot")
		return
	}
	c.enqueue(msg)
}

// enqueue drops the frame when the client is gone or too slow.
func (c *Client) enqueue(msg Message) {
	select {
	case <-c.done:
	case c.send <- msg:
	default:
		c.log.Debug().Str("type", msg.Type).Msg("dropping websocket frame for slow client")
	}
}
