package session

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
)

const (
	writeWait  = 10 * time.Second
	pingPeriod = 30 * time.Second
	maxMsgSize = 64 * 1024
)

// Close reasons sent to the browser when the server ends a connection.
const (
	reasonSessionClosed = "session closed"
	reasonShutdown      = "server shutting down"
)

// Client is one websocket connection watching a session.
type Client struct {
	ID      string
	manager *Manager
	session *Session
	conn    *websocket.Conn
	send    chan []byte

	mu     sync.Mutex
	closed bool
	reason string
}

func NewClient(m *Manager, s *Session, conn *websocket.Conn) *Client {
	return &Client{
		ID:      uuid.New().String(),
		manager: m,
		session: s,
		conn:    conn,
		send:    make(chan []byte, 256),
	}
}

func (c *Client) logger() *slog.Logger {
	return slog.With("client", c.ID, "session", c.session.ID)
}

// ReadPump feeds incoming messages to the session until the connection
// drops. Every message counts as session activity.
func (c *Client) ReadPump(ctx context.Context) {
	defer func() {
		c.manager.Unregister(c)
		c.conn.CloseNow()
	}()

	c.conn.SetReadLimit(maxMsgSize)
	log := c.logger()

	for {
		msg, err := c.readMessage(ctx)
		switch {
		case err == nil:
		case isClosed(err):
			log.Debug("connection closed", "status", websocket.CloseStatus(err))
			return
		case errors.As(err, new(*json.SyntaxError)), errors.As(err, new(*json.UnmarshalTypeError)):
			log.Warn("invalid message", "error", err)
			c.Send(newMessage(TypeError, ErrorPayload{Message: "invalid message"}))
			continue
		default:
			log.Debug("read failed", "error", err)
			return
		}

		c.session.touch(c.manager.now())
		c.session.handleMessage(c, msg)
	}
}

func (c *Client) readMessage(ctx context.Context) (*Message, error) {
	_, data, err := c.conn.Read(ctx)
	if err != nil {
		return nil, err
	}
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	msg.SessionID = c.session.ID
	msg.ClientID = c.ID
	return &msg, nil
}

func isClosed(err error) bool {
	switch websocket.CloseStatus(err) {
	case websocket.StatusNormalClosure, websocket.StatusGoingAway:
		return true
	}
	return false
}

// WritePump drains the send queue and keeps the connection alive. When the
// session detaches the client, the browser gets a going-away close carrying
// the reason.
func (c *Client) WritePump(ctx context.Context) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	log := c.logger()

	for {
		select {
		case data, ok := <-c.send:
			if !ok {
				c.shutdown(log)
				return
			}
			if err := c.write(ctx, data); err != nil {
				log.Debug("write failed", "error", err)
				c.conn.CloseNow()
				return
			}

		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, writeWait)
			err := c.conn.Ping(pingCtx)
			cancel()
			if err != nil {
				log.Debug("ping failed", "error", err)
				c.conn.CloseNow()
				return
			}

		case <-ctx.Done():
			c.conn.Close(websocket.StatusNormalClosure, "")
			return
		}
	}
}

func (c *Client) write(ctx context.Context, data []byte) error {
	ctx, cancel := context.WithTimeout(ctx, writeWait)
	defer cancel()
	return c.conn.Write(ctx, websocket.MessageText, data)
}

// shutdown closes the connection after the send queue was closed.
func (c *Client) shutdown(log *slog.Logger) {
	c.mu.Lock()
	reason := c.reason
	c.mu.Unlock()

	if reason == "" {
		c.conn.Close(websocket.StatusNormalClosure, "")
		return
	}
	log.Info("closing client", "reason", reason)
	c.conn.Close(websocket.StatusGoingAway, reason)
}

// Send queues msg without blocking. Messages are dropped when the buffer
// is full.
func (c *Client) Send(msg *Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		slog.Error("marshal message", "error", err)
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	select {
	case c.send <- data:
	default:
		slog.Warn("client send buffer full, dropping message", "client", c.ID)
	}
}

// close ends WritePump. A non-empty reason is passed on in the close frame.
// Later sends are ignored.
func (c *Client) close(reason string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		c.reason = reason
		close(c.send)
	}
}
