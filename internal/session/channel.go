package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/coder/websocket"
	"go.uber.org/zap"
)

// ErrNotConnected is returned by Receive when Connect was never called or
// failed. Send deliberately does not return it; sends without a connection
// are silent no-ops.
var ErrNotConnected = errors.New("session: not connected")

const writeTimeout = 3 * time.Second

// Channel owns the single transport connection to the session server. A lost
// connection is never redialed; the owner tears the client down instead.
type Channel struct {
	log  *zap.Logger
	conn *websocket.Conn
}

func New(log *zap.Logger) *Channel {
	return &Channel{log: log}
}

// Connect opens the one connection this channel will ever hold.
func (c *Channel) Connect(ctx context.Context, addr string) error {
	conn, _, err := websocket.Dial(ctx, addr, nil)
	if err != nil {
		return fmt.Errorf("dial %s: %w", addr, err)
	}
	c.conn = conn
	c.log.Info("connected", zap.String("addr", addr))
	return nil
}

// Send marshals v and writes it as one text frame. A send with no connection
// is a no-op, never an error.
func (c *Channel) Send(ctx context.Context, v any) error {
	if c.conn == nil {
		return nil
	}
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode frame: %w", err)
	}
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	return c.conn.Write(ctx, websocket.MessageText, payload)
}

// Receive blocks for the next inbound frame. Any error, including a clean
// remote close, ends the session; whether that is fatal is the caller's
// call, based on who initiated the close.
func (c *Channel) Receive(ctx context.Context) ([]byte, error) {
	if c.conn == nil {
		return nil, ErrNotConnected
	}
	_, data, err := c.conn.Read(ctx)
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Close requests a normal closure of the connection.
func (c *Channel) Close() {
	if c.conn == nil {
		return
	}
	_ = c.conn.Close(websocket.StatusNormalClosure, "bye")
}
