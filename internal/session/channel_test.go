package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// startEchoServer accepts one connection and echoes every text frame back.
func startEchoServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, nil)
		if err != nil {
			return
		}
		defer conn.CloseNow()
		ctx := r.Context()
		for {
			typ, data, err := conn.Read(ctx)
			if err != nil {
				return
			}
			if err := conn.Write(ctx, typ, data); err != nil {
				return
			}
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestChannel_SendBeforeConnectIsNoOp(t *testing.T) {
	c := New(zap.NewNop())
	require.NoError(t, c.Send(context.Background(), map[string]string{"type": "name"}))
}

func TestChannel_ReceiveBeforeConnectFails(t *testing.T) {
	c := New(zap.NewNop())
	_, err := c.Receive(context.Background())
	require.ErrorIs(t, err, ErrNotConnected)
}

func TestChannel_RoundTrip(t *testing.T) {
	srv := startEchoServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	c := New(zap.NewNop())
	require.NoError(t, c.Connect(ctx, srv.URL))
	defer c.Close()

	require.NoError(t, c.Send(ctx, map[string]string{"type": "name", "name": "ana"}))

	data, err := c.Receive(ctx)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"name","name":"ana"}`, string(data))
}

func TestChannel_ConnectFailure(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	c := New(zap.NewNop())
	err := c.Connect(ctx, "ws://127.0.0.1:1")
	require.Error(t, err)
}

func TestChannel_ReceiveAfterCloseFails(t *testing.T) {
	srv := startEchoServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	c := New(zap.NewNop())
	require.NoError(t, c.Connect(ctx, srv.URL))
	c.Close()

	_, err := c.Receive(ctx)
	require.Error(t, err)
}

func TestChannel_SendUnmarshalableValue(t *testing.T) {
	srv := startEchoServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	c := New(zap.NewNop())
	require.NoError(t, c.Connect(ctx, srv.URL))
	defer c.Close()

	err := c.Send(ctx, make(chan int))
	require.Error(t, err)
}
