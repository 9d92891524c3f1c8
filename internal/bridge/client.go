package bridge

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"sync"
	"time"

	"github.com/atomicstack/tmux-chat-ui/internal/logging/events"
	"github.com/gorilla/websocket"
)

const handshakeTimeout = 5 * time.Second

// Client is the pop-out side of the bridge.
type Client struct {
	surface string
	conn    *websocket.Conn
	writeMu sync.Mutex

	events    chan Event
	done      chan struct{}
	closeOnce sync.Once
}

// Dial connects to the host bridge as surface and announces readiness.
func Dial(ctx context.Context, socketPath, surface string) (*Client, error) {
	if socketPath == "" {
		return nil, fmt.Errorf("bridge socket required")
	}
	if surface == "" {
		return nil, fmt.Errorf("surface id required")
	}
	dialer := websocket.Dialer{
		HandshakeTimeout: handshakeTimeout,
		NetDialContext: func(ctx context.Context, _, _ string) (net.Conn, error) {
			var d net.Dialer
			return d.DialContext(ctx, "unix", socketPath)
		},
	}
	u := url.URL{
		Scheme:   "ws",
		Host:     "bridge",
		Path:     surfacePath,
		RawQuery: url.Values{"id": {surface}}.Encode(),
	}
	conn, _, err := dialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("connect to bridge: %w", err)
	}
	c := &Client{
		surface: surface,
		conn:    conn,
		events:  make(chan Event, eventBuffer),
		done:    make(chan struct{}),
	}
	go c.readLoop()
	if err := c.Send(Event{Kind: KindReady}); err != nil {
		_ = c.Close()
		return nil, err
	}
	return c, nil
}

// Surface returns the id the client connected as.
func (c *Client) Surface() string {
	return c.surface
}

// Send writes ev to the host, stamping the client's surface id.
func (c *Client) Send(ev Event) error {
	select {
	case <-c.done:
		return ErrClosed
	default:
	}
	ev.Surface = c.surface
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	if err := c.conn.WriteJSON(ev); err != nil {
		return fmt.Errorf("send %s: %w", ev.Kind, err)
	}
	events.Bridge.Send(string(ev.Kind), c.surface)
	return nil
}

// Events delivers events broadcast by the host. It is closed when the
// connection ends.
func (c *Client) Events() <-chan Event {
	return c.events
}

// Close says goodbye to the host and drops the connection.
func (c *Client) Close() error {
	var err error
	c.closeOnce.Do(func() {
		close(c.done)
		c.writeMu.Lock()
		_ = c.conn.WriteControl(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second),
		)
		c.writeMu.Unlock()
		err = c.conn.Close()
	})
	return err
}

func (c *Client) readLoop() {
	defer close(c.events)
	for {
		var ev Event
		if err := c.conn.ReadJSON(&ev); err != nil {
			select {
			case <-c.done:
			default:
				if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					events.Bridge.Error(err)
				}
			}
			return
		}
		events.Bridge.Receive(string(ev.Kind), ev.Surface)
		select {
		case c.events <- ev:
		case <-c.done:
			return
		}
	}
}
