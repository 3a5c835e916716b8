package transport

import (
	"context"
	"errors"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	defaultWriteTimeout = 3 * time.Second
	defaultReadLimit    = 1 << 20
	outboxSize          = 16
)

type WebsocketDialer struct {
	URL          string
	Logger       *zap.Logger
	WriteTimeout time.Duration
	ReadLimit    int64
}

func (d *WebsocketDialer) Dial(ctx context.Context, events chan<- Event) Conn {
	ctx, cancel := context.WithCancel(ctx)
	log := d.Logger
	if log == nil {
		log = zap.NewNop()
	}
	c := &wsConn{
		id:     uuid.New(),
		ctx:    ctx,
		cancel: cancel,
		out:    make(chan []byte, outboxSize),
		events: events,
		dialer: d,
	}
	c.log = log.With(zap.String("conn_id", c.id.String()))
	go c.run()
	return c
}

func (d *WebsocketDialer) writeTimeout() time.Duration {
	if d.WriteTimeout > 0 {
		return d.WriteTimeout
	}
	return defaultWriteTimeout
}

func (d *WebsocketDialer) readLimit() int64 {
	if d.ReadLimit > 0 {
		return d.ReadLimit
	}
	return defaultReadLimit
}

type wsConn struct {
	id     uuid.UUID
	ctx    context.Context
	cancel context.CancelFunc
	out    chan []byte
	events chan<- Event
	dialer *WebsocketDialer
	log    *zap.Logger
}

func (c *wsConn) ID() uuid.UUID { return c.id }

func (c *wsConn) Send(data []byte) bool {
	select {
	case <-c.ctx.Done():
		return false
	default:
	}
	select {
	case c.out <- data:
		return true
	default:
		c.log.Warn("outbox full, dropping message")
		return false
	}
}

// Close starts a normal closure; no further events are reported.
func (c *wsConn) Close() error {
	c.cancel()
	return nil
}

func (c *wsConn) post(ev Event) {
	select {
	case c.events <- ev:
	case <-c.ctx.Done():
	}
}

func (c *wsConn) run() {
	// Release the conn's context however the socket ends; Closed has
	// already been posted by then.
	defer c.cancel()
	c.log.Info("dialing", zap.String("url", c.dialer.URL))
	conn, _, err := websocket.Dial(c.ctx, c.dialer.URL, nil)
	if err != nil {
		c.post(Errored{ConnID: c.id, Err: err})
		c.post(Closed{ConnID: c.id, Status: websocket.StatusAbnormalClosure})
		return
	}
	conn.SetReadLimit(c.dialer.readLimit())
	c.post(Opened{Conn: c})

	done := make(chan struct{})
	go c.writeLoop(conn, done)
	c.readLoop(conn)
	close(done)
}

// readLoop uses its own context so a local Close can finish the closing
// handshake instead of tearing the socket down mid-frame.
func (c *wsConn) readLoop(conn *websocket.Conn) {
	for {
		_, data, err := conn.Read(context.Background())
		if err != nil {
			status := websocket.CloseStatus(err)
			if status == -1 {
				if c.ctx.Err() == nil {
					c.post(Errored{ConnID: c.id, Err: err})
				}
				status = websocket.StatusAbnormalClosure
			}
			c.log.Info("connection closed", zap.Int("status", int(status)))
			c.post(Closed{ConnID: c.id, Status: status})
			return
		}
		c.post(Message{ConnID: c.id, Data: data})
	}
}

func (c *wsConn) writeLoop(conn *websocket.Conn, done <-chan struct{}) {
	for {
		select {
		case <-done:
			return
		case <-c.ctx.Done():
			if err := conn.Close(websocket.StatusNormalClosure, "bye"); err != nil && !errors.Is(err, context.Canceled) {
				c.log.Debug("close", zap.Error(err))
			}
			return
		case msg := <-c.out:
			ctx, cancel := context.WithTimeout(c.ctx, c.dialer.writeTimeout())
			err := conn.Write(ctx, websocket.MessageText, msg)
			cancel()
			if err != nil {
				c.log.Warn("write failed", zap.Error(err))
			}
		}
	}
}
