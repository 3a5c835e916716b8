package session

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"

	"github.com/DoyleJ11/ladders-display/internal/transport"
)

// fakeDialer hands every dialed conn to the test instead of touching the
// network. The test then plays the server side by posting events.
type fakeDialer struct {
	dials chan *fakeConn
}

func newFakeDialer() *fakeDialer {
	return &fakeDialer{dials: make(chan *fakeConn, 16)}
}

func (d *fakeDialer) Dial(ctx context.Context, events chan<- transport.Event) transport.Conn {
	c := &fakeConn{
		id:     uuid.New(),
		ctx:    ctx,
		events: events,
		sent:   make(chan []byte, 16),
	}
	d.dials <- c
	return c
}

type fakeConn struct {
	id     uuid.UUID
	ctx    context.Context
	events chan<- transport.Event
	sent   chan []byte
	closed atomic.Bool
}

func (c *fakeConn) ID() uuid.UUID { return c.id }

func (c *fakeConn) Send(data []byte) bool {
	if c.closed.Load() {
		return false
	}
	select {
	case c.sent <- data:
		return true
	default:
		return false
	}
}

func (c *fakeConn) Close() error {
	c.closed.Store(true)
	return nil
}

func (c *fakeConn) post(t *testing.T, ev transport.Event) {
	t.Helper()
	select {
	case c.events <- ev:
	case <-time.After(time.Second):
		t.Fatalf("session did not take event %T", ev)
	}
}

func (c *fakeConn) open(t *testing.T) {
	t.Helper()
	c.post(t, transport.Opened{Conn: c})
}

func (c *fakeConn) push(t *testing.T, data string) {
	t.Helper()
	c.post(t, transport.Message{ConnID: c.id, Data: []byte(data)})
}

func (c *fakeConn) drop(t *testing.T) {
	t.Helper()
	c.post(t, transport.Errored{ConnID: c.id, Err: errors.New("connection reset")})
	c.post(t, transport.Closed{ConnID: c.id, Status: websocket.StatusAbnormalClosure})
}

func (d *fakeDialer) next(t *testing.T, within time.Duration) *fakeConn {
	t.Helper()
	select {
	case c := <-d.dials:
		return c
	case <-time.After(within):
		t.Fatalf("timed out waiting for dial")
		return nil
	}
}

func (d *fakeDialer) none(t *testing.T, within time.Duration) {
	t.Helper()
	select {
	case c := <-d.dials:
		t.Fatalf("expected no dial within %v, got conn %v", within, c.id)
	case <-time.After(within):
		// good: no dial
	}
}

func (c *fakeConn) nothingSent(t *testing.T, within time.Duration) {
	t.Helper()
	select {
	case b := <-c.sent:
		t.Fatalf("expected nothing sent, got %s", b)
	case <-time.After(within):
	}
}

func (c *fakeConn) recvSent(t *testing.T, within time.Duration) []byte {
	t.Helper()
	select {
	case b := <-c.sent:
		return b
	case <-time.After(within):
		t.Fatalf("timed out waiting for outbound message")
		return nil
	}
}
