package transport

import (
	"context"

	"github.com/coder/websocket"
	"github.com/google/uuid"
)

// Event is anything a Conn reports about itself.
type Event interface{ isTransportEvent() }

type Opened struct {
	Conn Conn
}

type Message struct {
	ConnID uuid.UUID
	Data   []byte
}

// Errored is informational; a Closed for the same Conn always follows.
type Errored struct {
	ConnID uuid.UUID
	Err    error
}

type Closed struct {
	ConnID uuid.UUID
	Status websocket.StatusCode
}

func (Opened) isTransportEvent()  {}
func (Message) isTransportEvent() {}
func (Errored) isTransportEvent() {}
func (Closed) isTransportEvent()  {}

// Conn is one duplex channel to the game server. It never reconnects.
type Conn interface {
	ID() uuid.UUID
	// Send queues data without blocking; false means it was dropped.
	Send(data []byte) bool
	Close() error
}

// Dialer starts a Conn and returns at once; progress arrives on events.
// Events are abandoned once ctx is done or the Conn is closed locally.
type Dialer interface {
	Dial(ctx context.Context, events chan<- Event) Conn
}
