package session

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/DoyleJ11/ladders-display/internal/transport"
	"github.com/DoyleJ11/ladders-display/pkg/types"
)

// supervisor owns the single live channel and the reconnect timer.
// Only the session loop touches it.
type supervisor struct {
	dialer transport.Dialer
	delay  time.Duration
	events chan<- transport.Event
	log    *zap.Logger

	state types.ConnState
	conn  transport.Conn // connecting or open, nil when closed
	timer *time.Timer
}

func newSupervisor(d transport.Dialer, delay time.Duration, events chan<- transport.Event, log *zap.Logger) *supervisor {
	return &supervisor{
		dialer: d,
		delay:  delay,
		events: events,
		log:    log,
		state:  types.ConnConnecting,
	}
}

func (s *supervisor) connect(ctx context.Context) {
	if s.conn != nil {
		_ = s.conn.Close()
	}
	s.state = types.ConnConnecting
	s.conn = s.dialer.Dial(ctx, s.events)
	s.log.Info("connecting", zap.Stringer("conn_id", s.conn.ID()))
}

// current is the open channel, or nil.
func (s *supervisor) current() transport.Conn {
	if s.state != types.ConnOpen {
		return nil
	}
	return s.conn
}

func (s *supervisor) owns(id uuid.UUID) bool {
	return s.conn != nil && s.conn.ID() == id
}

func (s *supervisor) onOpen(c transport.Conn) bool {
	if !s.owns(c.ID()) {
		return false
	}
	s.state = types.ConnOpen
	s.log.Info("connected to server", zap.Stringer("conn_id", c.ID()))
	return true
}

// Errors never change state; the Closed that follows does.
func (s *supervisor) onError(ev transport.Errored) {
	if !s.owns(ev.ConnID) {
		return
	}
	s.log.Warn("channel error", zap.Stringer("conn_id", ev.ConnID), zap.Error(ev.Err))
}

func (s *supervisor) onClose(ev transport.Closed) bool {
	if !s.owns(ev.ConnID) {
		return false
	}
	s.state = types.ConnClosed
	s.conn = nil
	s.log.Info("disconnected from server",
		zap.Stringer("conn_id", ev.ConnID),
		zap.Int("status", int(ev.Status)),
		zap.Duration("retry_in", s.delay))
	s.schedule()
	return true
}

func (s *supervisor) schedule() {
	if s.timer != nil {
		return
	}
	s.timer = time.NewTimer(s.delay)
}

// reconnectC is nil while nothing is scheduled, which parks its select case.
func (s *supervisor) reconnectC() <-chan time.Time {
	if s.timer == nil {
		return nil
	}
	return s.timer.C
}

func (s *supervisor) fire(ctx context.Context) {
	s.timer = nil
	s.log.Info("attempting to reconnect")
	s.connect(ctx)
}

func (s *supervisor) stop() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	if s.conn != nil {
		_ = s.conn.Close()
		s.conn = nil
	}
	s.state = types.ConnClosed
}
