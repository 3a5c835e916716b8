package session

import (
	"context"
	"slices"
	"time"

	"go.uber.org/zap"

	"github.com/DoyleJ11/ladders-display/internal/animation"
	"github.com/DoyleJ11/ladders-display/internal/protocol"
	"github.com/DoyleJ11/ladders-display/internal/store"
	"github.com/DoyleJ11/ladders-display/internal/transport"
	"github.com/DoyleJ11/ladders-display/pkg/types"
)

const (
	DefaultReconnectDelay = 2 * time.Second
	DefaultStepInterval   = 200 * time.Millisecond
)

type Msg interface{ isSessionMsg() }

// SelectColor sends the color under the local cursor.
type SelectColor struct{}

func (SelectColor) isSessionMsg() {}

type SelectColorValue struct {
	Color string
}

func (SelectColorValue) isSessionMsg() {}

type SetColorCursor struct {
	Index int
}

func (SetColorCursor) isSessionMsg() {}

type MoveColorCursor struct {
	Delta int
}

func (MoveColorCursor) isSessionMsg() {}

type Watch struct {
	ID     string
	Outbox chan store.Frame // where this watcher wants to receive frames
}

func (Watch) isSessionMsg() {}

type Unwatch struct{ ID string }

func (Unwatch) isSessionMsg() {}

type GetFrame struct {
	Reply chan store.Frame
}

func (GetFrame) isSessionMsg() {}

type Shutdown struct{}

func (Shutdown) isSessionMsg() {}

type Options struct {
	Dialer         transport.Dialer
	ReconnectDelay time.Duration
	StepInterval   time.Duration
	Logger         *zap.Logger
}

type Session struct {
	inbox    chan Msg
	events   chan transport.Event
	store    *store.Store
	anim     *animation.Driver
	sup      *supervisor
	watchers map[string]chan store.Frame
	log      *zap.Logger
	ctx      context.Context
	cancel   context.CancelFunc
	done     chan struct{}
}

func New(parent context.Context, opts Options) *Session {
	ctx, cancel := context.WithCancel(parent)

	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	delay := opts.ReconnectDelay
	if delay <= 0 {
		delay = DefaultReconnectDelay
	}
	interval := opts.StepInterval
	if interval <= 0 {
		interval = DefaultStepInterval
	}

	// Unbuffered: once a send returns, the loop owns the event.
	events := make(chan transport.Event)

	s := &Session{
		inbox:    make(chan Msg, 64),
		events:   events,
		store:    store.New(),
		anim:     animation.NewDriver(ctx, interval, log.Named("animation")),
		sup:      newSupervisor(opts.Dialer, delay, events, log.Named("supervisor")),
		watchers: make(map[string]chan store.Frame),
		log:      log,
		ctx:      ctx,
		cancel:   cancel,
		done:     make(chan struct{}),
	}

	go s.loop()
	return s
}

func (s *Session) loop() {
	defer close(s.done)

	s.sup.connect(s.ctx)
	s.publish()

	for {
		select {
		case <-s.ctx.Done():
			s.shutdown()
			return

		case ev := <-s.events:
			if s.handleTransport(ev) {
				s.publish()
			}

		case <-s.sup.reconnectC():
			s.sup.fire(s.ctx)
			s.publish()

		case tk := <-s.anim.Ticks():
			if s.anim.Step(tk, s.store) {
				s.publish()
			}

		case m := <-s.inbox:
			switch msg := m.(type) {
			case SelectColor:
				s.sendColorSelection(s.localColor())

			case SelectColorValue:
				s.sendColorSelection(msg.Color)

			case SetColorCursor:
				s.store.SetSelectedColorIndexLocal(msg.Index)
				s.publish()

			case MoveColorCursor:
				s.store.MoveSelectedColorIndexLocal(msg.Delta)
				s.publish()

			case Watch:
				// Register watcher + send current frame immediately
				s.watchers[msg.ID] = msg.Outbox
				s.deliver(msg.ID, msg.Outbox, s.frame())

			case Unwatch:
				if ch, ok := s.watchers[msg.ID]; ok {
					close(ch)
					delete(s.watchers, msg.ID)
				}

			case GetFrame:
				msg.Reply <- s.frame()

			case Shutdown:
				s.shutdown()
				return
			}
		}
	}
}

func (s *Session) handleTransport(ev transport.Event) bool {
	switch e := ev.(type) {
	case transport.Opened:
		return s.sup.onOpen(e.Conn)

	case transport.Errored:
		s.sup.onError(e)
		return false

	case transport.Closed:
		return s.sup.onClose(e)

	case transport.Message:
		if !s.sup.owns(e.ConnID) {
			return false
		}
		snap, err := protocol.Decode(e.Data)
		if err != nil {
			s.log.Warn("dropping inbound message", zap.Error(err), zap.Int("bytes", len(e.Data)))
			return false
		}
		if snap == nil {
			return false
		}
		s.apply(snap)
		return true
	}
	return false
}

// apply replaces the snapshot and points each moving player's stepper at
// its new target. Steppers of players that no longer need to move stop.
func (s *Session) apply(snap *types.GameSnapshot) {
	delta := s.store.ApplySnapshot(snap)
	for _, i := range delta {
		target, _ := s.store.Target(i)
		if prev, ok := s.anim.Target(i); ok && prev != target {
			s.log.Debug("retargeting player",
				zap.Int("player", i), zap.Int("from", prev), zap.Int("to", target))
		}
		s.anim.Retarget(i, s.store.AnimatedPosition(i), target)
	}
	for _, i := range s.anim.Animating() {
		if !slices.Contains(delta, i) {
			s.anim.Stop(i)
		}
	}
}

func (s *Session) frame() store.Frame {
	return s.store.Frame(s.sup.state, s.anim.Animating())
}

func (s *Session) publish() {
	if len(s.watchers) == 0 {
		return
	}
	f := s.frame()
	for id, ch := range s.watchers {
		s.deliver(id, ch, f)
	}
}

func (s *Session) deliver(id string, ch chan store.Frame, f store.Frame) {
	select {
	case ch <- f:
		//ok
	default:
		// Watcher is slow/full - drop it.
		s.log.Debug("dropping slow watcher", zap.String("watcher", id))
		close(ch)
		delete(s.watchers, id)
	}
}

func (s *Session) shutdown() {
	s.sup.stop()
	s.anim.StopAll()
	for id, ch := range s.watchers {
		close(ch) // Tell watcher no more frames
		delete(s.watchers, id)
	}
	s.cancel()
	s.log.Info("session stopped")
}

// Expose the inbox so front ends can send messages.
func (s *Session) Inbox() chan<- Msg { return s.inbox }

// Done is closed once the loop has released its channel and timers.
func (s *Session) Done() <-chan struct{} { return s.done }

// Post delivers m unless the session has already stopped.
func (s *Session) Post(m Msg) bool {
	select {
	case <-s.done:
		return false
	default:
	}
	select {
	case s.inbox <- m:
		return true
	case <-s.done:
		return false
	}
}

// Frame asks the loop for the current frame; ok is false after shutdown.
func (s *Session) Frame(ctx context.Context) (store.Frame, bool) {
	reply := make(chan store.Frame, 1)
	if !s.Post(GetFrame{Reply: reply}) {
		return store.Frame{}, false
	}
	select {
	case f := <-reply:
		return f, true
	case <-s.done:
		return store.Frame{}, false
	case <-ctx.Done():
		return store.Frame{}, false
	}
}

// Close stops the loop and waits for it to release its resources.
func (s *Session) Close() {
	s.Post(Shutdown{})
	<-s.done
}
