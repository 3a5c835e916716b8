package animation

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"
)

// Tick asks the owner of the positions to advance Player by one cell.
// Gen identifies the stepper that produced it.
type Tick struct {
	Player int
	Gen    uint64
}

type Positions interface {
	AnimatedPosition(i int) int
	SetAnimatedPosition(i, v int)
}

type stepper struct {
	target int
	gen    uint64
	cancel context.CancelFunc
}

// Driver keeps at most one stepper per player. It is driven from a single
// goroutine: Retarget, Step and Stop must not be called concurrently.
type Driver struct {
	ctx      context.Context
	interval time.Duration
	ticks    chan Tick
	steppers map[int]*stepper
	gen      uint64
	log      *zap.Logger
}

func NewDriver(ctx context.Context, interval time.Duration, log *zap.Logger) *Driver {
	if log == nil {
		log = zap.NewNop()
	}
	return &Driver{
		ctx:      ctx,
		interval: interval,
		ticks:    make(chan Tick),
		steppers: make(map[int]*stepper),
		log:      log,
	}
}

func (d *Driver) Ticks() <-chan Tick { return d.ticks }

// Retarget points player's stepper at target, starting one if needed.
// A running stepper keeps its clock and only changes destination.
func (d *Driver) Retarget(player, current, target int) {
	if s, ok := d.steppers[player]; ok {
		if current == target {
			d.Stop(player)
			return
		}
		if s.target != target {
			d.log.Debug("retarget", zap.Int("player", player), zap.Int("from", s.target), zap.Int("to", target))
			s.target = target
		}
		return
	}
	if current == target {
		return
	}

	d.gen++
	ctx, cancel := context.WithCancel(d.ctx)
	s := &stepper{target: target, gen: d.gen, cancel: cancel}
	d.steppers[player] = s
	d.log.Debug("stepper started", zap.Int("player", player), zap.Int("from", current), zap.Int("to", target))
	go d.run(ctx, player, s.gen)
}

func (d *Driver) run(ctx context.Context, player int, gen uint64) {
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			select {
			case d.ticks <- Tick{Player: player, Gen: gen}:
			case <-ctx.Done():
				return
			}
		}
	}
}

// Step applies one tick. Ticks from stopped or replaced steppers are
// dropped. It reports whether the position changed.
func (d *Driver) Step(t Tick, pos Positions) bool {
	s, ok := d.steppers[t.Player]
	if !ok || s.gen != t.Gen {
		return false
	}

	cur := pos.AnimatedPosition(t.Player)
	if cur == s.target {
		d.Stop(t.Player)
		return false
	}

	next := cur + 1
	if s.target < cur {
		next = cur - 1
	}
	pos.SetAnimatedPosition(t.Player, next)

	if next == s.target {
		d.log.Debug("stepper arrived", zap.Int("player", t.Player), zap.Int("at", next))
		d.Stop(t.Player)
	}
	return true
}

func (d *Driver) Stop(player int) {
	if s, ok := d.steppers[player]; ok {
		s.cancel()
		delete(d.steppers, player)
	}
}

func (d *Driver) StopAll() {
	for p := range d.steppers {
		d.Stop(p)
	}
}

// Target reports the destination of player's running stepper.
func (d *Driver) Target(player int) (int, bool) {
	s, ok := d.steppers[player]
	if !ok {
		return 0, false
	}
	return s.target, true
}

// Animating lists players with a running stepper, ascending.
func (d *Driver) Animating() []int {
	out := make([]int, 0, len(d.steppers))
	for p := range d.steppers {
		out = append(out, p)
	}
	sort.Ints(out)
	return out
}
