package store

import (
	"sort"

	"github.com/DoyleJ11/ladders-display/internal/palette"
	"github.com/DoyleJ11/ladders-display/pkg/types"
)

// Store is owned by the session loop; it is not safe for concurrent use.
// Other goroutines read Frames.
type Store struct {
	snap        *types.GameSnapshot
	localColor  int
	serverColor *int
	animated    map[int]int
}

func New() *Store {
	return &Store{animated: make(map[int]int)}
}

// ApplySnapshot replaces the stored snapshot and returns the player indices
// whose authoritative position differs from the rendered one.
func (s *Store) ApplySnapshot(snap *types.GameSnapshot) []int {
	prev := s.snap
	s.snap = snap
	if snap == nil {
		return nil
	}

	for i := range s.animated {
		if i >= len(snap.Players) {
			delete(s.animated, i)
		}
	}

	if snap.SelectedColorIndex != nil {
		v := *snap.SelectedColorIndex
		s.serverColor = &v
		s.localColor = palette.Wrap(v)
	} else if newChooser(prev, snap) {
		s.localColor = 0
	}

	var delta []int
	for i, p := range snap.Players {
		if p.Position != s.animated[i] {
			delta = append(delta, i)
		}
	}
	sort.Ints(delta)
	return delta
}

// newChooser reports whether the customize screen moved on to the next
// player since the previous snapshot.
func newChooser(prev, next *types.GameSnapshot) bool {
	if next.Screen != types.ScreenCustomize {
		return false
	}
	if len(next.Players) != next.CurrentPlayerSetup {
		return false
	}
	return prev == nil || len(prev.Players) != len(next.Players)
}

func (s *Store) Snapshot() *types.GameSnapshot { return s.snap }

func (s *Store) AnimatedPosition(i int) int { return s.animated[i] }

func (s *Store) SetAnimatedPosition(i, v int) { s.animated[i] = v }

// Target is the authoritative position for player i, ok=false when the
// current snapshot has no such player.
func (s *Store) Target(i int) (int, bool) {
	if s.snap == nil || i < 0 || i >= len(s.snap.Players) {
		return 0, false
	}
	return s.snap.Players[i].Position, true
}

func (s *Store) SelectedColorIndexLocal() int { return s.localColor }

func (s *Store) SetSelectedColorIndexLocal(v int) { s.localColor = palette.Wrap(v) }

func (s *Store) MoveSelectedColorIndexLocal(delta int) {
	s.localColor = palette.Wrap(s.localColor + delta)
}

// Frame is an immutable copy of everything a renderer needs.
type Frame struct {
	Conn             types.ConnState
	Snapshot         *types.GameSnapshot
	LocalColor       int
	ServerColor      *int
	AnimatedPosition map[int]int
	Animating        []int
}

func (s *Store) Frame(conn types.ConnState, animating []int) Frame {
	f := Frame{
		Conn:             conn,
		Snapshot:         s.snap.Clone(),
		LocalColor:       s.localColor,
		AnimatedPosition: make(map[int]int, len(s.animated)),
		Animating:        append([]int(nil), animating...),
	}
	if s.serverColor != nil {
		v := *s.serverColor
		f.ServerColor = &v
	}
	for k, v := range s.animated {
		f.AnimatedPosition[k] = v
	}
	return f
}

// Position is where player i is drawn; unseen players sit on 0.
func (f Frame) Position(i int) int { return f.AnimatedPosition[i] }

func (f Frame) IsAnimating(i int) bool {
	for _, a := range f.Animating {
		if a == i {
			return true
		}
	}
	return false
}
