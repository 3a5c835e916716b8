package tui

import (
	"testing"

	"github.com/nsf/termbox-go"
	"github.com/stretchr/testify/assert"

	"github.com/DoyleJ11/ladders-display/internal/palette"
	"github.com/DoyleJ11/ladders-display/internal/session"
)

func TestAttrFor(t *testing.T) {
	seen := make(map[termbox.Attribute]bool)
	for _, c := range palette.All() {
		a := AttrFor(c.Hex)
		assert.NotEqual(t, termbox.ColorDefault, a, c.Name)
		seen[a] = true
	}
	assert.Len(t, seen, palette.Len(), "every palette color is distinct on screen")

	assert.Equal(t, AttrFor("#FFA500"), AttrFor("#ffa500"))
	assert.Equal(t, termbox.ColorDefault, AttrFor("#123456"))
}

func TestAction(t *testing.T) {
	key := func(k termbox.Key) termbox.Event { return termbox.Event{Type: termbox.EventKey, Key: k} }
	ch := func(r rune) termbox.Event { return termbox.Event{Type: termbox.EventKey, Ch: r} }

	cases := []struct {
		name string
		ev   termbox.Event
		msg  session.Msg
		quit bool
	}{
		{"left", key(termbox.KeyArrowLeft), session.MoveColorCursor{Delta: -1}, false},
		{"right", key(termbox.KeyArrowRight), session.MoveColorCursor{Delta: 1}, false},
		{"enter", key(termbox.KeyEnter), session.SelectColor{}, false},
		{"digit", ch('3'), session.SetColorCursor{Index: 2}, false},
		{"esc", key(termbox.KeyEsc), nil, true},
		{"ctrl-c", key(termbox.KeyCtrlC), nil, true},
		{"q", ch('q'), nil, true},
		{"other", ch('x'), nil, false},
		{"resize", termbox.Event{Type: termbox.EventResize}, nil, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			msg, quit := Action(tc.ev)
			assert.Equal(t, tc.msg, msg)
			assert.Equal(t, tc.quit, quit)
		})
	}
}
