package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/mattn/go-runewidth"
	"github.com/nsf/termbox-go"
	"go.uber.org/zap"
	"golang.org/x/text/message"

	"github.com/DoyleJ11/ladders-display/internal/palette"
	"github.com/DoyleJ11/ladders-display/internal/render"
	"github.com/DoyleJ11/ladders-display/internal/session"
	"github.com/DoyleJ11/ladders-display/internal/store"
)

type Poster interface {
	Post(m session.Msg) bool
}

// xterm-256 indices for the palette; termbox's 256 mode is offset by one.
var xterm = map[string]int{
	"#FF0000": 196,
	"#00FF00": 46,
	"#0000FF": 21,
	"#FFFF00": 226,
	"#FF00FF": 201,
	"#00FFFF": 51,
	"#FFA500": 214,
	"#800080": 90,
}

// AttrFor maps a palette color to a termbox foreground in Output256 mode.
func AttrFor(hex string) termbox.Attribute {
	if n, ok := xterm[strings.ToUpper(hex)]; ok {
		return termbox.Attribute(n + 1)
	}
	return termbox.ColorDefault
}

// Action translates a key press. quit is true for Esc and Ctrl-C.
func Action(ev termbox.Event) (msg session.Msg, quit bool) {
	if ev.Type != termbox.EventKey {
		return nil, false
	}
	switch ev.Key {
	case termbox.KeyEsc, termbox.KeyCtrlC:
		return nil, true
	case termbox.KeyArrowLeft, termbox.KeyArrowUp:
		return session.MoveColorCursor{Delta: -1}, false
	case termbox.KeyArrowRight, termbox.KeyArrowDown:
		return session.MoveColorCursor{Delta: 1}, false
	case termbox.KeyEnter:
		return session.SelectColor{}, false
	}
	if ev.Ch >= '1' && ev.Ch <= '8' {
		return session.SetColorCursor{Index: int(ev.Ch - '1')}, false
	}
	if ev.Ch == 'q' {
		return nil, true
	}
	return nil, false
}

// Run owns the terminal until ctx ends, the user quits, or the session
// stops publishing frames.
func Run(ctx context.Context, s Poster, p *message.Printer, log *zap.Logger) error {
	if err := termbox.Init(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	defer termbox.Close()
	termbox.SetOutputMode(termbox.Output256)

	frames := make(chan store.Frame, 8)
	id := "tui-" + uuid.NewString()
	if !s.Post(session.Watch{ID: id, Outbox: frames}) {
		return nil
	}
	defer s.Post(session.Unwatch{ID: id})

	events := make(chan termbox.Event)
	go func() {
		for {
			ev := termbox.PollEvent()
			if ev.Type == termbox.EventInterrupt {
				close(events)
				return
			}
			events <- ev
		}
	}()
	defer func() {
		termbox.Interrupt()
		for range events {
		}
	}()

	var last store.Frame
	for {
		select {
		case <-ctx.Done():
			return nil

		case f, ok := <-frames:
			if !ok {
				log.Info("display stopped")
				return nil
			}
			last = f
			paint(render.Text(render.Render(f), p))

		case ev := <-events:
			if ev.Type == termbox.EventError {
				return fmt.Errorf("tui: %w", ev.Err)
			}
			if ev.Type == termbox.EventResize {
				paint(render.Text(render.Render(last), p))
				continue
			}
			msg, quit := Action(ev)
			if quit {
				return nil
			}
			if msg != nil {
				s.Post(msg)
			}
		}
	}
}

func paint(lines []string) {
	_ = termbox.Clear(termbox.ColorDefault, termbox.ColorDefault)
	for y, line := range lines {
		paintLine(y, line)
	}
	_ = termbox.Flush()
}

// paintLine draws palette hex codes in their own color.
func paintLine(y int, line string) {
	runes := []rune(line)
	x := 0
	for i := 0; i < len(runes); i++ {
		fg := termbox.ColorDefault
		if runes[i] == '#' && i+7 <= len(runes) && palette.IndexOf(string(runes[i:i+7])) >= 0 {
			fg = AttrFor(string(runes[i : i+7]))
			for _, r := range runes[i : i+7] {
				termbox.SetCell(x, y, r, fg|termbox.AttrBold, termbox.ColorDefault)
				x++
			}
			i += 6
			continue
		}
		termbox.SetCell(x, y, runes[i], fg, termbox.ColorDefault)
		x += runewidth.RuneWidth(runes[i])
	}
}
