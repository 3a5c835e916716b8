package render

import (
	"encoding/json"

	"github.com/DoyleJ11/ladders-display/internal/palette"
	"github.com/DoyleJ11/ladders-display/internal/store"
	"github.com/DoyleJ11/ladders-display/pkg/types"
)

type Kind int

const (
	KindConnecting Kind = iota
	KindLoading
	KindMain
	KindCustomize
	KindGame
	KindEnd
)

func (k Kind) String() string {
	switch k {
	case KindConnecting:
		return "connecting"
	case KindLoading:
		return "loading"
	case KindMain:
		return "main"
	case KindCustomize:
		return "customize"
	case KindGame:
		return "game"
	case KindEnd:
		return "end"
	default:
		return "invalid"
	}
}

func (k Kind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// View is exactly one presentation; only the field matching Kind is set.
type View struct {
	Kind      Kind           `json:"kind"`
	Main      *MainView      `json:"main,omitempty"`
	Customize *CustomizeView `json:"customize,omitempty"`
	Game      *GameView      `json:"game,omitempty"`
	End       *EndView       `json:"end,omitempty"`
}

type CountOption struct {
	Count    int  `json:"count"`
	Selected bool `json:"selected"`
}

type MainView struct {
	Options []CountOption `json:"options"`
}

// Token is a player piece; Number is 1-based for display.
type Token struct {
	Index     int    `json:"index"`
	Number    int    `json:"number"`
	Color     string `json:"color"`
	Animating bool   `json:"animating,omitempty"`
}

type Swatch struct {
	Name     string `json:"name"`
	Hex      string `json:"hex"`
	Selected bool   `json:"selected"`
	Taken    bool   `json:"taken"`
}

type CustomizeView struct {
	Player   int      `json:"player"`
	Ready    []Token  `json:"ready"`
	Swatches []Swatch `json:"swatches"`
	Selected Swatch   `json:"selected"`
}

type Cell struct {
	Number int     `json:"number"`
	Ladder int     `json:"ladder,omitempty"`
	Snake  int     `json:"snake,omitempty"`
	Tokens []Token `json:"tokens,omitempty"`
}

type PlayerRow struct {
	Token
	Position int  `json:"position"`
	Active   bool `json:"active"`
}

type Option struct {
	Letter   string `json:"letter"`
	Text     string `json:"text"`
	Selected bool   `json:"selected"`
}

type QuestionView struct {
	Kind    types.QuestionKind `json:"kind"`
	Text    string             `json:"text"`
	Options []Option           `json:"options"`
}

type GameView struct {
	Turn     *Token        `json:"turn,omitempty"`
	Dice     int           `json:"dice"`
	Players  []PlayerRow   `json:"players"`
	Start    []Token       `json:"start,omitempty"`
	Rows     [][]Cell      `json:"rows"`
	Question *QuestionView `json:"question,omitempty"`
}

// Rolled is false while the current player has not thrown the dice.
func (g *GameView) Rolled() bool { return g.Dice > 0 }

type EndView struct {
	Winner int    `json:"winner"` // -1 when the server named no valid player
	Number int    `json:"number,omitempty"`
	Color  string `json:"color,omitempty"`
}

// Render maps a frame to its single presentation. It never mutates f.
func Render(f store.Frame) View {
	if f.Conn != types.ConnOpen {
		return View{Kind: KindConnecting}
	}
	snap := f.Snapshot
	if snap == nil {
		return View{Kind: KindLoading}
	}

	switch snap.Screen {
	case types.ScreenMain:
		return View{Kind: KindMain, Main: renderMain(snap)}
	case types.ScreenCustomize:
		return View{Kind: KindCustomize, Customize: renderCustomize(f)}
	case types.ScreenGame:
		return View{Kind: KindGame, Game: renderGame(f)}
	case types.ScreenEnd:
		return View{Kind: KindEnd, End: renderEnd(snap)}
	case types.ScreenUnknown:
		return View{Kind: KindLoading}
	}
	return View{Kind: KindLoading}
}

func renderMain(snap *types.GameSnapshot) *MainView {
	v := &MainView{}
	for _, n := range []int{2, 3, 4} {
		v.Options = append(v.Options, CountOption{Count: n, Selected: snap.NumPlayers == n})
	}
	return v
}

func token(f store.Frame, i int, p types.Player) Token {
	return Token{Index: i, Number: i + 1, Color: p.Color, Animating: f.IsAnimating(i)}
}

func renderCustomize(f store.Frame) *CustomizeView {
	snap := f.Snapshot
	v := &CustomizeView{Player: snap.CurrentPlayerSetup + 1}

	taken := make(map[int]bool)
	for i, p := range snap.Players {
		v.Ready = append(v.Ready, token(f, i, p))
		if idx := palette.IndexOf(p.Color); idx >= 0 {
			taken[idx] = true
		}
	}
	for i, c := range palette.All() {
		sw := Swatch{Name: c.Name, Hex: c.Hex, Selected: i == f.LocalColor, Taken: taken[i]}
		v.Swatches = append(v.Swatches, sw)
		if sw.Selected {
			v.Selected = sw
		}
	}
	return v
}

func renderGame(f store.Frame) *GameView {
	snap := f.Snapshot
	v := &GameView{Dice: snap.DiceValue}

	if t := snap.CurrentTurn; t >= 0 && t < len(snap.Players) {
		tk := token(f, t, snap.Players[t])
		v.Turn = &tk
	}

	at := make(map[int][]Token)
	for i, p := range snap.Players {
		tk := token(f, i, p)
		v.Players = append(v.Players, PlayerRow{Token: tk, Position: p.Position, Active: i == snap.CurrentTurn})

		pos := f.Position(i)
		if pos < 1 || pos > LastCell {
			v.Start = append(v.Start, tk)
			continue
		}
		at[pos] = append(at[pos], tk)
	}

	for _, numbers := range Layout {
		row := make([]Cell, 0, len(numbers))
		for _, n := range numbers {
			row = append(row, Cell{
				Number: n,
				Ladder: snap.Board.Ladders[n],
				Snake:  snap.Board.Snakes[n],
				Tokens: at[n],
			})
		}
		v.Rows = append(v.Rows, row)
	}

	if snap.QuestionActive && snap.CurrentQuestion != nil {
		q := &QuestionView{Kind: snap.QuestionType, Text: snap.CurrentQuestion.Question}
		for i, text := range snap.CurrentQuestion.Options {
			q.Options = append(q.Options, Option{
				Letter:   string(rune('A' + i)),
				Text:     text,
				Selected: snap.SelectedAnswer != nil && *snap.SelectedAnswer == i,
			})
		}
		v.Question = q
	}
	return v
}

func renderEnd(snap *types.GameSnapshot) *EndView {
	if snap.Winner == nil || *snap.Winner < 0 || *snap.Winner >= len(snap.Players) {
		return &EndView{Winner: -1}
	}
	w := *snap.Winner
	return &EndView{Winner: w, Number: w + 1, Color: snap.Players[w].Color}
}
