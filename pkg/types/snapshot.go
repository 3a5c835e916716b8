package types

import (
	"encoding/json"
	"fmt"
)

// GameSnapshot:
//   screen: "main" | "customize" | "game" | "end"
//   num_players: number
//   players: Player[] // order defines turn index and drawing order
//   current_player_setup: number // customize only
//   selected_color_index: number // customize only, optional
//   current_turn: number // game only
//   dice_value: number // 0 = not rolled yet this turn
//   board: { ladders: {cell: dest}, snakes: {cell: dest} }
//   question_active: boolean
//   current_question: { question: string, options: string[] }
//   selected_answer: number // optional
//   question_type: "ladder" | "snake"
//   winner: number // end only, optional

type Screen int

const (
	ScreenUnknown Screen = iota
	ScreenMain
	ScreenCustomize
	ScreenGame
	ScreenEnd
)

var screenNames = map[Screen]string{
	ScreenMain:      "main",
	ScreenCustomize: "customize",
	ScreenGame:      "game",
	ScreenEnd:       "end",
}

func (s Screen) String() string {
	if name, ok := screenNames[s]; ok {
		return name
	}
	return "unknown"
}

func ParseScreen(name string) Screen {
	for s, n := range screenNames {
		if n == name {
			return s
		}
	}
	return ScreenUnknown
}

func (s Screen) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// Unrecognized names decode to ScreenUnknown instead of failing the whole
// snapshot; the renderer shows the loading view for them.
func (s *Screen) UnmarshalJSON(b []byte) error {
	var name string
	if err := json.Unmarshal(b, &name); err != nil {
		return fmt.Errorf("screen: %w", err)
	}
	*s = ParseScreen(name)
	return nil
}

type QuestionKind string

const (
	QuestionLadder QuestionKind = "ladder"
	QuestionSnake  QuestionKind = "snake"
)

type Player struct {
	Color    string          `json:"color"`
	Position int             `json:"position"`
	ID       json.RawMessage `json:"id,omitempty"`
}

type Board struct {
	Ladders map[int]int `json:"ladders"`
	Snakes  map[int]int `json:"snakes"`
}

type Question struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

type GameSnapshot struct {
	Screen             Screen       `json:"screen"`
	NumPlayers         int          `json:"num_players"`
	Players            []Player     `json:"players"`
	CurrentPlayerSetup int          `json:"current_player_setup"`
	SelectedColorIndex *int         `json:"selected_color_index,omitempty"`
	CurrentTurn        int          `json:"current_turn"`
	DiceValue          int          `json:"dice_value"`
	Board              Board        `json:"board"`
	QuestionActive     bool         `json:"question_active"`
	CurrentQuestion    *Question    `json:"current_question,omitempty"`
	SelectedAnswer     *int         `json:"selected_answer,omitempty"`
	QuestionType       QuestionKind `json:"question_type,omitempty"`
	Winner             *int         `json:"winner,omitempty"`
}

// Clone returns a deep copy so readers on other goroutines never share
// backing arrays or maps with the event loop.
func (s *GameSnapshot) Clone() *GameSnapshot {
	if s == nil {
		return nil
	}
	c := *s
	c.Players = make([]Player, len(s.Players))
	for i, p := range s.Players {
		c.Players[i] = p
		if p.ID != nil {
			c.Players[i].ID = append(json.RawMessage(nil), p.ID...)
		}
	}
	c.Board.Ladders = cloneCells(s.Board.Ladders)
	c.Board.Snakes = cloneCells(s.Board.Snakes)
	if s.CurrentQuestion != nil {
		q := *s.CurrentQuestion
		q.Options = append([]string(nil), s.CurrentQuestion.Options...)
		c.CurrentQuestion = &q
	}
	c.SelectedColorIndex = cloneInt(s.SelectedColorIndex)
	c.SelectedAnswer = cloneInt(s.SelectedAnswer)
	c.Winner = cloneInt(s.Winner)
	return &c
}

func cloneCells(m map[int]int) map[int]int {
	if m == nil {
		return nil
	}
	out := make(map[int]int, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func cloneInt(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
