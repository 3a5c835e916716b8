package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DoyleJ11/ladders-display/internal/store"
	"github.com/DoyleJ11/ladders-display/pkg/types"
)

func intp(v int) *int { return &v }

func openFrame(snap *types.GameSnapshot) store.Frame {
	return store.Frame{Conn: types.ConnOpen, Snapshot: snap, AnimatedPosition: map[int]int{}}
}

func TestRender_ConnectingTakesPrecedence(t *testing.T) {
	snap := &types.GameSnapshot{Screen: types.ScreenGame}
	for _, c := range []types.ConnState{types.ConnConnecting, types.ConnClosed} {
		v := Render(store.Frame{Conn: c, Snapshot: snap})
		assert.Equal(t, KindConnecting, v.Kind, c.String())
		assert.Nil(t, v.Game)
	}
}

func TestRender_LoadingWithoutSnapshot(t *testing.T) {
	assert.Equal(t, KindLoading, Render(openFrame(nil)).Kind)
	assert.Equal(t, KindLoading, Render(openFrame(&types.GameSnapshot{Screen: types.ScreenUnknown})).Kind)
}

func TestRender_MainHighlightsCount(t *testing.T) {
	v := Render(openFrame(&types.GameSnapshot{Screen: types.ScreenMain, NumPlayers: 3}))
	require.Equal(t, KindMain, v.Kind)
	require.Len(t, v.Main.Options, 3)
	assert.False(t, v.Main.Options[0].Selected)
	assert.True(t, v.Main.Options[1].Selected)
	assert.Equal(t, 3, v.Main.Options[1].Count)
}

func TestRender_EndNamesWinner(t *testing.T) {
	snap := &types.GameSnapshot{
		Screen:  types.ScreenEnd,
		Players: []types.Player{{Color: "#FF0000"}, {Color: "#0000FF"}},
		Winner:  intp(1),
	}
	v := Render(openFrame(snap))
	require.Equal(t, KindEnd, v.Kind)
	assert.Equal(t, 1, v.End.Winner)
	assert.Equal(t, 2, v.End.Number)
	assert.Equal(t, "#0000FF", v.End.Color)

	snap.Winner = intp(5)
	assert.Equal(t, -1, Render(openFrame(snap)).End.Winner)
	snap.Winner = nil
	assert.Equal(t, -1, Render(openFrame(snap)).End.Winner)
}

func TestLayout_Serpentine(t *testing.T) {
	require.Len(t, Layout, BoardSize)
	assert.Equal(t, 100, Layout[0][0], "top-left")
	assert.Equal(t, 91, Layout[0][9])
	assert.Equal(t, 1, Layout[9][0], "bottom-left")
	assert.Equal(t, 10, Layout[9][9])
	assert.Equal(t, []int{20, 19, 18, 17, 16, 15, 14, 13, 12, 11}, Layout[8])

	seen := make(map[int]bool)
	for _, row := range Layout {
		for _, n := range row {
			seen[n] = true
		}
	}
	assert.Len(t, seen, LastCell)
}

func cellAt(t *testing.T, g *GameView, n int) Cell {
	t.Helper()
	for _, row := range g.Rows {
		for _, c := range row {
			if c.Number == n {
				return c
			}
		}
	}
	t.Fatalf("no cell %d", n)
	return Cell{}
}

func TestRender_GameDrawsAnimatedPositions(t *testing.T) {
	snap := &types.GameSnapshot{
		Screen:      types.ScreenGame,
		Players:     []types.Player{{Color: "#FF0000", Position: 6}, {Color: "#00FF00", Position: 1}},
		CurrentTurn: 0,
		DiceValue:   4,
		Board:       types.Board{Ladders: map[int]int{4: 14}, Snakes: map[int]int{17: 7}},
	}
	f := openFrame(snap)
	f.AnimatedPosition = map[int]int{0: 3}
	f.Animating = []int{0}

	v := Render(f)
	require.Equal(t, KindGame, v.Kind)
	g := v.Game

	require.NotNil(t, g.Turn)
	assert.Equal(t, 1, g.Turn.Number)
	assert.True(t, g.Rolled())

	moving := cellAt(t, g, 3).Tokens
	require.Len(t, moving, 1, "tokens are drawn where the animation is, not the target")
	assert.True(t, moving[0].Animating)
	assert.Empty(t, cellAt(t, g, 6).Tokens)

	require.Len(t, g.Start, 1, "player 1 has not been animated off the start yet")
	assert.Equal(t, 1, g.Start[0].Index)

	assert.Equal(t, 14, cellAt(t, g, 4).Ladder)
	assert.Equal(t, 7, cellAt(t, g, 17).Snake)

	require.Len(t, g.Players, 2)
	assert.Equal(t, 6, g.Players[0].Position, "the list shows authoritative positions")
	assert.True(t, g.Players[0].Active)
}

func TestRender_QuestionOptions(t *testing.T) {
	snap := &types.GameSnapshot{
		Screen:          types.ScreenGame,
		Players:         []types.Player{{Color: "#FF0000", Position: 4}},
		QuestionActive:  true,
		QuestionType:    types.QuestionSnake,
		CurrentQuestion: &types.Question{Question: "2+2?", Options: []string{"3", "4", "5"}},
		SelectedAnswer:  intp(1),
	}
	g := Render(openFrame(snap)).Game
	require.NotNil(t, g.Question)
	assert.Equal(t, types.QuestionSnake, g.Question.Kind)
	require.Len(t, g.Question.Options, 3)
	assert.Equal(t, "A", g.Question.Options[0].Letter)
	assert.Equal(t, "C", g.Question.Options[2].Letter)
	assert.True(t, g.Question.Options[1].Selected)
	assert.False(t, g.Question.Options[0].Selected)

	snap.QuestionActive = false
	assert.Nil(t, Render(openFrame(snap)).Game.Question)
}

func TestRender_CustomizeMarksTakenAndSelected(t *testing.T) {
	snap := &types.GameSnapshot{
		Screen:             types.ScreenCustomize,
		NumPlayers:         3,
		Players:            []types.Player{{Color: "#00FF00"}},
		CurrentPlayerSetup: 1,
	}
	f := openFrame(snap)
	f.LocalColor = 6

	c := Render(f).Customize
	require.NotNil(t, c)
	assert.Equal(t, 2, c.Player)
	require.Len(t, c.Ready, 1)
	require.Len(t, c.Swatches, 8)
	assert.True(t, c.Swatches[1].Taken)
	assert.False(t, c.Swatches[0].Taken)
	assert.True(t, c.Swatches[6].Selected)
	assert.Equal(t, "#FFA500", c.Selected.Hex)
}

func TestText_Spanish(t *testing.T) {
	es := NewPrinter("es")
	lines := Text(View{Kind: KindConnecting}, es)
	require.NotEmpty(t, lines)
	assert.Equal(t, "Conectando al servidor...", lines[0])

	lines = Text(View{Kind: KindEnd, End: &EndView{Winner: 1, Number: 2, Color: "#0000FF"}}, es)
	assert.Equal(t, "¡Ganador!", lines[0])
	assert.Equal(t, "Jugador 2 #0000FF", lines[1])

	assert.Equal(t, "Morado", ColorName(es, "Purple"))
}

func TestText_FallsBackToEnglish(t *testing.T) {
	p := NewPrinter("not a tag!")
	assert.Equal(t, []string{"Loading game..."}, Text(View{Kind: KindLoading}, p))
	assert.Equal(t, "Purple", ColorName(p, "Purple"))
}

func TestText_GameBoardRows(t *testing.T) {
	snap := &types.GameSnapshot{
		Screen:  types.ScreenGame,
		Players: []types.Player{{Color: "#FF0000", Position: 1}},
	}
	f := openFrame(snap)
	f.AnimatedPosition = map[int]int{0: 1}

	lines := Text(Render(f), NewPrinter("en"))
	assert.Contains(t, lines, "Press left to roll")
	assert.Contains(t, lines, "> Player 1 - square 1")

	var bottom string
	for _, l := range lines {
		if len(l) >= 3 && l[:3] == "  1" {
			bottom = l
		}
	}
	require.NotEmpty(t, bottom, "bottom row starts with cell 1")
	assert.Contains(t, bottom, "  1    1")
}
