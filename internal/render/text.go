package render

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/DoyleJ11/ladders-display/pkg/types"
)

// Message keys are the English texts; other languages register
// translations in the default catalog.
var spanish = map[string]string{
	"Connecting to server...":             "Conectando al servidor...",
	"Make sure the server is running":     "Asegúrate de que el servidor esté corriendo",
	"Loading game...":                     "Cargando juego...",
	"Snakes and Ladders":                  "Serpientes y Escaleras",
	"Educational edition!":                "¡Versión Educativa!",
	"How many players?":                   "¿Cuántos jugadores?",
	"%d players":                          "%d jugadores",
	"Player %d":                           "Jugador %d",
	"Choose your favorite color":          "Elige tu color favorito",
	"Ready players:":                      "Jugadores listos:",
	"taken":                               "ocupado",
	"Turn: %s":                            "Turno: %s",
	"Dice: %d":                            "Dado: %d",
	"Press left to roll":                  "Presiona izquierda para lanzar",
	"Players":                             "Jugadores",
	"%s - square %d":                      "%s - casilla %d",
	"Ladder! Answer correctly to climb":   "¡Escalera! Responde correctamente para subir",
	"Snake! Answer correctly to avoid it": "¡Serpiente! Responde correctamente para evitarla",
	"Start":                               "Salida",
	"Winner!":                             "¡Ganador!",
	"No winner":                           "Sin ganador",
	"Play again?":                         "¿Jugar de nuevo?",
	"Red":                                 "Rojo",
	"Green":                               "Verde",
	"Blue":                                "Azul",
	"Yellow":                              "Amarillo",
	"Magenta":                             "Magenta",
	"Cyan":                                "Cyan",
	"Orange":                              "Naranja",
	"Purple":                              "Morado",
}

func init() {
	for key, msg := range spanish {
		if err := message.SetString(language.Spanish, key, msg); err != nil {
			panic(fmt.Sprintf("render: catalog entry %q: %v", key, err))
		}
	}
}

// NewPrinter falls back to English for tags it cannot parse.
func NewPrinter(locale string) *message.Printer {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	return message.NewPrinter(tag)
}

// ColorName translates a palette name.
func ColorName(p *message.Printer, name string) string {
	return p.Sprintf(message.Key(name, name))
}

// Text renders v as plain lines for terminals and the text endpoint.
func Text(v View, p *message.Printer) []string {
	switch v.Kind {
	case KindConnecting:
		return []string{p.Sprintf("Connecting to server..."), p.Sprintf("Make sure the server is running")}
	case KindLoading:
		return []string{p.Sprintf("Loading game...")}
	case KindMain:
		return mainText(v.Main, p)
	case KindCustomize:
		return customizeText(v.Customize, p)
	case KindGame:
		return gameText(v.Game, p)
	case KindEnd:
		return endText(v.End, p)
	}
	return nil
}

func mainText(v *MainView, p *message.Printer) []string {
	lines := []string{
		p.Sprintf("Snakes and Ladders"),
		p.Sprintf("Educational edition!"),
		"",
		p.Sprintf("How many players?"),
	}
	for _, o := range v.Options {
		lines = append(lines, cursor(o.Selected)+p.Sprintf("%d players", o.Count))
	}
	return lines
}

func cursor(selected bool) string {
	if selected {
		return "> "
	}
	return "  "
}

func customizeText(v *CustomizeView, p *message.Printer) []string {
	lines := []string{
		p.Sprintf("Player %d", v.Player),
		p.Sprintf("Choose your favorite color"),
	}
	if len(v.Ready) > 0 {
		var ready []string
		for _, t := range v.Ready {
			ready = append(ready, fmt.Sprintf("%d(%s)", t.Number, t.Color))
		}
		lines = append(lines, p.Sprintf("Ready players:")+" "+strings.Join(ready, " "))
	}
	lines = append(lines, "")
	for _, sw := range v.Swatches {
		line := cursor(sw.Selected) + ColorName(p, sw.Name) + " " + sw.Hex
		if sw.Taken {
			line += " (" + p.Sprintf("taken") + ")"
		}
		lines = append(lines, line)
	}
	lines = append(lines, "", "= "+ColorName(p, v.Selected.Name))
	return lines
}

func gameText(v *GameView, p *message.Printer) []string {
	var lines []string
	if v.Turn != nil {
		lines = append(lines, p.Sprintf("Turn: %s", p.Sprintf("Player %d", v.Turn.Number)))
	}
	if v.Rolled() {
		lines = append(lines, p.Sprintf("Dice: %d", v.Dice))
	} else {
		lines = append(lines, p.Sprintf("Press left to roll"))
	}

	lines = append(lines, "", p.Sprintf("Players"))
	for _, row := range v.Players {
		lines = append(lines, cursor(row.Active)+p.Sprintf("%s - square %d", p.Sprintf("Player %d", row.Number), row.Position))
	}
	if len(v.Start) > 0 {
		var nums []string
		for _, t := range v.Start {
			nums = append(nums, fmt.Sprint(t.Number))
		}
		lines = append(lines, p.Sprintf("Start")+": "+strings.Join(nums, " "))
	}

	lines = append(lines, "")
	for _, row := range v.Rows {
		var b strings.Builder
		for _, c := range row {
			b.WriteString(cellText(c))
		}
		lines = append(lines, strings.TrimRight(b.String(), " "))
	}

	if q := v.Question; q != nil {
		lines = append(lines, "")
		if q.Kind == types.QuestionLadder {
			lines = append(lines, p.Sprintf("Ladder! Answer correctly to climb"))
		} else {
			lines = append(lines, p.Sprintf("Snake! Answer correctly to avoid it"))
		}
		lines = append(lines, q.Text)
		for _, o := range q.Options {
			lines = append(lines, cursor(o.Selected)+o.Letter+") "+o.Text)
		}
	}
	return lines
}

// cellText is a fixed-width cell: number, ^dest for ladders, vdest for
// snakes, then the tokens standing on it.
func cellText(c Cell) string {
	s := fmt.Sprintf("%3d", c.Number)
	switch {
	case c.Ladder != 0:
		s += fmt.Sprintf("^%-3d", c.Ladder)
	case c.Snake != 0:
		s += fmt.Sprintf("v%-3d", c.Snake)
	default:
		s += "    "
	}
	var tokens strings.Builder
	for _, t := range c.Tokens {
		tokens.WriteString(fmt.Sprint(t.Number))
		if t.Animating {
			tokens.WriteString("*")
		}
	}
	return s + fmt.Sprintf("%-5s", tokens.String())
}

func endText(v *EndView, p *message.Printer) []string {
	if v.Winner < 0 {
		return []string{p.Sprintf("No winner"), "", p.Sprintf("Play again?")}
	}
	return []string{
		p.Sprintf("Winner!"),
		p.Sprintf("Player %d", v.Number) + " " + v.Color,
		"",
		p.Sprintf("Play again?"),
	}
}
