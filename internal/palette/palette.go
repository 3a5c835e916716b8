package palette

import "strings"

type Color struct {
	Name string
	Hex  string
}

// Shared by convention with the game server; the index is what both sides
// agree on.
var colors = []Color{
	{Name: "Red", Hex: "#FF0000"},
	{Name: "Green", Hex: "#00FF00"},
	{Name: "Blue", Hex: "#0000FF"},
	{Name: "Yellow", Hex: "#FFFF00"},
	{Name: "Magenta", Hex: "#FF00FF"},
	{Name: "Cyan", Hex: "#00FFFF"},
	{Name: "Orange", Hex: "#FFA500"},
	{Name: "Purple", Hex: "#800080"},
}

func Len() int { return len(colors) }

func All() []Color {
	return append([]Color(nil), colors...)
}

// At wraps i into range, so cursor arithmetic never panics.
func At(i int) Color {
	return colors[Wrap(i)]
}

func Wrap(i int) int {
	n := len(colors)
	return ((i % n) + n) % n
}

// IndexOf returns -1 for colors outside the palette.
func IndexOf(hex string) int {
	for i, c := range colors {
		if strings.EqualFold(c.Hex, hex) {
			return i
		}
	}
	return -1
}
