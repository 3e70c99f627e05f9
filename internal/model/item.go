package model

// Item is one option on the wheel.
// ID is the only identity; labels may repeat.
type Item struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Color string `json:"color"`
}

// Palette is the cyclic fill palette. Colors are keyed by position.
var Palette = []string{
	"#EF476F", // pink
	"#FFD166", // yellow
	"#06D6A0", // green
	"#118AB2", // blue
	"#073B4C", // dark blue
	"#9D4EDD", // purple
	"#FF9F1C", // orange
	"#2EC4B6", // teal
}

// DefaultLabels seed a fresh wheel.
var DefaultLabels = []string{
	"Pizza 🍕",
	"Sushi 🍣",
	"Burger 🍔",
	"Salad 🥗",
	"Tacos 🌮",
	"Pasta 🍝",
}

// ColorAt returns the palette entry for position i.
func ColorAt(i int) string {
	if i < 0 {
		i = -i
	}
	return Palette[i%len(Palette)]
}
