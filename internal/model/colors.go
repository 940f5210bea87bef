package model

import (
	colerr "github.com/amterp/colplot/internal/errors"
)

// Palette names.
const (
	PaletteClassic  = "classic"
	PaletteExtended = "extended"
)

// ClassicPalette holds the single-letter color symbols red, green, blue, cyan,
// magenta, yellow and black. Kept in this order so output matches older figures.
var ClassicPalette = []string{"r", "g", "b", "c", "m", "y", "k"}

// ExtendedPalette is a larger hex palette for files with more than seven columns.
var ExtendedPalette = []string{
	"#3b82f6", // blue
	"#f59e0b", // amber
	"#10b981", // green
	"#ef4444", // red
	"#9333ea", // purple
	"#06b6d4", // cyan
	"#ec4899", // pink
	"#6b7280", // gray
	"#84cc16", // lime
	"#f97316", // orange
	"#1e3a8a", // navy
	"#14b8a6", // teal
	"#a16207", // brown
	"#111827", // near-black
}

// PaletteNames lists the recognized palette names.
func PaletteNames() []string {
	return []string{PaletteClassic, PaletteExtended}
}

// PaletteByName returns a copy of the named palette.
func PaletteByName(name string) ([]string, error) {
	var src []string
	switch name {
	case "", PaletteClassic:
		src = ClassicPalette
	case PaletteExtended:
		src = ExtendedPalette
	default:
		return nil, colerr.InvalidChoice("palette", name, PaletteNames())
	}
	out := make([]string, len(src))
	copy(out, src)
	return out, nil
}

// Cursor hands out palette colors one column at a time.
// Each call to Next rotates the palette right by one and returns the new head,
// so the classic palette yields k, y, m, c, b, g, r and then repeats.
type Cursor struct {
	palette []string
	pos     int
}

// NewCursor creates a cursor positioned before the first rotation.
func NewCursor(palette []string) *Cursor {
	return &Cursor{palette: palette}
}

// Next advances the cursor and returns the color for the next column.
func (c *Cursor) Next() string {
	n := len(c.palette)
	if n == 0 {
		return ""
	}
	c.pos = (c.pos - 1 + n) % n
	return c.palette[c.pos]
}

// ColorAt returns the color the cursor yields for the i-th column (0-based)
// of a fresh cursor.
func ColorAt(palette []string, i int) string {
	n := len(palette)
	if n == 0 {
		return ""
	}
	return palette[((-(i+1))%n+n)%n]
}
