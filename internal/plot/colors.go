package plot

import (
	"fmt"
	"strings"

	colerr "github.com/amterp/colplot/internal/errors"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// symbolColors maps the single-letter palette symbols to RGB.
var symbolColors = map[string]drawing.Color{
	"r": {R: 255, G: 0, B: 0, A: 255},
	"g": {R: 0, G: 128, B: 0, A: 255},
	"b": {R: 0, G: 0, B: 255, A: 255},
	"c": {R: 0, G: 191, B: 191, A: 255},
	"m": {R: 191, G: 0, B: 191, A: 255},
	"y": {R: 191, G: 191, B: 0, A: 255},
	"k": {R: 0, G: 0, B: 0, A: 255},
	"w": {R: 255, G: 255, B: 255, A: 255},
}

// ParseColor resolves a palette entry, either a color symbol or a "#rrggbb" hex string.
func ParseColor(s string) (drawing.Color, error) {
	if c, ok := symbolColors[s]; ok {
		return c, nil
	}
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 && len(hex) != 3 {
		return drawing.Color{}, colerr.InvalidField("color", s)
	}
	for _, r := range hex {
		if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
			return drawing.Color{}, colerr.InvalidField("color", s)
		}
	}
	return drawing.ColorFromHex(hex), nil
}

// HexColor returns the "#rrggbb" form of a palette entry, or "" if it doesn't parse.
func HexColor(s string) string {
	c, err := ParseColor(s)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
