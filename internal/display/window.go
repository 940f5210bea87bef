// Package display shows figures in a desktop window.
package display

import (
	"bytes"
	"fmt"
	"image"
	_ "image/png"

	"github.com/amterp/colplot/internal/plot"
	"github.com/hajimehoshi/ebiten/v2"
)

// WindowViewer shows the figure in a desktop window.
type WindowViewer struct {
	title string
}

// NewWindowViewer creates a viewer whose window carries the given title.
func NewWindowViewer(title string) *WindowViewer {
	return &WindowViewer{title: title}
}

// Show opens a window displaying the figure. It blocks until the window closes
// (or Escape is pressed) and writes nothing to disk.
func (v *WindowViewer) Show(fig *plot.Figure) (string, error) {
	var buf bytes.Buffer
	if err := fig.Render(&buf, plot.FormatPNG); err != nil {
		return "", err
	}
	img, _, err := image.Decode(&buf)
	if err != nil {
		return "", fmt.Errorf("failed to decode rendered figure: %w", err)
	}

	g := &figureWindow{img: ebiten.NewImageFromImage(img)}
	ebiten.SetWindowTitle(v.title)
	ebiten.SetWindowSize(img.Bounds().Dx(), img.Bounds().Dy())
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(30)
	return "", ebiten.RunGame(g)
}

type figureWindow struct {
	img *ebiten.Image
}

func (w *figureWindow) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	return nil
}

func (w *figureWindow) Draw(screen *ebiten.Image) {
	screen.DrawImage(w.img, nil)
}

func (w *figureWindow) Layout(outsideWidth, outsideHeight int) (int, int) {
	b := w.img.Bounds()
	return b.Dx(), b.Dy()
}
