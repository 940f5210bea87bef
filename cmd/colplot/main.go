package main

import (
	"github.com/amterp/colplot/internal/cli"
	"github.com/amterp/colplot/internal/display"
	"github.com/amterp/colplot/internal/viewer"
)

func main() {
	cli.Run(func(title string) viewer.Renderer {
		return display.NewWindowViewer(title)
	})
}
