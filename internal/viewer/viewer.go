// Package viewer delivers a rendered figure: on screen or to a file.
package viewer

import (
	"os"
	"path/filepath"
	"strings"

	colerr "github.com/amterp/colplot/internal/errors"
	"github.com/amterp/colplot/internal/plot"
)

// Renderer delivers a finished figure. Show returns the path written, or ""
// when nothing was written.
type Renderer interface {
	Show(fig *plot.Figure) (string, error)
}

// FormatForPath picks the figure encoding from the file extension.
func FormatForPath(path string) (plot.Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return plot.FormatPNG, nil
	case ".svg":
		return plot.FormatSVG, nil
	}
	return "", colerr.InvalidField("output", "unsupported figure extension "+filepath.Ext(path)+" (use .png or .svg)")
}

// FileSaver writes the figure to a fixed path.
type FileSaver struct {
	path string
}

// NewFileSaver validates path and returns a saver for it.
func NewFileSaver(path string) (*FileSaver, error) {
	if _, err := FormatForPath(path); err != nil {
		return nil, err
	}
	return &FileSaver{path: path}, nil
}

// Show renders the figure to the saver's path, creating parent directories.
func (s *FileSaver) Show(fig *plot.Figure) (string, error) {
	format, err := FormatForPath(s.path)
	if err != nil {
		return "", err
	}

	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", err
		}
	}

	f, err := os.Create(s.path)
	if err != nil {
		return "", err
	}
	if err := fig.Render(f, format); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return s.path, nil
}
