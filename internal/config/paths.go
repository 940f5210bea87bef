package config

import (
	"os"
	"path/filepath"

	"github.com/amterp/colplot/internal/discovery"
	"github.com/amterp/colplot/internal/util"
)

const (
	ConfigFileName    = "config.toml"
	LocalConfigName   = "colplot.toml"
	GlobalConfigDir   = ".config/colplot"
	DefaultFigureExt  = ".png"
	DefaultFigureStem = "figure"
)

// Paths provides path resolution relative to a working directory.
type Paths struct {
	workDir string
}

// NewPaths creates a new Paths resolver rooted at workDir.
func NewPaths(workDir string) *Paths {
	return &Paths{workDir: workDir}
}

// LocalConfigPath returns the path of the colplot.toml in the working directory.
func (p *Paths) LocalConfigPath() string {
	return filepath.Join(p.workDir, LocalConfigName)
}

// FigurePath returns the default figure path for an input file:
// the slug of the input's base name with a .png extension, in the working directory.
func (p *Paths) FigurePath(inputPath string) string {
	base := filepath.Base(inputPath)
	stem := base[:len(base)-len(filepath.Ext(base))]
	slug := util.Slugify(stem)
	if slug == "" {
		slug = DefaultFigureStem
	}
	return filepath.Join(p.workDir, slug+DefaultFigureExt)
}

// ConfigCandidates returns config file locations in precedence order, highest first.
// The local candidate is the nearest colplot.toml in the working directory or
// one of its parents, falling back to LocalConfigPath when there is none.
func (p *Paths) ConfigCandidates() []string {
	local, err := discovery.FindUp(p.workDir, LocalConfigName)
	if err != nil || local == "" {
		local = p.LocalConfigPath()
	}
	candidates := []string{local}
	if global := GlobalConfigPath(); global != "" {
		candidates = append(candidates, global)
	}
	return candidates
}

// GlobalConfigPath returns the path to the global config file.
func GlobalConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, GlobalConfigDir, ConfigFileName)
}
