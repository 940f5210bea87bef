package model

import (
	colerr "github.com/amterp/colplot/internal/errors"
)

// NaNPolicy decides what happens to rows containing NaN values.
type NaNPolicy string

const (
	// NaNPropagate keeps NaN values, which poisons the affected column's statistics.
	NaNPropagate NaNPolicy = "propagate"
	// NaNExclude leaves rows containing NaN out of every column's statistics.
	NaNExclude NaNPolicy = "exclude"
	// NaNFailFast aborts the run at the first row containing NaN.
	NaNFailFast NaNPolicy = "fail-fast"
)

// LabelMode decides how the first field of each data row is read.
type LabelMode string

const (
	// LabelNumeric requires the label field to parse as a number.
	LabelNumeric LabelMode = "numeric"
	// LabelText keeps the label as opaque text.
	LabelText LabelMode = "text"
)

// OutputMode decides where the figure goes.
type OutputMode string

const (
	OutputDisplay OutputMode = "display"
	OutputSave    OutputMode = "save"
)

// Figure defaults.
const (
	DefaultWidth  = 1024
	DefaultHeight = 640
)

// Config represents the colplot configuration.
// Stored at ~/.config/colplot/config.toml or in a colplot.toml next to the data.
// Schema changes require a version bump, see internal/version/version.go.
type Config struct {
	ColplotSchema string     `toml:"colplot_schema"`
	NaNPolicy     NaNPolicy  `toml:"nan_policy,omitempty"`
	LabelMode     LabelMode  `toml:"label_mode,omitempty"`
	Output        OutputMode `toml:"output,omitempty"`
	OutputPath    string     `toml:"output_path,omitempty"`
	Palette       string     `toml:"palette,omitempty"`
	Title         string     `toml:"title,omitempty"`
	Width         int        `toml:"width,omitempty"`
	Height        int        `toml:"height,omitempty"`
}

// DefaultConfig returns the configuration used when no file or flag says otherwise.
func DefaultConfig() *Config {
	return &Config{
		NaNPolicy: NaNPropagate,
		LabelMode: LabelNumeric,
		Output:    OutputDisplay,
		Palette:   PaletteClassic,
		Width:     DefaultWidth,
		Height:    DefaultHeight,
	}
}

// Merge overlays the non-zero fields of other onto c.
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}
	if other.NaNPolicy != "" {
		c.NaNPolicy = other.NaNPolicy
	}
	if other.LabelMode != "" {
		c.LabelMode = other.LabelMode
	}
	if other.Output != "" {
		c.Output = other.Output
	}
	if other.OutputPath != "" {
		c.OutputPath = other.OutputPath
	}
	if other.Palette != "" {
		c.Palette = other.Palette
	}
	if other.Title != "" {
		c.Title = other.Title
	}
	if other.Width > 0 {
		c.Width = other.Width
	}
	if other.Height > 0 {
		c.Height = other.Height
	}
}

// Validate checks every enumerated field against its recognized choices.
func (c *Config) Validate() error {
	if _, err := ParseNaNPolicy(string(c.NaNPolicy)); err != nil {
		return err
	}
	if _, err := ParseLabelMode(string(c.LabelMode)); err != nil {
		return err
	}
	if _, err := ParseOutputMode(string(c.Output)); err != nil {
		return err
	}
	if _, err := PaletteByName(c.Palette); err != nil {
		return err
	}
	if c.Width < 0 {
		return colerr.InvalidField("width", "must be positive")
	}
	if c.Height < 0 {
		return colerr.InvalidField("height", "must be positive")
	}
	return nil
}

// ParseNaNPolicy validates a NaN policy name. Empty means propagate.
func ParseNaNPolicy(s string) (NaNPolicy, error) {
	switch NaNPolicy(s) {
	case "", NaNPropagate:
		return NaNPropagate, nil
	case NaNExclude, NaNFailFast:
		return NaNPolicy(s), nil
	}
	return "", colerr.InvalidChoice("nan policy", s,
		[]string{string(NaNPropagate), string(NaNExclude), string(NaNFailFast)})
}

// ParseLabelMode validates a label mode name. Empty means numeric.
func ParseLabelMode(s string) (LabelMode, error) {
	switch LabelMode(s) {
	case "", LabelNumeric:
		return LabelNumeric, nil
	case LabelText:
		return LabelText, nil
	}
	return "", colerr.InvalidChoice("label mode", s, []string{string(LabelNumeric), string(LabelText)})
}

// ParseOutputMode validates an output mode name. Empty means display.
func ParseOutputMode(s string) (OutputMode, error) {
	switch OutputMode(s) {
	case "", OutputDisplay:
		return OutputDisplay, nil
	case OutputSave:
		return OutputSave, nil
	}
	return "", colerr.InvalidChoice("output", s, []string{string(OutputDisplay), string(OutputSave)})
}
