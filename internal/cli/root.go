package cli

import (
	"os"

	"github.com/amterp/ra"
)

// CommandContext holds parsed values for the command.
type CommandContext struct {
	File       *string
	Config     *string
	NaN        *string
	Label      *string
	Output     *string
	Save       *bool
	Palette    *string
	Title      *string
	Width      *int
	Height     *int
	Watch      *bool
	SaveConfig *bool
}

// Run is the main entry point for the CLI.
func Run(newWindow WindowFactory) {
	ctx := &CommandContext{}

	cmd := ra.NewCmd("colplot")
	cmd.SetDescription("Summarize and plot the columns of a tab-separated file")

	ctx.File, _ = ra.NewString("file").
		SetUsage("Tab-separated input; first line is the header").
		Register(cmd)

	ctx.NaN, _ = ra.NewString("nan").
		SetShort("n").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("NaN handling: propagate, exclude or fail-fast").
		Register(cmd)

	ctx.Label, _ = ra.NewString("label").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("How to read the first field of each row: numeric or text").
		Register(cmd)

	ctx.Output, _ = ra.NewString("output").
		SetShort("o").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Save the figure to this .png or .svg file instead of displaying it").
		Register(cmd)

	ctx.Save, _ = ra.NewBool("save").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Save the figure as <input>.png in the working directory").
		Register(cmd)

	ctx.Palette, _ = ra.NewString("palette").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Line colors: classic (7 colors) or extended (14 colors)").
		Register(cmd)

	ctx.Title, _ = ra.NewString("title").
		SetShort("t").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Figure title (defaults to the input file name)").
		Register(cmd)

	ctx.Width, _ = ra.NewInt("width").
		SetOptional(true).
		SetDefault(0).
		SetFlagOnly(true).
		SetUsage("Figure width in pixels").
		Register(cmd)

	ctx.Height, _ = ra.NewInt("height").
		SetOptional(true).
		SetDefault(0).
		SetFlagOnly(true).
		SetUsage("Figure height in pixels").
		Register(cmd)

	ctx.Config, _ = ra.NewString("config").
		SetShort("c").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Config file (default: nearest colplot.toml, then ~/.config/colplot/config.toml)").
		Register(cmd)

	ctx.Watch, _ = ra.NewBool("watch").
		SetShort("w").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Re-run whenever the input changes (needs --output or --save)").
		Register(cmd)

	ctx.SaveConfig, _ = ra.NewBool("save-config").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Write the effective settings to ./colplot.toml").
		Register(cmd)

	// Parse command line
	cmd.ParseOrExit(os.Args[1:])

	runAnalyze(ctx.options(), newWindow)
}

func (ctx *CommandContext) options() Options {
	return Options{
		InputPath:  *ctx.File,
		ConfigPath: *ctx.Config,
		NaNPolicy:  *ctx.NaN,
		LabelMode:  *ctx.Label,
		Output:     *ctx.Output,
		Save:       *ctx.Save,
		Palette:    *ctx.Palette,
		Title:      *ctx.Title,
		Width:      *ctx.Width,
		Height:     *ctx.Height,
		Watch:      *ctx.Watch,
		SaveConfig: *ctx.SaveConfig,
	}
}
