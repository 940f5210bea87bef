package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/amterp/colplot/internal/config"
	colerr "github.com/amterp/colplot/internal/errors"
	"github.com/amterp/colplot/internal/model"
	"github.com/amterp/colplot/internal/service"
	"github.com/amterp/colplot/internal/store"
	"github.com/amterp/colplot/internal/viewer"
)

// WindowFactory builds the on-screen renderer used in display mode.
type WindowFactory func(title string) viewer.Renderer

// Options holds the command-line inputs of a run.
type Options struct {
	InputPath  string
	ConfigPath string
	NaNPolicy  string
	LabelMode  string
	Output     string
	Save       bool
	Palette    string
	Title      string
	Width      int
	Height     int
	Watch      bool
	SaveConfig bool
}

// App holds all the dependencies for a run.
type App struct {
	Config          *model.Config
	ConfigSource    string // file the config came from, empty for defaults
	Paths           *config.Paths
	TableStore      store.TableStore
	ConfigStore     store.ConfigStore
	Renderer        viewer.Renderer
	Reporter        service.Reporter
	AnalysisService *service.AnalysisService
}

// NewApp creates a new App with all dependencies wired up.
// Diagnostics go to out; newWindow is only called in display mode.
func NewApp(opts Options, out io.Writer, newWindow WindowFactory) (*App, error) {
	workDir, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	paths := config.NewPaths(workDir)
	configStore := store.NewConfigStore()

	cfg, source, err := ResolveConfig(opts, paths, configStore)
	if err != nil {
		return nil, err
	}

	renderer, err := newRenderer(cfg, opts.InputPath, newWindow)
	if err != nil {
		return nil, err
	}

	tableStore := store.NewTableStore()
	reporter := newConsoleReporter(out)
	analysisService := service.NewAnalysisService(tableStore, renderer, reporter, cfg)

	return &App{
		Config:          cfg,
		ConfigSource:    source,
		Paths:           paths,
		TableStore:      tableStore,
		ConfigStore:     configStore,
		Renderer:        renderer,
		Reporter:        reporter,
		AnalysisService: analysisService,
	}, nil
}

// ResolveConfig layers defaults, the config file and flags, in increasing precedence.
// An explicit --config must exist; otherwise the nearest colplot.toml and then
// the global config are tried, and the first one found is used.
func ResolveConfig(opts Options, paths *config.Paths, configStore store.ConfigStore) (*model.Config, string, error) {
	cfg := model.DefaultConfig()

	var fileCfg *model.Config
	var source string
	var err error
	if opts.ConfigPath != "" {
		fileCfg, err = configStore.Load(opts.ConfigPath)
		source = opts.ConfigPath
	} else {
		fileCfg, source, err = configStore.LoadFirst(paths.ConfigCandidates())
	}
	if err != nil {
		return nil, "", fmt.Errorf("failed to load config: %w", err)
	}
	cfg.Merge(fileCfg)

	cfg.Merge(&model.Config{
		NaNPolicy: model.NaNPolicy(opts.NaNPolicy),
		LabelMode: model.LabelMode(opts.LabelMode),
		Palette:   opts.Palette,
		Title:     opts.Title,
		Width:     opts.Width,
		Height:    opts.Height,
	})
	if opts.Output != "" {
		cfg.Output = model.OutputSave
		cfg.OutputPath = opts.Output
	} else if opts.Save {
		cfg.Output = model.OutputSave
	}
	if cfg.Output == model.OutputSave && cfg.OutputPath == "" {
		cfg.OutputPath = paths.FigurePath(opts.InputPath)
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}
	if opts.Watch && cfg.Output != model.OutputSave {
		return nil, "", colerr.InvalidField("watch", "requires --output or --save")
	}

	return cfg, source, nil
}

func newRenderer(cfg *model.Config, inputPath string, newWindow WindowFactory) (viewer.Renderer, error) {
	if cfg.Output == model.OutputSave {
		return viewer.NewFileSaver(cfg.OutputPath)
	}
	if newWindow == nil {
		return nil, colerr.InvalidField("output", "no display available (use --output or --save)")
	}
	return newWindow("colplot - " + filepath.Base(inputPath)), nil
}

// Fatal prints an error and exits.
func Fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
