package cli

import (
	"context"
	"io"
	"os"
	"os/signal"
	"sync"

	"github.com/amterp/colplot/internal/watch"
)

func runAnalyze(opts Options, newWindow WindowFactory) {
	app, err := NewApp(opts, os.Stdout, newWindow)
	if err != nil {
		Fatal(err)
	}

	if opts.SaveConfig {
		path := app.Paths.LocalConfigPath()
		if err := app.ConfigStore.Save(path, app.Config); err != nil {
			Fatal(err)
		}
		if app.ConfigSource != "" && app.ConfigSource != path {
			PrintSuccess("Wrote settings to %s (based on %s)", path, app.ConfigSource)
		} else {
			PrintSuccess("Wrote settings to %s", path)
		}
	}

	result, err := app.AnalysisService.Analyze(opts.InputPath)
	if err != nil {
		Fatal(err)
	}
	if result.Figure.Empty() {
		PrintWarning("Nothing to plot in %s", opts.InputPath)
	}

	if opts.Watch {
		if err := runWatch(app, opts.InputPath); err != nil {
			Fatal(err)
		}
	}
}

// runWatch re-runs the analysis on every change to path until interrupted.
// Failed re-runs are reported and the watch continues.
func runWatch(app *App, path string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fw, err := watch.NewFileWatcher(path, watch.DefaultDebounce)
	if err != nil {
		return err
	}
	fw.Subscribe(newRerunner(app, path, os.Stdout, os.Stderr))
	if err := fw.Start(); err != nil {
		return err
	}
	defer fw.Stop()

	PrintInfo("Watching %s (Ctrl+C to stop)", fw.Path())
	<-ctx.Done()
	return nil
}

// rerunner runs the analysis again when the watched file changes.
type rerunner struct {
	mu     sync.Mutex // serializes runs; debounce timers fire on their own goroutines
	app    *App
	path   string
	out    io.Writer
	errOut io.Writer
}

func newRerunner(app *App, path string, out, errOut io.Writer) *rerunner {
	return &rerunner{app: app, path: path, out: out, errOut: errOut}
}

func (r *rerunner) OnFileChange(change watch.FileChange) {
	r.mu.Lock()
	defer r.mu.Unlock()

	FprintInfo(r.out, "%s %s, re-running", r.path, change.Type)
	if _, err := r.app.AnalysisService.Analyze(r.path); err != nil {
		FprintError(r.errOut, "%v", err)
	}
}
