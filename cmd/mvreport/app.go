package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/fwojciec/mvreport"
	"github.com/fwojciec/mvreport/console"
	"golang.org/x/sync/errgroup"
)

// DefaultParallel is the number of concurrent analyses in headless mode.
const DefaultParallel = 4

// App encapsulates the application logic for testing.
type App struct {
	Analyzer  mvreport.Analyzer
	Loader    mvreport.ResultLoader
	Viewer    mvreport.Viewer
	Clipboard mvreport.Clipboard
	Status    mvreport.StatusSignal
	Stdout    io.Writer
	Logger    *slog.Logger

	// Format selects headless output. Empty means the interactive viewer.
	Format  string
	NoColor bool
}

// AnalyzeConfig controls a headless analysis run.
type AnalyzeConfig struct {
	Options  mvreport.Options
	Parallel int
	Copy     bool
}

// Analyze analyzes every URL, at most cfg.Parallel at a time, and writes the
// reports in argument order. It fails if any analysis failed.
func (a *App) Analyze(ctx context.Context, urls []string, cfg AnalyzeConfig) error {
	format := a.format()
	if !console.ValidFormat(format) {
		return fmt.Errorf("unknown output format %q", format)
	}

	reports := make([]*mvreport.Report, len(urls))
	errs := make([]error, len(urls))

	var g errgroup.Group
	g.SetLimit(max(cfg.Parallel, 1))
	for i, url := range urls {
		g.Go(func() error {
			coordinator := mvreport.NewCoordinator(a.Analyzer, a.Status, mvreport.WithLogger(a.logger()))
			reports[i], errs[i] = coordinator.Analyze(ctx, url, cfg.Options)
			return nil
		})
	}
	_ = g.Wait()

	var (
		failed []error
		last   *mvreport.Report
		out    = newOutput(a.Stdout, format, a.NoColor)
	)
	for i, url := range urls {
		if errs[i] != nil {
			failed = append(failed, fmt.Errorf("%s: %s", url, mvreport.ErrorMessage(errs[i])))
			continue
		}
		if err := out.write(url, reports[i]); err != nil {
			return err
		}
		last = reports[i]
	}
	out.finish()

	if cfg.Copy && last != nil {
		if err := mvreport.Export(a.Clipboard, last.Document.Full); err != nil {
			failed = append(failed, err)
		}
	}
	return errors.Join(failed...)
}

// Show renders a saved result document, in the viewer unless a headless
// format is set.
func (a *App) Show(ctx context.Context, path string) error {
	result, err := a.Loader.Load(path)
	if err != nil {
		return err
	}
	report, err := mvreport.NewReport(result)
	if err != nil {
		return err
	}

	if a.Format == "" {
		return a.Viewer.View(ctx, report)
	}
	if !console.ValidFormat(a.Format) {
		return fmt.Errorf("unknown output format %q", a.Format)
	}
	out := newOutput(a.Stdout, a.Format, a.NoColor)
	if err := out.write("", report); err != nil {
		return err
	}
	out.finish()
	return nil
}

func (a *App) format() string {
	if a.Format == "" {
		return console.FormatTable
	}
	return a.Format
}

func (a *App) logger() *slog.Logger {
	if a.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return a.Logger
}

// output writes a sequence of reports in one format.
type output struct {
	w       io.Writer
	format  string
	printer *console.Printer
	count   int
}

func newOutput(w io.Writer, format string, noColor bool) *output {
	var opts []console.Option
	if noColor {
		opts = append(opts, console.WithoutColor())
	}
	return &output{w: w, format: format, printer: console.NewPrinter(w, opts...)}
}

func (o *output) write(url string, r *mvreport.Report) error {
	defer func() { o.count++ }()
	switch o.format {
	case console.FormatJSON:
		return console.WriteJSON(o.w, r.Document)
	case console.FormatYAML:
		if o.count > 0 {
			if _, err := fmt.Fprintln(o.w, "---"); err != nil {
				return err
			}
		}
		return console.WriteYAML(o.w, r.Result)
	default:
		if o.count > 0 {
			fmt.Fprintln(o.w)
		}
		if url != "" {
			o.printer.Heading(url)
		}
		o.printer.PrintTable(r.Table)
		return nil
	}
}

func (o *output) finish() {
	if o.format == console.FormatTable && o.count > 0 {
		fmt.Fprintln(o.w)
		o.printer.Footer()
	}
}
