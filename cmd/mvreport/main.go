// Command mvreport requests music video analyses and presents the reports.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/fwojciec/mvreport/bubbletea"
	"github.com/fwojciec/mvreport/chroma"
	"github.com/fwojciec/mvreport/clipboard"
	"github.com/fwojciec/mvreport/console"
	"github.com/fwojciec/mvreport/fs"
	"github.com/fwojciec/mvreport/httpapi"
	"github.com/fwojciec/mvreport/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

func main() {
	// Set up context with signal handling for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// cli holds state shared by the commands.
type cli struct {
	v       *viper.Viper
	cfgFile string
	cfg     *Config
	logger  *slog.Logger
	logFile io.Closer
}

func newRootCmd() *cobra.Command {
	c := &cli{v: NewViper()}

	root := &cobra.Command{
		Use:   "mvreport [url]",
		Short: "Analyze music videos and explore the reports",
		Long: `mvreport sends a music video URL to the analysis service and shows the
report as a table and as a collapsible JSON explorer.

Running 'mvreport' without a subcommand launches the interactive TUI. A URL
argument is analyzed as soon as the TUI starts.`,
		Args:               cobra.MaximumNArgs(1),
		SilenceUsage:       true,
		SilenceErrors:      true,
		PersistentPreRunE:  c.setup,
		PersistentPostRunE: c.teardown,
		RunE:               c.runTUI,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&c.cfgFile, "config", "", "config file (default is $HOME/.config/mvreport/config.yaml)")
	pf.String("endpoint", httpapi.DefaultEndpoint, "analysis service URL")
	pf.Duration("timeout", 0, "analysis request timeout (0 means none)")
	pf.String("theme", "dark", "color theme (dark or light)")
	pf.String("log-file", "", "write logs to this file")
	pf.Bool("no-chords", false, "skip chord extraction")
	pf.Bool("no-instruments", false, "skip instrument detection")
	pf.Bool("no-structure", false, "skip musical structure analysis")
	pf.Bool("no-tablature", false, "skip tablature extraction")

	c.bind(pf, "endpoint", "endpoint")
	c.bind(pf, "timeout", "timeout")
	c.bind(pf, "theme", "theme")
	c.bind(pf, "log_file", "log-file")

	root.AddCommand(c.analyzeCmd(), c.showCmd())
	return root
}

func (c *cli) bind(flags *pflag.FlagSet, key, flag string) {
	if err := c.v.BindPFlag(key, flags.Lookup(flag)); err != nil {
		panic(err)
	}
}

func (c *cli) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := LoadConfig(c.v, c.cfgFile)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	for flag, opt := range map[string]*bool{
		"no-chords":      &cfg.Options.Chords,
		"no-instruments": &cfg.Options.Instruments,
		"no-structure":   &cfg.Options.Structure,
		"no-tablature":   &cfg.Options.Tablature,
	} {
		if skip, _ := flags.GetBool(flag); skip {
			*opt = false
		}
	}

	logger, closer, err := newLogger(cfg.LogFile)
	if err != nil {
		return err
	}
	c.cfg, c.logger, c.logFile = cfg, logger, closer
	c.logger.Debug("config loaded", "endpoint", cfg.Endpoint, "timeout", cfg.Timeout, "theme", cfg.Theme)
	return nil
}

func (c *cli) teardown(*cobra.Command, []string) error {
	if c.logFile == nil {
		return nil
	}
	return c.logFile.Close()
}

func (c *cli) analyzer() *httpapi.Analyzer {
	return httpapi.NewAnalyzer(c.cfg.Endpoint,
		httpapi.WithTimeout(c.cfg.Timeout),
		httpapi.WithLogger(c.logger),
	)
}

// modelOptions builds the TUI options shared by the interactive commands.
func (c *cli) modelOptions() ([]bubbletea.ModelOption, error) {
	theme, err := lipgloss.ThemeByName(c.cfg.Theme)
	if err != nil {
		return nil, err
	}
	opts := []bubbletea.ModelOption{
		bubbletea.WithTheme(theme),
		bubbletea.WithClipboard(clipboard.Default(os.Stdout)),
		bubbletea.WithLogger(c.logger),
		bubbletea.WithOptions(c.cfg.Options.Analysis()),
	}
	hl, err := chroma.NewHighlighter(chroma.StyleFromPalette(theme.Palette()))
	if err != nil {
		c.logger.Warn("syntax highlighting unavailable", "error", err)
	} else {
		opts = append(opts, bubbletea.WithHighlighter(hl))
	}
	return opts, nil
}

func (c *cli) runTUI(cmd *cobra.Command, args []string) error {
	opts, err := c.modelOptions()
	if err != nil {
		return err
	}
	if len(args) == 1 {
		opts = append(opts, bubbletea.WithURL(args[0]), bubbletea.WithAutoSubmit())
	}
	return bubbletea.Run(cmd.Context(), c.analyzer(), opts...)
}

func (c *cli) analyzeCmd() *cobra.Command {
	var (
		format   string
		copyDoc  bool
		parallel int
		noColor  bool
	)
	cmd := &cobra.Command{
		Use:   "analyze URL...",
		Short: "Analyze videos and print the reports",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var consoleOpts []console.Option
			if noColor {
				consoleOpts = append(consoleOpts, console.WithoutColor())
			}
			app := &App{
				Analyzer:  c.analyzer(),
				Clipboard: clipboard.Default(cmd.ErrOrStderr()),
				Status:    console.NewStatus(cmd.ErrOrStderr(), consoleOpts...),
				Stdout:    cmd.OutOrStdout(),
				Logger:    c.logger,
				Format:    format,
				NoColor:   noColor,
			}
			return app.Analyze(cmd.Context(), args, AnalyzeConfig{
				Options:  c.cfg.Options.Analysis(),
				Parallel: parallel,
				Copy:     copyDoc,
			})
		},
	}
	cmd.Flags().StringVarP(&format, "output", "o", console.FormatTable, "output format (table, json or yaml)")
	cmd.Flags().BoolVar(&copyDoc, "copy", false, "copy the last report's JSON to the clipboard")
	cmd.Flags().IntVar(&parallel, "parallel", DefaultParallel, "number of concurrent analyses")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "disable colored output")
	return cmd
}

func (c *cli) showCmd() *cobra.Command {
	var (
		format  string
		noColor bool
	)
	cmd := &cobra.Command{
		Use:   "show FILE",
		Short: "Show a saved report (use - for stdin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.modelOptions()
			if err != nil {
				return err
			}
			app := &App{
				Loader:  fs.NewLoader(cmd.InOrStdin()),
				Viewer:  bubbletea.NewViewer(opts...),
				Stdout:  cmd.OutOrStdout(),
				Logger:  c.logger,
				Format:  format,
				NoColor: noColor,
			}
			return app.Show(cmd.Context(), args[0])
		},
	}
	cmd.Flags().StringVarP(&format, "output", "o", "", "print as table, json or yaml instead of opening the viewer")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "disable colored output")
	return cmd
}

