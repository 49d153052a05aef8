package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/spf13/cobra"

	"github.com/nao1215/decklist/internal/browser"
	"github.com/nao1215/decklist/internal/config"
	"github.com/nao1215/decklist/internal/log"
	"github.com/nao1215/decklist/internal/pipeline"
	"github.com/nao1215/decklist/internal/report"
	"github.com/nao1215/decklist/internal/session"
	"github.com/nao1215/decklist/internal/sink"
)

// MsgLoading is printed before the browser starts.
const MsgLoading = "\nLoading. Please wait..."

// browserSession is the part of browser.Session the commands use.
type browserSession interface {
	pipeline.Fetcher
	Start(ctx context.Context) error
	Close() error
}

// newBrowser creates the page fetcher for cfg. Tests replace it.
var newBrowser = func(cfg *config.Config, logger *slog.Logger) browserSession {
	opts := []browser.Option{
		browser.WithLogger(logger),
		browser.WithHeadless(!cfg.ShowBrowser),
		browser.WithNavigationTimeout(cfg.NavigationTimeout),
		browser.WithSelectorTimeout(cfg.SelectorTimeout),
		browser.WithDownloadDir(cfg.BrowserDownloadDir),
	}
	if cfg.BrowserBin != "" {
		opts = append(opts, browser.WithBinary(cfg.BrowserBin))
	}
	if cfg.ControlURL != "" {
		opts = append(opts, browser.WithControlURL(cfg.ControlURL))
	}
	return browser.NewSession(opts...)
}

// newClipboard returns the system clipboard. Tests replace it.
var newClipboard = func() sink.Clipboard {
	return sink.NewSystemClipboard()
}

// addAppFlags registers the flags shared by the interactive loop and fetch.
func addAppFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("output-dir", "o", "",
		"Directory for decklist files (default: Decklists next to the executable)")
	cmd.Flags().Duration("timeout", config.DefaultSelectorTimeout,
		"How long to wait for the deck table to appear")
	cmd.Flags().Duration("nav-timeout", config.DefaultNavigationTimeout,
		"How long page navigation may take")
	cmd.Flags().String("browser-bin", "",
		"Chrome or Chromium executable to launch")
	cmd.Flags().String("control-url", "",
		"DevTools URL of an already running browser")
	cmd.Flags().Bool("show-browser", false,
		"Show the browser window instead of running headless")
	cmd.Flags().Bool("no-clipboard", false,
		"Do not copy the decklist to the clipboard")
	cmd.Flags().Bool("no-summary", false,
		"Do not print the summary table after each deck")
	cmd.Flags().Bool("show-cards", false,
		"List every card in the summary table")
	cmd.Flags().String("table-style", report.DefaultTableStyle,
		"Summary table style ("+strings.Join(report.TableStyleNames(), ", ")+")")
	cmd.Flags().BoolP("json", "j", false,
		"Also write a JSON report next to the decklist")
	cmd.Flags().BoolP("markdown", "m", false,
		"Also write a Markdown report next to the decklist")
}

// buildConfig loads the configuration file and applies the flags that were
// set on the command line. It returns the file used, if any.
func buildConfig(cmd *cobra.Command) (*config.Config, string, error) {
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, "", err
	}

	cfg, path, err := config.Load(configPath)
	if err != nil {
		return nil, path, fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := applyFlags(cmd, cfg); err != nil {
		return nil, path, err
	}
	return cfg, path, nil
}

// applyFlags overrides cfg with every flag changed on the command line.
func applyFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()

	strs := map[string]*string{
		"output-dir":  &cfg.OutputDir,
		"browser-bin": &cfg.BrowserBin,
		"control-url": &cfg.ControlURL,
		"table-style": &cfg.TableStyle,
	}
	for name, dst := range strs {
		if !flags.Changed(name) {
			continue
		}
		v, err := flags.GetString(name)
		if err != nil {
			return err
		}
		*dst = v
	}

	durations := map[string]*time.Duration{
		"timeout":     &cfg.SelectorTimeout,
		"nav-timeout": &cfg.NavigationTimeout,
	}
	for name, dst := range durations {
		if !flags.Changed(name) {
			continue
		}
		v, err := flags.GetDuration(name)
		if err != nil {
			return err
		}
		*dst = v
	}

	bools := map[string]*bool{
		"verbose":      &cfg.Verbose,
		"log-json":     &cfg.LogJSON,
		"show-browser": &cfg.ShowBrowser,
		"no-clipboard": &cfg.NoClipboard,
		"no-summary":   &cfg.NoSummary,
		"show-cards":   &cfg.ShowCards,
		"json":         &cfg.JSON,
		"markdown":     &cfg.Markdown,
	}
	for name, dst := range bools {
		if !flags.Changed(name) {
			continue
		}
		v, err := flags.GetBool(name)
		if err != nil {
			return err
		}
		*dst = v
	}

	return nil
}

// exportFormats lists the extra report files cfg asks for.
func exportFormats(cfg *config.Config) []pipeline.ExportFormat {
	var formats []pipeline.ExportFormat
	if cfg.JSON {
		formats = append(formats, pipeline.ExportJSON)
	}
	if cfg.Markdown {
		formats = append(formats, pipeline.ExportMarkdown)
	}
	return formats
}

// ensureOutputDir creates dir when missing and tells the operator.
func ensureOutputDir(out io.Writer, dir string) error {
	_, err := os.Stat(dir)
	if err == nil {
		return nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to check output directory: %w", err)
	}

	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	fmt.Fprintf(out, "Created directory: %s\n", dir)
	return nil
}

// app holds what one command invocation shares across decks.
type app struct {
	cfg       *config.Config
	logger    *slog.Logger
	out       io.Writer
	browser   browserSession
	store     *sink.FileSink
	clipboard sink.Clipboard
	style     table.Style
}

// newApp loads the configuration, prepares the output directory and
// starts the browser. The caller must call close.
func newApp(ctx context.Context, cmd *cobra.Command) (*app, error) {
	cfg, path, err := buildConfig(cmd)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration error: %w", err)
	}
	style, err := report.TableStyle(cfg.TableStyle)
	if err != nil {
		return nil, fmt.Errorf("configuration error: %w", err)
	}

	logger := newLogger(cmd.ErrOrStderr(), cfg)
	slog.SetDefault(logger)
	if path != "" {
		logger.Debug("configuration loaded", "path", path)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, MsgLoading)

	if err := ensureOutputDir(out, cfg.OutputDir); err != nil {
		return nil, err
	}

	b := newBrowser(cfg, logger)
	if err := b.Start(ctx); err != nil {
		if cerr := b.Close(); cerr != nil {
			logger.Warn("failed to close browser", "error", cerr)
		}
		return nil, fmt.Errorf("failed to start browser: %w", err)
	}

	a := &app{
		cfg:     cfg,
		logger:  logger,
		out:     out,
		browser: b,
		store:   sink.NewFileSink(cfg.OutputDir),
		style:   style,
	}
	if !cfg.NoClipboard {
		a.clipboard = newClipboard()
	}

	logger.Debug("ready",
		"output_dir", a.store.Dir(),
		"steps", a.newPipeline().StepNames(),
	)
	return a, nil
}

// newLogger picks the log format configured in cfg.
func newLogger(w io.Writer, cfg *config.Config) *slog.Logger {
	if cfg.LogJSON {
		return log.NewJSONLogger(w, cfg.Verbose)
	}
	return log.NewLogger(w, cfg.Verbose)
}

// newPipeline builds the deck pipeline for one deck.
func (a *app) newPipeline() *pipeline.Pipeline {
	return pipeline.DefaultPipeline(
		a.browser,
		a.store,
		a.clipboard,
		[]pipeline.Option{pipeline.WithLogger(a.logger)},
		pipeline.WithPipelineExports(exportFormats(a.cfg)...),
		pipeline.WithPipelineVersion(getVersion()),
		pipeline.WithPipelineStepLogger(a.logger),
	)
}

// newSession builds the prompt loop reading from in.
func (a *app) newSession(in io.Reader) *session.Session {
	opts := []session.Option{
		session.WithLogger(a.logger),
		session.WithVersion(getVersion()),
	}
	if !a.cfg.NoSummary {
		opts = append(opts, session.WithSummary(
			report.NewSummaryWriter(a.out,
				report.WithCards(a.cfg.ShowCards),
				report.WithStyle(a.style),
			),
		))
	}
	return session.New(in, a.out, a.newPipeline(), opts...)
}

// close shuts the browser down.
func (a *app) close() {
	if err := a.browser.Close(); err != nil {
		a.logger.Warn("failed to close browser", "error", err)
	}
}
