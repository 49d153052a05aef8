package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/nao1215/decklist/internal/deckurl"
	"github.com/nao1215/decklist/internal/extract"
	"github.com/nao1215/decklist/internal/model"
	"github.com/nao1215/decklist/internal/report"
	"github.com/nao1215/decklist/internal/sink"
	"github.com/nao1215/decklist/internal/wiki"
)

// Fetcher loads a deck page and returns its rendered HTML.
// browser.Session implements it.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*model.Snapshot, error)
}

// Store persists rendered decks. sink.FileSink implements it.
type Store interface {
	// Save writes the wiki template and returns the file path.
	Save(deckName, content string) (string, error)

	// Write writes a companion file with the given extension.
	Write(deckName, ext string, data []byte) (string, error)
}

// NormalizeStep forces the English locale on the job URL.
type NormalizeStep struct{}

// NewNormalizeStep creates a NormalizeStep.
func NewNormalizeStep() *NormalizeStep {
	return &NormalizeStep{}
}

// Name returns the step name.
func (s *NormalizeStep) Name() string {
	return "normalize"
}

// Do sets job.URL.
func (s *NormalizeStep) Do(_ context.Context, job *model.Job) error {
	if strings.TrimSpace(job.RawURL) == "" {
		return ErrEmptyURL
	}
	job.URL = deckurl.Normalize(job.RawURL)
	return nil
}

// FetchStep loads the deck page.
type FetchStep struct {
	fetcher Fetcher
	logger  *slog.Logger
}

// FetchStepOption configures a FetchStep.
type FetchStepOption func(*FetchStep)

// WithFetchLogger sets a custom logger for the fetch step.
func WithFetchLogger(logger *slog.Logger) FetchStepOption {
	return func(s *FetchStep) {
		s.logger = logger
	}
}

// NewFetchStep creates a FetchStep.
func NewFetchStep(fetcher Fetcher, opts ...FetchStepOption) *FetchStep {
	s := &FetchStep{
		fetcher: fetcher,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the step name.
func (s *FetchStep) Name() string {
	return "fetch"
}

// Do sets job.Snapshot.
func (s *FetchStep) Do(ctx context.Context, job *model.Job) error {
	url := job.URL
	if url == "" {
		url = job.RawURL
	}
	if url == "" {
		return ErrEmptyURL
	}

	snap, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		return fmt.Errorf("failed to fetch deck page: %w", err)
	}

	s.logger.Debug("page fetched", "url", snap.URL, "bytes", len(snap.HTML))
	job.Snapshot = snap
	return nil
}

// ExtractStep parses the snapshot into a deck.
type ExtractStep struct {
	parser *extract.Parser
	logger *slog.Logger
}

// ExtractStepOption configures an ExtractStep.
type ExtractStepOption func(*ExtractStep)

// WithExtractLogger sets a custom logger for the extract step and its parser.
func WithExtractLogger(logger *slog.Logger) ExtractStepOption {
	return func(s *ExtractStep) {
		s.logger = logger
	}
}

// NewExtractStep creates an ExtractStep.
func NewExtractStep(opts ...ExtractStepOption) *ExtractStep {
	s := &ExtractStep{
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.parser = extract.NewParser(extract.WithLogger(s.logger))
	return s
}

// Name returns the step name.
func (s *ExtractStep) Name() string {
	return "extract"
}

// Do sets job.Deck.
func (s *ExtractStep) Do(_ context.Context, job *model.Job) error {
	if job.Snapshot == nil {
		return ErrNoSnapshot
	}

	deck, err := s.parser.ParseSnapshot(job.Snapshot)
	if err != nil {
		return fmt.Errorf("failed to extract deck: %w", err)
	}

	if deck.IsEmpty() {
		s.logger.Warn("deck page has no cards in any zone", "url", job.Snapshot.URL)
	}
	s.logger.Debug("deck extracted",
		"name", deck.Name,
		"main", len(deck.Main),
		"extra", len(deck.Extra),
		"side", len(deck.Side),
	)

	job.Deck = deck
	return nil
}

// FormatStep renders the wiki template.
type FormatStep struct{}

// NewFormatStep creates a FormatStep.
func NewFormatStep() *FormatStep {
	return &FormatStep{}
}

// Name returns the step name.
func (s *FormatStep) Name() string {
	return "format"
}

// Do sets job.Template.
func (s *FormatStep) Do(_ context.Context, job *model.Job) error {
	if job.Deck == nil {
		return ErrNoDeck
	}
	job.Template = wiki.Format(job.Deck, wiki.WithMasterDuel(job.MasterDuel))
	return nil
}

// SaveStep writes the template file. Failures are recorded in job.SaveErr.
type SaveStep struct {
	store Store
}

// NewSaveStep creates a SaveStep.
func NewSaveStep(store Store) *SaveStep {
	return &SaveStep{store: store}
}

// Name returns the step name.
func (s *SaveStep) Name() string {
	return "save"
}

// Do sets job.OutputPath or job.SaveErr.
func (s *SaveStep) Do(_ context.Context, job *model.Job) error {
	path, err := s.store.Save(job.DeckName(), job.Template)
	if err != nil {
		job.SaveErr = err
		return nil
	}
	job.OutputPath = path
	return nil
}

// ClipboardStep copies the template. Failures are recorded in
// job.ClipboardErr. It runs whether or not the save succeeded.
type ClipboardStep struct {
	clipboard sink.Clipboard
}

// NewClipboardStep creates a ClipboardStep.
func NewClipboardStep(clipboard sink.Clipboard) *ClipboardStep {
	return &ClipboardStep{clipboard: clipboard}
}

// Name returns the step name.
func (s *ClipboardStep) Name() string {
	return "clipboard"
}

// Do sets job.Copied or job.ClipboardErr.
func (s *ClipboardStep) Do(_ context.Context, job *model.Job) error {
	if err := s.clipboard.Copy(job.Template); err != nil {
		job.ClipboardErr = err
		return nil
	}
	job.Copied = true
	return nil
}

// ExportFormat names an additional output written next to the template.
type ExportFormat string

const (
	// ExportJSON writes "<name> Decklist.json".
	ExportJSON ExportFormat = "json"
	// ExportMarkdown writes "<name> Decklist.md".
	ExportMarkdown ExportFormat = "markdown"
)

// ExportStep writes deck reports in additional formats. Each failure is
// appended to job.ExportErrs.
type ExportStep struct {
	store   Store
	formats []ExportFormat
	version string
}

// ExportStepOption configures an ExportStep.
type ExportStepOption func(*ExportStep)

// WithExportVersion records the producing version in exported reports.
func WithExportVersion(version string) ExportStepOption {
	return func(s *ExportStep) {
		s.version = version
	}
}

// NewExportStep creates an ExportStep for the given formats.
func NewExportStep(store Store, formats []ExportFormat, opts ...ExportStepOption) *ExportStep {
	s := &ExportStep{
		store:   store,
		formats: formats,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the step name.
func (s *ExportStep) Name() string {
	return "export"
}

// Do appends written paths to job.Exports.
func (s *ExportStep) Do(_ context.Context, job *model.Job) error {
	r := report.NewDeckReport(job, report.WithVersion(s.version))
	if r == nil {
		job.ExportErrs = append(job.ExportErrs, ErrNoDeck)
		return nil
	}

	for _, format := range s.formats {
		path, err := s.export(format, r)
		if err != nil {
			job.ExportErrs = append(job.ExportErrs, fmt.Errorf("failed to export %s: %w", format, err))
			continue
		}
		job.Exports = append(job.Exports, path)
	}
	return nil
}

// export renders one format and writes it through the store.
func (s *ExportStep) export(format ExportFormat, r *report.DeckReport) (string, error) {
	var buf bytes.Buffer
	var ext string

	switch format {
	case ExportJSON:
		ext = sink.ExtJSON
		if _, err := report.NewJSONWriter(&buf, report.WithPrettyPrint()).Write(r); err != nil {
			return "", err
		}
	case ExportMarkdown:
		ext = sink.ExtMarkdown
		if _, err := report.NewMarkdownWriter(&buf).Write(r); err != nil {
			return "", err
		}
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownExportFormat, format)
	}

	return s.store.Write(r.Name, ext, buf.Bytes())
}

// DefaultPipelineConfig holds configuration for the default pipeline.
type DefaultPipelineConfig struct {
	// Exports lists additional formats written after the template.
	Exports []ExportFormat

	// Version is recorded in exported reports.
	Version string

	// Logger is handed to the fetch and extract steps.
	Logger *slog.Logger
}

// DefaultPipelineOption configures the default pipeline.
type DefaultPipelineOption func(*DefaultPipelineConfig)

// WithPipelineExports enables additional export formats.
func WithPipelineExports(formats ...ExportFormat) DefaultPipelineOption {
	return func(c *DefaultPipelineConfig) {
		c.Exports = append(c.Exports, formats...)
	}
}

// WithPipelineVersion sets the version recorded in exports.
func WithPipelineVersion(version string) DefaultPipelineOption {
	return func(c *DefaultPipelineConfig) {
		c.Version = version
	}
}

// WithPipelineStepLogger sets the logger used inside steps.
func WithPipelineStepLogger(logger *slog.Logger) DefaultPipelineOption {
	return func(c *DefaultPipelineConfig) {
		c.Logger = logger
	}
}

// DefaultPipeline creates the standard deck pipeline:
// normalize, fetch, extract, format, save, then clipboard unless clipboard
// is nil, then export when export formats are configured.
//
// The first variadic parameter accepts pipeline options (WithLogger, etc).
// The second accepts pipeline config options (WithPipelineExports, etc).
func DefaultPipeline(fetcher Fetcher, store Store, clipboard sink.Clipboard, pipelineOpts []Option, configOpts ...DefaultPipelineOption) *Pipeline {
	p := New(pipelineOpts...)

	cfg := &DefaultPipelineConfig{}
	for _, opt := range configOpts {
		opt(cfg)
	}
	if cfg.Logger == nil {
		cfg.Logger = p.logger
	}

	p.AddSteps(
		NewNormalizeStep(),
		NewFetchStep(fetcher, WithFetchLogger(cfg.Logger)),
		NewExtractStep(WithExtractLogger(cfg.Logger)),
		NewFormatStep(),
		NewSaveStep(store),
	)
	if clipboard != nil {
		p.AddStep(NewClipboardStep(clipboard))
	}
	if len(cfg.Exports) > 0 {
		p.AddStep(NewExportStep(store, cfg.Exports, WithExportVersion(cfg.Version)))
	}

	return p
}
