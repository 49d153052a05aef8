package session

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/fatih/color"

	"github.com/nao1215/decklist/internal/deckurl"
	"github.com/nao1215/decklist/internal/model"
	"github.com/nao1215/decklist/internal/report"
)

// Prompts and messages shown to the operator.
const (
	PromptURL        = "> Enter Deck URL: "
	PromptMasterDuel = "> Is this a Master Duel Deck? (Y/N): "
	MsgInvalidYesNo  = "Invalid input. Please enter Y or N."
	MsgIntro         = `Please enter a valid Yu-Gi-Oh! Card Database Deck URL or type "exit" to quit.`
	MsgEnding        = "Ending..."
)

// Processor runs one job. *pipeline.Pipeline implements it.
type Processor interface {
	Execute(ctx context.Context, job *model.Job) error
}

// Session is the prompt loop.
type Session struct {
	in        io.Reader
	out       io.Writer
	processor Processor
	logger    *slog.Logger

	// summary prints a table after each processed deck.
	summary report.Writer

	// version is recorded in the summary report.
	version string

	ok   *color.Color
	fail *color.Color

	// lines delivers operator input while Run is active.
	lines <-chan string
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

// WithSummary prints a report with w after every deck. Nil disables it.
func WithSummary(w report.Writer) Option {
	return func(s *Session) {
		s.summary = w
	}
}

// WithVersion sets the version shown in reports.
func WithVersion(version string) Option {
	return func(s *Session) {
		s.version = version
	}
}

// New creates a Session reading answers from in and writing prompts and
// results to out.
func New(in io.Reader, out io.Writer, processor Processor, opts ...Option) *Session {
	s := &Session{
		in:        in,
		out:       out,
		processor: processor,
		ok:        color.New(color.FgGreen),
		fail:      color.New(color.FgRed),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// Run prompts until the operator types exit, input ends, or ctx is done.
// It returns ctx.Err() when cancelled and nil otherwise. Per-deck failures
// are printed, never returned.
func (s *Session) Run(ctx context.Context) error {
	defer fmt.Fprintln(s.out, MsgEnding)

	done := make(chan struct{})
	defer close(done)
	s.lines = readLines(s.in, done)

	fmt.Fprintln(s.out, MsgIntro)

	for {
		raw, err := s.ask(ctx, PromptURL)
		if err != nil {
			return endOfInput(err)
		}
		if deckurl.IsExit(raw) {
			return nil
		}
		if strings.TrimSpace(raw) == "" {
			continue
		}

		masterDuel, err := s.askMasterDuel(ctx)
		if err != nil {
			return endOfInput(err)
		}

		if err := s.process(ctx, raw, masterDuel); err != nil {
			return err
		}
	}
}

// endOfInput turns io.EOF into a normal end of the loop.
func endOfInput(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// askMasterDuel repeats the question until the answer is Y or N.
func (s *Session) askMasterDuel(ctx context.Context) (bool, error) {
	for {
		answer, err := s.ask(ctx, PromptMasterDuel)
		if err != nil {
			return false, err
		}
		if yes, ok := ParseYesNo(answer); ok {
			return yes, nil
		}
		fmt.Fprintln(s.out, MsgInvalidYesNo)
	}
}

// ParseYesNo accepts y or n in any case, ignoring surrounding whitespace.
func ParseYesNo(answer string) (yes bool, ok bool) {
	switch strings.ToUpper(strings.TrimSpace(answer)) {
	case "Y":
		return true, true
	case "N":
		return false, true
	default:
		return false, false
	}
}

// ask prints a prompt and waits for one line.
func (s *Session) ask(ctx context.Context, prompt string) (string, error) {
	fmt.Fprint(s.out, prompt)

	select {
	case <-ctx.Done():
		fmt.Fprintln(s.out)
		return "", ctx.Err()
	case line, ok := <-s.lines:
		if !ok {
			fmt.Fprintln(s.out)
			return "", io.EOF
		}
		return line, nil
	}
}

// readLines feeds lines from r into a channel that is closed at EOF.
// Reading happens on its own goroutine so that a cancelled context can end
// a prompt that is still waiting for input. The goroutine exits at EOF or
// once done is closed and it has a line to hand over; a Scan blocked on a
// terminal returns only when the next line or EOF arrives.
func readLines(r io.Reader, done <-chan struct{}) <-chan string {
	ch := make(chan string)
	go func() {
		defer close(ch)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			select {
			case ch <- scanner.Text():
			case <-done:
				return
			}
		}
	}()
	return ch
}

// process runs one deck and prints the outcome. Only cancellation is
// returned.
func (s *Session) process(ctx context.Context, raw string, masterDuel bool) error {
	job := model.NewJob(raw, masterDuel)

	fmt.Fprintln(s.out, "Navigating to the entered page...")
	fmt.Fprintln(s.out, "  Waiting for the page elements to load...")

	err := s.processor.Execute(ctx, job)
	if err != nil && ctx.Err() != nil {
		return ctx.Err()
	}

	s.Report(job)
	return nil
}

// Report prints the outcome of a job: the error that stopped it, or the
// save and clipboard results, exports and the summary table.
func (s *Session) Report(job *model.Job) {
	if job.Failed() {
		s.fail.Fprintf(s.out, "ERROR: %v\n", job.Err)
		return
	}

	fmt.Fprintf(s.out, "  Processing Deck: %s...\n", job.DeckName())

	if job.OutputPath != "" {
		fmt.Fprintf(s.out, "  Saving the Decklist to the file: %s...\n", job.OutputPath)
	}
	if job.SaveErr != nil {
		s.fail.Fprintf(s.out, "Error saving file: %v\n", job.SaveErr)
	} else {
		s.ok.Fprintln(s.out, "File saved successfully!")
	}

	if job.ClipboardErr != nil {
		s.fail.Fprintf(s.out, "Could not copy to clipboard: %v\n", job.ClipboardErr)
	} else if job.Copied {
		s.ok.Fprintln(s.out, "Decklist copied to clipboard!")
	}

	for _, path := range job.Exports {
		s.ok.Fprintf(s.out, "Exported %s\n", path)
	}
	for _, err := range job.ExportErrs {
		s.fail.Fprintf(s.out, "Export failed: %v\n", err)
	}

	if s.summary != nil {
		if _, err := s.summary.Write(report.NewDeckReport(job, report.WithVersion(s.version))); err != nil {
			s.logger.Warn("failed to write summary", "error", err)
		}
	}
}
