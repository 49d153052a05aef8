package report

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
)

// ErrUnknownTableStyle is returned for a table style name that does not exist.
var ErrUnknownTableStyle = errors.New("unknown table style")

// DefaultTableStyle is the style name used when none is configured.
const DefaultTableStyle = "rounded"

// tableStyles maps style names accepted on the command line to go-pretty styles.
var tableStyles = map[string]table.Style{
	"ascii":   table.StyleDefault,
	"bold":    table.StyleBold,
	"colored": table.StyleColoredBright,
	"double":  table.StyleDouble,
	"light":   table.StyleLight,
	"rounded": table.StyleRounded,
}

// TableStyleNames lists the accepted style names in sorted order.
func TableStyleNames() []string {
	names := make([]string, 0, len(tableStyles))
	for name := range tableStyles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// TableStyle returns the style called name. An empty name selects
// DefaultTableStyle.
func TableStyle(name string) (table.Style, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		name = DefaultTableStyle
	}
	style, ok := tableStyles[name]
	if !ok {
		return table.Style{}, fmt.Errorf("%w: %q (choose from %s)", ErrUnknownTableStyle, name, strings.Join(TableStyleNames(), ", "))
	}
	return style, nil
}

// SummaryWriter prints a compact table of a deck for the terminal.
type SummaryWriter struct {
	baseWriter

	// style is the go-pretty table style.
	style table.Style

	// showCards lists every card instead of one row per category.
	showCards bool
}

// SummaryWriterOption configures a SummaryWriter.
type SummaryWriterOption func(*SummaryWriter)

// WithStyle sets the table style.
func WithStyle(style table.Style) SummaryWriterOption {
	return func(w *SummaryWriter) {
		w.style = style
	}
}

// WithCards lists individual cards under each category.
func WithCards(show bool) SummaryWriterOption {
	return func(w *SummaryWriter) {
		w.showCards = show
	}
}

// NewSummaryWriter creates a SummaryWriter that outputs to the given writer.
func NewSummaryWriter(output io.Writer, opts ...SummaryWriterOption) *SummaryWriter {
	w := &SummaryWriter{
		baseWriter: newBaseWriter(output),
		style:      table.StyleRounded,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write renders the table followed by any deck size warnings.
func (w *SummaryWriter) Write(report *DeckReport) (int, error) {
	if report == nil {
		return 0, ErrNilReport
	}

	t := table.NewWriter()
	t.SetStyle(w.style)
	t.SetTitle(report.Name + " (" + report.Format() + ")")
	t.AppendHeader(table.Row{"Zone", "Category", "Cards", "Copies"})

	var copies int
	for _, zone := range report.Zones {
		copies += zone.Copies
		for _, g := range zone.Groups {
			t.AppendRow(table.Row{zone.Zone.String(), g.Category.String(), len(g.Cards), g.Copies})
			if !w.showCards {
				continue
			}
			for _, c := range g.Cards {
				t.AppendRow(table.Row{"", "  " + c.Name, "", c.Quantity})
			}
		}
		if len(zone.Groups) > 0 {
			t.AppendSeparator()
		}
	}
	t.AppendFooter(table.Row{"", "Total", "", copies})

	out := t.Render() + "\n"
	for _, warning := range report.Warnings() {
		out += "warning: " + warning + "\n"
	}

	return io.WriteString(w.output, out)
}
