package report

import (
	"io"
	"strconv"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/nao1215/decklist/internal/model"
)

// MarkdownWriter outputs reports in Markdown format for sharing.
// The wiki template is embedded in a code block so the file alone is
// enough to paste the deck.
type MarkdownWriter struct {
	baseWriter

	// title capitalizes category and zone headings.
	title cases.Caser
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
		title:      cases.Title(language.English, cases.NoLower),
	}
}

// Write outputs the report in Markdown format.
func (w *MarkdownWriter) Write(report *DeckReport) (int, error) {
	if report == nil {
		return 0, ErrNilReport
	}

	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, report)
	w.writeWarnings(md, report)
	w.writeComposition(md, report)
	for _, zone := range report.Zones {
		w.writeZone(md, zone)
	}
	w.writeTemplate(md, report)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeHeader writes the deck title and a property table.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, report *DeckReport) {
	md.H1(report.Name)
	md.PlainText("")

	source := "-"
	if report.SourceURL != "" {
		source = markdown.Link("Card Database", report.SourceURL)
	}
	generated := "-"
	if !report.GeneratedAt.IsZero() {
		generated = report.GeneratedAt.Format("2006-01-02 15:04:05 MST")
	}

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Source", source},
			{"Format", report.Format()},
			{"Main Deck", strconv.Itoa(report.Zone(model.ZoneMain).Copies)},
			{"Extra Deck", strconv.Itoa(report.Zone(model.ZoneExtra).Copies)},
			{"Side Deck", strconv.Itoa(report.Zone(model.ZoneSide).Copies)},
			{"Fetched", generated},
		},
	})
	md.PlainText("")
}

// writeWarnings writes an alert when deck sizes look wrong.
func (w *MarkdownWriter) writeWarnings(md *markdown.Markdown, report *DeckReport) {
	warnings := report.Warnings()
	if len(warnings) == 0 {
		return
	}
	for _, warning := range warnings {
		md.Warningf("The %s. The page may not have loaded completely.", warning)
	}
	md.PlainText("")
}

// writeComposition writes a pie chart of main deck card kinds.
func (w *MarkdownWriter) writeComposition(md *markdown.Markdown, report *DeckReport) {
	t := report.Totals
	if t.Monsters+t.Spells+t.Traps == 0 {
		return
	}

	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Main Deck Composition"),
		piechart.WithShowData(true),
	)
	if t.Monsters > 0 {
		chart.LabelAndIntValue("Monsters", uint64(t.Monsters))
	}
	if t.Spells > 0 {
		chart.LabelAndIntValue("Spells", uint64(t.Spells))
	}
	if t.Traps > 0 {
		chart.LabelAndIntValue("Traps", uint64(t.Traps))
	}

	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeZone writes one zone as a table of categories and cards.
func (w *MarkdownWriter) writeZone(md *markdown.Markdown, zone ZoneReport) {
	md.H2(w.title.String(zone.Zone.String()+" deck") + " (" + strconv.Itoa(zone.Copies) + ")")
	md.PlainText("")

	if len(zone.Groups) == 0 {
		md.PlainText("*No cards.*")
		md.PlainText("")
		return
	}

	rows := make([][]string, 0)
	for _, g := range zone.Groups {
		category := w.title.String(g.Category.String())
		for _, c := range g.Cards {
			rows = append(rows, []string{category, c.Name, strconv.Itoa(c.Quantity)})
		}
	}

	md.Table(markdown.TableSet{
		Header: []string{"Category", "Card", "Copies"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeTemplate embeds the wiki markup.
func (w *MarkdownWriter) writeTemplate(md *markdown.Markdown, report *DeckReport) {
	if report.Template == "" {
		return
	}
	md.H2("Wiki Template")
	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightText, report.Template)
	md.PlainText("")
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Generated by [decklist](https://github.com/nao1215/decklist)*")
}
