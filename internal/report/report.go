package report

import (
	"fmt"
	"time"

	"github.com/nao1215/decklist/internal/model"
	"github.com/nao1215/decklist/internal/wiki"
)

// Deck construction limits of the official rules. They are only used to
// warn about suspicious extraction results, never to reject a deck.
const (
	MainDeckMin  = 40
	MainDeckMax  = 60
	ExtraDeckMax = 15
	SideDeckMax  = 15
)

// DeckReport is the writer-independent view of one processed deck.
type DeckReport struct {
	// Version is the decklist version that produced the report.
	Version string `json:"version,omitempty"`

	// Name is the deck title.
	Name string `json:"name"`

	// SourceURL is the normalized deck page URL.
	SourceURL string `json:"source_url,omitempty"`

	// MasterDuel reports whether links use the Master Duel form.
	MasterDuel bool `json:"master_duel"`

	// GeneratedAt is when the page snapshot was taken.
	GeneratedAt time.Time `json:"generated_at"`

	// Totals are the counts printed in the wiki template.
	Totals wiki.Totals `json:"totals"`

	// Zones lists main, extra and side deck contents.
	Zones []ZoneReport `json:"zones"`

	// Template is the rendered wiki markup.
	Template string `json:"template,omitempty"`

	// OutputPath is where the template was saved, if it was.
	OutputPath string `json:"output_path,omitempty"`
}

// ZoneReport summarizes one deck zone.
type ZoneReport struct {
	Zone   model.Zone    `json:"zone"`
	Copies int           `json:"copies"`
	Groups []GroupReport `json:"groups"`
}

// GroupReport lists the cards of one category.
type GroupReport struct {
	Category model.Category `json:"category"`
	Copies   int            `json:"copies"`
	Cards    []model.Card   `json:"cards"`
}

// ReportOption configures NewDeckReport.
type ReportOption func(*DeckReport)

// WithVersion records the producing version.
func WithVersion(version string) ReportOption {
	return func(r *DeckReport) {
		r.Version = version
	}
}

// zoneOrder is the category order per zone, spells and traps last.
var zoneOrder = map[model.Zone][]model.Category{
	model.ZoneMain:  append(append([]model.Category{}, model.MonsterCategories...), model.CategorySpells, model.CategoryTraps),
	model.ZoneExtra: model.ExtraCategories,
	model.ZoneSide:  append(append([]model.Category{}, model.MonsterCategories...), model.CategorySpells, model.CategoryTraps),
}

// NewDeckReport builds a report from a job that has at least been
// extracted. It returns nil when the job carries no deck.
func NewDeckReport(job *model.Job, opts ...ReportOption) *DeckReport {
	if job == nil || job.Deck == nil {
		return nil
	}

	deck := job.Deck
	r := &DeckReport{
		Name:       deck.Name,
		SourceURL:  deck.SourceURL,
		MasterDuel: job.MasterDuel,
		Totals:     wiki.ComputeTotals(deck),
		Zones:      make([]ZoneReport, 0, len(model.Zones)),
		Template:   job.Template,
		OutputPath: job.OutputPath,
	}
	if r.SourceURL == "" {
		r.SourceURL = job.URL
	}
	if job.Snapshot != nil {
		r.GeneratedAt = job.Snapshot.FetchedAt
	}

	for _, zone := range model.Zones {
		cards := deck.Cards(zone)
		zr := ZoneReport{
			Zone:   zone,
			Copies: model.Total(cards),
			Groups: make([]GroupReport, 0),
		}
		for _, g := range model.GroupByCategory(cards, zoneOrder[zone]) {
			zr.Groups = append(zr.Groups, GroupReport{
				Category: g.Category,
				Copies:   g.Total(),
				Cards:    g.Cards,
			})
		}
		r.Zones = append(r.Zones, zr)
	}

	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Zone returns the report for a zone, or an empty one.
func (r *DeckReport) Zone(zone model.Zone) ZoneReport {
	for _, z := range r.Zones {
		if z.Zone == zone {
			return z
		}
	}
	return ZoneReport{Zone: zone}
}

// Warnings lists deck sizes outside the construction limits. A page that
// yields such a deck was often only partly loaded.
func (r *DeckReport) Warnings() []string {
	var warnings []string

	if main := r.Zone(model.ZoneMain).Copies; main < MainDeckMin || main > MainDeckMax {
		warnings = append(warnings, fmt.Sprintf("main deck has %d cards (expected %d to %d)", main, MainDeckMin, MainDeckMax))
	}
	if extra := r.Zone(model.ZoneExtra).Copies; extra > ExtraDeckMax {
		warnings = append(warnings, fmt.Sprintf("extra deck has %d cards (at most %d)", extra, ExtraDeckMax))
	}
	if side := r.Zone(model.ZoneSide).Copies; side > SideDeckMax {
		warnings = append(warnings, fmt.Sprintf("side deck has %d cards (at most %d)", side, SideDeckMax))
	}

	return warnings
}

// Format returns "Master Duel" or "TCG/OCG".
func (r *DeckReport) Format() string {
	if r.MasterDuel {
		return "Master Duel"
	}
	return "TCG/OCG"
}
