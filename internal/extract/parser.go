package extract

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/nao1215/decklist/internal/model"
)

// Selectors for the Card Database deck page.
const (
	// RowSelector matches one card row. The browser waits for it to attach
	// before taking a snapshot.
	RowSelector = ".t_row.c_normal"

	titleSelector     = "#broad_title h1"
	nameSelector      = ".card_name"
	quantitySelector  = ".cards_num_set span"
	attributeSelector = ".box_card_attribute span"
	typeSelector      = ".card_info_species_and_other_item"
)

// Attribute values that mark non-monster cards.
const (
	attributeSpell = "SPELL"
	attributeTrap  = "TRAP"
)

// nameNotFound replaces card names the row does not carry.
const nameNotFound = "Name not found"

// zoneContainers maps each zone to the element holding its rows.
var zoneContainers = []struct {
	zone     model.Zone
	selector string
}{
	{model.ZoneMain, "#detailtext_main"},
	{model.ZoneExtra, "#detailtext_ext"},
	{model.ZoneSide, "#detailtext_side"},
}

// ErrNoCards is returned when the document contains no card rows at all,
// which means the page is not a deck page.
var ErrNoCards = errors.New("no card rows found on page")

// Parser extracts decks from Card Database HTML.
type Parser struct {
	logger *slog.Logger
}

// ParserOption configures a Parser.
type ParserOption func(*Parser)

// WithLogger sets the logger used for skipped rows.
func WithLogger(logger *slog.Logger) ParserOption {
	return func(p *Parser) {
		p.logger = logger
	}
}

// NewParser creates a Parser.
func NewParser(opts ...ParserOption) *Parser {
	p := &Parser{}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = slog.Default()
	}
	return p
}

// Parse reads an HTML document and returns the deck it lists.
func (p *Parser) Parse(content io.Reader) (*model.Deck, error) {
	root, err := html.Parse(content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	doc := goquery.NewDocumentFromNode(root)

	if doc.Find(RowSelector).Length() == 0 {
		return nil, ErrNoCards
	}

	deck := model.NewDeck(deckTitle(doc))

	for _, zc := range zoneContainers {
		doc.Find(zc.selector + " " + RowSelector).Each(func(_ int, row *goquery.Selection) {
			card, ok := parseRow(zc.zone, row)
			if !ok {
				p.logger.Debug("skipping row",
					"zone", zc.zone,
					"card", card.Name,
					"kind", card.Kind,
				)
				return
			}
			deck.Add(zc.zone, card)
		})
	}

	return deck, nil
}

// ParseSnapshot parses a snapshot and records its URL on the deck.
func (p *Parser) ParseSnapshot(s *model.Snapshot) (*model.Deck, error) {
	if s == nil {
		return nil, ErrNoCards
	}
	deck, err := p.Parse(strings.NewReader(s.HTML))
	if err != nil {
		return nil, err
	}
	deck.SourceURL = s.URL
	return deck, nil
}

// deckTitle returns the cleaned deck title, or UnnamedDeck.
func deckTitle(doc *goquery.Document) string {
	title := CleanText(doc.Find(titleSelector).First().Text())
	if title == "" {
		return model.UnnamedDeck
	}
	return title
}

// parseRow converts a card row. It reports false for rows that have no
// place in the zone (spells and traps listed under the extra deck).
func parseRow(zone model.Zone, row *goquery.Selection) (model.Card, bool) {
	// Names keep their inner spacing; only the markup characters go.
	name := strings.TrimSpace(row.Find(nameSelector).First().Text())
	if name == "" {
		name = nameNotFound
	}

	card := model.Card{
		Name:     SanitizeCardName(name),
		Quantity: parseQuantity(row.Find(quantitySelector).First().Text()),
	}

	switch CleanText(row.Find(attributeSelector).First().Text()) {
	case attributeSpell:
		card.Kind = model.KindSpell
		card.Category = model.CategorySpells
	case attributeTrap:
		card.Kind = model.KindTrap
		card.Category = model.CategoryTraps
	default:
		card.Kind = model.KindMonster
		card.Category = model.ClassifyIn(zone, CleanText(row.Find(typeSelector).First().Text()))
		return card, true
	}

	return card, zone != model.ZoneExtra
}
