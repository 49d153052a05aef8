// Package wiki renders a deck as a {{Decklist}} wiki template.
//
// The template lists the main deck (monster totals and categories, spells,
// traps), the extra deck and the side deck. Categories without cards are
// left out; totals are always present for the main and extra decks.
package wiki

import (
	"strconv"
	"strings"

	"github.com/nao1215/decklist/internal/model"
)

// MasterDuelSuffix qualifies link targets for decks of the Master Duel game.
const MasterDuelSuffix = " (Master Duel)"

// Options control rendering.
type Options struct {
	// MasterDuel renders links as [[Name (Master Duel)|Name]].
	MasterDuel bool
}

// Option configures rendering.
type Option func(*Options)

// WithMasterDuel enables the Master Duel link form.
func WithMasterDuel(enabled bool) Option {
	return func(o *Options) {
		o.MasterDuel = enabled
	}
}

// Totals are the counts printed in the template.
type Totals struct {
	Monsters      int `json:"monsters"`
	Spells        int `json:"spells"`
	Traps         int `json:"traps"`
	ExtraMonsters int `json:"extra_monsters"`
}

// ComputeTotals sums quantities per template section.
func ComputeTotals(deck *model.Deck) Totals {
	return Totals{
		Monsters:      model.Total(deck.Monsters(model.ZoneMain)),
		Spells:        model.Total(deck.Spells(model.ZoneMain)),
		Traps:         model.Total(deck.Traps(model.ZoneMain)),
		ExtraMonsters: model.Total(deck.Monsters(model.ZoneExtra)),
	}
}

// Format renders the deck. The result has no leading or trailing whitespace.
func Format(deck *model.Deck, opts ...Option) string {
	var o Options
	for _, opt := range opts {
		opt(&o)
	}

	t := ComputeTotals(deck)
	var lines []string

	lines = append(lines,
		"{{Decklist|"+deck.Name,
		"<!-- Main Deck -->",
		"| total m = "+strconv.Itoa(t.Monsters),
	)
	lines = appendGroups(lines, "", model.GroupByCategory(deck.Monsters(model.ZoneMain), model.MonsterCategories), o)
	lines = append(lines, "| total s = "+strconv.Itoa(t.Spells))
	lines = appendSection(lines, "spells", deck.Spells(model.ZoneMain), o)
	lines = append(lines, "| total t = "+strconv.Itoa(t.Traps))
	lines = appendSection(lines, "traps", deck.Traps(model.ZoneMain), o)

	lines = append(lines,
		"",
		"<!-- Extra Deck -->",
		"| total me = "+strconv.Itoa(t.ExtraMonsters),
	)
	lines = appendGroups(lines, "", model.GroupByCategory(deck.Monsters(model.ZoneExtra), model.ExtraCategories), o)

	lines = append(lines,
		"",
		"<!-- Side Deck -->",
	)
	lines = appendGroups(lines, "side ", model.GroupByCategory(deck.Monsters(model.ZoneSide), model.MonsterCategories), o)
	lines = appendSection(lines, "side spells", deck.Spells(model.ZoneSide), o)
	lines = appendSection(lines, "side traps", deck.Traps(model.ZoneSide), o)

	lines = append(lines, "}}")

	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// appendGroups writes one parameter per group, prefixing its name.
func appendGroups(lines []string, prefix string, groups []model.Group, o Options) []string {
	for _, g := range groups {
		lines = appendSection(lines, prefix+g.Category.String(), g.Cards, o)
	}
	return lines
}

// appendSection writes "| param =" followed by the card list.
// Nothing is written for an empty list.
func appendSection(lines []string, param string, cards []model.Card, o Options) []string {
	if len(cards) == 0 {
		return lines
	}
	lines = append(lines, "| "+param+" =")
	for _, c := range cards {
		lines = append(lines, CardLine(c, o.MasterDuel))
	}
	return lines
}

// CardLine renders one bullet: "* [[Name]]", with " xN" when N > 1.
func CardLine(c model.Card, masterDuel bool) string {
	var sb strings.Builder
	sb.WriteString("* [[")
	sb.WriteString(c.Name)
	if masterDuel {
		sb.WriteString(MasterDuelSuffix)
		sb.WriteString("|")
		sb.WriteString(c.Name)
	}
	sb.WriteString("]]")
	if c.Quantity > 1 {
		sb.WriteString(" x")
		sb.WriteString(strconv.Itoa(c.Quantity))
	}
	return sb.String()
}
