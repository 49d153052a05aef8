package model

// UnnamedDeck is used when the page carries no deck title.
const UnnamedDeck = "Unnamed Deck"

// Card is a single row of a deck zone.
// Rows with the same name are kept separate; the database lists each
// printing on its own row and the template mirrors that.
type Card struct {
	// Name is the sanitized English card name.
	Name string `json:"name"`

	// Quantity is the number of copies, always at least 1.
	Quantity int `json:"quantity"`

	// Kind is monster, spell or trap.
	Kind Kind `json:"kind"`

	// Category is the template bucket derived from Kind and the type line.
	Category Category `json:"category"`
}

// Deck is the structured content of one deck page.
type Deck struct {
	// Name is the cleaned deck title.
	Name string `json:"name"`

	// SourceURL is the normalized URL the deck was scraped from.
	SourceURL string `json:"source_url,omitempty"`

	Main  []Card `json:"main"`
	Extra []Card `json:"extra"`
	Side  []Card `json:"side"`
}

// NewDeck creates an empty deck with the given name.
// An empty name becomes UnnamedDeck.
func NewDeck(name string) *Deck {
	if name == "" {
		name = UnnamedDeck
	}
	return &Deck{
		Name:  name,
		Main:  make([]Card, 0),
		Extra: make([]Card, 0),
		Side:  make([]Card, 0),
	}
}

// Add appends a card to the given zone.
func (d *Deck) Add(zone Zone, card Card) {
	switch zone {
	case ZoneMain:
		d.Main = append(d.Main, card)
	case ZoneExtra:
		d.Extra = append(d.Extra, card)
	case ZoneSide:
		d.Side = append(d.Side, card)
	}
}

// Cards returns the cards of a zone in page order.
func (d *Deck) Cards(zone Zone) []Card {
	switch zone {
	case ZoneMain:
		return d.Main
	case ZoneExtra:
		return d.Extra
	case ZoneSide:
		return d.Side
	default:
		return nil
	}
}

// OfKind returns the cards of a zone that have the given kind.
func (d *Deck) OfKind(zone Zone, kind Kind) []Card {
	var out []Card
	for _, c := range d.Cards(zone) {
		if c.Kind == kind {
			out = append(out, c)
		}
	}
	return out
}

// Monsters returns the monsters of a zone.
func (d *Deck) Monsters(zone Zone) []Card {
	return d.OfKind(zone, KindMonster)
}

// Spells returns the spells of a zone.
func (d *Deck) Spells(zone Zone) []Card {
	return d.OfKind(zone, KindSpell)
}

// Traps returns the traps of a zone.
func (d *Deck) Traps(zone Zone) []Card {
	return d.OfKind(zone, KindTrap)
}

// CardCount returns the number of copies in a zone.
func (d *Deck) CardCount(zone Zone) int {
	return Total(d.Cards(zone))
}

// IsEmpty reports whether no zone holds a card.
func (d *Deck) IsEmpty() bool {
	return len(d.Main) == 0 && len(d.Extra) == 0 && len(d.Side) == 0
}

// Total returns the sum of quantities.
func Total(cards []Card) int {
	total := 0
	for _, c := range cards {
		total += c.Quantity
	}
	return total
}

// Group holds the cards of one category in page order.
type Group struct {
	Category Category
	Cards    []Card
}

// Total returns the number of copies in the group.
func (g Group) Total() int {
	return Total(g.Cards)
}

// GroupByCategory buckets cards into the categories of order, keeping that
// order. Categories without cards are omitted, as are cards whose category
// is not part of order.
func GroupByCategory(cards []Card, order []Category) []Group {
	buckets := make(map[Category][]Card, len(order))
	for _, c := range cards {
		buckets[c.Category] = append(buckets[c.Category], c)
	}

	groups := make([]Group, 0, len(order))
	for _, category := range order {
		if len(buckets[category]) == 0 {
			continue
		}
		groups = append(groups, Group{Category: category, Cards: buckets[category]})
	}
	return groups
}
