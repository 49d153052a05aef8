package model

import "strings"

// Zone identifies one of the three deck partitions.
type Zone string

const (
	// ZoneMain is the main deck.
	ZoneMain Zone = "main"
	// ZoneExtra is the extra deck (fusion, synchro, xyz and link monsters).
	ZoneExtra Zone = "extra"
	// ZoneSide is the side deck.
	ZoneSide Zone = "side"
)

// Zones lists every zone in rendering order.
var Zones = []Zone{ZoneMain, ZoneExtra, ZoneSide}

// String returns the zone name.
func (z Zone) String() string {
	return string(z)
}

// Kind is the card frame: monster, spell or trap.
type Kind string

const (
	KindMonster Kind = "monster"
	KindSpell   Kind = "spell"
	KindTrap    Kind = "trap"
)

// Category is the bucket a card is listed under in the decklist template.
// The string value is the template parameter name without the "side " prefix.
type Category string

const (
	CategoryNormal   Category = "normal monsters"
	CategoryEffect   Category = "effect monsters"
	CategoryToon     Category = "toon monsters"
	CategorySpirit   Category = "spirit monsters"
	CategoryUnion    Category = "union monsters"
	CategoryGemini   Category = "gemini monsters"
	CategoryTuner    Category = "tuner monsters"
	CategoryPendulum Category = "pendulum monsters"
	CategoryRitual   Category = "ritual monsters"

	CategoryFusion  Category = "fusion monsters"
	CategorySynchro Category = "synchro monsters"
	CategoryXyz     Category = "xyz monsters"
	CategoryLink    Category = "link monsters"

	CategorySpells Category = "spells"
	CategoryTraps  Category = "traps"
)

// String returns the category name as used in the template.
func (c Category) String() string {
	return string(c)
}

// MonsterCategories is the output order of monster categories in the
// main and side decks.
var MonsterCategories = []Category{
	CategoryNormal,
	CategoryEffect,
	CategoryToon,
	CategorySpirit,
	CategoryUnion,
	CategoryGemini,
	CategoryTuner,
	CategoryPendulum,
	CategoryRitual,
}

// ExtraCategories is the output order of extra deck monster categories.
var ExtraCategories = []Category{
	CategoryFusion,
	CategorySynchro,
	CategoryXyz,
	CategoryLink,
}

// rule maps a substring of the card's type line to a category.
type rule struct {
	keyword  string
	category Category
}

// mainRules is evaluated top to bottom; the first keyword found wins.
// A "Tuner/Effect" monster is therefore a tuner, a "Pendulum/Tuner" one a pendulum.
var mainRules = []rule{
	{"Ritual", CategoryRitual},
	{"Pendulum", CategoryPendulum},
	{"Tuner", CategoryTuner},
	{"Gemini", CategoryGemini},
	{"Union", CategoryUnion},
	{"Spirit", CategorySpirit},
	{"Toon", CategoryToon},
	{"Effect", CategoryEffect},
}

var extraRules = []rule{
	{"Fusion", CategoryFusion},
	{"Synchro", CategorySynchro},
	{"Xyz", CategoryXyz},
	{"Link", CategoryLink},
}

func classify(rules []rule, typeText string, fallback Category) Category {
	for _, r := range rules {
		if strings.Contains(typeText, r.keyword) {
			return r.category
		}
	}
	return fallback
}

// ClassifyMonster returns the main/side deck category for a monster whose
// type line is typeText (e.g. "Spellcaster / Tuner / Effect").
// Monsters matching no keyword are normal monsters.
func ClassifyMonster(typeText string) Category {
	return classify(mainRules, typeText, CategoryNormal)
}

// ClassifyExtraMonster returns the extra deck category for a monster.
// Unrecognized type lines fall back to fusion.
func ClassifyExtraMonster(typeText string) Category {
	return classify(extraRules, typeText, CategoryFusion)
}

// ClassifyIn classifies a monster with the table that belongs to zone.
func ClassifyIn(zone Zone, typeText string) Category {
	if zone == ZoneExtra {
		return ClassifyExtraMonster(typeText)
	}
	return ClassifyMonster(typeText)
}
