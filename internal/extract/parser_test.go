package extract

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/nao1215/decklist/internal/model"
)

// loadFixture reads an HTML file from testdata.
func loadFixture(t *testing.T, name string) string {
	t.Helper()

	data, err := os.ReadFile(filepath.Join("testdata", name))
	if err != nil {
		t.Fatalf("failed to read fixture: %v", err)
	}
	return string(data)
}

// TestParserParse tests extraction from a full deck page.
func TestParserParse(t *testing.T) {
	t.Parallel()

	deck, err := NewParser().Parse(strings.NewReader(loadFixture(t, "deck.html")))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Run("cleans the deck title", func(t *testing.T) {
		t.Parallel()
		if deck.Name != "Branded Despia Tournament" {
			t.Errorf("expected 'Branded Despia Tournament', got %q", deck.Name)
		}
	})

	t.Run("extracts the main deck in page order", func(t *testing.T) {
		t.Parallel()
		want := []model.Card{
			{Name: "Aluber the Jester of Despia", Quantity: 3, Kind: model.KindMonster, Category: model.CategoryEffect},
			{Name: "Ash Blossom & Joyous Spring", Quantity: 2, Kind: model.KindMonster, Category: model.CategoryTuner},
			{Name: "Blue-Eyes White Dragon", Quantity: 1, Kind: model.KindMonster, Category: model.CategoryNormal},
			{Name: "Branded Fusion", Quantity: 3, Kind: model.KindSpell, Category: model.CategorySpells},
			{Name: "Branded Retribution", Quantity: 1, Kind: model.KindTrap, Category: model.CategoryTraps},
		}
		if diff := cmp.Diff(want, deck.Main); diff != "" {
			t.Errorf("main deck mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("drops spells listed in the extra deck", func(t *testing.T) {
		t.Parallel()
		want := []model.Card{
			{Name: "Mirrorjade the Iceblade Dragon", Quantity: 1, Kind: model.KindMonster, Category: model.CategoryFusion},
			{Name: "Baronne de Fleur", Quantity: 1, Kind: model.KindMonster, Category: model.CategorySynchro},
		}
		if diff := cmp.Diff(want, deck.Extra); diff != "" {
			t.Errorf("extra deck mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("extracts side deck spells and traps", func(t *testing.T) {
		t.Parallel()
		want := []model.Card{
			{Name: "Nibiru, the Primal Being", Quantity: 2, Kind: model.KindMonster, Category: model.CategoryEffect},
			{Name: "Dark Ruler No More", Quantity: 1, Kind: model.KindSpell, Category: model.CategorySpells},
			{Name: "Evenly Matched", Quantity: 2, Kind: model.KindTrap, Category: model.CategoryTraps},
		}
		if diff := cmp.Diff(want, deck.Side); diff != "" {
			t.Errorf("side deck mismatch (-want +got):\n%s", diff)
		}
	})
}

// TestParserParseEdgeCases tests rows with missing or hostile fields.
func TestParserParseEdgeCases(t *testing.T) {
	t.Parallel()

	t.Run("page without rows returns ErrNoCards", func(t *testing.T) {
		t.Parallel()
		_, err := NewParser().Parse(strings.NewReader("<html><body><h1>Not found</h1></body></html>"))
		if !errors.Is(err, ErrNoCards) {
			t.Errorf("expected ErrNoCards, got %v", err)
		}
	})

	t.Run("missing title becomes Unnamed Deck", func(t *testing.T) {
		t.Parallel()
		page := `<div id="detailtext_main"><div class="t_row c_normal"><span class="card_name">Pot of Greed</span>` +
			`<div class="box_card_attribute"><span>SPELL</span></div></div></div>`
		deck, err := NewParser().Parse(strings.NewReader(page))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if deck.Name != model.UnnamedDeck {
			t.Errorf("expected %q, got %q", model.UnnamedDeck, deck.Name)
		}
		if len(deck.Main) != 1 || deck.Main[0].Quantity != 1 {
			t.Errorf("expected one spell with quantity 1, got %+v", deck.Main)
		}
	})

	t.Run("missing name becomes placeholder", func(t *testing.T) {
		t.Parallel()
		page := `<div id="detailtext_side"><div class="t_row c_normal">` +
			`<div class="cards_num_set"><span>2</span></div></div></div>`
		deck, err := NewParser().Parse(strings.NewReader(page))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := []model.Card{{Name: "Name not found", Quantity: 2, Kind: model.KindMonster, Category: model.CategoryNormal}}
		if diff := cmp.Diff(want, deck.Side); diff != "" {
			t.Errorf("side mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("markup characters are stripped from names", func(t *testing.T) {
		t.Parallel()
		page := `<div id="detailtext_main"><div class="t_row c_normal">` +
			`<span class="card_name">Number 39: Utopia [Beyond] {x}|#&lt;&gt;</span>` +
			`<span class="card_info_species_and_other_item">Warrior／Effect</span></div></div>`
		deck, err := NewParser().Parse(strings.NewReader(page))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := deck.Main[0].Name; got != "Number 39: Utopia Beyond x" {
			t.Errorf("unexpected name %q", got)
		}
	})

	t.Run("card names are trimmed but keep inner spacing", func(t *testing.T) {
		t.Parallel()
		page := `<div id="detailtext_main"><div class="t_row c_normal">` +
			"<span class=\"card_name\">\n\t Caf\u00e9  [Dragon]&nbsp;X \n</span>" +
			`<span class="card_info_species_and_other_item">Dragon／Effect</span></div></div>`
		deck, err := NewParser().Parse(strings.NewReader(page))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got, want := deck.Main[0].Name, "Caf\u00e9  Dragon\u00a0X"; got != want {
			t.Errorf("expected %q, got %q", want, got)
		}
	})

	t.Run("deck title is still collapsed", func(t *testing.T) {
		t.Parallel()
		page := "<div id=\"broad_title\"><h1>\n  Sky&nbsp;&nbsp;Striker\n\tDeck </h1></div>" +
			`<div id="detailtext_main"><div class="t_row c_normal"><span class="card_name">Raye</span></div></div>`
		deck, err := NewParser().Parse(strings.NewReader(page))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if deck.Name != "Sky Striker Deck" {
			t.Errorf("expected 'Sky Striker Deck', got %q", deck.Name)
		}
	})

	t.Run("rows outside zone containers are ignored", func(t *testing.T) {
		t.Parallel()
		page := `<div id="somewhere_else"><div class="t_row c_normal"><span class="card_name">Ghost</span></div></div>`
		deck, err := NewParser().Parse(strings.NewReader(page))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !deck.IsEmpty() {
			t.Errorf("expected empty deck, got %+v", deck)
		}
	})
}

// TestParseSnapshot tests parsing from a snapshot.
func TestParseSnapshot(t *testing.T) {
	t.Parallel()

	t.Run("records the source URL", func(t *testing.T) {
		t.Parallel()
		snap := &model.Snapshot{
			URL:  "https://www.db.yugioh-card.com/yugiohdb/member_deck.action?dno=1&request_locale=en",
			HTML: loadFixture(t, "deck.html"),
		}
		deck, err := NewParser().ParseSnapshot(snap)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if deck.SourceURL != snap.URL {
			t.Errorf("expected source URL %q, got %q", snap.URL, deck.SourceURL)
		}
	})

	t.Run("nil snapshot returns ErrNoCards", func(t *testing.T) {
		t.Parallel()
		if _, err := NewParser().ParseSnapshot(nil); !errors.Is(err, ErrNoCards) {
			t.Errorf("expected ErrNoCards, got %v", err)
		}
	})
}
