package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/nao1215/decklist/internal/model"
	"github.com/nao1215/decklist/internal/wiki"
)

// createTestJob creates an extracted and formatted job with sample data.
func createTestJob() *model.Job {
	job := model.NewJob("https://www.db.yugioh-card.com/yugiohdb/member_deck.action?dno=7", false)
	job.URL = job.RawURL + "&request_locale=en"
	job.Snapshot = &model.Snapshot{
		URL:       job.URL,
		FetchedAt: time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC),
	}

	deck := model.NewDeck("Branded Despia")
	deck.SourceURL = job.URL
	deck.Add(model.ZoneMain, model.Card{Name: "Aluber the Jester of Despia", Quantity: 3, Kind: model.KindMonster, Category: model.CategoryEffect})
	deck.Add(model.ZoneMain, model.Card{Name: "Ash Blossom & Joyous Spring", Quantity: 3, Kind: model.KindMonster, Category: model.CategoryTuner})
	deck.Add(model.ZoneMain, model.Card{Name: "Branded Fusion", Quantity: 3, Kind: model.KindSpell, Category: model.CategorySpells})
	deck.Add(model.ZoneMain, model.Card{Name: "Branded Retribution", Quantity: 1, Kind: model.KindTrap, Category: model.CategoryTraps})
	deck.Add(model.ZoneExtra, model.Card{Name: "Mirrorjade the Iceblade Dragon", Quantity: 2, Kind: model.KindMonster, Category: model.CategoryFusion})
	deck.Add(model.ZoneSide, model.Card{Name: "Evenly Matched", Quantity: 2, Kind: model.KindTrap, Category: model.CategoryTraps})
	job.Deck = deck
	job.Template = wiki.Format(deck)

	return job
}

// TestNewDeckReport tests building report data from a job.
func TestNewDeckReport(t *testing.T) {
	t.Parallel()

	t.Run("groups zones in category order", func(t *testing.T) {
		t.Parallel()

		r := NewDeckReport(createTestJob(), WithVersion("v1.2.3"))
		if r.Version != "v1.2.3" {
			t.Errorf("expected version v1.2.3, got %q", r.Version)
		}

		var got []model.Category
		for _, g := range r.Zone(model.ZoneMain).Groups {
			got = append(got, g.Category)
		}
		want := []model.Category{model.CategoryEffect, model.CategoryTuner, model.CategorySpells, model.CategoryTraps}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("main groups mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("zone copies are sums of quantities", func(t *testing.T) {
		t.Parallel()

		r := NewDeckReport(createTestJob())
		tests := []struct {
			zone model.Zone
			want int
		}{
			{model.ZoneMain, 10},
			{model.ZoneExtra, 2},
			{model.ZoneSide, 2},
		}
		for _, tt := range tests {
			if got := r.Zone(tt.zone).Copies; got != tt.want {
				t.Errorf("zone %s: expected %d copies, got %d", tt.zone, tt.want, got)
			}
		}
		want := wiki.Totals{Monsters: 6, Spells: 3, Traps: 1, ExtraMonsters: 2}
		if diff := cmp.Diff(want, r.Totals); diff != "" {
			t.Errorf("totals mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("takes fetch time from snapshot", func(t *testing.T) {
		t.Parallel()

		job := createTestJob()
		r := NewDeckReport(job)
		if !r.GeneratedAt.Equal(job.Snapshot.FetchedAt) {
			t.Errorf("expected %v, got %v", job.Snapshot.FetchedAt, r.GeneratedAt)
		}
	})

	t.Run("job without deck yields nil", func(t *testing.T) {
		t.Parallel()

		if r := NewDeckReport(model.NewJob("x", false)); r != nil {
			t.Errorf("expected nil report, got %+v", r)
		}
		if r := NewDeckReport(nil); r != nil {
			t.Errorf("expected nil report, got %+v", r)
		}
	})
}

// TestDeckReportWarnings tests deck size warnings.
func TestDeckReportWarnings(t *testing.T) {
	t.Parallel()

	mainOf := func(n int) *model.Job {
		job := model.NewJob("x", false)
		job.Deck = model.NewDeck("Deck")
		job.Deck.Add(model.ZoneMain, model.Card{Name: "Filler", Quantity: n, Kind: model.KindMonster, Category: model.CategoryNormal})
		return job
	}

	tests := []struct {
		name  string
		job   *model.Job
		count int
	}{
		{name: "legal main deck has no warnings", job: mainOf(40), count: 0},
		{name: "upper bound is legal", job: mainOf(60), count: 0},
		{name: "small main deck warns", job: mainOf(10), count: 1},
		{name: "large main deck warns", job: mainOf(61), count: 1},
		{
			name: "oversized extra and side decks warn",
			job: func() *model.Job {
				job := mainOf(40)
				job.Deck.Add(model.ZoneExtra, model.Card{Name: "E", Quantity: 16, Kind: model.KindMonster, Category: model.CategoryLink})
				job.Deck.Add(model.ZoneSide, model.Card{Name: "S", Quantity: 16, Kind: model.KindSpell, Category: model.CategorySpells})
				return job
			}(),
			count: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := NewDeckReport(tt.job).Warnings(); len(got) != tt.count {
				t.Errorf("expected %d warnings, got %v", tt.count, got)
			}
		})
	}
}

// TestSummaryWriter tests the terminal table writer.
func TestSummaryWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes one row per category", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewSummaryWriter(&buf).Write(NewDeckReport(createTestJob())); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		for _, want := range []string{"Branded Despia (TCG/OCG)", "effect monsters", "tuner monsters", "fusion monsters", "traps"} {
			if !strings.Contains(output, want) {
				t.Errorf("expected output to contain %q:\n%s", want, output)
			}
		}
		if strings.Contains(output, "Aluber") {
			t.Error("expected card names to be hidden by default")
		}
	})

	t.Run("lists cards when requested", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewSummaryWriter(&buf, WithCards(true)).Write(NewDeckReport(createTestJob())); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "Aluber the Jester of Despia") {
			t.Errorf("expected card names in output:\n%s", buf.String())
		}
	})

	t.Run("prints size warnings", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewSummaryWriter(&buf).Write(NewDeckReport(createTestJob())); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "warning: main deck has 10 cards") {
			t.Errorf("expected main deck warning:\n%s", buf.String())
		}
	})

	t.Run("uses the configured style", func(t *testing.T) {
		t.Parallel()

		style, err := TableStyle("double")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		var buf bytes.Buffer
		if _, err := NewSummaryWriter(&buf, WithStyle(style)).Write(NewDeckReport(createTestJob())); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "╔") {
			t.Errorf("expected double box drawing:\n%s", buf.String())
		}
		if strings.Contains(buf.String(), "╭") {
			t.Errorf("expected no rounded corners:\n%s", buf.String())
		}
	})

	t.Run("nil report returns ErrNilReport", func(t *testing.T) {
		t.Parallel()

		if _, err := NewSummaryWriter(&bytes.Buffer{}).Write(nil); !errors.Is(err, ErrNilReport) {
			t.Errorf("expected ErrNilReport, got %v", err)
		}
	})
}

// TestJSONWriter tests the JSON report writer.
func TestJSONWriter(t *testing.T) {
	t.Parallel()

	t.Run("outputs valid JSON", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf).Write(NewDeckReport(createTestJob())); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var parsed DeckReport
		if err := json.Unmarshal(buf.Bytes(), &parsed); err != nil {
			t.Fatalf("output is not valid JSON: %v", err)
		}
		if parsed.Name != "Branded Despia" {
			t.Errorf("expected name %q, got %q", "Branded Despia", parsed.Name)
		}
		if parsed.Totals.Monsters != 6 {
			t.Errorf("expected 6 monsters, got %d", parsed.Totals.Monsters)
		}
		if !strings.HasPrefix(parsed.Template, "{{Decklist|Branded Despia") {
			t.Errorf("expected template in JSON, got %q", parsed.Template)
		}
	})

	t.Run("compact output by default", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf).Write(NewDeckReport(createTestJob())); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if strings.Count(buf.String(), "\n") != 1 {
			t.Error("expected compact JSON on a single line")
		}
	})

	t.Run("pretty print with indent", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf, WithPrettyPrint()).Write(NewDeckReport(createTestJob())); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "\n  \"name\"") {
			t.Error("expected indented JSON output")
		}
	})

	t.Run("uses custom prefix and indent", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf, WithIndent(">", "\t")).Write(NewDeckReport(createTestJob())); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "\n>\t\"name\"") {
			t.Error("expected custom prefix and tab indent")
		}
	})
}

// TestMarkdownWriter tests the Markdown report writer.
func TestMarkdownWriter(t *testing.T) {
	t.Parallel()

	write := func(t *testing.T, r *DeckReport) string {
		t.Helper()
		var buf bytes.Buffer
		if _, err := NewMarkdownWriter(&buf).Write(r); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		return buf.String()
	}

	t.Run("writes deck title and properties", func(t *testing.T) {
		t.Parallel()

		output := write(t, NewDeckReport(createTestJob()))
		if !strings.Contains(output, "# Branded Despia") {
			t.Error("expected deck title heading")
		}
		if !strings.Contains(output, "TCG/OCG") {
			t.Error("expected format in property table")
		}
		if !strings.Contains(output, "[Card Database](https://www.db.yugioh-card.com/") {
			t.Error("expected source link")
		}
	})

	t.Run("writes title-cased zone and category headings", func(t *testing.T) {
		t.Parallel()

		output := write(t, NewDeckReport(createTestJob()))
		for _, want := range []string{"## Main Deck (10)", "## Extra Deck (2)", "## Side Deck (2)", "Effect Monsters", "Fusion Monsters"} {
			if !strings.Contains(output, want) {
				t.Errorf("expected output to contain %q", want)
			}
		}
	})

	t.Run("includes pie chart", func(t *testing.T) {
		t.Parallel()

		output := write(t, NewDeckReport(createTestJob()))
		if !strings.Contains(output, "```mermaid") || !strings.Contains(output, "Main Deck Composition") {
			t.Error("expected mermaid pie chart")
		}
	})

	t.Run("embeds wiki template", func(t *testing.T) {
		t.Parallel()

		output := write(t, NewDeckReport(createTestJob()))
		if !strings.Contains(output, "{{Decklist|Branded Despia") {
			t.Error("expected wiki template in output")
		}
	})

	t.Run("includes GitHub alert for undersized deck", func(t *testing.T) {
		t.Parallel()

		output := write(t, NewDeckReport(createTestJob()))
		if !strings.Contains(output, "[!WARNING]") {
			t.Error("expected warning alert")
		}
	})

	t.Run("master duel deck shows format", func(t *testing.T) {
		t.Parallel()

		job := createTestJob()
		job.MasterDuel = true
		if !strings.Contains(write(t, NewDeckReport(job)), "Master Duel") {
			t.Error("expected Master Duel format")
		}
	})

	t.Run("empty zone is marked", func(t *testing.T) {
		t.Parallel()

		job := model.NewJob("x", false)
		job.Deck = model.NewDeck("Empty")
		if !strings.Contains(write(t, NewDeckReport(job)), "*No cards.*") {
			t.Error("expected empty zone note")
		}
	})
}

// TestTableStyle tests style name lookup.
func TestTableStyle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{name: "empty name is rounded", in: "", want: "StyleRounded"},
		{name: "names are case insensitive", in: " Light ", want: "StyleLight"},
		{name: "ascii is the plain style", in: "ascii", want: "StyleDefault"},
		{name: "unknown name is an error", in: "fancy", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			style, err := TableStyle(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownTableStyle) {
					t.Errorf("expected ErrUnknownTableStyle, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if style.Name != tt.want {
				t.Errorf("expected %s, got %s", tt.want, style.Name)
			}
		})
	}
}
