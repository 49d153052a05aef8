package sink

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// TestFileName tests output file naming.
func TestFileName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		deckName string
		ext      string
		want     string
	}{
		{name: "plain name", deckName: "Branded Despia", ext: ExtText, want: "Branded Despia Decklist.txt"},
		{name: "forbidden characters removed", deckName: `Tear: "Kashtira"/Ice?`, ext: ExtText, want: "Tear KashtiraIce Decklist.txt"},
		{name: "json extension", deckName: "Labrynth", ext: ExtJSON, want: "Labrynth Decklist.json"},
		{name: "empty name falls back", deckName: "", ext: ExtMarkdown, want: "Unnamed Deck Decklist.md"},
		{name: "only forbidden characters falls back", deckName: "???", ext: ExtText, want: "Unnamed Deck Decklist.txt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := FileName(tt.deckName, tt.ext); got != tt.want {
				t.Errorf("FileName(%q, %q) = %q, want %q", tt.deckName, tt.ext, got, tt.want)
			}
		})
	}
}

// TestFileSinkSave tests writing template files.
func TestFileSinkSave(t *testing.T) {
	t.Parallel()

	t.Run("creates missing output directory", func(t *testing.T) {
		t.Parallel()

		dir := filepath.Join(t.TempDir(), "nested", "Decklists")
		s := NewFileSink(dir)

		path, err := s.Save("Snake-Eye", "{{Decklist|Snake-Eye\n}}")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if path != filepath.Join(dir, "Snake-Eye Decklist.txt") {
			t.Errorf("unexpected path %q", path)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("failed to read saved file: %v", err)
		}
		if string(data) != "{{Decklist|Snake-Eye\n}}" {
			t.Errorf("unexpected content %q", data)
		}
	})

	t.Run("overwrites existing file", func(t *testing.T) {
		t.Parallel()

		s := NewFileSink(t.TempDir())
		if _, err := s.Save("Deck", "first"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		path, err := s.Save("Deck", "second")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("failed to read saved file: %v", err)
		}
		if string(data) != "second" {
			t.Errorf("expected overwritten content, got %q", data)
		}
	})

	t.Run("writes non-ascii content as utf-8", func(t *testing.T) {
		t.Parallel()

		s := NewFileSink(t.TempDir())
		content := "* [[Évoluteur ☆]]"
		path, err := s.Save("Évoluteur", content)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("failed to read saved file: %v", err)
		}
		if string(data) != content {
			t.Errorf("expected %q, got %q", content, data)
		}
	})

	t.Run("empty content returns ErrEmptyContent", func(t *testing.T) {
		t.Parallel()

		dir := filepath.Join(t.TempDir(), "out")
		_, err := NewFileSink(dir).Save("Deck", "")
		if !errors.Is(err, ErrEmptyContent) {
			t.Errorf("expected ErrEmptyContent, got %v", err)
		}
		if _, statErr := os.Stat(dir); !os.IsNotExist(statErr) {
			t.Error("expected no directory to be created")
		}
	})

	t.Run("output path blocked by a file fails", func(t *testing.T) {
		t.Parallel()

		blocker := filepath.Join(t.TempDir(), "blocker")
		if err := os.WriteFile(blocker, []byte("x"), 0o600); err != nil {
			t.Fatalf("failed to create blocker: %v", err)
		}
		if _, err := NewFileSink(blocker).Save("Deck", "content"); err == nil {
			t.Error("expected error when output directory is a file")
		}
	})

	t.Run("file is private to the user", func(t *testing.T) {
		t.Parallel()
		if runtime.GOOS == "windows" {
			t.Skip("permission bits are not meaningful on windows")
		}

		path, err := NewFileSink(t.TempDir()).Save("Deck", "content")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		info, err := os.Stat(path)
		if err != nil {
			t.Fatalf("failed to stat: %v", err)
		}
		if perm := info.Mode().Perm(); perm != filePerm {
			t.Errorf("expected permission %o, got %o", filePerm, perm)
		}
	})
}

// TestFileSinkWrite tests writing companion files.
func TestFileSinkWrite(t *testing.T) {
	t.Parallel()

	s := NewFileSink(t.TempDir())
	path, err := s.Write("Deck", ExtJSON, []byte(`{"name":"Deck"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if filepath.Base(path) != "Deck Decklist.json" {
		t.Errorf("unexpected file name %q", filepath.Base(path))
	}
	if s.Path("Deck", ExtJSON) != path {
		t.Errorf("Path() and Write() disagree: %q vs %q", s.Path("Deck", ExtJSON), path)
	}
}
