package sink

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nao1215/decklist/internal/extract"
	"github.com/nao1215/decklist/internal/model"
)

// FileSuffix is appended to the deck name to build the output file name.
const FileSuffix = " Decklist"

// Extensions of the files written next to each other for one deck.
const (
	ExtText     = ".txt"
	ExtJSON     = ".json"
	ExtMarkdown = ".md"
)

// Permissions for created directories and files.
const (
	dirPerm  = 0o750
	filePerm = 0o600
)

// FileSink writes decklists into a directory.
type FileSink struct {
	dir string
}

// NewFileSink creates a FileSink writing into dir. The directory is created
// on the first write.
func NewFileSink(dir string) *FileSink {
	return &FileSink{dir: dir}
}

// Dir returns the output directory.
func (s *FileSink) Dir() string {
	return s.dir
}

// FileName returns "<sanitized name> Decklist<ext>".
// An empty or fully sanitized name falls back to the unnamed deck title.
func FileName(deckName, ext string) string {
	base := strings.TrimSpace(extract.SanitizeFileName(deckName))
	if base == "" {
		base = model.UnnamedDeck
	}
	return base + FileSuffix + ext
}

// Path returns the path the deck would be written to with the given extension.
func (s *FileSink) Path(deckName, ext string) string {
	return filepath.Join(s.dir, FileName(deckName, ext))
}

// Save writes the template text for the deck and returns the file path.
// An existing file of the same name is overwritten.
func (s *FileSink) Save(deckName, content string) (string, error) {
	return s.Write(deckName, ExtText, []byte(content))
}

// Write writes data to "<name> Decklist<ext>" in the output directory.
func (s *FileSink) Write(deckName, ext string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", ErrEmptyContent
	}

	if err := os.MkdirAll(s.dir, dirPerm); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	path := s.Path(deckName, ext)
	if err := os.WriteFile(path, data, filePerm); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}

	return path, nil
}
