package sink

import (
	"fmt"

	"github.com/atotto/clipboard"
)

// Clipboard receives the rendered template.
type Clipboard interface {
	Copy(text string) error
}

// clipboardWriteAll is replaced in tests.
var clipboardWriteAll = clipboard.WriteAll

// clipboardUnsupported reports whether the platform lacks a clipboard tool.
var clipboardUnsupported = func() bool { return clipboard.Unsupported }

// SystemClipboard writes to the operating system clipboard.
type SystemClipboard struct{}

// NewSystemClipboard creates a SystemClipboard.
func NewSystemClipboard() *SystemClipboard {
	return &SystemClipboard{}
}

// Copy places text on the clipboard.
func (c *SystemClipboard) Copy(text string) error {
	if text == "" {
		return ErrEmptyContent
	}
	if clipboardUnsupported() {
		return ErrClipboardUnsupported
	}
	if err := clipboardWriteAll(text); err != nil {
		return fmt.Errorf("failed to copy to clipboard: %w", err)
	}
	return nil
}
