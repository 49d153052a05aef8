package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "decklist"

	// DefaultSelectorTimeout bounds the wait for the deck table to attach.
	// The Card Database renders the table after load and is slow at times.
	DefaultSelectorTimeout = 30 * time.Second

	// DefaultNavigationTimeout bounds navigation and the load event.
	DefaultNavigationTimeout = 30 * time.Second

	// DefaultOutputDirName is the directory created next to the executable.
	DefaultOutputDirName = "Decklists"
)

// Config holds all configuration options for decklist.
// It is populated from defaults, then the config file, then CLI flags,
// and passed down explicitly rather than kept in global state.
type Config struct {
	// OutputDir receives "<deck> Decklist.txt" files.
	OutputDir string `yaml:"output_dir,omitempty"`

	// SelectorTimeout is how long to wait for the first card row.
	SelectorTimeout time.Duration `yaml:"timeout,omitempty"`

	// NavigationTimeout is how long navigation and page load may take.
	NavigationTimeout time.Duration `yaml:"navigation_timeout,omitempty"`

	// BrowserBin is an explicit Chrome or Chromium executable.
	BrowserBin string `yaml:"browser_bin,omitempty"`

	// ControlURL is the DevTools endpoint of a running browser.
	ControlURL string `yaml:"control_url,omitempty"`

	// BrowserDownloadDir is where a managed Chromium is kept when no
	// browser is installed.
	BrowserDownloadDir string `yaml:"browser_download_dir,omitempty"`

	// ShowBrowser runs the browser with a visible window.
	ShowBrowser bool `yaml:"show_browser,omitempty"`

	// NoClipboard skips copying the template to the clipboard.
	NoClipboard bool `yaml:"no_clipboard,omitempty"`

	// NoSummary skips the summary table after each deck.
	NoSummary bool `yaml:"no_summary,omitempty"`

	// ShowCards lists every card in the summary table.
	ShowCards bool `yaml:"show_cards,omitempty"`

	// TableStyle names the summary table style. Empty means rounded.
	TableStyle string `yaml:"table_style,omitempty"`

	// JSON also writes "<deck> Decklist.json".
	JSON bool `yaml:"json,omitempty"`

	// Markdown also writes "<deck> Decklist.md".
	Markdown bool `yaml:"markdown,omitempty"`

	// Verbose enables debug logging.
	Verbose bool `yaml:"verbose,omitempty"`

	// LogJSON writes log lines as JSON instead of text.
	LogJSON bool `yaml:"log_json,omitempty"`
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		OutputDir:          DefaultOutputDir(),
		SelectorTimeout:    DefaultSelectorTimeout,
		NavigationTimeout:  DefaultNavigationTimeout,
		BrowserDownloadDir: filepath.Join(XDGCacheDir(), "browser"),
	}
}

// DefaultOutputDir returns the Decklists directory next to the running
// executable, or in the current directory if the executable path is
// unknown.
func DefaultOutputDir() string {
	exe, err := os.Executable()
	if err == nil {
		if resolved, err := filepath.EvalSymlinks(exe); err == nil {
			exe = resolved
		}
		return filepath.Join(filepath.Dir(exe), DefaultOutputDirName)
	}
	return DefaultOutputDirName
}

// XDGConfigDir returns the XDG config directory for decklist.
// On Linux: ~/.config/decklist
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// XDGCacheDir returns the XDG cache directory for decklist.
// On Linux: ~/.cache/decklist
func XDGCacheDir() string {
	return filepath.Join(xdg.CacheHome, AppName)
}

// Validate checks if the configuration is valid and returns the first
// problem found.
func (c *Config) Validate() error {
	if c.SelectorTimeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.NavigationTimeout <= 0 {
		return ErrInvalidNavigationTimeout
	}
	if c.OutputDir == "" {
		return ErrEmptyOutputDir
	}
	if c.BrowserBin != "" && c.ControlURL != "" {
		return ErrConflictingBrowser
	}
	return nil
}
