package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() so that callers can use
// errors.Is() while still showing a readable message.
var (
	// ErrInvalidTimeout is returned when the selector timeout is not positive.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrInvalidNavigationTimeout is returned when the navigation timeout
	// is not positive.
	ErrInvalidNavigationTimeout = errors.New("invalid navigation timeout: must be positive")

	// ErrEmptyOutputDir is returned when no output directory is configured.
	ErrEmptyOutputDir = errors.New("output directory must not be empty")

	// ErrConflictingBrowser is returned when both a browser binary and a
	// control URL are set. Only one way of reaching a browser can be used.
	ErrConflictingBrowser = errors.New("conflicting browser settings: --browser-bin and --control-url cannot be used together")
)
