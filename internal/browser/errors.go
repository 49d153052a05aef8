package browser

import "errors"

var (
	// ErrNotStarted is returned by Fetch when Start has not been called
	// or the session has been closed.
	ErrNotStarted = errors.New("browser session not started")

	// ErrSelectorTimeout is returned when the card table does not appear
	// before the selector timeout. The URL is usually not a deck page.
	ErrSelectorTimeout = errors.New("timed out waiting for deck content")

	// ErrNavigation is returned when the page cannot be loaded.
	ErrNavigation = errors.New("failed to load page")
)
