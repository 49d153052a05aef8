package sink

import "errors"

var (
	// ErrEmptyContent is returned when there is nothing to write.
	ErrEmptyContent = errors.New("empty content")

	// ErrClipboardUnsupported is returned when the platform has no usable
	// clipboard utility (for example xclip, xsel or wl-copy on Linux).
	ErrClipboardUnsupported = errors.New("clipboard is not supported on this system")
)
