package pipeline

import "errors"

var (
	// ErrEmptyURL is returned when the job has no URL to fetch.
	ErrEmptyURL = errors.New("empty deck URL")

	// ErrNoSnapshot is returned when extraction runs before a page was fetched.
	ErrNoSnapshot = errors.New("no page snapshot to extract from")

	// ErrNoDeck is returned when formatting runs before extraction.
	ErrNoDeck = errors.New("no deck to format")

	// ErrUnknownExportFormat is returned for an export format without a writer.
	ErrUnknownExportFormat = errors.New("unknown export format")
)
