package model

import "time"

// Snapshot is the rendered HTML of a deck page, handed from the fetcher to
// the extractor. Keeping the DOM as data lets extraction run without a browser.
type Snapshot struct {
	// URL is the address the page was loaded from.
	URL string

	// HTML is the serialized document after the card table attached.
	HTML string

	// FetchedAt is when the snapshot was taken.
	FetchedAt time.Time
}

// Job is the working record for one deck URL as it moves through the
// pipeline. A new Job is created for every URL the operator enters.
type Job struct {
	// RawURL is the URL as typed by the operator.
	RawURL string

	// URL is RawURL with the English locale forced.
	URL string

	// MasterDuel selects the "(Master Duel)" link form.
	MasterDuel bool

	// Snapshot is set by the fetch step.
	Snapshot *Snapshot

	// Deck is set by the extract step.
	Deck *Deck

	// Template is the rendered wiki markup, set by the format step.
	Template string

	// OutputPath is the file the template was written to.
	// Empty if saving failed or has not run.
	OutputPath string

	// SaveErr records a failed file write. Saving failures do not stop
	// the clipboard step.
	SaveErr error

	// Copied reports whether the template reached the clipboard.
	Copied bool

	// ClipboardErr records a failed clipboard copy.
	ClipboardErr error

	// Exports lists additional files written (JSON, Markdown).
	Exports []string

	// ExportErrs records failures of individual exports.
	ExportErrs []error

	// Err is the error that stopped the job, if any.
	Err error

	// PerformedSteps lists the steps that ran, in order.
	PerformedSteps []string
}

// NewJob creates a job for a raw URL.
func NewJob(rawURL string, masterDuel bool) *Job {
	return &Job{
		RawURL:         rawURL,
		MasterDuel:     masterDuel,
		Exports:        make([]string, 0),
		PerformedSteps: make([]string, 0),
	}
}

// Failed reports whether a critical step stopped the job.
func (j *Job) Failed() bool {
	return j.Err != nil
}

// DeckName returns the deck's name, or UnnamedDeck before extraction.
func (j *Job) DeckName() string {
	if j.Deck == nil || j.Deck.Name == "" {
		return UnnamedDeck
	}
	return j.Deck.Name
}
