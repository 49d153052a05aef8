// Package log builds the application's slog loggers.
//
// Every logger returned by this package is wrapped in a RedactHandler that
// masks values which identify a Card Database account before they reach the
// output. Deck URLs carry the owner's member id in the cgid query
// parameter, and browser sessions may carry cookies; both are replaced with
// MaskValue in log lines, including inside error messages.
//
// # Usage
//
//	logger := log.NewLogger(os.Stderr, verbose)
//	logger.Debug("fetching deck page", "url", rawURL)
//	// url=https://www.db.yugioh-card.com/yugiohdb/member_deck.action?cgid=***REDACTED***&dno=1
//
// The level is Warn by default and Debug in verbose mode.
package log
