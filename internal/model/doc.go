// Package model defines the core data structures used throughout decklist.
//
// This package contains the following main types:
//   - Card: A single deck entry (name, quantity, kind, category)
//   - Deck: The three deck zones (main, extra, side) scraped from one page
//   - Group: Cards of one category, used when rendering sections
//   - Job: The working record passed through the pipeline for one deck URL
//
// Design decision: We separate models into their own package to avoid circular
// dependencies. The extractor, formatter, reports and pipeline all need these
// types, so centralizing them prevents import cycles.
//
// All values are created fresh for each deck and discarded once the deck has
// been written; nothing here is persisted.
package model
