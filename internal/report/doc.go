// Package report renders a summary of an extracted deck.
//
// This package contains writers for different output formats:
//   - SummaryWriter: a table for terminal display
//   - MarkdownWriter: a shareable Markdown document
//   - JSONWriter: structured JSON for tool integration
//
// Report data (DeckReport) is built once from a pipeline job and handed to
// every writer, so new formats do not touch extraction or formatting.
package report
