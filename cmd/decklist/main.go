// Package main provides the entry point for the decklist CLI.
//
// decklist reads a deck from the Yu-Gi-Oh! Card Database and turns it into
// {{Decklist}} wiki markup. The markup is saved to a text file and copied
// to the clipboard.
//
// Usage:
//
//	decklist
//	decklist fetch <deck-url>...
//
// See --help for all available options.
package main

// main is the entry point for decklist.
func main() {
	Execute()
}
