// Package session implements the interactive prompt loop: ask for a deck
// URL, ask whether it is a Master Duel deck, process it, report, repeat.
//
// Typing "exit" (any case) or closing stdin ends the loop. A failed deck is
// reported and the loop asks for the next URL.
package session
