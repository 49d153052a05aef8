// Package extract turns a deck page snapshot into a model.Deck.
//
// # Architecture
//
// Extraction is a pure function over HTML: the browser package hands over the
// serialized DOM once the card table has attached, and Parse walks it with
// CSS selectors. No browser is needed, so extraction is tested against HTML
// fixtures.
//
// Design decision: We query the DOM with goquery on top of golang.org/x/net/html
// rather than evaluating a script inside the page because:
//  1. The selectors and classification live in Go and are unit-testable
//  2. A page script failure would surface as an opaque evaluation error
//  3. The same parser can read saved HTML files
//
// # Page structure
//
// The Card Database lists each zone in its own container:
//
//	#detailtext_main  main deck rows
//	#detailtext_ext   extra deck rows
//	#detailtext_side  side deck rows
//
// Every card row matches ".t_row.c_normal" and holds the name (.card_name),
// the copy count (.cards_num_set span), the attribute (.box_card_attribute span,
// "SPELL"/"TRAP" for non-monsters) and the type line
// (.card_info_species_and_other_item).
package extract
