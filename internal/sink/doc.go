// Package sink delivers rendered decklists: to a file in the output
// directory and to the system clipboard.
//
// The two destinations fail independently. A caller that cannot save the
// file should still try the clipboard, and the other way around.
package sink
