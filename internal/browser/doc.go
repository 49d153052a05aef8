// Package browser drives a headless Chrome through the DevTools protocol to
// take HTML snapshots of deck pages.
//
// The deck table on the Card Database is filled in by scripts after the
// document loads, so a plain HTTP GET is not enough. A Session owns one
// browser for the whole run and opens a fresh page per deck. Each fetch
// waits for the first card row to attach, serializes the DOM and closes
// the page again.
//
// A browser is found in this order: an explicit DevTools control URL, an
// explicit binary, Chrome or Chromium on PATH, and finally a managed
// Chromium download kept in the user cache directory.
package browser
