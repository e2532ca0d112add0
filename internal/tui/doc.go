// Package tui is the full-screen terminal viewer. It renders one row per
// selected folder for the key under the cursor and maps keystrokes to the
// same session operations the browser viewer uses.
package tui
