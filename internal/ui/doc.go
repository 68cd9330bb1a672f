// Package ui renders the interactive now-playing view.
//
// The view is a single bubbletea model fed from the state store: the
// poll subscription writes snapshots into the store in the background,
// and the model re-reads it once a second (or at the poll interval,
// whichever is shorter). Key presses issue transport commands through
// the bluos client off the update loop and report the outcome on a
// feedback line; the authoritative state always comes back through the
// next poll, never from assuming a command worked.
package ui
