// Package dict loads, sorts and filters the word list shown on the dictionary screen.
//
// Words come from a [Source]: the bundled words.json asset ([Bundled]), a file on disk ([FileSource]) or any
// store implementing the interface (the SQLite word repository). [Load] reads the whole source, orders it
// by the bare form and hands back a fresh slice; [Dictionary] holds the loaded words together with the
// loading flag and the current filter for the screen that displays them.
package dict
