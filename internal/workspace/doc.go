// Package workspace manages the set of open documents.
//
// Each document owns its own engine, so undo history, cursor and
// highlighting state never leak between documents. Documents are
// addressed by a Handle generated when they are opened; the handle stays
// the same when the document is renamed, so history survives a rename or
// move on disk.
package workspace
