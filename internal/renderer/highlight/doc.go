// Package highlight tokenizes markdown lines into styled spans.
//
// The Highlighter reads lines from a LineSource and returns, for a window
// of lines, the spans to draw. Each span carries its text and a Tag naming
// the markdown construct it belongs to; concatenating a line's spans
// reproduces the line exactly.
//
// # Line state
//
// Fenced code blocks cross lines, so each line is lexed with the State in
// effect at its start (the exit state of the line above). The Highlighter
// keeps a contiguous cache of per-line results from the top of the
// document. Each entry is keyed by an FNV-64a hash of the line text and its
// entry state, so a request for a window in the middle of a fence lexes
// only the lines it has not seen before.
//
// Editors call Invalidate with the first line an edit touched; entries from
// that line onward are dropped. Reset drops everything.
//
// # Fenced languages
//
// When enabled, lines inside a fence whose info string names a language
// chroma knows are split into chroma token spans tagged "code.<category>".
package highlight
