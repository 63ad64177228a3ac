// Package rope provides an immutable rope data structure addressed by
// character offset.
//
// A rope is a B+ tree whose leaves hold bounded text chunks and whose
// internal nodes store aggregated metrics (byte, character and newline
// counts). Offsets passed to and returned from this package count Unicode
// scalar values, not bytes; the tree converts between the two while
// descending, so every addressing operation is O(log n).
//
// Key features:
//   - O(log n) insertion, deletion, slicing and line lookup
//   - Immutable operations return new ropes; originals are never modified
//   - Copy-on-write structure sharing makes snapshots free
//   - Occasional compaction keeps the tree shallow under long edit sessions
//
// Basic usage:
//
//	r := rope.FromString("héllo world")
//	r = r.Insert(5, ",")           // "héllo, world"
//	r = r.Delete(0, 7)             // "world"
//	text := r.String()             // "world"
//
// Input text must be valid UTF-8. Callers that accept arbitrary bytes
// sanitize before inserting.
package rope
