// Package buffer provides the document text buffer built on top of the rope
// data structure. It is the TextBuffer of the editing engine.
//
// All offsets are character (Unicode scalar value) indices in
// [0, Len()]. Out-of-range offsets and lines are clamped rather than
// rejected, because callers frequently derive them from approximate pixel
// geometry.
//
// Basic usage:
//
//	buf := buffer.NewBufferFromString("Hello, World!")
//	end := buf.Replace(7, 12, "Gopher")  // "Hello, Gopher!", end == 13
//	buf.Delete(0, 7)                     // "Gopher!"
//
// Lines are '\n' delimited. A buffer with no characters has exactly one
// empty line, and Line never includes the trailing newline.
//
// A Buffer is not safe for concurrent use; the engine that owns it is
// driven from a single goroutine.
package buffer
