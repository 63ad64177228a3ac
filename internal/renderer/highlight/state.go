package highlight

import (
	"encoding/binary"
	"hash/fnv"
	"strconv"
)

// State is the lexer state at a line boundary.
// The zero value is the state outside any fenced code block.
type State struct {
	// Fence is the fence character ('`' or '~'), or 0 outside a fence.
	Fence byte

	// FenceLen is the length of the opening fence run.
	FenceLen int

	// Lang is the first word of the opening fence's info string.
	Lang string
}

// InFence reports whether the state is inside a fenced code block.
func (s State) InFence() bool {
	return s.Fence != 0
}

// String returns a human-readable representation of the state.
func (s State) String() string {
	if !s.InFence() {
		return "normal"
	}
	return "fence(" + string(s.Fence) + strconv.Itoa(s.FenceLen) + " " + s.Lang + ")"
}

// lineKey hashes a line's text together with its entry state.
func lineKey(text string, entry State) uint64 {
	h := fnv.New64a()
	var buf [9]byte
	buf[0] = entry.Fence
	binary.LittleEndian.PutUint64(buf[1:], uint64(entry.FenceLen))
	h.Write(buf[:])
	h.Write([]byte(entry.Lang))
	h.Write([]byte{0})
	h.Write([]byte(text))
	return h.Sum64()
}
