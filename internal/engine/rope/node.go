package rope

import "strings"

// Tree structure constants
const (
	// MinChildren is the minimum children per internal node used when
	// estimating the expected height of a compact tree.
	MinChildren = 4

	// MaxChildren is the maximum children per internal node before splitting.
	MaxChildren = 8

	// MaxChunksPerLeaf is the maximum chunks in a leaf node.
	MaxChunksPerLeaf = 4
)

// Node is a node of the rope B+ tree.
// Leaf nodes (height == 0) contain text chunks.
// Internal nodes (height > 0) contain child node references.
// Nodes are never mutated once they are reachable from a Rope.
type Node struct {
	height   int
	summary  Summary
	children []*Node
	chunks   []Chunk
}

func newLeafNode(chunks []Chunk) *Node {
	n := &Node{chunks: chunks}
	for _, c := range chunks {
		n.summary = n.summary.Add(c.summary)
	}
	return n
}

func newInternalNode(children []*Node) *Node {
	if len(children) == 0 {
		return newLeafNode(nil)
	}
	n := &Node{children: children}
	for _, child := range children {
		n.height = max(n.height, child.height+1)
		n.summary = n.summary.Add(child.summary)
	}
	return n
}

// IsLeaf returns true if this is a leaf node.
func (n *Node) IsLeaf() bool {
	return n.height == 0
}

// Len returns the character length of the subtree.
func (n *Node) Len() int {
	return n.summary.Chars
}

func (n *Node) appendTo(sb *strings.Builder) {
	if n.IsLeaf() {
		for _, c := range n.chunks {
			sb.WriteString(c.data)
		}
		return
	}
	for _, child := range n.children {
		child.appendTo(sb)
	}
}

// appendRange appends the characters in [start, end) to sb.
func (n *Node) appendRange(sb *strings.Builder, start, end int) {
	if start >= end {
		return
	}
	if start <= 0 && end >= n.summary.Chars {
		n.appendTo(sb)
		return
	}

	offset := 0
	if n.IsLeaf() {
		for _, c := range n.chunks {
			cEnd := offset + c.summary.Chars
			if cEnd <= start {
				offset = cEnd
				continue
			}
			if offset >= end {
				break
			}
			lo := c.byteOffset(max(start-offset, 0))
			hi := c.byteOffset(min(end, cEnd) - offset)
			sb.WriteString(c.data[lo:hi])
			offset = cEnd
		}
		return
	}

	for _, child := range n.children {
		cEnd := offset + child.summary.Chars
		if cEnd <= start {
			offset = cEnd
			continue
		}
		if offset >= end {
			break
		}
		child.appendRange(sb, start-offset, end-offset)
		offset = cEnd
	}
}

// split splits the node at a character offset.
// The left node holds [0, at) and the right node holds [at, len).
func (n *Node) split(at int) (*Node, *Node) {
	if at <= 0 {
		return newLeafNode(nil), n
	}
	if at >= n.summary.Chars {
		return n, newLeafNode(nil)
	}
	if n.IsLeaf() {
		return n.splitLeaf(at)
	}
	return n.splitInternal(at)
}

func (n *Node) splitLeaf(at int) (*Node, *Node) {
	var left, right []Chunk
	offset := 0
	for _, c := range n.chunks {
		cLen := c.summary.Chars
		switch {
		case offset+cLen <= at:
			left = append(left, c)
		case offset >= at:
			right = append(right, c)
		default:
			l, r := c.Split(at - offset)
			if !l.IsEmpty() {
				left = append(left, l)
			}
			if !r.IsEmpty() {
				right = append(right, r)
			}
		}
		offset += cLen
	}
	return newLeafNode(left), newLeafNode(right)
}

func (n *Node) splitInternal(at int) (*Node, *Node) {
	var left, right []*Node
	offset := 0
	for _, child := range n.children {
		cLen := child.summary.Chars
		switch {
		case offset+cLen <= at:
			left = append(left, child)
		case offset >= at:
			right = append(right, child)
		default:
			l, r := child.split(at - offset)
			if l.Len() > 0 {
				left = append(left, l)
			}
			if r.Len() > 0 {
				right = append(right, r)
			}
		}
		offset += cLen
	}
	return buildNodeFromChildren(left), buildNodeFromChildren(right)
}

// buildNodeFromChildren creates a tree from a list of sibling nodes.
func buildNodeFromChildren(children []*Node) *Node {
	switch {
	case len(children) == 0:
		return newLeafNode(nil)
	case len(children) == 1:
		return children[0]
	case len(children) <= MaxChildren:
		return newInternalNode(children)
	}

	parents := make([]*Node, 0, len(children)/MaxChildren+1)
	for i := 0; i < len(children); i += MaxChildren {
		end := min(i+MaxChildren, len(children))
		group := make([]*Node, end-i)
		copy(group, children[i:end])
		parents = append(parents, newInternalNode(group))
	}
	return buildNodeFromChildren(parents)
}

// concat joins two nodes.
func concat(left, right *Node) *Node {
	if left == nil || left.Len() == 0 {
		if right == nil {
			return newLeafNode(nil)
		}
		return right
	}
	if right == nil || right.Len() == 0 {
		return left
	}

	if left.IsLeaf() && right.IsLeaf() {
		return concatLeaves(left, right)
	}

	// Bring both sides to the same height by wrapping the shorter one.
	for left.height < right.height {
		left = newInternalNode([]*Node{left})
	}
	for right.height < left.height {
		right = newInternalNode([]*Node{right})
	}
	return mergeNodes(left, right)
}

// concatLeaves joins two leaves, coalescing small chunks at the seam.
func concatLeaves(left, right *Node) *Node {
	chunks := make([]Chunk, 0, len(left.chunks)+len(right.chunks))
	chunks = append(chunks, left.chunks...)
	for _, c := range right.chunks {
		if last := len(chunks) - 1; last >= 0 && chunks[last].summary.Bytes+c.summary.Bytes <= MaxChunkSize {
			chunks[last] = NewChunk(chunks[last].data + c.data)
			continue
		}
		chunks = append(chunks, c)
	}

	if len(chunks) <= MaxChunksPerLeaf {
		return newLeafNode(chunks)
	}
	leaves := make([]*Node, 0, len(chunks)/MaxChunksPerLeaf+1)
	for i := 0; i < len(chunks); i += MaxChunksPerLeaf {
		end := min(i+MaxChunksPerLeaf, len(chunks))
		leaves = append(leaves, newLeafNode(chunks[i:end:end]))
	}
	return buildNodeFromChildren(leaves)
}

// mergeNodes merges two nodes of the same height.
func mergeNodes(left, right *Node) *Node {
	if left.IsLeaf() && right.IsLeaf() {
		return concatLeaves(left, right)
	}

	all := make([]*Node, 0, len(left.children)+len(right.children))
	all = append(all, left.children...)
	seam := len(all)
	all = append(all, right.children...)

	// Two small leaves meeting at the seam are fused into one.
	if seam > 0 && seam < len(all) && all[seam-1].IsLeaf() && all[seam].IsLeaf() {
		if fused := concatLeaves(all[seam-1], all[seam]); fused.IsLeaf() {
			all[seam-1] = fused
			all = append(all[:seam], all[seam+1:]...)
		}
	}
	return buildNodeFromChildren(all)
}

// lineStart returns the character offset at which the given line begins.
// line must be in [0, n.summary.Lines].
func (n *Node) lineStart(line int) int {
	if line <= 0 {
		return 0
	}
	offset, seen := 0, 0
	if n.IsLeaf() {
		for _, c := range n.chunks {
			if seen+c.summary.Lines >= line {
				return offset + charAfterNewline(c.data, line-seen)
			}
			seen += c.summary.Lines
			offset += c.summary.Chars
		}
		return n.summary.Chars
	}
	for _, child := range n.children {
		if seen+child.summary.Lines >= line {
			return offset + child.lineStart(line-seen)
		}
		seen += child.summary.Lines
		offset += child.summary.Chars
	}
	return n.summary.Chars
}

// linesBefore counts the newlines among the first at characters.
func (n *Node) linesBefore(at int) int {
	if at <= 0 {
		return 0
	}
	if at >= n.summary.Chars {
		return n.summary.Lines
	}
	offset, lines := 0, 0
	if n.IsLeaf() {
		for _, c := range n.chunks {
			if offset+c.summary.Chars >= at {
				return lines + newlinesBefore(c.data, at-offset)
			}
			lines += c.summary.Lines
			offset += c.summary.Chars
		}
		return lines
	}
	for _, child := range n.children {
		if offset+child.summary.Chars >= at {
			return lines + child.linesBefore(at-offset)
		}
		lines += child.summary.Lines
		offset += child.summary.Chars
	}
	return lines
}

// runeAt returns the character at the given offset, which must be in range.
func (n *Node) runeAt(at int) rune {
	offset := 0
	if n.IsLeaf() {
		for _, c := range n.chunks {
			if at < offset+c.summary.Chars {
				b := c.byteOffset(at - offset)
				for _, r := range c.data[b:] {
					return r
				}
			}
			offset += c.summary.Chars
		}
		return 0
	}
	for _, child := range n.children {
		if at < offset+child.summary.Chars {
			return child.runeAt(at - offset)
		}
		offset += child.summary.Chars
	}
	return 0
}

// collectChunks appends all chunks of the subtree to dst.
func (n *Node) collectChunks(dst []Chunk) []Chunk {
	if n.IsLeaf() {
		return append(dst, n.chunks...)
	}
	for _, child := range n.children {
		dst = child.collectChunks(dst)
	}
	return dst
}
