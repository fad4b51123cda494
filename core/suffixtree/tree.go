// core/suffixtree/tree.go
package suffixtree

import (
	"seqindex-core/alphabet"
)

const (
	rootID  int32 = 0
	nilID   int32 = -1
	openEnd int32 = -1 // leaf edge end still growing with the global end
)

// node lives in a flat arena addressed by int32 indices; child and suffix
// links are stored as indices, never pointers.
type node struct {
	start, end int32 // edge label = buf[start:end); openEnd while growing
	slink      int32
	suffix     int32 // leaf: global suffix start; nilID for internal nodes
	seq        int32 // leaf: originating sequence index
	depth      int32 // string depth (root path length incl. this edge)
	leafCount  int32
	children   map[byte]int32 // nil for leaves
	ord        []byte         // child first-symbols in sorted order
}

func (nd *node) isLeaf() bool { return nd.children == nil }

// Index is the finished, read-only suffix tree. It owns the text arena for
// its whole lifetime; any number of goroutines may query it concurrently.
type Index struct {
	t     *text
	nodes []node
}

// NodeID addresses a node of the finished tree.
type NodeID int32

// Alphabet returns the alphabet the index was built over.
func (ix *Index) Alphabet() alphabet.Alphabet { return ix.t.ab }

// NumSequences returns how many input sequences the index covers.
func (ix *Index) NumSequences() int { return ix.t.count() }

// SeqLen returns the length of input sequence k (sentinel excluded).
func (ix *Index) SeqLen(k int) int { return ix.t.seqLen(k) }

// Sequence returns a copy of the case-folded input sequence k.
func (ix *Index) Sequence(k int) []byte {
	s := ix.t.buf[ix.t.seqStart(k) : ix.t.seqEnd(k)-1]
	return append([]byte(nil), s...)
}

// Root returns the tree root.
func (ix *Index) Root() NodeID { return NodeID(rootID) }

// IsLeaf reports whether n is a leaf (one generalized suffix).
func (ix *Index) IsLeaf(n NodeID) bool { return ix.nodes[n].isLeaf() }

// Depth returns the string depth of n: the length of the concatenated edge
// labels from the root down to (and including) n's own edge.
func (ix *Index) Depth(n NodeID) int { return int(ix.nodes[n].depth) }

// LeafCount returns the number of leaves in the subtree rooted at n,
// precomputed at build time.
func (ix *Index) LeafCount(n NodeID) int { return int(ix.nodes[n].leafCount) }

// LeafPos returns the (sequence index, local suffix start) of leaf n.
func (ix *Index) LeafPos(n NodeID) (seq, pos int) {
	nd := &ix.nodes[n]
	return int(nd.seq), int(nd.suffix) - ix.t.seqStart(int(nd.seq))
}

// Children returns n's children ordered by the first symbol of their edges.
func (ix *Index) Children(n NodeID) []NodeID {
	nd := &ix.nodes[n]
	if nd.isLeaf() {
		return nil
	}
	out := make([]NodeID, 0, len(nd.ord))
	for _, c := range nd.ord {
		out = append(out, NodeID(nd.children[c]))
	}
	return out
}

// EdgeLabel returns a copy of the edge label leading into n.
func (ix *Index) EdgeLabel(n NodeID) []byte {
	nd := &ix.nodes[n]
	return append([]byte(nil), ix.t.buf[nd.start:nd.end]...)
}

// Descend walks from the root matching pattern symbols against edge labels
// and returns the node whose subtree holds every occurrence of the pattern
// (the child below the match point when the descent ends mid-edge). The
// pattern is case-folded first; ok is false on the first mismatch or if the
// pattern uses symbols outside the alphabet. Cost is O(len(pattern)).
func (ix *Index) Descend(pattern []byte) (NodeID, bool) {
	n := rootID
	i := 0
	for i < len(pattern) {
		c := ix.t.ab.Fold(pattern[i])
		if !ix.t.ab.Has(c) {
			return NodeID(nilID), false
		}
		nd := &ix.nodes[n]
		if nd.isLeaf() {
			return NodeID(nilID), false
		}
		child, ok := nd.children[c]
		if !ok {
			return NodeID(nilID), false
		}
		cn := &ix.nodes[child]
		for off := cn.start; off < cn.end && i < len(pattern); off++ {
			c = ix.t.ab.Fold(pattern[i])
			if !ix.t.ab.Has(c) || ix.t.buf[off] != c {
				return NodeID(nilID), false
			}
			i++
		}
		n = child
	}
	return NodeID(n), true
}
