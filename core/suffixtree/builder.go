// core/suffixtree/builder.go
//
// Online suffix-tree construction (Ukkonen). The builder threads an active
// point (node, edge, length) through every phase; open leaf edges share the
// global end implicitly via the openEnd marker, so all of them grow in O(1)
// per appended symbol. Total work is amortized O(n).
package suffixtree

import (
	"context"
	"fmt"
	"math"
	"sort"

	"fortio.org/log"
	"fortio.org/safecast"

	"seqindex-core/alphabet"
)

// cancelStride is how many phases run between context checks.
const cancelStride = 1024

// Build constructs a generalized suffix tree over one or more sequences.
// Each sequence gets a unique sentinel; leaves carry (sequence, position)
// attribution. Construction is all-or-nothing: on any error (bad input,
// cancellation, violated invariant) no partial index escapes.
func Build(ctx context.Context, ab alphabet.Alphabet, seqs ...[]byte) (*Index, error) {
	t, err := newText(ab, seqs)
	if err != nil {
		return nil, err
	}
	if err := checkArenaCapacity(t.len()); err != nil {
		return nil, err
	}

	b := &builder{t: t, nodes: make([]node, 0, 2*t.len())}
	b.newNode(0, 0) // root
	b.aNode = rootID

	for i := 0; i < t.len(); i++ {
		if i%cancelStride == 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			default:
			}
		}
		b.extend(safecast.MustConvert[int32](i))
	}
	log.LogVf("suffix tree built: %d symbols, %d sequences, %d nodes",
		t.len(), t.count(), len(b.nodes))
	return b.finalize()
}

// checkArenaCapacity rejects inputs too large for the int32 arena offsets.
// A tree over n symbols has at most 2n-1 nodes, so n <= MaxInt32/2 keeps
// both buffer offsets and node ids in range; the MustConvert calls below
// then hold as internal assertions rather than reachable panics.
func checkArenaCapacity(n int) error {
	if n > math.MaxInt32/2 {
		return fmt.Errorf("%w: input of %d symbols exceeds arena capacity", ErrConstruction, n)
	}
	return nil
}

// builder holds the transient construction state. It is discarded once
// finalize hands the arena over to the Index.
type builder struct {
	t     *text
	nodes []node

	// active point
	aNode int32
	aEdge int32 // buffer offset of the active edge's first symbol (aLen > 0)
	aLen  int32

	remainder int32 // suffixes still implicit in the current phase
	pos       int32 // phase position (symbol being added)
	needSL    int32 // internal node awaiting its suffix link this phase
}

func (b *builder) newNode(start, end int32) int32 {
	b.nodes = append(b.nodes, node{
		start: start, end: end,
		slink: nilID, suffix: nilID, seq: nilID,
	})
	return safecast.MustConvert[int32](len(b.nodes) - 1)
}

func (b *builder) setChild(parent int32, c byte, child int32) {
	if b.nodes[parent].children == nil {
		b.nodes[parent].children = make(map[byte]int32, 4)
	}
	b.nodes[parent].children[c] = child
}

// edgeLen resolves the current label length of n's edge; open leaf edges
// extend to the phase position.
func (b *builder) edgeLen(n int32) int32 {
	nd := &b.nodes[n]
	if nd.end == openEnd {
		return b.pos + 1 - nd.start
	}
	return nd.end - nd.start
}

// addLink resolves the suffix link left pending by the previous split (or
// implicit match) in this phase.
func (b *builder) addLink(n int32) {
	if b.needSL != nilID && b.needSL != n {
		b.nodes[b.needSL].slink = n
	}
	b.needSL = n
}

// walkDown canonicalizes the active point: if the active length spans the
// whole edge to next, hop onto next and keep going.
func (b *builder) walkDown(next int32) bool {
	el := b.edgeLen(next)
	if b.aLen >= el {
		b.aEdge += el
		b.aLen -= el
		b.aNode = next
		return true
	}
	return false
}

// extend runs one phase of Ukkonen's algorithm for the symbol at buffer
// position i, applying suffix extensions from the active point until the
// phase ends explicitly (remainder exhausted) or implicitly (rule 3: the
// symbol is already on the active edge, which ends the phase early).
func (b *builder) extend(i int32) {
	buf := b.t.buf
	b.pos = i
	b.needSL = nilID
	b.remainder++

	for b.remainder > 0 {
		if b.aLen == 0 {
			b.aEdge = i
		}
		next, ok := int32(0), false
		if b.nodes[b.aNode].children != nil {
			next, ok = b.nodes[b.aNode].children[buf[b.aEdge]]
		}
		if !ok {
			// No edge starts with this symbol: new leaf straight off the
			// active node.
			leaf := b.newNode(i, openEnd)
			b.setChild(b.aNode, buf[b.aEdge], leaf)
			b.addLink(b.aNode)
		} else {
			if b.walkDown(next) {
				continue
			}
			if buf[b.nodes[next].start+b.aLen] == buf[i] {
				// Rule 3: already present implicitly. Advance and stop the
				// phase; every shorter suffix is present too.
				b.aLen++
				b.addLink(b.aNode)
				break
			}
			// Mid-edge mismatch: split the edge, attach the new leaf, and
			// chain the suffix link from the previous split this phase.
			split := b.newNode(b.nodes[next].start, b.nodes[next].start+b.aLen)
			b.setChild(b.aNode, buf[b.aEdge], split)
			leaf := b.newNode(i, openEnd)
			b.setChild(split, buf[i], leaf)
			b.nodes[next].start += b.aLen
			b.setChild(split, buf[b.nodes[next].start], next)
			b.addLink(split)
		}

		b.remainder--
		if b.aNode == rootID && b.aLen > 0 {
			b.aLen--
			b.aEdge = i - b.remainder + 1
		} else if b.aNode != rootID {
			if sl := b.nodes[b.aNode].slink; sl != nilID {
				b.aNode = sl
			} else {
				b.aNode = rootID
			}
		}
	}
}

// finalize resolves open edges, computes depths, leaf attribution and
// per-node leaf counts, truncates generalized leaf edges at their own
// sentinel, fixes child ordering, and verifies the tree invariants before
// handing the arena to the Index.
func (b *builder) finalize() (*Index, error) {
	if b.remainder != 0 {
		return nil, fmt.Errorf("%w: %d suffixes still implicit after the final sentinel",
			ErrConstruction, b.remainder)
	}
	n := safecast.MustConvert[int32](b.t.len())

	type frame struct {
		id    int32
		child int // next child (in ord) to visit
	}
	leaves := 0
	stack := []frame{{id: rootID}}
	b.nodes[rootID].depth = 0

	for len(stack) > 0 {
		f := &stack[len(stack)-1]
		nd := &b.nodes[f.id]

		if f.child == 0 { // first visit
			if nd.end == openEnd {
				nd.end = n
			}
			if f.id != rootID {
				parent := stack[len(stack)-2].id
				nd.depth = b.nodes[parent].depth + nd.end - nd.start
			}
			if nd.isLeaf() {
				// A leaf's path spells one whole suffix of the buffer; cut
				// its edge at the suffix's own sentinel so the generalized
				// tree never leaks text from a following sequence.
				start := n - nd.depth
				seq, _ := b.t.locate(int(start))
				end := safecast.MustConvert[int32](b.t.seqEnd(seq))
				if nd.start >= end || !b.t.isSentinel(b.t.buf[end-1]) {
					return nil, fmt.Errorf("%w: leaf edge (%d,%d) crosses sequence %d boundary",
						ErrConstruction, nd.start, nd.end, seq)
				}
				nd.suffix = start
				nd.seq = safecast.MustConvert[int32](seq)
				nd.end = end
				nd.depth = end - start
				nd.leafCount = 1
				leaves++
				stack = stack[:len(stack)-1]
				continue
			}
			nd.ord = make([]byte, 0, len(nd.children))
			for c := range nd.children {
				nd.ord = append(nd.ord, c)
			}
			sort.Slice(nd.ord, func(i, j int) bool { return nd.ord[i] < nd.ord[j] })
		}

		if f.child < len(nd.ord) {
			next := nd.children[nd.ord[f.child]]
			f.child++
			stack = append(stack, frame{id: next})
			continue
		}

		// post-order: aggregate and check invariants
		for _, c := range nd.ord {
			nd.leafCount += b.nodes[nd.children[c]].leafCount
		}
		if f.id != rootID {
			if len(nd.children) < 2 {
				return nil, fmt.Errorf("%w: internal node %d has %d children",
					ErrConstruction, f.id, len(nd.children))
			}
			if nd.slink == nilID {
				// Depth-1 internal nodes (and the last split of the build)
				// link to the root.
				nd.slink = rootID
			}
		}
		stack = stack[:len(stack)-1]
	}

	if leaves != b.t.len() {
		return nil, fmt.Errorf("%w: %d leaves for %d suffixes", ErrConstruction, leaves, b.t.len())
	}
	return &Index{t: b.t, nodes: b.nodes}, nil
}
