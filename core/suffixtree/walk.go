// core/suffixtree/walk.go
package suffixtree

// LeavesUnder enumerates the leaves of the subtree rooted at n in
// deterministic (symbol-sorted, depth-first) order, calling visit with each
// leaf's sequence index and local suffix start. The walk is lazy: visit
// returning false stops it immediately, which is what lets Contains
// short-circuit after a single leaf. Returns false if the walk was stopped.
func (ix *Index) LeavesUnder(n NodeID, visit func(seq, pos int) bool) bool {
	stack := make([]int32, 0, 32)
	stack = append(stack, int32(n))
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		nd := &ix.nodes[id]
		if nd.isLeaf() {
			if !visit(int(nd.seq), int(nd.suffix)-ix.t.seqStart(int(nd.seq))) {
				return false
			}
			continue
		}
		// push in reverse so the smallest symbol pops first
		for i := len(nd.ord) - 1; i >= 0; i-- {
			stack = append(stack, nd.children[nd.ord[i]])
		}
	}
	return true
}
