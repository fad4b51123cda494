// core/suffixtree/search.go
//
// Exact-match operations expressed as tree descents. All of them are pure
// reads: a failed query never invalidates the index.
package suffixtree

import (
	"fmt"
	"sort"
)

// Occurrence is one exact match of a pattern: the originating sequence index
// (position in the Build argument list) and the 0-based start position.
type Occurrence struct {
	Seq int
	Pos int
}

// FindAllOccurrences returns every start position of pattern across all
// indexed sequences, overlapping occurrences included, sorted by
// (sequence, position). A pattern absent from the index (or longer than
// every sequence) yields an empty result, not an error.
func (ix *Index) FindAllOccurrences(pattern []byte) ([]Occurrence, error) {
	if len(pattern) == 0 {
		return nil, fmt.Errorf("%w: empty pattern", ErrInvalidPattern)
	}
	n, ok := ix.Descend(pattern)
	if !ok {
		return nil, nil
	}
	out := make([]Occurrence, 0, ix.nodes[n].leafCount)
	ix.LeavesUnder(n, func(seq, pos int) bool {
		out = append(out, Occurrence{Seq: seq, Pos: pos})
		return true
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].Seq != out[j].Seq {
			return out[i].Seq < out[j].Seq
		}
		return out[i].Pos < out[j].Pos
	})
	return out, nil
}

// Contains reports whether pattern occurs anywhere in the index. It is a
// bare descent: O(len(pattern)) regardless of how often the pattern occurs.
func (ix *Index) Contains(pattern []byte) (bool, error) {
	if len(pattern) == 0 {
		return false, fmt.Errorf("%w: empty pattern", ErrInvalidPattern)
	}
	_, ok := ix.Descend(pattern)
	return ok, nil
}

// CountOccurrences returns the number of occurrences of pattern using the
// per-node leaf counts precomputed at build time, so it costs
// O(len(pattern)) with no subtree enumeration.
func (ix *Index) CountOccurrences(pattern []byte) (int, error) {
	if len(pattern) == 0 {
		return 0, fmt.Errorf("%w: empty pattern", ErrInvalidPattern)
	}
	n, ok := ix.Descend(pattern)
	if !ok {
		return 0, nil
	}
	return int(ix.nodes[n].leafCount), nil
}
