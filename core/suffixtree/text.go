// core/suffixtree/text.go
package suffixtree

import (
	"fmt"
	"sort"

	"seqindex-core/alphabet"
)

// text is the arena backing a built index: every input sequence, case-folded
// and terminated by its own unique sentinel byte, concatenated into one
// immutable buffer. Edges reference it by (start, end) offsets; nothing ever
// copies a substring out of it during construction.
type text struct {
	buf      []byte
	starts   []int // starts[k] = offset of sequence k; starts[count] = len(buf)
	ab       alphabet.Alphabet
	sentinel [256]bool
}

// newText validates and concatenates the inputs. Sentinels are drawn from
// bytes that can never appear in a folded sequence, so suffixes from
// different sequences can never merge past a sequence boundary.
func newText(ab alphabet.Alphabet, seqs [][]byte) (*text, error) {
	if len(seqs) == 0 {
		return nil, fmt.Errorf("%w: no sequences", ErrInvalidInput)
	}
	total := 0
	for k, s := range seqs {
		if len(s) == 0 {
			return nil, fmt.Errorf("%w: sequence %d is empty", ErrInvalidInput, k)
		}
		if err := ab.Validate(s); err != nil {
			return nil, fmt.Errorf("%w: sequence %d: %v", ErrInvalidInput, k, err)
		}
		total += len(s) + 1
	}

	pool := sentinelPool(ab)
	if len(seqs) > len(pool) {
		return nil, fmt.Errorf("%w: %d sequences exceed the %d available sentinels",
			ErrConstruction, len(seqs), len(pool))
	}

	t := &text{
		buf:    make([]byte, 0, total),
		starts: make([]int, 0, len(seqs)+1),
		ab:     ab,
	}
	for k, s := range seqs {
		t.starts = append(t.starts, len(t.buf))
		t.buf = append(t.buf, ab.FoldSeq(s)...)
		t.buf = append(t.buf, pool[k])
		t.sentinel[pool[k]] = true
	}
	t.starts = append(t.starts, len(t.buf))
	return t, nil
}

// sentinelPool lists bytes guaranteed distinct from every folded alphabet
// symbol, smallest first.
func sentinelPool(ab alphabet.Alphabet) []byte {
	out := make([]byte, 0, 256)
	for b := 1; b < 256; b++ {
		c := byte(b)
		if ab.Has(ab.Fold(c)) {
			continue
		}
		out = append(out, c)
	}
	return out
}

func (t *text) len() int            { return len(t.buf) }
func (t *text) count() int          { return len(t.starts) - 1 }
func (t *text) seqStart(k int) int  { return t.starts[k] }
func (t *text) seqEnd(k int) int    { return t.starts[k+1] } // past sentinel k
func (t *text) seqLen(k int) int    { return t.starts[k+1] - t.starts[k] - 1 }
func (t *text) isSentinel(c byte) bool { return t.sentinel[c] }

// locate maps a global buffer offset to (sequence index, local position).
// The sentinel of sequence k maps to local position seqLen(k).
func (t *text) locate(off int) (seq, pos int) {
	k := sort.SearchInts(t.starts, off+1) - 1
	return k, off - t.starts[k]
}
