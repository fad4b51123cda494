// core/repeat/inverted.go
package repeat

import (
	"context"
	"fmt"
	"sort"

	"seqindex-core/suffixtree"
)

// InvertedParams bounds an inverted-repeat scan: arms at least MinArm long,
// at most MaxLoop symbols between them.
type InvertedParams struct {
	MinArm  int
	MaxLoop int
}

// InvertedRepeat is one palindromic arm pair: the left arm equals the
// reverse complement of the right arm, with Loop symbols between them.
type InvertedRepeat struct {
	Seq      int
	LeftPos  int
	RightPos int
	ArmLen   int
	Loop     int
}

// FindInverted reports inverted repeats per sequence by building a
// generalized tree over the sequence and its reverse complement. A forward
// suffix at i and a reverse-complement suffix at j sharing a prefix of
// length d describe a left arm at i and a right arm ending at n-j; the arm
// is clamped so the two never overlap, and the pair qualifies when the
// clamped arm still reaches MinArm with a loop of at most MaxLoop. Requires
// a complementable (DNA/RNA) alphabet.
func FindInverted(ctx context.Context, ix *suffixtree.Index, p InvertedParams) ([]InvertedRepeat, error) {
	if p.MinArm < 1 {
		return nil, paramErr("min-arm", p.MinArm, ">= 1")
	}
	if p.MaxLoop < 0 {
		return nil, paramErr("max-loop", p.MaxLoop, ">= 0")
	}
	ab := ix.Alphabet()
	if !ab.Complementable() {
		return nil, fmt.Errorf("%w: alphabet %s has no complement", ErrQueryOutOfRange, ab.Kind())
	}

	var out []InvertedRepeat
	cc := &canceller{ctx: ctx}

	for k := 0; k < ix.NumSequences(); k++ {
		s := ix.Sequence(k)
		rc, err := ab.RevComp(s)
		if err != nil {
			return nil, err
		}
		sub, err := suffixtree.Build(ctx, ab, s, rc)
		if err != nil {
			return nil, err
		}
		n := len(s)

		var walk func(nd suffixtree.NodeID) ([]leafRec, error)
		walk = func(nd suffixtree.NodeID) ([]leafRec, error) {
			if err := cc.step(); err != nil {
				return nil, err
			}
			if sub.IsLeaf(nd) {
				seq, pos := sub.LeafPos(nd)
				return []leafRec{{seq: int32(seq), pos: int32(pos)}}, nil
			}
			depth := sub.Depth(nd)
			var acc []leafRec
			for _, c := range sub.Children(nd) {
				got, err := walk(c)
				if err != nil {
					return nil, err
				}
				if depth >= p.MinArm {
					for _, a := range acc {
						for _, b := range got {
							if a.seq == b.seq {
								continue // need one forward, one revcomp leaf
							}
							fwd, rev := a, b
							if fwd.seq != 0 {
								fwd, rev = rev, fwd
							}
							i, j := int(fwd.pos), int(rev.pos)
							arm := depth
							if m := (n - i - j) / 2; m < arm {
								arm = m // keep the arms disjoint
							}
							if arm < p.MinArm {
								continue
							}
							loop := n - i - j - 2*arm
							if loop > p.MaxLoop {
								continue
							}
							out = append(out, InvertedRepeat{
								Seq:      k,
								LeftPos:  i,
								RightPos: n - j - arm,
								ArmLen:   arm,
								Loop:     loop,
							})
						}
					}
				}
				acc = append(acc, got...)
			}
			return acc, nil
		}
		if _, err := walk(sub.Root()); err != nil {
			return nil, err
		}
	}

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Seq != b.Seq {
			return a.Seq < b.Seq
		}
		if a.LeftPos != b.LeftPos {
			return a.LeftPos < b.LeftPos
		}
		return a.RightPos < b.RightPos
	})
	return out, nil
}
