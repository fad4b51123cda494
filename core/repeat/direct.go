// core/repeat/direct.go
package repeat

import (
	"context"
	"sort"

	"seqindex-core/suffixtree"
)

// DirectParams bounds a direct-repeat scan: both arms at least MinArm long,
// separated by at most MaxSpacing symbols.
type DirectParams struct {
	MinArm     int
	MaxSpacing int
}

// DirectRepeat is one pair of identical arms within a single sequence.
// Arms never overlap: ArmLen <= RightPos-LeftPos, Spacing >= 0.
type DirectRepeat struct {
	Seq      int
	LeftPos  int
	RightPos int
	ArmLen   int
	Spacing  int
}

type leafRec struct {
	seq int32
	pos int32
}

// FindDirect reports every pair of equal substrings (arms) of length >=
// MinArm whose start positions differ by more than MinArm and by no more
// than MinArm+MaxSpacing. Each pair surfaces exactly once, at the lowest
// common ancestor of its two suffixes, so the reported ArmLen is the maximal
// shared prefix (capped so the arms stay disjoint). Results are sorted by
// (sequence, left, right). Worst case O(n^2) on highly repetitive input;
// cancellable per node visited.
func FindDirect(ctx context.Context, ix *suffixtree.Index, p DirectParams) ([]DirectRepeat, error) {
	if p.MinArm < 1 {
		return nil, paramErr("min-arm", p.MinArm, ">= 1")
	}
	if p.MaxSpacing < 0 {
		return nil, paramErr("max-spacing", p.MaxSpacing, ">= 0")
	}

	var out []DirectRepeat
	cc := &canceller{ctx: ctx}

	var walk func(n suffixtree.NodeID) ([]leafRec, error)
	walk = func(n suffixtree.NodeID) ([]leafRec, error) {
		if err := cc.step(); err != nil {
			return nil, err
		}
		if ix.IsLeaf(n) {
			seq, pos := ix.LeafPos(n)
			return []leafRec{{seq: int32(seq), pos: int32(pos)}}, nil
		}
		depth := ix.Depth(n)
		var acc []leafRec
		for _, c := range ix.Children(n) {
			sub, err := walk(c)
			if err != nil {
				return nil, err
			}
			if depth >= p.MinArm {
				// Leaves in different child subtrees have this node as
				// their LCA: their longest common prefix is exactly depth.
				for _, a := range acc {
					for _, b := range sub {
						if a.seq != b.seq {
							continue
						}
						left, right := int(a.pos), int(b.pos)
						if left > right {
							left, right = right, left
						}
						diff := right - left
						if diff <= p.MinArm || diff > p.MinArm+p.MaxSpacing {
							continue
						}
						arm := depth
						if arm > diff {
							arm = diff
						}
						out = append(out, DirectRepeat{
							Seq:      int(a.seq),
							LeftPos:  left,
							RightPos: right,
							ArmLen:   arm,
							Spacing:  diff - arm,
						})
					}
				}
			}
			acc = append(acc, sub...)
		}
		return acc, nil
	}

	if _, err := walk(ix.Root()); err != nil {
		return nil, err
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
