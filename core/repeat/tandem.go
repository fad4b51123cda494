// core/repeat/tandem.go
package repeat

import (
	"bytes"
	"context"
	"sort"

	"fortio.org/sets"

	"seqindex-core/suffixtree"
)

// TandemParams bounds a tandem/microsatellite scan: repeat units of length
// 1..MaxUnit, runs of at least MinRepeats abutting copies.
type TandemParams struct {
	MaxUnit    int
	MinRepeats int
}

// TandemRepeat is one run of Count abutting copies of Unit starting at Pos.
type TandemRepeat struct {
	Seq     int
	Pos     int
	Unit    string
	UnitLen int
	Count   int
}

// FindTandem scans every primitive candidate unit of length 1..MaxUnit. The
// index seeds the unit's occurrence positions; runs are then chained from
// strictly abutting occurrences and re-verified against the raw buffer.
// Non-primitive units (a copy of "AGAG" is two copies of "AG") are skipped,
// and every seeded position is marked processed so a unit is expanded at
// most once no matter how often it recurs.
func FindTandem(ctx context.Context, ix *suffixtree.Index, p TandemParams) ([]TandemRepeat, error) {
	if p.MaxUnit < 1 {
		return nil, paramErr("max-unit", p.MaxUnit, ">= 1")
	}
	if p.MinRepeats < 2 {
		return nil, paramErr("min-repeats", p.MinRepeats, ">= 2")
	}

	nseq := ix.NumSequences()
	seqs := make([][]byte, nseq)
	done := make([]sets.Set[int], nseq) // processed (pos, unit-length) candidates
	for k := 0; k < nseq; k++ {
		seqs[k] = ix.Sequence(k)
		done[k] = sets.New[int]()
	}
	key := func(pos, u int) int { return pos*(p.MaxUnit+1) + u }

	var out []TandemRepeat
	cc := &canceller{ctx: ctx}

	for u := 1; u <= p.MaxUnit; u++ {
		for k := 0; k < nseq; k++ {
			s := seqs[k]
			for i := 0; i+u <= len(s); i++ {
				if err := cc.step(); err != nil {
					return nil, err
				}
				if done[k].Has(key(i, u)) {
					continue
				}
				unit := s[i : i+u]
				if !primitive(unit) {
					continue
				}
				occs, err := ix.FindAllOccurrences(unit)
				if err != nil {
					return nil, err
				}
				// occs is sorted by (seq, pos): chain strictly abutting
				// occurrences into runs, longest-first from the left.
				runStart, runSeq, count := -1, -1, 0
				flush := func() {
					if count >= p.MinRepeats && verifyRun(seqs[runSeq], runStart, unit, count) {
						out = append(out, TandemRepeat{
							Seq: runSeq, Pos: runStart,
							Unit: string(unit), UnitLen: u, Count: count,
						})
					}
					runStart, runSeq, count = -1, -1, 0
				}
				for _, o := range occs {
					done[o.Seq].Add(key(o.Pos, u))
					if o.Seq == runSeq && o.Pos == runStart+count*u {
						count++
						continue
					}
					if count > 0 {
						flush()
					}
					runSeq, runStart, count = o.Seq, o.Pos, 1
				}
				if count > 0 {
					flush()
				}
			}
		}
	}

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Seq != b.Seq {
			return a.Seq < b.Seq
		}
		if a.Pos != b.Pos {
			return a.Pos < b.Pos
		}
		return a.UnitLen < b.UnitLen
	})
	return out, nil
}

// primitive reports whether unit is not itself a repetition of a shorter
// unit (e.g. "AGAG" is two copies of "AG", so it is not primitive).
func primitive(unit []byte) bool {
	n := len(unit)
	for d := 1; d <= n/2; d++ {
		if n%d != 0 {
			continue
		}
		ok := true
		for j := d; j < n; j++ {
			if unit[j] != unit[j-d] {
				ok = false
				break
			}
		}
		if ok {
			return false
		}
	}
	return true
}

// verifyRun re-checks a chained run against the raw buffer. The index seeds
// positions; periodicity is confirmed by direct comparison.
func verifyRun(s []byte, start int, unit []byte, count int) bool {
	u := len(unit)
	if start < 0 || start+count*u > len(s) {
		return false
	}
	for c := 0; c < count; c++ {
		if !bytes.Equal(s[start+c*u:start+(c+1)*u], unit) {
			return false
		}
	}
	return true
}
