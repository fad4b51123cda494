// internal/output/convert.go
package output

import (
	"seqindex-core/repeat"
	"seqindex-core/suffixtree"
	"seqindex/pkg/api"
)

// SeqInfo resolves an index-internal sequence number back to the FASTA
// record it came from.
type SeqInfo struct {
	ID   string
	File string
}

// ToAPIOccurrences converts domain occurrences to the stable wire schema (v1).
func ToAPIOccurrences(info []SeqInfo, pattern string, list []suffixtree.Occurrence) []api.OccurrenceV1 {
	out := make([]api.OccurrenceV1, 0, len(list))
	for _, o := range list {
		out = append(out, api.OccurrenceV1{
			SequenceID: info[o.Seq].ID,
			Position:   o.Pos,
			Pattern:    pattern,
			SourceFile: info[o.Seq].File,
		})
	}
	return out
}

// ToAPIDirect attaches sequence IDs and the left arm text to direct repeats.
func ToAPIDirect(info []SeqInfo, seqs [][]byte, list []repeat.DirectRepeat) []api.DirectRepeatV1 {
	out := make([]api.DirectRepeatV1, 0, len(list))
	for _, r := range list {
		out = append(out, api.DirectRepeatV1{
			SequenceID: info[r.Seq].ID,
			LeftPos:    r.LeftPos,
			RightPos:   r.RightPos,
			ArmLen:     r.ArmLen,
			Spacing:    r.Spacing,
			Arm:        string(seqs[r.Seq][r.LeftPos : r.LeftPos+r.ArmLen]),
			SourceFile: info[r.Seq].File,
		})
	}
	return out
}

// ToAPIInverted attaches sequence IDs and the left arm text to inverted repeats.
func ToAPIInverted(info []SeqInfo, seqs [][]byte, list []repeat.InvertedRepeat) []api.InvertedRepeatV1 {
	out := make([]api.InvertedRepeatV1, 0, len(list))
	for _, r := range list {
		out = append(out, api.InvertedRepeatV1{
			SequenceID: info[r.Seq].ID,
			LeftPos:    r.LeftPos,
			RightPos:   r.RightPos,
			ArmLen:     r.ArmLen,
			Loop:       r.Loop,
			Arm:        string(seqs[r.Seq][r.LeftPos : r.LeftPos+r.ArmLen]),
			SourceFile: info[r.Seq].File,
		})
	}
	return out
}

// ToAPITandem converts tandem runs to the stable wire schema (v1).
func ToAPITandem(info []SeqInfo, list []repeat.TandemRepeat) []api.TandemRepeatV1 {
	out := make([]api.TandemRepeatV1, 0, len(list))
	for _, r := range list {
		out = append(out, api.TandemRepeatV1{
			SequenceID: info[r.Seq].ID,
			Position:   r.Pos,
			Unit:       r.Unit,
			UnitLen:    r.UnitLen,
			Count:      r.Count,
			SourceFile: info[r.Seq].File,
		})
	}
	return out
}
