// internal/output/text.go
package output

import (
	"fmt"
	"io"

	"seqindex/pkg/api"
)

// WriteOccurrencesText prints one TSV line per occurrence.
func WriteOccurrencesText(w io.Writer, list []api.OccurrenceV1, header bool) error {
	if header {
		if _, err := fmt.Fprintln(w, OccurrenceTSVHeader); err != nil {
			return err
		}
	}
	for _, o := range list {
		if _, err := fmt.Fprintf(w, "%s\t%d\t%s\n", o.SequenceID, o.Position, o.Pattern); err != nil {
			return err
		}
	}
	return nil
}

func WriteDirectText(w io.Writer, list []api.DirectRepeatV1, header bool) error {
	if header {
		if _, err := fmt.Fprintln(w, DirectTSVHeader); err != nil {
			return err
		}
	}
	for _, r := range list {
		_, err := fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\t%s\n",
			r.SequenceID, r.LeftPos, r.RightPos, r.ArmLen, r.Spacing, r.Arm)
		if err != nil {
			return err
		}
	}
	return nil
}

func WriteInvertedText(w io.Writer, list []api.InvertedRepeatV1, header bool) error {
	if header {
		if _, err := fmt.Fprintln(w, InvertedTSVHeader); err != nil {
			return err
		}
	}
	for _, r := range list {
		_, err := fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\t%s\n",
			r.SequenceID, r.LeftPos, r.RightPos, r.ArmLen, r.Loop, r.Arm)
		if err != nil {
			return err
		}
	}
	return nil
}

func WriteTandemText(w io.Writer, list []api.TandemRepeatV1, header bool) error {
	if header {
		if _, err := fmt.Fprintln(w, TandemTSVHeader); err != nil {
			return err
		}
	}
	for _, r := range list {
		_, err := fmt.Fprintf(w, "%s\t%d\t%s\t%d\t%d\n",
			r.SequenceID, r.Position, r.Unit, r.UnitLen, r.Count)
		if err != nil {
			return err
		}
	}
	return nil
}
