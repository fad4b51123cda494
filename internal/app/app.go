// internal/app/app.go
package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"fortio.org/log"
	"github.com/spf13/pflag"

	"seqindex-core/alphabet"
	"seqindex-core/fasta"
	"seqindex-core/repeat"
	"seqindex-core/suffixtree"
	"seqindex/internal/cli"
	"seqindex/internal/cliutil"
	"seqindex/internal/output"
	"seqindex/internal/version"
	"seqindex/pkg/api"
)

// RunContext is the whole program behind the binary: parse argv, read the
// FASTA input, build the index, run one operation, write results.
// Exit codes: 0 ok, NoMatchExitCode (default 1) nothing found, 2 usage,
// 3 runtime error, 130 canceled.
func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)

	fs := cli.NewFlagSet("seqindex")
	fs.SetOutput(io.Discard)

	if len(argv) == 0 {
		_, _ = cli.ParseArgs(fs, nil) // register flags so usage sees defaults
		cli.PrintUsage(fs, outw)
		if err := outw.Flush(); output.IsBrokenPipe(err) {
			return 0
		} else if err != nil {
			_, _ = fmt.Fprintln(stderr, err)
			return 3
		}
		return 0
	}

	opts, err := cli.ParseArgs(fs, argv)
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			cli.PrintUsage(fs, outw)
			if e := outw.Flush(); output.IsBrokenPipe(e) {
				return 0
			} else if e != nil {
				_, _ = fmt.Fprintln(stderr, e)
				return 3
			}
			return 0
		}
		_, _ = fmt.Fprintln(stderr, err)
		cli.PrintUsage(fs, outw)
		if e := outw.Flush(); output.IsBrokenPipe(e) {
			return 0
		} else if e != nil {
			_, _ = fmt.Fprintln(stderr, e)
			return 3
		}
		return 2
	}

	if opts.Version {
		_, _ = fmt.Fprintf(outw, "seqindex version %s\n", version.Version)
		if e := outw.Flush(); output.IsBrokenPipe(e) {
			return 0
		} else if e != nil {
			_, _ = fmt.Fprintln(stderr, e)
			return 3
		}
		return 0
	}

	if opts.Quiet {
		log.SetLogLevelQuiet(log.Error)
	}

	ab, err := newAlphabet(opts)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 2
	}

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	info, seqs, err := loadSequences(ctx, opts.SeqFiles)
	if err != nil {
		return fail(stderr, err)
	}
	log.Infof("indexing %d sequence(s) from %d file(s)", len(seqs), len(opts.SeqFiles))

	// Validate up front so errors can name the FASTA record; the index
	// itself only knows sequence numbers.
	for i, s := range seqs {
		if len(s) == 0 {
			_, _ = fmt.Fprintf(stderr, "record %q in %s is empty\n", info[i].ID, info[i].File)
			return 2
		}
		if err := ab.Validate(s); err != nil {
			_, _ = fmt.Fprintf(stderr, "record %q in %s: %v\n", info[i].ID, info[i].File, err)
			return 2
		}
	}

	ix, err := suffixtree.Build(ctx, ab, seqs...)
	if err != nil {
		if errors.Is(err, suffixtree.ErrInvalidInput) {
			_, _ = fmt.Fprintln(stderr, err)
			return 2
		}
		return fail(stderr, err)
	}

	total, err := dispatch(ctx, outw, opts, ix, info, seqs)
	if err != nil {
		if errors.Is(err, repeat.ErrQueryOutOfRange) || errors.Is(err, suffixtree.ErrInvalidPattern) {
			_, _ = fmt.Fprintln(stderr, err)
			return 2
		}
		return fail(stderr, err)
	}

	if e := outw.Flush(); output.IsBrokenPipe(e) {
		return 0
	} else if e != nil {
		_, _ = fmt.Fprintln(stderr, e)
		return 3
	}
	if total == 0 {
		return opts.NoMatchExitCode
	}
	return 0
}

// Run is RunContext with a background context.
func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

func fail(stderr io.Writer, err error) int {
	if errors.Is(err, context.Canceled) {
		return 130
	}
	_, _ = fmt.Fprintln(stderr, err)
	return 3
}

func newAlphabet(o cli.Options) (alphabet.Alphabet, error) {
	switch o.Alphabet {
	case "rna":
		return alphabet.New(alphabet.RNA)
	case "protein":
		return alphabet.New(alphabet.Protein)
	case "custom":
		return alphabet.NewCustom(o.Symbols)
	default:
		return alphabet.New(alphabet.DNA)
	}
}

func loadSequences(ctx context.Context, files []string) ([]output.SeqInfo, [][]byte, error) {
	files, err := cliutil.ExpandInputs(files)
	if err != nil {
		return nil, nil, err
	}
	var info []output.SeqInfo
	var seqs [][]byte
	for _, f := range files {
		recs, err := fasta.ReadAllCtx(ctx, f)
		if err != nil {
			return nil, nil, err
		}
		if len(recs) == 0 {
			log.Warnf("%s: no FASTA records", f)
		}
		for _, r := range recs {
			info = append(info, output.SeqInfo{ID: r.ID, File: f})
			seqs = append(seqs, r.Seq)
		}
	}
	if len(seqs) == 0 {
		return nil, nil, errors.New("no sequences to index")
	}
	return info, seqs, nil
}

func dispatch(ctx context.Context, w io.Writer, o cli.Options, ix *suffixtree.Index,
	info []output.SeqInfo, seqs [][]byte,
) (int, error) {
	switch o.Op {
	case cli.OpFind:
		occ, err := ix.FindAllOccurrences([]byte(o.Pattern))
		if err != nil {
			return 0, err
		}
		recs := output.ToAPIOccurrences(info, o.Pattern, occ)
		if o.Output == "json" {
			return len(recs), output.WriteJSON(w, recs)
		}
		return len(recs), output.WriteOccurrencesText(w, recs, o.Header)

	case cli.OpContains:
		ok, err := ix.Contains([]byte(o.Pattern))
		if err != nil {
			return 0, err
		}
		n := 0
		if ok {
			n = 1
		}
		if o.Output == "json" {
			return n, output.WriteJSON(w, api.ContainsV1{Pattern: o.Pattern, Contains: ok})
		}
		_, err = fmt.Fprintf(w, "%v\n", ok)
		return n, err

	case cli.OpCount:
		n, err := ix.CountOccurrences([]byte(o.Pattern))
		if err != nil {
			return 0, err
		}
		if o.Output == "json" {
			return n, output.WriteJSON(w, api.CountV1{Pattern: o.Pattern, Count: n})
		}
		_, err = fmt.Fprintf(w, "%d\n", n)
		return n, err

	case cli.OpDirect:
		list, err := repeat.FindDirect(ctx, ix, repeat.DirectParams{
			MinArm: o.MinArm, MaxSpacing: o.MaxSpacing,
		})
		if err != nil {
			return 0, err
		}
		recs := output.ToAPIDirect(info, seqs, list)
		if o.Output == "json" {
			return len(recs), output.WriteJSON(w, recs)
		}
		return len(recs), output.WriteDirectText(w, recs, o.Header)

	case cli.OpInverted:
		list, err := repeat.FindInverted(ctx, ix, repeat.InvertedParams{
			MinArm: o.MinArm, MaxLoop: o.MaxLoop,
		})
		if err != nil {
			return 0, err
		}
		recs := output.ToAPIInverted(info, seqs, list)
		if o.Output == "json" {
			return len(recs), output.WriteJSON(w, recs)
		}
		return len(recs), output.WriteInvertedText(w, recs, o.Header)

	case cli.OpTandem:
		list, err := repeat.FindTandem(ctx, ix, repeat.TandemParams{
			MaxUnit: o.MaxUnit, MinRepeats: o.MinRepeats,
		})
		if err != nil {
			return 0, err
		}
		recs := output.ToAPITandem(info, list)
		if o.Output == "json" {
			return len(recs), output.WriteJSON(w, recs)
		}
		return len(recs), output.WriteTandemText(w, recs, o.Header)
	}
	return 0, fmt.Errorf("unknown operation %q", o.Op)
}
